package css

import (
	"regexp"
	"strings"
)

// VarCall represents a var() function call found in a value
type VarCall struct {
	// Name is the referenced custom property, e.g. "--color-primary"
	Name string
	// Fallback is the optional second argument, verbatim and trimmed
	Fallback *string
	// Start and End are byte offsets of the whole call within the value
	Start int
	End   int
}

// Text returns the call as written in value
func (c VarCall) Text(value string) string {
	return value[c.Start:c.End]
}

// varOpenRegexp matches the start of a var() call up to the variable name.
// Function names are case-insensitive; custom property names are not.
var varOpenRegexp = regexp.MustCompile(`^(?i:var)\(\s*(--[-\w\x{80}-\x{10FFFF}]+)\s*`)

// HasVarCall reports whether value may contain a var() call
func HasVarCall(value string) bool {
	return strings.Contains(strings.ToLower(value), "var(")
}

// FindVarCalls scans value left to right and returns every top-level var()
// call. Calls nested inside another call's fallback are part of that
// fallback and are not returned separately. Calls inside quoted strings
// and malformed calls are skipped.
func FindVarCalls(value string) []VarCall {
	var calls []VarCall
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '"', '\'':
			i = skipString(value, i)
			continue
		case 'v', 'V':
		default:
			continue
		}
		if i > 0 && isIdentByte(value[i-1]) {
			// e.g. "somevar(--x)" is not a var() call
			continue
		}
		loc := varOpenRegexp.FindStringSubmatchIndex(value[i:])
		if loc == nil {
			continue
		}
		end, fallback, ok := scanCallEnd(value, i+loc[1])
		if !ok {
			i += loc[3] - 1
			continue
		}
		calls = append(calls, VarCall{
			Name:     value[i+loc[2] : i+loc[3]],
			Fallback: fallback,
			Start:    i,
			End:      end,
		})
		i = end - 1
	}
	return calls
}

// scanCallEnd finds the ")" closing a var() call whose arguments continue at
// i, returning the offset just past it and the fallback, if any
func scanCallEnd(value string, i int) (int, *string, bool) {
	if i >= len(value) {
		return 0, nil, false
	}
	switch value[i] {
	case ')':
		return i + 1, nil, true
	case ',':
	default:
		return 0, nil, false
	}
	depth := 0
	for j := i + 1; j < len(value); j++ {
		switch value[j] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				fb := strings.TrimSpace(value[i+1 : j])
				return j + 1, &fb, true
			}
			depth--
		case '"', '\'':
			j = skipString(value, j)
		}
	}
	return 0, nil, false
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
