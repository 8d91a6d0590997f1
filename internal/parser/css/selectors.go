package css

import "strings"

// SplitSelectors splits a selector list at top-level commas. Commas inside
// parentheses, brackets, strings and comments do not split.
func SplitSelectors(list string) []string {
	var out []string
	start := 0
	for _, i := range topLevelCommas(list) {
		out = appendSelector(out, list[start:i])
		start = i + 1
	}
	return appendSelector(out, list[min(start, len(list)):])
}

// topLevelCommas returns the offsets of the commas separating selectors
func topLevelCommas(list string) []int {
	var commas []int
	depth := 0
	for i := 0; i < len(list); i++ {
		switch c := list[i]; c {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case '"', '\'':
			i = skipString(list, i)
		case '/':
			if i+1 < len(list) && list[i+1] == '*' {
				if end := strings.Index(list[i+2:], "*/"); end >= 0 {
					i += end + 3
				} else {
					i = len(list)
				}
			}
		case ',':
			if depth == 0 {
				commas = append(commas, i)
			}
		}
	}
	return commas
}

// JoinSelectors joins selectors with sep
func JoinSelectors(selectors []string, sep string) string {
	return strings.Join(selectors, sep)
}

func appendSelector(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

// selectorSeparator returns the separator used between the first two
// selectors: the first top-level comma and the whitespace after it
func selectorSeparator(list string) string {
	if len(SplitSelectors(list)) > 1 {
		i := topLevelCommas(list)[0]
		rest := list[i+1:]
		return "," + rest[:len(rest)-len(strings.TrimLeft(rest, whitespace))]
	}
	return ", "
}

// skipString returns the index of the quote closing the string opened at i
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(s) - 1
}
