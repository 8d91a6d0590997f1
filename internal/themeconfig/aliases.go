package themeconfig

import (
	"slices"
	"strings"

	"bennypowers.dev/csstheme/internal/parser/css"
)

// ResolveAliases flattens values that reference other configured variables,
// e.g. "--border: 1px solid var(--primary)", separately for every theme.
// A single-valued variable that references a themed one becomes themed
// wherever the result differs from its default. References to unknown
// variables are left as written. Loops fail with a CircularReferenceError.
func ResolveAliases(vars *Variables) error {
	names := vars.Names()
	themes := vars.ThemeNames()
	if !slices.Contains(themes, DefaultTheme) {
		themes = append([]string{DefaultTheme}, themes...)
	}

	resolved := make(map[string]map[string]string, len(themes))
	for _, theme := range themes {
		values := make(map[string]string, len(names))
		for _, name := range names {
			v, _ := vars.Lookup(name)
			if value, ok := v.ValueFor(theme); ok {
				values[name] = value
			}
		}

		order, err := buildDependencyGraph(names, values).topologicalSort(theme)
		if err != nil {
			return err
		}
		for _, name := range order {
			if value, ok := values[name]; ok {
				values[name] = substitute(value, values)
			}
		}
		resolved[theme] = values
	}

	base := resolved[DefaultTheme]
	for _, name := range names {
		v, _ := vars.Lookup(name)
		if !v.IsThemed() {
			v.value = base[name]
		}
		for _, theme := range themes {
			value, ok := resolved[theme][name]
			if !ok {
				continue
			}
			_, own := v.Theme(theme)
			switch {
			case own:
				v.SetTheme(theme, value)
			case theme != DefaultTheme && value != base[name]:
				// inherits a themed value through a reference
				v.SetTheme(theme, value)
			}
		}
	}
	return nil
}

// substitute replaces references to variables present in values
func substitute(value string, values map[string]string) string {
	calls := css.FindVarCalls(value)
	if len(calls) == 0 {
		return value
	}
	var sb strings.Builder
	pos := 0
	for _, call := range calls {
		replacement, ok := values[call.Name]
		if !ok {
			continue
		}
		sb.WriteString(value[pos:call.Start])
		sb.WriteString(replacement)
		pos = call.End
	}
	sb.WriteString(value[pos:])
	return sb.String()
}
