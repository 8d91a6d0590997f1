package themeconfig

import (
	"fmt"
	"os"
	"strings"

	"bennypowers.dev/csstheme/internal/parser/css"
)

// ExtractOptions configures reading a theme stylesheet
type ExtractOptions struct {
	// SelectorToTheme maps the class suffix of a body.<theme> selector,
	// including its leading dot (".light"), to a theme name.
	// The default strips the dot.
	SelectorToTheme func(suffix string) string
}

func defaultSelectorToTheme(suffix string) string {
	return strings.TrimPrefix(suffix, ".")
}

// LoadCSSFile reads a theme stylesheet from disk
func LoadCSSFile(path string, opts ExtractOptions) (*Variables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme stylesheet: %w", err)
	}
	vars, err := ExtractCSS(string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vars, nil
}

// ExtractCSS parses a theme stylesheet written as
//
//	body { --name: value; }
//	body.<theme> { --name: value; }
//
// into a configuration where every variable is a theme map. Declarations
// under body go to the default theme. Other rules and ordinary properties
// are ignored.
func ExtractCSS(source string, opts ExtractOptions) (*Variables, error) {
	root, err := css.Parse(source)
	if err != nil {
		return nil, err
	}
	return Extract(root, opts), nil
}

// Extract reads theme definitions from an already parsed stylesheet
func Extract(root *css.Root, opts ExtractOptions) *Variables {
	toTheme := opts.SelectorToTheme
	if toTheme == nil {
		toTheme = defaultSelectorToTheme
	}

	vars := New()
	// errors are never returned by the callback
	_ = css.WalkRules(root, func(rule *css.Rule) error {
		for _, selector := range rule.Selectors() {
			theme, ok := bodyTheme(selector, toTheme)
			if !ok {
				continue
			}
			for _, n := range rule.Nodes() {
				decl, ok := n.(*css.Declaration)
				if !ok || !decl.IsCustomProperty() {
					continue
				}
				vars.SetTheme(decl.Prop, theme, decl.Value)
			}
		}
		return nil
	})
	return vars
}

// bodyTheme reports the theme a selector defines: "body" is the default
// theme and "body.<suffix>" is handed to toTheme
func bodyTheme(selector string, toTheme func(string) string) (string, bool) {
	if selector == "body" {
		return DefaultTheme, true
	}
	suffix, ok := strings.CutPrefix(selector, "body.")
	if !ok || suffix == "" || strings.ContainsAny(suffix, " \t\r\n>+~") {
		return "", false
	}
	return toTheme("." + suffix), true
}
