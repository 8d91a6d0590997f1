package theme

import (
	"fmt"
	"strings"

	"bennypowers.dev/csstheme/internal/parser/css"
	"bennypowers.dev/csstheme/internal/themeconfig"
)

// PreserveMode says what survives resolution of a declaration
type PreserveMode int

const (
	// PreserveNone replaces var() references and drops resolved definitions
	PreserveNone PreserveMode = iota
	// PreserveAll keeps definitions and adds a copy of every resolved
	// declaration with its original var() text
	PreserveAll
	// PreserveComputed keeps definitions but writes only computed values
	PreserveComputed
)

func (m PreserveMode) String() string {
	switch m {
	case PreserveNone:
		return "false"
	case PreserveAll:
		return "true"
	case PreserveComputed:
		return "computed"
	default:
		return fmt.Sprintf("PreserveMode(%d)", int(m))
	}
}

// Preserve is the preservation policy: a fixed mode, or a function
// deciding per declaration. The zero value preserves nothing.
type Preserve struct {
	mode PreserveMode
	fn   func(decl *css.Declaration) PreserveMode
}

// PreserveFixed applies mode to every declaration
func PreserveFixed(mode PreserveMode) Preserve {
	return Preserve{mode: mode}
}

// PreserveFunc asks fn for every definition and every declaration using var()
func PreserveFunc(fn func(decl *css.Declaration) PreserveMode) Preserve {
	return Preserve{fn: fn}
}

// ParsePreserve reads a policy from configuration: "true", "false" or "computed"
func ParsePreserve(s string) (Preserve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "none":
		return PreserveFixed(PreserveNone), nil
	case "true", "all":
		return PreserveFixed(PreserveAll), nil
	case "computed":
		return PreserveFixed(PreserveComputed), nil
	default:
		return Preserve{}, fmt.Errorf("invalid preserve value %q: expected true, false or computed", s)
	}
}

// For returns the mode for decl. Unknown modes count as PreserveNone.
func (p Preserve) For(decl *css.Declaration) PreserveMode {
	mode := p.mode
	if p.fn != nil {
		mode = p.fn(decl)
	}
	switch mode {
	case PreserveAll, PreserveComputed:
		return mode
	default:
		return PreserveNone
	}
}

// String describes a fixed policy; function policies print as "func"
func (p Preserve) String() string {
	if p.fn != nil {
		return "func"
	}
	return p.mode.String()
}

// Options configures one resolution pass
type Options struct {
	// Variables maps custom property names to single values or theme maps
	Variables *themeconfig.Variables

	// Preserve decides whether original var() syntax and definitions survive
	Preserve Preserve

	// PreserveInjectedVariables prepends one rule per theme defining every
	// variable that was substituted
	PreserveInjectedVariables bool

	// ThemeSelector scopes one selector of a cloned rule to a theme.
	// Defaults to DefaultThemeSelector.
	ThemeSelector func(theme, selector string) string

	// ThemeDefineSelector names the rule holding a theme's injected
	// definitions. Defaults to DefaultThemeDefineSelector.
	ThemeDefineSelector func(theme string) string
}

// DefaultThemeSelector returns "body.<theme> <selector>"
func DefaultThemeSelector(theme, selector string) string {
	return "body." + theme + " " + selector
}

// DefaultThemeDefineSelector returns "body" for the default theme and
// "body.<theme>" for the others
func DefaultThemeDefineSelector(theme string) string {
	if theme == themeconfig.DefaultTheme {
		return "body"
	}
	return "body." + theme
}

func (o Options) withDefaults() Options {
	if o.ThemeSelector == nil {
		o.ThemeSelector = DefaultThemeSelector
	}
	if o.ThemeDefineSelector == nil {
		o.ThemeDefineSelector = DefaultThemeDefineSelector
	}
	if o.Variables == nil {
		o.Variables = themeconfig.New()
	}
	return o
}
