// Package themeconfig holds the variable → theme → value configuration
// consumed by the resolution engine, and loads it from theme stylesheets,
// JSON/YAML files and design-token files.
package themeconfig

import (
	"bennypowers.dev/csstheme/internal/collections"
)

// DefaultTheme is the theme whose values apply to the original, unprefixed rules
const DefaultTheme = "default"

// Variable is the configured value of one custom property: either a single
// theme-independent value, or an ordered mapping from theme name to value.
type Variable struct {
	value  string
	themes *collections.OrderedMap[string, string]
}

// Single creates a theme-independent variable
func Single(value string) *Variable {
	return &Variable{value: value}
}

// Themed creates a variable from alternating theme, value pairs,
// e.g. Themed("default", "#fff", "dark", "#000"). A trailing theme without a
// value is ignored.
func Themed(pairs ...string) *Variable {
	v := &Variable{themes: collections.NewOrderedMap[string, string]()}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.themes.Set(pairs[i], pairs[i+1])
	}
	return v
}

// IsThemed reports whether the variable is a theme map
func (v *Variable) IsThemed() bool {
	return v.themes != nil
}

// Value returns the single value. It is empty for theme maps.
func (v *Variable) Value() string {
	return v.value
}

// Theme returns the value defined for exactly this theme
func (v *Variable) Theme(theme string) (string, bool) {
	if !v.IsThemed() {
		return "", false
	}
	return v.themes.Get(theme)
}

// ValueFor returns the value to use inside rules of the given theme: the
// single value, the theme's own value, or the default theme's value
func (v *Variable) ValueFor(theme string) (string, bool) {
	if !v.IsThemed() {
		return v.value, true
	}
	if value, ok := v.themes.Get(theme); ok {
		return value, true
	}
	return v.themes.Get(DefaultTheme)
}

// Themes returns the theme names in configuration order, including the
// default theme. Single values have none.
func (v *Variable) Themes() []string {
	if !v.IsThemed() {
		return nil
	}
	return v.themes.Keys()
}

// SetTheme stores value for theme. A single-valued variable becomes a theme
// map whose default is the former single value.
func (v *Variable) SetTheme(theme, value string) {
	if !v.IsThemed() {
		v.themes = collections.NewOrderedMap[string, string]()
		if v.value != "" {
			v.themes.Set(DefaultTheme, v.value)
		}
		v.value = ""
	}
	v.themes.Set(theme, value)
}

// Each calls fn with every (theme, value) pair; a single value is reported
// under the default theme
func (v *Variable) Each(fn func(theme, value string)) {
	if !v.IsThemed() {
		fn(DefaultTheme, v.value)
		return
	}
	v.themes.Each(func(theme, value string) bool {
		fn(theme, value)
		return true
	})
}

// Clone returns an independent copy
func (v *Variable) Clone() *Variable {
	c := &Variable{value: v.value}
	if v.themes != nil {
		c.themes = v.themes.Clone()
	}
	return c
}

// Variables maps custom property names (--name) to their configuration,
// remembering the order in which they were defined
type Variables struct {
	entries *collections.OrderedMap[string, *Variable]
}

// New creates an empty configuration
func New() *Variables {
	return &Variables{entries: collections.NewOrderedMap[string, *Variable]()}
}

// Define stores v under name, replacing any previous definition
func (vs *Variables) Define(name string, v *Variable) *Variables {
	vs.entries.Set(name, v)
	return vs
}

// Set stores a single value for name
func (vs *Variables) Set(name, value string) *Variables {
	return vs.Define(name, Single(value))
}

// SetTheme stores value for one theme of name, creating the variable if needed
func (vs *Variables) SetTheme(name, theme, value string) *Variables {
	if v, ok := vs.entries.Get(name); ok {
		v.SetTheme(theme, value)
		return vs
	}
	return vs.Define(name, Themed(theme, value))
}

// Lookup returns the configuration of name
func (vs *Variables) Lookup(name string) (*Variable, bool) {
	if vs == nil {
		return nil, false
	}
	return vs.entries.Get(name)
}

// Names returns the variable names in definition order
func (vs *Variables) Names() []string {
	if vs == nil {
		return nil
	}
	return vs.entries.Keys()
}

// Len returns the number of variables
func (vs *Variables) Len() int {
	if vs == nil {
		return 0
	}
	return vs.entries.Len()
}

// ThemeNames returns every theme used by any variable, in first-seen order
func (vs *Variables) ThemeNames() []string {
	var out []string
	seen := collections.NewSet[string]()
	for _, name := range vs.Names() {
		v, _ := vs.Lookup(name)
		for _, theme := range v.Themes() {
			if !seen.Has(theme) {
				seen.Add(theme)
				out = append(out, theme)
			}
		}
	}
	return out
}

// Merge copies other into vs. Per variable and theme, values from other win;
// a single value in other replaces the whole variable.
func (vs *Variables) Merge(other *Variables) *Variables {
	for _, name := range other.Names() {
		v, _ := other.Lookup(name)
		existing, ok := vs.Lookup(name)
		if !ok || !v.IsThemed() {
			vs.Define(name, v.Clone())
			continue
		}
		v.Each(func(theme, value string) {
			existing.SetTheme(theme, value)
		})
	}
	return vs
}

// MapValues replaces every value with fn(name, theme, value). Single values
// are passed with the default theme.
func (vs *Variables) MapValues(fn func(name, theme, value string) string) {
	for _, name := range vs.Names() {
		v, _ := vs.Lookup(name)
		if !v.IsThemed() {
			v.value = fn(name, DefaultTheme, v.value)
			continue
		}
		for _, theme := range v.themes.Keys() {
			value, _ := v.themes.Get(theme)
			v.themes.Set(theme, fn(name, theme, value))
		}
	}
}

// Clone returns a deep copy
func (vs *Variables) Clone() *Variables {
	out := New()
	for _, name := range vs.Names() {
		v, _ := vs.Lookup(name)
		out.Define(name, v.Clone())
	}
	return out
}
