package config

import (
	"fmt"
	"strings"

	"bennypowers.dev/csstheme/internal/color"
	"bennypowers.dev/csstheme/internal/theme"
	"bennypowers.dev/csstheme/internal/themeconfig"
)

// LoadVariables reads every variable and token file in order, later files
// overriding earlier ones, then applies alias resolution and color
// normalisation when configured
func (c *Config) LoadVariables() (*themeconfig.Variables, error) {
	vars := themeconfig.New()
	for _, path := range c.Variables {
		loaded, err := themeconfig.LoadFile(path)
		if err != nil {
			return nil, err
		}
		vars.Merge(loaded)
	}

	if len(c.Tokens) > 0 {
		sources := make([]themeconfig.TokenSource, 0, len(c.Tokens))
		for _, tok := range c.Tokens {
			sources = append(sources, themeconfig.TokenSource{Path: tok.Path, Theme: tok.Theme, Prefix: tok.Prefix})
		}
		tokens, err := themeconfig.LoadTokens(sources...)
		if err != nil {
			return nil, err
		}
		vars.Merge(tokens)
	}

	if c.ResolveAliases {
		if err := themeconfig.ResolveAliases(vars); err != nil {
			return nil, err
		}
	}

	format, err := color.ParseFormat(c.ColorFormat)
	if err != nil {
		return nil, err
	}
	if format != color.FormatKeep {
		vars.MapValues(func(_, _, value string) string {
			return color.Normalize(value, format)
		})
	}
	return vars, nil
}

// Options converts the configuration into engine options over vars
func (c *Config) Options(vars *themeconfig.Variables) (theme.Options, error) {
	value, err := c.PreserveValue()
	if err != nil {
		return theme.Options{}, err
	}
	preserve, err := theme.ParsePreserve(value)
	if err != nil {
		return theme.Options{}, err
	}

	return theme.Options{
		Variables:                 vars,
		Preserve:                  preserve,
		PreserveInjectedVariables: c.PreserveInjectedVariables,
		ThemeSelector:             ThemeSelectorFunc(c.ThemeSelector),
		ThemeDefineSelector:       DefineSelectorFunc(c.ThemeDefineSelector, c.DefaultDefineSelector),
	}, nil
}

// ThemeSelectorFunc turns a template such as "body.{theme} {selector}" into
// a selector function. A template without {selector} is used as a prefix.
// An empty template gives the engine's default.
func ThemeSelectorFunc(tmpl string) func(theme, selector string) string {
	if tmpl == "" {
		return nil
	}
	if !strings.Contains(tmpl, "{selector}") {
		tmpl += " {selector}"
	}
	return func(theme, selector string) string {
		return strings.NewReplacer("{theme}", theme, "{selector}", selector).Replace(tmpl)
	}
}

// DefineSelectorFunc turns a template such as "body.{theme}" into a
// function naming injected definition rules; the default theme uses
// defaultSelector when it is set
func DefineSelectorFunc(tmpl, defaultSelector string) func(theme string) string {
	if tmpl == "" && defaultSelector == "" {
		return nil
	}
	if tmpl == "" {
		tmpl = DefaultThemeDefineSelector
	}
	return func(name string) string {
		if name == themeconfig.DefaultTheme && defaultSelector != "" {
			return defaultSelector
		}
		return strings.ReplaceAll(tmpl, "{theme}", name)
	}
}

// String summarises the settings that shape the output
func (c *Config) String() string {
	preserve, _ := c.PreserveValue()
	return fmt.Sprintf("preserve=%s injected=%t themeSelector=%q themeDefineSelector=%q",
		preserve, c.PreserveInjectedVariables, c.ThemeSelector, c.ThemeDefineSelector)
}
