package config_test

import (
	"testing"

	"bennypowers.dev/csstheme/internal/config"
	"bennypowers.dev/csstheme/internal/parser/css"
	"bennypowers.dev/csstheme/internal/theme"
	"bennypowers.dev/csstheme/internal/themeconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeSelectorFunc(t *testing.T) {
	assert.Nil(t, config.ThemeSelectorFunc(""))

	fn := config.ThemeSelectorFunc("[data-theme={theme}] {selector}")
	assert.Equal(t, "[data-theme=dark] .a", fn("dark", ".a"))

	prefix := config.ThemeSelectorFunc(".theme-{theme}")
	assert.Equal(t, ".theme-dark .a", prefix("dark", ".a"))
}

func TestDefineSelectorFunc(t *testing.T) {
	assert.Nil(t, config.DefineSelectorFunc("", ""))

	fn := config.DefineSelectorFunc("[data-theme={theme}]", ":root")
	assert.Equal(t, ":root", fn("default"))
	assert.Equal(t, "[data-theme=dark]", fn("dark"))

	noDefault := config.DefineSelectorFunc("body.{theme}", "")
	assert.Equal(t, "body.default", noDefault("default"))
}

func TestOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Preserve = "computed"
	cfg.PreserveInjectedVariables = true

	vars := themeconfig.New().Set("--a", "1px")
	opts, err := cfg.Options(vars)
	require.NoError(t, err)

	assert.Same(t, vars, opts.Variables)
	assert.True(t, opts.PreserveInjectedVariables)
	assert.Equal(t, theme.PreserveComputed, opts.Preserve.For(css.NewDeclaration("margin", "var(--a)")))
	assert.Equal(t, "body.dark .a", opts.ThemeSelector("dark", ".a"))
	assert.Equal(t, "body", opts.ThemeDefineSelector("default"))
	assert.Equal(t, "body.dark", opts.ThemeDefineSelector("dark"))
}

func TestLoadVariables(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "base.json", `{"--primary": {"default": "red", "dark": "maroon"}, "--text": "var(--primary)"}`)
	second := writeFile(t, dir, "override.yaml", "\"--primary\":\n  dark: black\n")

	cfg := config.DefaultConfig()
	cfg.Variables = []string{first, second}
	cfg.ResolveAliases = true
	cfg.ColorFormat = "hex"

	vars, err := cfg.LoadVariables()
	require.NoError(t, err)

	primary, ok := vars.Lookup("--primary")
	require.True(t, ok)
	dark, _ := primary.Theme("dark")
	assert.Equal(t, "#000000", dark)

	text, ok := vars.Lookup("--text")
	require.True(t, ok)
	textDark, _ := text.ValueFor("dark")
	assert.Equal(t, "#000000", textDark)
	textDefault, _ := text.ValueFor("default")
	assert.Equal(t, "#ff0000", textDefault)
}

func TestLoadVariablesErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Variables = []string{"does-not-exist.json"}
	_, err := cfg.LoadVariables()
	assert.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.ColorFormat = "cmyk"
	_, err = cfg.LoadVariables()
	assert.Error(t, err)
}
