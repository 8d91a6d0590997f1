package themeconfig_test

import (
	"testing"

	"bennypowers.dev/csstheme/internal/themeconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTokens(t *testing.T) {
	vars, err := themeconfig.LoadTokens(
		themeconfig.TokenSource{Path: fixture("tokens-default.json")},
		themeconfig.TokenSource{Path: fixture("tokens-dark.json"), Theme: "dark"},
	)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"default": "#15c213",
		"dark":    "#2a562a",
	}, themeValues(t, vars, "--color-primary"))
	assert.Equal(t, map[string]string{
		"default": "var(--color-primary)",
	}, themeValues(t, vars, "--color-accent"), "aliases become var() references")

	require.NoError(t, themeconfig.ResolveAliases(vars))
	assert.Equal(t, map[string]string{
		"default": "#15c213",
		"dark":    "#2a562a",
	}, themeValues(t, vars, "--color-accent"))
}

func TestLoadTokensPrefix(t *testing.T) {
	vars, err := themeconfig.LoadTokens(themeconfig.TokenSource{Path: fixture("tokens-default.json"), Prefix: "ds"})
	require.NoError(t, err)

	_, ok := vars.Lookup("--ds-color-primary")
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"default": "var(--ds-color-primary)"}, themeValues(t, vars, "--ds-color-accent"))
}

func TestLoadTokensMissingFile(t *testing.T) {
	_, err := themeconfig.LoadTokens(themeconfig.TokenSource{Path: fixture("missing.json")})
	assert.Error(t, err)
}
