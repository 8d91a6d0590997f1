package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fixtures = "../../test/fixtures/themeconfig"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveToStdout(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "app.css", ".a { color: var(--primary-color); }")
	cfg := writeFile(t, dir, "csstheme.toml", "")

	out, err := execute(t, "--config", cfg, "--variables", filepath.Join(fixtures, "variables.yaml"), input)
	require.NoError(t, err)
	assert.Equal(t, ".a { color: #15c213; }\n"+
		"body.light .a { color: #9ae899; }\n"+
		"body.dark .a { color: #2a562a; }", out)
}

func TestResolveSeveralArguments(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.css", ".a { margin: var(--spacing); }\n")
	second := writeFile(t, dir, "b.css", ".b { padding: var(--spacing); }\n")
	vars := writeFile(t, dir, "vars.json", `{"--spacing": "4px"}`)
	cfg := writeFile(t, dir, "csstheme.toml", "")

	out, err := execute(t, "--config", cfg, "--variables", vars, first, second)
	require.NoError(t, err)
	assert.Contains(t, out, ".a { margin: 4px; }\n")
	assert.Contains(t, out, ".b { padding: 4px; }\n")
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "app.css", ".a { margin: var(--spacing); }")
	cfg := writeFile(t, dir, "csstheme.toml", "preserve = true\nthemeSelector = \"html.{theme}\"\n")

	out, err := execute(t, "--config", cfg, "--variables", filepath.Join(fixtures, "variables.yaml"), input)
	require.NoError(t, err)
	assert.Equal(t, ".a { margin: 8; margin: var(--spacing); }", out)

	out, err = execute(t, "--config", cfg, "--preserve", "false",
		"--variables", filepath.Join(fixtures, "variables.yaml"), input)
	require.NoError(t, err)
	assert.Equal(t, ".a { margin: 8; }", out)
}

func TestResolveOutDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	writeFile(t, dir, "src/app.css", ".a { margin: var(--spacing); }")
	cfg := writeFile(t, dir, "csstheme.yaml", "variables:\n  - vars.json\ninclude:\n  - src/**/*.css\noutDir: dist\n")
	writeFile(t, dir, "vars.json", `{"--spacing": "4px"}`)

	out, err := execute(t, "--config", cfg)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(dir, "dist", "src", "app.css"))
	require.NoError(t, err)
	assert.Equal(t, ".a { margin: 4px; }", string(data))
}

func TestResolveNoInputs(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "csstheme.toml", "")
	_, err := execute(t, "--config", cfg)
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestResolveInvalidTokensFlag(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "app.css", ".a{}")
	cfg := writeFile(t, dir, "csstheme.toml", "")

	_, err := execute(t, "--config", cfg, "--tokens", "tokens.json", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme=path")
}

func TestResolveTokens(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "app.css", ".a { color: var(--color-primary); }")
	cfg := writeFile(t, dir, "csstheme.toml", "")

	out, err := execute(t, "--config", cfg,
		"--tokens", "default="+filepath.Join(fixtures, "tokens-default.json"),
		"--tokens", "dark="+filepath.Join(fixtures, "tokens-dark.json"),
		input)
	require.NoError(t, err)
	assert.Equal(t, ".a { color: #15c213; }\nbody.dark .a { color: #2a562a; }", out)
}

func TestExtractJSON(t *testing.T) {
	out, err := execute(t, "extract", filepath.Join(fixtures, "theme.css"))
	require.NoError(t, err)

	var got map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{
		"default": "#fe3666",
		"light":   "#ff4906",
		"dark":    "#906000",
	}, got["--primary-color"])
	assert.NotContains(t, got, "--card-radius")
	assert.True(t, strings.Index(out, "--primary-color") < strings.Index(out, "--primary-bgcolor"))
}

func TestExtractYAML(t *testing.T) {
	out, err := execute(t, "extract", "--format", "yaml", filepath.Join(fixtures, "theme.css"))
	require.NoError(t, err)

	var got map[string]map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "#90600020", got["--primary-bgcolor"]["dark"])
}

func TestExtractThemePrefix(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "theme.css", "body { --c: red; }\nbody.theme-dark { --c: black; }")

	out, err := execute(t, "extract", "--theme-prefix", "theme-", input)
	require.NoError(t, err)
	assert.Contains(t, out, `"dark": "black"`)
}

func TestExtractUnknownFormat(t *testing.T) {
	_, err := execute(t, "extract", "--format", "xml", filepath.Join(fixtures, "theme.css"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "csstheme "))

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "goVersion")
}
