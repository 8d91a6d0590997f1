package themeconfig_test

import (
	"path/filepath"
	"testing"

	"bennypowers.dev/csstheme/internal/themeconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "test", "fixtures", "themeconfig", name)
}

func assertPrimaryColor(t *testing.T, vars *themeconfig.Variables) {
	t.Helper()
	v, ok := vars.Lookup("--primary-color")
	require.True(t, ok)
	require.True(t, v.IsThemed())
	assert.Equal(t, []string{"default", "light", "dark"}, v.Themes())
	light, _ := v.Theme("light")
	assert.Equal(t, "#9ae899", light)
}

func TestLoadFile(t *testing.T) {
	for _, name := range []string{"variables.jsonc", "variables.yaml"} {
		t.Run(name, func(t *testing.T) {
			vars, err := themeconfig.LoadFile(fixture(name))
			require.NoError(t, err)

			assert.Equal(t, []string{"--primary-color", "--spacing", "--font"}, vars.Names())
			assertPrimaryColor(t, vars)

			spacing, _ := vars.Lookup("--spacing")
			assert.False(t, spacing.IsThemed())
			assert.Equal(t, "8", spacing.Value())

			font, _ := vars.Lookup("--font")
			assert.Equal(t, "Helvetica, sans-serif", font.Value())
		})
	}
}

func TestLoadFileCSS(t *testing.T) {
	vars, err := themeconfig.LoadFile(fixture("theme.css"))
	require.NoError(t, err)
	assert.Equal(t, []string{"--primary-color", "--primary-bgcolor"}, vars.Names())
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := themeconfig.LoadFile(fixture("nope.json"))
		assert.Error(t, err)
	})

	t.Run("nested too deep", func(t *testing.T) {
		_, err := themeconfig.LoadFile(fixture("invalid-nesting.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, themeconfig.ErrInvalidConfig)

		var invalid *themeconfig.InvalidConfigError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, fixture("invalid-nesting.yaml"), invalid.FilePath)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := themeconfig.LoadFile(fixture("theme.css") + ".txt")
		assert.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		format  themeconfig.Format
		data    string
		wantErr bool
	}{
		{"json object", themeconfig.FormatJSON, `{"--a": "1", "--b": {"default": "x"}}`, false},
		{"jsonc comments", themeconfig.FormatJSON, "{\n// c\n\"--a\": 1,\n}", false},
		{"json boolean", themeconfig.FormatJSON, `{"--a": true}`, false},
		{"json array value", themeconfig.FormatJSON, `{"--a": [1]}`, true},
		{"json null value", themeconfig.FormatJSON, `{"--a": null}`, true},
		{"json not an object", themeconfig.FormatJSON, `["--a"]`, true},
		{"json bad name", themeconfig.FormatJSON, `{"color": "red"}`, true},
		{"json trailing data", themeconfig.FormatJSON, `{"--a": "1"} {}`, true},
		{"yaml empty", themeconfig.FormatYAML, ``, false},
		{"yaml list", themeconfig.FormatYAML, "- a\n- b\n", true},
		{"yaml bad name", themeconfig.FormatYAML, "color: red\n", true},
		{"unknown format", themeconfig.FormatUnknown, `{}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := themeconfig.Parse([]byte(tt.data), tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, themeconfig.ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, themeconfig.FormatJSON, themeconfig.FormatFromPath("a/b.JSON"))
	assert.Equal(t, themeconfig.FormatJSON, themeconfig.FormatFromPath("b.jsonc"))
	assert.Equal(t, themeconfig.FormatYAML, themeconfig.FormatFromPath("b.yml"))
	assert.Equal(t, themeconfig.FormatCSS, themeconfig.FormatFromPath("theme.css"))
	assert.Equal(t, themeconfig.FormatUnknown, themeconfig.FormatFromPath("theme.scss"))
	assert.Equal(t, "yaml", themeconfig.FormatYAML.String())
}
