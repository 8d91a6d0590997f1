package color_test

import (
	"testing"

	"bennypowers.dev/csstheme/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		format   color.Format
		expected string
	}{
		{"named to hex", "red", color.FormatHex, "#ff0000"},
		{"short hex to hex", "#F00", color.FormatHex, "#ff0000"},
		{"rgb to hex", "rgb(21, 194, 19)", color.FormatHex, "#15c213"},
		{"translucent to hex", "rgba(0, 0, 0, 0.5)", color.FormatHex, "#00000080"},
		{"hex to rgb", "#15c213", color.FormatRGB, "rgb(21, 194, 19)"},
		{"translucent to rgb", "#00000080", color.FormatRGB, "rgba(0, 0, 0, 0.5)"},
		{"hex to hsl", "#0000ff", color.FormatHSL, "hsl(240.0, 100.0%, 50.0%)"},
		{"gray to hsl", "#808080", color.FormatHSL, "hsl(0.0, 0.0%, 50.2%)"},
		{"keep", "red", color.FormatKeep, "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, color.Normalize(tt.input, tt.format))
		})
	}
}

func TestNormalizePassesThroughNonColors(t *testing.T) {
	for _, value := range []string{
		"8px",
		"123",
		"1px solid red",
		"var(--primary-color)",
		"Helvetica, sans-serif",
		"inherit",
		"cafe",
		"",
	} {
		t.Run(value, func(t *testing.T) {
			assert.Equal(t, value, color.Normalize(value, color.FormatHex))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]color.Format{
		"":     color.FormatKeep,
		"keep": color.FormatKeep,
		"HEX":  color.FormatHex,
		"rgb":  color.FormatRGB,
		"hsl":  color.FormatHSL,
	} {
		got, err := color.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := color.ParseFormat("cmyk")
	assert.Error(t, err)
}
