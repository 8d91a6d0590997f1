package theme_test

import (
	"testing"

	"bennypowers.dev/csstheme/internal/parser/css"
	"bennypowers.dev/csstheme/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreserve(t *testing.T) {
	tests := []struct {
		in   string
		want theme.PreserveMode
	}{
		{"", theme.PreserveNone},
		{"false", theme.PreserveNone},
		{"true", theme.PreserveAll},
		{"TRUE", theme.PreserveAll},
		{"computed", theme.PreserveComputed},
		{" computed ", theme.PreserveComputed},
	}

	decl := css.NewDeclaration("color", "var(--x)")
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := theme.ParsePreserve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.For(decl))
		})
	}

	_, err := theme.ParsePreserve("sometimes")
	assert.Error(t, err)
}

func TestPreserveString(t *testing.T) {
	assert.Equal(t, "false", theme.Preserve{}.String())
	assert.Equal(t, "computed", theme.PreserveFixed(theme.PreserveComputed).String())
	assert.Equal(t, "func", theme.PreserveFunc(func(*css.Declaration) theme.PreserveMode { return theme.PreserveAll }).String())
	assert.Equal(t, "PreserveMode(9)", theme.PreserveMode(9).String())
}

func TestDefaultSelectors(t *testing.T) {
	assert.Equal(t, "body.dark .a", theme.DefaultThemeSelector("dark", ".a"))
	assert.Equal(t, "body", theme.DefaultThemeDefineSelector("default"))
	assert.Equal(t, "body.dark", theme.DefaultThemeDefineSelector("dark"))
}
