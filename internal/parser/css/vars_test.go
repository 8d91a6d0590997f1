package css_test

import (
	"testing"

	"bennypowers.dev/csstheme/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindVarCalls(t *testing.T) {
	t.Run("single call", func(t *testing.T) {
		value := "var(--color-primary)"
		calls := css.FindVarCalls(value)
		require.Len(t, calls, 1)
		assert.Equal(t, "--color-primary", calls[0].Name)
		assert.Nil(t, calls[0].Fallback)
		assert.Equal(t, value, calls[0].Text(value))
	})

	t.Run("fallback", func(t *testing.T) {
		calls := css.FindVarCalls("var(--color-primary, #000)")
		require.Len(t, calls, 1)
		require.NotNil(t, calls[0].Fallback)
		assert.Equal(t, "#000", *calls[0].Fallback)
	})

	t.Run("nested fallback stays verbatim", func(t *testing.T) {
		value := "var(--a, var(--b, rgb(0, 0, 0)))"
		calls := css.FindVarCalls(value)
		require.Len(t, calls, 1)
		assert.Equal(t, "var(--b, rgb(0, 0, 0))", *calls[0].Fallback)
		assert.Equal(t, len(value), calls[0].End)
	})

	t.Run("multiple calls", func(t *testing.T) {
		value := "1px solid var(--border) var( --shadow )"
		calls := css.FindVarCalls(value)
		require.Len(t, calls, 2)
		assert.Equal(t, "--border", calls[0].Name)
		assert.Equal(t, "--shadow", calls[1].Name)
		assert.Equal(t, "var( --shadow )", calls[1].Text(value))
	})

	t.Run("inside other functions", func(t *testing.T) {
		calls := css.FindVarCalls("calc(var(--gap) * 2)")
		require.Len(t, calls, 1)
		assert.Equal(t, "--gap", calls[0].Name)
	})

	t.Run("not a var call", func(t *testing.T) {
		assert.Empty(t, css.FindVarCalls("myvar(--x)"))
		assert.Empty(t, css.FindVarCalls("var(x)"))
		assert.Empty(t, css.FindVarCalls("var(--unclosed"))
	})

	t.Run("quoted parenthesis in fallback", func(t *testing.T) {
		calls := css.FindVarCalls(`var(--icon, ")")`)
		require.Len(t, calls, 1)
		assert.Equal(t, `")"`, *calls[0].Fallback)
	})

	t.Run("quoted strings are not references", func(t *testing.T) {
		assert.Empty(t, css.FindVarCalls(`"var(--p)"`))

		value := `'var(--a)' var(--b) "\"var(--c)"`
		calls := css.FindVarCalls(value)
		require.Len(t, calls, 1)
		assert.Equal(t, "--b", calls[0].Name)
		assert.Equal(t, "var(--b)", calls[0].Text(value))
	})

	t.Run("function name is case-insensitive", func(t *testing.T) {
		value := "VAR(--Gap) Var(--gap, 1px)"
		calls := css.FindVarCalls(value)
		require.Len(t, calls, 2)
		assert.Equal(t, "--Gap", calls[0].Name)
		assert.Equal(t, "VAR(--Gap)", calls[0].Text(value))
		assert.Equal(t, "--gap", calls[1].Name)
	})

	t.Run("unclosed call does not hide later calls", func(t *testing.T) {
		calls := css.FindVarCalls("var(--a var(--b)")
		require.Len(t, calls, 1)
		assert.Equal(t, "--b", calls[0].Name)

		calls = css.FindVarCalls("var(x) var(--b)")
		require.Len(t, calls, 1)
		assert.Equal(t, "--b", calls[0].Name)
	})
}

func TestHasVarCall(t *testing.T) {
	assert.True(t, css.HasVarCall("var(--a)"))
	assert.True(t, css.HasVarCall("VAR(--a)"))
	assert.False(t, css.HasVarCall("red"))
}
