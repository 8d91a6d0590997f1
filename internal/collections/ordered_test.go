package collections_test

import (
	"testing"

	"bennypowers.dev/csstheme/internal/collections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapKeepsFirstInsertionOrder(t *testing.T) {
	m := collections.NewOrderedMap[string, string]()
	m.Set("default", "#ccc")
	m.Set("light", "#fff")
	m.Set("dark", "#000")
	m.Set("light", "#eee")

	assert.Equal(t, []string{"default", "light", "dark"}, m.Keys())
	v, ok := m.Get("light")
	require.True(t, ok)
	assert.Equal(t, "#eee", v, "overwrite replaces the value but not the position")
}

func TestOrderedMapSetIfAbsent(t *testing.T) {
	m := collections.NewOrderedMap[string, int]()
	assert.True(t, m.SetIfAbsent("--a", 1))
	assert.False(t, m.SetIfAbsent("--a", 2))

	v, _ := m.Get("--a")
	assert.Equal(t, 1, v, "first value wins")
	assert.Equal(t, 1, m.Len())
}

func TestOrderedMapDelete(t *testing.T) {
	m := collections.NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Delete("b")
	m.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
}

func TestOrderedMapEach(t *testing.T) {
	m := collections.NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var seen []string
	m.Each(func(k string, _ int) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen, "Each stops when fn returns false")
}

func TestOrderedMapNilSafe(t *testing.T) {
	var m *collections.OrderedMap[string, int]
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	m.Each(func(string, int) bool { return true })
}

func TestOrderedMapClone(t *testing.T) {
	m := collections.NewOrderedMap[string, int]()
	m.Set("x", 1)
	c := m.Clone()
	c.Set("y", 2)

	assert.Equal(t, []string{"x"}, m.Keys())
	assert.Equal(t, []string{"x", "y"}, c.Keys())
}
