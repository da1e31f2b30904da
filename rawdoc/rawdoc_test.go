package rawdoc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesOrder(t *testing.T) {
	tree, err := Decode([]byte(`
zeta: 1
alpha:
  - a
  - 2
  - true
mid: {b: 1.5, a: null}
`))
	require.NoError(t, err)

	m, ok := tree.(Map)
	require.True(t, ok, "expected Map, got %T", tree)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())

	alpha, _ := m.Get("alpha")
	assert.Equal(t, []any{"a", 2, true}, alpha)

	mid, _ := m.Get("mid")
	assert.Equal(t, Map{{Key: "b", Value: 1.5}, {Key: "a", Value: nil}}, mid)
}

func TestDecode_JSON(t *testing.T) {
	tree, err := Decode([]byte(`{"swagger": "2.0", "paths": {"/b": {}, "/a": {}}}`))
	require.NoError(t, err)

	paths, ok := Lookup(tree, "paths")
	require.True(t, ok)
	items, ok := Entries(paths)
	require.True(t, ok)
	assert.Equal(t, "/b", items[0].Key)
	assert.Equal(t, "/a", items[1].Key)
}

func TestDecode_NumericKeysAreText(t *testing.T) {
	tree, err := Decode([]byte("responses:\n  200: {description: ok}\n"))
	require.NoError(t, err)

	responses, _ := Lookup(tree, "responses")
	_, ok := Lookup(responses, "200")
	assert.True(t, ok)
}

func TestDecode_Alias(t *testing.T) {
	tree, err := Decode([]byte("a: &x {k: v}\nb: *x\n"))
	require.NoError(t, err)
	b, _ := Lookup(tree, "b")
	assert.Equal(t, Map{{Key: "k", Value: "v"}}, b)
}

func TestDecode_AliasExpansionLimit(t *testing.T) {
	// each tier is a list of ten aliases to the tier before it
	var b strings.Builder
	b.WriteString("t0: &t0 [lol, lol, lol, lol, lol, lol, lol, lol, lol, lol]\n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, "t%d: &t%d [", i, i)
		for j := range 10 {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*t%d", i-1)
		}
		b.WriteString("]\n")
	}

	_, err := Decode([]byte(b.String()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDecode_Empty(t *testing.T) {
	tree, err := Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, Map{}, tree)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("a: [unclosed"))
	assert.Error(t, err)
}

func TestEntries(t *testing.T) {
	items, ok := Entries(map[string]any{"b": 2, "a": 1})
	require.True(t, ok)
	assert.Equal(t, []Item{{"a", 1}, {"b", 2}}, items)

	items, ok = Entries(map[any]any{2: "two", 1: "one"})
	require.True(t, ok)
	assert.Equal(t, []Item{{"1", "one"}, {"2", "two"}}, items)

	_, ok = Entries([]any{1})
	assert.False(t, ok)
	assert.False(t, IsMapping("x"))
	assert.True(t, IsMapping(Map{}))
}

func TestPlain(t *testing.T) {
	tree := Map{
		{Key: "a", Value: []any{Map{{Key: "b", Value: 1}}}},
		{Key: "c", Value: map[any]any{"d": "e"}},
	}
	assert.Equal(t, map[string]any{
		"a": []any{map[string]any{"b": 1}},
		"c": map[string]any{"d": "e"},
	}, Plain(tree))
}
