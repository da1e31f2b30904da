package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeUnescape(t *testing.T) {
	tests := []struct {
		raw     string
		escaped string
	}{
		{"pets", "pets"},
		{"/pets", "~1pets"},
		{"a~b", "a~0b"},
		{"/a~/b", "~1a~0~1b"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.escaped, Escape(tt.raw))
			assert.Equal(t, tt.raw, Unescape(tt.escaped))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "#/paths/~1pets/get", Join(Root, "paths", "/pets", "get"))
	assert.Equal(t, "#", Join(Root))
	assert.Equal(t, "#/definitions/Pet/properties/name", Join("#/definitions/Pet", "properties", "name"))
	assert.Equal(t, "#/paths/~1t/get/parameters/2", Index(Join(Root, "paths", "/t", "get", "parameters"), 2))
}

func TestSplit(t *testing.T) {
	tests := []struct {
		ref      string
		doc      string
		fragment string
	}{
		{"#/definitions/Pet", "", "#/definitions/Pet"},
		{"defs.yaml#/definitions/Pet", "defs.yaml", "#/definitions/Pet"},
		{"defs.yaml", "defs.yaml", "#"},
		{"https://example.com/api.yaml#/x", "https://example.com/api.yaml", "#/x"},
		{"#/", "", "#"},
		{"#", "", "#"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			doc, frag := Split(tt.ref)
			assert.Equal(t, tt.doc, doc)
			assert.Equal(t, tt.fragment, frag)
		})
	}
}

func TestSegments(t *testing.T) {
	assert.Nil(t, Segments("#"))
	assert.Nil(t, Segments(""))
	assert.Equal(t, []string{"paths", "/pets", "get"}, Segments("#/paths/~1pets/get"))
	assert.Equal(t, []string{"definitions", "a~b"}, Segments("/definitions/a~0b"))
}

func TestPathBuilder(t *testing.T) {
	t.Run("empty is root", func(t *testing.T) {
		p := &PathBuilder{}
		assert.Equal(t, "#", p.String())
		p.Pop() // Should not panic
		assert.Equal(t, "#", p.String())
	})

	t.Run("push and index", func(t *testing.T) {
		p := &PathBuilder{}
		p.Push("tags")
		p.PushIndex(1)
		p.Push("name")
		assert.Equal(t, "#/tags/1/name", p.String())
		assert.Equal(t, 3, p.Len())
	})

	t.Run("pop and escape", func(t *testing.T) {
		p := &PathBuilder{}
		p.Push("a")
		p.Push("b")
		p.Pop()
		p.Push("c/d")
		assert.Equal(t, "#/a/c~1d", p.String())
	})

	t.Run("pool returns reset builders", func(t *testing.T) {
		p := Get()
		p.Push("x")
		Put(p)
		q := Get()
		defer Put(q)
		assert.Equal(t, "#", q.String())
	})
}
