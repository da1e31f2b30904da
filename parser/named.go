package parser

import (
	"iter"
	"slices"
)

// Named is an ordered, name-indexed collection of objects. Iteration follows
// document order. A nil *Named is empty.
type Named[T any] struct {
	keys  []string
	items map[string]T
}

func newNamed[T any](size int) *Named[T] {
	return &Named[T]{keys: make([]string, 0, size), items: make(map[string]T, size)}
}

// Get returns the entry stored under name.
func (n *Named[T]) Get(name string) (T, bool) {
	if n == nil {
		var zero T
		return zero, false
	}
	v, ok := n.items[name]
	return v, ok
}

// Keys returns the names in order.
func (n *Named[T]) Keys() []string {
	if n == nil {
		return nil
	}
	return slices.Clone(n.keys)
}

// Values returns the entries in order.
func (n *Named[T]) Values() []T {
	if n == nil {
		return nil
	}
	out := make([]T, len(n.keys))
	for i, k := range n.keys {
		out[i] = n.items[k]
	}
	return out
}

// Len returns the number of entries.
func (n *Named[T]) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// All iterates over the entries in order.
func (n *Named[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		if n == nil {
			return
		}
		for _, k := range n.keys {
			if !yield(k, n.items[k]) {
				return
			}
		}
	}
}

// set stores v under name. Replacing an entry keeps its position.
func (n *Named[T]) set(name string, v T) {
	if _, ok := n.items[name]; !ok {
		n.keys = append(n.keys, name)
	}
	n.items[name] = v
}

func convertNamed[C any](src *Named[Object]) *Named[C] {
	out := newNamed[C](src.Len())
	for k, v := range src.All() {
		out.set(k, v.(C))
	}
	return out
}
