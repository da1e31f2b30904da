package rawdoc

import (
	"fmt"
	"sort"
)

// Item is one key/value pair of an ordered mapping.
type Item struct {
	Key   string
	Value any
}

// Map is a raw mapping that preserves document key order.
type Map []Item

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, it := range m {
		if it.Key == key {
			return it.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in document order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, it := range m {
		keys[i] = it.Key
	}
	return keys
}

// IsMapping reports whether v is a raw mapping.
func IsMapping(v any) bool {
	switch v.(type) {
	case Map, map[string]any, map[any]any:
		return true
	}
	return false
}

// Entries returns the key/value pairs of a raw mapping in deterministic
// order. The second result is false when v is not a mapping.
func Entries(v any) ([]Item, bool) {
	switch m := v.(type) {
	case Map:
		return m, true
	case map[string]any:
		items := make([]Item, 0, len(m))
		for k, val := range m {
			items = append(items, Item{Key: k, Value: val})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
		return items, true
	case map[any]any:
		items := make([]Item, 0, len(m))
		for k, val := range m {
			items = append(items, Item{Key: fmt.Sprint(k), Value: val})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
		return items, true
	}
	return nil, false
}

// Lookup returns the value stored under key in a raw mapping.
func Lookup(v any, key string) (any, bool) {
	switch m := v.(type) {
	case Map:
		return m.Get(key)
	case map[string]any:
		val, ok := m[key]
		return val, ok
	case map[any]any:
		val, ok := m[key]
		return val, ok
	}
	return nil, false
}

// Plain converts a raw tree into standard Go JSON-like values: every mapping
// becomes map[string]any and every sequence []any. Scalars are returned as is.
func Plain(v any) any {
	switch t := v.(type) {
	case Map, map[any]any:
		items, _ := Entries(t)
		out := make(map[string]any, len(items))
		for _, it := range items {
			out[it.Key] = Plain(it.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Plain(val)
		}
		return out
	}
	return v
}
