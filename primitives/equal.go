package primitives

import (
	"reflect"

	"github.com/erraggy/oasprim/rawdoc"
)

// semanticEqual compares raw values by meaning: numbers by exact value
// regardless of Go type, mappings regardless of key order.
func semanticEqual(a, b any) bool {
	if ra, ok := ratOf(a); ok {
		rb, ok := ratOf(b)
		return ok && ra.Cmp(rb) == 0
	}
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}

	if ea, ok := rawdoc.Entries(a); ok {
		eb, ok := rawdoc.Entries(b)
		if !ok || len(ea) != len(eb) {
			return false
		}
		for _, it := range ea {
			other, ok := rawdoc.Lookup(b, it.Key)
			if !ok || !semanticEqual(it.Value, other) {
				return false
			}
		}
		return true
	}

	if sa, ok := sequence(a); ok {
		sb, ok := sequence(b)
		if !ok || len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if !semanticEqual(sa[i], sb[i]) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}
