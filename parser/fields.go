package parser

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasprim/rawdoc"
)

// Shape describes how a declared field's raw value is built.
type Shape int

const (
	// ShapeScalar is an opaque value decoded into a Go field.
	ShapeScalar Shape = iota
	// ShapeObject is a nested object of the field's Kind.
	ShapeObject
	// ShapeList is a sequence of objects of the field's Kind.
	ShapeList
	// ShapeMap is a mapping of names to objects of the field's Kind.
	ShapeMap
	// ShapeObjectOrBool is a boolean or a nested object (additionalProperties).
	ShapeObjectOrBool
)

// Field declares one recognized key of an object kind.
type Field struct {
	// Name is the raw key.
	Name string
	// Default is applied when the key is absent; nil means no default.
	Default any
	// Shape selects how the raw value is built.
	Shape Shape
	// Kind is the nested object kind for non-scalar shapes.
	Kind Kind

	// skipVendorKeys drops "x-" entries of a ShapeMap value.
	skipVendorKeys bool
	assign         func(obj Object, v any) error
}

func (f Field) withDefault(v any) Field {
	f.Default = v
	return f
}

func (f Field) dropVendorKeys() Field {
	f.skipVendorKeys = true
	return f
}

// table is the declaration table of one object kind.
type table struct {
	fields []Field
	byName map[string]int

	// patterned builds undeclared, non-extension keys as patternKind objects.
	patternKind Kind
	patterned   func(obj Object, key string, child Object)

	// post runs once the object and all its children are built.
	post func(b *builder, obj Object) error
}

func newTable(fields ...Field) *table {
	t := &table{fields: fields, byName: make(map[string]int, len(fields))}
	for i, f := range fields {
		t.byName[f.Name] = i
	}
	return t
}

func (t *table) field(name string) (*Field, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return &t.fields[i], true
}

// Fields returns the field declarations of a kind in declaration order.
func Fields(kind Kind) []Field {
	t, ok := tables[kind]
	if !ok {
		return nil
	}
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

func scalar[O Object, T any](name string, dst func(O) *T) Field {
	return Field{Name: name, Shape: ShapeScalar, assign: func(obj Object, v any) error {
		return decodeScalar(dst(obj.(O)), v)
	}}
}

func child[O Object, C Object](name string, kind Kind, dst func(O) *C) Field {
	return Field{Name: name, Shape: ShapeObject, Kind: kind, assign: func(obj Object, v any) error {
		*dst(obj.(O)) = v.(C)
		return nil
	}}
}

func children[O Object, C Object](name string, kind Kind, dst func(O) *[]C) Field {
	return Field{Name: name, Shape: ShapeList, Kind: kind, assign: func(obj Object, v any) error {
		list := v.([]Object)
		out := make([]C, len(list))
		for i, c := range list {
			out[i] = c.(C)
		}
		*dst(obj.(O)) = out
		return nil
	}}
}

func childMap[O Object, C Object](name string, kind Kind, dst func(O) **Named[C]) Field {
	return Field{Name: name, Shape: ShapeMap, Kind: kind, assign: func(obj Object, v any) error {
		*dst(obj.(O)) = convertNamed[C](v.(*Named[Object]))
		return nil
	}}
}

// constraintFields declares the Constraints keys for a schema-like kind.
func constraintFields[O Object](c func(O) *Constraints) []Field {
	return []Field{
		scalar("type", func(o O) *string { return &c(o).Type }),
		scalar("format", func(o O) *string { return &c(o).Format }),
		scalar("default", func(o O) *any { return &c(o).Default }),
		scalar("maximum", func(o O) **big.Rat { return &c(o).Maximum }),
		scalar("exclusiveMaximum", func(o O) *bool { return &c(o).ExclusiveMaximum }),
		scalar("minimum", func(o O) **big.Rat { return &c(o).Minimum }),
		scalar("exclusiveMinimum", func(o O) *bool { return &c(o).ExclusiveMinimum }),
		scalar("maxLength", func(o O) **int { return &c(o).MaxLength }),
		scalar("minLength", func(o O) **int { return &c(o).MinLength }),
		scalar("pattern", func(o O) *string { return &c(o).Pattern }),
		scalar("maxItems", func(o O) **int { return &c(o).MaxItems }),
		scalar("minItems", func(o O) **int { return &c(o).MinItems }),
		scalar("uniqueItems", func(o O) *bool { return &c(o).UniqueItems }),
		scalar("enum", func(o O) *[]any { return &c(o).Enum }),
		scalar("multipleOf", func(o O) **big.Rat { return &c(o).MultipleOf }),
		scalar("collectionFormat", func(o O) *string { return &c(o).CollectionFormat }),
	}
}

// decodeScalar stores a raw scalar field value into dst. A null raw value
// leaves dst untouched, except for *any which records it.
func decodeScalar(dst any, v any) error {
	if v == nil {
		if d, ok := dst.(*any); ok {
			*d = nil
		}
		return nil
	}
	switch d := dst.(type) {
	case *string:
		s, ok := v.(string)
		if !ok {
			return typeMismatch("string", v)
		}
		*d = s
	case *bool:
		b, ok := v.(bool)
		if !ok {
			return typeMismatch("boolean", v)
		}
		*d = b
	case **big.Rat:
		r, ok := toRat(v)
		if !ok {
			return typeMismatch("finite number", v)
		}
		*d = r
	case **int:
		f, ok := toFloat(v)
		if !ok || f != math.Trunc(f) || f < 0 {
			return typeMismatch("non-negative integer", v)
		}
		n := int(f)
		*d = &n
	case *any:
		*d = rawdoc.Plain(v)
	case *[]any:
		seq, ok := v.([]any)
		if !ok {
			return typeMismatch("sequence", v)
		}
		*d = rawdoc.Plain(seq).([]any)
	case *[]string:
		seq, ok := v.([]any)
		if !ok {
			return typeMismatch("sequence of strings", v)
		}
		out := make([]string, len(seq))
		for i, item := range seq {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("item %d: %w", i, typeMismatch("string", item))
			}
			out[i] = s
		}
		*d = out
	case *map[string]any:
		if !rawdoc.IsMapping(v) {
			return typeMismatch("mapping", v)
		}
		*d = rawdoc.Plain(v).(map[string]any)
	default:
		// Composite scalars (security requirements, scopes) go through a
		// YAML round trip.
		data, err := yaml.Marshal(rawdoc.Plain(v))
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("expected %T: %w", dst, err)
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// toRat converts a raw number to its exact decimal value. Floats use their
// shortest decimal form.
func toRat(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case int:
		return new(big.Rat).SetInt64(int64(n)), true
	case int64:
		return new(big.Rat).SetInt64(n), true
	case uint64:
		return new(big.Rat).SetUint64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, false
		}
		return new(big.Rat).SetString(strconv.FormatFloat(n, 'g', -1, 64))
	case float32:
		return toRat(float64(n))
	}
	return nil, false
}

func typeMismatch(want string, v any) error {
	return fmt.Errorf("expected %s, found %s", want, describe(v))
}

// describe names the raw shape of v for diagnostics.
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		if len(t) > 32 {
			t = t[:32] + "..."
		}
		return fmt.Sprintf("string %q", t)
	case bool:
		return fmt.Sprintf("boolean %t", t)
	case int, int64, uint64, float64, float32:
		return fmt.Sprintf("number %v", t)
	case []any:
		return "sequence"
	}
	if rawdoc.IsMapping(v) {
		return "mapping"
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
}
