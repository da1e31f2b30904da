package primitives

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/erraggy/oasprim/parser"
	"github.com/erraggy/oasprim/rawdoc"
)

var separators = map[string]string{
	parser.CollectionCSV:   ",",
	parser.CollectionSSV:   " ",
	parser.CollectionTSV:   "\t",
	parser.CollectionPipes: "|",
	parser.CollectionMulti: ",",
}

// nestedFormats are the formats of undeclared levels of a nested array,
// outermost first.
var nestedFormats = []string{parser.CollectionSSV, parser.CollectionCSV, parser.CollectionPipes}

// spareFormat is used by an undeclared level once every nested format is
// taken by the levels around it.
const spareFormat = parser.CollectionTSV

// Array is a sequence of values built from a native sequence or a delimited
// string.
type Array struct {
	base
	items  []Value
	format string
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// Index returns the i-th element.
func (a *Array) Index(i int) Value { return a.items[i] }

// Values returns the elements.
func (a *Array) Values() []Value { return slices.Clone(a.items) }

// Format returns the collection format the array is rendered with.
func (a *Array) Format() string { return a.format }

func (a *Array) Native() any {
	out := make([]any, len(a.items))
	for i, v := range a.items {
		out[i] = v.Native()
	}
	return out
}

// String joins the element renderings with the separator of the array's
// collection format. A multi array renders comma separated.
func (a *Array) String() string {
	parts := make([]string, len(a.items))
	for i, v := range a.items {
		parts[i] = v.String()
	}
	return strings.Join(parts, separators[a.format])
}

// Strings returns the rendering of each element, as sent for a multi
// collection.
func (a *Array) Strings() []string {
	out := make([]string, len(a.items))
	for i, v := range a.items {
		out[i] = v.String()
	}
	return out
}

func (a *Array) ToJSON() any {
	out := make([]any, len(a.items))
	for i, v := range a.items {
		out[i] = v.ToJSON()
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (a *Array) MarshalJSON() ([]byte, error) { return MarshalJSON(a) }

// collectionFormat picks the format of one array level. outer holds the
// formats of the enclosing levels, outermost first, and inner the format
// declared by a nested items array. An undeclared level takes the nested
// format of its depth, or the next one whose separator is free.
func collectionFormat(c *parser.Constraints, outer []string, nested bool, inner string) string {
	if c.CollectionFormat != "" {
		return c.CollectionFormat
	}
	if !nested {
		return parser.CollectionCSV
	}
	taken := make(map[string]bool, len(outer)+1)
	for _, f := range outer {
		taken[separators[f]] = true
	}
	if inner != "" {
		taken[separators[inner]] = true
	}
	depth := len(outer)
	for i := range nestedFormats {
		f := nestedFormats[(depth+i)%len(nestedFormats)]
		if !taken[separators[f]] {
			return f
		}
	}
	if !taken[separators[spareFormat]] {
		return spareFormat
	}
	return nestedFormats[depth%len(nestedFormats)]
}

func isArray(node parser.Typed) bool {
	return resolve(node).Constraint().Type == parser.TypeArray
}

func (f *Factory) array(in Input) (Value, error) {
	items := in.Node.ItemsNode()
	if items == nil {
		return nil, unsupported(in.Node, in.path, "array without items")
	}
	var inner string
	if isArray(items) {
		inner = resolve(items).Constraint().CollectionFormat
	}
	format := collectionFormat(in.Node.Constraint(), in.outer, len(in.outer) > 0 || isArray(items), inner)
	if _, ok := separators[format]; !ok {
		return nil, unsupported(in.Node, in.path, "unknown collection format %q", format)
	}

	elems, textual, ok := elements(in.Raw, format, in.Textual)
	if !ok {
		return nil, mismatch(in.Node, in.path, in.Raw, "a sequence or a delimited string")
	}

	a := &Array{base: base{node: in.Node}, format: format, items: make([]Value, 0, len(elems))}
	outer := append(slices.Clip(in.outer), format)
	var errs []error
	for i, e := range elems {
		in.path.PushIndex(i)
		v, err := f.construct(items, e, in.path, outer, textual)
		in.path.Pop()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		a.items = append(a.items, v)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return a, nil
}

// elements splits a raw array. Only textual input may be a delimited string;
// elements split from it are textual too.
func elements(raw any, format string, textual bool) ([]any, bool, bool) {
	if s, ok := raw.(string); ok && textual {
		if format == parser.CollectionMulti {
			return []any{s}, true, true
		}
		if s == "" {
			return nil, true, true
		}
		parts := strings.Split(s, separators[format])
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out, true, true
	}
	if ss, ok := raw.([]string); ok {
		out := make([]any, len(ss))
		for i, s := range ss {
			out[i] = s
		}
		return out, true, true
	}
	seq, ok := sequence(raw)
	return seq, false, ok
}

// sequence returns the elements of a raw sequence. Mappings and byte slices
// are not sequences.
func sequence(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case nil, []byte, string:
		return nil, false
	case []any:
		return v, true
	}
	if rawdoc.IsMapping(raw) {
		return nil, false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
