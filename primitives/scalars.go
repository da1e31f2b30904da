package primitives

import (
	"bytes"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func (f *Factory) integer(in Input) (Value, error) {
	r, err := numberOf(in)
	if err != nil {
		return nil, err
	}
	if !r.IsInt() {
		return nil, mismatch(in.Node, in.path, in.Raw, "an integer")
	}
	bits := 64
	if in.Node.Constraint().Format == "int32" {
		bits = 32
	}
	v, ok := int64Of(r, bits)
	if !ok {
		return nil, violation(in.Node, in.path, "format", in.Raw, "%s is out of range for int%d", formatRat(r), bits)
	}
	return &Integer{base: base{node: in.Node}, v: v}, nil
}

func (f *Factory) number(in Input) (Value, error) {
	r, err := numberOf(in)
	if err != nil {
		return nil, err
	}
	v, _ := r.Float64()
	if math.IsInf(v, 0) || (in.Node.Constraint().Format == "float" && math.Abs(v) > math.MaxFloat32) {
		return nil, violation(in.Node, in.path, "format", in.Raw, "%s is out of range for %s", formatRat(r), formatName(in))
	}
	return &Number{base: base{node: in.Node}, v: v, r: r}, nil
}

func formatName(in Input) string {
	if format := in.Node.Constraint().Format; format != "" {
		return format
	}
	return "double"
}

// numberOf reads a raw number, parsing decimal text for textual input.
func numberOf(in Input) (*big.Rat, error) {
	if s, ok := in.Raw.(string); ok && in.Textual {
		if r, ok := parseDecimal(s); ok {
			return r, nil
		}
		return nil, mismatch(in.Node, in.path, in.Raw, "a number")
	}
	if r, ok := ratOf(in.Raw); ok {
		return r, nil
	}
	return nil, mismatch(in.Node, in.path, in.Raw, "a number")
}

func (f *Factory) boolean(in Input) (Value, error) {
	switch raw := in.Raw.(type) {
	case bool:
		return &Boolean{base: base{node: in.Node}, v: raw}, nil
	case string:
		if in.Textual {
			if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
				return &Boolean{base: base{node: in.Node}, v: b}, nil
			}
		}
	}
	return nil, mismatch(in.Node, in.path, in.Raw, "a boolean")
}

func (f *Factory) str(in Input) (Value, error) {
	s, ok := in.Raw.(string)
	if !ok {
		return nil, mismatch(in.Node, in.path, in.Raw, "a string")
	}
	return &String{base: base{node: in.Node}, v: s}, nil
}

// formatted returns a creator for a string format checked by a validator tag.
func (f *Factory) formatted(tag string) Creator {
	return func(in Input) (Value, error) {
		v, err := f.str(in)
		if err != nil {
			return nil, err
		}
		s := v.(*String).v
		if err := f.formats.Var(s, tag); err != nil {
			return nil, violation(in.Node, in.path, "format", s, "%q is not a valid %s", s, in.Node.Constraint().Format)
		}
		return v, nil
	}
}

func (f *Factory) byteString(in Input) (Value, error) {
	switch raw := in.Raw.(type) {
	case string:
		return &Byte{base: base{node: in.Node}, data: []byte(raw)}, nil
	case []byte:
		return &Byte{base: base{node: in.Node}, data: bytes.Clone(raw)}, nil
	}
	return nil, mismatch(in.Node, in.path, in.Raw, "a string")
}

var (
	dateLayouts     = []string{time.DateOnly, time.RFC3339Nano, "2006-01-02T15:04:05.999999999"}
	dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", time.DateOnly}
)

func (f *Factory) date(in Input) (Value, error) {
	t, err := timeOf(in, dateLayouts)
	if err != nil {
		return nil, err
	}
	y, m, d := t.Date()
	return &Date{base: base{node: in.Node}, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
}

func (f *Factory) dateTime(in Input) (Value, error) {
	t, err := timeOf(in, dateTimeLayouts)
	if err != nil {
		return nil, err
	}
	return &DateTime{base: base{node: in.Node}, t: t.UTC()}, nil
}

// Epoch seconds outside years 0001 to 9999 are rejected.
var (
	minEpoch = big.NewRat(time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix(), 1)
	maxEpoch = big.NewRat(time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC).Unix(), 1)
	nanos    = big.NewRat(int64(time.Second), 1)
)

// timeOf reads a time.Time, epoch seconds or text in one of layouts. A
// time.Time and text with an offset keep their own location, text without a
// zone is taken as UTC, and epoch seconds give UTC.
func timeOf(in Input, layouts []string) (time.Time, error) {
	format := in.Node.Constraint().Format
	switch raw := in.Raw.(type) {
	case time.Time:
		return raw, nil
	case string:
		text := strings.TrimSpace(raw)
		for _, layout := range layouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t, nil
			}
		}
		return time.Time{}, violation(in.Node, in.path, "format", raw, "%q is not a valid %s", raw, format)
	case float32, float64:
		if f := reflect.ValueOf(raw).Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}, violation(in.Node, in.path, "format", raw, "%v is not a valid %s", raw, format)
		}
	}
	r, ok := ratOf(in.Raw)
	if !ok {
		return time.Time{}, mismatch(in.Node, in.path, in.Raw, "a "+format)
	}
	if r.Cmp(minEpoch) < 0 || r.Cmp(maxEpoch) >= 0 {
		return time.Time{}, violation(in.Node, in.path, "format", in.Raw, "epoch %s is out of range for a %s", r.FloatString(3), format)
	}
	whole := new(big.Int).Div(r.Num(), r.Denom())
	frac := new(big.Rat).Sub(r, new(big.Rat).SetInt(whole))
	frac.Mul(frac, nanos)
	ns := new(big.Int).Div(frac.Num(), frac.Denom())
	return time.Unix(whole.Int64(), ns.Int64()).UTC(), nil
}

func (f *Factory) uuidString(in Input) (Value, error) {
	switch raw := in.Raw.(type) {
	case uuid.UUID:
		return &UUID{base: base{node: in.Node}, id: raw}, nil
	case [16]byte:
		return &UUID{base: base{node: in.Node}, id: uuid.UUID(raw)}, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, violation(in.Node, in.path, "format", raw, "%q is not a valid uuid: %v", raw, err)
		}
		return &UUID{base: base{node: in.Node}, id: id}, nil
	}
	return nil, mismatch(in.Node, in.path, in.Raw, "a string")
}

func (f *Factory) file(in Input) (Value, error) {
	if in.Raw == nil {
		return nil, mismatch(in.Node, in.path, in.Raw, "file content")
	}
	return &File{base: base{node: in.Node}, data: in.Raw}, nil
}
