package primitives

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/oasprim/parser"
)

// Value is a validated primitive produced by a Factory. Values are immutable.
type Value interface {
	// Node returns the node that validated the value. For a $ref node or a
	// body parameter it is the resolved schema.
	Node() parser.Typed
	// Native returns the value as a Go value (int64, float64, string, bool,
	// []byte, time.Time, uuid.UUID, []any or map[string]any).
	Native() any
	// String returns the text rendering used in headers, paths and queries.
	String() string
	// ToJSON returns the value in the form used when re-serializing it.
	ToJSON() any
}

type base struct {
	node parser.Typed
}

func (b base) Node() parser.Typed { return b.node }

// Integer is an integer value
type Integer struct {
	base
	v int64
}

// NewInteger returns an Integer validated by node. Creators registered on a
// Factory use the New functions to build their results; the Factory still
// checks the node's constraints afterwards.
func NewInteger(node parser.Typed, v int64) *Integer {
	return &Integer{base: base{node: node}, v: v}
}

// Int64 returns the integer.
func (i *Integer) Int64() int64 { return i.v }

func (i *Integer) Native() any    { return i.v }
func (i *Integer) String() string { return strconv.FormatInt(i.v, 10) }
func (i *Integer) ToJSON() any    { return i.v }

func (i *Integer) rat() *big.Rat { return new(big.Rat).SetInt64(i.v) }

// Number is a floating point value. Constraint checks use the exact decimal
// the value was constructed from.
type Number struct {
	base
	v float64
	r *big.Rat
}

// NewNumber returns a Number validated by node. A NaN or infinite v fails
// the Factory's constraint check.
func NewNumber(node parser.Typed, v float64) *Number {
	r, _ := floatRat(v, 64)
	return &Number{base: base{node: node}, v: v, r: r}
}

// Float64 returns the number.
func (n *Number) Float64() float64 { return n.v }

func (n *Number) Native() any    { return n.v }
func (n *Number) String() string { return formatFloat(n.v) }
func (n *Number) ToJSON() any    { return n.v }

func (n *Number) rat() *big.Rat { return n.r }

// String is a string value
type String struct {
	base
	v string
}

// NewString returns a String validated by node.
func NewString(node parser.Typed, v string) *String {
	return &String{base: base{node: node}, v: v}
}

func (s *String) Native() any    { return s.v }
func (s *String) String() string { return s.v }
func (s *String) ToJSON() any    { return s.v }

// Boolean is a boolean value
type Boolean struct {
	base
	v bool
}

// NewBoolean returns a Boolean validated by node.
func NewBoolean(node parser.Typed, v bool) *Boolean {
	return &Boolean{base: base{node: node}, v: v}
}

// Bool returns the boolean.
func (b *Boolean) Bool() bool { return b.v }

func (b *Boolean) Native() any    { return b.v }
func (b *Boolean) String() string { return strconv.FormatBool(b.v) }
func (b *Boolean) ToJSON() any    { return b.v }

// Byte is binary data carried as base64 text (format byte). String renders
// the data itself and ToJSON the base64 encoding.
type Byte struct {
	base
	data []byte
}

// Bytes returns a copy of the data.
func (b *Byte) Bytes() []byte { return bytes.Clone(b.data) }

func (b *Byte) Native() any    { return b.Bytes() }
func (b *Byte) String() string { return string(b.data) }
func (b *Byte) ToJSON() any    { return base64.StdEncoding.EncodeToString(b.data) }

// Date is a calendar date (format date), rendered as 2006-01-02.
type Date struct {
	base
	t time.Time
}

// Time returns midnight UTC of the date.
func (d *Date) Time() time.Time { return d.t }

func (d *Date) Native() any    { return d.t }
func (d *Date) String() string { return d.t.Format(time.DateOnly) }
func (d *Date) ToJSON() any    { return d.String() }

// DateTime is a timestamp (format date-time), rendered as RFC 3339 in UTC.
type DateTime struct {
	base
	t time.Time
}

// Time returns the timestamp in UTC.
func (d *DateTime) Time() time.Time { return d.t }

func (d *DateTime) Native() any    { return d.t }
func (d *DateTime) String() string { return d.t.Format(time.RFC3339Nano) }
func (d *DateTime) ToJSON() any    { return d.String() }

// UUID is a string with format uuid, rendered in canonical lowercase form.
type UUID struct {
	base
	id uuid.UUID
}

// UUID returns the parsed identifier.
func (u *UUID) UUID() uuid.UUID { return u.id }

func (u *UUID) Native() any    { return u.id }
func (u *UUID) String() string { return u.id.String() }
func (u *UUID) ToJSON() any    { return u.id.String() }

// File is an opaque binary passthrough for type file and format binary.
// Native returns the raw value unchanged (a []byte, a string, an io.Reader,
// ...).
type File struct {
	base
	data any
}

func (f *File) Native() any { return f.data }

// String renders text and byte content as is, uploaded form files by their
// file name and anything with a Name method (such as *os.File) by its name.
func (f *File) String() string {
	switch d := f.data.(type) {
	case string:
		return d
	case []byte:
		return string(d)
	case *multipart.FileHeader:
		return d.Filename
	case interface{ Name() string }:
		return d.Name()
	case fmt.Stringer:
		return d.String()
	}
	return ""
}

func (f *File) ToJSON() any { return f.String() }

// MarshalJSON encodes the ToJSON form of v. Model properties keep their
// declaration order.
func MarshalJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch t := v.(type) {
	case *Model:
		buf.WriteByte('{')
		for i, name := range t.names {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, t.fields[name]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *Array:
		buf.WriteByte('[')
		for i, item := range t.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		data, err := json.Marshal(v.ToJSON())
		if err != nil {
			return fmt.Errorf("primitives: encoding %s: %w", v.Node().Origin(), err)
		}
		buf.Write(data)
	}
	return nil
}

var (
	_ Value = (*Integer)(nil)
	_ Value = (*Number)(nil)
	_ Value = (*String)(nil)
	_ Value = (*Boolean)(nil)
	_ Value = (*Byte)(nil)
	_ Value = (*Date)(nil)
	_ Value = (*DateTime)(nil)
	_ Value = (*UUID)(nil)
	_ Value = (*File)(nil)
	_ Value = (*Array)(nil)
	_ Value = (*Model)(nil)
)
