package primitives

import (
	"errors"
	"slices"

	"github.com/erraggy/oasprim/internal/pathutil"
	"github.com/erraggy/oasprim/parser"
	"github.com/erraggy/oasprim/rawdoc"
)

// Model is a mapping of property names to values, built from a schema with
// properties or allOf. Properties are kept in declaration order, followed by
// additional properties in input order.
type Model struct {
	base
	schema *parser.Schema
	names  []string
	fields map[string]Value
}

// Schema returns the schema the model was built from. With a discriminator
// this is the selected subtype.
func (m *Model) Schema() *parser.Schema { return m.schema }

// Get returns the value of a property.
func (m *Model) Get(name string) (Value, bool) {
	v, ok := m.fields[name]
	return v, ok
}

// Names returns the names of the properties present.
func (m *Model) Names() []string { return slices.Clone(m.names) }

// Len returns the number of properties present.
func (m *Model) Len() int { return len(m.names) }

func (m *Model) Native() any {
	out := make(map[string]any, len(m.fields))
	for name, v := range m.fields {
		out[name] = v.Native()
	}
	return out
}

func (m *Model) ToJSON() any {
	out := make(map[string]any, len(m.fields))
	for name, v := range m.fields {
		out[name] = v.ToJSON()
	}
	return out
}

// String returns the JSON encoding of the model.
func (m *Model) String() string {
	data, err := MarshalJSON(m)
	if err != nil {
		return ""
	}
	return string(data)
}

// MarshalJSON implements json.Marshaler.
func (m *Model) MarshalJSON() ([]byte, error) { return MarshalJSON(m) }

func (f *Factory) model(s *parser.Schema, raw any, path *pathutil.PathBuilder) (Value, error) {
	entries, ok := rawdoc.Entries(raw)
	if !ok {
		return nil, mismatch(s, path, raw, "a mapping")
	}
	s, err := f.subtype(s, entries, path)
	if err != nil {
		return nil, err
	}

	props := s.EffectiveProperties()
	var errs []error
	for _, name := range s.EffectiveRequired() {
		if _, ok := lookup(entries, name); !ok {
			errs = append(errs, missing(s, path, name))
		}
	}

	m := &Model{base: base{node: s}, schema: s, fields: make(map[string]Value, len(entries))}
	var extra []string
	for _, it := range entries {
		prop, declared := props.Get(it.Key)
		if !declared {
			if s.AdditionalProperties == nil {
				f.logger.Debug("dropping undeclared property", "property", it.Key, "schema", s.Origin())
				continue
			}
			prop = s.AdditionalProperties
		}
		path.Push(it.Key)
		v, err := f.construct(prop, it.Value, path, nil, false)
		path.Pop()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m.fields[it.Key] = v
		if !declared {
			extra = append(extra, it.Key)
		}
	}

	if s.MinProperties != nil && len(entries) < *s.MinProperties {
		errs = append(errs, violation(s, path, "minProperties", len(entries),
			"mapping has %d properties, minimum is %d", len(entries), *s.MinProperties))
	}
	if s.MaxProperties != nil && len(entries) > *s.MaxProperties {
		errs = append(errs, violation(s, path, "maxProperties", len(entries),
			"mapping has %d properties, maximum is %d", len(entries), *s.MaxProperties))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, name := range props.Keys() {
		if _, ok := m.fields[name]; ok {
			m.names = append(m.names, name)
		}
	}
	m.names = append(m.names, extra...)
	return m, nil
}

// subtype selects the schema registered under the discriminator value of
// raw. A missing discriminator property keeps s; the required check reports
// it when the property is required.
func (f *Factory) subtype(s *parser.Schema, entries []rawdoc.Item, path *pathutil.PathBuilder) (*parser.Schema, error) {
	prop := s.EffectiveDiscriminator()
	if prop == "" {
		return s, nil
	}
	raw, ok := lookup(entries, prop)
	if !ok {
		return s, nil
	}
	path.Push(prop)
	defer path.Pop()
	value, ok := raw.(string)
	if !ok {
		return nil, mismatch(s, path, raw, "a string discriminator")
	}
	sub, ok := s.Subtype(value)
	if !ok {
		return nil, violation(s, path, "discriminator", value,
			"%q is not a known subtype of %s (known: %v)", value, schemaName(s), s.Subtypes().Keys())
	}
	if sub != s {
		f.logger.Debug("selected discriminator subtype", "schema", s.Origin(), "value", value, "subtype", sub.Origin())
	}
	return sub, nil
}

func schemaName(s *parser.Schema) string {
	if s.Name() != "" {
		return s.Name()
	}
	return s.Origin()
}

func lookup(entries []rawdoc.Item, key string) (any, bool) {
	for _, it := range entries {
		if it.Key == key {
			return it.Value, true
		}
	}
	return nil, false
}
