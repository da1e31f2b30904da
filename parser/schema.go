package parser

import "slices"

// Schema represents a Swagger 2.0 Schema object, a subset of JSON Schema
// draft 4 extended with discriminator, readOnly, xml and example.
type Schema struct {
	node
	refNode
	Constraints
	Title                       string
	Description                 string
	Items                       *Schema
	AllOf                       []*Schema
	Properties                  *Named[*Schema]
	AdditionalProperties        *Schema // Set when additionalProperties is a schema
	AdditionalPropertiesAllowed *bool   // Set when additionalProperties is a boolean
	MaxProperties               *int
	MinProperties               *int
	Required                    []string
	Discriminator               string
	ReadOnly                    bool
	XML                         *XML
	ExternalDocs                *ExternalDocs
	Example                     any

	// filled by the link phase
	name          string
	composed      bool
	effective     *Named[*Schema]
	effectiveReq  []string
	effectiveDisc string
	subtypes      *Named[*Schema]
}

// Kind implements Object.
func (*Schema) Kind() Kind { return KindSchema }

// Constraint implements Typed.
func (s *Schema) Constraint() *Constraints { return &s.Constraints }

// ItemsNode implements Typed.
func (s *Schema) ItemsNode() Typed {
	if s.Items == nil {
		return nil
	}
	return s.Items
}

// Target returns the schema a $ref schema resolves to, or nil.
func (s *Schema) Target() *Schema {
	t, _ := s.target().(*Schema)
	return t
}

// Resolved returns the target of a $ref schema, or the schema itself.
func (s *Schema) Resolved() *Schema {
	if t := s.Target(); t != nil {
		return t
	}
	return s
}

// Name returns the definition name for schemas declared directly under
// "definitions", or "".
func (s *Schema) Name() string { return s.name }

// IsModel reports whether values of the schema are property mappings.
func (s *Schema) IsModel() bool {
	return s.Properties.Len() > 0 || len(s.AllOf) > 0 || s.Type == TypeObject
}

// EffectiveProperties returns the properties of the schema merged with those
// of its allOf entries, in order; later entries win on name collisions and the
// schema's own properties win last.
func (s *Schema) EffectiveProperties() *Named[*Schema] {
	if !s.composed {
		return s.Properties
	}
	return s.effective
}

// EffectiveRequired returns the union of the required names of the schema and
// its allOf entries.
func (s *Schema) EffectiveRequired() []string {
	if !s.composed {
		return slices.Clone(s.Required)
	}
	return slices.Clone(s.effectiveReq)
}

// EffectiveDiscriminator returns the discriminator property of the schema or,
// when it declares none, the one inherited through allOf.
func (s *Schema) EffectiveDiscriminator() string {
	if !s.composed {
		return s.Discriminator
	}
	return s.effectiveDisc
}

// Subtype returns the definition registered under a discriminator value.
func (s *Schema) Subtype(value string) (*Schema, bool) {
	return s.subtypes.Get(value)
}

// Subtypes returns the registered discriminator subtypes, keyed by
// discriminator value.
func (s *Schema) Subtypes() *Named[*Schema] { return s.subtypes }
