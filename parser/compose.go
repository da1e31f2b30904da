package parser

import (
	"slices"

	"github.com/erraggy/oasprim/oaserrors"
)

// link runs once every reference is resolved: it flattens referenced path
// items, merges allOf compositions, registers discriminator subtypes and
// merges path-level parameters.
func link(docs []*Document) error {
	for _, doc := range docs {
		if doc.root != nil {
			if err := doc.root.Paths.flattenReferenced(); err != nil {
				return err
			}
		}
	}
	c := &composer{active: make(map[*Schema]bool)}
	for _, doc := range docs {
		for _, obj := range doc.nodes {
			if s, ok := obj.(*Schema); ok {
				if err := c.compose(s); err != nil {
					return err
				}
			}
		}
	}
	for _, doc := range docs {
		for _, obj := range doc.nodes {
			switch o := obj.(type) {
			case *Schema:
				registerSubtype(o)
			case *Operation:
				o.linkParameters()
			}
		}
	}
	return nil
}

type composer struct {
	active map[*Schema]bool
}

// compose computes the effective properties, required names and
// discriminator of s from its allOf entries and its own declarations.
func (c *composer) compose(s *Schema) error {
	if s.composed {
		return nil
	}
	if c.active[s] {
		return &oaserrors.ReferenceError{
			Document:   s.doc.id,
			Source:     s.origin,
			Ref:        "allOf",
			IsCircular: true,
			Message:    "allOf composition includes itself",
		}
	}
	c.active[s] = true
	defer delete(c.active, s)

	props := newNamed[*Schema](s.Properties.Len())
	var required []string
	disc := ""
	for _, part := range s.AllOf {
		r := part.Resolved()
		if err := c.compose(r); err != nil {
			return err
		}
		for name, p := range r.effective.All() {
			props.set(name, p)
		}
		for _, name := range r.effectiveReq {
			if !slices.Contains(required, name) {
				required = append(required, name)
			}
		}
		if r.effectiveDisc != "" {
			disc = r.effectiveDisc
		}
	}
	for name, p := range s.Properties.All() {
		props.set(name, p)
	}
	for _, name := range s.Required {
		if !slices.Contains(required, name) {
			required = append(required, name)
		}
	}
	if s.Discriminator != "" {
		disc = s.Discriminator
	}

	s.effective = props
	s.effectiveReq = required
	s.effectiveDisc = disc
	s.composed = true
	return nil
}

// registerSubtype adds a named definition to its own discriminator table and
// to that of every allOf ancestor with a discriminator. The key is the
// definition name unless overridden by the x-discriminator-value extension.
func registerSubtype(s *Schema) {
	if s.name == "" {
		return
	}
	key := s.name
	if v, ok := s.Extension(DiscriminatorValueExtension); ok {
		if str, ok := v.(string); ok && str != "" {
			key = str
		}
	}
	if s.effectiveDisc != "" {
		s.addSubtype(key, s)
	}
	seen := map[*Schema]bool{s: true}
	var visit func(*Schema)
	visit = func(cur *Schema) {
		for _, part := range cur.AllOf {
			anc := part.Resolved()
			if seen[anc] {
				continue
			}
			seen[anc] = true
			if anc.effectiveDisc != "" {
				anc.addSubtype(key, s)
			}
			visit(anc)
		}
	}
	visit(s)
}

func (s *Schema) addSubtype(key string, sub *Schema) {
	if s.subtypes == nil {
		s.subtypes = newNamed[*Schema](1)
	}
	if _, exists := s.subtypes.Get(key); !exists {
		s.subtypes.set(key, sub)
	}
}

// linkParameters appends the path-level parameters the operation does not
// override to its effective parameter list.
func (op *Operation) linkParameters() {
	type key struct{ name, in string }
	effective := slices.Clone(op.Parameters)
	seen := make(map[key]bool, len(op.Parameters))
	for _, p := range op.Parameters {
		r := p.Resolved()
		seen[key{r.Name, r.In}] = true
	}
	if pi := op.PathItem(); pi != nil {
		for _, p := range pi.Parameters {
			r := p.Resolved()
			if !seen[key{r.Name, r.In}] {
				effective = append(effective, p)
			}
		}
	}
	op.effective = effective
	op.linked = true
}
