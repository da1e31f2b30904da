package parser

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasprim/internal/pathutil"
	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/rawdoc"
)

// builder constructs objects of one document by recursive descent over its
// raw tree.
type builder struct {
	doc *Document
	log Logger
}

// build constructs one object of kind from raw, registering it and all its
// descendants in the document arena.
func (b *builder) build(kind Kind, raw any, origin string, parent int) (Object, error) {
	entries, ok := rawdoc.Entries(raw)
	if !ok {
		return nil, b.loadError(origin, fmt.Sprintf("expected a mapping for %s, found %s", kind, describe(raw)), nil)
	}
	t := tables[kind]
	obj := newObject(kind)
	self, err := b.doc.register(obj, origin, parent)
	if err != nil {
		return nil, b.loadError(origin, "duplicate origin path", err)
	}

	var seen map[string]bool
	if hasDefaults(t) {
		seen = make(map[string]bool, len(entries))
	}
	for _, it := range entries {
		if strings.HasPrefix(it.Key, "x-") {
			obj.base().setExtension(it.Key, rawdoc.Plain(it.Value))
			continue
		}
		f, declared := t.field(it.Key)
		if !declared {
			if t.patterned != nil {
				c, err := b.build(t.patternKind, it.Value, pathutil.Join(origin, it.Key), self)
				if err != nil {
					return nil, err
				}
				t.patterned(obj, it.Key, c)
			}
			continue
		}
		if seen != nil {
			seen[f.Name] = true
		}
		if err := b.assign(obj, self, f, it.Value, pathutil.Join(origin, f.Name)); err != nil {
			return nil, err
		}
	}
	for i := range t.fields {
		f := &t.fields[i]
		if f.Default != nil && !seen[f.Name] {
			if err := f.assign(obj, f.Default); err != nil {
				return nil, b.loadError(pathutil.Join(origin, f.Name), "invalid default", err)
			}
		}
	}

	if r, ok := obj.(referrer); ok && r.refs().Ref != "" {
		edge := &RefEdge{Source: obj, Ref: r.refs().Ref}
		r.refs().link = edge
		b.doc.edges = append(b.doc.edges, edge)
	}

	if t.post != nil {
		if err := t.post(b, obj); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// assign builds the raw value of a declared field and stores it on obj.
// A null value for an object-shaped field leaves it absent.
func (b *builder) assign(obj Object, self int, f *Field, v any, origin string) error {
	if v == nil && f.Shape != ShapeScalar {
		return nil
	}
	switch f.Shape {
	case ShapeScalar:
		if err := f.assign(obj, v); err != nil {
			return b.loadError(origin, "invalid value for "+f.Name, err)
		}
		return nil

	case ShapeObjectOrBool:
		if flag, ok := v.(bool); ok {
			return f.assign(obj, flag)
		}
		fallthrough

	case ShapeObject:
		c, err := b.build(f.Kind, v, origin, self)
		if err != nil {
			return err
		}
		return f.assign(obj, c)

	case ShapeList:
		seq, ok := v.([]any)
		if !ok {
			return b.loadError(origin, fmt.Sprintf("expected a sequence of %s, found %s", f.Kind, describe(v)), nil)
		}
		list := make([]Object, 0, len(seq))
		for i, item := range seq {
			c, err := b.build(f.Kind, item, pathutil.Index(origin, i), self)
			if err != nil {
				return err
			}
			list = append(list, c)
		}
		return f.assign(obj, list)

	case ShapeMap:
		entries, ok := rawdoc.Entries(v)
		if !ok {
			return b.loadError(origin, fmt.Sprintf("expected a mapping of %s, found %s", f.Kind, describe(v)), nil)
		}
		m := newNamed[Object](len(entries))
		for _, it := range entries {
			if f.skipVendorKeys && strings.HasPrefix(it.Key, "x-") {
				continue
			}
			c, err := b.build(f.Kind, it.Value, pathutil.Join(origin, it.Key), self)
			if err != nil {
				return err
			}
			m.set(it.Key, c)
		}
		return f.assign(obj, m)
	}
	return fmt.Errorf("parser: unknown shape %d for field %s", f.Shape, f.Name)
}

func (b *builder) loadError(origin, msg string, cause error) error {
	return &oaserrors.LoadError{Document: b.doc.id, Path: origin, Message: msg, Cause: cause}
}

func hasDefaults(t *table) bool {
	for i := range t.fields {
		if t.fields[i].Default != nil {
			return true
		}
	}
	return false
}

// nameDefinitions records the definition name on every top-level schema.
func nameDefinitions(_ *builder, obj Object) error {
	for name, s := range obj.(*Swagger).Definitions.All() {
		s.name = name
	}
	return nil
}

// flattenOperations collects the operations of every path item into the
// Paths container, keyed by operationId or "<method> <path>". Each flattened
// operation is re-parented to the container. Path items that are references
// are flattened by flattenReferenced once resolved.
// flatName is the name an operation is flattened under.
func flatName(op *Operation, urlPath string) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return op.method + " " + urlPath
}

func flattenOperations(b *builder, obj Object) error {
	p := obj.(*Paths)
	p.operations = newNamed[*Operation](p.items.Len())
	for urlPath, item := range p.items.All() {
		if item.IsRef() {
			continue
		}
		for _, op := range item.operations {
			name := flatName(op, urlPath)
			if first, dup := p.operations.Get(name); dup {
				return &oaserrors.DuplicateNameError{
					Document:  b.doc.id,
					Path:      op.origin,
					Name:      name,
					FirstPath: first.origin,
				}
			}
			op.name = name
			op.urlPath = urlPath
			op.parent = p.self
			p.operations.set(name, op)
		}
	}
	if b.log != nil {
		b.log.Debug("flattened operations", "document", b.doc.id, "count", p.operations.Len())
	}
	return nil
}
