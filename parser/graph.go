package parser

import "github.com/erraggy/oasprim/internal/pathutil"

// Graph is a loaded, fully resolved set of documents. It is read-only and
// safe for concurrent use.
type Graph struct {
	root *Document
	docs []*Document
	byID map[string]*Document
}

func newGraph(root *Document, docs []*Document) *Graph {
	g := &Graph{root: root, docs: docs, byID: make(map[string]*Document, len(docs))}
	for _, d := range docs {
		g.byID[d.id] = d
	}
	return g
}

// Root returns the Swagger object of the root document.
func (g *Graph) Root() *Swagger { return g.root.root }

// Document returns a loaded document by identifier, or nil.
func (g *Graph) Document(id string) *Document { return g.byID[id] }

// Documents returns every loaded document, the root first.
func (g *Graph) Documents() []*Document {
	out := make([]*Document, len(g.docs))
	copy(out, g.docs)
	return out
}

// Edges returns every reference edge of every loaded document.
func (g *Graph) Edges() []*RefEdge {
	var out []*RefEdge
	for _, d := range g.docs {
		out = append(out, d.edges...)
	}
	return out
}

// Resolve returns the object at a pointer, or nil. The pointer is an origin
// path of the root document ("#/definitions/Pet") or is prefixed with a
// document identifier ("defs.yaml#/definitions/Pet"), resolved relative to
// the root document like a $ref.
func (g *Graph) Resolve(pointer string) Object {
	docRef, fragment := pathutil.Split(pointer)
	doc := g.root
	if docRef != "" {
		doc = g.byID[docRef]
		if doc == nil {
			doc = g.byID[joinID(g.root.id, docRef)]
		}
		if doc == nil {
			return nil
		}
	}
	return doc.Lookup(fragment)
}

// Schema returns the schema at a pointer, or nil.
func (g *Graph) Schema(pointer string) *Schema {
	s, _ := g.Resolve(pointer).(*Schema)
	return s
}

// Parameter returns the parameter at a pointer, or nil.
func (g *Graph) Parameter(pointer string) *Parameter {
	p, _ := g.Resolve(pointer).(*Parameter)
	return p
}

// Operations returns the flattened operations of the root document.
func (g *Graph) Operations() *Named[*Operation] {
	if g.Root().Paths == nil {
		return nil
	}
	return g.Root().Paths.Operations()
}

// Operation returns a flattened operation of the root document by name, or nil.
func (g *Graph) Operation(name string) *Operation {
	op, _ := g.Operations().Get(name)
	return op
}
