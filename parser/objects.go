package parser

import (
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/oasprim/internal/pathutil"
)

// Kind identifies the type of a specification object.
type Kind int

const (
	KindSwagger Kind = iota
	KindInfo
	KindContact
	KindLicense
	KindTag
	KindExternalDocs
	KindPaths
	KindPathItem
	KindOperation
	KindParameter
	KindItems
	KindHeader
	KindResponse
	KindSchema
	KindXML
	KindSecurityScheme
)

var kindNames = [...]string{
	KindSwagger:        "Swagger",
	KindInfo:           "Info",
	KindContact:        "Contact",
	KindLicense:        "License",
	KindTag:            "Tag",
	KindExternalDocs:   "ExternalDocs",
	KindPaths:          "Paths",
	KindPathItem:       "PathItem",
	KindOperation:      "Operation",
	KindParameter:      "Parameter",
	KindItems:          "Items",
	KindHeader:         "Header",
	KindResponse:       "Response",
	KindSchema:         "Schema",
	KindXML:            "XML",
	KindSecurityScheme: "SecurityScheme",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Object is implemented by every node of a specification object graph.
type Object interface {
	// Kind returns the object kind.
	Kind() Kind
	// Origin returns the JSON pointer the object was built from, unique within
	// its document (e.g., "#/paths/~1pets/get").
	Origin() string
	// Parent returns the owning object, or nil for a document root or an
	// object built directly as a $ref target. Flattened operations report
	// the Paths container.
	Parent() Object
	// Document returns the document the object belongs to.
	Document() *Document
	// Extension returns the value of an "x-" vendor extension.
	Extension(name string) (any, bool)
	// Extensions returns a copy of all vendor extensions.
	Extensions() map[string]any

	base() *node
}

// node is the state shared by every object.
type node struct {
	doc        *Document
	origin     string
	self       int
	parent     int
	extensions map[string]any
}

func (n *node) base() *node { return n }

// Origin implements Object.
func (n *node) Origin() string { return n.origin }

// Document implements Object.
func (n *node) Document() *Document { return n.doc }

// Parent implements Object.
func (n *node) Parent() Object {
	if n.doc == nil || n.parent < 0 || n.parent >= len(n.doc.nodes) {
		return nil
	}
	return n.doc.nodes[n.parent]
}

// Extension implements Object.
func (n *node) Extension(name string) (any, bool) {
	v, ok := n.extensions[name]
	return v, ok
}

// Extensions implements Object.
func (n *node) Extensions() map[string]any {
	if len(n.extensions) == 0 {
		return nil
	}
	return maps.Clone(n.extensions)
}

func (n *node) setExtension(name string, v any) {
	if n.extensions == nil {
		n.extensions = make(map[string]any)
	}
	n.extensions[name] = v
}

// refNode is embedded by the kinds that may be a $ref: Schema, Parameter,
// Response and PathItem.
type refNode struct {
	// Ref is the raw "$ref" value; empty when the object is not a reference.
	Ref string

	link *RefEdge
}

// IsRef reports whether the object is a reference.
func (r *refNode) IsRef() bool { return r.Ref != "" }

// Edge returns the reference edge created for the object, or nil.
func (r *refNode) Edge() *RefEdge { return r.link }

func (r *refNode) refs() *refNode { return r }

func (r *refNode) target() Object {
	if r.link == nil {
		return nil
	}
	return r.link.Target
}

type referrer interface {
	Object
	refs() *refNode
}

// RefEdge is a $ref found while building a document.
// Target is set by the resolver to the final, non-reference object the
// chain starting at Source ends on.
type RefEdge struct {
	Source Object
	Ref    string
	Target Object
}

// Resolved reports whether the edge has a target.
func (e *RefEdge) Resolved() bool { return e.Target != nil }

// Document is the arena owning every object built from one raw document.
type Document struct {
	id    string
	raw   any
	root  *Swagger
	nodes []Object
	index map[string]int
	edges []*RefEdge
}

func newDocument(id string, raw any) *Document {
	return &Document{id: id, raw: raw, index: make(map[string]int)}
}

// ID returns the identifier the document was fetched under.
func (d *Document) ID() string { return d.id }

// Root returns the Swagger root object, or nil for a fragment document
// (a referenced file that is not a complete Swagger document).
func (d *Document) Root() *Swagger { return d.root }

// Lookup returns the object built at an origin path, or nil.
func (d *Document) Lookup(origin string) Object {
	i, ok := d.index[pathutil.Normalize(origin)]
	if !ok {
		return nil
	}
	return d.nodes[i]
}

// Objects returns every object of the document in build order.
func (d *Document) Objects() []Object { return slices.Clone(d.nodes) }

// Edges returns the reference edges found in the document.
func (d *Document) Edges() []*RefEdge { return slices.Clone(d.edges) }

// register adds obj to the arena and returns its index.
func (d *Document) register(obj Object, origin string, parent int) (int, error) {
	if _, dup := d.index[origin]; dup {
		return 0, fmt.Errorf("origin path %s is already taken", origin)
	}
	n := obj.base()
	n.doc = d
	n.origin = origin
	n.parent = parent
	n.self = len(d.nodes)
	d.nodes = append(d.nodes, obj)
	d.index[origin] = n.self
	return n.self, nil
}
