package parser

import (
	"slices"

	"github.com/erraggy/oasprim/oaserrors"
)

// Paths is the container of every path item of a document. Building it
// flattens the operations of all path items into one name-indexed mapping.
type Paths struct {
	node
	items      *Named[*PathItem]
	operations *Named[*Operation]
}

// Kind implements Object.
func (*Paths) Kind() Kind { return KindPaths }

// Get returns the path item declared for a URL template.
func (p *Paths) Get(path string) (*PathItem, bool) { return p.items.Get(path) }

// Items returns the path items keyed by URL template, in document order.
func (p *Paths) Items() *Named[*PathItem] { return p.items }

// Operations returns every operation keyed by its flattened name: the
// operationId, or "<method> <path>" when absent. Order follows the document.
func (p *Paths) Operations() *Named[*Operation] { return p.operations }

// Operation returns the flattened operation registered under name, or nil.
func (p *Paths) Operation(name string) *Operation {
	op, _ := p.operations.Get(name)
	return op
}

// flattenReferenced rebuilds the operation index once $ref path items are
// resolved, listing the target's operations at the referencing item's
// position. Those operations keep their own parent; ones not flattened by
// another container take this container's name and URL template.
func (p *Paths) flattenReferenced() error {
	if p == nil || !slices.ContainsFunc(p.items.Values(), (*PathItem).IsRef) {
		return nil
	}
	ops := newNamed[*Operation](p.operations.Len())
	for urlPath, item := range p.items.All() {
		for _, op := range item.Resolved().operations {
			name := flatName(op, urlPath)
			if first, dup := ops.Get(name); dup {
				return &oaserrors.DuplicateNameError{
					Document:  p.doc.id,
					Path:      op.origin,
					Name:      name,
					FirstPath: first.origin,
				}
			}
			if op.name == "" {
				op.name = name
				op.urlPath = urlPath
			}
			ops.set(name, op)
		}
	}
	p.operations = ops
	return nil
}

// PathItem describes the operations available on a single path
type PathItem struct {
	node
	refNode
	Get        *Operation
	Put        *Operation
	Post       *Operation
	Delete     *Operation
	Options    *Operation
	Head       *Operation
	Patch      *Operation
	Parameters []*Parameter

	operations []*Operation
}

// Kind implements Object.
func (*PathItem) Kind() Kind { return KindPathItem }

// Operations returns the declared operations in document order.
func (pi *PathItem) Operations() []*Operation { return slices.Clone(pi.operations) }

// Target returns the path item a $ref path item resolves to, or nil.
func (pi *PathItem) Target() *PathItem {
	t, _ := pi.target().(*PathItem)
	return t
}

// Resolved returns the target of a $ref path item, or the path item itself.
func (pi *PathItem) Resolved() *PathItem {
	if t := pi.Target(); t != nil {
		return t
	}
	return pi
}

// addOperation is the field setter shared by the method fields.
func (pi *PathItem) addOperation(method string, op *Operation) {
	op.method = method
	op.holder = pi.self
	pi.operations = append(pi.operations, op)
}

// Operation describes a single API operation on a path
type Operation struct {
	node
	Tags         []string
	Summary      string
	Description  string
	ExternalDocs *ExternalDocs
	OperationID  string
	Consumes     []string
	Produces     []string
	Parameters   []*Parameter
	Responses    *Named[*Response]
	Schemes      []string
	Deprecated   bool
	Security     []SecurityRequirement

	name      string
	method    string
	urlPath   string
	holder    int
	effective []*Parameter
	linked    bool
}

// Kind implements Object.
func (*Operation) Kind() Kind { return KindOperation }

// Name returns the flattened name of the operation.
func (op *Operation) Name() string { return op.name }

// Method returns the lower-case HTTP method the operation is declared under.
func (op *Operation) Method() string { return op.method }

// URLPath returns the URL template of the path item declaring the operation.
func (op *Operation) URLPath() string { return op.urlPath }

// PathItem returns the path item that declared the operation.
func (op *Operation) PathItem() *PathItem {
	if op.doc == nil || op.holder < 0 || op.holder >= len(op.doc.nodes) {
		return nil
	}
	pi, _ := op.doc.nodes[op.holder].(*PathItem)
	return pi
}

// EffectiveParameters returns the operation's parameters followed by the
// path-level parameters it does not override (same name and location).
func (op *Operation) EffectiveParameters() []*Parameter {
	if !op.linked {
		return slices.Clone(op.Parameters)
	}
	return slices.Clone(op.effective)
}

// Parameter returns the resolved effective parameter with the given name and
// location, or nil.
func (op *Operation) Parameter(name, in string) *Parameter {
	for _, p := range op.EffectiveParameters() {
		r := p.Resolved()
		if r.Name == name && r.In == in {
			return r
		}
	}
	return nil
}

// Response returns the resolved response declared for a status code, falling
// back to "default". It returns nil when neither exists.
func (op *Operation) Response(code string) *Response {
	if r, ok := op.Responses.Get(code); ok {
		return r.Resolved()
	}
	if r, ok := op.Responses.Get("default"); ok {
		return r.Resolved()
	}
	return nil
}

// Response describes a single response from an API operation
type Response struct {
	node
	refNode
	Description string
	Schema      *Schema
	Headers     *Named[*Header]
	Examples    map[string]any
}

// Kind implements Object.
func (*Response) Kind() Kind { return KindResponse }

// Target returns the response a $ref response resolves to, or nil.
func (r *Response) Target() *Response {
	t, _ := r.target().(*Response)
	return t
}

// Resolved returns the target of a $ref response, or the response itself.
func (r *Response) Resolved() *Response {
	if t := r.Target(); t != nil {
		return t
	}
	return r
}
