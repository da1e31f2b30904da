package parser

import "math/big"

// Constraints is the validation vocabulary shared by Schema, Parameter, Items
// and Header. Absent numeric bounds are nil; present ones hold the exact
// decimal value written in the document.
type Constraints struct {
	Type             string
	Format           string
	Default          any
	Maximum          *big.Rat
	ExclusiveMaximum bool
	Minimum          *big.Rat
	ExclusiveMinimum bool
	MaxLength        *int
	MinLength        *int
	Pattern          string
	MaxItems         *int
	MinItems         *int
	UniqueItems      bool
	Enum             []any
	MultipleOf       *big.Rat
	CollectionFormat string
}

// Typed is a schema-like node: an object carrying Constraints that can
// validate a raw value. It is implemented by *Schema, *Parameter, *Items and
// *Header.
type Typed interface {
	Object
	// Constraint returns the node's constraint set.
	Constraint() *Constraints
	// ItemsNode returns the node describing array elements, or nil.
	ItemsNode() Typed
}

// Parameter describes a single operation parameter
type Parameter struct {
	node
	refNode
	Constraints
	Name            string
	In              string // "query", "header", "path", "formData" or "body"
	Description     string
	Required        bool
	Schema          *Schema // For In == "body"
	AllowEmptyValue bool
	Items           *Items // For Type == "array"
}

// Kind implements Object.
func (*Parameter) Kind() Kind { return KindParameter }

// Constraint implements Typed.
func (p *Parameter) Constraint() *Constraints { return &p.Constraints }

// ItemsNode implements Typed.
func (p *Parameter) ItemsNode() Typed {
	if p.Items == nil {
		return nil
	}
	return p.Items
}

// Target returns the parameter a $ref parameter resolves to, or nil.
func (p *Parameter) Target() *Parameter {
	t, _ := p.target().(*Parameter)
	return t
}

// Resolved returns the target of a $ref parameter, or the parameter itself.
func (p *Parameter) Resolved() *Parameter {
	if t := p.Target(); t != nil {
		return t
	}
	return p
}

// IsBody reports whether the parameter carries the request body.
func (p *Parameter) IsBody() bool { return p.In == ParamInBody }

// Items describes the type of items in an array parameter or header
type Items struct {
	node
	Constraints
	Items *Items
}

// Kind implements Object.
func (*Items) Kind() Kind { return KindItems }

// Constraint implements Typed.
func (i *Items) Constraint() *Constraints { return &i.Constraints }

// ItemsNode implements Typed.
func (i *Items) ItemsNode() Typed {
	if i.Items == nil {
		return nil
	}
	return i.Items
}

// Header represents a response header
type Header struct {
	node
	Constraints
	Description string
	Items       *Items
}

// Kind implements Object.
func (*Header) Kind() Kind { return KindHeader }

// Constraint implements Typed.
func (h *Header) Constraint() *Constraints { return &h.Constraints }

// ItemsNode implements Typed.
func (h *Header) ItemsNode() Typed {
	if h.Items == nil {
		return nil
	}
	return h.Items
}
