package oaserrors

import "fmt"

// ValidationKind classifies a ValidationError.
type ValidationKind int

const (
	// KindConstraintViolation means a schema constraint rejected the value.
	KindConstraintViolation ValidationKind = iota
	// KindMissingProperty means a required model property is absent.
	KindMissingProperty
	// KindUnsupportedType means the schema's (type, format) has no primitive.
	KindUnsupportedType
	// KindTypeMismatch means the raw value's shape differs from the declared type.
	KindTypeMismatch
)

// String returns the string representation of the kind.
func (k ValidationKind) String() string {
	switch k {
	case KindConstraintViolation:
		return "constraint violation"
	case KindMissingProperty:
		return "missing property"
	case KindUnsupportedType:
		return "unsupported type"
	case KindTypeMismatch:
		return "type mismatch"
	default:
		return "unknown"
	}
}

// sentinel returns the sentinel error matching the kind.
func (k ValidationKind) sentinel() error {
	switch k {
	case KindConstraintViolation:
		return ErrConstraintViolation
	case KindMissingProperty:
		return ErrMissingProperty
	case KindUnsupportedType:
		return ErrUnsupportedType
	case KindTypeMismatch:
		return ErrTypeMismatch
	}
	return nil
}

// ValidationError represents a raw value rejected while constructing a primitive.
type ValidationError struct {
	// Kind classifies the failure
	Kind ValidationKind
	// Path locates the offending value inside the raw input (e.g., "#/tags/1/name")
	Path string
	// Node is the origin path of the validating schema node
	Node string
	// Constraint names the violated keyword (e.g., "multipleOf"); for
	// KindMissingProperty it is the property name
	Constraint string
	// Value is the offending value (may be nil)
	Value any
	// Message describes the validation failure
	Message string
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := e.Kind.String()
	if e.Constraint != "" {
		msg += " (" + e.Constraint + ")"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Node != "" {
		msg += " against " + e.Node
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type or its kind.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || target == e.Kind.sentinel()
}

// NewConstraintViolation builds a ValidationError for a violated keyword.
func NewConstraintViolation(node, path, constraint string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:       KindConstraintViolation,
		Path:       path,
		Node:       node,
		Constraint: constraint,
		Value:      value,
		Message:    fmt.Sprintf(format, args...),
	}
}
