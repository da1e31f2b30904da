package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrLoad indicates a document graph could not be built.
	ErrLoad = errors.New("load error")

	// ErrDuplicateName indicates two flattened objects share one name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular $ref or allOf chain was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrPathTraversal indicates a path traversal attempt was blocked.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrNotFound indicates a document store has no document for an identifier.
	ErrNotFound = errors.New("document not found")

	// ErrValidation indicates a raw value failed schema validation.
	ErrValidation = errors.New("validation error")

	// ErrMissingProperty indicates a required model property is absent.
	ErrMissingProperty = errors.New("missing property")

	// ErrConstraintViolation indicates a value breaks a schema constraint.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrUnsupportedType indicates no primitive exists for a (type, format) pair.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrTypeMismatch indicates the shape of a raw value does not match the declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// LoadError represents a failure to build the object graph of a document.
// This includes malformed structure and unsupported dialects.
type LoadError struct {
	// Document is the identifier of the document being built
	Document string
	// Path is the origin path of the offending node (e.g., "#/paths/~1pets")
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Document != "" {
		msg += " in " + e.Document
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// DuplicateNameError is raised when flattening nested containers produces
// two entries with the same name.
type DuplicateNameError struct {
	// Document is the identifier of the document being built
	Document string
	// Path is the origin path of the second occurrence
	Path string
	// Name is the duplicated name
	Name string
	// FirstPath is the origin path of the first occurrence
	FirstPath string
}

// Error returns a human-readable error message.
func (e *DuplicateNameError) Error() string {
	msg := "load error"
	if e.Document != "" {
		msg += " in " + e.Document
	}
	msg += ": duplicate operation found: " + e.Name
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.FirstPath != "" {
		msg += " (first declared at " + e.FirstPath + ")"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrLoad || target == ErrDuplicateName
}

// ReferenceError represents a failure to resolve a $ref.
// This includes missing targets, circular chains, and path traversal attempts.
type ReferenceError struct {
	// Document is the identifier of the document holding the $ref
	Document string
	// Source is the origin path of the node carrying the $ref
	Source string
	// Ref is the reference string that failed to resolve
	Ref string
	// IsCircular is true if the reference chain revisits itself
	IsCircular bool
	// IsPathTraversal is true if the reference escapes the allowed base
	IsPathTraversal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	} else if e.IsPathTraversal {
		msg = "path traversal detected"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Source != "" {
		msg += " (from " + e.Source
		if e.Document != "" {
			msg += " in " + e.Document
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrLoad and ErrReference, and also ErrCircularReference or
// ErrPathTraversal when the matching flag is set.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrLoad, ErrReference:
		return true
	case ErrCircularReference:
		return e.IsCircular
	case ErrPathTraversal:
		return e.IsPathTraversal
	}
	return false
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "ref_depth", "cached_documents", "file_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit || target == ErrLoad
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
