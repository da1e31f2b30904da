package primitives

import (
	"fmt"
	"reflect"

	"github.com/erraggy/oasprim/internal/pathutil"
	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/parser"
	"github.com/erraggy/oasprim/rawdoc"
)

func mismatch(node parser.Typed, path *pathutil.PathBuilder, raw any, expected string) error {
	return &oaserrors.ValidationError{
		Kind:    oaserrors.KindTypeMismatch,
		Path:    path.String(),
		Node:    node.Origin(),
		Value:   raw,
		Message: fmt.Sprintf("expected %s, found %s", expected, describe(raw)),
	}
}

func unsupported(node parser.Typed, path *pathutil.PathBuilder, format string, args ...any) error {
	return &oaserrors.ValidationError{
		Kind:    oaserrors.KindUnsupportedType,
		Path:    path.String(),
		Node:    node.Origin(),
		Message: fmt.Sprintf(format, args...),
	}
}

func violation(node parser.Typed, path *pathutil.PathBuilder, constraint string, value any, format string, args ...any) error {
	return oaserrors.NewConstraintViolation(node.Origin(), path.String(), constraint, value, format, args...)
}

func missing(node parser.Typed, path *pathutil.PathBuilder, name string) error {
	path.Push(name)
	defer path.Pop()
	return &oaserrors.ValidationError{
		Kind:       oaserrors.KindMissingProperty,
		Path:       path.String(),
		Node:       node.Origin(),
		Constraint: name,
		Message:    fmt.Sprintf("required property %q is missing", name),
	}
}

// describe names the shape of a raw value for error messages.
func describe(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", v)
	case bool:
		return fmt.Sprintf("boolean %t", v)
	}
	if r, ok := ratOf(raw); ok {
		return "number " + formatRat(r)
	}
	if rawdoc.IsMapping(raw) {
		return "mapping"
	}
	if _, ok := sequence(raw); ok {
		return "sequence"
	}
	return reflect.TypeOf(raw).String()
}
