// Package oaserrors provides structured error types for the oasprim library.
//
// Import path: github.com/erraggy/oasprim/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish load-time failures (which abort building a
// document graph) from validation failures (the normal, recoverable result of
// constructing a primitive value).
//
// # Error Types
//
//   - [LoadError]: malformed raw structure, unsupported document dialect
//   - [DuplicateNameError]: two flattened operations share a name
//   - [ReferenceError]: unresolved, circular or cross-document $ref failures
//   - [ResourceLimitError]: reference chains or document caches exceeding limits
//   - [ValidationError]: a raw value rejected by a schema node
//   - [ConfigError]: invalid options
//
// # Sentinel Errors
//
//   - [ErrLoad]: matches every load-time error ([LoadError], [DuplicateNameError],
//     [ReferenceError], [ResourceLimitError])
//   - [ErrDuplicateName], [ErrReference], [ErrCircularReference], [ErrPathTraversal]
//   - [ErrValidation]: matches any [ValidationError]
//   - [ErrMissingProperty], [ErrConstraintViolation], [ErrUnsupportedType],
//     [ErrTypeMismatch]: match a [ValidationError] of that kind
//   - [ErrNotFound]: returned by document stores for unknown identifiers
//
// # Usage Examples
//
//	graph, err := parser.Load(ctx, "api.yaml", parser.WithStore(fs))
//	if errors.Is(err, oaserrors.ErrCircularReference) {
//	    // a $ref chain revisits itself
//	}
//
//	v, err := primitives.Construct(schema, raw)
//	var verr *oaserrors.ValidationError
//	if errors.As(err, &verr) && verr.Kind == oaserrors.KindConstraintViolation {
//	    fmt.Printf("%s violated at %s\n", verr.Constraint, verr.Path)
//	}
//
// Several constraint violations found on one value are returned together with
// [errors.Join]; errors.Is and errors.As see through the joined error.
package oaserrors
