// Package primitives turns raw values into typed, constraint-checked
// primitive values using the schema-like nodes of a loaded document graph.
//
// A [Factory] is the validating codec: given a [parser.Typed] node (a Schema,
// Parameter, Items or Header) and a raw value already decoded from JSON or
// YAML, [Factory.Construct] returns a [Value] or a validation error.
//
//	graph, err := parser.Load(ctx, "petstore.yaml", parser.WithStore(st))
//	if err != nil {
//	    return err
//	}
//	v, err := primitives.Construct(graph.Schema("#/definitions/Pet"), raw)
//	if err != nil {
//	    // errors.Is(err, oaserrors.ErrMissingProperty), ...
//	}
//	pet := v.(*primitives.Model)
//
// # Dispatch
//
// Construct picks the primitive in this order:
//
//  1. a $ref node is replaced by its resolved target
//  2. a body parameter is replaced by its schema
//  3. a schema with properties, allOf or type object builds a [Model];
//     a discriminator selects the registered subtype first
//  4. the node's (type, format) pair selects a [Creator]
//  5. anything else fails with [oaserrors.ErrUnsupportedType]
//
// Unknown formats fall back to the plain type unless [WithStrictFormats] is
// set. [Factory.Register] adds or replaces creators.
//
// # Constraints
//
// Every applicable constraint is checked and all violations are returned
// together (see [errors.Join]). Numeric bounds and multipleOf use exact
// rational arithmetic over the shortest decimal form of each number, pattern
// must match the whole string, and string lengths count code points of the
// NFC-normalized text.
//
// # Collections
//
// Arrays accept a sequence or a single delimited string. A level declaring
// collectionFormat uses it. Undeclared levels of a nested array use space,
// comma and pipe separators from the outermost level inward, skipping any
// separator an enclosing or declared inner level already uses; a flat array
// defaults to comma. Rendering an [Array] with String
// applies the same separators, so the nested array
// [[[1,2],[3,4],[5,6]],[[7,8],[9,10]],[[11,12],[13,14]]] renders as
// "1|2,3|4,5|6 7|8,9|10 11|12,13|14".
package primitives
