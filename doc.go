// Package oasprim loads Swagger 2.0 API descriptions into a typed, fully
// resolved object graph and validates raw values against the graph's
// schemas.
//
// The module is organized in packages:
//
//   - parser: the object graph, $ref resolution, operation flattening,
//     allOf composition and discriminator subtypes
//   - primitives: the validating codec turning raw values into typed,
//     constraint-checked primitive values
//   - store: document stores reading YAML or JSON from memory, files or HTTP
//   - rawdoc: order-preserving decoding of YAML and JSON documents
//   - oaserrors: the error taxonomy shared by the other packages
//
// # Quick Start
//
// Load a document and validate a value against one of its definitions:
//
//	import (
//		"github.com/erraggy/oasprim/parser"
//		"github.com/erraggy/oasprim/primitives"
//		"github.com/erraggy/oasprim/store"
//	)
//
//	fs, err := store.NewFileStore("specs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	graph, err := parser.Load(ctx, "petstore.yaml", parser.WithStore(fs))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	pet, err := primitives.Construct(graph.Schema("#/definitions/Pet"), map[string]any{
//		"name":      "doggie",
//		"photoUrls": []any{"https://example.com/doggie.png"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(pet)
//
// Parameters of flattened operations validate request values the same way;
// header and query values may be passed as text:
//
//	op := graph.Operation("findPetsByStatus")
//	status, err := primitives.Construct(op.Parameter("status", "query"), []string{"sold"})
//
// # Errors
//
// Loading fails with errors matching oaserrors.ErrLoad; constructing a value
// fails with errors matching oaserrors.ErrValidation. See the oaserrors
// package for the full taxonomy.
package oasprim
