// Package parser builds a strongly typed object graph from a Swagger 2.0 API
// description and resolves every local and cross-document $ref in it.
//
// Import path: github.com/erraggy/oasprim/parser
//
// # Overview
//
// The parser consumes already-decoded documents: trees of mappings, sequences
// and scalars supplied by a [DocumentStore]. It never parses JSON or YAML text
// itself; see the store package for adapters that do.
//
// Loading a document runs four phases:
//
//  1. Build. A single recursive-descent builder walks the raw tree, guided by a
//     per-kind table of field declarations ([Fields]). Unknown keys are dropped,
//     "x-" keys are kept as vendor extensions, and every object records its
//     origin path (a JSON pointer such as "#/paths/~1pets/get").
//  2. Flatten. Operations of every path item are collected into one ordered,
//     name-indexed mapping on the [Paths] container ([Paths.Operations]).
//  3. Resolve. Every [RefEdge] is resolved, fetching referenced documents from
//     the store at most once. Chains of references are followed with cycle
//     detection.
//  4. Link. allOf compositions are merged once into effective property sets,
//     discriminator subtypes are registered, and path-level parameters are
//     merged into each operation.
//
// # Quick Start
//
//	fs, err := store.NewFileStore("testdata")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	graph, err := parser.Load(ctx, "petstore.yaml", parser.WithStore(fs))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pet := graph.Schema("#/definitions/Pet")
//	op := graph.Operation("getPetById")
//
// # Object Model
//
// Every node implements [Object]. Parents are non-owning: each object stores
// the arena index of its parent inside its [Document], so replacing a child
// never invalidates a back-reference. Schema-like nodes ([Schema], [Parameter],
// [Items], [Header]) share [Constraints] and implement [Typed], the input of the
// primitives package.
//
// # Errors
//
// All failures are load errors from the oaserrors package: *LoadError for
// malformed structure, *DuplicateNameError for clashing operation names,
// *ReferenceError for unresolved or circular references and
// *ResourceLimitError when limits are exceeded.
package parser
