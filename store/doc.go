// Package store provides document stores for the parser package.
//
// A store maps a document identifier to a decoded raw tree. Identifiers are
// slash-separated relative paths (e.g., "defs/pet.yaml") or absolute URLs;
// the parser joins relative $ref targets against the identifier of the
// referencing document before asking the store.
//
// Three stores are provided:
//
//   - [MemStore] holds documents added at runtime
//   - [FileStore] reads files below a base directory and refuses identifiers
//     that escape it
//   - [HTTPStore] fetches documents over HTTP(S)
//
// [Chain] combines stores, asking each in turn until one has the document.
//
// Files and responses are decoded with the rawdoc package, so YAML and JSON
// are both accepted and mapping key order is preserved.
//
// # Example
//
//	fs, err := store.NewFileStore("specs", store.WithMaxFileSize(1<<20))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	web, err := store.NewHTTPStore(store.WithUserAgent("petshop/1.0"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	graph, err := parser.Load(ctx, "api.yaml", parser.WithStore(store.Chain{fs, web}))
package store
