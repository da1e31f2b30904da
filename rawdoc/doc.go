// Package rawdoc defines the raw document tree consumed by the parser: the
// mapping/sequence/scalar data a document store hands over after decoding
// JSON or YAML text.
//
// Mappings are represented either by [Map], which keeps the key order of the
// source document, or by a plain map[string]any. [Entries] reads both in a
// deterministic order (source order for [Map], sorted keys for Go maps), so
// diagnostics that depend on iteration order are reproducible across loads.
//
// [Decode] turns YAML or JSON text into a tree of [Map], []any and scalars
// using go.yaml.in/yaml/v4 node decoding. [Plain] converts a tree back into
// map[string]any form for consumers that need standard JSON values.
package rawdoc
