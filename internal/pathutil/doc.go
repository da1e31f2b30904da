// Package pathutil provides JSON Pointer utilities for addressing nodes of a
// specification document and locations inside raw values.
//
// Origin paths are RFC 6901 pointers written as URI fragments: the document
// root is "#", and "#/paths/~1pets/get" addresses the get operation of the
// "/pets" path item. [Join] and [Index] compose them, [Split] separates a
// $ref into its document identifier and fragment, and [Segments] decodes a
// fragment back into unescaped tokens.
//
// # PathBuilder Usage
//
// [PathBuilder] builds pointer-style paths incrementally with push/pop
// semantics, materializing the string only when an error needs it. Use [Get]
// to obtain a pooled builder and [Put] to return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("tags")
//	path.PushIndex(1)
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
//	if hasError {
//	    return fmt.Errorf("error at %s", path.String()) // "#/tags/1"
//	}
package pathutil
