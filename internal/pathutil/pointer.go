package pathutil

import (
	"strconv"
	"strings"
)

// Root is the origin path of a document root.
const Root = "#"

var (
	escaper   = strings.NewReplacer("~", "~0", "/", "~1")
	unescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Escape encodes a single reference token per RFC 6901.
func Escape(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	return escaper.Replace(token)
}

// Unescape decodes a single reference token per RFC 6901.
func Unescape(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return unescaper.Replace(token)
}

// Join appends escaped tokens to a base pointer.
//
//	Join("#", "paths", "/pets") == "#/paths/~1pets"
func Join(base string, tokens ...string) string {
	if len(tokens) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(Escape(tok))
	}
	return b.String()
}

// Index appends a sequence index to a base pointer.
func Index(base string, i int) string {
	return base + "/" + strconv.Itoa(i)
}

// Split separates a $ref into its document identifier and its fragment.
// The fragment is normalized to start with "#"; an empty document identifier
// means the referencing document itself.
//
//	Split("defs.yaml#/definitions/Pet") == ("defs.yaml", "#/definitions/Pet")
//	Split("#/definitions/Pet")          == ("", "#/definitions/Pet")
//	Split("defs.yaml")                  == ("defs.yaml", "#")
func Split(ref string) (doc, fragment string) {
	doc, frag, _ := strings.Cut(ref, "#")
	return doc, Normalize("#" + frag)
}

// Normalize cleans a fragment pointer: "#/" and "" become "#", and a
// missing leading "#" is added.
func Normalize(fragment string) string {
	if !strings.HasPrefix(fragment, "#") {
		fragment = "#" + fragment
	}
	if fragment == "#/" {
		return Root
	}
	return fragment
}

// Segments returns the unescaped tokens of a fragment pointer.
// The root pointer has no segments.
func Segments(fragment string) []string {
	fragment = strings.TrimPrefix(Normalize(fragment), "#")
	if fragment == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(fragment, "/"), "/")
	for i, p := range parts {
		parts[i] = Unescape(p)
	}
	return parts
}
