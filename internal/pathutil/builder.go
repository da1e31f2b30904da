package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder provides efficient incremental pointer construction.
// Uses push/pop semantics to avoid allocations during traversal.
// The full string is only materialized when String() is called.
type PathBuilder struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// Push adds an escaped token to the path.
func (p *PathBuilder) Push(segment string) {
	segment = Escape(segment)
	p.segments = append(p.segments, segment)
	p.length += len(segment) + 1 // For slash separator
}

// PushIndex adds a sequence index token.
func (p *PathBuilder) PushIndex(i int) {
	p.Push(strconv.Itoa(i))
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last) + 1
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// Len returns the number of segments.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// String materializes the full pointer. Only call when the path is needed.
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return Root
	}
	var b strings.Builder
	b.Grow(p.length + 1)
	b.WriteString(Root)
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}
