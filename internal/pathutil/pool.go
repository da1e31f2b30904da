package pathutil

import "sync"

// Builders that reached more than maxPooledDepth segments, such as those
// used on deeply nested raw values, are left to the garbage collector.
const (
	initialDepth   = 8
	maxPooledDepth = 64
)

var builders = sync.Pool{
	New: func() any { return &PathBuilder{segments: make([]string, 0, initialDepth)} },
}

// Get returns an empty builder addressing the root "#".
func Get() *PathBuilder {
	return builders.Get().(*PathBuilder)
}

// Put clears p and makes it available to Get. p must not be used afterwards.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > maxPooledDepth {
		return
	}
	p.Reset()
	builders.Put(p)
}
