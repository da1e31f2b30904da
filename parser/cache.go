package parser

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// documentCache memoizes prepared raw documents by identifier. Concurrent
// requests for the same identifier share one fetch.
type documentCache struct {
	mu    sync.Mutex
	raws  map[string]any
	limit int
	group singleflight.Group
}

func newDocumentCache(limit int) *documentCache {
	return &documentCache{raws: make(map[string]any), limit: limit}
}

func (c *documentCache) lookup(id string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.raws[id]
	return raw, ok
}

// load returns the cached document or calls fetch once for id. hit reports
// whether the document was already cached. Documents beyond the cache limit
// are returned but not stored.
func (c *documentCache) load(id string, fetch func() (any, error)) (raw any, hit bool, err error) {
	if raw, ok := c.lookup(id); ok {
		return raw, true, nil
	}
	raw, err, _ = c.group.Do(id, func() (any, error) {
		if raw, ok := c.lookup(id); ok {
			return raw, nil
		}
		raw, err := fetch()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if len(c.raws) < c.limit {
			c.raws[id] = raw
		}
		c.mu.Unlock()
		return raw, nil
	})
	return raw, false, err
}

// len returns the number of cached documents.
func (c *documentCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.raws)
}
