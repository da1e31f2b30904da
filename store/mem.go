package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/parser"
	"github.com/erraggy/oasprim/rawdoc"
)

// MemStore is an in-memory store. It is safe for concurrent use.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string]any
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string]any)}
}

// Add stores an already-decoded document under id, replacing any previous one.
func (s *MemStore) Add(id string, raw any) {
	s.mu.Lock()
	s.docs[id] = raw
	s.mu.Unlock()
}

// AddText decodes YAML or JSON text and stores it under id.
func (s *MemStore) AddText(id string, data []byte) error {
	raw, err := rawdoc.Decode(data)
	if err != nil {
		return fmt.Errorf("store: %s: %w", id, err)
	}
	s.Add(id, raw)
	return nil
}

// Remove deletes the document stored under id.
func (s *MemStore) Remove(id string) {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
}

// Fetch returns the document stored under id.
func (s *MemStore) Fetch(ctx context.Context, id string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	raw, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("store: %w: %s", oaserrors.ErrNotFound, id)
	}
	return raw, nil
}

// Chain asks each store in turn and returns the first document found. A
// store reporting an error other than oaserrors.ErrNotFound stops the chain.
type Chain []parser.DocumentStore

// Fetch implements the parser's DocumentStore.
func (c Chain) Fetch(ctx context.Context, id string) (any, error) {
	for _, s := range c {
		raw, err := s.Fetch(ctx, id)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, oaserrors.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("store: %w: %s", oaserrors.ErrNotFound, id)
}

var (
	_ parser.DocumentStore = (*MemStore)(nil)
	_ parser.DocumentStore = (*FileStore)(nil)
	_ parser.DocumentStore = (*HTTPStore)(nil)
	_ parser.DocumentStore = Chain(nil)
)
