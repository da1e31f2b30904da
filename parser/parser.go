package parser

import (
	"context"
	"fmt"
	"sync"

	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/rawdoc"
)

const (
	// MaxRefDepth is the maximum length of a $ref chain.
	// This prevents stack overflow from deeply nested (but non-circular) references
	MaxRefDepth = 100

	// MaxCachedDocuments is the maximum number of external documents a load
	// may reference, and the capacity of a Parser's document cache.
	MaxCachedDocuments = 100
)

// DocumentStore supplies decoded documents: trees of mappings ([rawdoc.Map] or
// map[string]any), []any sequences and scalars. Fetch returns an error
// wrapping [oaserrors.ErrNotFound] for unknown identifiers.
type DocumentStore interface {
	Fetch(ctx context.Context, id string) (any, error)
}

// StoreFunc adapts a function to a DocumentStore.
type StoreFunc func(ctx context.Context, id string) (any, error)

// Fetch implements DocumentStore.
func (f StoreFunc) Fetch(ctx context.Context, id string) (any, error) { return f(ctx, id) }

// Migrator translates a document written in an older dialect into the
// Swagger 2.0 shape the object model understands.
type Migrator interface {
	Normalize(raw map[string]any) (map[string]any, error)
}

// MigratorFunc adapts a function to a Migrator.
type MigratorFunc func(raw map[string]any) (map[string]any, error)

// Normalize implements Migrator.
func (f MigratorFunc) Normalize(raw map[string]any) (map[string]any, error) { return f(raw) }

// Parser loads document graphs. A Parser caches fetched documents across
// Load calls and is safe for concurrent use once configured.
type Parser struct {
	// Store supplies the root document and every referenced document
	Store DocumentStore
	// Migrator normalizes documents that do not declare swagger "2.0".
	// If nil, such documents fail to load.
	Migrator Migrator
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// ValidateStructure checks Swagger documents against a minimal
	// meta-schema before building them
	ValidateStructure bool

	// Resource limits (0 means use default)

	// MaxRefDepth is the maximum length of a $ref chain.
	// Default: 100
	MaxRefDepth int
	// MaxCachedDocuments is the maximum number of external documents.
	// Default: 100
	MaxCachedDocuments int

	cacheOnce sync.Once
	cache     *documentCache
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{ValidateStructure: true}
}

// Load fetches the root document, builds its object graph and resolves every
// reference, fetching referenced documents from the store at most once.
func (p *Parser) Load(ctx context.Context, rootID string) (*Graph, error) {
	if p.Store == nil {
		return nil, &oaserrors.ConfigError{Option: "Store", Message: "a document store is required"}
	}
	if rootID == "" {
		return nil, &oaserrors.ConfigError{Option: "rootID", Message: "root document identifier cannot be empty"}
	}
	return newLoader(ctx, p).load(rootID)
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

func (p *Parser) maxRefDepth() int {
	if p.MaxRefDepth > 0 {
		return p.MaxRefDepth
	}
	return MaxRefDepth
}

func (p *Parser) maxCachedDocuments() int {
	if p.MaxCachedDocuments > 0 {
		return p.MaxCachedDocuments
	}
	return MaxCachedDocuments
}

func (p *Parser) documents() *documentCache {
	p.cacheOnce.Do(func() {
		p.cache = newDocumentCache(p.maxCachedDocuments())
	})
	return p.cache
}

// fetch retrieves a document and prepares it for building: documents
// declaring another dialect are migrated and Swagger documents are
// structure-checked.
func (p *Parser) fetch(ctx context.Context, id string) (any, error) {
	raw, err := p.Store.Fetch(ctx, id)
	if err != nil {
		return nil, &oaserrors.LoadError{Document: id, Message: "failed to fetch document", Cause: err}
	}
	if !rawdoc.IsMapping(raw) {
		return nil, &oaserrors.LoadError{Document: id, Path: "#", Message: "expected a mapping at the document root, found " + describe(raw)}
	}
	if declaresOtherDialect(raw) {
		if raw, err = p.migrate(id, raw); err != nil {
			return nil, err
		}
	}
	if p.ValidateStructure && isSwagger(raw) {
		if err := checkStructure(id, raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// migrate passes a document through the configured Migrator.
func (p *Parser) migrate(id string, raw any) (any, error) {
	if p.Migrator == nil {
		return nil, &oaserrors.LoadError{
			Document: id,
			Path:     "#",
			Message:  fmt.Sprintf("unsupported document dialect (%s) and no migrator configured", dialectOf(raw)),
		}
	}
	p.log().Debug("migrating document", "document", id, "dialect", dialectOf(raw))
	out, err := p.Migrator.Normalize(rawdoc.Plain(raw).(map[string]any))
	if err != nil {
		return nil, &oaserrors.LoadError{Document: id, Path: "#", Message: "migration failed", Cause: err}
	}
	if !isSwagger(out) {
		return nil, &oaserrors.LoadError{Document: id, Path: "#", Message: `migrated document does not declare swagger "2.0"`}
	}
	return out, nil
}

func isSwagger(raw any) bool {
	v, ok := rawdoc.Lookup(raw, "swagger")
	return ok && v == SwaggerVersion
}

func declaresOtherDialect(raw any) bool {
	if _, ok := rawdoc.Lookup(raw, "swaggerVersion"); ok {
		return true
	}
	v, ok := rawdoc.Lookup(raw, "swagger")
	return ok && v != SwaggerVersion
}

func dialectOf(raw any) string {
	if v, ok := rawdoc.Lookup(raw, "swaggerVersion"); ok {
		return fmt.Sprintf("swaggerVersion %v", v)
	}
	if v, ok := rawdoc.Lookup(raw, "swagger"); ok {
		return fmt.Sprintf("swagger %s", describe(v))
	}
	return "no swagger version"
}
