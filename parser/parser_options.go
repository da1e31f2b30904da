package parser

import (
	"context"
	"fmt"

	"github.com/erraggy/oasprim/oaserrors"
)

// Option is a function that configures a Parser
type Option func(*parseConfig) error

// parseConfig holds configuration for a Parser
type parseConfig struct {
	store             DocumentStore
	migrator          Migrator
	logger            Logger
	validateStructure bool

	// Resource limits (0 means use default)
	maxRefDepth        int
	maxCachedDocuments int
}

// Load builds the object graph of the document rootID using functional
// options. WithStore is required.
//
// Example:
//
//	fs, err := store.NewFileStore("specs")
//	if err != nil {
//	    return err
//	}
//	graph, err := parser.Load(ctx, "petstore.yaml",
//	    parser.WithStore(fs),
//	    parser.WithMaxRefDepth(20),
//	)
func Load(ctx context.Context, rootID string, opts ...Option) (*Graph, error) {
	p, err := NewWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	return p.Load(ctx, rootID)
}

// NewWithOptions creates a configured Parser. Reuse the Parser to share its
// document cache between loads.
func NewWithOptions(opts ...Option) (*Parser, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}
	return &Parser{
		Store:              cfg.store,
		Migrator:           cfg.migrator,
		Logger:             cfg.logger,
		ValidateStructure:  cfg.validateStructure,
		MaxRefDepth:        cfg.maxRefDepth,
		MaxCachedDocuments: cfg.maxCachedDocuments,
	}, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		validateStructure: true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.store == nil {
		return nil, &oaserrors.ConfigError{Option: "WithStore", Message: "a document store is required"}
	}
	return cfg, nil
}

// WithStore sets the store documents are fetched from
func WithStore(s DocumentStore) Option {
	return func(cfg *parseConfig) error {
		if s == nil {
			return &oaserrors.ConfigError{Option: "WithStore", Message: "store cannot be nil"}
		}
		cfg.store = s
		return nil
	}
}

// WithMigrator sets the collaborator that normalizes documents written in
// another dialect. Without one such documents fail to load.
func WithMigrator(m Migrator) Option {
	return func(cfg *parseConfig) error {
		cfg.migrator = m
		return nil
	}
}

// WithLogger sets a structured logger for debug output during loading.
// By default, no logging is performed (nil logger).
//
// Use NewSlogAdapter to wrap a *slog.Logger.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithValidateStructure enables or disables the meta-schema check of
// Swagger documents
// Default: true
func WithValidateStructure(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.validateStructure = enabled
		return nil
	}
}

// WithMaxRefDepth sets the maximum length of a $ref chain.
// A value of 0 means use the default (100).
// Returns an error if depth is negative.
func WithMaxRefDepth(depth int) Option {
	return func(cfg *parseConfig) error {
		if depth < 0 {
			return &oaserrors.ConfigError{Option: "WithMaxRefDepth", Value: depth, Message: "cannot be negative"}
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithMaxCachedDocuments sets the maximum number of external documents.
// A value of 0 means use the default (100).
// Returns an error if count is negative.
func WithMaxCachedDocuments(count int) Option {
	return func(cfg *parseConfig) error {
		if count < 0 {
			return &oaserrors.ConfigError{Option: "WithMaxCachedDocuments", Value: count, Message: "cannot be negative"}
		}
		cfg.maxCachedDocuments = count
		return nil
	}
}
