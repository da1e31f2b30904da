package primitives

import (
	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/parser"
)

// DefaultPatternCacheSize is the number of compiled patterns a Factory keeps.
const DefaultPatternCacheSize = 256

// Option is a functional option for configuring a Factory.
type Option func(*config) error

// config holds the configuration for a Factory.
type config struct {
	logger           parser.Logger
	patternCacheSize int
	strictFormats    bool
}

func defaultConfig() *config {
	return &config{
		logger:           parser.NopLogger{},
		patternCacheSize: DefaultPatternCacheSize,
	}
}

// WithLogger sets the logger receiving debug output, such as dropped
// undeclared properties and format fallbacks.
func WithLogger(l parser.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return &oaserrors.ConfigError{Option: "WithLogger", Message: "logger cannot be nil"}
		}
		c.logger = l
		return nil
	}
}

// WithPatternCacheSize bounds the LRU cache of compiled pattern expressions.
// Default: DefaultPatternCacheSize.
func WithPatternCacheSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "WithPatternCacheSize", Value: n, Message: "must be positive"}
		}
		c.patternCacheSize = n
		return nil
	}
}

// WithStrictFormats makes an unknown (type, format) pair fail with
// ErrUnsupportedType instead of falling back to the plain type.
// Default is false.
func WithStrictFormats(strict bool) Option {
	return func(c *config) error {
		c.strictFormats = strict
		return nil
	}
}
