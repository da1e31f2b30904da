package httpvalidator

import (
	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/parser"
	"github.com/erraggy/oasprim/primitives"
)

// DefaultMaxBodySize is the largest request body, in bytes, read by default.
const DefaultMaxBodySize int64 = 10 << 20

// Option configures a Validator.
type Option func(*config) error

type config struct {
	factory     *primitives.Factory
	strict      bool
	maxBodySize int64
	logger      parser.Logger
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		maxBodySize: DefaultMaxBodySize,
		logger:      parser.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithFactory sets the factory parameters are constructed with. By default
// a Factory is created with the validator's logger.
func WithFactory(f *primitives.Factory) Option {
	return func(cfg *config) error {
		if f == nil {
			return &oaserrors.ConfigError{Option: "WithFactory", Message: "factory cannot be nil"}
		}
		cfg.factory = f
		return nil
	}
}

// WithStrictMode rejects query parameters the operation does not declare and
// responses with an undeclared status code.
func WithStrictMode(strict bool) Option {
	return func(cfg *config) error {
		cfg.strict = strict
		return nil
	}
}

// WithMaxBodySize sets the largest request body, in bytes, the validator
// reads.
func WithMaxBodySize(n int64) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "WithMaxBodySize", Value: n, Message: "must be positive"}
		}
		cfg.maxBodySize = n
		return nil
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l parser.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return &oaserrors.ConfigError{Option: "WithLogger", Message: "logger cannot be nil"}
		}
		cfg.logger = l
		return nil
	}
}
