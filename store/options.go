package store

import (
	"net/http"
	"net/url"
	"time"

	"github.com/erraggy/oasprim/oaserrors"
)

// DefaultMaxFileSize is the largest document, in bytes, a store reads
// unless configured otherwise.
const DefaultMaxFileSize int64 = 10 << 20

// defaultTimeout bounds requests made with the default HTTP client.
const defaultTimeout = 30 * time.Second

// Option configures a FileStore or an HTTPStore. Options a store has no use
// for are ignored.
type Option func(*config) error

type config struct {
	maxFileSize int64
	client      *http.Client
	userAgent   string
	baseURL     *url.URL
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.client == nil {
		cfg.client = &http.Client{Timeout: defaultTimeout}
	}
	return cfg, nil
}

// WithMaxFileSize sets the largest document, in bytes, the store reads.
func WithMaxFileSize(n int64) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "WithMaxFileSize", Value: n, Message: "must be positive"}
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithHTTPClient sets the client used by an HTTPStore. Use it to configure
// timeouts, proxies or TLS.
//
//	client := &http.Client{Timeout: 5 * time.Second}
//	web, err := store.NewHTTPStore(store.WithHTTPClient(client))
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			return &oaserrors.ConfigError{Option: "WithHTTPClient", Message: "client cannot be nil"}
		}
		cfg.client = client
		return nil
	}
}

// WithUserAgent sets the User-Agent header of HTTP requests. An empty value
// keeps the default ("oasprim/<version>").
func WithUserAgent(ua string) Option {
	return func(cfg *config) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithBaseURL makes an HTTPStore resolve relative identifiers against base.
// Without it, only absolute http and https identifiers are fetched.
func WithBaseURL(base string) Option {
	return func(cfg *config) error {
		u, err := url.Parse(base)
		if err != nil {
			return &oaserrors.ConfigError{Option: "WithBaseURL", Value: base, Message: "invalid URL", Cause: err}
		}
		if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
			return &oaserrors.ConfigError{Option: "WithBaseURL", Value: base, Message: "must be an absolute http or https URL"}
		}
		cfg.baseURL = u
		return nil
	}
}
