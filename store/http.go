package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/erraggy/oasprim"
	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/rawdoc"
)

// HTTPStore fetches documents over HTTP(S). Identifiers are absolute URLs,
// or paths resolved against the base URL set with WithBaseURL.
type HTTPStore struct {
	client      *http.Client
	userAgent   string
	baseURL     *url.URL
	maxFileSize int64
}

// NewHTTPStore creates an HTTPStore. The default client times out after
// 30 seconds.
func NewHTTPStore(opts ...Option) (*HTTPStore, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	ua := cfg.userAgent
	if ua == "" {
		ua = oasprim.UserAgent()
	}
	return &HTTPStore{
		client:      cfg.client,
		userAgent:   ua,
		baseURL:     cfg.baseURL,
		maxFileSize: cfg.maxFileSize,
	}, nil
}

// Fetch downloads and decodes the document named by id. Identifiers that
// are not http or https URLs after resolution are reported as not found.
func (s *HTTPStore) Fetch(ctx context.Context, id string) (any, error) {
	target, ok := s.resolve(id)
	if !ok {
		return nil, fmt.Errorf("store: %w: %s", oaserrors.ErrNotFound, id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("store: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store: failed to fetch %s: %w", target, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("store: %w: %s", oaserrors.ErrNotFound, target)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("store: HTTP %d fetching %s: %s", resp.StatusCode, target, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("store: failed to read response body: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        s.maxFileSize,
			Message:      "document " + target + " is too large",
		}
	}

	raw, err := rawdoc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("store: %s: %w", target, err)
	}
	return raw, nil
}

func (s *HTTPStore) resolve(id string) (string, bool) {
	u, err := url.Parse(id)
	if err != nil {
		return "", false
	}
	if !u.IsAbs() {
		if s.baseURL == nil {
			return "", false
		}
		u = s.baseURL.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", false
	}
	return u.String(), true
}
