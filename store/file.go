package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/rawdoc"
)

// FileStore reads documents from files below a base directory. Identifiers
// are slash-separated paths relative to the base; identifiers resolving
// outside it are refused.
type FileStore struct {
	base        string
	maxFileSize int64
}

// NewFileStore creates a FileStore rooted at baseDir.
func NewFileStore(baseDir string, opts ...Option) (*FileStore, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "baseDir", Value: baseDir, Message: "failed to resolve base directory", Cause: err}
	}
	return &FileStore{base: abs, maxFileSize: cfg.maxFileSize}, nil
}

// Base returns the absolute base directory.
func (s *FileStore) Base() string { return s.base }

// Fetch reads and decodes the file named by id.
func (s *FileStore) Fetch(ctx context.Context, id string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := s.path(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: %w: %s", oaserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("store: failed to open %s: %w", id, err)
	}
	defer func() {
		_ = f.Close()
	}()

	// Read one byte past the limit to detect oversized files without a stat.
	data, err := io.ReadAll(io.LimitReader(f, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("store: failed to read %s: %w", id, err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        s.maxFileSize,
			Message:      "document " + id + " is too large",
		}
	}

	raw, err := rawdoc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("store: %s: %w", id, err)
	}
	return raw, nil
}

// path maps id to a file name, refusing names outside the base directory.
func (s *FileStore) path(id string) (string, error) {
	name := filepath.Join(s.base, filepath.FromSlash(id))
	rel, err := filepath.Rel(s.base, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &oaserrors.ReferenceError{Ref: id, IsPathTraversal: true}
	}
	return name, nil
}
