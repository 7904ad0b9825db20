package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"resume-matcher/internal/shared/storage/object"
)

// Store reads documents from the local filesystem.
type Store struct {
	baseDir string
}

// New creates a new local document reader rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := filepath.Clean(storageKey)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid storage key")
	}

	fullPath := filepath.Join(s.baseDir, clean)
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", clean, object.ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

var _ object.Reader = (*Store)(nil)
