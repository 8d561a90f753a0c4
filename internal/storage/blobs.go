package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BlobDir stores uploaded files in a flat directory.
type BlobDir struct {
	root string // absolute path to the uploads directory
}

// NewBlobDir creates (if necessary) and returns a blob store rooted at dir.
func NewBlobDir(dir string) (*BlobDir, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve uploads root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create uploads root: %w", err)
	}
	return &BlobDir{root: abs}, nil
}

// Root returns the absolute path of the uploads directory.
func (b *BlobDir) Root() string {
	return b.root
}

// Store writes data under name and returns the stored file name.
// Names with path separators or traversal are rejected.
func (b *BlobDir) Store(name string, data []byte) (string, error) {
	abs, err := b.safeName(name)
	if err != nil {
		return "", err
	}
	if err := atomicWrite(abs, data); err != nil {
		return "", err
	}
	return filepath.Base(abs), nil
}

// safeName validates that name is a plain file name and returns its
// absolute path under the uploads root.
func (b *BlobDir) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: blob name is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("storage: invalid blob name: %s", name)
	}
	abs := filepath.Join(b.root, cleaned)
	if !strings.HasPrefix(abs, b.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: blob name escapes uploads root: %s", name)
	}
	return abs, nil
}
