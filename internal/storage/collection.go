// Package storage persists record collections and uploaded blobs on the
// local file system. Each collection is a single JSON file that is read
// and rewritten wholesale; writes are atomic (temp file, fsync, rename).
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Collection stores an ordered sequence of records of type T in one JSON
// file. It performs no locking; callers serialize their own
// read-modify-write cycles.
type Collection[T any] struct {
	path string
}

// NewCollection creates a collection backed by the JSON file at path.
// The file does not have to exist yet.
func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// Load reads every record from the backing file. A missing file is an
// empty collection, not an error.
func (c *Collection[T]) Load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("storage: read %s: %w", c.path, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", c.path, err)
	}
	return records, nil
}

// Save rewrites the backing file with the given records.
func (c *Collection[T]) Save(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", c.path, err)
	}
	return atomicWrite(c.path, data)
}

// atomicWrite writes data to path via tmp file → fsync → rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".skald-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}
