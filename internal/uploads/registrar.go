// Package uploads records images for use in posts: either stored file
// payloads or externally-hosted URLs.
package uploads

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/halvard/skald/internal/apperr"
)

// BlobSink is where stored file payloads end up.
type BlobSink interface {
	Store(name string, data []byte) (string, error)
}

// Registrar validates and registers image references. It trusts the
// declared content type and URL scheme; it never inspects file contents.
type Registrar struct {
	blobs BlobSink
}

// NewRegistrar creates a registrar over the given blob sink.
func NewRegistrar(blobs BlobSink) *Registrar {
	return &Registrar{blobs: blobs}
}

// Register stores an uploaded file under a fresh random name that keeps
// the original extension, and returns the public reference path.
func (r *Registrar) Register(contentType, filename string, data []byte) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: file must be an image", apperr.ErrValidation)
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	stored, err := r.blobs.Store(name, data)
	if err != nil {
		return "", err
	}
	return "/uploads/" + stored, nil
}

// RegisterURL validates an externally-hosted image URL and returns it
// unchanged as the canonical reference.
func (r *Registrar) RegisterURL(rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", fmt.Errorf("%w: invalid URL format", apperr.ErrValidation)
	}
	return rawURL, nil
}
