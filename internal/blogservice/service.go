// Package blogservice coordinates the post store and the upload
// registrar, and notifies listeners about content changes.
package blogservice

import (
	"context"

	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/poststore"
	"github.com/halvard/skald/internal/uploads"
)

// ChangeFunc is called after a successful content mutation.
// kind is one of "post-created", "post-updated", "post-deleted".
type ChangeFunc func(kind, slug string)

// Service is the facade the API and MCP layers talk to.
type Service struct {
	posts    *poststore.Store
	images   *uploads.Registrar
	onChange ChangeFunc
}

// NewService creates a blog service. onChange may be nil.
func NewService(posts *poststore.Store, images *uploads.Registrar, onChange ChangeFunc) *Service {
	return &Service{posts: posts, images: images, onChange: onChange}
}

// ListPosts returns posts newest-first, filtered per opts.
func (s *Service) ListPosts(_ context.Context, opts poststore.ListOptions) ([]models.Post, error) {
	return s.posts.List(opts)
}

// GetPost returns a post by slug, published or not. Callers that serve
// public traffic decide whether to expose drafts.
func (s *Service) GetPost(_ context.Context, slug string) (models.Post, error) {
	return s.posts.GetBySlug(slug)
}

// ListTags returns the deduplicated union of tags across all posts.
func (s *Service) ListTags(_ context.Context) ([]string, error) {
	return s.posts.Tags()
}

// CreatePost persists a new post and announces it.
func (s *Service) CreatePost(_ context.Context, d poststore.Draft) (models.Post, error) {
	post, err := s.posts.Create(d)
	if err != nil {
		return models.Post{}, err
	}
	s.notify("post-created", post.Slug)
	return post, nil
}

// UpdatePost applies a partial update and announces it.
func (s *Service) UpdatePost(_ context.Context, id string, patch poststore.Patch) (models.Post, error) {
	post, err := s.posts.Update(id, patch)
	if err != nil {
		return models.Post{}, err
	}
	s.notify("post-updated", post.Slug)
	return post, nil
}

// DeletePost removes a post and announces it.
func (s *Service) DeletePost(_ context.Context, id string) error {
	removed, err := s.posts.Delete(id)
	if err != nil {
		return err
	}
	s.notify("post-deleted", removed.Slug)
	return nil
}

// UploadImage registers a file payload and returns its reference path.
func (s *Service) UploadImage(_ context.Context, contentType, filename string, data []byte) (string, error) {
	return s.images.Register(contentType, filename, data)
}

// RegisterImageURL validates an external image URL.
func (s *Service) RegisterImageURL(_ context.Context, rawURL string) (string, error) {
	return s.images.RegisterURL(rawURL)
}

func (s *Service) notify(kind, slug string) {
	if s.onChange != nil {
		s.onChange(kind, slug)
	}
}
