// Package poststore owns the post collection: creation with slug
// resolution, partial updates, deletion, and filtered listing.
package poststore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/slug"
	"github.com/halvard/skald/internal/storage"
)

// DefaultAuthor is assigned to every post; the service is single-author.
const DefaultAuthor = "Admin"

// Draft holds the caller-supplied fields for a new post.
type Draft struct {
	Title           string
	Content         string
	Excerpt         string
	FeaturedImage   string
	Published       bool
	Tags            []string
	MetaTitle       string
	MetaDescription string
}

// Patch is a partial update: nil fields are left unchanged. A non-nil
// Title triggers slug regeneration.
type Patch struct {
	Title           *string
	Content         *string
	Excerpt         *string
	FeaturedImage   *string
	Published       *bool
	Tags            *[]string
	MetaTitle       *string
	MetaDescription *string
}

// ListOptions filters a listing. Search and Tag combine with AND.
type ListOptions struct {
	PublishedOnly bool
	Search        string
	Tag           string
}

// Store is the post collection. All operations load the backing
// collection, work on it in memory, and persist it back wholesale; a
// single mutex serializes every operation so concurrent mutations cannot
// lose updates or violate slug uniqueness.
type Store struct {
	mu   sync.Mutex
	coll *storage.Collection[models.Post]
	now  func() time.Time
}

// New creates a post store over the given collection.
func New(coll *storage.Collection[models.Post]) *Store {
	return &Store{coll: coll, now: time.Now}
}

// WithClock overrides the store's clock. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// List returns posts sorted by created_at descending, filtered per opts.
// No match yields an empty slice.
func (s *Store) List(opts ListOptions) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.coll.Load()
	if err != nil {
		return nil, err
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if matches(p, opts) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetBySlug returns the post with the exact slug, regardless of its
// published status. Visibility is the caller's policy choice.
func (s *Store) GetBySlug(sl string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.coll.Load()
	if err != nil {
		return models.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == sl {
			return p, nil
		}
	}
	return models.Post{}, apperr.ErrNotFound
}

// Create assigns a fresh id and a unique slug, stamps both timestamps,
// and persists the new post.
func (s *Store) Create(d Draft) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.coll.Load()
	if err != nil {
		return models.Post{}, err
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	now := s.now()
	post := models.Post{
		ID:              uuid.NewString(),
		Title:           d.Title,
		Slug:            slug.Resolve(slug.Make(d.Title), slugSet(posts, "")),
		Content:         d.Content,
		Excerpt:         d.Excerpt,
		FeaturedImage:   d.FeaturedImage,
		Author:          DefaultAuthor,
		CreatedAt:       now,
		UpdatedAt:       now,
		Published:       d.Published,
		Tags:            tags,
		MetaTitle:       d.MetaTitle,
		MetaDescription: d.MetaDescription,
	}

	posts = append(posts, post)
	if err := s.coll.Save(posts); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// Update applies the non-nil fields of patch to the post with the given
// id. A changed title re-resolves the slug against every other post.
// updated_at is always refreshed; created_at never changes.
func (s *Store) Update(id string, patch Patch) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.coll.Load()
	if err != nil {
		return models.Post{}, err
	}

	idx := indexByID(posts, id)
	if idx < 0 {
		return models.Post{}, apperr.ErrNotFound
	}

	p := &posts[idx]
	if patch.Title != nil {
		p.Title = *patch.Title
		p.Slug = slug.Resolve(slug.Make(*patch.Title), slugSet(posts, id))
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.FeaturedImage != nil {
		p.FeaturedImage = *patch.FeaturedImage
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		p.Tags = tags
	}
	if patch.MetaTitle != nil {
		p.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		p.MetaDescription = *patch.MetaDescription
	}
	p.UpdatedAt = s.now()

	if err := s.coll.Save(posts); err != nil {
		return models.Post{}, err
	}
	return *p, nil
}

// Delete removes the post with the given id and returns the removed
// record. Hard removal, no tombstone.
func (s *Store) Delete(id string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.coll.Load()
	if err != nil {
		return models.Post{}, err
	}

	idx := indexByID(posts, id)
	if idx < 0 {
		return models.Post{}, apperr.ErrNotFound
	}
	removed := posts[idx]
	posts = append(posts[:idx], posts[idx+1:]...)
	if err := s.coll.Save(posts); err != nil {
		return models.Post{}, err
	}
	return removed, nil
}

// Tags returns the union of all tags across all posts, deduplicated
// case-insensitively. The first-seen casing is kept; output is sorted.
func (s *Store) Tags() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.coll.Load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	for _, p := range posts {
		for _, t := range p.Tags {
			key := strings.ToLower(t)
			if _, ok := seen[key]; !ok {
				seen[key] = t
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// matches evaluates the list predicates. The tag check runs before the
// substring scan; both must pass when both are supplied.
func matches(p models.Post, opts ListOptions) bool {
	if opts.PublishedOnly && !p.Published {
		return false
	}
	if opts.Tag != "" && !hasTag(p.Tags, opts.Tag) {
		return false
	}
	if opts.Search != "" {
		q := strings.ToLower(opts.Search)
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Content), q) &&
			!strings.Contains(strings.ToLower(p.Excerpt), q) {
			return false
		}
	}
	return true
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

// slugSet collects every slug except the one belonging to excludeID.
func slugSet(posts []models.Post, excludeID string) map[string]bool {
	taken := make(map[string]bool, len(posts))
	for _, p := range posts {
		if p.ID != excludeID {
			taken[p.Slug] = true
		}
	}
	return taken
}

func indexByID(posts []models.Post, id string) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
