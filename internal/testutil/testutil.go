// Package testutil provides shared test helpers for setting up record
// collections and stores.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/poststore"
	"github.com/halvard/skald/internal/storage"
	"github.com/halvard/skald/internal/userstore"
)

// PostStore creates a post store backed by a JSON file in a temp dir.
func PostStore(t *testing.T) *poststore.Store {
	t.Helper()
	return poststore.New(PostCollection(t))
}

// PostCollection creates an empty post collection in a temp dir.
func PostCollection(t *testing.T) *storage.Collection[models.Post] {
	t.Helper()
	return storage.NewCollection[models.Post](filepath.Join(t.TempDir(), "posts.json"))
}

// UserStore creates a user store backed by a JSON file in a temp dir.
func UserStore(t *testing.T) *userstore.Store {
	t.Helper()
	return userstore.New(storage.NewCollection[models.User](filepath.Join(t.TempDir(), "users.json")))
}
