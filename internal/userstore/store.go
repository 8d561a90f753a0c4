// Package userstore owns the admin user collection and password checks.
package userstore

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/storage"
)

// Store is the user collection. Like the post store, every operation is
// a serialized load / mutate / save cycle against one JSON file.
type Store struct {
	mu   sync.Mutex
	coll *storage.Collection[models.User]
	now  func() time.Time
}

// New creates a user store over the given collection.
func New(coll *storage.Collection[models.User]) *Store {
	return &Store{coll: coll, now: time.Now}
}

// WithClock overrides the store's clock. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Bootstrap inserts the admin account with the given credentials if the
// collection is empty. It is a no-op when any user already exists.
func (s *Store) Bootstrap(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.coll.Load()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("userstore: hash password: %w", err)
	}
	users = append(users, models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	})
	return s.coll.Save(users)
}

// Authenticate verifies username and password. An unknown username and a
// wrong password return the same failure so callers cannot enumerate
// accounts. Persistence failures propagate as-is; they are operational
// faults, not bad credentials.
func (s *Store) Authenticate(username, password string) (models.User, error) {
	u, err := s.ByUsername(username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.User{}, apperr.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, apperr.ErrInvalidCredentials
	}
	return u, nil
}

// ByUsername looks up a user by exact username.
func (s *Store) ByUsername(username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.coll.Load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperr.ErrNotFound
}
