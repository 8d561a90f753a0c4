package auth

import (
	"errors"
	"log/slog"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/userstore"
)

// Service composes the user store and token signing into the login and
// token-validation operations exposed to the request layer.
type Service struct {
	users  *userstore.Store
	tokens *TokenService
}

// NewService creates an auth service.
func NewService(users *userstore.Store, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login verifies the credentials and issues a bearer token. Bad
// credentials return ErrInvalidCredentials; persistence failures
// propagate so the request layer reports an operational fault instead
// of a rejected login.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.users.Authenticate(username, password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user.Username)
}

// ValidateToken verifies a bearer token and resolves its subject to a
// stored user. A bad signature, an expired token, and an unknown subject
// all return the same failure; the cause is only visible in debug logs.
// A persistence failure while resolving the subject propagates as-is.
func (s *Service) ValidateToken(raw string) (models.User, error) {
	subject, err := s.tokens.Verify(raw)
	if err != nil {
		slog.Debug("token rejected", slog.String("reason", err.Error()))
		return models.User{}, apperr.ErrInvalidCredentials
	}
	user, err := s.users.ByUsername(subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			slog.Debug("token subject unknown", slog.String("subject", subject))
			return models.User{}, apperr.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	return user, nil
}
