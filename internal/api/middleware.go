// Package api implements the Skald REST API using chi.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/auth"
	"github.com/halvard/skald/internal/models"
)

type ctxKey int

const userKey ctxKey = 0

// UserFrom returns the authenticated user stored in the request context.
func UserFrom(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}

// RequireAuth returns middleware that validates a Bearer token against
// the auth service. Requests with a missing, malformed, expired, or
// otherwise invalid token are rejected before the handler runs; on
// success the validated user is placed in the request context.
func RequireAuth(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody("invalid authentication credentials"))
				return
			}
			user, err := authSvc.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				if errors.Is(err, apperr.ErrInvalidCredentials) {
					writeJSON(w, http.StatusUnauthorized, errorBody("invalid authentication credentials"))
				} else {
					slog.Error("token validation failed", slog.String("error", err.Error()))
					writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}
