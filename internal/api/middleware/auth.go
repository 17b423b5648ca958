// Package middleware provides HTTP middleware for authentication and
// request tracing.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dsetiawan/contact-api/internal/api/shared"
	"github.com/dsetiawan/contact-api/internal/store"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "X-API-TOKEN"

// AuthMiddleware authenticates requests by resolving the X-API-TOKEN header
// to a user record.
type AuthMiddleware struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(userStore store.UserStore, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		userStore: userStore,
		logger:    logger.With("component", "auth_middleware"),
	}
}

// Authenticate resolves the token header to a user and binds the identity
// to the request context. Requests without a matching logged-in user are
// rejected with 401 before any handler runs.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := m.userStore.GetByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
				return
			}
			m.logger.Error("failed to resolve session token", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := shared.SetIdentity(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
