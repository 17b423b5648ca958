package store

import (
	"context"

	"github.com/dsetiawan/contact-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The caller provides the user
	// with an already-hashed password.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByToken retrieves the user holding the given session token.
	// A user with a nil token never matches.
	// Returns ErrUserNotFound if no user holds the token.
	GetByToken(ctx context.Context, token string) (*domain.User, error)

	// Update persists the user's name, hashed password and token, keyed by
	// username. Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error
}
