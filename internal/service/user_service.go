package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dario.cat/mergo"
	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/service/auth"
	"github.com/dsetiawan/contact-api/internal/store"
)

// UserPatch carries the fields of a partial profile update. Empty fields
// are left untouched on the stored record.
type UserPatch struct {
	Name     string
	Password string
}

// UserService provides registration, login and profile operations.
type UserService interface {
	// Register creates a new user with a hashed password.
	// Returns store.ErrUsernameExists when the username is taken.
	Register(ctx context.Context, username, password, name string) (*domain.User, error)

	// Login verifies the credentials and rotates the user's session token.
	// Returns auth.ErrInvalidCredentials for an unknown username and for a
	// wrong password alike.
	Login(ctx context.Context, username, password string) (*domain.User, error)

	// Update applies the supplied fields of the patch onto the
	// authenticated user's record and persists the merged row.
	Update(ctx context.Context, current *domain.User, patch UserPatch) (*domain.User, error)

	// Logout clears the user's session token so it can no longer
	// authenticate.
	Logout(ctx context.Context, current *domain.User) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	tokens    auth.TokenGenerator
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.TokenGenerator,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		tokens:    tokens,
		logger:    logger.With("component", "user_service"),
	}
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register. Uniqueness is enforced by the
// store's unique constraint so a concurrent duplicate registration cannot
// slip between a check and the insert.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	username, password, name string,
) (*domain.User, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:       username,
		Name:           name,
		HashedPassword: hashed,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("registration rejected, username taken",
				"username", username)
			return nil, err
		}
		s.logger.Error("failed to create user",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login implements UserService.Login. Every successful login issues a fresh
// random token, replacing whatever token the user held before.
func (s *UserServiceImpl) Login(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login rejected, unknown username",
				"username", username)
			return nil, auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login rejected, password mismatch",
			"username", username)
		return nil, auth.ErrInvalidCredentials
	}

	token := s.tokens.Generate()
	user.Token = &token
	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to persist session token",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to persist session token: %w", err)
	}

	s.logger.Info("user logged in", "username", username)
	return user, nil
}

// Update implements UserService.Update. The patch is merged onto the
// current record so unspecified fields are never overwritten with zero
// values; the write is keyed by the identity's username.
func (s *UserServiceImpl) Update(
	ctx context.Context,
	current *domain.User,
	patch UserPatch,
) (*domain.User, error) {
	src := domain.User{Name: patch.Name}
	if patch.Password != "" {
		hashed, err := s.hasher.Hash(patch.Password)
		if err != nil {
			s.logger.Error("failed to hash new password",
				"error", err,
				"username", current.Username)
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		src.HashedPassword = hashed
	}

	updated := *current
	if err := mergo.Merge(&updated, src, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge user update: %w", err)
	}

	if err := s.userStore.Update(ctx, &updated); err != nil {
		s.logger.Error("failed to update user",
			"error", err,
			"username", current.Username)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Debug("user updated", "username", current.Username)
	return &updated, nil
}

// Logout implements UserService.Logout.
func (s *UserServiceImpl) Logout(ctx context.Context, current *domain.User) error {
	cleared := *current
	cleared.Token = nil

	if err := s.userStore.Update(ctx, &cleared); err != nil {
		s.logger.Error("failed to clear session token",
			"error", err,
			"username", current.Username)
		return fmt.Errorf("failed to clear session token: %w", err)
	}

	s.logger.Info("user logged out", "username", current.Username)
	return nil
}
