package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/platform/logger"
	"github.com/dsetiawan/contact-api/internal/store"
)

// UserStore implements the store.UserStore interface using a PostgreSQL
// database as the storage backend.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, the default
// logger is used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
// Returns store.ErrUsernameExists when the username is already taken.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO users (username, name, password, token)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.Name,
		user.HashedPassword,
		user.Token,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("username already taken",
				slog.String("username", user.Username))
			return store.ErrUsernameExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return err
	}

	log.Info("user created successfully",
		slog.String("username", user.Username))
	return nil
}

// GetByUsername implements store.UserStore.GetByUsername.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT username, name, password, token
		FROM users
		WHERE username = $1
	`
	return s.scanUser(ctx, log, query, username)
}

// GetByToken implements store.UserStore.GetByToken.
// The lookup is an exact match against the token column; users holding a
// NULL token never match.
// Returns store.ErrUserNotFound if no user holds the token.
func (s *UserStore) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT username, name, password, token
		FROM users
		WHERE token = $1
	`
	return s.scanUser(ctx, log, query, token)
}

// Update implements store.UserStore.Update.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET name = $2, password = $3, token = $4
		WHERE username = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.Name,
		user.HashedPassword,
		user.Token,
	)
	if err != nil {
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("user not found for update",
			slog.String("username", user.Username))
		return store.ErrUserNotFound
	}

	log.Debug("user updated successfully",
		slog.String("username", user.Username))
	return nil
}

// scanUser runs a single-row user query and maps sql.ErrNoRows to
// store.ErrUserNotFound.
func (s *UserStore) scanUser(
	ctx context.Context,
	log *slog.Logger,
	query string,
	arg any,
) (*domain.User, error) {
	var user domain.User
	var token sql.NullString

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.Username,
		&user.Name,
		&user.HashedPassword,
		&token,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, err
	}

	if token.Valid {
		user.Token = &token.String
	}
	return &user, nil
}
