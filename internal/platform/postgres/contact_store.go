package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/platform/logger"
	"github.com/dsetiawan/contact-api/internal/store"
)

// ContactStore implements the store.ContactStore interface using a
// PostgreSQL database as the storage backend.
type ContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewContactStore creates a new PostgreSQL implementation of the
// ContactStore interface. If logger is nil, the default logger is used.
func NewContactStore(db store.DBTX, logger *slog.Logger) *ContactStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ContactStore{
		db:     db,
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

// Ensure ContactStore implements store.ContactStore interface
var _ store.ContactStore = (*ContactStore)(nil)

// Create implements store.ContactStore.Create.
// The generated ID is written back into the contact.
// Returns store.ErrUserNotFound when the owner does not exist.
func (s *ContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO contacts (first_name, last_name, email, phone, username)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		contact.FirstName,
		nullString(contact.LastName),
		nullString(contact.Email),
		nullString(contact.Phone),
		contact.Username,
	).Scan(&contact.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("owner does not exist for new contact",
				slog.String("username", contact.Username))
			return store.ErrUserNotFound
		}
		log.Error("failed to create contact",
			slog.String("error", err.Error()),
			slog.String("username", contact.Username))
		return err
	}

	log.Info("contact created successfully",
		slog.Int64("contact_id", contact.ID),
		slog.String("username", contact.Username))
	return nil
}

// Get implements store.ContactStore.Get.
// Returns store.ErrContactNotFound when no contact with the given ID belongs
// to the owner.
func (s *ContactStore) Get(ctx context.Context, id int64, owner string) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, first_name, last_name, email, phone, username
		FROM contacts
		WHERE id = $1 AND username = $2
	`

	contact, err := scanContact(s.db.QueryRowContext(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found",
				slog.Int64("contact_id", id),
				slog.String("username", owner))
			return nil, store.ErrContactNotFound
		}
		log.Error("failed to get contact",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", id))
		return nil, err
	}

	return contact, nil
}

// Update implements store.ContactStore.Update.
// Returns store.ErrContactNotFound when no contact with the given ID belongs
// to the owner.
func (s *ContactStore) Update(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE contacts
		SET first_name = $3, last_name = $4, email = $5, phone = $6
		WHERE id = $1 AND username = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		contact.ID,
		contact.Username,
		contact.FirstName,
		nullString(contact.LastName),
		nullString(contact.Email),
		nullString(contact.Phone),
	)
	if err != nil {
		log.Error("failed to update contact",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", contact.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", contact.ID))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("contact not found for update",
			slog.Int64("contact_id", contact.ID),
			slog.String("username", contact.Username))
		return store.ErrContactNotFound
	}

	log.Debug("contact updated successfully",
		slog.Int64("contact_id", contact.ID))
	return nil
}

// Delete implements store.ContactStore.Delete.
// The addresses of the contact are removed by the ON DELETE CASCADE
// constraint on addresses.contact_id.
// Returns store.ErrContactNotFound when no contact with the given ID belongs
// to the owner.
func (s *ContactStore) Delete(ctx context.Context, id int64, owner string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM contacts
		WHERE id = $1 AND username = $2
	`
	result, err := s.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		log.Error("failed to delete contact",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", id))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("contact not found for delete",
			slog.Int64("contact_id", id),
			slog.String("username", owner))
		return store.ErrContactNotFound
	}

	log.Info("contact deleted successfully",
		slog.Int64("contact_id", id),
		slog.String("username", owner))
	return nil
}

// Search implements store.ContactStore.Search.
// The page is ordered by ID so results are stable across requests.
func (s *ContactStore) Search(
	ctx context.Context,
	owner string,
	filter store.ContactFilter,
) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	builder := filterQuery(owner, filter).
		Columns("id", "first_name", "last_name", "email", "phone", "username").
		OrderBy("id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to search contacts",
			slog.String("error", err.Error()),
			slog.String("username", owner))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	contacts := []*domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			log.Error("failed to scan contact row",
				slog.String("error", err.Error()))
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("contact search completed",
		slog.String("username", owner),
		slog.Int("count", len(contacts)))
	return contacts, nil
}

// Count implements store.ContactStore.Count.
func (s *ContactStore) Count(
	ctx context.Context,
	owner string,
	filter store.ContactFilter,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := filterQuery(owner, filter).Columns("COUNT(*)").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Error("failed to count contacts",
			slog.String("error", err.Error()),
			slog.String("username", owner))
		return 0, err
	}

	return total, nil
}

// filterQuery builds the shared WHERE clause for Search and Count. Filters
// are case-insensitive substring matches; Name matches either name column.
func filterQuery(owner string, filter store.ContactFilter) sq.SelectBuilder {
	builder := sq.Select().
		From("contacts").
		Where(sq.Eq{"username": owner}).
		PlaceholderFormat(sq.Dollar)

	if filter.Name != "" {
		pattern := "%" + filter.Name + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"first_name": pattern},
			sq.ILike{"last_name": pattern},
		})
	}
	if filter.Email != "" {
		builder = builder.Where(sq.ILike{"email": "%" + filter.Email + "%"})
	}
	if filter.Phone != "" {
		builder = builder.Where(sq.ILike{"phone": "%" + filter.Phone + "%"})
	}

	return builder
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanContact.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanContact reads one contact row, folding NULL optional columns into
// empty strings.
func scanContact(row rowScanner) (*domain.Contact, error) {
	var contact domain.Contact
	var lastName, email, phone sql.NullString

	err := row.Scan(
		&contact.ID,
		&contact.FirstName,
		&lastName,
		&email,
		&phone,
		&contact.Username,
	)
	if err != nil {
		return nil, err
	}

	contact.LastName = lastName.String
	contact.Email = email.String
	contact.Phone = phone.String
	return &contact, nil
}

// nullString maps empty strings to NULL so optional columns stay NULL in
// the database rather than holding empty strings.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
