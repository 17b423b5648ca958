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

// AddressStore implements the store.AddressStore interface using a
// PostgreSQL database as the storage backend.
type AddressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAddressStore creates a new PostgreSQL implementation of the
// AddressStore interface. If logger is nil, the default logger is used.
func NewAddressStore(db store.DBTX, logger *slog.Logger) *AddressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AddressStore{
		db:     db,
		logger: logger.With(slog.String("component", "address_store")),
	}
}

// Ensure AddressStore implements store.AddressStore interface
var _ store.AddressStore = (*AddressStore)(nil)

// Create implements store.AddressStore.Create.
// The generated ID is written back into the address.
// Returns store.ErrContactNotFound when the contact does not exist.
func (s *AddressStore) Create(ctx context.Context, address *domain.Address) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO addresses (street, city, province, country, postal_code, contact_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		nullString(address.Street),
		nullString(address.City),
		nullString(address.Province),
		address.Country,
		nullString(address.PostalCode),
		address.ContactID,
	).Scan(&address.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug("contact does not exist for new address",
				slog.Int64("contact_id", address.ContactID))
			return store.ErrContactNotFound
		}
		log.Error("failed to create address",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", address.ContactID))
		return err
	}

	log.Info("address created successfully",
		slog.Int64("address_id", address.ID),
		slog.Int64("contact_id", address.ContactID))
	return nil
}

// Get implements store.AddressStore.Get.
// Returns store.ErrAddressNotFound when no address with the given ID belongs
// to the contact.
func (s *AddressStore) Get(ctx context.Context, id, contactID int64) (*domain.Address, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, street, city, province, country, postal_code, contact_id
		FROM addresses
		WHERE id = $1 AND contact_id = $2
	`

	address, err := scanAddress(s.db.QueryRowContext(ctx, query, id, contactID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("address not found",
				slog.Int64("address_id", id),
				slog.Int64("contact_id", contactID))
			return nil, store.ErrAddressNotFound
		}
		log.Error("failed to get address",
			slog.String("error", err.Error()),
			slog.Int64("address_id", id))
		return nil, err
	}

	return address, nil
}

// Update implements store.AddressStore.Update.
// Returns store.ErrAddressNotFound when no address with the given ID belongs
// to the contact.
func (s *AddressStore) Update(ctx context.Context, address *domain.Address) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE addresses
		SET street = $3, city = $4, province = $5, country = $6, postal_code = $7
		WHERE id = $1 AND contact_id = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		address.ID,
		address.ContactID,
		nullString(address.Street),
		nullString(address.City),
		nullString(address.Province),
		address.Country,
		nullString(address.PostalCode),
	)
	if err != nil {
		log.Error("failed to update address",
			slog.String("error", err.Error()),
			slog.Int64("address_id", address.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("address_id", address.ID))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("address not found for update",
			slog.Int64("address_id", address.ID),
			slog.Int64("contact_id", address.ContactID))
		return store.ErrAddressNotFound
	}

	log.Debug("address updated successfully",
		slog.Int64("address_id", address.ID))
	return nil
}

// Delete implements store.AddressStore.Delete.
// Returns store.ErrAddressNotFound when no address with the given ID belongs
// to the contact.
func (s *AddressStore) Delete(ctx context.Context, id, contactID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM addresses
		WHERE id = $1 AND contact_id = $2
	`
	result, err := s.db.ExecContext(ctx, query, id, contactID)
	if err != nil {
		log.Error("failed to delete address",
			slog.String("error", err.Error()),
			slog.Int64("address_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("address_id", id))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("address not found for delete",
			slog.Int64("address_id", id),
			slog.Int64("contact_id", contactID))
		return store.ErrAddressNotFound
	}

	log.Info("address deleted successfully",
		slog.Int64("address_id", id),
		slog.Int64("contact_id", contactID))
	return nil
}

// ListByContact implements store.AddressStore.ListByContact.
func (s *AddressStore) ListByContact(ctx context.Context, contactID int64) ([]*domain.Address, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, street, city, province, country, postal_code, contact_id
		FROM addresses
		WHERE contact_id = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, contactID)
	if err != nil {
		log.Error("failed to list addresses",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", contactID))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	addresses := []*domain.Address{}
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			log.Error("failed to scan address row",
				slog.String("error", err.Error()))
			return nil, err
		}
		addresses = append(addresses, address)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return addresses, nil
}

// scanAddress reads one address row, folding NULL optional columns into
// empty strings.
func scanAddress(row rowScanner) (*domain.Address, error) {
	var address domain.Address
	var street, city, province, postalCode sql.NullString

	err := row.Scan(
		&address.ID,
		&street,
		&city,
		&province,
		&address.Country,
		&postalCode,
		&address.ContactID,
	)
	if err != nil {
		return nil, err
	}

	address.Street = street.String
	address.City = city.String
	address.Province = province.String
	address.PostalCode = postalCode.String
	return &address, nil
}
