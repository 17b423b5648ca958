package store

import (
	"context"

	"github.com/dsetiawan/contact-api/internal/domain"
)

// AddressStore defines the interface for address data persistence.
// Operations are scoped to a contact ID; verifying that the contact itself
// belongs to the requesting user is the service layer's job.
type AddressStore interface {
	// Create saves a new address and fills in its generated ID.
	Create(ctx context.Context, address *domain.Address) error

	// Get retrieves an address by ID, scoped to the contact.
	// Returns ErrAddressNotFound if no such address exists for the contact.
	Get(ctx context.Context, id, contactID int64) (*domain.Address, error)

	// Update persists all address fields, keyed by ID and contact.
	// Returns ErrAddressNotFound if no such address exists for the contact.
	Update(ctx context.Context, address *domain.Address) error

	// Delete removes the address, keyed by ID and contact.
	// Returns ErrAddressNotFound if no such address exists for the contact.
	Delete(ctx context.Context, id, contactID int64) error

	// ListByContact returns all addresses of the contact, ordered by ID.
	ListByContact(ctx context.Context, contactID int64) ([]*domain.Address, error)
}
