package store

import (
	"context"

	"github.com/dsetiawan/contact-api/internal/domain"
)

// ContactFilter restricts a contact search. Empty filter strings match
// everything; Name matches first or last name.
type ContactFilter struct {
	Name  string
	Email string
	Phone string

	Limit  int
	Offset int
}

// ContactStore defines the interface for contact data persistence.
// All read and mutate operations are scoped to an owner username so that
// a missing row and a row owned by someone else are indistinguishable.
type ContactStore interface {
	// Create saves a new contact and fills in its generated ID.
	Create(ctx context.Context, contact *domain.Contact) error

	// Get retrieves a contact by ID, scoped to the owner.
	// Returns ErrContactNotFound if no such contact exists for the owner.
	Get(ctx context.Context, id int64, owner string) (*domain.Contact, error)

	// Update persists all contact fields, keyed by ID and owner.
	// Returns ErrContactNotFound if no such contact exists for the owner.
	Update(ctx context.Context, contact *domain.Contact) error

	// Delete removes the contact, keyed by ID and owner. Addresses owned by
	// the contact are removed with it.
	// Returns ErrContactNotFound if no such contact exists for the owner.
	Delete(ctx context.Context, id int64, owner string) error

	// Search returns one page of the owner's contacts matching the filter,
	// ordered by ID.
	Search(ctx context.Context, owner string, filter ContactFilter) ([]*domain.Contact, error)

	// Count returns the total number of the owner's contacts matching the
	// filter, ignoring Limit and Offset.
	Count(ctx context.Context, owner string, filter ContactFilter) (int64, error)
}
