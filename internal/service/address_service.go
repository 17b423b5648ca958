package service

import (
	"context"
	"fmt"
	"log/slog"

	"dario.cat/mergo"
	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/store"
)

// AddressInput carries the validated fields of an address create or update.
type AddressInput struct {
	Street     string
	City       string
	Province   string
	Country    string
	PostalCode string
}

// AddressService provides CRUD over the addresses of a contact. Every
// operation walks the ownership chain first: the contact must exist and
// belong to the requesting user, then the address must belong to that
// contact. A failure at either step surfaces as the same not-found error.
type AddressService interface {
	// Create persists a new address under one of the owner's contacts.
	// Returns store.ErrContactNotFound if the contact is absent or owned by
	// someone else.
	Create(ctx context.Context, owner string, contactID int64, input AddressInput) (*domain.Address, error)

	// Get fetches an address through the ownership chain.
	Get(ctx context.Context, owner string, contactID, addressID int64) (*domain.Address, error)

	// Update applies the supplied fields of the input onto the fetched
	// address and persists the merged row.
	Update(ctx context.Context, owner string, contactID, addressID int64, input AddressInput) (*domain.Address, error)

	// Delete removes an address through the ownership chain.
	Delete(ctx context.Context, owner string, contactID, addressID int64) error

	// List returns all addresses of one of the owner's contacts.
	List(ctx context.Context, owner string, contactID int64) ([]*domain.Address, error)
}

// AddressServiceImpl implements the AddressService interface.
type AddressServiceImpl struct {
	contactStore store.ContactStore
	addressStore store.AddressStore
	logger       *slog.Logger
}

// NewAddressService creates a new AddressService.
func NewAddressService(
	contactStore store.ContactStore,
	addressStore store.AddressStore,
	logger *slog.Logger,
) *AddressServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AddressServiceImpl{
		contactStore: contactStore,
		addressStore: addressStore,
		logger:       logger.With("component", "address_service"),
	}
}

// Ensure AddressServiceImpl implements AddressService interface
var _ AddressService = (*AddressServiceImpl)(nil)

// checkContact verifies the first link of the ownership chain.
func (s *AddressServiceImpl) checkContact(ctx context.Context, owner string, contactID int64) error {
	if _, err := s.contactStore.Get(ctx, contactID, owner); err != nil {
		return err
	}
	return nil
}

// Create implements AddressService.Create.
func (s *AddressServiceImpl) Create(
	ctx context.Context,
	owner string,
	contactID int64,
	input AddressInput,
) (*domain.Address, error) {
	if err := s.checkContact(ctx, owner, contactID); err != nil {
		return nil, err
	}

	address := &domain.Address{
		Street:     input.Street,
		City:       input.City,
		Province:   input.Province,
		Country:    input.Country,
		PostalCode: input.PostalCode,
		ContactID:  contactID,
	}

	if err := s.addressStore.Create(ctx, address); err != nil {
		s.logger.Error("failed to create address",
			"error", err,
			"contact_id", contactID,
			"username", owner)
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	return address, nil
}

// Get implements AddressService.Get.
func (s *AddressServiceImpl) Get(
	ctx context.Context,
	owner string,
	contactID, addressID int64,
) (*domain.Address, error) {
	if err := s.checkContact(ctx, owner, contactID); err != nil {
		return nil, err
	}
	return s.addressStore.Get(ctx, addressID, contactID)
}

// Update implements AddressService.Update.
func (s *AddressServiceImpl) Update(
	ctx context.Context,
	owner string,
	contactID, addressID int64,
	input AddressInput,
) (*domain.Address, error) {
	if err := s.checkContact(ctx, owner, contactID); err != nil {
		return nil, err
	}

	address, err := s.addressStore.Get(ctx, addressID, contactID)
	if err != nil {
		return nil, err
	}

	src := domain.Address{
		Street:     input.Street,
		City:       input.City,
		Province:   input.Province,
		Country:    input.Country,
		PostalCode: input.PostalCode,
	}
	if err := mergo.Merge(address, src, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge address update: %w", err)
	}

	if err := s.addressStore.Update(ctx, address); err != nil {
		s.logger.Error("failed to update address",
			"error", err,
			"address_id", addressID,
			"contact_id", contactID)
		return nil, err
	}

	return address, nil
}

// Delete implements AddressService.Delete.
func (s *AddressServiceImpl) Delete(
	ctx context.Context,
	owner string,
	contactID, addressID int64,
) error {
	if err := s.checkContact(ctx, owner, contactID); err != nil {
		return err
	}
	return s.addressStore.Delete(ctx, addressID, contactID)
}

// List implements AddressService.List.
func (s *AddressServiceImpl) List(
	ctx context.Context,
	owner string,
	contactID int64,
) ([]*domain.Address, error) {
	if err := s.checkContact(ctx, owner, contactID); err != nil {
		return nil, err
	}
	return s.addressStore.ListByContact(ctx, contactID)
}
