package service

import (
	"context"
	"fmt"
	"log/slog"

	"dario.cat/mergo"
	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/store"
)

// Search paging defaults.
const (
	DefaultPage = 1
	DefaultSize = 10
)

// ContactInput carries the validated fields of a contact create or update.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// SearchQuery describes a contact search: optional filters plus a 1-based
// page window.
type SearchQuery struct {
	Name  string
	Email string
	Phone string
	Page  int
	Size  int
}

// ContactService provides CRUD and paginated search over a user's contacts.
// All operations are scoped to the owner; a contact belonging to another
// user is indistinguishable from a missing one.
type ContactService interface {
	// Create persists a new contact owned by the given user.
	Create(ctx context.Context, owner string, input ContactInput) (*domain.Contact, error)

	// Get fetches one of the owner's contacts by ID.
	// Returns store.ErrContactNotFound if absent or owned by someone else.
	Get(ctx context.Context, owner string, id int64) (*domain.Contact, error)

	// Update applies the supplied fields of the input onto the fetched
	// contact and persists the merged row.
	Update(ctx context.Context, owner string, id int64, input ContactInput) (*domain.Contact, error)

	// Delete removes the contact and, by cascade, its addresses.
	Delete(ctx context.Context, owner string, id int64) error

	// Search returns one page of the owner's contacts matching the query,
	// with paging metadata. An out-of-range page yields an empty result,
	// not an error.
	Search(ctx context.Context, owner string, query SearchQuery) ([]*domain.Contact, domain.Page, error)
}

// ContactServiceImpl implements the ContactService interface.
type ContactServiceImpl struct {
	contactStore store.ContactStore
	logger       *slog.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(contactStore store.ContactStore, logger *slog.Logger) *ContactServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactServiceImpl{
		contactStore: contactStore,
		logger:       logger.With("component", "contact_service"),
	}
}

// Ensure ContactServiceImpl implements ContactService interface
var _ ContactService = (*ContactServiceImpl)(nil)

// Create implements ContactService.Create.
func (s *ContactServiceImpl) Create(
	ctx context.Context,
	owner string,
	input ContactInput,
) (*domain.Contact, error) {
	contact := &domain.Contact{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Username:  owner,
	}

	if err := s.contactStore.Create(ctx, contact); err != nil {
		s.logger.Error("failed to create contact",
			"error", err,
			"username", owner)
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// Get implements ContactService.Get.
func (s *ContactServiceImpl) Get(
	ctx context.Context,
	owner string,
	id int64,
) (*domain.Contact, error) {
	contact, err := s.contactStore.Get(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// Update implements ContactService.Update. The input is merged onto the
// fetched row, so an optional field the caller left empty keeps its stored
// value instead of being blanked.
func (s *ContactServiceImpl) Update(
	ctx context.Context,
	owner string,
	id int64,
	input ContactInput,
) (*domain.Contact, error) {
	contact, err := s.contactStore.Get(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	src := domain.Contact{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}
	if err := mergo.Merge(contact, src, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge contact update: %w", err)
	}

	if err := s.contactStore.Update(ctx, contact); err != nil {
		s.logger.Error("failed to update contact",
			"error", err,
			"contact_id", id,
			"username", owner)
		return nil, err
	}

	return contact, nil
}

// Delete implements ContactService.Delete.
func (s *ContactServiceImpl) Delete(ctx context.Context, owner string, id int64) error {
	if err := s.contactStore.Delete(ctx, id, owner); err != nil {
		return err
	}
	return nil
}

// Search implements ContactService.Search.
func (s *ContactServiceImpl) Search(
	ctx context.Context,
	owner string,
	query SearchQuery,
) ([]*domain.Contact, domain.Page, error) {
	page := query.Page
	if page < 1 {
		page = DefaultPage
	}
	size := query.Size
	if size < 1 {
		size = DefaultSize
	}

	filter := store.ContactFilter{
		Name:   query.Name,
		Email:  query.Email,
		Phone:  query.Phone,
		Limit:  size,
		Offset: (page - 1) * size,
	}

	contacts, err := s.contactStore.Search(ctx, owner, filter)
	if err != nil {
		s.logger.Error("failed to search contacts",
			"error", err,
			"username", owner)
		return nil, domain.Page{}, fmt.Errorf("failed to search contacts: %w", err)
	}

	total, err := s.contactStore.Count(ctx, owner, filter)
	if err != nil {
		s.logger.Error("failed to count contacts",
			"error", err,
			"username", owner)
		return nil, domain.Page{}, fmt.Errorf("failed to count contacts: %w", err)
	}

	return contacts, domain.NewPage(page, size, total), nil
}
