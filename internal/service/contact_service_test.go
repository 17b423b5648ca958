package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/service"
	"github.com/dsetiawan/contact-api/internal/store"
)

func seedContacts(t *testing.T, svc service.ContactService, owner string, inputs ...service.ContactInput) []*domain.Contact {
	t.Helper()
	contacts := make([]*domain.Contact, 0, len(inputs))
	for _, input := range inputs {
		contact, err := svc.Create(context.Background(), owner, input)
		require.NoError(t, err)
		contacts = append(contacts, contact)
	}
	return contacts
}

func TestContactService_CreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewContactService(newFakeContactStore(), nil)

	created, err := svc.Create(ctx, "john", service.ContactInput{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
		Phone:     "08123456789",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "john", created.Username)

	fetched, err := svc.Get(ctx, "john", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestContactService_OwnershipScoping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewContactService(newFakeContactStore(), nil)

	contact := seedContacts(t, svc, "john", service.ContactInput{FirstName: "Jane"})[0]

	// Another user's contact and a nonexistent contact yield the same error.
	_, otherErr := svc.Get(ctx, "mallory", contact.ID)
	_, missingErr := svc.Get(ctx, "john", 9999)
	assert.ErrorIs(t, otherErr, store.ErrContactNotFound)
	assert.ErrorIs(t, missingErr, store.ErrContactNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "mallory", contact.ID), store.ErrContactNotFound)
	_, err := svc.Update(ctx, "mallory", contact.ID, service.ContactInput{FirstName: "X"})
	assert.ErrorIs(t, err, store.ErrContactNotFound)

	// The contact is still there for its owner.
	_, err = svc.Get(ctx, "john", contact.ID)
	assert.NoError(t, err)
}

func TestContactService_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewContactService(newFakeContactStore(), nil)

	contact := seedContacts(t, svc, "john", service.ContactInput{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
		Phone:     "08123456789",
	})[0]

	updated, err := svc.Update(ctx, "john", contact.ID, service.ContactInput{
		FirstName: "Janet",
	})
	require.NoError(t, err)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, "Smith", updated.LastName, "omitted field keeps its stored value")
	assert.Equal(t, "jane@example.com", updated.Email)
	assert.Equal(t, "08123456789", updated.Phone)

	fetched, err := svc.Get(ctx, "john", contact.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestContactService_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewContactService(newFakeContactStore(), nil)

	contact := seedContacts(t, svc, "john", service.ContactInput{FirstName: "Jane"})[0]

	require.NoError(t, svc.Delete(ctx, "john", contact.ID))

	_, err := svc.Get(ctx, "john", contact.ID)
	assert.ErrorIs(t, err, store.ErrContactNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "john", contact.ID), store.ErrContactNotFound)
}

func TestContactService_Search(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seed := func(t *testing.T) service.ContactService {
		svc := service.NewContactService(newFakeContactStore(), nil)
		seedContacts(t, svc, "john",
			service.ContactInput{FirstName: "Jane", LastName: "Smith", Email: "jane@example.com", Phone: "0811"},
			service.ContactInput{FirstName: "Janet", LastName: "Jones", Email: "janet@example.com", Phone: "0812"},
			service.ContactInput{FirstName: "Bob", LastName: "Brown", Email: "bob@example.com", Phone: "0813"},
		)
		seedContacts(t, svc, "mallory",
			service.ContactInput{FirstName: "Jane", LastName: "Doe"},
		)
		return svc
	}

	t.Run("defaults to page 1 size 10", func(t *testing.T) {
		t.Parallel()
		svc := seed(t)

		contacts, page, err := svc.Search(ctx, "john", service.SearchQuery{})
		require.NoError(t, err)
		assert.Len(t, contacts, 3, "only the owner's contacts are visible")
		assert.Equal(t, domain.Page{CurrentPage: 1, TotalPage: 1, Size: 10}, page)
	})

	t.Run("filters by name across first and last name", func(t *testing.T) {
		t.Parallel()
		svc := seed(t)

		contacts, _, err := svc.Search(ctx, "john", service.SearchQuery{Name: "jan"})
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, "Jane", contacts[0].FirstName)
		assert.Equal(t, "Janet", contacts[1].FirstName)

		contacts, _, err = svc.Search(ctx, "john", service.SearchQuery{Name: "jones"})
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, "Janet", contacts[0].FirstName)
	})

	t.Run("computes total pages from the filtered count", func(t *testing.T) {
		t.Parallel()
		svc := seed(t)

		contacts, page, err := svc.Search(ctx, "john", service.SearchQuery{Page: 1, Size: 2})
		require.NoError(t, err)
		assert.Len(t, contacts, 2)
		assert.Equal(t, domain.Page{CurrentPage: 1, TotalPage: 2, Size: 2}, page)

		contacts, page, err = svc.Search(ctx, "john", service.SearchQuery{Page: 2, Size: 2})
		require.NoError(t, err)
		assert.Len(t, contacts, 1)
		assert.Equal(t, domain.Page{CurrentPage: 2, TotalPage: 2, Size: 2}, page)
	})

	t.Run("out-of-range page yields empty data, not an error", func(t *testing.T) {
		t.Parallel()
		svc := seed(t)

		contacts, page, err := svc.Search(ctx, "john", service.SearchQuery{Name: "bob", Page: 2, Size: 1})
		require.NoError(t, err)
		assert.Empty(t, contacts)
		assert.Equal(t, domain.Page{CurrentPage: 2, TotalPage: 1, Size: 1}, page)
	})

	t.Run("no matches yields zero total pages", func(t *testing.T) {
		t.Parallel()
		svc := seed(t)

		contacts, page, err := svc.Search(ctx, "john", service.SearchQuery{Name: "nobody"})
		require.NoError(t, err)
		assert.Empty(t, contacts)
		assert.Equal(t, domain.Page{CurrentPage: 1, TotalPage: 0, Size: 10}, page)
	})
}
