package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/store"
)

// In-memory store fakes. They enforce the same sentinel-error contracts as
// the PostgreSQL implementations so services can be tested in isolation.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	if u.Token != nil {
		token := *u.Token
		clone.Token = &token
	}
	return &clone
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return store.ErrUsernameExists
	}
	s.users[user.Username] = cloneUser(user)
	return nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *fakeUserStore) GetByToken(_ context.Context, token string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.HasToken() && *user.Token == token {
			return cloneUser(user), nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; !ok {
		return store.ErrUserNotFound
	}
	s.users[user.Username] = cloneUser(user)
	return nil
}

func (s *fakeUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type fakeContactStore struct {
	mu       sync.Mutex
	nextID   int64
	contacts map[int64]*domain.Contact
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{contacts: make(map[int64]*domain.Contact)}
}

func (s *fakeContactStore) Create(_ context.Context, contact *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	contact.ID = s.nextID
	clone := *contact
	s.contacts[contact.ID] = &clone
	return nil
}

func (s *fakeContactStore) Get(_ context.Context, id int64, owner string) (*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact, ok := s.contacts[id]
	if !ok || contact.Username != owner {
		return nil, store.ErrContactNotFound
	}
	clone := *contact
	return &clone, nil
}

func (s *fakeContactStore) Update(_ context.Context, contact *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.contacts[contact.ID]
	if !ok || existing.Username != contact.Username {
		return store.ErrContactNotFound
	}
	clone := *contact
	s.contacts[contact.ID] = &clone
	return nil
}

func (s *fakeContactStore) Delete(_ context.Context, id int64, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact, ok := s.contacts[id]
	if !ok || contact.Username != owner {
		return store.ErrContactNotFound
	}
	delete(s.contacts, id)
	return nil
}

func (s *fakeContactStore) matching(owner string, filter store.ContactFilter) []*domain.Contact {
	matched := []*domain.Contact{}
	for _, contact := range s.contacts {
		if contact.Username != owner {
			continue
		}
		if filter.Name != "" {
			name := strings.ToLower(filter.Name)
			first := strings.ToLower(contact.FirstName)
			last := strings.ToLower(contact.LastName)
			if !strings.Contains(first, name) && !strings.Contains(last, name) {
				continue
			}
		}
		if filter.Email != "" &&
			!strings.Contains(strings.ToLower(contact.Email), strings.ToLower(filter.Email)) {
			continue
		}
		if filter.Phone != "" && !strings.Contains(contact.Phone, filter.Phone) {
			continue
		}
		matched = append(matched, contact)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

func (s *fakeContactStore) Search(
	_ context.Context,
	owner string,
	filter store.ContactFilter,
) ([]*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.matching(owner, filter)

	if filter.Offset >= len(matched) {
		return []*domain.Contact{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	page := make([]*domain.Contact, 0, len(matched))
	for _, contact := range matched {
		clone := *contact
		page = append(page, &clone)
	}
	return page, nil
}

func (s *fakeContactStore) Count(
	_ context.Context,
	owner string,
	filter store.ContactFilter,
) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.matching(owner, filter))), nil
}

type fakeAddressStore struct {
	mu        sync.Mutex
	nextID    int64
	addresses map[int64]*domain.Address
}

func newFakeAddressStore() *fakeAddressStore {
	return &fakeAddressStore{addresses: make(map[int64]*domain.Address)}
}

func (s *fakeAddressStore) Create(_ context.Context, address *domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	address.ID = s.nextID
	clone := *address
	s.addresses[address.ID] = &clone
	return nil
}

func (s *fakeAddressStore) Get(_ context.Context, id, contactID int64) (*domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address, ok := s.addresses[id]
	if !ok || address.ContactID != contactID {
		return nil, store.ErrAddressNotFound
	}
	clone := *address
	return &clone, nil
}

func (s *fakeAddressStore) Update(_ context.Context, address *domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.addresses[address.ID]
	if !ok || existing.ContactID != address.ContactID {
		return store.ErrAddressNotFound
	}
	clone := *address
	s.addresses[address.ID] = &clone
	return nil
}

func (s *fakeAddressStore) Delete(_ context.Context, id, contactID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	address, ok := s.addresses[id]
	if !ok || address.ContactID != contactID {
		return store.ErrAddressNotFound
	}
	delete(s.addresses, id)
	return nil
}

func (s *fakeAddressStore) ListByContact(_ context.Context, contactID int64) ([]*domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []*domain.Address{}
	for _, address := range s.addresses {
		if address.ContactID == contactID {
			clone := *address
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (s *fakeAddressStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.addresses)
}

// Interface checks
var (
	_ store.UserStore    = (*fakeUserStore)(nil)
	_ store.ContactStore = (*fakeContactStore)(nil)
	_ store.AddressStore = (*fakeAddressStore)(nil)
)
