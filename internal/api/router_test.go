package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dsetiawan/contact-api/internal/api"
	"github.com/dsetiawan/contact-api/internal/api/middleware"
	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/service"
	"github.com/dsetiawan/contact-api/internal/service/auth"
	"github.com/dsetiawan/contact-api/internal/store"
)

// testServer wires the full request pipeline over in-memory stores:
// router, middleware, handlers and real services.
type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := newFakeUserStore()
	contacts := newFakeContactStore()
	addrs := newFakeAddressStore()

	userService := service.NewUserService(
		users,
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewBcryptVerifier(),
		auth.NewUUIDTokenGenerator(),
		nil,
	)
	contactService := service.NewContactService(contacts, nil)
	addressService := service.NewAddressService(contacts, addrs, nil)

	router := api.NewRouter(
		api.NewUserHandler(userService, nil),
		api.NewContactHandler(contactService, nil),
		api.NewAddressHandler(addressService, nil),
		middleware.NewAuthMiddleware(users, nil),
	)

	return &testServer{t: t, router: router}
}

// do performs one request against the router. An empty token leaves the
// auth header unset.
func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin registers a user and returns a valid session token.
func (s *testServer) registerAndLogin(username, password, name string) string {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/users", "", map[string]string{
		"username": username,
		"password": password,
		"name":     name,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/users/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(s.t, envelope.Data.Token)
	return envelope.Data.Token
}

// decodeData unmarshals the "data" field of a success envelope into v.
func decodeData(t *testing.T, body []byte, v any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

// errorsString returns the "errors" field of a failure envelope when it
// holds a plain message.
func errorsString(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Errors string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Errors
}

// errorsList returns the "errors" field of a failure envelope when it
// holds structured validation details.
func errorsList(t *testing.T, body []byte) []domain.ValidationError {
	t.Helper()
	var envelope struct {
		Errors []domain.ValidationError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Errors
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/current"},
		{http.MethodPatch, "/api/users/current"},
		{http.MethodDelete, "/api/users/current"},
		{http.MethodPost, "/api/contacts"},
		{http.MethodGet, "/api/contacts"},
		{http.MethodGet, "/api/contacts/1"},
		{http.MethodGet, "/api/contacts/1/addresses"},
	}
	for _, p := range paths {
		rec := s.do(p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
		assert.Equal(t, "Unauthorized", errorsString(t, rec.Body.Bytes()))
	}
}

func TestRouter_NonNumericIDsDoNotMatch(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	token := s.registerAndLogin("john", "rahasia", "John Doe")

	// The id segments are digit-constrained, so these fall through to the
	// router's own not-found handling.
	rec := s.do(http.MethodGet, "/api/contacts/abc", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/contacts/1/addresses/xyz", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Interface checks for the in-memory fakes below.
var (
	_ store.UserStore    = (*fakeUserStore)(nil)
	_ store.ContactStore = (*fakeContactStore)(nil)
	_ store.AddressStore = (*fakeAddressStore)(nil)
)

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
			if !strings.Contains(strings.ToLower(contact.FirstName), name) &&
				!strings.Contains(strings.ToLower(contact.LastName), name) {
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
