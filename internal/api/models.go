package api

import "github.com/dsetiawan/contact-api/internal/domain"

// Request payloads. Validation tags mirror the schema rules enforced per
// endpoint; handlers run them through a shared validator before any
// service logic executes.

// RegisterUserRequest defines the payload for the registration endpoint.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Name     string `json:"name"     validate:"required,max=100"`
}

// LoginUserRequest defines the payload for the login endpoint.
type LoginUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserRequest defines the payload for the partial profile update.
// Both fields are optional; an absent field leaves the stored value alone.
type UpdateUserRequest struct {
	Name     string `json:"name"     validate:"omitempty,max=100"`
	Password string `json:"password" validate:"omitempty,max=100"`
}

// ContactRequest defines the payload for contact create and update.
type ContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
	Email     string `json:"email"      validate:"omitempty,email,max=100"`
	Phone     string `json:"phone"      validate:"omitempty,max=20"`
}

// AddressRequest defines the payload for address create and update.
type AddressRequest struct {
	Street     string `json:"street"      validate:"omitempty,max=200"`
	City       string `json:"city"        validate:"omitempty,max=200"`
	Province   string `json:"province"    validate:"omitempty,max=200"`
	Country    string `json:"country"     validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=10"`
}

// SearchContactRequest holds the parsed query parameters of a contact
// search. Page and Size carry their defaults by the time validation runs.
type SearchContactRequest struct {
	Name  string `validate:"omitempty,max=100"`
	Email string `validate:"omitempty,max=100"`
	Phone string `validate:"omitempty,max=20"`
	Page  int    `validate:"gte=1"`
	Size  int    `validate:"gte=1"`
}

// Response payloads.

// UserResponse is the public profile representation. The password hash is
// never part of it; Token is set only in the login response.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

// ContactResponse is the wire representation of a contact.
type ContactResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// AddressResponse is the wire representation of an address.
type AddressResponse struct {
	ID         int64  `json:"id"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code,omitempty"`
}

// toUserResponse converts a domain.User to its public profile.
func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		Name:     user.Name,
	}
}

// toContactResponse converts a domain.Contact to its wire representation.
func toContactResponse(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
	}
}

// toContactResponses converts a page of contacts. It always returns a
// non-nil slice so empty pages serialize as [] rather than null.
func toContactResponses(contacts []*domain.Contact) []ContactResponse {
	responses := make([]ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, toContactResponse(contact))
	}
	return responses
}

// toAddressResponse converts a domain.Address to its wire representation.
func toAddressResponse(address *domain.Address) AddressResponse {
	return AddressResponse{
		ID:         address.ID,
		Street:     address.Street,
		City:       address.City,
		Province:   address.Province,
		Country:    address.Country,
		PostalCode: address.PostalCode,
	}
}

// toAddressResponses converts a list of addresses, always non-nil.
func toAddressResponses(addresses []*domain.Address) []AddressResponse {
	responses := make([]AddressResponse, 0, len(addresses))
	for _, address := range addresses {
		responses = append(responses, toAddressResponse(address))
	}
	return responses
}
