package domain

// Address is a postal address attached to a single contact. It is only
// ever reachable through a contact owned by the requesting user.
type Address struct {
	ID         int64  `json:"id"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code,omitempty"`
	ContactID  int64  `json:"-"`
}
