package domain

// Contact is an entry in a user's contact book. Every contact belongs to
// exactly one user, referenced by Username; cross-user access is never
// allowed above the store layer.
type Contact struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Username  string `json:"-"`
}
