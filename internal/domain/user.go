package domain

// User represents a registered account. The username doubles as the
// primary key; Token holds the single active opaque session credential
// and is nil whenever the user is logged out.
type User struct {
	Username       string  `json:"username"`
	Name           string  `json:"name"`
	HashedPassword string  `json:"-"` // Never expose the password hash in JSON
	Token          *string `json:"-"` // Session credential, serialized explicitly by the API layer only
}

// HasToken reports whether the user currently holds an active session token.
func (u *User) HasToken() bool {
	return u.Token != nil && *u.Token != ""
}
