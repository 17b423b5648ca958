package auth

import "errors"

// Authentication errors.
var (
	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so a caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("username or password is incorrect")

	// ErrInvalidToken is returned when a presented session token matches no
	// logged-in user.
	ErrInvalidToken = errors.New("invalid token")
)
