package auth

import "github.com/google/uuid"

// TokenGenerator produces opaque session tokens. Tokens carry no claims;
// they authenticate only by matching the value stored on the user row.
type TokenGenerator interface {
	// Generate returns a fresh random token.
	Generate() string
}

// UUIDTokenGenerator implements TokenGenerator with random UUIDv4 strings.
type UUIDTokenGenerator struct{}

// NewUUIDTokenGenerator creates a new UUIDTokenGenerator.
func NewUUIDTokenGenerator() *UUIDTokenGenerator {
	return &UUIDTokenGenerator{}
}

// Generate implements the TokenGenerator interface.
func (g *UUIDTokenGenerator) Generate() string {
	return uuid.NewString()
}
