package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/dsetiawan/contact-api/internal/domain"
)

// ContextKey is the type for context values stored by the API layer.
type ContextKey string

// Context keys for various values
const (
	// IdentityContextKey is the context key under which the auth middleware
	// stores the authenticated user.
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// SetIdentity returns a copy of ctx carrying the authenticated user.
func SetIdentity(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, IdentityContextKey, user)
}

// GetIdentity retrieves the authenticated user from the context.
// Returns the user and a boolean indicating if it was found.
func GetIdentity(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(IdentityContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// SetTraceID adds a trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random trace ID for request tracking.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate trace ID", "error", err)
		return ""
	}
	return hex.EncodeToString(b)
}
