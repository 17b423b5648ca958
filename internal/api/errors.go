package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dsetiawan/contact-api/internal/api/shared"
	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/service/auth"
	"github.com/dsetiawan/contact-api/internal/store"
)

// MapErrorToStatusCode maps service and store errors to HTTP status codes.
// A missing entity and an ownership violation share the 404 so callers
// cannot probe for existence; the duplicate username keeps the 400 the
// original clients depend on.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the client-facing message for an error. Known
// failures map to the fixed messages the HTTP surface promises; anything
// else passes its message through as an internal failure.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Username/password is incorrect"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"
	case errors.Is(err, store.ErrContactNotFound):
		return "Contact is not found"
	case errors.Is(err, store.ErrAddressNotFound):
		return "Address is not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User is not found"
	default:
		return err.Error()
	}
}

// HandleServiceError writes the response for an error escaping a service
// call: status from MapErrorToStatusCode, message from ErrorMessage.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), ErrorMessage(err))
}

// validationDetails converts a validator error into the structured list of
// field-level problems carried by the 400 payload.
func validationDetails(err error) []domain.ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.ValidationError{{Field: "body", Message: "is invalid"}}
	}

	details := make([]domain.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, domain.ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: validationTagMessage(fe.Tag(), fe.Param()),
		})
	}
	return details
}

// validationTagMessage maps validation tags to client-facing messages.
func validationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + param + " characters"
	case "gte":
		return "must be at least " + param
	default:
		return "is invalid"
	}
}
