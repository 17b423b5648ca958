package api

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dsetiawan/contact-api/internal/api/shared"
	"github.com/dsetiawan/contact-api/internal/domain"
)

// newValidator builds the request validator. Field names in error details
// come from the json tag so clients see wire names, not Go names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// decodeAndValidate parses the request body into v and runs schema
// validation. On failure it writes the error response and returns false;
// no service logic should run after that.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := validate.Struct(v); err != nil {
		shared.RespondWithValidationErrors(w, r, validationDetails(err))
		return false
	}
	return true
}

// identity extracts the authenticated user bound by the auth middleware.
// Writes a 401 and returns false when the binding is missing, which only
// happens if a protected route was wired without the middleware.
func identity(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := shared.GetIdentity(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return user, true
}

// pathID extracts a numeric ID from the URL path parameters. The router
// already constrains these segments to digits, so a parse failure here
// means a route wiring bug rather than client input.
func pathID(r *http.Request, paramName string) (int64, error) {
	param := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
