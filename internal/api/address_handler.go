package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dsetiawan/contact-api/internal/api/shared"
	"github.com/dsetiawan/contact-api/internal/service"
)

// AddressHandler handles address-related API requests.
type AddressHandler struct {
	addressService service.AddressService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewAddressHandler creates a new AddressHandler with the given dependencies.
func NewAddressHandler(addressService service.AddressService, logger *slog.Logger) *AddressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AddressHandler{
		addressService: addressService,
		validator:      newValidator(),
		logger:         logger.With("component", "address_handler"),
	}
}

// addressIDs extracts the contact and address IDs from the URL path.
func addressIDs(w http.ResponseWriter, r *http.Request) (contactID, addressID int64, ok bool) {
	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return 0, 0, false
	}
	addressID, err = pathID(r, "addressID")
	if err != nil {
		HandleServiceError(w, r, err)
		return 0, 0, false
	}
	return contactID, addressID, true
}

// Create handles POST /api/contacts/{contactID}/addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req AddressRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	address, err := h.addressService.Create(r.Context(), user.Username, contactID, service.AddressInput{
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, toAddressResponse(address))
}

// Get handles GET /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	contactID, addressID, ok := addressIDs(w, r)
	if !ok {
		return
	}

	address, err := h.addressService.Get(r.Context(), user.Username, contactID, addressID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, toAddressResponse(address))
}

// Update handles PUT /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	contactID, addressID, ok := addressIDs(w, r)
	if !ok {
		return
	}

	var req AddressRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	address, err := h.addressService.Update(r.Context(), user.Username, contactID, addressID, service.AddressInput{
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, toAddressResponse(address))
}

// Delete handles DELETE /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	contactID, addressID, ok := addressIDs(w, r)
	if !ok {
		return
	}

	if err := h.addressService.Delete(r.Context(), user.Username, contactID, addressID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "OK")
}

// List handles GET /api/contacts/{contactID}/addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	addresses, err := h.addressService.List(r.Context(), user.Username, contactID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, toAddressResponses(addresses))
}
