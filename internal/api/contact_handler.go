package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/dsetiawan/contact-api/internal/api/shared"
	"github.com/dsetiawan/contact-api/internal/domain"
	"github.com/dsetiawan/contact-api/internal/service"
)

// ContactHandler handles contact-related API requests.
type ContactHandler struct {
	contactService service.ContactService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewContactHandler creates a new ContactHandler with the given dependencies.
func NewContactHandler(contactService service.ContactService, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{
		contactService: contactService,
		validator:      newValidator(),
		logger:         logger.With("component", "contact_handler"),
	}
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	var req ContactRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	contact, err := h.contactService.Create(r.Context(), user.Username, service.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, toContactResponse(contact))
}

// Get handles GET /api/contacts/{contactID}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	contact, err := h.contactService.Get(r.Context(), user.Username, contactID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, toContactResponse(contact))
}

// Update handles PUT /api/contacts/{contactID}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req ContactRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	contact, err := h.contactService.Update(r.Context(), user.Username, contactID, service.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, toContactResponse(contact))
}

// Delete handles DELETE /api/contacts/{contactID}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.contactService.Delete(r.Context(), user.Username, contactID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "OK")
}

// Search handles GET /api/contacts with optional name/email/phone filters
// and page/size query parameters.
func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	req, perr := parseSearchRequest(r)
	if perr != nil {
		shared.RespondWithValidationErrors(w, r, perr)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationDetails(err))
		return
	}

	contacts, paging, err := h.contactService.Search(r.Context(), user.Username, service.SearchQuery{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Page:  req.Page,
		Size:  req.Size,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, http.StatusOK, toContactResponses(contacts), paging)
}

// parseSearchRequest reads the search query parameters, applying the
// page/size defaults when absent.
func parseSearchRequest(r *http.Request) (SearchContactRequest, []domain.ValidationError) {
	query := r.URL.Query()

	req := SearchContactRequest{
		Name:  query.Get("name"),
		Email: query.Get("email"),
		Phone: query.Get("phone"),
		Page:  service.DefaultPage,
		Size:  service.DefaultSize,
	}

	var details []domain.ValidationError
	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, domain.ValidationError{Field: "page", Message: "must be a number"})
		} else {
			req.Page = page
		}
	}
	if raw := query.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, domain.ValidationError{Field: "size", Message: "must be a number"})
		} else {
			req.Size = size
		}
	}

	return req, details
}
