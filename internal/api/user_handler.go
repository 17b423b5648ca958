package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dsetiawan/contact-api/internal/api/shared"
	"github.com/dsetiawan/contact-api/internal/service"
)

// UserHandler handles user-related API requests.
type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		validator:   newValidator(),
		logger:      logger.With("component", "user_handler"),
	}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/users/login. The success payload carries the
// freshly issued session token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginUserRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	response := toUserResponse(user)
	if user.Token != nil {
		response.Token = *user.Token
	}
	shared.RespondWithData(w, r, http.StatusOK, response)
}

// Get handles GET /api/users/current. The auth middleware already fetched
// the user, so no further storage round trip happens here.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, toUserResponse(user))
}

// Update handles PATCH /api/users/current. Only the supplied fields change.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	updated, err := h.userService.Update(r.Context(), user, service.UserPatch{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, toUserResponse(updated))
}

// Logout handles DELETE /api/users/current.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.userService.Logout(r.Context(), user); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "OK")
}
