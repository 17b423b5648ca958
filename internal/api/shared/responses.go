// Package shared holds the response envelope, request helpers and context
// keys used by every handler.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dsetiawan/contact-api/internal/domain"
)

// DataResponse is the success envelope: {"data": ...}.
type DataResponse struct {
	Data any `json:"data"`
}

// PageResponse is the success envelope for windowed result sets:
// {"data": [...], "paging": {...}}.
type PageResponse struct {
	Data   any         `json:"data"`
	Paging domain.Page `json:"paging"`
}

// ErrorResponse is the failure envelope: {"errors": ...}. Errors holds a
// plain message string, or a list of field-level problems for validation
// failures.
type ErrorResponse struct {
	Errors any `json:"errors"`
}

// writeJSON serializes the payload with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a {"data": ...} success response.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, DataResponse{Data: data})
}

// RespondWithPage writes a {"data": ..., "paging": ...} success response.
func RespondWithPage(w http.ResponseWriter, r *http.Request, status int, data any, paging domain.Page) {
	writeJSON(w, status, PageResponse{Data: data, Paging: paging})
}

// RespondWithError writes an {"errors": message} response with the given
// status code.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	writeJSON(w, status, ErrorResponse{Errors: message})
}

// RespondWithValidationErrors writes a 400 response whose errors field
// carries the structured list of field-level problems.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, details []domain.ValidationError) {
	slog.Debug("sending validation error response",
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method,
		"field_count", len(details))

	writeJSON(w, http.StatusBadRequest, ErrorResponse{Errors: details})
}
