package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "omnichat/backend/internal/errors"
)

// Shared DTOs for API responses and helpers for sending consistent HTTP
// responses. Every service error funnels through respondWithError, which is
// the single place business errors become status codes and one user-visible
// string.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for operations that
// don't return a resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// SendMessageRequest is the DTO for the send endpoint.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required" example:"Explain goroutines in one paragraph"`
}

// SetProviderRequest switches the active provider.
type SetProviderRequest struct {
	Provider string `json:"provider" validate:"required" example:"claude"`
}

// SetModelRequest switches the model within the current provider.
type SetModelRequest struct {
	Model string `json:"model" validate:"required" example:"claude-3-opus"`
}

// SaveKeyRequest carries the API key to persist.
type SaveKeyRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

// respondWithError maps business-layer errors to HTTP status codes. The
// user's optimistic message, when one was appended, stays in place — failure
// here only reports, it never rolls anything back.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation),
		errors.Is(err, app_errors.ErrMissingCredential),
		errors.Is(err, app_errors.ErrUnsupportedProvider):
		// Local rejections carry descriptive, user-facing messages.
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, app_errors.ErrBusy):
		statusCode = http.StatusConflict
		message = "A request is already in progress."
	case errors.Is(err, app_errors.ErrTimeout):
		statusCode = http.StatusGatewayTimeout
		message = err.Error()
	case errors.Is(err, app_errors.ErrUpstream):
		statusCode = http.StatusBadGateway
		message = err.Error()
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// errInvalidBody wraps a JSON decode failure as a validation error without
// leaking decoder internals to the client.
func errInvalidBody(err error) error {
	return fmt.Errorf("%w: invalid request payload (%v)", app_errors.ErrValidation, err)
}

// respondWithJSON marshals a payload and writes it with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
