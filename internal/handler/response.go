package handler

// RESPONSE HELPERS:
// Every JSON answer goes through writeJSON, every failure through writeError.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape, plus the toast the
// page should show:
//   {"error": "validation_error", "message": "Email is required", "field": "email",
//    "notice": {"title": "Please check the form", "description": "Email is required", "variant": "destructive"}}
//
// The frontend never has to guess: field says which input to highlight,
// notice is ready to render as-is.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/model"
)

// maxBodyBytes caps JSON request bodies. Photo uploads have their own limit.
const maxBodyBytes = 1 << 20

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string        `json:"error"`           // Machine-readable error type (e.g., "not_found")
	Message string        `json:"message"`         // Human-readable description
	Field   string        `json:"field,omitempty"` // Offending form field, if any
	Notice  *model.Notice `json:"notice,omitempty"`
}

// NoticeResponse wraps the result of an action together with its toast.
type NoticeResponse struct {
	Result any          `json:"result,omitempty"`
	Notice model.Notice `json:"notice"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set before the body is written; once Encode
// writes, later header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// The headers are already sent; all that is left is to log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeNotice answers 200 with an action result and the toast to show.
func writeNotice(w http.ResponseWriter, result any, notice model.Notice) {
	writeJSON(w, http.StatusOK, NoticeResponse{Result: result, Notice: notice})
}

// errorKind maps a domain error to its status, wire name and toast title.
//
// errors.Is walks the whole chain, so a service error wrapped with
// fmt.Errorf("...: %w") still maps correctly.
func errorKind(err error) (status int, kind, title string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error", "Please check the form"
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized", "Sign in required"
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden, "forbidden", "Access Denied"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found", "Not Found"
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict, "conflict", "Action not allowed"
	}
	return http.StatusInternalServerError, "internal_error", "Error"
}

// writeError maps a domain error to the appropriate HTTP status code and
// sends it with a destructive notice.
func writeError(w http.ResponseWriter, err error) {
	status, kind, title := errorKind(err)

	// errors.As extracts the AppError for its human-readable message.
	var appErr *apperror.AppError
	if status == http.StatusInternalServerError || !errors.As(err, &appErr) {
		// NEVER expose internal error details to the client: the raw message
		// may carry SQL, file paths or Redis addresses.
		slog.Error("request failed", slog.String("error", err.Error()))
		status, kind, title = http.StatusInternalServerError, "internal_error", "Error"
		writeJSON(w, status, ErrorResponse{
			Error:   kind,
			Message: "An internal error occurred",
			Notice:  &model.Notice{Title: title, Description: "Something went wrong. Please try again.", Variant: "destructive"},
		})
		return
	}

	writeJSON(w, status, ErrorResponse{
		Error:   kind,
		Message: appErr.Message,
		Field:   appErr.Field,
		Notice:  &model.Notice{Title: title, Description: appErr.Message, Variant: "destructive"},
	})
}

// decodeJSON reads a JSON request body into dst. A malformed body is a
// validation error so it surfaces as 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("", "Invalid JSON body")
	}
	return nil
}
