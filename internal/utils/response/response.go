// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here, together with
// the mapping from service errors to HTTP status codes.
package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/course-api/internal/ident"
	"github.com/aanand-mishra/course-api/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a record, a list…).
// Error responses always look like:
//
//	{ "status": "error", "error": "field name is required" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps err to a status code and writes the error envelope.
// It returns the status so callers can log it.
func WriteError(w http.ResponseWriter, err error) int {
	status, body := FromError(err)
	_ = WriteJSON(w, status, body)
	return status
}

// Fail writes the error response for err and logs server-side failures.
// Client errors are not logged; the handler already logged the request.
func Fail(w http.ResponseWriter, err error, msg string, id string) {
	status := WriteError(w, err)
	if status >= http.StatusInternalServerError {
		slog.Error(msg, slog.String("id", id), slog.String("error", err.Error()))
	}
}

// FromError classifies err:
//
//	*service.ValidationError → 422
//	ident.ErrInvalidID       → 400
//	service.ErrNotFound      → 404
//	anything else            → 500, with a generic message
func FromError(err error) (int, Response) {
	var verr *service.ValidationError
	var nf *service.NotFoundError

	switch {
	case errors.As(err, &verr):
		var fieldErrs validator.ValidationErrors
		if errors.As(verr, &fieldErrs) {
			return http.StatusUnprocessableEntity, ValidationError(fieldErrs)
		}
		return http.StatusUnprocessableEntity, GeneralError(verr)
	case errors.Is(err, ident.ErrInvalidID):
		return http.StatusBadRequest, GeneralError(ident.ErrInvalidID)
	case errors.As(err, &nf):
		return http.StatusNotFound, GeneralError(nf)
	default:
		// Storage failures carry connection details; keep them in the logs.
		return http.StatusInternalServerError, GeneralError(errors.New("internal server error"))
	}
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// Example output:
//
//	{ "status": "error", "error": "field name is required, field email must be a valid email address" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
