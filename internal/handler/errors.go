package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mzurek/travelbook/internal/domain"
)

// ErrorResponse is the JSON envelope for all error replies.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto the transport. The not-found family
// becomes 404, the conflict family 409, validation 422, each with a code
// naming the exact rule that failed, never a generic one when a specific one
// is knowable. Anything else is an unexpected store failure: logged with the
// full error chain and surfaced as an opaque 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("client_not_found", "client not found"))
	case errors.Is(err, domain.ErrTripNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("trip_not_found", "trip not found"))
	case errors.Is(err, domain.ErrNotRegistered):
		writeJSON(w, http.StatusNotFound, errorBody("not_registered", "client is not registered for this trip"))
	case errors.Is(err, domain.ErrAlreadyRegistered):
		writeJSON(w, http.StatusConflict, errorBody("already_registered", "client is already registered for this trip"))
	case errors.Is(err, domain.ErrTripFull):
		writeJSON(w, http.StatusConflict, errorBody("trip_full", "trip has reached its maximum number of participants"))
	case errors.Is(err, domain.ErrDuplicatePesel):
		writeJSON(w, http.StatusConflict, errorBody("duplicate_pesel", "a client with this pesel already exists"))
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, errorBody("duplicate_email", "a client with this email already exists"))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err)))
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// errorBody builds the standard error envelope.
func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// validationError wraps domain.ErrValidation with a field-specific message.
func validationError(message string) error {
	return &wrappedValidation{message: message}
}

type wrappedValidation struct {
	message string
}

func (e *wrappedValidation) Error() string { return "validation error: " + e.message }
func (e *wrappedValidation) Unwrap() error { return domain.ErrValidation }

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.ClientService.Create: validation error: pesel must be
// exactly 11 digits" becomes "pesel must be exactly 11 digits".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	return msg
}
