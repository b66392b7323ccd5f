package domain

import "errors"

// The booking engine's failure modes form a small, closed set. Each check in
// the enroll/unenroll sequence has its own sentinel so callers can react to
// the exact reason instead of a generic failure. Handlers map the not-found
// family to HTTP 404 and the conflict family to HTTP 409.
var (
	// ErrClientNotFound: the referenced client does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrTripNotFound: the referenced trip does not exist.
	ErrTripNotFound = errors.New("trip not found")

	// ErrNotRegistered: the client has no registration for the trip.
	ErrNotRegistered = errors.New("client not registered for trip")

	// ErrAlreadyRegistered: a registration for this (client, trip) pair
	// already exists.
	ErrAlreadyRegistered = errors.New("client already registered for trip")

	// ErrTripFull: the trip has reached its participant cap.
	ErrTripFull = errors.New("trip has reached maximum participants")

	// ErrDuplicatePesel: another client already holds this PESEL.
	ErrDuplicatePesel = errors.New("client with this pesel already exists")

	// ErrDuplicateEmail: another client already holds this email.
	ErrDuplicateEmail = errors.New("client with this email already exists")
)

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, malformed PESEL).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
