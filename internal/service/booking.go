// Package service contains the business logic for the booking backend.
// Services enforce the check ordering of the booking rules and orchestrate
// repo calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mzurek/travelbook/internal/domain"
	"github.com/mzurek/travelbook/internal/repo"
)

// BookingService implements the trip enrollment engine. It owns the only two
// mutators of the client/trip relation, Enroll and Unenroll, and guarantees
// that no client is double-booked and no trip exceeds its participant cap.
//
// The check order is fixed and the first failing check wins:
// client exists, trip exists, not already registered, capacity available.
// Everything past the client check runs inside one store transaction (see
// repo.BookingRepo), so concurrent calls on the same trip serialize.
type BookingService struct {
	clients  repo.ClientRepo
	bookings repo.BookingRepo

	// now is the clock used for registration dates. Overridable in tests.
	now func() time.Time
}

// NewBookingService constructs a BookingService backed by the provided repos.
func NewBookingService(clients repo.ClientRepo, bookings repo.BookingRepo) *BookingService {
	return &BookingService{clients: clients, bookings: bookings, now: time.Now}
}

// WithClock replaces the clock used for registration dates and returns the
// service for chaining. Intended for tests that need a deterministic date.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// Enroll registers the client on the trip. The registration date is the
// local calendar date at the time of the call.
//
// Returns domain.ErrClientNotFound, domain.ErrTripNotFound,
// domain.ErrAlreadyRegistered, or domain.ErrTripFull in that precedence.
func (s *BookingService) Enroll(ctx context.Context, clientID, tripID int64) (domain.Registration, error) {
	exists, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("service.BookingService.Enroll: %w", err)
	}
	if !exists {
		return domain.Registration{}, fmt.Errorf("service.BookingService.Enroll: %w", domain.ErrClientNotFound)
	}

	reg, err := s.bookings.Enroll(ctx, clientID, tripID, domain.DateIntFrom(s.now()))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("service.BookingService.Enroll: %w", err)
	}
	return reg, nil
}

// Unenroll removes the client's registration for the trip.
//
// Returns domain.ErrClientNotFound, domain.ErrTripNotFound, or
// domain.ErrNotRegistered in that precedence.
func (s *BookingService) Unenroll(ctx context.Context, clientID, tripID int64) error {
	exists, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return fmt.Errorf("service.BookingService.Unenroll: %w", err)
	}
	if !exists {
		return fmt.Errorf("service.BookingService.Unenroll: %w", domain.ErrClientNotFound)
	}

	if err := s.bookings.Unenroll(ctx, clientID, tripID); err != nil {
		return fmt.Errorf("service.BookingService.Unenroll: %w", err)
	}
	return nil
}

// ParticipantCount returns the current number of registrations for the trip.
// Always read from the store; counts are never cached in-process, since a
// stale count would reopen the capacity race the transaction closes.
func (s *BookingService) ParticipantCount(ctx context.Context, tripID int64) (int, error) {
	n, err := s.bookings.Count(ctx, tripID)
	if err != nil {
		return 0, fmt.Errorf("service.BookingService.ParticipantCount: %w", err)
	}
	return n, nil
}

// IsRegistered reports whether the client holds a registration for the trip.
func (s *BookingService) IsRegistered(ctx context.Context, clientID, tripID int64) (bool, error) {
	ok, err := s.bookings.IsRegistered(ctx, clientID, tripID)
	if err != nil {
		return false, fmt.Errorf("service.BookingService.IsRegistered: %w", err)
	}
	return ok, nil
}

// TripsByClient returns all trips the client is registered for.
// Returns domain.ErrClientNotFound if the client does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) TripsByClient(ctx context.Context, clientID int64) ([]domain.ClientTrip, error) {
	exists, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.TripsByClient: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("service.BookingService.TripsByClient: %w", domain.ErrClientNotFound)
	}

	trips, err := s.bookings.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.TripsByClient: %w", err)
	}
	if trips == nil {
		return []domain.ClientTrip{}, nil
	}
	return trips, nil
}
