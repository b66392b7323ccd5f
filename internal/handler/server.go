// Package handler implements the HTTP handlers for the booking backend.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trips.go, clients.go, bookings.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mzurek/travelbook/internal/domain"
	"github.com/mzurek/travelbook/internal/metrics"
)

// BookingServicer defines the enrollment operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type BookingServicer interface {
	Enroll(ctx context.Context, clientID, tripID int64) (domain.Registration, error)
	Unenroll(ctx context.Context, clientID, tripID int64) error
	TripsByClient(ctx context.Context, clientID int64) ([]domain.ClientTrip, error)
}

// ClientServicer defines the client registry operations the handlers depend on.
// Create returns the persisted row, so no re-fetch is needed for the 201 body.
type ClientServicer interface {
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
}

// TripServicer defines the trip catalog reads the handlers depend on.
type TripServicer interface {
	List(ctx context.Context) ([]domain.TripWithCountries, error)
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	bookings BookingServicer
	clients  ClientServicer
	trips    TripServicer
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewServer constructs the Server with all its dependencies.
func NewServer(bookings BookingServicer, clients ClientServicer, trips TripServicer, logger *slog.Logger, m *metrics.Metrics) *Server {
	return &Server{bookings: bookings, clients: clients, trips: trips, logger: logger, metrics: m}
}

// Register mounts all API routes on the given router.
// The route shape mirrors the public API: trips are listed at /api/trips and
// registrations live under the owning client at /api/clients/{id}/trips.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/trips", s.ListTrips)
		r.Post("/clients", s.CreateClient)
		r.Get("/clients/{clientID}/trips", s.ListClientTrips)
		r.Put("/clients/{clientID}/trips/{tripID}", s.RegisterClientForTrip)
		r.Delete("/clients/{clientID}/trips/{tripID}", s.UnregisterClientFromTrip)
	})
}

// Routes returns a fresh router with every handler mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}
