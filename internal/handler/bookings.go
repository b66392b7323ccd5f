package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mzurek/travelbook/internal/domain"
	"github.com/mzurek/travelbook/internal/metrics"
)

// RegisterClientForTrip handles PUT /api/clients/{clientID}/trips/{tripID}.
// On success the created registration is returned with HTTP 201.
func (s *Server) RegisterClientForTrip(w http.ResponseWriter, r *http.Request) {
	clientID, tripID, ok := s.bookingIDs(w, r)
	if !ok {
		return
	}

	reg, err := s.bookings.Enroll(r.Context(), clientID, tripID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyRegistered):
			s.metrics.BookingsRejected.WithLabelValues(metrics.ReasonAlreadyRegistered).Inc()
		case errors.Is(err, domain.ErrTripFull):
			s.metrics.BookingsRejected.WithLabelValues(metrics.ReasonTripFull).Inc()
		}
		s.writeError(w, r, err)
		return
	}

	s.metrics.BookingsCreated.Inc()
	s.logger.InfoContext(r.Context(), "client registered for trip",
		"client_id", clientID,
		"trip_id", tripID,
		"registered_at", int(reg.RegisteredAt),
	)
	writeJSON(w, http.StatusCreated, reg)
}

// UnregisterClientFromTrip handles DELETE /api/clients/{clientID}/trips/{tripID}.
func (s *Server) UnregisterClientFromTrip(w http.ResponseWriter, r *http.Request) {
	clientID, tripID, ok := s.bookingIDs(w, r)
	if !ok {
		return
	}

	if err := s.bookings.Unenroll(r.Context(), clientID, tripID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.BookingsCancelled.Inc()
	s.logger.InfoContext(r.Context(), "client unregistered from trip",
		"client_id", clientID,
		"trip_id", tripID,
	)
	w.WriteHeader(http.StatusNoContent)
}

// ListClientTrips handles GET /api/clients/{clientID}/trips.
// Returns the client's registrations joined with their trips.
func (s *Server) ListClientTrips(w http.ResponseWriter, r *http.Request) {
	clientID, ok := s.pathID(w, r, "clientID")
	if !ok {
		return
	}

	trips, err := s.bookings.TripsByClient(r.Context(), clientID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// bookingIDs extracts and parses both path IDs, writing a 404 when either is
// not a positive integer; a malformed ID can never name an existing entity.
func (s *Server) bookingIDs(w http.ResponseWriter, r *http.Request) (clientID, tripID int64, ok bool) {
	clientID, ok = s.pathID(w, r, "clientID")
	if !ok {
		return 0, 0, false
	}
	tripID, ok = s.pathID(w, r, "tripID")
	if !ok {
		return 0, 0, false
	}
	return clientID, tripID, true
}

// pathID parses a single integer path parameter.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		code, msg := "client_not_found", "client not found"
		if name == "tripID" {
			code, msg = "trip_not_found", "trip not found"
		}
		writeJSON(w, http.StatusNotFound, errorBody(code, msg))
		return 0, false
	}
	return id, true
}

// itoa formats an int64 for URL building.
func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
