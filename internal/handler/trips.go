package handler

import "net/http"

// ListTrips handles GET /api/trips.
// Returns every trip in the catalog with its country names.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}
