package handler

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"github.com/mzurek/travelbook/internal/domain"
)

// peselPattern matches a national id number: exactly 11 digits.
var peselPattern = regexp.MustCompile(`^\d{11}$`)

// maxFieldLen is the column width for client text fields in the store.
const maxFieldLen = 120

// CreateClientRequest is the JSON body for POST /api/clients.
type CreateClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Pesel     string `json:"pesel"`
}

// CreateClient handles POST /api/clients.
// All input-format validation lives here: the service layer only re-verifies
// uniqueness, so anything reaching it must already be well-formed.
func (s *Server) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", "invalid request body"))
		return
	}

	client := domain.Client{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Pesel:     strings.TrimSpace(req.Pesel),
	}
	if err := validateNewClient(client); err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.clients.Create(r.Context(), client)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.ClientsCreated.Inc()
	s.logger.InfoContext(r.Context(), "client created", "client_id", created.ID)

	w.Header().Set("Location", "/api/clients/"+itoa(created.ID)+"/trips")
	writeJSON(w, http.StatusCreated, created)
}

// validateNewClient enforces the input format rules for client creation:
// required fields, the store's 120-character column widths, RFC 5322 email
// syntax, and the 11-digit PESEL pattern.
func validateNewClient(c domain.Client) error {
	switch {
	case c.FirstName == "":
		return validationError("first_name is required")
	case len(c.FirstName) > maxFieldLen:
		return validationError("first_name must be at most 120 characters")
	case c.LastName == "":
		return validationError("last_name is required")
	case len(c.LastName) > maxFieldLen:
		return validationError("last_name must be at most 120 characters")
	case c.Email == "":
		return validationError("email is required")
	case len(c.Email) > maxFieldLen:
		return validationError("email must be at most 120 characters")
	case len(c.Phone) > maxFieldLen:
		return validationError("phone must be at most 120 characters")
	case c.Pesel == "":
		return validationError("pesel is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return validationError("email is not a valid address")
	}
	if !peselPattern.MatchString(c.Pesel) {
		return validationError("pesel must be exactly 11 digits")
	}
	return nil
}
