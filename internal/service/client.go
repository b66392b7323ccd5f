package service

import (
	"context"
	"fmt"

	"github.com/mzurek/travelbook/internal/domain"
	"github.com/mzurek/travelbook/internal/repo"
)

// ClientService implements the client registry: creation with global PESEL
// and email uniqueness, plus the existence check the booking engine consumes.
// Input format validation (field lengths, email syntax, the 11-digit PESEL
// pattern) happens at the HTTP layer before the service is called; the
// registry re-verifies uniqueness only.
type ClientService struct {
	clients repo.ClientRepo
}

// NewClientService constructs a ClientService backed by the provided ClientRepo.
func NewClientService(clients repo.ClientRepo) *ClientService {
	return &ClientService{clients: clients}
}

// Create persists a new client and returns it with the store-assigned ID.
// Returns domain.ErrDuplicatePesel or domain.ErrDuplicateEmail when another
// client already holds the PESEL or email; the PESEL check wins when both
// collide.
func (s *ClientService) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return domain.Client{}, fmt.Errorf("service.ClientService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single client by ID.
// Returns domain.ErrClientNotFound if no client with that ID exists.
func (s *ClientService) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return domain.Client{}, fmt.Errorf("service.ClientService.GetByID: %w", err)
	}
	return client, nil
}

// Exists reports whether a client with the given ID exists.
func (s *ClientService) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := s.clients.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("service.ClientService.Exists: %w", err)
	}
	return ok, nil
}
