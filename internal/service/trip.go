package service

import (
	"context"
	"fmt"

	"github.com/mzurek/travelbook/internal/domain"
	"github.com/mzurek/travelbook/internal/repo"
)

// TripService exposes the read-only trip catalog.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(trips repo.TripRepo) *TripService {
	return &TripService{trips: trips}
}

// List returns all trips with their countries.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.TripWithCountries, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.TripWithCountries{}, nil
	}
	return trips, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrTripNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}
