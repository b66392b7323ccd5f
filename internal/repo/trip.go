package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mzurek/travelbook/internal/domain"
)

// TripRepo defines the read-only persistence operations for Trips.
// Trips belong to the catalog; the booking backend never mutates them.
type TripRepo interface {
	// GetByID retrieves a single trip by primary key.
	// Returns domain.ErrTripNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// Exists reports whether a trip with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// List returns all trips with their country names, ordered by date_from
	// descending (soonest departures last in history, most recent first).
	List(ctx context.Context) ([]domain.TripWithCountries, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, description, date_from, date_to, max_people
		FROM trips
		WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	)
	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrTripNotFound)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

// Exists reports whether a trip with the given ID exists.
func (r *pgTripRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM trips WHERE id = @id)`,
		pgx.NamedArgs{"id": id},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.TripRepo.Exists: %w", err)
	}
	return exists, nil
}

// List returns every trip joined with its countries. The LEFT JOIN keeps
// trips that visit no recorded country; rows are folded per trip in order.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.TripWithCountries, error) {
	const q = `
		SELECT t.id, t.name, t.description, t.date_from, t.date_to, t.max_people, c.name
		FROM trips t
		LEFT JOIN country_trips ct ON ct.trip_id = t.id
		LEFT JOIN countries c ON c.id = ct.country_id
		ORDER BY t.date_from DESC, t.id, c.name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.TripWithCountries{}
	for rows.Next() {
		var (
			t           domain.Trip
			description pgtype.Text
			dateFrom    pgtype.Date
			dateTo      pgtype.Date
			country     pgtype.Text
		)
		err := rows.Scan(&t.ID, &t.Name, &description, &dateFrom, &dateTo, &t.MaxPeople, &country)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		if description.Valid {
			t.Description = description.String
		}
		t.DateFrom = dateFrom.Time
		t.DateTo = dateTo.Time

		// Rows for the same trip are adjacent thanks to the ORDER BY.
		if n := len(trips); n == 0 || trips[n-1].ID != t.ID {
			trips = append(trips, domain.TripWithCountries{Trip: t, Countries: []string{}})
		}
		if country.Valid {
			last := &trips[len(trips)-1]
			last.Countries = append(last.Countries, country.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t           domain.Trip
		description pgtype.Text
		dateFrom    pgtype.Date
		dateTo      pgtype.Date
	)
	err := s.Scan(&t.ID, &t.Name, &description, &dateFrom, &dateTo, &t.MaxPeople)
	if err != nil {
		return domain.Trip{}, err
	}
	if description.Valid {
		t.Description = description.String
	}
	t.DateFrom = dateFrom.Time
	t.DateTo = dateTo.Time
	return t, nil
}
