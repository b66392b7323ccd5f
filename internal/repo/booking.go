package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mzurek/travelbook/internal/domain"
)

// BookingRepo defines the persistence operations for the client-to-trip
// registration relation. The service layer depends on this interface, not the
// concrete Postgres implementation, which allows the service to be
// unit-tested with a mock.
//
// Enroll and Unenroll are transactional primitives: each one locks the trip
// row and performs its full check-then-write sequence inside a single
// transaction, so concurrent calls on the same trip serialize and the
// capacity cap can never be exceeded by a check/insert race.
type BookingRepo interface {
	// Enroll registers a client on a trip, enforcing in order: trip
	// existence, no prior registration, and the participant cap. Returns
	// domain.ErrTripNotFound, domain.ErrAlreadyRegistered, or
	// domain.ErrTripFull when the corresponding check fails; the first
	// failing check wins. The caller is responsible for verifying the
	// client exists before calling.
	Enroll(ctx context.Context, clientID, tripID int64, registeredAt domain.DateInt) (domain.Registration, error)

	// Unenroll deletes the registration for (clientID, tripID). Returns
	// domain.ErrTripNotFound if the trip does not exist and
	// domain.ErrNotRegistered if no registration exists.
	Unenroll(ctx context.Context, clientID, tripID int64) error

	// Count returns the number of registrations for the trip.
	Count(ctx context.Context, tripID int64) (int, error)

	// IsRegistered reports whether a registration exists for the pair.
	IsRegistered(ctx context.Context, clientID, tripID int64) (bool, error)

	// ListByClient returns all trips the client is registered for, joined
	// with the registration's dates, ordered by date_from descending.
	ListByClient(ctx context.Context, clientID int64) ([]domain.ClientTrip, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback
// isolation (the internal transactions become savepoints).
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

// Enroll runs the full registration sequence in one transaction.
//
// The SELECT ... FOR UPDATE on the trip row is what makes the capacity check
// safe: every Enroll and Unenroll for the same trip queues on that lock, so
// the count observed here cannot change before the insert commits. The
// composite primary key on client_trips is the second line of defense for the
// duplicate check; a unique violation is translated to ErrAlreadyRegistered.
func (r *pgBookingRepo) Enroll(ctx context.Context, clientID, tripID int64, registeredAt domain.DateInt) (domain.Registration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var maxPeople int
	err = tx.QueryRow(ctx,
		`SELECT max_people FROM trips WHERE id = @trip_id FOR UPDATE`,
		pgx.NamedArgs{"trip_id": tripID},
	).Scan(&maxPeople)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: %w", domain.ErrTripNotFound)
		}
		return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: lock trip: %w", err)
	}

	var registered bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM client_trips WHERE client_id = @client_id AND trip_id = @trip_id)`,
		pgx.NamedArgs{"client_id": clientID, "trip_id": tripID},
	).Scan(&registered)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: check registration: %w", err)
	}
	if registered {
		return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: %w", domain.ErrAlreadyRegistered)
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT count(*) FROM client_trips WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID},
	).Scan(&count)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: count: %w", err)
	}
	// Closed at capacity: the last slot is fillable, then the trip is shut.
	if count >= maxPeople {
		return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: %w", domain.ErrTripFull)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO client_trips (client_id, trip_id, registered_at)
		VALUES (@client_id, @trip_id, @registered_at)`,
		pgx.NamedArgs{"client_id": clientID, "trip_id": tripID, "registered_at": int(registeredAt)},
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: %w", domain.ErrAlreadyRegistered)
		}
		return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Registration{}, fmt.Errorf("repo.BookingRepo.Enroll: commit: %w", err)
	}

	return domain.Registration{
		ClientID:     clientID,
		TripID:       tripID,
		RegisteredAt: registeredAt,
	}, nil
}

// Unenroll deletes the registration for (clientID, tripID) inside one
// transaction, holding the same trip row lock as Enroll so a concurrent
// enroll cannot interleave with the existence check and the delete.
func (r *pgBookingRepo) Unenroll(ctx context.Context, clientID, tripID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.Unenroll: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var lockedID int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM trips WHERE id = @trip_id FOR UPDATE`,
		pgx.NamedArgs{"trip_id": tripID},
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.BookingRepo.Unenroll: %w", domain.ErrTripNotFound)
		}
		return fmt.Errorf("repo.BookingRepo.Unenroll: lock trip: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM client_trips WHERE client_id = @client_id AND trip_id = @trip_id`,
		pgx.NamedArgs{"client_id": clientID, "trip_id": tripID},
	)
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.Unenroll: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BookingRepo.Unenroll: %w", domain.ErrNotRegistered)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.BookingRepo.Unenroll: commit: %w", err)
	}
	return nil
}

// Count returns the current number of registrations for the trip.
func (r *pgBookingRepo) Count(ctx context.Context, tripID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM client_trips WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID},
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.BookingRepo.Count: %w", err)
	}
	return n, nil
}

// IsRegistered reports whether the (clientID, tripID) registration exists.
func (r *pgBookingRepo) IsRegistered(ctx context.Context, clientID, tripID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM client_trips WHERE client_id = @client_id AND trip_id = @trip_id)`,
		pgx.NamedArgs{"client_id": clientID, "trip_id": tripID},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.BookingRepo.IsRegistered: %w", err)
	}
	return exists, nil
}

// ListByClient returns the client's registrations joined with their trips,
// most recent departure first.
func (r *pgBookingRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.ClientTrip, error) {
	const q = `
		SELECT t.id, t.name, t.description, t.date_from, t.date_to, t.max_people,
		       ct.registered_at, ct.payment_date
		FROM client_trips ct
		JOIN trips t ON t.id = ct.trip_id
		WHERE ct.client_id = @client_id
		ORDER BY t.date_from DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByClient: %w", err)
	}
	defer rows.Close()

	trips := []domain.ClientTrip{}
	for rows.Next() {
		ct, err := scanClientTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.ListByClient: scan: %w", err)
		}
		trips = append(trips, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByClient: rows: %w", err)
	}
	return trips, nil
}

// scanClientTrip maps a joined client_trips/trips row into a domain.ClientTrip.
func scanClientTrip(s scanner) (domain.ClientTrip, error) {
	var (
		ct          domain.ClientTrip
		description pgtype.Text
		dateFrom    pgtype.Date
		dateTo      pgtype.Date
		registered  int
		payment     pgtype.Int4
	)
	err := s.Scan(&ct.ID, &ct.Name, &description, &dateFrom, &dateTo, &ct.MaxPeople, &registered, &payment)
	if err != nil {
		return domain.ClientTrip{}, err
	}
	if description.Valid {
		ct.Description = description.String
	}
	ct.DateFrom = dateFrom.Time
	ct.DateTo = dateTo.Time
	ct.RegisteredAt = domain.DateInt(registered)
	if payment.Valid {
		pd := domain.DateInt(payment.Int32)
		ct.PaymentDate = &pd
	}
	return ct, nil
}
