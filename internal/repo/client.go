package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mzurek/travelbook/internal/domain"
)

// ClientRepo defines the persistence operations for Clients.
type ClientRepo interface {
	// Create inserts a new client and returns the persisted record with the
	// DB-generated id populated. PESEL and email uniqueness are enforced in
	// one transaction; returns domain.ErrDuplicatePesel or
	// domain.ErrDuplicateEmail on conflict (PESEL checked first).
	Create(ctx context.Context, client domain.Client) (domain.Client, error)

	// GetByID retrieves a single client by primary key.
	// Returns domain.ErrClientNotFound if no client with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Client, error)

	// Exists reports whether a client with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

// pgClientRepo is the Postgres implementation of ClientRepo.
type pgClientRepo struct {
	db db
}

// NewClientRepo constructs a ClientRepo backed by the provided db connection.
func NewClientRepo(db db) ClientRepo {
	return &pgClientRepo{db: db}
}

// Create inserts a client after verifying PESEL and email uniqueness inside
// one transaction. The unique constraints on clients.pesel and clients.email
// are the authority at commit time: a unique violation that slips past the
// pre-checks (two concurrent creates with the same PESEL) is mapped back to
// the matching duplicate error by constraint name.
func (r *pgClientRepo) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var taken bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE pesel = @pesel)`,
		pgx.NamedArgs{"pesel": client.Pesel},
	).Scan(&taken)
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: check pesel: %w", err)
	}
	if taken {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: %w", domain.ErrDuplicatePesel)
	}

	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE email = @email)`,
		pgx.NamedArgs{"email": client.Email},
	).Scan(&taken)
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: check email: %w", err)
	}
	if taken {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: %w", domain.ErrDuplicateEmail)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO clients (first_name, last_name, email, phone, pesel)
		VALUES (@first_name, @last_name, @email, @phone, @pesel)
		RETURNING id`,
		pgx.NamedArgs{
			"first_name": client.FirstName,
			"last_name":  client.LastName,
			"email":      client.Email,
			"phone":      nullableText(client.Phone),
			"pesel":      client.Pesel,
		},
	).Scan(&client.ID)
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: insert: %w", mapClientConflict(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: commit: %w", mapClientConflict(err))
	}
	return client, nil
}

// GetByID retrieves a client by primary key.
func (r *pgClientRepo) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, pesel
		FROM clients
		WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	)
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, fmt.Errorf("repo.ClientRepo.GetByID: %w", domain.ErrClientNotFound)
		}
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.GetByID: %w", err)
	}
	return client, nil
}

// Exists reports whether a client with the given ID exists.
func (r *pgClientRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE id = @id)`,
		pgx.NamedArgs{"id": id},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.ClientRepo.Exists: %w", err)
	}
	return exists, nil
}

// mapClientConflict translates a unique violation on the clients table into
// the matching domain error, keyed on the violated constraint's name.
func mapClientConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "pesel"):
		return domain.ErrDuplicatePesel
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domain.ErrDuplicateEmail
	}
	return err
}

// scanClient maps a single database row into a domain.Client.
func scanClient(s scanner) (domain.Client, error) {
	var (
		c     domain.Client
		phone pgtype.Text
	)
	if err := s.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &phone, &c.Pesel); err != nil {
		return domain.Client{}, err
	}
	if phone.Valid {
		c.Phone = phone.String
	}
	return c, nil
}

// nullableText converts an empty string to nil so it is stored as NULL.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
