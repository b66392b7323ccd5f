// Package domain contains the core data types for the travel agency booking
// backend. This package has zero external dependencies and is imported by
// every other internal package (repo, service, handler).
package domain

// Client is a registered customer of the agency.
// Email and Pesel are unique across all clients; both are enforced by the
// client repo at insert time and backed by unique constraints in the store.
// Clients are immutable after creation and are never deleted.
type Client struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"` // optional
	Pesel     string `json:"pesel"`           // national id, exactly 11 digits
}
