package domain

import "time"

// Trip is a catalog entry owned by the trip catalog; the booking engine only
// ever reads trips. MaxPeople is the hard participant cap enforced on every
// enrollment.
type Trip struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DateFrom    time.Time `json:"date_from"`
	DateTo      time.Time `json:"date_to"`
	MaxPeople   int       `json:"max_people"`
}

// TripWithCountries is the catalog listing projection: a trip plus the names
// of the countries it visits, ordered alphabetically.
type TripWithCountries struct {
	Trip
	Countries []string `json:"countries"`
}
