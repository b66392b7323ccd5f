package domain

import (
	"fmt"
	"time"
)

// DateInt is a calendar date stored as an 8-digit integer, YYYYMMDD.
// This is the legacy storage convention for client_trips.registered_at and
// client_trips.payment_date and must be preserved bit-for-bit. Everything
// outside this file should treat DateInt as opaque and convert through
// DateIntFrom / Time.
type DateInt int

// DateIntFrom encodes the calendar date of t in t's location.
// Enrollment timestamps use the local calendar date at the time of the call.
func DateIntFrom(t time.Time) DateInt {
	y, m, d := t.Date()
	return DateInt(y*10000 + int(m)*100 + d)
}

// Time decodes the DateInt into a UTC midnight time.Time.
// Returns an error if the integer does not encode a valid calendar date.
func (d DateInt) Time() (time.Time, error) {
	year := int(d) / 10000
	month := int(d) / 100 % 100
	day := int(d) % 100

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (month 13 becomes January
	// of the next year), so re-check the round trip to reject bad encodings.
	if ty, tm, td := t.Date(); ty != year || int(tm) != month || td != day {
		return time.Time{}, fmt.Errorf("invalid date encoding %d", int(d))
	}
	return t, nil
}

// String renders the date as YYYY-MM-DD without validating it.
func (d DateInt) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", int(d)/10000, int(d)/100%100, int(d)%100)
}
