package domain

// Registration binds a client to a trip. Identity is the (ClientID, TripID)
// pair: at most one registration may exist per pair, backed by the composite
// primary key on client_trips.
//
// RegisteredAt and PaymentDate keep the legacy integer date encoding from the
// original schema (see DateInt). PaymentDate is nil until payment is recorded
// by an external collaborator; the booking engine never writes it.
type Registration struct {
	ClientID     int64    `json:"client_id"`
	TripID       int64    `json:"trip_id"`
	RegisteredAt DateInt  `json:"registered_at"`
	PaymentDate  *DateInt `json:"payment_date,omitempty"`
}

// ClientTrip is the "my trips" projection returned for a single client:
// the registration joined with the trip it refers to.
type ClientTrip struct {
	Trip
	RegisteredAt DateInt  `json:"registered_at"`
	PaymentDate  *DateInt `json:"payment_date,omitempty"`
}
