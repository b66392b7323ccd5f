// Package metrics defines the Prometheus instruments for the booking backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus instruments for the application.
type Metrics struct {
	BookingsCreated   prometheus.Counter
	BookingsCancelled prometheus.Counter
	BookingsRejected  *prometheus.CounterVec
	ClientsCreated    prometheus.Counter
}

// New creates and registers all metrics against the given registerer.
// Pass prometheus.DefaultRegisterer in main; tests pass a fresh
// prometheus.NewRegistry so parallel test packages never collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "travelbook_bookings_created_total",
			Help: "Total number of successful trip registrations.",
		}),
		BookingsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "travelbook_bookings_cancelled_total",
			Help: "Total number of registrations removed.",
		}),
		BookingsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travelbook_bookings_rejected_total",
			Help: "Registrations rejected by a booking rule, labelled by reason.",
		}, []string{"reason"}),
		ClientsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "travelbook_clients_created_total",
			Help: "Total number of clients created.",
		}),
	}
}

// Reasons used for the BookingsRejected counter labels.
const (
	ReasonAlreadyRegistered = "already_registered"
	ReasonTripFull          = "trip_full"
)
