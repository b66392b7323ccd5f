package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzurek/travelbook/internal/domain"
	"github.com/mzurek/travelbook/internal/metrics"
)

func TestRegisterClientForTrip_Created(t *testing.T) {
	bookings := &mockBookingServicer{
		enroll: func(_ context.Context, clientID, tripID int64) (domain.Registration, error) {
			assert.Equal(t, int64(1), clientID)
			assert.Equal(t, int64(5), tripID)
			return domain.Registration{ClientID: clientID, TripID: tripID, RegisteredAt: 20260901}, nil
		},
	}
	h, m := newTestServer(bookings, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/clients/1/trips/5", nil)
	rec := doRequest(t, h, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var reg domain.Registration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, domain.DateInt(20260901), reg.RegisteredAt)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.BookingsCreated))
}

func TestRegisterClientForTrip_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		reason string // BookingsRejected label, empty when not a booking-rule rejection
	}{
		{"client not found", domain.ErrClientNotFound, http.StatusNotFound, "client_not_found", ""},
		{"trip not found", domain.ErrTripNotFound, http.StatusNotFound, "trip_not_found", ""},
		{"already registered", domain.ErrAlreadyRegistered, http.StatusConflict, "already_registered", metrics.ReasonAlreadyRegistered},
		{"trip full", domain.ErrTripFull, http.StatusConflict, "trip_full", metrics.ReasonTripFull},
		{"store failure", assert.AnError, http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingServicer{
				enroll: func(context.Context, int64, int64) (domain.Registration, error) {
					return domain.Registration{}, tt.err
				},
			}
			h, m := newTestServer(bookings, nil, nil)

			req := httptest.NewRequest(http.MethodPut, "/api/clients/1/trips/5", nil)
			rec := doRequest(t, h, req)

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec.Body).Error.Code)

			// A failed enroll must never count as a created booking.
			assert.Equal(t, 0.0, promtestutil.ToFloat64(m.BookingsCreated))
			if tt.reason != "" {
				assert.Equal(t, 1.0, promtestutil.ToFloat64(m.BookingsRejected.WithLabelValues(tt.reason)))
			}
		})
	}
}

func TestRegisterClientForTrip_BadIDs(t *testing.T) {
	// The mock would panic if the servicer were reached with a bad ID.
	h := newTestHandler(&mockBookingServicer{}, nil, nil)

	for _, path := range []string{
		"/api/clients/abc/trips/5",
		"/api/clients/1/trips/xyz",
		"/api/clients/0/trips/5",
		"/api/clients/-1/trips/5",
	} {
		req := httptest.NewRequest(http.MethodPut, path, nil)
		rec := doRequest(t, h, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, "path %s", path)
	}
}

func TestUnregisterClientFromTrip_NoContent(t *testing.T) {
	bookings := &mockBookingServicer{
		unenroll: func(_ context.Context, clientID, tripID int64) error {
			assert.Equal(t, int64(1), clientID)
			assert.Equal(t, int64(5), tripID)
			return nil
		},
	}
	h, m := newTestServer(bookings, nil, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/clients/1/trips/5", nil)
	rec := doRequest(t, h, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.BookingsCancelled))
}

func TestUnregisterClientFromTrip_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"client not found", domain.ErrClientNotFound, http.StatusNotFound, "client_not_found"},
		{"trip not found", domain.ErrTripNotFound, http.StatusNotFound, "trip_not_found"},
		{"not registered", domain.ErrNotRegistered, http.StatusNotFound, "not_registered"},
		{"store failure", assert.AnError, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingServicer{
				unenroll: func(context.Context, int64, int64) error { return tt.err },
			}
			h, m := newTestServer(bookings, nil, nil)

			req := httptest.NewRequest(http.MethodDelete, "/api/clients/1/trips/5", nil)
			rec := doRequest(t, h, req)

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec.Body).Error.Code)
			assert.Equal(t, 0.0, promtestutil.ToFloat64(m.BookingsCancelled))
		})
	}
}

func TestListClientTrips_OK(t *testing.T) {
	payment := domain.DateInt(20260815)
	bookings := &mockBookingServicer{
		tripsByClient: func(_ context.Context, clientID int64) ([]domain.ClientTrip, error) {
			assert.Equal(t, int64(1), clientID)
			return []domain.ClientTrip{
				{Trip: domain.Trip{ID: 5, Name: "Fjords", MaxPeople: 20}, RegisteredAt: 20260901},
				{Trip: domain.Trip{ID: 6, Name: "Alps", MaxPeople: 10}, RegisteredAt: 20260730, PaymentDate: &payment},
			}, nil
		},
	}
	h := newTestHandler(bookings, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/clients/1/trips", nil)
	rec := doRequest(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var trips []domain.ClientTrip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trips))
	require.Len(t, trips, 2)
	assert.Nil(t, trips[0].PaymentDate)
	require.NotNil(t, trips[1].PaymentDate)
	assert.Equal(t, payment, *trips[1].PaymentDate)
}

func TestListClientTrips_ClientNotFound(t *testing.T) {
	bookings := &mockBookingServicer{
		tripsByClient: func(context.Context, int64) ([]domain.ClientTrip, error) {
			return nil, domain.ErrClientNotFound
		},
	}
	h := newTestHandler(bookings, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/clients/99/trips", nil)
	rec := doRequest(t, h, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "client_not_found", decodeError(t, rec.Body).Error.Code)
}
