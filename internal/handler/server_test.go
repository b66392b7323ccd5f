package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/mzurek/travelbook/internal/domain"
	"github.com/mzurek/travelbook/internal/handler"
	"github.com/mzurek/travelbook/internal/metrics"
)

// ---- mock servicers --------------------------------------------------------
// Set only the method fields your test needs; unset methods panic loudly.

type mockBookingServicer struct {
	enroll        func(ctx context.Context, clientID, tripID int64) (domain.Registration, error)
	unenroll      func(ctx context.Context, clientID, tripID int64) error
	tripsByClient func(ctx context.Context, clientID int64) ([]domain.ClientTrip, error)
}

func (m *mockBookingServicer) Enroll(ctx context.Context, clientID, tripID int64) (domain.Registration, error) {
	return m.enroll(ctx, clientID, tripID)
}
func (m *mockBookingServicer) Unenroll(ctx context.Context, clientID, tripID int64) error {
	return m.unenroll(ctx, clientID, tripID)
}
func (m *mockBookingServicer) TripsByClient(ctx context.Context, clientID int64) ([]domain.ClientTrip, error) {
	return m.tripsByClient(ctx, clientID)
}

type mockClientServicer struct {
	create func(ctx context.Context, client domain.Client) (domain.Client, error)
}

func (m *mockClientServicer) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	return m.create(ctx, c)
}

type mockTripServicer struct {
	list func(ctx context.Context) ([]domain.TripWithCountries, error)
}

func (m *mockTripServicer) List(ctx context.Context) ([]domain.TripWithCountries, error) {
	return m.list(ctx)
}

// compile-time checks
var (
	_ handler.BookingServicer = (*mockBookingServicer)(nil)
	_ handler.ClientServicer  = (*mockClientServicer)(nil)
	_ handler.TripServicer    = (*mockTripServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newTestServer wires a Server with the given mocks into a chi router, the
// same way main.go wires it in production. Nil mocks are fine for routes the
// test never exercises. The returned Metrics sits on a fresh registry, so
// tests can assert counter values without interference.
func newTestServer(bookings handler.BookingServicer, clients handler.ClientServicer, trips handler.TripServicer) (http.Handler, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	srv := handler.NewServer(
		bookings, clients, trips,
		slog.New(slog.DiscardHandler),
		m,
	)
	return srv.Routes(), m
}

// newTestHandler is newTestServer for tests that never look at the counters.
func newTestHandler(bookings handler.BookingServicer, clients handler.ClientServicer, trips handler.TripServicer) http.Handler {
	h, _ := newTestServer(bookings, clients, trips)
	return h
}

// doRequest performs req against h and returns the recorder.
func doRequest(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeError parses the standard error envelope from a response body.
func decodeError(t *testing.T, body io.Reader) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}
