package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewRequestMetrics returns a middleware that records a duration histogram
// per request, labelled by method and status code. The histogram is
// registered against reg at construction time, so each test can use a fresh
// prometheus.NewRegistry.
//
// The URL path is deliberately not a label: raw paths contain IDs and would
// blow up cardinality.
func NewRequestMetrics(reg prometheus.Registerer) func(http.Handler) http.Handler {
	durations := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travelbook_http_request_duration_seconds",
		Help:    "HTTP request durations by method and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			durations.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).
				Observe(time.Since(start).Seconds())
		})
	}
}
