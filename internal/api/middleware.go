package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/platform/obs"
)

// statusWriter captures the final HTTP status code and number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// loggingMiddleware attaches a request-scoped zerolog logger to the context
// and logs duration and response size once the handler returns.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := middleware.GetReqID(r.Context())

		logger := log.With().Str("req_id", reqID).Logger()
		ctx := logger.WithContext(obs.WithRequestID(r.Context(), reqID))

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(ctx))

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.RequestURI()).
			Int("status", sw.code()).
			Int("bytes", sw.bytes).
			Int64("dur_ms", time.Since(start).Milliseconds()).
			Msg("request")
	})
}

type metrics struct {
	httpDuration  *prometheus.HistogramVec
	totalRequests *prometheus.CounterVec
	ngosCreated   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ngo_registry",
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
		totalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ngo_registry",
			Name:      "requests_total",
			Help:      "The total number of requests",
		}, []string{"method", "route", "status"}),
		ngosCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ngo_registry",
			Name:      "ngos_created_total",
			Help:      "The total number of NGOs registered",
		}),
	}
	reg.MustRegister(m.httpDuration, m.totalRequests, m.ngosCreated)
	return m
}

// metricsMiddleware labels by chi route pattern so ids do not explode cardinality.
func metricsMiddleware(m *metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := sw.code()

			m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			m.totalRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			if r.Method == http.MethodPost && route == "/ngos" && status == http.StatusCreated {
				m.ngosCreated.Inc()
			}
		})
	}
}
