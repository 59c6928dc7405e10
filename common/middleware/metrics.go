package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce          sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"})

		httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route", "status"})

		httpRequestsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_server_requests_active",
			Help: "Number of active HTTP requests",
		}, []string{"service", "method", "route"})
	})
}

// shouldSkipMetrics returns true if the path should not be recorded in metrics
func shouldSkipMetrics(path string) bool {
	skipPaths := []string{"/metrics", "/health", "/ping"}
	for _, skip := range skipPaths {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}
	return false
}

// PrometheusMetrics returns a middleware that records HTTP metrics
func PrometheusMetrics(serviceName string) func(next http.Handler) http.Handler {
	initMetrics()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipMetrics(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			// Route pattern keeps cardinality bounded; fall back to the raw
			// path outside of chi routing.
			routePattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				routePattern = rctx.RoutePattern()
			}

			httpRequestsInFlight.WithLabelValues(serviceName, r.Method, routePattern).Inc()
			defer httpRequestsInFlight.WithLabelValues(serviceName, r.Method, routePattern).Dec()

			ww := &wrappedResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			status := strconv.Itoa(ww.statusCode)
			httpRequestsTotal.WithLabelValues(serviceName, r.Method, routePattern, status).Inc()
			httpRequestDuration.WithLabelValues(serviceName, r.Method, routePattern, status).Observe(time.Since(start).Seconds())
		})
	}
}
