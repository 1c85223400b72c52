package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mandilink",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mandilink",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mandilink",
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed.",
		},
	)

	checkoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mandilink",
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		},
		[]string{"outcome"},
	)

	ordersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mandilink",
			Name:      "orders_created_total",
			Help:      "Orders materialized across all checkouts.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// ObserveCheckout records one checkout attempt. Outcome is one of
// "success", "empty_cart" or "error". Successful checkouts also add the
// number of per-wholesaler orders they produced.
func ObserveCheckout(outcome string, orderCount int) {
	checkoutsTotal.WithLabelValues(outcome).Inc()

	if orderCount > 0 {
		ordersCreated.Add(float64(orderCount))
	}
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts, latency and in-flight gauge per route.
// Path-valued segments are collapsed back to their patterns so the label set
// stays bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		pathPattern := r.URL.Path
		if id := r.PathValue("id"); id != "" {
			pathPattern = strings.Replace(pathPattern, "/"+id, "/{id}", 1)
		} else if category := r.PathValue("category"); category != "" {
			pathPattern = strings.Replace(pathPattern, "/"+category, "/{category}", 1)
		}

		defer func() {
			duration := time.Since(start)
			statusCodeStr := strconv.Itoa(rw.statusCode)

			httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, pathPattern).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(duration.Seconds())
			httpRequestsInFlight.Dec()
		}()

		next.ServeHTTP(rw, r)
	})
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
