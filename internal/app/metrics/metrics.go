package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for algorithm runs.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "algorithm_service",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "algorithm_service",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "algorithm_service",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	httpRateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "algorithm_service",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter.",
		},
	)

	algorithmRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "algorithm_service",
			Subsystem: "algorithms",
			Name:      "runs_total",
			Help:      "Total number of algorithm invocations.",
		},
		[]string{"operation", "outcome"},
	)

	algorithmDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "algorithm_service",
			Subsystem: "algorithms",
			Name:      "run_duration_seconds",
			Help:      "Duration of algorithm invocations.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		httpRateLimited,
		algorithmRuns,
		algorithmDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// RecordAlgorithmRun records one algorithm invocation.
func RecordAlgorithmRun(operation, outcome string, duration time.Duration) {
	if operation == "" {
		operation = "unknown"
	}
	algorithmRuns.WithLabelValues(operation, outcome).Inc()
	algorithmDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited() {
	httpRateLimited.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

var algorithmPaths = map[string]bool{
	"binarySearch": true,
	"quickSort":    true,
	"bubbleSort":   true,
	"fibonacci":    true,
	"primeNumbers": true,
	"factorial":    true,
}

// canonicalPath folds ids and unknown segments so label cardinality stays bounded.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if parts[0] != "api" || len(parts) == 1 {
		return "/" + parts[0]
	}

	switch parts[1] {
	case "algorithms":
		if len(parts) == 3 && algorithmPaths[parts[2]] {
			return "/api/algorithms/" + parts[2]
		}
		return "/api/algorithms/:unknown"
	case "users":
		switch {
		case len(parts) == 2:
			return "/api/users"
		case parts[2] == "search":
			return "/api/users/search"
		case parts[2] == "email":
			return "/api/users/email/:email"
		default:
			return "/api/users/:id"
		}
	default:
		return "/api/" + parts[1]
	}
}
