package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LedgerMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_mutations_total",
			Help: "Account ledger mutations by operation and result",
		},
		[]string{"operation", "result"},
	)

	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_job_runs_total",
			Help: "Scheduled settlement job runs by job and result",
		},
		[]string{"job", "result"},
	)

	JobItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_job_items_total",
			Help: "Items handled by settlement jobs by outcome",
		},
		[]string{"job", "outcome"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "settlement_job_duration_seconds",
			Help:    "Duration of settlement job runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ResponseTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Result labels an operation outcome for the counters above.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Middleware records request counts and latencies by route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		ResponseTimeHistogram.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
