// Package metrics exposes Prometheus instrumentation for the map generation
// service: HTTP request metrics plus per-stage generation timing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mapgen_stage_duration_seconds",
		Help:    "Duration of each generation pipeline stage",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"stage"})

	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapgen_generations_total",
		Help: "Total map generation runs by outcome",
	}, []string{"outcome"})

	activeWebsocketConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mapgen_active_websocket_connections",
		Help: "Number of open progress-streaming websocket connections",
	})

	dbQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Database query duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency, labeled by method, path and
// status text (e.g. "OK", "Not Found").
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		status := http.StatusText(rec.status)
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
	})
}

// RecordStageDuration records one pipeline stage's wall-clock duration.
func RecordStageDuration(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordGeneration increments the generation counter for the given outcome
// ("success", "invalid_parameter", "failed").
func RecordGeneration(outcome string) {
	generationsTotal.WithLabelValues(outcome).Inc()
}

// SetActiveWebsocketConnections reports the current count of open progress
// streams.
func SetActiveWebsocketConnections(n int) {
	activeWebsocketConns.Set(float64(n))
}

// RecordDBQuery records one database query's duration, labeled by operation
// and table.
func RecordDBQuery(operation, table string, d time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(d.Seconds())
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() { cacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() { cacheMisses.Inc() }

// Handler serves the Prometheus text exposition format for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
