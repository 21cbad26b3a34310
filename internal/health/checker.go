// Package health reports service liveness for the load balancer and for
// operators: Postgres/job-store reachability, Redis reachability and the
// NATS connection state.
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nats-io/nats.go"
)

// Pinger is satisfied by any dependency that can report reachability with a
// Ping(ctx) error method; cmd/mapgen-server wraps its pgx pool and Redis
// client in small adapters to fit it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NATSStatuser is satisfied by *nats.Conn.
type NATSStatuser interface {
	Status() nats.Status
}

// HealthChecker aggregates the status of every external dependency the
// service relies on.
type HealthChecker struct {
	db    Pinger
	redis Pinger
	nats  NATSStatuser
}

// NewHealthChecker wires up the dependencies to check.
func NewHealthChecker(db, redis Pinger, nc NATSStatuser) *HealthChecker {
	return &HealthChecker{db: db, redis: redis, nats: nc}
}

// Check pings every dependency and returns an overall status plus one
// per-dependency status string ("healthy" or "unhealthy").
func (h *HealthChecker) Check(ctx context.Context) map[string]string {
	result := map[string]string{"status": "ok"}

	if err := h.db.Ping(ctx); err != nil {
		result["database"] = "unhealthy"
		result["status"] = "degraded"
	} else {
		result["database"] = "healthy"
	}

	if err := h.redis.Ping(ctx); err != nil {
		result["redis"] = "unhealthy"
		result["status"] = "degraded"
	} else {
		result["redis"] = "healthy"
	}

	if h.nats.Status() == nats.CONNECTED {
		result["nats"] = "healthy"
	} else {
		result["nats"] = "unhealthy"
		result["status"] = "degraded"
	}

	return result
}

// Handler returns an http.Handler suitable for mounting at /healthz.
func (h *HealthChecker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := h.Check(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if status["status"] != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(status)
	})
}
