// Package health exposes the liveness endpoint with dependency probes.
package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	platformredis "kycbridge/internal/platform/redis"
)

// Handler reports service health. Dependency probes are informational: the
// endpoint always returns 200 so orchestrators do not restart the service on
// a transient Postgres or Redis blip.
type Handler struct {
	service string
	started time.Time
	db      *sql.DB
	redis   *platformredis.Client
}

// New builds the health handler. db and redis may be nil when the service
// runs on in-memory stores.
func New(service string, db *sql.DB, redis *platformredis.Client) *Handler {
	return &Handler{
		service: service,
		started: time.Now(),
		db:      db,
		redis:   redis,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

type status struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	UptimeSecs   float64           `json:"uptime"`
	Service      string            `json:"service"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)
	if h.db != nil {
		deps["postgres"] = probe(h.db.PingContext(ctx))
	}
	if h.redis != nil {
		deps["redis"] = probe(h.redis.Health(ctx))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(status{
		Status:       "OK",
		Timestamp:    time.Now().UTC(),
		UptimeSecs:   time.Since(h.started).Seconds(),
		Service:      h.service,
		Dependencies: deps,
	})
}

func probe(err error) string {
	if err != nil {
		return "unavailable"
	}
	return "ok"
}
