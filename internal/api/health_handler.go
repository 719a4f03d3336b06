package api

import (
	"context"
	"net/http"
	"time"

	"github.com/BetulAktoprak/task-management-system/internal/api/shared"
	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
	"github.com/BetulAktoprak/task-management-system/internal/redact"
)

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	db       Pinger
	sessions func() int
}

// NewHealthHandler creates a HealthHandler. db and sessions may be nil.
func NewHealthHandler(db Pinger, sessions func() int) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions}
}

// ServeHTTP answers 200 when the database responds and 503 otherwise. The
// body includes the number of open notification sessions.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK

	if h.sessions != nil {
		resp.Sessions = h.sessions()
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logger.FromContext(r.Context()).Warn("health check database ping failed",
				"error", redact.Error(err))
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}

	shared.RespondWithJSON(w, r, status, resp)
}
