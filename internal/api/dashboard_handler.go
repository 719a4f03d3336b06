package api

import (
	"log/slog"
	"net/http"

	"github.com/BetulAktoprak/task-management-system/internal/api/shared"
	"github.com/BetulAktoprak/task-management-system/internal/service"
)

// DashboardHandler serves /dashboard.
type DashboardHandler struct {
	dashboard service.DashboardService
	logger    *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboard service.DashboardService, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for DashboardHandler")
	}
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger.With(slog.String("component", "dashboard_handler")),
	}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load dashboard stats")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
