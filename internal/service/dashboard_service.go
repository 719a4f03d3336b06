package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/store"
)

// DashboardService provides board-wide statistics.
type DashboardService interface {
	// Stats returns project and task totals and the completed-task
	// percentage. Store failures are wrapped and returned.
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

// DashboardServiceImpl implements DashboardService.
type DashboardServiceImpl struct {
	statsStore store.StatsStore
	logger     *slog.Logger
}

var _ DashboardService = (*DashboardServiceImpl)(nil)

// NewDashboardService creates a DashboardService.
func NewDashboardService(statsStore store.StatsStore, logger *slog.Logger) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		statsStore: statsStore,
		logger:     logger.With("component", "dashboard_service"),
	}
}

// Stats implements DashboardService.
func (s *DashboardServiceImpl) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	counts, err := s.statsStore.DashboardCounts(ctx)
	if err != nil {
		s.logger.Error("failed to load dashboard counts", "error", err)
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	stats := domain.NewDashboardStats(counts)
	return &stats, nil
}
