package store

import (
	"context"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
)

// StatsStore answers aggregate queries over projects and tasks.
type StatsStore interface {
	// DashboardCounts returns the number of projects, the number of tasks
	// and the number of tasks whose status is Done. The three totals come
	// from a single statement, so they are consistent with each other.
	// An empty database yields zero counts, not an error.
	DashboardCounts(ctx context.Context) (domain.DashboardCounts, error)
}
