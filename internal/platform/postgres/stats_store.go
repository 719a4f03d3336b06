package postgres

import (
	"context"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/store"
)

// PostgresStatsStore implements store.StatsStore.
type PostgresStatsStore struct {
	db store.DBTX
}

// NewPostgresStatsStore creates a PostgresStatsStore on db.
func NewPostgresStatsStore(db store.DBTX) *PostgresStatsStore {
	return &PostgresStatsStore{db: db}
}

var _ store.StatsStore = (*PostgresStatsStore)(nil)

// DashboardCounts implements store.StatsStore.DashboardCounts
func (s *PostgresStatsStore) DashboardCounts(ctx context.Context) (domain.DashboardCounts, error) {
	var c domain.DashboardCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM projects),
		       (SELECT COUNT(*) FROM tasks),
		       (SELECT COUNT(*) FROM tasks WHERE status = $1)`,
		int(domain.TaskStatusDone),
	).Scan(&c.Projects, &c.Tasks, &c.DoneTasks)
	if err != nil {
		return domain.DashboardCounts{}, store.NewStoreError("stats", "count", "failed to count dashboard totals", MapError(err))
	}
	return c, nil
}
