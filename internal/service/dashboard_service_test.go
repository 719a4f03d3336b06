package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	t.Parallel()
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("empty board", func(t *testing.T) {
		svc := NewDashboardService(fakeStatsStore{db: newMemDB()}, discard)
		stats, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.DashboardStats{}, *stats)
	})

	t.Run("counts and completion", func(t *testing.T) {
		db := newMemDB()
		owner := db.addUser("grace", domain.RoleAdmin)
		project := db.addProject("Compiler", owner)
		db.addProject("Docs", owner)
		for i, status := range []domain.TaskStatus{domain.TaskStatusDone, domain.TaskStatusToDo, domain.TaskStatusInProgress} {
			id := int64(100 + i)
			db.tasks[id] = domain.Task{ID: id, Title: "t", Status: status, ProjectID: project}
		}

		svc := NewDashboardService(fakeStatsStore{db: db}, discard)
		stats, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, stats.ProjectCount)
		assert.Equal(t, 3, stats.TaskCount)
		assert.InDelta(t, 33.33, stats.CompletedTaskPercentage, 0.001)
	})

	t.Run("store failure", func(t *testing.T) {
		storeErr := errors.New("connection reset")
		svc := NewDashboardService(fakeStatsStore{err: storeErr}, discard)
		_, err := svc.Stats(context.Background())
		assert.ErrorIs(t, err, storeErr)
	})
}
