package store

import (
	"context"
	"database/sql"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task and sets its ID and timestamps.
	// Returns domain.ErrValidation if the task fails validation and
	// ErrInvalidEntity if the project or assignee does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update saves title, description and status of an existing task.
	// Returns domain.ErrValidation if the task fails validation and
	// ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// SetAssignee replaces the task's assignee; nil unassigns it.
	// Returns ErrTaskNotFound if the task does not exist and
	// ErrInvalidEntity if the user does not exist.
	SetAssignee(ctx context.Context, taskID int64, userID *int64) error

	// GetSnapshot returns the task joined with its project and assignee
	// names. Returns ErrTaskNotFound if the task does not exist.
	GetSnapshot(ctx context.Context, id int64) (*domain.TaskSnapshot, error)

	// ListSnapshots returns snapshots of every task, newest first.
	ListSnapshots(ctx context.Context) ([]domain.TaskSnapshot, error)

	// ListSnapshotsByProject returns snapshots of one project's tasks, newest first.
	ListSnapshotsByProject(ctx context.Context, projectID int64) ([]domain.TaskSnapshot, error)

	// WithTx returns a TaskStore that runs its statements inside tx.
	WithTx(tx *sql.Tx) TaskStore
}
