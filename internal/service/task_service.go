package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/events"
	"github.com/BetulAktoprak/task-management-system/internal/store"
)

// CreateTaskInput carries the fields of a new task.
type CreateTaskInput struct {
	Title          string
	Description    *string
	Status         domain.TaskStatus
	ProjectID      int64
	AssignedUserID *int64
}

// UpdateTaskInput carries the editable fields of a task.
type UpdateTaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
}

// TaskService provides task operations. Every successful mutation publishes
// task notifications after the write has committed.
type TaskService interface {
	// ListTasks returns a snapshot of every task, newest first.
	ListTasks(ctx context.Context) ([]domain.TaskSnapshot, error)

	// ListProjectTasks returns snapshots of one project's tasks, newest
	// first. An unknown project yields an empty slice.
	ListProjectTasks(ctx context.Context, projectID int64) ([]domain.TaskSnapshot, error)

	// GetTask retrieves one task snapshot.
	// Returns store.ErrTaskNotFound if the task does not exist.
	GetTask(ctx context.Context, id int64) (*domain.TaskSnapshot, error)

	// CreateTask saves a new task and returns its snapshot.
	// Returns domain.ErrValidation if the input is rejected, ErrUnknownProject
	// if the project does not exist and ErrUnknownAssignee if the assignee
	// does not exist. Both of the latter also match domain.ErrValidation.
	CreateTask(ctx context.Context, in CreateTaskInput) (*domain.TaskSnapshot, error)

	// UpdateTask replaces a task's title, description and status.
	// Returns domain.ErrValidation if the input is rejected and
	// store.ErrTaskNotFound if the task does not exist.
	UpdateTask(ctx context.Context, id int64, in UpdateTaskInput) (*domain.TaskSnapshot, error)

	// AssignTask sets or, with a nil userID, clears the task's assignee.
	// Returns domain.ErrValidation if userID is not a valid ID,
	// store.ErrTaskNotFound if the task does not exist and
	// ErrUnknownAssignee if the user does not exist.
	AssignTask(ctx context.Context, id int64, userID *int64) (*domain.TaskSnapshot, error)
}

// TaskServiceImpl implements TaskService.
type TaskServiceImpl struct {
	taskStore    store.TaskStore
	projectStore store.ProjectStore
	userStore    store.UserStore
	tx           store.Transactor
	publisher    events.Publisher
	logger       *slog.Logger
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a TaskService publishing through publisher.
func NewTaskService(
	taskStore store.TaskStore,
	projectStore store.ProjectStore,
	userStore store.UserStore,
	tx store.Transactor,
	publisher events.Publisher,
	logger *slog.Logger,
) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskStore:    taskStore,
		projectStore: projectStore,
		userStore:    userStore,
		tx:           tx,
		publisher:    publisher,
		logger:       logger.With("component", "task_service"),
	}
}

// ListTasks returns every task, newest first.
func (s *TaskServiceImpl) ListTasks(ctx context.Context) ([]domain.TaskSnapshot, error) {
	tasks, err := s.taskStore.ListSnapshots(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListProjectTasks returns one project's tasks, newest first.
func (s *TaskServiceImpl) ListProjectTasks(ctx context.Context, projectID int64) ([]domain.TaskSnapshot, error) {
	tasks, err := s.taskStore.ListSnapshotsByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("failed to list project tasks", "error", err, "project_id", projectID)
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves one task snapshot.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.TaskSnapshot, error) {
	snapshot, err := s.taskStore.GetSnapshot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	return snapshot, nil
}

// CreateTask publishes TaskUpdated, plus TaskAssigned when the task starts
// out with an assignee.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, in CreateTaskInput) (*domain.TaskSnapshot, error) {
	task, err := domain.NewTask(in.Title, in.Description, in.Status, in.ProjectID, in.AssignedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.projectStore.WithTx(tx).GetByID(ctx, task.ProjectID); err != nil {
			if store.IsNotFoundError(err) {
				return ErrUnknownProject
			}
			return err
		}
		if err := s.checkAssignee(ctx, tx, task.AssignedUserID); err != nil {
			return err
		}
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		s.logFailure("failed to create task", err, "project_id", in.ProjectID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "project_id", task.ProjectID)

	snapshot, err := s.GetTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TaskUpdated, *snapshot)
	if snapshot.AssignedUserID != nil {
		s.publish(ctx, events.TaskAssigned, *snapshot)
	}
	return snapshot, nil
}

// UpdateTask publishes TaskUpdated.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id int64, in UpdateTaskInput) (*domain.TaskSnapshot, error) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStore.WithTx(tx)
		task, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		task.Title = strings.TrimSpace(in.Title)
		task.Description = in.Description
		task.Status = in.Status
		task.UpdatedAt = time.Now().UTC()
		return tasks.Update(ctx, task)
	})
	if err != nil {
		s.logFailure("failed to update task", err, "task_id", id)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("task updated", "task_id", id, "status", in.Status)

	snapshot, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TaskUpdated, *snapshot)
	return snapshot, nil
}

// AssignTask publishes TaskUpdated, plus TaskAssigned when userID is not
// nil. A nil userID unassigns the task.
func (s *TaskServiceImpl) AssignTask(ctx context.Context, id int64, userID *int64) (*domain.TaskSnapshot, error) {
	if userID != nil && *userID <= 0 {
		return nil, fmt.Errorf("%w: assignee: %w", domain.ErrValidation, domain.ErrInvalidID)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStore.WithTx(tx)
		if _, err := tasks.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.checkAssignee(ctx, tx, userID); err != nil {
			return err
		}
		return tasks.SetAssignee(ctx, id, userID)
	})
	if err != nil {
		s.logFailure("failed to assign task", err, "task_id", id)
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	s.logger.Info("task assigned", "task_id", id, "assigned_user_id", userID)

	snapshot, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TaskUpdated, *snapshot)
	if userID != nil {
		s.publish(ctx, events.TaskAssigned, *snapshot)
	}
	return snapshot, nil
}

func (s *TaskServiceImpl) checkAssignee(ctx context.Context, tx *sql.Tx, userID *int64) error {
	if userID == nil {
		return nil
	}
	if _, err := s.userStore.WithTx(tx).GetByID(ctx, *userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUnknownAssignee
		}
		return err
	}
	return nil
}

// publish hands the event to the publisher. It runs after commit and its
// outcome never reaches the caller.
func (s *TaskServiceImpl) publish(ctx context.Context, name events.Name, snapshot domain.TaskSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task notification publisher panicked",
				"panic", r,
				"event", name,
				"task_id", snapshot.ID)
		}
	}()
	s.publisher.Publish(ctx, name, snapshot)
}

func (s *TaskServiceImpl) logFailure(msg string, err error, args ...any) {
	args = append(args, "error", err)
	if errors.Is(err, domain.ErrValidation) || store.IsNotFoundError(err) {
		s.logger.Debug(msg, args...)
		return
	}
	s.logger.Error(msg, args...)
}
