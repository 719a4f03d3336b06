package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Task validation errors.
var (
	ErrEmptyTaskTitle   = errors.New("task title cannot be empty")
	ErrInvalidTaskState = errors.New("invalid task status")
)

// TaskStatus is the board column of a task. Values are stable integers
// because clients already depend on them.
type TaskStatus int

const (
	TaskStatusToDo TaskStatus = iota
	TaskStatusInProgress
	TaskStatusDone
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	return s >= TaskStatusToDo && s <= TaskStatusDone
}

// String returns the status name.
func (s TaskStatus) String() string {
	switch s {
	case TaskStatusToDo:
		return "ToDo"
	case TaskStatusInProgress:
		return "InProgress"
	case TaskStatusDone:
		return "Done"
	default:
		return fmt.Sprintf("TaskStatus(%d)", int(s))
	}
}

// Task is a unit of work inside a project, optionally assigned to a user.
type Task struct {
	ID             int64
	Title          string
	Description    *string
	Status         TaskStatus
	ProjectID      int64
	AssignedUserID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTask creates an unsaved task.
func NewTask(title string, description *string, status TaskStatus, projectID int64, assignedUserID *int64) (*Task, error) {
	now := time.Now().UTC()
	t := &Task{
		Title:          strings.TrimSpace(title),
		Description:    description,
		Status:         status,
		ProjectID:      projectID,
		AssignedUserID: assignedUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the task's fields.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTaskTitle)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidTaskState)
	}
	if t.ProjectID <= 0 {
		return fmt.Errorf("%w: project: %w", ErrValidation, ErrInvalidID)
	}
	if t.AssignedUserID != nil && *t.AssignedUserID <= 0 {
		return fmt.Errorf("%w: assignee: %w", ErrValidation, ErrInvalidID)
	}
	return nil
}

// TaskSnapshot is the read-side projection of a task joined with its
// project and assignee names. It is what REST clients receive and what the
// notification pipeline pushes on every task change.
type TaskSnapshot struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	Status           TaskStatus `json:"status"`
	ProjectID        int64      `json:"projectId"`
	ProjectName      string     `json:"projectName"`
	AssignedUserID   *int64     `json:"assignedUserId,omitempty"`
	AssignedUserName *string    `json:"assignedUserName,omitempty"`
}

// IsAssignedTo reports whether the snapshot's assignee is userID.
func (s TaskSnapshot) IsAssignedTo(userID int64) bool {
	return s.AssignedUserID != nil && *s.AssignedUserID == userID
}
