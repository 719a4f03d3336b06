package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/store"
)

// PostgresTaskStore implements store.TaskStore.
type PostgresTaskStore struct {
	db store.DBTX
}

// NewPostgresTaskStore creates a PostgresTaskStore on db.
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

const snapshotSelect = `
	SELECT t.id, t.title, t.description, t.status, t.project_id, p.name,
	       t.assigned_user_id, u.name
	FROM tasks t
	JOIN projects p ON p.id = t.project_id
	LEFT JOIN users u ON u.id = t.assigned_user_id`

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (title, description, status, project_id, assigned_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		task.Title, task.Description, int(task.Status), task.ProjectID, task.AssignedUserID,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		assignee    sql.NullInt64
		status      int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, project_id, assigned_user_id, created_at, updated_at
		FROM tasks WHERE id = $1`, id,
	).Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&task.ProjectID,
		&assignee,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "failed to query task", MapError(err))
	}
	task.Status = domain.TaskStatus(status)
	if description.Valid {
		task.Description = &description.String
	}
	if assignee.Valid {
		task.AssignedUserID = &assignee.Int64
	}
	return &task, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5`,
		task.Title, task.Description, int(task.Status), task.UpdatedAt, task.ID)
	if err != nil {
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// SetAssignee implements store.TaskStore.SetAssignee
func (s *PostgresTaskStore) SetAssignee(ctx context.Context, taskID int64, userID *int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET assigned_user_id = $1, updated_at = NOW() WHERE id = $2`,
		userID, taskID)
	if err != nil {
		return store.NewStoreError("task", "assign", "failed to set assignee", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// GetSnapshot implements store.TaskStore.GetSnapshot
func (s *PostgresTaskStore) GetSnapshot(ctx context.Context, id int64) (*domain.TaskSnapshot, error) {
	snapshot, err := scanSnapshot(s.db.QueryRowContext(ctx, snapshotSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "failed to query task snapshot", MapError(err))
	}
	return snapshot, nil
}

// ListSnapshots implements store.TaskStore.ListSnapshots
func (s *PostgresTaskStore) ListSnapshots(ctx context.Context) ([]domain.TaskSnapshot, error) {
	return s.listSnapshots(ctx, snapshotSelect+` ORDER BY t.created_at DESC, t.id DESC`)
}

// ListSnapshotsByProject implements store.TaskStore.ListSnapshotsByProject
func (s *PostgresTaskStore) ListSnapshotsByProject(ctx context.Context, projectID int64) ([]domain.TaskSnapshot, error) {
	return s.listSnapshots(ctx,
		snapshotSelect+` WHERE t.project_id = $1 ORDER BY t.created_at DESC, t.id DESC`,
		projectID)
}

func (s *PostgresTaskStore) listSnapshots(ctx context.Context, query string, args ...any) ([]domain.TaskSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("task", "list", "failed to query tasks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	snapshots := make([]domain.TaskSnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "failed to scan task", err)
		}
		snapshots = append(snapshots, *snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "failed to iterate tasks", MapError(err))
	}
	return snapshots, nil
}

func scanSnapshot(row rowScanner) (*domain.TaskSnapshot, error) {
	var (
		s            domain.TaskSnapshot
		description  sql.NullString
		status       int
		assignee     sql.NullInt64
		assigneeName sql.NullString
	)
	if err := row.Scan(
		&s.ID,
		&s.Title,
		&description,
		&status,
		&s.ProjectID,
		&s.ProjectName,
		&assignee,
		&assigneeName,
	); err != nil {
		return nil, err
	}
	s.Status = domain.TaskStatus(status)
	if description.Valid {
		s.Description = &description.String
	}
	if assignee.Valid {
		s.AssignedUserID = &assignee.Int64
	}
	if assigneeName.Valid {
		s.AssignedUserName = &assigneeName.String
	}
	return &s, nil
}
