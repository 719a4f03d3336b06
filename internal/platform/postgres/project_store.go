package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/store"
)

// PostgresProjectStore implements store.ProjectStore.
type PostgresProjectStore struct {
	db store.DBTX
}

// NewPostgresProjectStore creates a PostgresProjectStore on db.
func NewPostgresProjectStore(db store.DBTX) *PostgresProjectStore {
	return &PostgresProjectStore{db: db}
}

var _ store.ProjectStore = (*PostgresProjectStore)(nil)

const projectSelect = `
	SELECT p.id, p.name, p.description, p.created_by, u.name,
	       (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id),
	       p.created_at, p.updated_at
	FROM projects p
	JOIN users u ON u.id = p.created_by`

// WithTx implements store.ProjectStore.WithTx
func (s *PostgresProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &PostgresProjectStore{db: tx}
}

// Create implements store.ProjectStore.Create
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO projects (name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		project.Name, project.Description, project.CreatedBy, project.CreatedAt, project.UpdatedAt,
	).Scan(&project.ID)
	if err != nil {
		return store.NewStoreError("project", "create", "failed to insert project", MapError(err))
	}
	return nil
}

// GetByID implements store.ProjectStore.GetByID
func (s *PostgresProjectStore) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := scanProject(s.db.QueryRowContext(ctx, projectSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProjectNotFound
		}
		return nil, store.NewStoreError("project", "get", "failed to query project", MapError(err))
	}
	return project, nil
}

// List implements store.ProjectStore.List
func (s *PostgresProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx, projectSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, store.NewStoreError("project", "list", "failed to query projects", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, store.NewStoreError("project", "list", "failed to scan project", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("project", "list", "failed to iterate projects", MapError(err))
	}
	return projects, nil
}

// Update implements store.ProjectStore.Update
func (s *PostgresProjectStore) Update(ctx context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET name = $1, description = $2, updated_at = $3
		WHERE id = $4`,
		project.Name, project.Description, project.UpdatedAt, project.ID)
	if err != nil {
		return store.NewStoreError("project", "update", "failed to update project", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrProjectNotFound)
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p           domain.Project
		description sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.CreatedBy,
		&p.CreatorName,
		&p.TaskCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	return &p, nil
}
