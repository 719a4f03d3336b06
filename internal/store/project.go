package store

import (
	"context"
	"database/sql"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
)

// ProjectStore defines the interface for project data persistence.
// Read methods fill in CreatorName and TaskCount.
type ProjectStore interface {
	// Create saves a new project and sets its ID and timestamps.
	// Returns domain.ErrValidation if the project fails validation and
	// ErrInvalidEntity if the creator does not exist.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Project, error)

	// List returns every project, newest first.
	List(ctx context.Context) ([]domain.Project, error)

	// Update saves the name and description of an existing project.
	// Returns domain.ErrValidation if the project fails validation and
	// ErrProjectNotFound if the project does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// WithTx returns a ProjectStore that runs its statements inside tx.
	WithTx(tx *sql.Tx) ProjectStore
}
