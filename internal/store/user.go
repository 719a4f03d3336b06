package store

import (
	"context"
	"database/sql"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
)

// UserStore defines the interface for account persistence.
type UserStore interface {
	// Create inserts user and sets its ID and timestamps.
	// Returns domain.ErrValidation if the user fails validation and
	// ErrEmailExists if the email is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by an already normalized (lowercased) address.
	// Returns ErrUserNotFound if no account uses the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users sorted by name. An empty table yields an
	// empty slice, not an error.
	List(ctx context.Context) ([]domain.User, error)

	// UpdateRole sets the role of an existing user.
	// Returns domain.ErrValidation if role is not a known role and
	// ErrUserNotFound if the user does not exist.
	UpdateRole(ctx context.Context, id int64, role domain.Role) error

	// WithTx returns a UserStore that runs its statements inside tx.
	WithTx(tx *sql.Tx) UserStore
}
