package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/service/auth"
	"github.com/BetulAktoprak/task-management-system/internal/store"
)

// UserService provides account operations.
type UserService interface {
	// Register creates a Developer account and returns a credential for it.
	// Returns domain.ErrValidation if the name, email or password is
	// rejected and store.ErrEmailExists if the email is already registered.
	Register(ctx context.Context, name, email, password string) (*auth.Credential, error)

	// Login checks the password and returns a fresh credential.
	// Returns ErrInvalidCredentials if the email is unknown or the password
	// does not match; the two cases are not distinguished.
	Login(ctx context.Context, email, password string) (*auth.Credential, error)

	// GetUser retrieves a user by their ID.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// ListUsers returns every account, sorted by name.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ChangeRole sets a user's role and returns the updated user.
	// Returns domain.ErrValidation (wrapping domain.ErrInvalidRole) if role
	// is unknown and store.ErrUserNotFound if the user does not exist.
	ChangeRole(ctx context.Context, userID int64, role domain.Role) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	tx        store.Transactor
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	issuer    auth.TokenIssuer
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	tx store.Transactor,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	issuer auth.TokenIssuer,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore: userStore,
		tx:        tx,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates the account inside a transaction and issues a credential
// once it is committed.
func (s *UserServiceImpl) Register(ctx context.Context, name, email, password string) (*auth.Credential, error) {
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		s.logger.Debug("rejected registration input", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user.PasswordHash, err = s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email", "email", user.Email)
		} else {
			s.logger.Error("failed to save user", "error", err, "email", user.Email)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	return s.issue(ctx, user)
}

// Login returns ErrInvalidCredentials for an unknown email or a wrong
// password.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*auth.Credential, error) {
	user, err := s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login for unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to load user for login", "error", err)
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("password comparison failed", "error", err, "user_id", user.ID)
		}
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *UserServiceImpl) issue(ctx context.Context, user *domain.User) (*auth.Credential, error) {
	cred, err := s.issuer.Issue(ctx, user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		s.logger.Error("failed to issue credential", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to issue credential: %w", err)
	}
	return cred, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// ListUsers returns every account.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ChangeRole takes effect on the user's next credential; credentials
// already issued keep their old role until they expire.
func (s *UserServiceImpl) ChangeRole(ctx context.Context, userID int64, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidRole)
	}

	var updated *domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)
		if err := users.UpdateRole(ctx, userID, role); err != nil {
			return err
		}
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to change role", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to change role: %w", err)
	}

	s.logger.Info("user role changed", "user_id", userID, "role", role)
	return updated, nil
}
