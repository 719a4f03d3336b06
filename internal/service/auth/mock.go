package auth

import (
	"context"
	"time"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
)

// MockValidator is a TokenValidator for tests in other packages.
// ValidateFunc wins over the fixed fields when set.
type MockValidator struct {
	ValidateFunc func(ctx context.Context, raw string) (*Identity, error)

	Identity        *Identity
	ValidationError error
}

// NewMockValidator returns a validator that accepts every token as a
// developer with id 1.
func NewMockValidator() *MockValidator {
	return &MockValidator{
		Identity: &Identity{
			UserID:      1,
			Email:       "dev@example.com",
			DisplayName: "Dev",
			Role:        domain.RoleDeveloper,
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}
}

// Validate implements TokenValidator.
func (m *MockValidator) Validate(ctx context.Context, raw string) (*Identity, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, raw)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Identity, nil
}

// WithValidateFunc sets a custom Validate function and returns the mock.
func (m *MockValidator) WithValidateFunc(
	fn func(ctx context.Context, raw string) (*Identity, error),
) *MockValidator {
	m.ValidateFunc = fn
	return m
}
