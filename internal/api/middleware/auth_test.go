package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/BetulAktoprak/task-management-system/internal/api/shared"
	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
	"github.com/BetulAktoprak/task-management-system/internal/service/auth"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(ctx context.Context, raw string) (*auth.Identity, error) {
	args := m.Called(ctx, raw)
	var identity *auth.Identity
	if v := args.Get(0); v != nil {
		identity = v.(*auth.Identity)
	}
	return identity, args.Error(1)
}

func identityEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := shared.IdentityFrom(r.Context())
		if !assert.True(t, ok, "identity must be in context") {
			return
		}
		w.Header().Set("X-User", identity.Email)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	developer := &auth.Identity{
		UserID:    3,
		Email:     "dev@example.com",
		Role:      domain.RoleDeveloper,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	tests := []struct {
		name       string
		header     string
		token      string
		identity   *auth.Identity
		err        error
		wantStatus int
		wantUser   string
	}{
		{"valid token", "Bearer good", "good", developer, nil, http.StatusOK, "dev@example.com"},
		{"lower-case scheme", "bearer good", "good", developer, nil, http.StatusOK, "dev@example.com"},
		{"missing header", "", "", nil, nil, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", "", nil, nil, http.StatusUnauthorized, ""},
		{"no token", "Bearer ", "", nil, nil, http.StatusUnauthorized, ""},
		{"expired", "Bearer old", "old", nil, auth.ErrExpiredToken, http.StatusUnauthorized, ""},
		{"invalid", "Bearer bad", "bad", nil, auth.ErrInvalidToken, http.StatusUnauthorized, ""},
		{"not yet valid", "Bearer early", "early", nil, auth.ErrTokenNotYetValid, http.StatusUnauthorized, ""},
		{"unexpected error", "Bearer odd", "odd", nil, errors.New("boom"), http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validator := &mockValidator{}
			if tt.token != "" {
				validator.On("Validate", mock.Anything, tt.token).Return(tt.identity, tt.err)
			}

			r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			NewAuthMiddleware(validator).Authenticate(identityEcho(t)).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUser, w.Header().Get("X-User"))
			validator.AssertExpectations(t)
			if tt.token == "" {
				validator.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAuthenticate_NeverLogsToken(t *testing.T) {
	log, buf := logger.NewTestLogger(t)

	const token = "eyJhbGciOiJIUzI1NiJ9.eyJ1aWQiOjF9.c2lnbmF0dXJl"
	validator := &mockValidator{}
	validator.On("Validate", mock.Anything, token).
		Return(nil, errors.New("unexpected failure for "+token))

	r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	r = r.WithContext(logger.WithLogger(r.Context(), log))
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	NewAuthMiddleware(validator).Authenticate(identityEcho(t)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, buf.String(), "failed to validate token")
	assert.NotContains(t, buf.String(), token)
	assert.NotContains(t, w.Body.String(), token)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	guard := RequireRole(domain.RoleAdmin, domain.RoleProjectManager)(ok)

	tests := []struct {
		name       string
		identity   *auth.Identity
		wantStatus int
	}{
		{"admin", &auth.Identity{UserID: 1, Role: domain.RoleAdmin}, http.StatusNoContent},
		{"project manager", &auth.Identity{UserID: 2, Role: domain.RoleProjectManager}, http.StatusNoContent},
		{"developer", &auth.Identity{UserID: 3, Role: domain.RoleDeveloper}, http.StatusForbidden},
		{"unauthenticated", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
			if tt.identity != nil {
				r = r.WithContext(shared.WithIdentity(r.Context(), tt.identity))
			}
			w := httptest.NewRecorder()

			guard.ServeHTTP(w, r)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
