package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/BetulAktoprak/task-management-system/internal/config"
	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 60,
		Issuer:               "TaskManagementSystem",
		Audience:             "TaskManagementSystem",
		BCryptCost:           4,
	}
}

func newTestIssuer(t *testing.T, secret string, now func() time.Time) *Issuer {
	t.Helper()
	iss, err := NewIssuer(testAuthConfig(secret))
	require.NoError(t, err)
	return iss.WithTimeFunc(now)
}

func TestNewIssuer(t *testing.T) {
	t.Parallel()

	t.Run("short secret is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewIssuer(testAuthConfig("too-short"))
		assert.Error(t, err)
	})

	t.Run("non positive lifetime is rejected", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig(testSecret)
		cfg.TokenLifetimeMinutes = 0
		_, err := NewIssuer(cfg)
		assert.Error(t, err)
	})
}

func TestIssue(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	iss := newTestIssuer(t, testSecret, func() time.Time { return fixedTime })

	cred, err := iss.Issue(context.Background(), 7, "ada@example.com", "Ada", domain.RoleProjectManager)
	require.NoError(t, err)
	require.NotEmpty(t, cred.Token)

	assert.Equal(t, int64(7), cred.UserID)
	assert.Equal(t, "Ada", cred.DisplayName)
	assert.Equal(t, fixedTime, cred.IssuedAt)
	assert.Equal(t, fixedTime.Add(60*time.Minute), cred.ExpiresAt)

	identity, err := iss.Validate(context.Background(), cred.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "Ada", identity.DisplayName)
	assert.Equal(t, domain.RoleProjectManager, identity.Role)
	assert.Equal(t, cred.ExpiresAt.Unix(), identity.ExpiresAt.Unix())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (*Issuer, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (*Issuer, string) {
				iss := newTestIssuer(t, testSecret, func() time.Time { return fixedTime })
				cred, err := iss.Issue(context.Background(), 1, "a@example.com", "A", domain.RoleDeveloper)
				require.NoError(t, err)
				return iss, cred.Token
			},
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (*Issuer, string) {
				gen := newTestIssuer(t, testSecret, func() time.Time { return fixedTime })
				cred, err := gen.Issue(context.Background(), 1, "a@example.com", "A", domain.RoleDeveloper)
				require.NoError(t, err)
				later := newTestIssuer(t, testSecret, func() time.Time { return fixedTime.Add(2 * time.Hour) })
				return later, cred.Token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "issued in the future",
			setupFunc: func(t *testing.T) (*Issuer, string) {
				gen := newTestIssuer(t, testSecret, func() time.Time { return fixedTime.Add(10 * time.Minute) })
				cred, err := gen.Issue(context.Background(), 1, "a@example.com", "A", domain.RoleDeveloper)
				require.NoError(t, err)
				return newTestIssuer(t, testSecret, func() time.Time { return fixedTime }), cred.Token
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "wrong signature",
			setupFunc: func(t *testing.T) (*Issuer, string) {
				gen := newTestIssuer(t, wrongSecret, func() time.Time { return fixedTime })
				cred, err := gen.Issue(context.Background(), 1, "a@example.com", "A", domain.RoleDeveloper)
				require.NoError(t, err)
				return newTestIssuer(t, testSecret, func() time.Time { return fixedTime }), cred.Token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "tampered payload",
			setupFunc: func(t *testing.T) (*Issuer, string) {
				iss := newTestIssuer(t, testSecret, func() time.Time { return fixedTime })
				cred, err := iss.Issue(context.Background(), 1, "a@example.com", "A", domain.RoleDeveloper)
				require.NoError(t, err)
				parts := strings.Split(cred.Token, ".")
				require.Len(t, parts, 3)
				// Swap in another token's payload so the signature no longer matches.
				other, err := iss.Issue(context.Background(), 2, "b@example.com", "B", domain.RoleAdmin)
				require.NoError(t, err)
				parts[1] = strings.Split(other.Token, ".")[1]
				return iss, strings.Join(parts, ".")
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func(t *testing.T) (*Issuer, string) {
				return newTestIssuer(t, testSecret, time.Now), "not-a-jwt"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func(t *testing.T) (*Issuer, string) {
				return newTestIssuer(t, testSecret, time.Now), ""
			},
			wantErr: ErrMissingToken,
		},
		{
			name: "wrong audience",
			setupFunc: func(t *testing.T) (*Issuer, string) {
				cfg := testAuthConfig(testSecret)
				cfg.Audience = "SomeoneElse"
				gen, err := NewIssuer(cfg)
				require.NoError(t, err)
				gen.WithTimeFunc(func() time.Time { return fixedTime })
				cred, err := gen.Issue(context.Background(), 1, "a@example.com", "A", domain.RoleDeveloper)
				require.NoError(t, err)
				return newTestIssuer(t, testSecret, func() time.Time { return fixedTime }), cred.Token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "unsigned token",
			setupFunc: func(t *testing.T) (*Issuer, string) {
				claims := credentialClaims{
					UserID: 1,
					Role:   domain.RoleAdmin,
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    "TaskManagementSystem",
						Audience:  jwt.ClaimStrings{"TaskManagementSystem"},
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
					SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return newTestIssuer(t, testSecret, func() time.Time { return fixedTime }), raw
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			iss, token := tc.setupFunc(t)

			identity, err := iss.Validate(context.Background(), token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, identity)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, identity)
		})
	}
}

func TestValidate_ClockSkew(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	gen := newTestIssuer(t, testSecret, func() time.Time { return fixedTime })
	cred, err := gen.Issue(context.Background(), 3, "c@example.com", "C", domain.RoleDeveloper)
	require.NoError(t, err)

	// Slightly past expiry is still within the leeway.
	late := newTestIssuer(t, testSecret, func() time.Time { return cred.ExpiresAt.Add(10 * time.Second) })
	_, err = late.Validate(context.Background(), cred.Token)
	assert.NoError(t, err)

	// Past the leeway it is expired.
	tooLate := newTestIssuer(t, testSecret, func() time.Time { return cred.ExpiresAt.Add(defaultClockSkew + time.Second) })
	_, err = tooLate.Validate(context.Background(), cred.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
