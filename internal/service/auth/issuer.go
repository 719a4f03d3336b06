package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/BetulAktoprak/task-management-system/internal/config"
	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLength is the shortest HMAC secret NewIssuer accepts.
const MinSecretLength = 32

const defaultClockSkew = 30 * time.Second

// Credential is a freshly minted, signed identity credential. It is
// immutable; re-authentication mints a new one.
type Credential struct {
	Token       string
	UserID      int64
	DisplayName string
	Email       string
	Role        domain.Role
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// Identity is what a valid credential proves about its bearer.
type Identity struct {
	UserID      int64
	Email       string
	DisplayName string
	Role        domain.Role
	ExpiresAt   time.Time
}

// TokenIssuer mints credentials.
type TokenIssuer interface {
	Issue(ctx context.Context, userID int64, email, displayName string, role domain.Role) (*Credential, error)
}

// TokenValidator checks raw credentials. Any non-nil error means the
// bearer is unauthenticated.
type TokenValidator interface {
	Validate(ctx context.Context, raw string) (*Identity, error)
}

// Issuer mints and validates HMAC-SHA256 signed JWTs.
type Issuer struct {
	signingKey    []byte
	tokenLifetime time.Duration
	issuer        string
	audience      string
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration
}

type credentialClaims struct {
	UserID int64       `json:"uid"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

var (
	_ TokenIssuer    = (*Issuer)(nil)
	_ TokenValidator = (*Issuer)(nil)
)

// NewIssuer creates an Issuer from auth configuration. A missing or short
// secret is a startup error.
func NewIssuer(cfg config.AuthConfig) (*Issuer, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %d minutes", cfg.TokenLifetimeMinutes)
	}

	return &Issuer{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		timeFunc:      time.Now,
		clockSkew:     defaultClockSkew,
	}, nil
}

// WithTimeFunc replaces the issuer's clock. Intended for tests.
func (s *Issuer) WithTimeFunc(now func() time.Time) *Issuer {
	s.timeFunc = now
	return s
}

// Issue mints a credential expiring one token lifetime after now.
func (s *Issuer) Issue(
	ctx context.Context,
	userID int64,
	email, displayName string,
	role domain.Role,
) (*Credential, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()
	expiresAt := now.Add(s.tokenLifetime)

	claims := credentialClaims{
		UserID: userID,
		Email:  email,
		Name:   displayName,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign credential",
			"error", err,
			"user_id", userID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return nil, fmt.Errorf("failed to sign credential with HMAC-SHA256: %w", err)
	}

	return &Credential{
		Token:       signed,
		UserID:      userID,
		DisplayName: displayName,
		Email:       email,
		Role:        role,
		IssuedAt:    now,
		ExpiresAt:   expiresAt,
	}, nil
}

// Validate verifies the signature, issuer, audience and time claims of raw.
func (s *Issuer) Validate(ctx context.Context, raw string) (*Identity, error) {
	log := logger.FromContext(ctx)

	if raw == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(
		raw,
		&credentialClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("credential validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			log.Debug("credential validation failed: token not yet valid", "error", err)
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("credential validation failed: malformed token", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("credential validation failed: invalid signature", "error", err)
		default:
			log.Debug("credential validation failed: other validation error",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*credentialClaims)
	if !ok || !token.Valid || claims.UserID <= 0 || !claims.Role.Valid() {
		log.Debug("credential validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	log.Debug("credential validated",
		"user_id", claims.UserID,
		"token_id", claims.ID,
		"expiry", claims.ExpiresAt.Time)

	return &Identity{
		UserID:      claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.Name,
		Role:        claims.Role,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
