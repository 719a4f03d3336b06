package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// User validation errors.
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
)

const (
	minPasswordLength = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

// User is a registered account. The display name and role end up inside
// every credential issued for the user.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser builds a Developer account from registration input. The password
// is validated here but hashing is left to the caller.
func NewUser(name, email, password string) (*User, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &User{
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      DefaultRole,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the user's profile fields.
func (u *User) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyName)
	}
	if u.Email == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyEmail)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidEmail)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidRole)
	}
	return nil
}

// ValidatePassword enforces the plaintext password length limits.
func ValidatePassword(password string) error {
	switch {
	case len(password) < minPasswordLength:
		return fmt.Errorf("%w: %w", ErrValidation, ErrPasswordTooShort)
	case len(password) > maxPasswordLength:
		return fmt.Errorf("%w: %w", ErrValidation, ErrPasswordTooLong)
	}
	return nil
}
