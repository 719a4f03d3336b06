package auth

import "errors"

// Any of these means the caller is unauthenticated. They are kept
// distinct so logs can tell an expired credential from a forged one.
var (
	ErrMissingToken     = errors.New("credential is missing")
	ErrInvalidToken     = errors.New("credential is malformed or has a bad signature")
	ErrExpiredToken     = errors.New("credential has expired")
	ErrTokenNotYetValid = errors.New("credential is not valid yet")

	// ErrPasswordMismatch is returned by Compare for a wrong password.
	ErrPasswordMismatch = errors.New("password does not match")
)
