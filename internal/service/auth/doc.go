// Package auth issues and validates the signed identity credentials used by
// both the REST API and the notification handshake, and hashes passwords.
package auth
