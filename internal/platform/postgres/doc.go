// Package postgres provides PostgreSQL implementations of the store
// interfaces over database/sql with the pgx stdlib driver, plus the
// embedded schema migrations applied at startup.
package postgres
