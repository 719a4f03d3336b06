// Package store declares the persistence contracts for users, projects and
// tasks together with the sentinel errors every implementation maps its
// driver errors onto. Services see only these interfaces; the PostgreSQL
// implementations live in internal/platform/postgres.
package store
