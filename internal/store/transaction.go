package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
)

// TxFn is work performed inside a transaction. Returning an error rolls
// the transaction back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction begins a transaction on db, runs fn and commits. A
// failing fn or a panic rolls back; the panic is re-raised afterwards.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	defer func() {
		p := recover()
		if p == nil && err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("transaction rollback failed", "error", rbErr)
			err = multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
		}
		if p != nil {
			log.Error("transaction rolled back after panic", "panic", p)
			panic(p) // ALLOW-PANIC: re-raise after rollback
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	return nil
}

// Transactor runs work atomically. Services take a Transactor rather than
// a *sql.DB.
type Transactor interface {
	WithinTx(ctx context.Context, fn TxFn) error
}

// SQLTransactor is the database-backed Transactor.
type SQLTransactor struct {
	DB *sql.DB
}

var _ Transactor = SQLTransactor{}

// WithinTx calls RunInTransaction on t.DB.
func (t SQLTransactor) WithinTx(ctx context.Context, fn TxFn) error {
	return RunInTransaction(ctx, t.DB, fn)
}
