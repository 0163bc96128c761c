package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is the statement surface the archive repositories run against.
// Both *sql.DB and *sql.Tx satisfy it, so a repository works the same
// whether it is bound to the connection or to a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// TxRunner executes a function inside one SQLite transaction. Archiving a
// session writes the snapshot and its history log together; the runner
// guarantees either both land or neither does.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error
}

type txRunner struct {
	db *sql.DB
}

// NewTxRunner wraps a database handle in a TxRunner.
func NewTxRunner(database *sql.DB) TxRunner {
	return txRunner{db: database}
}

// InTx begins a transaction, hands its Querier to fn, and commits when fn
// returns nil. The deferred rollback covers error returns and panics alike;
// after a successful commit it is a no-op.
func (r txRunner) InTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning archive transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing archive transaction: %w", err)
	}
	return nil
}
