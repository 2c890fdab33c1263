package fluentq

import (
	"context"
	"database/sql"
)

// Executor is the database surface a Builder runs statements against.
// *sql.DB, *sql.Tx, and *sql.Conn all satisfy it, so the same chain works
// inside and outside a transaction.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Executor = (*sql.DB)(nil)
	_ Executor = (*sql.Tx)(nil)
	_ Executor = (*sql.Conn)(nil)
)
