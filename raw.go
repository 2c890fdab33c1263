package fluentq

import (
	"context"
	"database/sql"
)

// ExecuteRaw runs an arbitrary query with bound params and returns its rows.
// The builder's accumulated state is neither consulted nor changed; only the
// bound handle is used.
func (b Builder) ExecuteRaw(query string, params ...any) ([]Row, error) {
	return b.ExecuteRawContext(context.Background(), query, params...)
}

// ExecuteRawContext runs an arbitrary query with bound params and returns its
// rows.
func (b Builder) ExecuteRawContext(ctx context.Context, query string, params ...any) ([]Row, error) {
	if b.exec == nil {
		return nil, ErrNoExecutor
	}

	rows, err := b.exec.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, &QueryError{Op: "raw", Query: query, Err: err}
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, &QueryError{Op: "raw", Query: query, Err: err}
	}
	return result, nil
}

// ExecRaw runs an arbitrary statement with bound params, for raw SQL that
// returns no rows.
func (b Builder) ExecRaw(query string, params ...any) (sql.Result, error) {
	return b.ExecRawContext(context.Background(), query, params...)
}

// ExecRawContext runs an arbitrary statement with bound params.
func (b Builder) ExecRawContext(ctx context.Context, query string, params ...any) (sql.Result, error) {
	if b.exec == nil {
		return nil, ErrNoExecutor
	}

	result, err := b.exec.ExecContext(ctx, query, params...)
	if err != nil {
		return nil, &QueryError{Op: "raw", Query: query, Err: err}
	}
	return result, nil
}
