package fluentq

import (
	"context"
	"database/sql"
)

// Delete runs DELETE FROM over the accumulated WHERE state. With no
// predicates every row in the table is deleted.
func (b Builder) Delete() (sql.Result, error) {
	return b.DeleteContext(context.Background())
}

// DeleteContext runs DELETE FROM over the accumulated WHERE state.
func (b Builder) DeleteContext(ctx context.Context) (sql.Result, error) {
	query, args, err := b.buildDelete()
	if err != nil {
		return nil, err
	}
	if b.exec == nil {
		return nil, ErrNoExecutor
	}

	result, err := b.exec.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Op: "delete", Query: query, Err: err}
	}
	return result, nil
}

func (b Builder) buildDelete() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.table == "" {
		return "", nil, ErrNoTable
	}

	where, args := predicateClause(" WHERE ", b.preds)
	return "DELETE FROM " + b.table + where, args, nil
}
