package fluentq

import (
	"context"
	"database/sql"
	"sort"
	"strings"
)

// Update runs UPDATE ... SET over the accumulated WHERE state. With no
// predicates every row in the table is updated; callers wanting a guard
// should check the builder state themselves.
func (b Builder) Update(data map[string]any) (sql.Result, error) {
	return b.UpdateContext(context.Background(), data)
}

// UpdateContext runs UPDATE ... SET over the accumulated WHERE state. SET
// arguments precede WHERE arguments, matching their order in the statement.
func (b Builder) UpdateContext(ctx context.Context, data map[string]any) (sql.Result, error) {
	query, args, err := b.buildUpdate(data)
	if err != nil {
		return nil, err
	}
	if b.exec == nil {
		return nil, ErrNoExecutor
	}

	result, err := b.exec.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Op: "update", Query: query, Err: err}
	}
	return result, nil
}

func (b Builder) buildUpdate(data map[string]any) (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.table == "" {
		return "", nil, ErrNoTable
	}
	if len(data) == 0 {
		return "", nil, ErrNoColumns
	}

	columns := make([]string, 0, len(data))
	for column := range data {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.table)
	sb.WriteString(" SET ")

	args := make([]any, 0, len(columns))
	for i, column := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(column)
		sb.WriteString(" = ?")
		args = append(args, data[column])
	}

	where, whereArgs := predicateClause(" WHERE ", b.preds)
	sb.WriteString(where)
	args = append(args, whereArgs...)

	return sb.String(), args, nil
}
