package fluentq

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// SQL renders the SELECT statement and its arguments without executing
// anything. The text contains only identifiers, keywords, and placeholders.
func (b Builder) SQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.table == "" {
		return "", nil, ErrNoTable
	}

	columns := "*"
	if len(b.columns) > 0 {
		columns = strings.Join(b.columns, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(columns)
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	for _, j := range b.joins {
		sb.WriteString(j.sql(b.table))
	}

	where, args := predicateClause(" WHERE ", b.preds)
	sb.WriteString(where)

	if len(b.groups) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groups, ", "))
	}

	having, havingArgs := predicateClause(" HAVING ", b.havings)
	sb.WriteString(having)
	args = append(args, havingArgs...)

	if len(b.orders) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, o := range b.orders {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(o.sql())
		}
	}

	if b.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*b.limit))
	}
	if b.offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(*b.offset))
	}

	return sb.String(), args, nil
}

// Execute runs the accumulated SELECT and returns every row.
func (b Builder) Execute() ([]Row, error) {
	return b.ExecuteContext(context.Background())
}

// ExecuteContext runs the accumulated SELECT and returns every row.
func (b Builder) ExecuteContext(ctx context.Context) ([]Row, error) {
	query, args, err := b.SQL()
	if err != nil {
		return nil, err
	}
	if b.exec == nil {
		return nil, ErrNoExecutor
	}

	rows, err := b.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Op: "execute", Query: query, Err: err}
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, &QueryError{Op: "execute", Query: query, Err: err}
	}
	return result, nil
}

// Count runs SELECT COUNT over the accumulated WHERE state. With no argument
// it counts every row; pass a column to count its non-NULL values.
func (b Builder) Count(column ...string) (int64, error) {
	return b.CountContext(context.Background(), column...)
}

// CountContext runs SELECT COUNT over the accumulated WHERE state. A result
// set with no rows counts as zero, not as an error.
func (b Builder) CountContext(ctx context.Context, column ...string) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	if b.table == "" {
		return 0, ErrNoTable
	}
	if b.exec == nil {
		return 0, ErrNoExecutor
	}

	target := "*"
	if len(column) > 0 && column[0] != "" {
		target = column[0]
	}

	where, args := predicateClause(" WHERE ", b.preds)
	query := "SELECT COUNT(" + target + ") FROM " + b.table + where

	var n int64
	if err := b.exec.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, &QueryError{Op: "count", Query: query, Err: err}
	}
	return n, nil
}

// Exists reports whether at least one row matches the accumulated WHERE
// state.
func (b Builder) Exists() (bool, error) {
	return b.ExistsContext(context.Background())
}

// ExistsContext reports whether at least one row matches the accumulated
// WHERE state, via SELECT EXISTS so the database can stop at the first hit.
func (b Builder) ExistsContext(ctx context.Context) (bool, error) {
	if b.err != nil {
		return false, b.err
	}
	if b.table == "" {
		return false, ErrNoTable
	}
	if b.exec == nil {
		return false, ErrNoExecutor
	}

	where, args := predicateClause(" WHERE ", b.preds)
	query := "SELECT EXISTS(SELECT 1 FROM " + b.table + where + ")"

	var exists bool
	if err := b.exec.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, &QueryError{Op: "exists", Query: query, Err: err}
	}
	return exists, nil
}
