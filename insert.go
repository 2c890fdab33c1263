package fluentq

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// Insert runs INSERT INTO with one placeholder per column. The statement is
// built from data alone; clauses accumulated on the builder do not apply to
// an insert.
func (b Builder) Insert(data map[string]any) (sql.Result, error) {
	return b.InsertContext(context.Background(), data)
}

// InsertContext runs INSERT INTO with one placeholder per column.
func (b Builder) InsertContext(ctx context.Context, data map[string]any) (sql.Result, error) {
	query, args, err := b.buildInsert(data)
	if err != nil {
		return nil, err
	}
	if b.exec == nil {
		return nil, ErrNoExecutor
	}

	result, err := b.exec.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Op: "insert", Query: query, Err: err}
	}
	return result, nil
}

func (b Builder) buildInsert(data map[string]any) (string, []any, error) {
	if b.table == "" {
		return "", nil, ErrNoTable
	}
	if len(data) == 0 {
		return "", nil, ErrNoColumns
	}

	// Map iteration order is random; sorting the columns keeps the SQL text
	// stable for a given input.
	columns := make([]string, 0, len(data))
	for column := range data {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	args := make([]any, 0, len(columns))
	for _, column := range columns {
		args = append(args, data[column])
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.table, strings.Join(columns, ", "), placeholders)

	return query, args, nil
}
