package fluentq

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

// Row is a single result row keyed by column name.
type Row map[string]any

// scanRows drains rows into the generic Row form. []byte payloads on
// non-binary columns are converted to string so values compare naturally;
// BLOB columns stay raw.
func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	// No way to determine the number of rows, other than by simply scanning
	// one-by-one.
	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i], types[i])
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func normalizeValue(v any, t *sql.ColumnType) any {
	raw, ok := v.([]byte)
	if !ok {
		return v
	}
	if t != nil {
		switch strings.ToUpper(t.DatabaseTypeName()) {
		case "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "BINARY", "VARBINARY":
			return raw
		}
	}
	return string(raw)
}

// QueryAs runs query against ex and maps each row onto a T. Columns are
// matched to exported struct fields by name, or by a `db` tag when present.
func QueryAs[T any](ctx context.Context, ex Executor, query string, args ...any) ([]T, error) {
	if ex == nil {
		return nil, ErrNoExecutor
	}

	rows, err := ex.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Op: "query", Query: query, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	structType := reflect.TypeOf((*T)(nil)).Elem()

	// Column name to field index. Unexported fields are not settable and stay
	// out of the map.
	fieldIndex := make(map[string]int, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldIndex[structFieldName(field)] = i
	}

	var mapped []T
	for rows.Next() {
		mappedValue := reflect.ValueOf(new(T)).Elem()

		// Scan every column into a temporary "values" array, then set the
		// matched ones onto the new T field by field.
		values := make([]any, len(columns))
		for i := range values {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, err
		}

		for i, column := range columns {
			idx, ok := fieldIndex[column]
			if !ok {
				continue
			}
			value := *values[i].(*any)
			if value == nil {
				continue
			}

			field := mappedValue.Field(idx)
			rv := reflect.ValueOf(value)
			if rv.Type() != field.Type() {
				if !rv.CanConvert(field.Type()) {
					return nil, fmt.Errorf("cannot scan column %q of type %s into field of type %s",
						column, rv.Type(), field.Type())
				}
				rv = rv.Convert(field.Type())
			}
			field.Set(rv)
		}

		mapped = append(mapped, mappedValue.Interface().(T))
	}

	return mapped, rows.Err()
}

// ExecuteAs runs the accumulated SELECT and maps its rows onto T. It is a
// function rather than a method because methods cannot take type parameters.
func ExecuteAs[T any](ctx context.Context, b Builder) ([]T, error) {
	query, args, err := b.SQL()
	if err != nil {
		return nil, err
	}
	return QueryAs[T](ctx, b.exec, query, args...)
}

func structFieldName(field reflect.StructField) string {
	if dbName, ok := field.Tag.Lookup("db"); ok {
		return dbName
	}
	return field.Name
}
