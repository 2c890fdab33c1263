package fluentq

import "strings"

// Builder accumulates clauses for a single statement against one table.
//
// Builder is a value: every chain method returns a new Builder and never
// mutates its receiver, so a partially built query can be branched or reused
// as a template. Terminal operations (Execute, Insert, Update, Delete, Count,
// Exists) leave the value they were called on untouched.
//
// Example:
//
//	rows, err := db.Table("users").
//		Select("id", "name").
//		Where("status", "=", "active").
//		OrderBy("name", "ASC").
//		Limit(10).
//		Execute()
type Builder struct {
	exec  Executor
	table string

	columns []string
	preds   []predicate
	joins   []joinClause
	groups  []string
	havings []predicate
	orders  []orderClause
	limit   *int
	offset  *int

	err error
}

// NewBuilder returns a Builder bound to ex and targeting table. ex may be nil
// when only SQL text is wanted; terminal operations then fail with
// ErrNoExecutor.
func NewBuilder(ex Executor, table string) Builder {
	return Builder{exec: ex, table: table}
}

// From overwrites the target table.
func (b Builder) From(table string) Builder {
	b.table = table
	return b
}

// Select replaces the projection list. With no arguments every column is
// selected.
func (b Builder) Select(columns ...string) Builder {
	b.columns = columns
	return b
}

// Where appends a predicate. The first predicate renders as WHERE, later ones
// are joined with AND. Only the value is bound; column and operator are
// concatenated as given.
func (b Builder) Where(column, operator string, value any) Builder {
	b.preds = append(b.preds[:len(b.preds):len(b.preds)], predicate{
		column:   column,
		operator: operator,
		values:   []any{value},
	})
	return b
}

// WhereEq is shorthand for Where(column, "=", value).
func (b Builder) WhereEq(column string, value any) Builder {
	return b.Where(column, "=", value)
}

// WhereIn appends an IN predicate with one placeholder per value. Calling it
// with no values records ErrEmptyIn: an empty IN () is not valid SQL.
func (b Builder) WhereIn(column string, values ...any) Builder {
	if len(values) == 0 {
		if b.err == nil {
			b.err = ErrEmptyIn
		}
		return b
	}
	b.preds = append(b.preds[:len(b.preds):len(b.preds)], predicate{
		column: column,
		values: values,
		in:     true,
	})
	return b
}

// Join appends an inner join. An empty operator means "=", an empty local
// column means "<table>_id".
func (b Builder) Join(table, foreign, operator, local string) Builder {
	return b.join("INNER", table, foreign, operator, local)
}

// LeftJoin appends a left join with the same defaulting as Join.
func (b Builder) LeftJoin(table, foreign, operator, local string) Builder {
	return b.join("LEFT", table, foreign, operator, local)
}

func (b Builder) join(kind, table, foreign, operator, local string) Builder {
	if operator == "" {
		operator = "="
	}
	if local == "" {
		local = table + "_id"
	}
	b.joins = append(b.joins[:len(b.joins):len(b.joins)], joinClause{
		kind:     kind,
		table:    table,
		foreign:  foreign,
		operator: operator,
		local:    local,
	})
	return b
}

// OrderBy appends an ordering. An empty direction means ASC.
func (b Builder) OrderBy(column, direction string) Builder {
	direction = strings.ToUpper(strings.TrimSpace(direction))
	if direction == "" {
		direction = "ASC"
	}
	b.orders = append(b.orders[:len(b.orders):len(b.orders)], orderClause{
		column:    column,
		direction: direction,
	})
	return b
}

// GroupBy appends grouping columns.
func (b Builder) GroupBy(columns ...string) Builder {
	b.groups = append(b.groups[:len(b.groups):len(b.groups)], columns...)
	return b
}

// Having appends a HAVING predicate, bound positionally like Where.
func (b Builder) Having(column, operator string, value any) Builder {
	b.havings = append(b.havings[:len(b.havings):len(b.havings)], predicate{
		column:   column,
		operator: operator,
		values:   []any{value},
	})
	return b
}

// Limit renders as a literal integer; integers cannot smuggle SQL.
func (b Builder) Limit(n int) Builder {
	b.limit = &n
	return b
}

// Offset renders as a literal integer.
func (b Builder) Offset(n int) Builder {
	b.offset = &n
	return b
}

// Reset drops every accumulated clause and deferred error, keeping the target
// table and the bound handle.
func (b Builder) Reset() Builder {
	return Builder{exec: b.exec, table: b.table}
}

// Err reports the first error recorded while chaining, if any. Terminal
// operations surface the same error, so checking Err is optional.
func (b Builder) Err() error {
	return b.err
}
