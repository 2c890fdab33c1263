package fluentq

import (
	"fmt"
	"strings"
)

// predicate is one comparison destined for a WHERE or HAVING clause. Column
// and operator are written into the SQL as given; values always travel as
// placeholder arguments.
type predicate struct {
	column   string
	operator string
	values   []any
	in       bool
}

func (p predicate) sql() (string, []any) {
	if p.in {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(p.values)), ", ")
		return fmt.Sprintf("%s IN (%s)", p.column, placeholders), p.values
	}
	return fmt.Sprintf("%s %s ?", p.column, p.operator), p.values
}

// predicateClause renders preds joined by AND behind the given keyword,
// e.g. " WHERE a = ? AND b IN (?, ?)". Empty preds render nothing.
func predicateClause(keyword string, preds []predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(keyword)
	for i, p := range preds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		q, a := p.sql()
		sb.WriteString(q)
		args = append(args, a...)
	}
	return sb.String(), args
}

// joinClause is a rendered-on-demand join. The base table is only known at
// build time, so sql takes it as an argument.
type joinClause struct {
	kind     string
	table    string
	foreign  string
	operator string
	local    string
}

func (j joinClause) sql(baseTable string) string {
	return fmt.Sprintf(" %s JOIN %s ON %s.%s %s %s.%s",
		j.kind, j.table, j.table, j.foreign, j.operator, baseTable, j.local)
}

type orderClause struct {
	column    string
	direction string
}

func (o orderClause) sql() string {
	return o.column + " " + o.direction
}
