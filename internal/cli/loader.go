package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fluentq/fluentq"
	_ "github.com/mattn/go-sqlite3"
)

// LoadError reports a problem with an input file.
type LoadError struct {
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ConnectionFile is the YAML shape of --config. Either a raw dsn or the
// MySQL fields may be given; dsn wins when both are present.
type ConnectionFile struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`

	fluentq.Config `yaml:",inline"`
}

// LoadConnectionFile reads and validates a connection description.
func LoadConnectionFile(path string) (*ConnectionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("reading connection file: %v", err)}
	}

	var conn ConnectionFile
	if err := yaml.Unmarshal(data, &conn); err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("parsing connection file: %v", err)}
	}

	if conn.Driver == "" {
		conn.Driver = "mysql"
	}
	if conn.DSN == "" && conn.Driver != "mysql" {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("driver %q needs an explicit dsn", conn.Driver)}
	}

	return &conn, nil
}

// Open dials the described database. MySQL connections go through
// fluentq.Connect so pool settings apply; anything else opens by dsn.
func (c *ConnectionFile) Open(opts ...fluentq.Option) (*fluentq.DB, error) {
	if c.Driver == "mysql" && c.DSN == "" {
		return fluentq.Connect(c.Config, opts...)
	}
	return fluentq.Open(c.Driver, c.DSN, opts...)
}

// QueryFile is the YAML shape of a query description.
type QueryFile struct {
	Table   string      `yaml:"table"`
	Select  []string    `yaml:"select"`
	Where   []WhereSpec `yaml:"where"`
	WhereIn []WhereIn   `yaml:"where_in"`
	Joins   []JoinSpec  `yaml:"joins"`
	GroupBy []string    `yaml:"group_by"`
	Having  []WhereSpec `yaml:"having"`
	OrderBy []OrderSpec `yaml:"order_by"`
	Limit   *int        `yaml:"limit"`
	Offset  *int        `yaml:"offset"`
}

// WhereSpec is one positional predicate.
type WhereSpec struct {
	Column   string `yaml:"column"`
	Operator string `yaml:"operator"`
	Value    any    `yaml:"value"`
}

// WhereIn is one IN predicate.
type WhereIn struct {
	Column string `yaml:"column"`
	Values []any  `yaml:"values"`
}

// JoinSpec is one join. Operator and Local may be empty; the builder fills
// in its defaults.
type JoinSpec struct {
	Table    string `yaml:"table"`
	Foreign  string `yaml:"foreign"`
	Operator string `yaml:"operator"`
	Local    string `yaml:"local"`
	Left     bool   `yaml:"left"`
}

// OrderSpec is one ordering entry.
type OrderSpec struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction"`
}

// LoadQueryFile reads and validates a query description.
func LoadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("reading query file: %v", err)}
	}

	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("parsing query file: %v", err)}
	}

	if qf.Table == "" {
		return nil, &LoadError{Path: path, Message: "query file has no table"}
	}

	return &qf, nil
}

// Apply chains the description's clauses onto b, which should already target
// the file's table.
func (q *QueryFile) Apply(b fluentq.Builder) fluentq.Builder {
	if len(q.Select) > 0 {
		b = b.Select(q.Select...)
	}
	for _, w := range q.Where {
		b = b.Where(w.Column, w.Operator, w.Value)
	}
	for _, in := range q.WhereIn {
		b = b.WhereIn(in.Column, in.Values...)
	}
	for _, j := range q.Joins {
		if j.Left {
			b = b.LeftJoin(j.Table, j.Foreign, j.Operator, j.Local)
		} else {
			b = b.Join(j.Table, j.Foreign, j.Operator, j.Local)
		}
	}
	if len(q.GroupBy) > 0 {
		b = b.GroupBy(q.GroupBy...)
	}
	for _, h := range q.Having {
		b = b.Having(h.Column, h.Operator, h.Value)
	}
	for _, o := range q.OrderBy {
		b = b.OrderBy(o.Column, o.Direction)
	}
	if q.Limit != nil {
		b = b.Limit(*q.Limit)
	}
	if q.Offset != nil {
		b = b.Offset(*q.Offset)
	}
	return b
}
