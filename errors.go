package fluentq

import (
	"errors"
	"fmt"
)

var (
	ErrNoTable = errors.New("no table has been set")

	ErrNoExecutor = errors.New("builder is not bound to a database handle")

	ErrEmptyIn = errors.New("IN predicate has no values")

	ErrNoColumns = errors.New("statement has no column values")
)

// ConnectionError occurs when a database handle cannot be opened or the
// server does not answer the initial ping.
type ConnectionError struct {
	Addr     string
	Database string
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("connect: %v", e.Err)
	}
	return fmt.Sprintf("connect to %s/%s: %v", e.Addr, e.Database, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError wraps a driver error together with the statement that provoked
// it. Query holds placeholders only, never bound values, so it is safe to
// log.
type QueryError struct {
	Op    string
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
