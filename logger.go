package fluentq

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"
)

// Logger receives one line per logged statement. The stdlib *log.Logger
// satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...any) {}

// StdLogger returns a Logger writing to stdout with a package prefix.
func StdLogger() Logger {
	return log.New(os.Stdout, "[fluentq] ", log.LstdFlags)
}

// loggingExecutor wraps an Executor and logs statement text, argument count,
// and duration. Argument values are never logged; the SQL text carries
// placeholders only, so nothing sensitive can leak through the log.
type loggingExecutor struct {
	inner   Executor
	logger  Logger
	debug   bool
	slow    time.Duration
	session string
}

func (l *loggingExecutor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := l.inner.ExecContext(ctx, query, args...)
	l.log(query, len(args), time.Since(start), err)
	return result, err
}

func (l *loggingExecutor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := l.inner.QueryContext(ctx, query, args...)
	l.log(query, len(args), time.Since(start), err)
	return rows, err
}

func (l *loggingExecutor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := l.inner.QueryRowContext(ctx, query, args...)
	// The row error only surfaces at Scan time, past this wrapper.
	l.log(query, len(args), time.Since(start), nil)
	return row
}

func (l *loggingExecutor) log(query string, argc int, elapsed time.Duration, err error) {
	if l.logger == nil {
		return
	}

	slow := l.slow > 0 && elapsed >= l.slow
	if err == nil && !l.debug && !slow {
		return
	}

	switch {
	case err != nil:
		l.logger.Printf("session=%s sql=%q argc=%d elapsed=%s err=%v", l.session, query, argc, elapsed, err)
	case slow:
		l.logger.Printf("session=%s sql=%q argc=%d elapsed=%s slow", l.session, query, argc, elapsed)
	default:
		l.logger.Printf("session=%s sql=%q argc=%d elapsed=%s", l.session, query, argc, elapsed)
	}
}
