package fluentq

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DB wraps a sql.DB together with the logging configuration builders started
// from it inherit. The embedded handle stays fully usable for anything the
// builder does not cover.
type DB struct {
	*sql.DB

	logger  Logger
	debug   bool
	slow    time.Duration
	session string
}

// Option adjusts a DB at open time.
type Option func(*DB)

// WithLogger routes statement logging to l instead of discarding it.
func WithLogger(l Logger) Option {
	return func(d *DB) { d.logger = l }
}

// WithDebug logs every statement, not just slow ones.
func WithDebug(enabled bool) Option {
	return func(d *DB) { d.debug = enabled }
}

// WithSlowQuery logs statements that take longer than threshold.
func WithSlowQuery(threshold time.Duration) Option {
	return func(d *DB) { d.slow = threshold }
}

// Open opens a handle for any registered driver and verifies it with a ping.
// The returned DB carries a fresh session token that tags every logged
// statement.
func Open(driverName, dsn string, opts ...Option) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectionError{Err: err}
	}

	d := &DB{
		DB:      sqlDB,
		logger:  NopLogger{},
		session: uuid.Must(uuid.NewV7()).String(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Connect opens a MySQL handle from cfg and applies its pool settings. No
// transaction is started; statements run in autocommit mode until the caller
// asks the embedded handle for one.
func Connect(cfg Config, opts ...Option) (*DB, error) {
	cfg = cfg.withDefaults()

	d, err := Open("mysql", cfg.DSN(), opts...)
	if err != nil {
		var connErr *ConnectionError
		if errors.As(err, &connErr) {
			connErr.Addr = cfg.addr()
			connErr.Database = cfg.Database
		}
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		d.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		d.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		d.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		d.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return d, nil
}

// Table starts a builder chain against table, bound to this handle.
func (d *DB) Table(name string) Builder {
	return NewBuilder(d.executor(), name)
}

// Tx starts a builder chain against table that runs inside tx. Statement
// logging follows the DB the transaction came from.
func (d *DB) Tx(tx *sql.Tx, table string) Builder {
	return NewBuilder(d.wrap(tx), table)
}

// Raw starts a builder chain with no target table, for ExecuteRaw and
// ExecRaw statements.
func (d *DB) Raw() Builder {
	return NewBuilder(d.executor(), "")
}

// Session returns the token that tags this handle's logged statements.
func (d *DB) Session() string {
	return d.session
}

func (d *DB) executor() Executor {
	return d.wrap(d.DB)
}

func (d *DB) wrap(ex Executor) Executor {
	if !d.debug && d.slow <= 0 {
		return ex
	}
	return &loggingExecutor{
		inner:   ex,
		logger:  d.logger,
		debug:   d.debug,
		slow:    d.slow,
		session: d.session,
	}
}

// Table starts an unbound builder chain, useful when only SQL text is
// wanted. Bind it later with Use or execute against a handle-bound builder.
func Table(name string) Builder {
	return NewBuilder(nil, name)
}

// Use rebinds the builder to ex, keeping all accumulated state.
func (b Builder) Use(ex Executor) Builder {
	b.exec = ex
	return b
}
