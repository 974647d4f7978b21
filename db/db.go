// Package db executes queries built with "github.com/mitranim/sqf" through
// "database/sql", converting placeholders for the configured dialect and
// logging every statement.
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/mitranim/sqf"
	"github.com/pkg/errors"
)

// DB is a wrapper around sql.DB which renders `sqf.Expr` values for its
// dialect before executing them.
type DB struct {
	*sql.DB
	dialect sqf.Dialect
	logger  Logger
}

/*
Opens a database with the configured driver after validating the config. The
logger is used only when `Config.LogQueries` is set.
*/
func Open(conf Config, logger Logger) (*DB, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	dialect, err := conf.dialect()
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(conf.Driver, conf.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, `[db] failed to open %q`, conf.Driver)
	}

	if !conf.LogQueries {
		logger = nil
	}
	return New(conn, dialect, logger), nil
}

// Wraps an existing handle.
func New(conn *sql.DB, dialect sqf.Dialect, logger Logger) *DB {
	return &DB{DB: conn, dialect: dialect, logger: logger}
}

func (d *DB) Dialect() sqf.Dialect { return d.dialect }

func (d *DB) Query(ctx context.Context, expr sqf.Expr) (*sql.Rows, error) {
	return query(ctx, d.DB, d.dialect, d.logger, `Query`, expr)
}

/*
Unlike `sql.DB.QueryRow`, this returns an error when the expression fails to
render. Execution errors are deferred to `sql.Row.Scan` as usual.
*/
func (d *DB) QueryRow(ctx context.Context, expr sqf.Expr) (*sql.Row, error) {
	return queryRow(ctx, d.DB, d.dialect, d.logger, `QueryRow`, expr)
}

func (d *DB) Exec(ctx context.Context, expr sqf.Expr) (sql.Result, error) {
	return exec(ctx, d.DB, d.dialect, d.logger, `Exec`, expr)
}

func (d *DB) Begin(ctx context.Context) (*Tx, error) {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, `[db] failed to begin transaction`)
	}
	return &Tx{Tx: tx, dialect: d.dialect, logger: d.logger}, nil
}

func (d *DB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

type Tx struct {
	*sql.Tx
	dialect sqf.Dialect
	logger  Logger
}

func (t *Tx) Query(ctx context.Context, expr sqf.Expr) (*sql.Rows, error) {
	return query(ctx, t.Tx, t.dialect, t.logger, `TxQuery`, expr)
}

func (t *Tx) QueryRow(ctx context.Context, expr sqf.Expr) (*sql.Row, error) {
	return queryRow(ctx, t.Tx, t.dialect, t.logger, `TxQueryRow`, expr)
}

func (t *Tx) Exec(ctx context.Context, expr sqf.Expr) (sql.Result, error) {
	return exec(ctx, t.Tx, t.dialect, t.logger, `TxExec`, expr)
}

func (t *Tx) Commit() error {
	defer sendStats(t.logger, time.Now(), `TxCommit`, `COMMIT`, nil)
	return errors.WithStack(t.Tx.Commit())
}

func (t *Tx) Rollback() error {
	defer sendStats(t.logger, time.Now(), `TxRollback`, `ROLLBACK`, nil)
	return errors.WithStack(t.Tx.Rollback())
}

type runner interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}

func query(ctx context.Context, src runner, dialect sqf.Dialect, logger Logger, typ string, expr sqf.Expr) (*sql.Rows, error) {
	text, args, err := reify(dialect, expr)
	if err != nil {
		return nil, err
	}

	defer sendStats(logger, time.Now(), typ, text, args)
	rows, err := src.QueryContext(ctx, text, args...)
	return rows, errors.WithStack(err)
}

func queryRow(ctx context.Context, src runner, dialect sqf.Dialect, logger Logger, typ string, expr sqf.Expr) (*sql.Row, error) {
	text, args, err := reify(dialect, expr)
	if err != nil {
		return nil, err
	}

	defer sendStats(logger, time.Now(), typ, text, args)
	return src.QueryRowContext(ctx, text, args...), nil
}

func exec(ctx context.Context, src runner, dialect sqf.Dialect, logger Logger, typ string, expr sqf.Expr) (sql.Result, error) {
	text, args, err := reify(dialect, expr)
	if err != nil {
		return nil, err
	}

	defer sendStats(logger, time.Now(), typ, text, args)
	res, err := src.ExecContext(ctx, text, args...)
	return res, errors.WithStack(err)
}

func reify(dialect sqf.Dialect, expr sqf.Expr) (text string, args []any, err error) {
	if expr == nil {
		return ``, nil, errors.New(`[db] nil expression`)
	}
	err = sqf.Catch(func() {
		text, args = dialect.Reify(expr)
	})
	return
}
