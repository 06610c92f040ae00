// Thin interfaces over pgxpool, extracted so that stores depend on what
// they actually call and mocks stay small.
//
// These are subsets of the pgx types. When a store needs one more
// method pgx has, declare it here.
package pool

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// something sending SQL.
//
// Extracted from `*pgxpool.Pool` and `pgx.Tx`.
type Queryer interface {
	// send a SQL command without result rows.
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)

	// send a SQL command with result rows.
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)

	// send a SQL command with a single result row.
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// something beginning a SQL transaction.
type Begin interface {
	Begin(ctx context.Context) (Tx, error)
}

// subset of `pgx.Tx`.
//
// `pgx.Tx` itself does not implement this (go has no covariance on
// return types); get one via Pool.Begin.
type Tx interface {
	Queryer
	Begin

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// subset of `*pgxpool.Pool`. Wrap one with Wrap, or dial with Connect.
type Pool interface {
	Queryer
	Begin

	Ping(ctx context.Context) error
	Close()
}

// Connect dials the database and wraps the pool.
func Connect(ctx context.Context, conninfo string) (Pool, error) {
	base, err := pgxpool.Connect(ctx, conninfo)
	if err != nil {
		return nil, err
	}
	return &pgxPool{base: base}, nil
}

// Wrap exposes an existing pgxpool.Pool as Pool.
func Wrap(base *pgxpool.Pool) Pool {
	return &pgxPool{base: base}
}

type pgxTx struct {
	base pgx.Tx
}

var _ Tx = &pgxTx{}

func (tx *pgxTx) Begin(ctx context.Context) (Tx, error) {
	nested, err := tx.base.Begin(ctx)
	if nested == nil {
		return nil, err
	}
	return &pgxTx{base: nested}, err
}

func (tx *pgxTx) Commit(ctx context.Context) error {
	return tx.base.Commit(ctx)
}

func (tx *pgxTx) Rollback(ctx context.Context) error {
	return tx.base.Rollback(ctx)
}

func (tx *pgxTx) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return tx.base.Exec(ctx, sql, arguments...)
}

func (tx *pgxTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return tx.base.Query(ctx, sql, args...)
}

func (tx *pgxTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return tx.base.QueryRow(ctx, sql, args...)
}

type pgxPool struct {
	base *pgxpool.Pool
}

var _ Pool = &pgxPool{}

func (p *pgxPool) Begin(ctx context.Context) (Tx, error) {
	tx, err := p.base.Begin(ctx)
	if tx == nil {
		return nil, err
	}
	return &pgxTx{base: tx}, err
}

func (p *pgxPool) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return p.base.Exec(ctx, sql, arguments...)
}

func (p *pgxPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return p.base.Query(ctx, sql, args...)
}

func (p *pgxPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return p.base.QueryRow(ctx, sql, args...)
}

func (p *pgxPool) Ping(ctx context.Context) error {
	return p.base.Ping(ctx)
}

func (p *pgxPool) Close() {
	p.base.Close()
}
