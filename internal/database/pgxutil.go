package database

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/xlab/closer"
)

// conn is what the pool and an open transaction have in common.
type conn interface {
	pgxscan.Querier
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// queries runs squirrel builders on a conn.
type queries struct {
	c conn
}

func (q queries) Exec(ctx context.Context, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := toSQL(sqlizer)
	if err != nil {
		return nil, err
	}

	return q.c.Exec(ctx, query, args...)
}

// Select leaves dst empty when there are no rows.
func (q queries) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := toSQL(sqlizer)
	if err != nil {
		return err
	}

	return pgxscan.Select(ctx, q.c, dst, query, args...)
}

// Get returns pgx.ErrNoRows when there is no row.
func (q queries) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := toSQL(sqlizer)
	if err != nil {
		return err
	}

	return pgxscan.Get(ctx, q.c, dst, query, args...)
}

func (q queries) ExecRaw(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return q.c.Exec(ctx, sql, arguments...)
}

func toSQL(sqlizer Sqlizer) (string, []interface{}, error) {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("ToSql: %w", err)
	}
	return query, args, nil
}

type pool struct {
	queries
	pool *pgxpool.Pool
}

// NewPGX connects to Postgres; the pool is closed by closer.
func NewPGX(ctx context.Context, dsn string) (PGX, error) {
	p, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}

	closer.Bind(p.Close)

	return &pool{queries: queries{c: p}, pool: p}, nil
}

func (p *pool) BeginTx(ctx context.Context, txOptions *pgx.TxOptions) (Tx, error) {
	var opts pgx.TxOptions
	if txOptions != nil {
		opts = *txOptions
	}

	t, err := p.pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &tx{queries: queries{c: t}, tx: t}, nil
}

func (p *pool) GetPool(context.Context) *pgxpool.Pool {
	return p.pool
}

type tx struct {
	queries
	tx pgx.Tx
}

func (t *tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
