// Package dbtest provides an in-process stand-in for database.PGX so services
// can be tested against fake repositories that ignore the Queryable argument.
package dbtest

import (
	"context"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PGX struct {
	Commits   int
	Rollbacks int
}

func (p *PGX) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	return &tx{db: p}, nil
}

func (p *PGX) GetPool(context.Context) *pgxpool.Pool {
	return nil
}

func (*PGX) Exec(context.Context, database.Sqlizer) (pgconn.CommandTag, error) {
	return nil, nil
}

func (*PGX) Get(context.Context, interface{}, database.Sqlizer) error {
	return nil
}

func (*PGX) Select(context.Context, interface{}, database.Sqlizer) error {
	return nil
}

func (*PGX) ExecRaw(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}

type tx struct {
	PGX
	db   *PGX
	done bool
}

func (t *tx) Commit(context.Context) error {
	if !t.done {
		t.done = true
		t.db.Commits++
	}
	return nil
}

// Rollback after Commit is a no-op, matching pgx.
func (t *tx) Rollback(context.Context) error {
	if !t.done {
		t.done = true
		t.db.Rollbacks++
	}
	return nil
}
