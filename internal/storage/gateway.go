// Package storage is the single path from the service to PostgreSQL.
// Every call is one parameterised statement; connection checkout and return
// are left to the pgx pool.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/geocoder89/usersvc/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the part of pgx the gateway needs. *pgxpool.Pool, *pgx.Conn and pgx.Tx all satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Gateway struct {
	db   Querier
	pool *pgxpool.Pool
	prom *observability.Prom
}

// Open acquires the pool and checks it can reach the server.
func Open(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

func New(db Querier, prom *observability.Prom) *Gateway {
	g := &Gateway{db: db, prom: prom}

	if pool, ok := db.(*pgxpool.Pool); ok {
		g.pool = pool
	}

	return g
}

func (g *Gateway) observe(op string, fn func() error) error {
	if g.prom != nil {
		return g.prom.ObserveDB(op, fn)
	}
	return fn()
}

// FetchOne runs query and scans exactly one row into T by column name.
// No row yields pgx.ErrNoRows, more than one yields pgx.ErrTooManyRows.
func FetchOne[T any](ctx context.Context, g *Gateway, op, query string, args ...any) (T, error) {
	var out T

	err := g.observe(op, func() error {
		rows, err := g.db.Query(ctx, query, args...)
		if err != nil {
			return err
		}

		out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
		return err
	})

	return out, err
}

// FetchAll runs query and scans every row into T by column name.
func FetchAll[T any](ctx context.Context, g *Gateway, op, query string, args ...any) ([]T, error) {
	var out []T

	err := g.observe(op, func() error {
		rows, err := g.db.Query(ctx, query, args...)
		if err != nil {
			return err
		}

		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
		return err
	})

	return out, err
}

// Execute runs a statement that returns no rows and reports how many rows it touched.
func (g *Gateway) Execute(ctx context.Context, op, query string, args ...any) (int64, error) {
	var affected int64

	err := g.observe(op, func() error {
		tag, err := g.db.Exec(ctx, query, args...)
		if err != nil {
			return err
		}

		affected = tag.RowsAffected()
		return nil
	})

	return affected, err
}

func (g *Gateway) Ping(ctx context.Context) error {
	if g.pool == nil {
		return nil
	}
	return g.pool.Ping(ctx)
}

func (g *Gateway) Close() {
	if g.pool != nil {
		g.pool.Close()
	}
}
