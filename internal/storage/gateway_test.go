package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/geocoder89/usersvc/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeQuerier struct {
	queryErr error
	tag      pgconn.CommandTag
	execErr  error

	lastSQL  string
	lastArgs []any
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return nil, f.queryErr
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return f.tag, f.execErr
}

type row struct {
	ID int64 `db:"id"`
}

func TestExecute_ReportsRowsAffected(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
	g := New(q, nil)

	n, err := g.Execute(context.Background(), "users.soft_delete", "UPDATE users SET status = $2 WHERE id = $1", int64(1), "inactive")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows affected, got %d", n)
	}
	if len(q.lastArgs) != 2 || q.lastArgs[0] != int64(1) {
		t.Fatalf("args not forwarded: %v", q.lastArgs)
	}
}

func TestExecute_ObservesErrors(t *testing.T) {
	prom := observability.NewProm()
	q := &fakeQuerier{execErr: errors.New("connection refused")}
	g := New(q, prom)

	_, err := g.Execute(context.Background(), "users.soft_delete", "UPDATE users SET status = 'inactive'")
	if err == nil {
		t.Fatalf("expected error")
	}

	if got := testutil.ToFloat64(prom.DbErrorsTotal.WithLabelValues("users.soft_delete", "connection")); got != 1 {
		t.Fatalf("expected one classified db error, got %v", got)
	}
}

func TestFetch_QueryErrorPropagates(t *testing.T) {
	wantErr := errors.New("conn closed")
	g := New(&fakeQuerier{queryErr: wantErr}, nil)

	if _, err := FetchOne[row](context.Background(), g, "op", "SELECT 1 AS id"); !errors.Is(err, wantErr) {
		t.Fatalf("FetchOne: got %v, want %v", err, wantErr)
	}
	if _, err := FetchAll[row](context.Background(), g, "op", "SELECT 1 AS id"); !errors.Is(err, wantErr) {
		t.Fatalf("FetchAll: got %v, want %v", err, wantErr)
	}
}

func TestPing_WithoutPool(t *testing.T) {
	g := New(&fakeQuerier{}, nil)

	if err := g.Ping(context.Background()); err != nil {
		t.Fatalf("ping without a pool: %v", err)
	}
	g.Close()
}
