package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace"
)

func TestTraceHandler_AddsSpanIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	log.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not json: %v, %s", err, buf.String())
	}

	if rec["trace_id"] != traceID.String() {
		t.Fatalf("expected trace_id %s, got %v", traceID, rec["trace_id"])
	}
	if rec["span_id"] != spanID.String() {
		t.Fatalf("expected span_id %s, got %v", spanID, rec["span_id"])
	}
}

func TestTraceHandler_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	log.Info("plain")

	if strings.Contains(buf.String(), "trace_id") {
		t.Fatalf("unexpected trace_id without a span: %s", buf.String())
	}
}

func TestNewLogger_DebugOnlyInDev(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, "prod").Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered outside dev, got %s", buf.String())
	}

	newLogger(&buf, "dev").Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug should be logged in dev")
	}
}

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "no_rows", err: fmt.Errorf("users.get: %w", pgx.ErrNoRows), want: "no_rows"},
		{name: "too_many_rows", err: pgx.ErrTooManyRows, want: "too_many_rows"},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: "unique_violation"},
		{name: "not_null", err: &pgconn.PgError{Code: "23502"}, want: "not_null_violation"},
		{name: "other_pg", err: &pgconn.PgError{Code: "42P01"}, want: "pg_42P01"},
		{name: "timeout", err: context.DeadlineExceeded, want: "timeout"},
		{name: "connection", err: errors.New("failed to connect: connection refused"), want: "connection"},
		{name: "unknown", err: errors.New("boom"), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDBErr(tt.err); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObserveDB_CountsErrors(t *testing.T) {
	p := NewProm()

	if err := p.ObserveDB("users.get", func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantErr := errors.New("boom")
	if err := p.ObserveDB("users.get", func() error { return wantErr }); err != wantErr {
		t.Fatalf("ObserveDB must return the callback error unchanged, got %v", err)
	}

	if got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("users.get", "unknown")); got != 1 {
		t.Fatalf("expected one counted error, got %v", got)
	}
}

func TestProm_HandlerExposesMetrics(t *testing.T) {
	p := NewProm()
	p.IncError("store")

	w := httptest.NewRecorder()
	p.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `usersvc_errors_total{kind="store"} 1`) {
		t.Fatalf("error counter missing from exposition: %s", w.Body.String())
	}
}
