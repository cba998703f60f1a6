package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey string

type recordingTracer struct {
	name  string
	calls *[]string
}

func (r *recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	*r.calls = append(*r.calls, "start:"+r.name)
	return context.WithValue(ctx, ctxKey(r.name), true)
}

func (r *recordingTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryEndData) {
	seen, _ := ctx.Value(ctxKey(r.name)).(bool)
	if seen {
		*r.calls = append(*r.calls, "end:"+r.name)
	}
}

func TestMultiTracer_CallsEveryTracerInOrder(t *testing.T) {
	var calls []string
	mt := &multiTracer{tracers: []pgx.QueryTracer{
		&recordingTracer{name: "a", calls: &calls},
		&recordingTracer{name: "b", calls: &calls},
	}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, []string{"start:a", "start:b", "end:a", "end:b"}, calls)
}

// ---------------------------------------------------------------------------
// slowQueryTracer
// ---------------------------------------------------------------------------

type fakeClock struct {
	times []time.Time
}

func (c *fakeClock) now() time.Time {
	next := c.times[0]
	c.times = c.times[1:]
	return next
}

func newSlowQueryFixture(elapsed time.Duration) (*slowQueryTracer, *bytes.Buffer) {
	var buf bytes.Buffer
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{times: []time.Time{start, start.Add(elapsed)}}

	return &slowQueryTracer{
		threshold: 100 * time.Millisecond,
		log:       zerolog.New(&buf),
		now:       clock.now,
	}, &buf
}

func TestSlowQueryTracer_LogsSlowStatement(t *testing.T) {
	tracer, buf := newSlowQueryFixture(250 * time.Millisecond)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT * FROM properties"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 10")})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "slow query detected", entry["message"])
	assert.Equal(t, "SELECT * FROM properties", entry["statement"])
	assert.Equal(t, "SELECT 10", entry["command_tag"])
	assert.EqualValues(t, 250, entry["duration"])
}

func TestSlowQueryTracer_IncludesError(t *testing.T) {
	tracer, buf := newSlowQueryFixture(time.Second)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT pg_sleep(1)"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("canceling statement")})

	assert.Contains(t, buf.String(), "canceling statement")
}

func TestSlowQueryTracer_IgnoresFastStatement(t *testing.T) {
	tracer, buf := newSlowQueryFixture(5 * time.Millisecond)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}

func TestSlowQueryTracer_EndWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	tracer := &slowQueryTracer{threshold: time.Nanosecond, log: zerolog.New(&buf)}

	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}
