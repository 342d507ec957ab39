package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// QueryLogger is a pgx.QueryTracer that logs statements slower than the
// threshold at warn and failed statements at error. A zero threshold
// disables slow query logging. Missing rows are not failures.
type QueryLogger struct {
	log       *slog.Logger
	threshold time.Duration
	now       func() time.Time
}

// NewQueryLogger creates a QueryLogger.
func NewQueryLogger(logger *slog.Logger, threshold time.Duration) *QueryLogger {
	return &QueryLogger{
		log:       logger.With("adapter", "postgres"),
		threshold: threshold,
		now:       time.Now,
	}
}

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

func (q *QueryLogger) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: q.now()})
}

func (q *QueryLogger) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := q.now().Sub(start.at)

	switch {
	case data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows):
		q.log.ErrorContext(ctx, "query failed",
			slog.String("sql", compactSQL(start.sql)),
			slog.Duration("duration", elapsed),
			slog.String("error", data.Err.Error()),
		)
	case q.threshold > 0 && elapsed >= q.threshold:
		q.log.WarnContext(ctx, "slow query",
			slog.String("sql", compactSQL(start.sql)),
			slog.Duration("duration", elapsed),
			slog.Int64("rows", data.CommandTag.RowsAffected()),
		)
	}
}

// compactSQL collapses whitespace so multi-line statements log on one line.
func compactSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
