package db

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/go-pg/pg/v10"
)

// DefaultSlowQuery is the duration above which queries are logged at Info.
const DefaultSlowQuery = 200 * time.Millisecond

// QueryHook logs executed statements: failures at Warn, slow ones at Info, everything else at Debug.
type QueryHook struct {
	logger *slog.Logger
	slow   time.Duration
}

func NewQueryHook(logger *slog.Logger, slow time.Duration) *QueryHook {
	if slow <= 0 {
		slow = DefaultSlowQuery
	}

	return &QueryHook{logger: logger, slow: slow}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *pg.QueryEvent) (context.Context, error) {
	return ctx, nil
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *pg.QueryEvent) error {
	elapsed := time.Since(event.StartTime)

	level, msg := slog.LevelDebug, "sql query"
	switch {
	case event.Err != nil:
		level, msg = slog.LevelWarn, "sql query failed"
	case elapsed >= h.slow:
		level, msg = slog.LevelInfo, "slow sql query"
	}

	if !h.logger.Enabled(ctx, level) {
		return nil
	}

	query, err := event.FormattedQuery()
	if err != nil || len(query) == 0 {
		// statements that failed before formatting only have their template
		if query, err = event.UnformattedQuery(); err != nil {
			h.logger.ErrorContext(ctx, "failed to format query", "error", err)
			return nil
		}
	}

	attrs := []any{
		"op", operation(query),
		"query", string(query),
		"duration_ms", elapsed.Milliseconds(),
	}
	if event.Result != nil {
		attrs = append(attrs, "rows_affected", event.Result.RowsAffected(), "rows_returned", event.Result.RowsReturned())
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err)
	}

	h.logger.Log(ctx, level, msg, attrs...)
	return nil
}

// operation returns the leading SQL keyword, e.g. SELECT or UPDATE.
func operation(query []byte) string {
	fields := bytes.Fields(query)
	if len(fields) == 0 {
		return ""
	}

	return string(bytes.ToUpper(fields[0]))
}
