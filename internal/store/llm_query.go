package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// LLMRequestEvent is a recorded LLM call.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// RecentLLMRequests returns up to limit LLM request events, newest first.
// A limit below 1 returns every event.
func (s *Store) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	b := entsql.Dialect(s.dialect)
	sel := b.Select("sequence", "provider", "model", "purpose", "input_tokens",
		"output_tokens", "latency_ms", "success", "error_message", "created_at").
		From(b.Table(tableLLMRequests)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var (
			e       LLMRequestEvent
			errMsg  sql.NullString
			created any
		)
		if err := rows.Scan(&e.Sequence, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens,
			&e.OutputTokens, &e.LatencyMs, &e.Success, &errMsg, &created); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		e.ErrorMessage = errMsg.String
		if e.Timestamp, err = scanTime(created); err != nil {
			return nil, fmt.Errorf("LLM event %d: %w", e.Sequence, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM events: %w", err)
	}
	return out, nil
}

// timeLayouts covers the text forms drivers use for time columns.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// scanTime converts a scanned time column. Some drivers return time.Time,
// others the stored text.
func scanTime(v any) (time.Time, error) {
	var text string
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		text = t
	case []byte:
		text = string(t)
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", v)
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", text)
}
