package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on top of the store and the global
// sequence counter.
type eventRepo struct {
	store *Store
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	s := r.store
	return s.withTx(ctx, func(tx *sql.Tx) error {
		seqNum, err := s.seq.reserve(ctx, tx, 1)
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		var errMsg any
		if data.ErrorMessage != "" {
			errMsg = truncate(data.ErrorMessage, maxErrorMessage)
		}
		query, args := entsql.Dialect(s.dialect).
			Insert(tableLLMRequests).
			Columns("sequence", "provider", "model", "purpose", "input_tokens",
				"output_tokens", "latency_ms", "success", "error_message", "created_at").
			Values(seqNum, data.Provider, data.Model, data.Purpose, data.InputTokens,
				data.OutputTokens, data.LatencyMs, data.Success, errMsg, time.Now().UTC()).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save LLM request event: %w", err)
		}
		return nil
	})
}

// maxErrorMessage matches the error_message column size.
const maxErrorMessage = 2048

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
