package store

import (
	"context"
	"time"
)

// ProgressRecord is the persisted scheduling state of one question.
// Question content is never stored.
type ProgressRecord struct {
	QuestionID string
	RegionID   string
	Interval   int
	NextReview time.Time
	Mastered   bool
}

// Unlock sources.
const (
	UnlockCascade = "cascade"
	UnlockAdmin   = "admin"
)

// UnlockRecord marks a region unlocked outside the load-time threshold rule.
type UnlockRecord struct {
	RegionID   string
	UnlockedAt time.Time
	Source     string
}

// AnswerRecord is one graded answer in a batch.
type AnswerRecord struct {
	QuestionID    string
	RegionID      string
	Submitted     string
	Correct       bool
	IntervalAfter int
}

// Batch is everything a single grading call writes. It is applied in one
// transaction: either every row lands or none does.
type Batch struct {
	ID       string
	At       time.Time
	Progress []ProgressRecord
	Answers  []AnswerRecord
	Unlocks  []UnlockRecord
}

// RegionStat aggregates graded answers for one region.
type RegionStat struct {
	RegionID string
	Attempts int
	Correct  int
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (r RegionStat) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
