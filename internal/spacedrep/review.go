package spacedrep

import (
	"math"
	"time"
)

// ReviewState holds the scheduling fields of a single question.
type ReviewState struct {
	IntervalDays int       `json:"interval"`
	NextReview   time.Time `json:"next_review"`
	Mastered     bool      `json:"mastered"`
}

// NewReviewState returns the state of a question that has never been
// answered: due immediately and unmastered.
func NewReviewState(now time.Time) ReviewState {
	return ReviewState{IntervalDays: 0, NextReview: now}
}

// IsDue reports whether the question should be offered for review at now.
// Mastered questions are never due.
func (rs ReviewState) IsDue(now time.Time) bool {
	return !rs.Mastered && !now.Before(rs.NextReview)
}

// Outcome is the result of applying one answer to a ReviewState.
type Outcome struct {
	State ReviewState
	// NewlyMastered is true only on the answer that first satisfies the
	// mastery policy.
	NewlyMastered bool
}

// Apply returns the state that results from answering the question at now.
// The receiver is not modified.
func (rs ReviewState) Apply(correct bool, now time.Time, policy MasteryPolicy) Outcome {
	next := ReviewState{
		IntervalDays: NextInterval(rs.IntervalDays, correct),
		Mastered:     rs.Mastered,
	}
	next.NextReview = NextReview(now, next.IntervalDays)

	newly := false
	if correct && !rs.Mastered && policy.Reached(next.IntervalDays) {
		next.Mastered = true
		newly = true
	}
	return Outcome{State: next, NewlyMastered: newly}
}

// DaysUntilReview returns the whole days until the question is due, 0 if due.
func (rs ReviewState) DaysUntilReview(now time.Time) int {
	if !now.Before(rs.NextReview) {
		return 0
	}
	return int(math.Ceil(rs.NextReview.Sub(now).Hours() / 24.0))
}
