package spacedrep

import "time"

// FirstIntervalDays is the interval assigned to a question answered
// correctly while it is due immediately (interval 0).
const FirstIntervalDays = 1

// NextInterval returns the review interval in days after an answer.
// A correct answer starts the schedule at FirstIntervalDays or doubles the
// prior interval; an incorrect answer resets it to 0. Doubling is not capped.
func NextInterval(prior int, correct bool) int {
	if !correct {
		return 0
	}
	if prior <= 0 {
		return FirstIntervalDays
	}
	return prior * 2
}

// NextReview returns when a question with the given interval is next due.
func NextReview(now time.Time, intervalDays int) time.Time {
	if intervalDays <= 0 {
		return now
	}
	return now.AddDate(0, 0, intervalDays)
}
