package progress

import (
	"context"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/region"
	"github.com/abhisek/mapquiz/internal/store"
)

// DefaultBatchSize caps the number of due questions served at once.
const DefaultBatchSize = 7

// Store is the persistence the engine needs. *store.Store satisfies it.
type Store interface {
	LoadProgress(ctx context.Context) (map[string]store.ProgressRecord, error)
	LoadUnlocks(ctx context.Context) (map[string]store.UnlockRecord, error)
	SaveBatch(ctx context.Context, b store.Batch) error
}

// CatalogSource loads question content. catalog.Loader satisfies it.
type CatalogSource interface {
	Load() (*catalog.Catalog, error)
}

// QuestionView is a question as served to a player: no answer, no
// scheduling fields.
type QuestionView struct {
	ID       string   `json:"id"`
	RegionID string   `json:"region_id"`
	Prompt   string   `json:"question"`
	Options  []string `json:"options"`
}

// Answer is one submitted answer.
type Answer struct {
	QuestionID string `json:"id"`
	Submitted  string `json:"answer"`
}

// AnswerResult reports how one answer was graded.
type AnswerResult struct {
	ID            string `json:"id"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// GradeResult is the outcome of GradeAnswers.
type GradeResult struct {
	Results []AnswerResult `json:"results"`

	// MasteryPercent is the region's mastered/total ratio in [0,1].
	MasteryPercent float64 `json:"mastery_percent"`

	// UnlockedRegion is the id of the region this call unlocked, if any.
	UnlockedRegion string `json:"region_unlocked,omitempty"`

	// Transitions lists the questions whose lifecycle state changed, in
	// grading order.
	Transitions []mastery.StateTransition `json:"transitions,omitempty"`
}

// TransitionOf returns the last state change of a question in this batch.
func (r *GradeResult) TransitionOf(questionID string) (mastery.StateTransition, bool) {
	for i := len(r.Transitions) - 1; i >= 0; i-- {
		if r.Transitions[i].QuestionID == questionID {
			return r.Transitions[i], true
		}
	}
	return mastery.StateTransition{}, false
}

// CountTransitions returns how many transitions ended in state to.
func (r *GradeResult) CountTransitions(to mastery.QuestionState) int {
	n := 0
	for _, t := range r.Transitions {
		if t.To == to {
			n++
		}
	}
	return n
}

// RegionStatus is one entry of StatusMap.
type RegionStatus struct {
	Status  mastery.Status `json:"status"`
	Percent float64        `json:"percent"`
}

// RegionSummary is the ordered, richer form of RegionStatus.
type RegionSummary struct {
	Region   region.Region  `json:"region"`
	Unlocked bool           `json:"unlocked"`
	Status   mastery.Status `json:"status"`
	Mastered int            `json:"mastered_count"`
	Total    int            `json:"total_questions"`
	Due      int            `json:"due"`
	// NextReviewDays is the wait until the next unmastered question comes
	// due. It is 0 while questions are due or when none are left.
	NextReviewDays int `json:"next_review_days,omitempty"`
}

// Percent returns the mastery percentage rounded to one decimal.
func (s RegionSummary) Percent() float64 {
	return mastery.Tally{Mastered: s.Mastered, Total: s.Total}.Percent()
}
