package progress

import (
	"context"
	"fmt"

	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/spacedrep"
	"github.com/abhisek/mapquiz/internal/store"
)

// GradeAnswers grades a batch of answers for one region, reschedules the
// graded questions, recomputes mastery and may unlock the next region.
//
// Answers for ids not in the region are skipped. Matching is exact: case
// and whitespace are significant. New state is computed on copies and only
// committed after the store accepts the batch; a store failure returns
// ErrPersistence and leaves the engine unchanged.
func (e *Engine) GradeAnswers(ctx context.Context, regionID string, answers []Answer) (*GradeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rs, err := e.lookup(regionID)
	if err != nil {
		return nil, err
	}

	now := e.cfg.Now()
	working := make(map[string]spacedrep.ReviewState)
	var order []string
	mastered := rs.mastered

	result := &GradeResult{Results: []AnswerResult{}}
	batch := store.Batch{ID: e.cfg.NewBatchID(), At: now}

	for _, a := range answers {
		qs, ok := rs.byID[a.QuestionID]
		if !ok {
			continue
		}

		before, seen := working[a.QuestionID]
		if !seen {
			before = qs.review
			order = append(order, a.QuestionID)
		}

		correct := a.Submitted == qs.question.Answer
		out := before.Apply(correct, now, e.cfg.Policy)
		if out.NewlyMastered {
			mastered++
		}
		working[a.QuestionID] = out.State

		if tr := mastery.Transition(a.QuestionID, before, out.State, correct); tr != nil {
			result.Transitions = append(result.Transitions, *tr)
		}
		result.Results = append(result.Results, AnswerResult{
			ID:            a.QuestionID,
			Correct:       correct,
			CorrectAnswer: qs.question.Answer,
		})
		batch.Answers = append(batch.Answers, store.AnswerRecord{
			QuestionID:    a.QuestionID,
			RegionID:      rs.region.ID,
			Submitted:     a.Submitted,
			Correct:       correct,
			IntervalAfter: out.State.IntervalDays,
		})
	}

	tally := mastery.Tally{Mastered: mastered, Total: len(rs.questions)}
	result.MasteryPercent = tally.Ratio()

	var unlock *regionState
	if tally.MeetsThreshold() {
		if next, ok := e.cfg.Regions.Next(rs.region.ID); ok {
			if ns := e.regions[next.ID]; !ns.unlocked {
				unlock = ns
				result.UnlockedRegion = next.ID
				batch.Unlocks = append(batch.Unlocks, store.UnlockRecord{
					RegionID:   next.ID,
					UnlockedAt: now,
					Source:     store.UnlockCascade,
				})
			}
		}
	}

	for _, id := range order {
		st := working[id]
		batch.Progress = append(batch.Progress, store.ProgressRecord{
			QuestionID: id,
			RegionID:   rs.region.ID,
			Interval:   st.IntervalDays,
			NextReview: st.NextReview,
			Mastered:   st.Mastered,
		})
	}

	if err := e.cfg.Store.SaveBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	for _, id := range order {
		rs.byID[id].review = working[id]
	}
	rs.mastered = mastered
	if unlock != nil {
		unlock.unlocked = true
	}
	return result, nil
}
