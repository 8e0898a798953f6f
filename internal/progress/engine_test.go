package progress

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/region"
	"github.com/abhisek/mapquiz/internal/spacedrep"
	"github.com/abhisek/mapquiz/internal/store"
)

// memStore is an in-memory Store that can be told to fail.
type memStore struct {
	mu       sync.Mutex
	progress map[string]store.ProgressRecord
	unlocks  map[string]store.UnlockRecord
	batches  []store.Batch
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		progress: make(map[string]store.ProgressRecord),
		unlocks:  make(map[string]store.UnlockRecord),
	}
}

func (m *memStore) LoadProgress(context.Context) (map[string]store.ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]store.ProgressRecord, len(m.progress))
	for k, v := range m.progress {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) LoadUnlocks(context.Context) (map[string]store.UnlockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]store.UnlockRecord, len(m.unlocks))
	for k, v := range m.unlocks {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) SaveBatch(_ context.Context, b store.Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, p := range b.Progress {
		m.progress[p.QuestionID] = p
	}
	for _, u := range b.Unlocks {
		if _, ok := m.unlocks[u.RegionID]; !ok {
			m.unlocks[u.RegionID] = u
		}
	}
	m.batches = append(m.batches, b)
	return nil
}

type fixture struct {
	engine *Engine
	store  *memStore
	now    time.Time
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

// threeRegions is a chain of MA-01 (2 questions), MA-02 (4) and MA-03 (1).
func threeRegions(t *testing.T) (*region.Chain, catalog.Loader) {
	t.Helper()
	chain, err := region.NewChain([]region.Region{
		{ID: "MA-01", DisplayName: "one", OrderIndex: 0},
		{ID: "MA-02", DisplayName: "two", OrderIndex: 1},
		{ID: "MA-03", DisplayName: "three", OrderIndex: 2},
	})
	require.NoError(t, err)

	q := func(id, regionID, answer string) map[string]any {
		return map[string]any{
			"id": id, "region_id": regionID, "question": id + "?",
			"options": []string{"a", "b", "c", "d"}, "answer": answer,
		}
	}
	entries := []map[string]any{
		q("q1", "MA-01", "a"),
		q("q2", "MA-01", "b"),
		q("r1", "MA-02", "a"),
		q("r2", "MA-02", "a"),
		q("r3", "MA-02", "a"),
		q("r4", "MA-02", "a"),
		q("s1", "MA-03", "c"),
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return chain, catalog.Loader{Path: path, Regions: chain}
}

func newFixture(t *testing.T, ms *memStore, policy spacedrep.MasteryPolicy) *fixture {
	t.Helper()
	chain, loader := threeRegions(t)
	f := &fixture{store: ms, now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	e, err := New(Config{
		Regions: chain,
		Catalog: loader,
		Store:   ms,
		Policy:  policy,
		Now:     func() time.Time { return f.now },
	})
	require.NoError(t, err)
	require.NoError(t, e.Initialize(context.Background()))
	f.engine = e
	return f
}

func ids(qs []QuestionView) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestNewRequiresCollaborators(t *testing.T) {
	chain, loader := threeRegions(t)
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no regions", Config{Catalog: loader, Store: newMemStore()}},
		{"no catalog", Config{Regions: chain, Store: newMemStore()}},
		{"no store", Config{Regions: chain, Catalog: loader}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("New() error = nil, want error")
			}
		})
	}
}

func TestNotReadyBeforeInitialize(t *testing.T) {
	chain, loader := threeRegions(t)
	e, err := New(Config{Regions: chain, Catalog: loader, Store: newMemStore()})
	require.NoError(t, err)

	_, err = e.DueQuestions("MA-01")
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = e.GradeAnswers(context.Background(), "MA-01", nil)
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = e.StatusMap()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, e.ForceUnlockAll(context.Background()), ErrNotReady)
}

func TestInitializeIsIdempotent(t *testing.T) {
	f := newFixture(t, newMemStore(), spacedrep.FirstCorrectPass)
	ctx := context.Background()

	_, err := f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q1", Submitted: "a"}})
	require.NoError(t, err)

	require.NoError(t, f.engine.Initialize(ctx))
	due, err := f.engine.DueQuestions("MA-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"q2"}, ids(due))
}

func TestTwoQuestionRegionScenario(t *testing.T) {
	f := newFixture(t, newMemStore(), spacedrep.FirstCorrectPass)
	ctx := context.Background()

	due, err := f.engine.DueQuestions("MA-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, ids(due))
	raw, err := json.Marshal(due)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"answer"`)

	res, err := f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q1", Submitted: "a"}})
	require.NoError(t, err)
	assert.Equal(t, []AnswerResult{{ID: "q1", Correct: true, CorrectAnswer: "a"}}, res.Results)
	assert.InDelta(t, 0.5, res.MasteryPercent, 1e-9)
	assert.Empty(t, res.UnlockedRegion)

	res, err = f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q2", Submitted: "b"}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.MasteryPercent, 1e-9)
	assert.Equal(t, "MA-02", res.UnlockedRegion)

	sums, err := f.engine.Summaries()
	require.NoError(t, err)
	assert.Equal(t, 2, sums[0].Mastered)
	assert.True(t, sums[1].Unlocked)

	// The unlock is reported exactly once.
	res, err = f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q2", Submitted: "b"}})
	require.NoError(t, err)
	assert.Empty(t, res.UnlockedRegion)
}

func TestIncorrectAnswerResetsSchedule(t *testing.T) {
	ctx := context.Background()
	for _, prior := range []int{0, 1, 4, 32} {
		ms := newMemStore()
		at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		ms.progress["r1"] = store.ProgressRecord{
			QuestionID: "r1", RegionID: "MA-02", Interval: prior, NextReview: at,
		}
		ms.unlocks["MA-02"] = store.UnlockRecord{RegionID: "MA-02", Source: store.UnlockAdmin}
		f := newFixture(t, ms, spacedrep.SustainedRecall)

		res, err := f.engine.GradeAnswers(ctx, "MA-02", []Answer{{QuestionID: "r1", Submitted: "wrong"}})
		require.NoError(t, err)
		assert.False(t, res.Results[0].Correct)

		rec := ms.progress["r1"]
		if rec.Interval != 0 {
			t.Errorf("prior %d: interval = %d, want 0", prior, rec.Interval)
		}
		if !rec.NextReview.Equal(f.now) {
			t.Errorf("prior %d: next_review = %v, want %v", prior, rec.NextReview, f.now)
		}
	}
}

func TestCorrectAnswerDoublesInterval(t *testing.T) {
	ms := newMemStore()
	f := newFixture(t, ms, spacedrep.SustainedRecall)
	ctx := context.Background()

	want := []int{1, 2, 4, 8, 16, 32}
	for i, w := range want {
		_, err := f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q1", Submitted: "a"}})
		require.NoError(t, err)
		rec := ms.progress["q1"]
		if rec.Interval != w {
			t.Errorf("step %d: interval = %d, want %d", i, rec.Interval, w)
		}
		if !rec.NextReview.Equal(f.now.AddDate(0, 0, w)) {
			t.Errorf("step %d: next_review = %v, want %v", i, rec.NextReview, f.now.AddDate(0, 0, w))
		}
		wantMastered := w >= 21
		if rec.Mastered != wantMastered {
			t.Errorf("step %d: mastered = %v, want %v", i, rec.Mastered, wantMastered)
		}
	}
}

func TestMasteredCountIncrementsOnce(t *testing.T) {
	f := newFixture(t, newMemStore(), spacedrep.FirstCorrectPass)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q1", Submitted: "a"}})
		require.NoError(t, err)
		sums, err := f.engine.Summaries()
		require.NoError(t, err)
		if sums[0].Mastered != 1 {
			t.Errorf("after %d correct answers: mastered = %d, want 1", i+1, sums[0].Mastered)
		}
	}

	// A wrong answer never clears mastery.
	_, err := f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q1", Submitted: "z"}})
	require.NoError(t, err)
	sums, err := f.engine.Summaries()
	require.NoError(t, err)
	assert.Equal(t, 1, sums[0].Mastered)
}

func TestDuplicateAnswersInOneCall(t *testing.T) {
	ms := newMemStore()
	f := newFixture(t, ms, spacedrep.FirstCorrectPass)

	res, err := f.engine.GradeAnswers(context.Background(), "MA-01", []Answer{
		{QuestionID: "q1", Submitted: "a"},
		{QuestionID: "q1", Submitted: "a"},
	})
	require.NoError(t, err)
	assert.Len(t, res.Results, 2)
	assert.InDelta(t, 0.5, res.MasteryPercent, 1e-9)
	assert.Equal(t, 2, ms.progress["q1"].Interval)
	require.Len(t, ms.batches, 1)
	assert.Len(t, ms.batches[0].Progress, 1)
	assert.Len(t, ms.batches[0].Answers, 2)
}

func TestUnknownQuestionIsSkipped(t *testing.T) {
	ms := newMemStore()
	f := newFixture(t, ms, spacedrep.FirstCorrectPass)

	res, err := f.engine.GradeAnswers(context.Background(), "MA-01", []Answer{
		{QuestionID: "nope", Submitted: "a"},
		{QuestionID: "r1", Submitted: "a"}, // belongs to MA-02
		{QuestionID: "q1", Submitted: "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, []AnswerResult{{ID: "q1", Correct: true, CorrectAnswer: "a"}}, res.Results)
	_, stored := ms.progress["nope"]
	assert.False(t, stored)
	_, stored = ms.progress["r1"]
	assert.False(t, stored)
}

func TestExactMatching(t *testing.T) {
	f := newFixture(t, newMemStore(), spacedrep.FirstCorrectPass)

	res, err := f.engine.GradeAnswers(context.Background(), "MA-01", []Answer{
		{QuestionID: "q1", Submitted: "A"},
		{QuestionID: "q2", Submitted: " b"},
	})
	require.NoError(t, err)
	for _, r := range res.Results {
		assert.False(t, r.Correct, "answer for %s should not match", r.ID)
	}
}

func TestDueQuestionsErrors(t *testing.T) {
	f := newFixture(t, newMemStore(), spacedrep.FirstCorrectPass)

	_, err := f.engine.DueQuestions("MA-02")
	assert.ErrorIs(t, err, ErrRegionLocked)
	assert.ErrorContains(t, err, "master MA-01 first")

	_, err = f.engine.DueQuestions("XX-00")
	assert.ErrorIs(t, err, ErrRegionNotFound)

	_, err = f.engine.GradeAnswers(context.Background(), "XX-00", nil)
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestDueQuestionsExcludesMasteredAndFuture(t *testing.T) {
	ms := newMemStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ms.unlocks["MA-02"] = store.UnlockRecord{RegionID: "MA-02", Source: store.UnlockAdmin}
	ms.progress["r1"] = store.ProgressRecord{QuestionID: "r1", Interval: 1, NextReview: now, Mastered: true}
	ms.progress["r2"] = store.ProgressRecord{QuestionID: "r2", Interval: 2, NextReview: now.Add(time.Second)}
	ms.progress["r3"] = store.ProgressRecord{QuestionID: "r3", Interval: 2, NextReview: now}
	f := newFixture(t, ms, spacedrep.SustainedRecall)

	due, err := f.engine.DueQuestions("MA-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"r3", "r4"}, ids(due))

	f.advance(time.Second)
	due, err = f.engine.DueQuestions("MA-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r3", "r4"}, ids(due))
}

func TestSummariesReportNextReview(t *testing.T) {
	ms := newMemStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ms.progress["q1"] = store.ProgressRecord{QuestionID: "q1", Interval: 4, NextReview: now.AddDate(0, 0, 4)}
	ms.progress["q2"] = store.ProgressRecord{QuestionID: "q2", Interval: 2, NextReview: now.Add(36 * time.Hour)}
	f := newFixture(t, ms, spacedrep.SustainedRecall)

	sums, err := f.engine.Summaries()
	require.NoError(t, err)
	assert.Equal(t, 0, sums[0].Due)
	assert.Equal(t, 2, sums[0].NextReviewDays, "36h rounds up to 2 days")
	assert.Equal(t, 0, sums[1].NextReviewDays, "locked region with everything due")

	f.advance(36 * time.Hour)
	sums, err = f.engine.Summaries()
	require.NoError(t, err)
	assert.Equal(t, 1, sums[0].Due)
	assert.Equal(t, 0, sums[0].NextReviewDays, "no wait while something is due")
}

func TestDueQuestionsBatchSize(t *testing.T) {
	chain, err := region.NewChain([]region.Region{{ID: "MA-01", DisplayName: "one"}})
	require.NoError(t, err)

	var entries []map[string]any
	for i := 0; i < 10; i++ {
		entries = append(entries, map[string]any{
			"id": string(rune('a' + i)), "region_id": "MA-01", "question": "?", "answer": "x",
		})
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	e, err := New(Config{Regions: chain, Catalog: catalog.Loader{Path: path, Regions: chain}, Store: newMemStore()})
	require.NoError(t, err)
	require.NoError(t, e.Initialize(context.Background()))

	due, err := e.DueQuestions("MA-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, ids(due))
}

func TestMasteryPercentWithEmptyRegion(t *testing.T) {
	chain, err := region.NewChain([]region.Region{
		{ID: "MA-01", DisplayName: "one", OrderIndex: 0},
		{ID: "ZZ-99", DisplayName: "empty", OrderIndex: 1},
	})
	require.NoError(t, err)
	e, err := New(Config{Regions: chain, Catalog: catalog.Loader{Regions: chain}, Store: newMemStore()})
	require.NoError(t, err)
	require.NoError(t, e.Initialize(context.Background()))
	require.NoError(t, e.ForceUnlockAll(context.Background()))

	res, err := e.GradeAnswers(context.Background(), "ZZ-99", []Answer{{QuestionID: "x", Submitted: "y"}})
	require.NoError(t, err)
	assert.Zero(t, res.MasteryPercent)
	assert.Empty(t, res.Results)

	status, err := e.StatusMap()
	require.NoError(t, err)
	assert.Equal(t, RegionStatus{Status: mastery.StatusMastered, Percent: 0}, status["ZZ-99"],
		"0 mastered >= 0 total * 0.75")
}

func TestUnlockAtLoadRequiresThreshold(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		masteredInR2 []string
		wantMA03     bool
	}{
		{"none mastered", nil, false},
		{"two of four", []string{"r1", "r2"}, false},
		{"three of four", []string{"r1", "r2", "r3"}, true},
		{"all four", []string{"r1", "r2", "r3", "r4"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := newMemStore()
			ms.unlocks["MA-02"] = store.UnlockRecord{RegionID: "MA-02", Source: store.UnlockCascade}
			for _, id := range tt.masteredInR2 {
				ms.progress[id] = store.ProgressRecord{QuestionID: id, Interval: 1, NextReview: now, Mastered: true}
			}
			f := newFixture(t, ms, spacedrep.FirstCorrectPass)

			sums, err := f.engine.Summaries()
			require.NoError(t, err)
			if sums[2].Unlocked != tt.wantMA03 {
				t.Errorf("MA-03 unlocked = %v, want %v", sums[2].Unlocked, tt.wantMA03)
			}
		})
	}
}

func TestCascadeUnlockSurvivesReset(t *testing.T) {
	ms := newMemStore()
	f := newFixture(t, ms, spacedrep.FirstCorrectPass)
	ctx := context.Background()

	res, err := f.engine.GradeAnswers(ctx, "MA-01", []Answer{
		{QuestionID: "q1", Submitted: "a"},
		{QuestionID: "q2", Submitted: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "MA-02", res.UnlockedRegion)

	// Drop a mastered row so MA-01 falls below the threshold; the recorded
	// cascade keeps MA-02 open.
	delete(ms.progress, "q2")
	require.NoError(t, f.engine.Reset(ctx))

	status, err := f.engine.StatusMap()
	require.NoError(t, err)
	assert.Equal(t, mastery.StatusUnlocked, status["MA-01"].Status)
	assert.Equal(t, 50.0, status["MA-01"].Percent)
	assert.Equal(t, mastery.StatusUnlocked, status["MA-02"].Status)
	assert.Equal(t, mastery.StatusLocked, status["MA-03"].Status)
}

func TestStatusMap(t *testing.T) {
	ms := newMemStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"q1", "q2", "r1"} {
		ms.progress[id] = store.ProgressRecord{QuestionID: id, Interval: 1, NextReview: now, Mastered: true}
	}
	f := newFixture(t, ms, spacedrep.FirstCorrectPass)

	status, err := f.engine.StatusMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]RegionStatus{
		"MA-01": {Status: mastery.StatusMastered, Percent: 100},
		"MA-02": {Status: mastery.StatusUnlocked, Percent: 25},
		"MA-03": {Status: mastery.StatusLocked, Percent: 0},
	}, status)
}

func TestForceUnlockAll(t *testing.T) {
	ms := newMemStore()
	f := newFixture(t, ms, spacedrep.FirstCorrectPass)
	ctx := context.Background()

	require.NoError(t, f.engine.ForceUnlockAll(ctx))
	for _, id := range []string{"MA-01", "MA-02", "MA-03"} {
		_, err := f.engine.DueQuestions(id)
		assert.NoError(t, err, "region %s", id)
	}
	assert.Equal(t, store.UnlockAdmin, ms.unlocks["MA-02"].Source)
	assert.Equal(t, store.UnlockAdmin, ms.unlocks["MA-03"].Source)
	_, recorded := ms.unlocks["MA-01"]
	assert.False(t, recorded, "the first region needs no override")

	sums, err := f.engine.Summaries()
	require.NoError(t, err)
	for _, s := range sums {
		assert.Zero(t, s.Mastered, "mastery untouched for %s", s.Region.ID)
	}

	// Nothing left to unlock: no further writes.
	batches := len(ms.batches)
	require.NoError(t, f.engine.ForceUnlockAll(ctx))
	assert.Len(t, ms.batches, batches)
}

func TestPersistenceFailureLeavesStateUntouched(t *testing.T) {
	ms := newMemStore()
	f := newFixture(t, ms, spacedrep.FirstCorrectPass)
	ctx := context.Background()

	_, err := f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q1", Submitted: "a"}})
	require.NoError(t, err)

	boom := errors.New("disk full")
	ms.failWith = boom
	_, err = f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q2", Submitted: "b"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, f.engine.ForceUnlockAll(ctx), ErrPersistence)

	sums, err := f.engine.Summaries()
	require.NoError(t, err)
	assert.Equal(t, 1, sums[0].Mastered)
	assert.False(t, sums[1].Unlocked)
	due, err := f.engine.DueQuestions("MA-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"q2"}, ids(due))

	// Retrying after the store recovers behaves as if the failure never
	// happened.
	ms.failWith = nil
	res, err := f.engine.GradeAnswers(ctx, "MA-01", []Answer{{QuestionID: "q2", Submitted: "b"}})
	require.NoError(t, err)
	assert.Equal(t, "MA-02", res.UnlockedRegion)
}

func TestTransitionsReported(t *testing.T) {
	f := newFixture(t, newMemStore(), spacedrep.SustainedRecall)

	res, err := f.engine.GradeAnswers(context.Background(), "MA-01", []Answer{
		{QuestionID: "q1", Submitted: "a"},
		{QuestionID: "q2", Submitted: "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, []mastery.StateTransition{
		{QuestionID: "q1", From: mastery.StateNew, To: mastery.StateLearning, Trigger: "correct"},
	}, res.Transitions)

	tr, ok := res.TransitionOf("q1")
	require.True(t, ok)
	assert.Equal(t, "learning", tr.Label())
	_, ok = res.TransitionOf("q2")
	assert.False(t, ok, "a wrong answer on a new question changes nothing")
	assert.Equal(t, 1, res.CountTransitions(mastery.StateLearning))
	assert.Zero(t, res.CountTransitions(mastery.StateMastered))
}

func TestConcurrentGradingCountsOnce(t *testing.T) {
	ms := newMemStore()
	f := newFixture(t, ms, spacedrep.FirstCorrectPass)
	ctx := context.Background()

	var wg sync.WaitGroup
	unlocked := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.engine.GradeAnswers(ctx, "MA-01", []Answer{
				{QuestionID: "q1", Submitted: "a"},
				{QuestionID: "q2", Submitted: "b"},
			})
			if err != nil {
				t.Errorf("grade: %v", err)
				return
			}
			if res.UnlockedRegion != "" {
				unlocked <- res.UnlockedRegion
			}
		}()
	}
	wg.Wait()
	close(unlocked)

	var got []string
	for id := range unlocked {
		got = append(got, id)
	}
	assert.Equal(t, []string{"MA-02"}, got)

	sums, err := f.engine.Summaries()
	require.NoError(t, err)
	assert.Equal(t, 2, sums[0].Mastered)
}

func TestQuestionsAndDueTotal(t *testing.T) {
	f := newFixture(t, newMemStore(), spacedrep.FirstCorrectPass)

	qs, err := f.engine.Questions()
	require.NoError(t, err)
	require.Len(t, qs, 7)
	assert.Equal(t, "q1", qs[0].ID)
	assert.Equal(t, "a", qs[0].Answer)

	n, err := f.engine.DueTotal()
	require.NoError(t, err)
	assert.Equal(t, 2, n, "only MA-01 is unlocked")

	_, err = f.engine.GradeAnswers(context.Background(), "MA-01", []Answer{{QuestionID: "q1", Submitted: "a"}})
	require.NoError(t, err)
	n, err = f.engine.DueTotal()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
