package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/region"
	"github.com/abhisek/mapquiz/internal/spacedrep"
	"github.com/abhisek/mapquiz/internal/store"
)

// Config wires an Engine to its collaborators.
type Config struct {
	Regions *region.Chain
	Catalog CatalogSource
	Store   Store

	// Policy decides when a correct answer masters a question.
	// Zero value means spacedrep.DefaultPolicy.
	Policy spacedrep.MasteryPolicy

	// BatchSize caps DueQuestions. Zero means DefaultBatchSize.
	BatchSize int

	// Now is the clock. Nil means time.Now.
	Now func() time.Time

	// NewBatchID names each grading batch. Nil means uuid.NewString.
	NewBatchID func() string
}

// Engine owns the in-memory progress of every region. All methods are
// safe for concurrent use; a single mutex guards the whole state, so a
// grading call's read, compare and unlock happen in one critical section.
type Engine struct {
	cfg Config

	mu      sync.Mutex
	ready   bool
	regions map[string]*regionState
}

type questionState struct {
	question catalog.Question
	review   spacedrep.ReviewState
}

type regionState struct {
	region    region.Region
	unlocked  bool
	questions []*questionState
	byID      map[string]*questionState
	mastered  int
}

func (r *regionState) tally() mastery.Tally {
	return mastery.Tally{Mastered: r.mastered, Total: len(r.questions)}
}

// New creates an Engine. Call Initialize before use.
func New(cfg Config) (*Engine, error) {
	if cfg.Regions == nil {
		return nil, errors.New("progress: no regions configured")
	}
	if cfg.Catalog == nil {
		return nil, errors.New("progress: no catalog configured")
	}
	if cfg.Store == nil {
		return nil, errors.New("progress: no store configured")
	}
	if cfg.Policy.Name == "" {
		cfg.Policy = spacedrep.DefaultPolicy
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewBatchID == nil {
		cfg.NewBatchID = uuid.NewString
	}
	return &Engine{cfg: cfg}, nil
}

// Policy returns the mastery policy in effect.
func (e *Engine) Policy() spacedrep.MasteryPolicy {
	return e.cfg.Policy
}

// Initialize builds the in-memory state from the catalog and the store.
// It is a no-op once the engine is ready.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ready {
		return nil
	}
	return e.rebuild(ctx)
}

// Reset discards in-memory state and rebuilds it from the catalog and the
// store. On failure the previous state is kept.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.rebuild(ctx)
}

func (e *Engine) rebuild(ctx context.Context) error {
	regions, err := e.load(ctx)
	if err != nil {
		return err
	}
	e.regions = regions
	e.ready = true
	return nil
}

// load merges catalog content with persisted scheduling rows and computes
// the unlock state of every region in chain order.
func (e *Engine) load(ctx context.Context) (map[string]*regionState, error) {
	cat, err := e.cfg.Catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	rows, err := e.cfg.Store.LoadProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	unlocks, err := e.cfg.Store.LoadUnlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load unlocks: %w", err)
	}

	now := e.cfg.Now()
	out := make(map[string]*regionState, e.cfg.Regions.Len())
	var prev *regionState
	for _, r := range e.cfg.Regions.All() {
		rs := &regionState{region: r, byID: make(map[string]*questionState)}
		for _, q := range cat.Region(r.ID) {
			qs := &questionState{question: q, review: spacedrep.NewReviewState(now)}
			if row, ok := rows[q.ID]; ok {
				qs.review = spacedrep.ReviewState{
					IntervalDays: max(row.Interval, 0),
					NextReview:   row.NextReview,
					Mastered:     row.Mastered,
				}
			}
			if qs.review.Mastered {
				rs.mastered++
			}
			rs.questions = append(rs.questions, qs)
			rs.byID[q.ID] = qs
		}

		_, explicit := unlocks[r.ID]
		switch {
		case e.cfg.Regions.IsFirst(r.ID):
			rs.unlocked = true
		case explicit:
			rs.unlocked = true
		default:
			rs.unlocked = prev.tally().MeetsThreshold()
		}

		out[r.ID] = rs
		prev = rs
	}
	return out, nil
}

// lookup returns the state of a region. Callers hold e.mu.
func (e *Engine) lookup(regionID string) (*regionState, error) {
	if !e.ready {
		return nil, ErrNotReady
	}
	rs, ok := e.regions[regionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRegionNotFound, regionID)
	}
	return rs, nil
}

// ListRegions returns the regions in unlock order.
func (e *Engine) ListRegions() []region.Region {
	return e.cfg.Regions.All()
}

// DueQuestions returns up to the batch size of questions in the region that
// are unmastered and due now, in catalog order. Answers are never included.
func (e *Engine) DueQuestions(regionID string) ([]QuestionView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rs, err := e.lookup(regionID)
	if err != nil {
		return nil, err
	}
	if !rs.unlocked {
		if p, ok := e.cfg.Regions.Prev(regionID); ok {
			return nil, fmt.Errorf("%w: %q, master %s first", ErrRegionLocked, regionID, p.ID)
		}
		return nil, fmt.Errorf("%w: %q", ErrRegionLocked, regionID)
	}

	now := e.cfg.Now()
	due := make([]QuestionView, 0, e.cfg.BatchSize)
	for _, qs := range rs.questions {
		if len(due) == e.cfg.BatchSize {
			break
		}
		if !qs.review.IsDue(now) {
			continue
		}
		due = append(due, QuestionView{
			ID:       qs.question.ID,
			RegionID: qs.question.RegionID,
			Prompt:   qs.question.Prompt,
			Options:  append([]string(nil), qs.question.Options...),
		})
	}
	return due, nil
}

// StatusMap reports every region's status and mastery percentage.
func (e *Engine) StatusMap() (map[string]RegionStatus, error) {
	summaries, err := e.Summaries()
	if err != nil {
		return nil, err
	}
	out := make(map[string]RegionStatus, len(summaries))
	for _, s := range summaries {
		out[s.Region.ID] = RegionStatus{Status: s.Status, Percent: s.Percent()}
	}
	return out, nil
}

// Summaries returns per-region progress in unlock order.
func (e *Engine) Summaries() ([]RegionSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return nil, ErrNotReady
	}

	now := e.cfg.Now()
	out := make([]RegionSummary, 0, len(e.regions))
	for _, r := range e.cfg.Regions.All() {
		rs := e.regions[r.ID]
		due, next := 0, 0
		for _, qs := range rs.questions {
			switch {
			case qs.review.Mastered:
			case qs.review.IsDue(now):
				due++
			default:
				if d := qs.review.DaysUntilReview(now); next == 0 || d < next {
					next = d
				}
			}
		}
		if due > 0 {
			next = 0
		}
		t := rs.tally()
		out = append(out, RegionSummary{
			Region:         r,
			Unlocked:       rs.unlocked,
			Status:         mastery.StatusFor(rs.unlocked, t),
			Mastered:       t.Mastered,
			Total:          t.Total,
			Due:            due,
			NextReviewDays: next,
		})
	}
	return out, nil
}

// ForceUnlockAll unlocks every region and records the override so it
// survives a restart. Mastery is untouched.
func (e *Engine) ForceUnlockAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return ErrNotReady
	}

	now := e.cfg.Now()
	var locked []*regionState
	batch := store.Batch{ID: e.cfg.NewBatchID(), At: now}
	for _, r := range e.cfg.Regions.All() {
		rs := e.regions[r.ID]
		if rs.unlocked {
			continue
		}
		locked = append(locked, rs)
		batch.Unlocks = append(batch.Unlocks, store.UnlockRecord{
			RegionID:   r.ID,
			UnlockedAt: now,
			Source:     store.UnlockAdmin,
		})
	}
	if len(locked) == 0 {
		return nil
	}

	if err := e.cfg.Store.SaveBatch(ctx, batch); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	for _, rs := range locked {
		rs.unlocked = true
	}
	return nil
}

// Questions returns the loaded catalog content of every region in unlock
// order, answers included. Scheduling fields are not part of the result.
func (e *Engine) Questions() ([]catalog.Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return nil, ErrNotReady
	}
	var out []catalog.Question
	for _, r := range e.cfg.Regions.All() {
		for _, qs := range e.regions[r.ID].questions {
			out = append(out, qs.question.Clone())
		}
	}
	return out, nil
}

// DueTotal counts due questions across unlocked regions.
func (e *Engine) DueTotal() (int, error) {
	summaries, err := e.Summaries()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range summaries {
		if s.Unlocked {
			n += s.Due
		}
	}
	return n, nil
}
