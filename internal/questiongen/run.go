package questiongen

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/region"
)

// Result is the outcome of a Run.
type Result struct {
	// Questions holds kept and generated questions grouped by region in
	// the order the regions were given.
	Questions []catalog.Question

	// Generated counts new questions per region.
	Generated map[string]int

	// Failed holds the error for each region that produced nothing.
	Failed map[string]error
}

// Run generates questions for each region in order, pausing cfg.Pace
// between regions. Existing questions are kept ahead of new ones, listed
// in the prompt for deduplication and used to pick the next free ID. A
// failing region is logged and skipped. Run returns an error only when
// ctx ends, together with the partial result.
func Run(ctx context.Context, gen Generator, regions []region.Region, existing []catalog.Question, cfg Config) (*Result, error) {
	byRegion := make(map[string][]catalog.Question)
	for _, q := range existing {
		byRegion[q.RegionID] = append(byRegion[q.RegionID], q)
	}

	res := &Result{Generated: make(map[string]int), Failed: make(map[string]error)}
	for i, r := range regions {
		if i > 0 && cfg.Pace > 0 {
			select {
			case <-ctx.Done():
				return res.finish(regions[i:], byRegion), ctx.Err()
			case <-time.After(cfg.Pace):
			}
		}
		if err := ctx.Err(); err != nil {
			return res.finish(regions[i:], byRegion), err
		}

		kept := byRegion[r.ID]
		input := GenerateInput{
			Region:         r,
			Count:          cfg.Count,
			PriorQuestions: prompts(kept),
			FirstIndex:     nextIndex(r.ID, kept),
		}

		qs, err := generateOne(ctx, gen, input, cfg.Timeout)
		if err != nil {
			if ctx.Err() != nil {
				return res.finish(regions[i:], byRegion), ctx.Err()
			}
			log.Printf("questiongen: %s skipped: %v", r.ID, err)
			res.Failed[r.ID] = err
		} else {
			log.Printf("questiongen: %s: %d questions", r.ID, len(qs))
			res.Generated[r.ID] = len(qs)
		}
		res.Questions = append(res.Questions, kept...)
		res.Questions = append(res.Questions, qs...)
		delete(byRegion, r.ID)
	}
	return res.finish(nil, byRegion), nil
}

// finish appends the kept questions of regions that were never reached,
// then those of regions that were not requested, by region ID.
func (res *Result) finish(rest []region.Region, byRegion map[string][]catalog.Question) *Result {
	for _, r := range rest {
		res.Questions = append(res.Questions, byRegion[r.ID]...)
		delete(byRegion, r.ID)
	}
	for _, id := range slices.Sorted(maps.Keys(byRegion)) {
		res.Questions = append(res.Questions, byRegion[id]...)
	}
	return res
}

func generateOne(ctx context.Context, gen Generator, input GenerateInput, timeout time.Duration) ([]catalog.Question, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	qs, err := gen.Generate(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", input.Region.ID, err)
	}
	return qs, nil
}

func prompts(qs []catalog.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Prompt
	}
	return out
}

// nextIndex returns one past the highest <region>_Q<n> suffix in qs, or
// len(qs)+1 when that is larger.
func nextIndex(regionID string, qs []catalog.Question) int {
	highest := len(qs)
	prefix := regionID + "_Q"
	for _, q := range qs {
		if n, err := strconv.Atoi(strings.TrimPrefix(q.ID, prefix)); err == nil && strings.HasPrefix(q.ID, prefix) && n > highest {
			highest = n
		}
	}
	return highest + 1
}
