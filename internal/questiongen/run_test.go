package questiongen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/region"
)

// fakeGenerator returns one question per call, numbered from FirstIndex,
// and fails for regions listed in fail.
type fakeGenerator struct {
	mu     sync.Mutex
	fail   map[string]bool
	inputs []GenerateInput
	block  bool
}

func (f *fakeGenerator) Generate(ctx context.Context, input GenerateInput) ([]catalog.Question, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.fail[input.Region.ID] {
		return nil, errors.New("provider down")
	}
	id := input.Region.ID
	return []catalog.Question{{
		ID:       fmt.Sprintf("%s_Q%d", id, input.FirstIndex),
		RegionID: id,
		Prompt:   "new " + id,
		Options:  []string{"a", "b", "c", "d"},
		Answer:   "a",
	}}, nil
}

func runRegions() []region.Region {
	return []region.Region{
		{ID: "MA-01", DisplayName: "north", OrderIndex: 0},
		{ID: "MA-02", DisplayName: "east", OrderIndex: 1},
		{ID: "MA-03", DisplayName: "centre", OrderIndex: 2},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Count = 1
	cfg.Pace = 0
	cfg.Timeout = time.Second
	return cfg
}

func ids(qs []catalog.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestRun_SkipsFailingRegion(t *testing.T) {
	gen := &fakeGenerator{fail: map[string]bool{"MA-02": true}}

	res, err := Run(context.Background(), gen, runRegions(), nil, testConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"MA-01_Q1", "MA-03_Q1"}, ids(res.Questions))
	assert.Equal(t, map[string]int{"MA-01": 1, "MA-03": 1}, res.Generated)
	require.Contains(t, res.Failed, "MA-02")
	assert.Len(t, gen.inputs, 3)
}

func TestRun_MergesExisting(t *testing.T) {
	existing := []catalog.Question{
		{ID: "MA-02_Q3", RegionID: "MA-02", Prompt: "old east"},
		{ID: "MA-01_Q1", RegionID: "MA-01", Prompt: "old north"},
		{ID: "XX-99_Q1", RegionID: "XX-99", Prompt: "elsewhere"},
	}
	gen := &fakeGenerator{}

	res, err := Run(context.Background(), gen, runRegions(), existing, testConfig())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"MA-01_Q1", "MA-01_Q2", "MA-02_Q3", "MA-02_Q4", "MA-03_Q1", "XX-99_Q1"},
		ids(res.Questions))
	assert.Equal(t, []string{"old north"}, gen.inputs[0].PriorQuestions)
	assert.Equal(t, 4, gen.inputs[1].FirstIndex)
	assert.Empty(t, gen.inputs[2].PriorQuestions)
}

func TestRun_CancelledKeepsExisting(t *testing.T) {
	existing := []catalog.Question{{ID: "MA-03_Q1", RegionID: "MA-03", Prompt: "old"}}
	gen := &fakeGenerator{block: true}
	cfg := testConfig()
	cfg.Timeout = 0

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	res, err := Run(ctx, gen, runRegions(), existing, cfg)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"MA-03_Q1"}, ids(res.Questions))
	assert.Len(t, gen.inputs, 1)
}

func TestRun_PerRegionTimeout(t *testing.T) {
	gen := &fakeGenerator{block: true}
	cfg := testConfig()
	cfg.Timeout = 10 * time.Millisecond

	res, err := Run(context.Background(), gen, runRegions()[:2], nil, cfg)
	require.NoError(t, err)
	assert.Len(t, res.Failed, 2)
	assert.ErrorIs(t, res.Failed["MA-01"], context.DeadlineExceeded)
}

func TestNextIndex(t *testing.T) {
	qs := []catalog.Question{{ID: "MA-01_Q2"}, {ID: "MA-01_Q9"}, {ID: "custom"}}
	assert.Equal(t, 10, nextIndex("MA-01", qs))
	assert.Equal(t, 4, nextIndex("MA-01", []catalog.Question{{ID: "a"}, {ID: "b"}, {ID: "c"}}))
	assert.Equal(t, 1, nextIndex("MA-01", nil))
}
