package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/progress"
	"github.com/abhisek/mapquiz/internal/region"
	"github.com/abhisek/mapquiz/internal/spacedrep"
	"github.com/abhisek/mapquiz/internal/store"
)

func testCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	for _, name := range []string{"db", "db-driver", "catalog", "mastery-policy"} {
		c.Flags().String(name, "", "")
	}
	for k, v := range flags {
		require.NoError(t, c.Flags().Set(k, v))
	}
	return c
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"MAPQUIZ_DB", "MAPQUIZ_DB_DRIVER", "MAPQUIZ_CATALOG", "MAPQUIZ_MASTERY_POLICY"} {
		t.Setenv(k, "")
	}
}

func TestResolveSettings_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	s, err := resolveSettings(testCmd(t, nil))
	require.NoError(t, err)
	assert.Equal(t, store.DriverSQLite, s.Driver)
	assert.Equal(t, defaultCatalogPath, s.Catalog)
	assert.Equal(t, spacedrep.DefaultPolicy, s.Policy)
	assert.Equal(t, "mapquiz.db", filepath.Base(s.DSN))
}

func TestResolveSettings_FlagBeatsEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("MAPQUIZ_CATALOG", "env.json")
	t.Setenv("MAPQUIZ_MASTERY_POLICY", "first-pass")

	s, err := resolveSettings(testCmd(t, map[string]string{
		"catalog":        "flag.json",
		"mastery-policy": "interval-21",
		"db":             filepath.Join(dir, "nested", "q.db"),
	}))
	require.NoError(t, err)
	assert.Equal(t, "flag.json", s.Catalog)
	assert.Equal(t, spacedrep.SustainedRecall, s.Policy)
	assert.DirExists(t, filepath.Join(dir, "nested"))
}

func TestResolveSettings_EnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAPQUIZ_DB_DRIVER", "postgres")
	t.Setenv("MAPQUIZ_DB", "postgres://localhost/mapquiz")
	t.Setenv("MAPQUIZ_CATALOG", "env.json")

	s, err := resolveSettings(testCmd(t, nil))
	require.NoError(t, err)
	assert.Equal(t, store.DriverPostgres, s.Driver)
	assert.Equal(t, "postgres://localhost/mapquiz", s.DSN)
	assert.Equal(t, "env.json", s.Catalog)
}

func TestResolveSettings_Errors(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
	}{
		{"unknown policy", map[string]string{"mastery-policy": "forever"}},
		{"network driver without dsn", map[string]string{"db-driver": "mysql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := resolveSettings(testCmd(t, tt.flags))
			assert.Error(t, err)
		})
	}
}

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers([]string{"MA-01_Q1=طنجة", "MA-01_Q2= a=b "})
	require.NoError(t, err)
	assert.Equal(t, []progress.Answer{
		{QuestionID: "MA-01_Q1", Submitted: "طنجة"},
		{QuestionID: "MA-01_Q2", Submitted: " a=b "},
	}, got)

	_, err = parseAnswers([]string{"no-separator"})
	assert.Error(t, err)
	_, err = parseAnswers([]string{"=answer"})
	assert.Error(t, err)
}

func TestSelectRegions(t *testing.T) {
	chain := region.MustChain(region.Morocco())

	all, err := selectRegions(chain, nil)
	require.NoError(t, err)
	assert.Len(t, all, 12)

	got, err := selectRegions(chain, []string{"MA-05", "MA-02"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "MA-02", got[0].ID, "chain order, not argument order")
	assert.Equal(t, "MA-05", got[1].ID)

	_, err = selectRegions(chain, []string{"MA-99"})
	assert.Error(t, err)
}

func TestKeptQuestions(t *testing.T) {
	chain := region.MustChain(region.Morocco())
	path := filepath.Join(t.TempDir(), "questions.json")
	opts := []string{"a", "b", "c", "d"}
	require.NoError(t, catalog.WriteFile(path, []catalog.Question{
		{ID: "MA-01_Q1", RegionID: "MA-01", Prompt: "one", Options: opts, Answer: "a"},
		{ID: "MA-02_Q1", RegionID: "MA-02", Prompt: "two", Options: opts, Answer: "b"},
	}))
	c, err := catalog.Loader{Path: path, Regions: chain}.Load()
	require.NoError(t, err)

	ma01, _ := chain.Get("MA-01")
	ids := func(qs []catalog.Question) []string {
		var out []string
		for _, q := range qs {
			out = append(out, q.ID)
		}
		return out
	}

	assert.Equal(t, []string{"MA-02_Q1"}, ids(keptQuestions(c, chain.All(), []region.Region{ma01}, false)),
		"generated region replaced, built-in fallbacks never kept")
	assert.Equal(t, []string{"MA-01_Q1", "MA-02_Q1"}, ids(keptQuestions(c, chain.All(), []region.Region{ma01}, true)))

	missing, err := catalog.Loader{Path: filepath.Join(t.TempDir(), "none.json"), Regions: chain}.Load()
	require.NoError(t, err)
	assert.Empty(t, keptQuestions(missing, chain.All(), nil, true))
}

func TestUsageByModel(t *testing.T) {
	ev := func(model string, in, out int) store.LLMRequestEvent {
		return store.LLMRequestEvent{LLMRequestEventData: store.LLMRequestEventData{Model: model, InputTokens: in, OutputTokens: out}}
	}
	got := usageByModel([]store.LLMRequestEvent{
		ev("gpt-4o-mini", 10, 5), ev("gemini-2.0-flash", 1, 2), ev("gpt-4o-mini", 20, 5),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "gemini-2.0-flash", got[0].model)
	assert.Equal(t, "gpt-4o-mini", got[1].model)
	assert.Equal(t, 2, got[1].calls)
	assert.Equal(t, 30, got[1].usage.InputTokens)
	assert.Equal(t, 10, got[1].usage.OutputTokens)
}

func TestFilterPurpose(t *testing.T) {
	ev := func(p string) store.LLMRequestEvent {
		return store.LLMRequestEvent{LLMRequestEventData: store.LLMRequestEventData{Purpose: p}}
	}
	events := []store.LLMRequestEvent{ev("catalog:MA-01"), ev("catalog:MA-02"), ev("unknown")}

	assert.Len(t, filterPurpose(events, ""), 3)
	assert.Len(t, filterPurpose(events, "catalog"), 2)
	assert.Len(t, filterPurpose(events, "catalog:MA-02"), 1)

	got := filterRegion(events, "MA-02")
	require.Len(t, got, 1)
	assert.Equal(t, "catalog:MA-02", got[0].Purpose)
	assert.Empty(t, filterRegion(events, "unknown"))
}

func TestClipAndFormatCost(t *testing.T) {
	assert.Equal(t, "طنج", clip("طنجة", 3))
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
}

func TestWriteGradeResult(t *testing.T) {
	res := &progress.GradeResult{
		Results: []progress.AnswerResult{
			{ID: "MA-01_Q1", Correct: true, CorrectAnswer: "a"},
			{ID: "MA-01_Q2", Correct: false, CorrectAnswer: "b"},
			{ID: "MA-01_Q3", Correct: false, CorrectAnswer: "c"},
		},
		MasteryPercent: 0.5,
		UnlockedRegion: "MA-02",
		Transitions: []mastery.StateTransition{
			{QuestionID: "MA-01_Q1", From: mastery.StateNew, To: mastery.StateMastered, Trigger: "correct"},
			{QuestionID: "MA-01_Q2", From: mastery.StateLearning, To: mastery.StateNew, Trigger: "incorrect"},
		},
	}

	var buf bytes.Buffer
	writeGradeResult(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "new → mastered")
	assert.Contains(t, out, "learning → new")
	assert.Contains(t, out, "correct: b")
	assert.Contains(t, out, "1 / 3 correct, region mastery 50.0%")
	assert.Contains(t, out, "Newly mastered: 1")
	assert.Contains(t, out, "Back to review: 1")
	assert.Contains(t, out, "New region unlocked: MA-02")
}

func TestDueLabel(t *testing.T) {
	assert.Equal(t, "3", dueLabel(progress.RegionSummary{Due: 3}))
	assert.Equal(t, "in 2d", dueLabel(progress.RegionSummary{NextReviewDays: 2}))
	assert.Equal(t, "0", dueLabel(progress.RegionSummary{}))
}
