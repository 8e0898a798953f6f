package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_RoundTripsThroughLoader(t *testing.T) {
	regions := testRegions(t)
	want := []Question{
		{ID: "MA-01_Q1", RegionID: "MA-01", Prompt: "ما هي عاصمة الجهة؟", Options: []string{"طنجة", "فاس", "الرباط", "مراكش"}, Answer: "طنجة"},
		{ID: "MA-02_Q1", RegionID: "MA-02", Prompt: "q & a <b>", Options: []string{"a", "b", "c", "d"}, Answer: "d"},
	}

	path := filepath.Join(t.TempDir(), "data", "questions.json")
	require.NoError(t, WriteFile(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "طنجة", "non-ASCII text written verbatim")
	assert.Contains(t, string(raw), "<b>")

	cat, err := Loader{Path: path, Regions: regions}.Load()
	require.NoError(t, err)
	assert.Equal(t, ShapeFlat, cat.Report().Shape)
	assert.Equal(t, want[:1], cat.Region("MA-01"))
	assert.Equal(t, want[1:], cat.Region("MA-02"))
}

func TestWriteFile_ReplacesExisting(t *testing.T) {
	path := writeCatalog(t, flatCatalog)
	require.NoError(t, WriteFile(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}
