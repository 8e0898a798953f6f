package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/abhisek/mapquiz/internal/region"
)

// Catalog is the loaded question set, partitioned by region in chain order.
type Catalog struct {
	byRegion map[string][]Question
	report   Report
}

// Report describes how a catalog was loaded. It backs the `check` command
// and load-time warnings.
type Report struct {
	Path            string
	Exists          bool
	Shape           Shape
	ParseErr        error
	Counts          map[string]int
	Dropped         []string
	FallbackRegions []string
}

// Warnings returns human-readable notes about a degraded load.
func (r Report) Warnings() []string {
	var out []string
	if r.Path != "" && !r.Exists {
		out = append(out, fmt.Sprintf("catalog %s not found, using built-in questions", r.Path))
	}
	if r.ParseErr != nil {
		out = append(out, fmt.Sprintf("catalog %s unreadable (%v), using built-in questions", r.Path, r.ParseErr))
	}
	out = append(out, r.Dropped...)
	if r.Exists && r.ParseErr == nil && len(r.FallbackRegions) > 0 {
		out = append(out, fmt.Sprintf("no questions for %v in %s, using built-in questions", r.FallbackRegions, r.Path))
	}
	return out
}

// Loader reads the question catalog. The zero Path loads only the
// built-in questions.
type Loader struct {
	Path    string
	Regions *region.Chain
}

// Load reads the catalog file and partitions it by region. It never fails
// because of a missing or malformed file: affected regions fall back to the
// built-in questions, and an empty region is a legal result.
func (l Loader) Load() (*Catalog, error) {
	if l.Regions == nil {
		return nil, errors.New("catalog loader: no regions configured")
	}

	report := Report{Path: l.Path, Shape: ShapeUnknown, Counts: make(map[string]int)}
	var loaded map[string][]Question

	if l.Path != "" {
		data, err := os.ReadFile(l.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			report.Exists = true
			report.ParseErr = err
		default:
			report.Exists = true
			var dropped []string
			loaded, report.Shape, dropped, report.ParseErr = parse(data, l.Regions)
			report.Dropped = dropped
		}
	}

	builtin, err := builtinQuestions(l.Regions)
	if err != nil {
		return nil, err
	}

	byRegion := make(map[string][]Question, l.Regions.Len())
	for _, r := range l.Regions.All() {
		qs := loaded[r.ID]
		if len(qs) == 0 {
			qs = builtin[r.ID]
			report.FallbackRegions = append(report.FallbackRegions, r.ID)
		}
		byRegion[r.ID] = qs
		report.Counts[r.ID] = len(qs)
	}

	return &Catalog{byRegion: byRegion, report: report}, nil
}

// Region returns a copy of the questions for a region in catalog order.
func (c *Catalog) Region(id string) []Question {
	qs := c.byRegion[id]
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

// All returns every question, grouped by region in the given order.
func (c *Catalog) All(regions []region.Region) []Question {
	var out []Question
	for _, r := range regions {
		out = append(out, c.Region(r.ID)...)
	}
	return out
}

// Report returns load diagnostics.
func (c *Catalog) Report() Report {
	return c.report
}

// parse decodes either catalog shape. Entries that fail validation, name an
// unknown region or repeat an ID are dropped and described in the returned
// slice.
func parse(data []byte, regions *region.Chain) (map[string][]Question, Shape, []string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ShapeUnknown, nil, errors.New("empty catalog")
	}

	type entry struct {
		raw        json.RawMessage
		defaultRID string
	}
	var entries []entry
	var shape Shape

	switch trimmed[0] {
	case '[':
		shape = ShapeFlat
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, shape, nil, fmt.Errorf("decode flat catalog: %w", err)
		}
		for _, raw := range list {
			entries = append(entries, entry{raw: raw})
		}
	case '{':
		shape = ShapePartitioned
		var parts map[string][]json.RawMessage
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return nil, shape, nil, fmt.Errorf("decode partitioned catalog: %w", err)
		}
		for _, key := range partitionKeys(parts, regions) {
			for _, raw := range parts[key] {
				entries = append(entries, entry{raw: raw, defaultRID: key})
			}
		}
	default:
		return nil, ShapeUnknown, nil, errors.New("catalog must be a JSON array or object")
	}

	out := make(map[string][]Question)
	seen := make(map[string]bool)
	var dropped []string
	for i, e := range entries {
		if err := validateEntry(e.raw); err != nil {
			dropped = append(dropped, fmt.Sprintf("entry %d dropped: %v", i, err))
			continue
		}
		var rec record
		if err := json.Unmarshal(e.raw, &rec); err != nil {
			dropped = append(dropped, fmt.Sprintf("entry %d dropped: %v", i, err))
			continue
		}
		q := rec.normalize(e.defaultRID)
		if _, ok := regions.Get(q.RegionID); !ok {
			dropped = append(dropped, fmt.Sprintf("question %q dropped: unknown region %q", q.ID, q.RegionID))
			continue
		}
		if seen[q.ID] {
			dropped = append(dropped, fmt.Sprintf("question %q dropped: duplicate id", q.ID))
			continue
		}
		seen[q.ID] = true
		out[q.RegionID] = append(out[q.RegionID], q)
	}
	return out, shape, dropped, nil
}

// partitionKeys orders the keys of a partitioned catalog: known regions in
// chain order, then unknown keys sorted.
func partitionKeys(parts map[string][]json.RawMessage, regions *region.Chain) []string {
	keys := make([]string, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		pi, pj := regions.Position(keys[i]), regions.Position(keys[j])
		if pi < 0 {
			pi = regions.Len()
		}
		if pj < 0 {
			pj = regions.Len()
		}
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})
	return keys
}
