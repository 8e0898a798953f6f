package catalog

import (
	_ "embed"
	"fmt"

	"github.com/abhisek/mapquiz/internal/region"
)

//go:embed builtin.json
var builtinJSON []byte

// builtinQuestions returns the embedded fallback set partitioned by region.
// Entries for regions outside the chain are ignored.
func builtinQuestions(regions *region.Chain) (map[string][]Question, error) {
	qs, _, _, err := parse(builtinJSON, regions)
	if err != nil {
		return nil, fmt.Errorf("parse built-in catalog: %w", err)
	}
	return qs, nil
}
