// Package questiongen drafts catalog questions for a region with an LLM.
package questiongen

import (
	"context"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/region"
)

// Generator produces catalog questions for one region.
type Generator interface {
	// Generate returns validated questions for input.Region. Entries that
	// fail validation are dropped; an error means nothing usable came back.
	Generate(ctx context.Context, input GenerateInput) ([]catalog.Question, error)
}

// GenerateInput holds the context for one region's request.
type GenerateInput struct {
	Region region.Region

	// Count is how many questions to ask for.
	Count int

	// PriorQuestions holds prompts already in the catalog for this region.
	// They are listed in the prompt so the model does not repeat them.
	PriorQuestions []string

	// FirstIndex is the number used for the first generated ID, so merged
	// catalogs keep IDs unique. Zero means 1.
	FirstIndex int
}
