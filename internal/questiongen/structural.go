package questiongen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/mapquiz/internal/catalog"
)

const maxPromptRunes = 300

// StructuralValidator checks that the prompt is present and short enough
// and that the question belongs to the requested region.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *catalog.Question, input GenerateInput) *ValidationError {
	if strings.TrimSpace(q.Prompt) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	if utf8.RuneCountInString(q.Prompt) > maxPromptRunes {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("question exceeds %d characters", maxPromptRunes),
		}
	}
	if q.RegionID != input.Region.ID {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("region_id %q, want %q", q.RegionID, input.Region.ID),
		}
	}
	return nil
}

// OptionsValidator checks for exactly 4 distinct non-empty options with
// the answer among them. The answer must match an option exactly, since
// grading compares strings verbatim.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *catalog.Question, _ GenerateInput) *ValidationError {
	if len(q.Options) != 4 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("must have exactly 4 options, got %d", len(q.Options)),
		}
	}

	seen := make(map[string]bool, 4)
	found := false
	for i, o := range q.Options {
		key := strings.TrimSpace(o)
		if key == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %d is empty", i+1)}
		}
		if seen[key] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate option %q", o)}
		}
		seen[key] = true
		if o == q.Answer {
			found = true
		}
	}
	if !found {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q not found in options", q.Answer),
		}
	}
	return nil
}
