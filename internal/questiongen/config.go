package questiongen

import "time"

// Config controls the behavior of the LLMGenerator and Run.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure drops the question.
	Validators []Validator

	// Count is the number of questions requested per region.
	Count int

	// MaxTokens is the token budget for one region's response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorQuestions caps how many existing prompts are listed for
	// deduplication.
	MaxPriorQuestions int

	// Pace is the pause between regions.
	Pace time.Duration

	// Timeout bounds one region's request, retries included. Zero means
	// no bound beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
		},
		Count:             10,
		MaxTokens:         4096,
		Temperature:       0.7,
		MaxPriorQuestions: 30,
		Pace:              time.Second,
		Timeout:           2 * time.Minute,
	}
}
