package questiongen

import (
	"fmt"

	"github.com/abhisek/mapquiz/internal/catalog"
)

// Validator checks a generated question. Implementations are stateless and
// safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in log lines, e.g. "options".
	Name() string

	// Validate returns nil if q passes.
	Validate(q *catalog.Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a question was dropped.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
