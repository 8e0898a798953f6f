package mastery

import "github.com/abhisek/mapquiz/internal/spacedrep"

// QuestionState represents a question's position in the mastery lifecycle.
type QuestionState string

const (
	StateNew      QuestionState = "new"
	StateLearning QuestionState = "learning"
	StateMastered QuestionState = "mastered"
)

// StateOf derives the lifecycle state from a question's scheduling fields.
func StateOf(rs spacedrep.ReviewState) QuestionState {
	switch {
	case rs.Mastered:
		return StateMastered
	case rs.IntervalDays > 0:
		return StateLearning
	default:
		return StateNew
	}
}

// StateTransition records a question state change for display.
type StateTransition struct {
	QuestionID string        `json:"question_id"`
	From       QuestionState `json:"from"`
	To         QuestionState `json:"to"`
	Trigger    string        `json:"trigger"` // "correct", "incorrect"
}

// Label is the short text shown next to a graded question.
func (t StateTransition) Label() string {
	switch t.To {
	case StateMastered:
		return "mastered"
	case StateLearning:
		return "learning"
	default:
		return "needs review"
	}
}

// Transition returns the state change between two scheduling states, or nil
// if the state did not change.
func Transition(questionID string, before, after spacedrep.ReviewState, correct bool) *StateTransition {
	from, to := StateOf(before), StateOf(after)
	if from == to {
		return nil
	}
	trigger := "incorrect"
	if correct {
		trigger = "correct"
	}
	return &StateTransition{QuestionID: questionID, From: from, To: to, Trigger: trigger}
}
