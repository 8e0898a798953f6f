package quiz

import "github.com/abhisek/mapquiz/internal/progress"

// questionsLoadedMsg carries the due questions for the region.
type questionsLoadedMsg struct {
	Questions []progress.QuestionView
	Err       error
}

// gradedMsg carries the result of submitting the batch.
type gradedMsg struct {
	Result *progress.GradeResult
	Err    error
}
