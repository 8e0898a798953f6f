// Package quiz runs one batch of due questions for a region and shows the
// graded result.
package quiz

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mapquiz/internal/progress"
	"github.com/abhisek/mapquiz/internal/router"
	"github.com/abhisek/mapquiz/internal/screen"
	"github.com/abhisek/mapquiz/internal/ui/components"
	"github.com/abhisek/mapquiz/internal/ui/layout"
)

// Engine is the part of the progress engine a quiz needs.
type Engine interface {
	DueQuestions(regionID string) ([]progress.QuestionView, error)
	GradeAnswers(ctx context.Context, regionID string, answers []progress.Answer) (*progress.GradeResult, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseSubmitting
	phaseResults
	phaseError
)

var errNothingDue = errors.New("no questions are due in this region")

// QuizScreen asks each due question once, then grades them as one batch.
type QuizScreen struct {
	engine   Engine
	regionID string

	phase     phase
	questions []progress.QuestionView
	choices   []components.MultiChoice
	current   int
	result    *progress.GradeResult
	err       error
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for regionID.
func New(engine Engine, regionID string) *QuizScreen {
	return &QuizScreen{engine: engine, regionID: regionID}
}

func (s *QuizScreen) Init() tea.Cmd {
	return func() tea.Msg {
		qs, err := s.engine.DueQuestions(s.regionID)
		return questionsLoadedMsg{Questions: qs, Err: err}
	}
}

func (s *QuizScreen) Title() string {
	return "Quiz " + s.regionID
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Abandon"},
		}
	case phaseResults, phaseError:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to map"},
		}
	}
	return nil
}

// Result returns the graded result once the batch has been submitted.
func (s *QuizScreen) Result() *progress.GradeResult {
	return s.result
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)
	case gradedMsg:
		return s.handleGraded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	switch {
	case msg.Err != nil:
		s.phase, s.err = phaseError, msg.Err
	case len(msg.Questions) == 0:
		s.phase, s.err = phaseError, errNothingDue
	default:
		s.questions = msg.Questions
		s.choices = make([]components.MultiChoice, len(msg.Questions))
		for i, q := range msg.Questions {
			s.choices[i] = components.NewMultiChoice(q.Prompt, q.Options)
		}
		s.phase = phaseAnswering
	}
	return s, nil
}

func (s *QuizScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase, s.err = phaseError, msg.Err
		return s, nil
	}
	s.result = msg.Result

	correct := make(map[string]string, len(msg.Result.Results))
	for _, r := range msg.Result.Results {
		correct[r.ID] = r.CorrectAnswer
	}
	for i, q := range s.questions {
		s.choices[i].Reveal(correct[q.ID])
	}
	s.phase = phaseResults
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseAnswering:
		s.choices[s.current], _ = s.choices[s.current].Update(msg)
		if !s.choices[s.current].Answered() {
			return s, nil
		}
		if s.current < len(s.choices)-1 {
			s.current++
			return s, nil
		}
		s.phase = phaseSubmitting
		return s, s.submit()

	case phaseResults, phaseError:
		if key.Matches(msg, components.Keys.Select) {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// submit grades every answer in one call.
func (s *QuizScreen) submit() tea.Cmd {
	answers := make([]progress.Answer, len(s.questions))
	for i, q := range s.questions {
		answers[i] = progress.Answer{QuestionID: q.ID, Submitted: s.choices[i].Answer()}
	}
	regionID := s.regionID
	return func() tea.Msg {
		res, err := s.engine.GradeAnswers(context.Background(), regionID, answers)
		return gradedMsg{Result: res, Err: err}
	}
}
