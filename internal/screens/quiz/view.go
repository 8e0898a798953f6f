package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/ui/components"
	"github.com/abhisek/mapquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return center(width, height, theme.Hint.Render("Loading questions..."))
	case phaseSubmitting:
		return center(width, height, theme.Hint.Render("Grading..."))
	case phaseError:
		return center(width, height, theme.Incorrect.Render(s.err.Error()))
	case phaseResults:
		return s.renderResults(width)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	done := float64(s.current) / float64(len(s.choices)) * 100
	header := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.current+1, len(s.choices)))
	bar := components.NewProgressBar(done, min(width-4, 50)).View()

	card := theme.Card.Width(min(width-4, 80)).Render(s.choices[s.current].View())
	return center(width, height, lipgloss.JoinVertical(lipgloss.Left, header, bar, "", card))
}

func (s *QuizScreen) renderResults(width int) string {
	var b strings.Builder
	correct := 0
	for _, r := range s.result.Results {
		if r.Correct {
			correct++
		}
	}

	b.WriteString(theme.Title.Render(fmt.Sprintf("  %d / %d correct", correct, len(s.result.Results))))
	b.WriteString("\n")
	b.WriteString("  " + components.NewProgressBar(s.result.MasteryPercent, min(width-4, 50)).View())
	b.WriteString("\n\n")

	byID := make(map[string]int, len(s.questions))
	for i, q := range s.questions {
		byID[q.ID] = i
	}
	for _, r := range s.result.Results {
		i, ok := byID[r.ID]
		if !ok {
			continue
		}
		mark := theme.Correct.Render("✓")
		if !r.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		line := "  " + mark + " " + s.questions[i].Prompt
		if tr, ok := s.result.TransitionOf(r.ID); ok {
			line += "  " + transitionLabel(tr)
		}
		b.WriteString(line + "\n")
		if !r.Correct {
			fmt.Fprintf(&b, "      %s %s\n", theme.Hint.Render("your answer:"), s.choices[i].Answer())
			fmt.Fprintf(&b, "      %s %s\n", theme.Hint.Render("correct:"), theme.Correct.Render(r.CorrectAnswer))
		}
	}

	if n := s.result.CountTransitions(mastery.StateMastered); n > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Mastered.Render(fmt.Sprintf("  ★ %d newly mastered", n)))
		b.WriteString("\n")
	}
	if n := s.result.CountTransitions(mastery.StateNew); n > 0 {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("  ↺ %d back to review", n)))
		b.WriteString("\n")
	}

	if s.result.UnlockedRegion != "" {
		b.WriteString("\n")
		b.WriteString(theme.Mastered.Render(fmt.Sprintf("  New region unlocked: %s", s.result.UnlockedRegion)))
		b.WriteString("\n")
	}
	return b.String()
}

func transitionLabel(tr mastery.StateTransition) string {
	switch tr.To {
	case mastery.StateMastered:
		return theme.Mastered.Render("★ " + tr.Label())
	case mastery.StateLearning:
		return theme.Unlocked.Render("◆ " + tr.Label())
	default:
		return theme.Incorrect.Render("↺ " + tr.Label())
	}
}

func center(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
