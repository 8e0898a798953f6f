package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/mapquiz/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice lets the player pick one option. The correct answer is not
// known while choosing; Reveal marks it once the batch has been graded.
type MultiChoice struct {
	Prompt   string
	Options  []string
	Cursor   int
	Chosen   int
	revealed string
}

// NewMultiChoice creates a multiple-choice selector with nothing chosen.
func NewMultiChoice(prompt string, options []string) MultiChoice {
	return MultiChoice{Prompt: prompt, Options: options, Chosen: -1}
}

// Update moves the cursor and records a choice on Select.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Answered() {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(kmsg, Keys.Down):
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case key.Matches(kmsg, Keys.Select):
		if len(m.Options) > 0 {
			m.Chosen = m.Cursor
		}
	}
	return m, nil
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.Chosen >= 0
}

// Answer returns the chosen option text, or "" if nothing was chosen.
func (m MultiChoice) Answer() string {
	if !m.Answered() {
		return ""
	}
	return m.Options[m.Chosen]
}

// Reveal marks correct as the right answer for rendering.
func (m *MultiChoice) Reveal(correct string) {
	m.revealed = correct
}

// View renders the prompt and options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Cursor && !m.Answered() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case m.revealed != "" && opt == m.revealed:
			line = theme.Correct.Render(line)
		case m.revealed != "" && i == m.Chosen:
			line = theme.Incorrect.Render(line)
		case i == m.Chosen:
			line = theme.Selected.Render(line)
		case i == m.Cursor && !m.Answered():
			line = theme.Selected.Render(line)
		case m.revealed != "" || m.Answered():
			line = theme.Hint.Render(line)
		default:
			line = theme.Body.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
