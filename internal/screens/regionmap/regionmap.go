// Package regionmap shows every region in unlock order with its status.
package regionmap

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/progress"
	"github.com/abhisek/mapquiz/internal/router"
	"github.com/abhisek/mapquiz/internal/screen"
	"github.com/abhisek/mapquiz/internal/ui/components"
	"github.com/abhisek/mapquiz/internal/ui/layout"
	"github.com/abhisek/mapquiz/internal/ui/theme"
)

// Engine is the part of the progress engine the map needs.
type Engine interface {
	Summaries() ([]progress.RegionSummary, error)
}

// QuizFactory builds the quiz screen for a region.
type QuizFactory func(regionID string) screen.Screen

// SummariesMsg carries freshly loaded region summaries.
type SummariesMsg struct {
	Summaries []progress.RegionSummary
	Err       error
}

// RegionMapScreen lists regions and opens a quiz for the selected one.
type RegionMapScreen struct {
	engine  Engine
	newQuiz QuizFactory

	summaries []progress.RegionSummary
	cursor    int
	offset    int
	notice    string
	err       error
}

var _ screen.Screen = (*RegionMapScreen)(nil)
var _ screen.KeyHintProvider = (*RegionMapScreen)(nil)

// New creates a RegionMapScreen.
func New(engine Engine, newQuiz QuizFactory) *RegionMapScreen {
	return &RegionMapScreen{engine: engine, newQuiz: newQuiz}
}

func (s *RegionMapScreen) Init() tea.Cmd {
	return s.load()
}

func (s *RegionMapScreen) Title() string {
	return "Regions"
}

func (s *RegionMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Quiz"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Summaries returns the last loaded summaries.
func (s *RegionMapScreen) Summaries() []progress.RegionSummary {
	return s.summaries
}

func (s *RegionMapScreen) load() tea.Cmd {
	return func() tea.Msg {
		sums, err := s.engine.Summaries()
		return SummariesMsg{Summaries: sums, Err: err}
	}
}

func (s *RegionMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case SummariesMsg:
		s.err = msg.Err
		if msg.Err == nil {
			s.summaries = msg.Summaries
			s.cursor = min(s.cursor, max(len(s.summaries)-1, 0))
		}
		return s, nil

	case screen.ResumedMsg:
		s.notice = ""
		return s, s.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, components.Keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
			s.notice = ""
		case key.Matches(msg, components.Keys.Down):
			if s.cursor < len(s.summaries)-1 {
				s.cursor++
			}
			s.notice = ""
		case key.Matches(msg, components.Keys.Select):
			return s, s.open()
		}
	}
	return s, nil
}

// open pushes the quiz for the selected region, or explains why not.
func (s *RegionMapScreen) open() tea.Cmd {
	if s.cursor >= len(s.summaries) {
		return nil
	}
	sum := s.summaries[s.cursor]
	switch {
	case !sum.Unlocked:
		s.notice = fmt.Sprintf("%s is locked. Master %.0f%% of the previous region first.",
			sum.Region.EnglishName, mastery.UnlockThreshold*100)
		return nil
	case sum.Due == 0 && sum.NextReviewDays > 0:
		s.notice = fmt.Sprintf("Nothing due in %s right now. Next review in %s.",
			sum.Region.EnglishName, days(sum.NextReviewDays))
		return nil
	case sum.Due == 0:
		s.notice = fmt.Sprintf("Nothing due in %s right now. Come back later.", sum.Region.EnglishName)
		return nil
	}
	quiz := s.newQuiz(sum.Region.ID)
	return func() tea.Msg { return router.PushScreenMsg{Screen: quiz} }
}

func (s *RegionMapScreen) View(width, height int) string {
	if s.err != nil {
		return theme.Incorrect.Render("  Could not load progress: " + s.err.Error())
	}
	if s.summaries == nil {
		return theme.Hint.Render("  Loading regions...")
	}

	rows := height - 2
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if rows > 0 && s.cursor >= s.offset+rows {
		s.offset = s.cursor - rows + 1
	}

	var lines []string
	for i := s.offset; i < len(s.summaries) && (rows <= 0 || i < s.offset+rows); i++ {
		lines = append(lines, renderRow(s.summaries[i], i == s.cursor, width))
	}
	lines = append(lines, "")
	if s.notice != "" {
		lines = append(lines, "  "+theme.Hint.Render(s.notice))
	}
	return strings.Join(lines, "\n")
}

func renderRow(sum progress.RegionSummary, selected bool, width int) string {
	icon, style := "🔒", theme.Locked
	switch sum.Status {
	case mastery.StatusMastered:
		icon, style = "★", theme.Mastered
	case mastery.StatusUnlocked:
		icon, style = "◆", theme.Unlocked
	}
	if selected {
		style = theme.Selected
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	nameWidth := 28
	name := fmt.Sprintf("%s  %s", sum.Region.ID, sum.Region.EnglishName)
	if lipgloss.Width(name) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	due := ""
	switch {
	case !sum.Unlocked:
	case sum.Due > 0:
		due = theme.Title.Render(fmt.Sprintf(" %d due", sum.Due))
	case sum.NextReviewDays > 0:
		due = theme.Hint.Render(fmt.Sprintf(" next in %dd", sum.NextReviewDays))
	}

	bar := components.NewProgressBar(sum.Percent(), max(width-nameWidth-20, 12)).View()
	return fmt.Sprintf("  %s%s %s %s%s",
		cursor, icon, style.Render(fmt.Sprintf("%-*s", nameWidth, name)), bar, due)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
