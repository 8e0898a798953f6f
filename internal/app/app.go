package app

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/progress"
	"github.com/abhisek/mapquiz/internal/router"
	"github.com/abhisek/mapquiz/internal/screen"
	"github.com/abhisek/mapquiz/internal/screens/quiz"
	"github.com/abhisek/mapquiz/internal/screens/regionmap"
	"github.com/abhisek/mapquiz/internal/ui/components"
	"github.com/abhisek/mapquiz/internal/ui/layout"
)

// Engine is what the terminal UI needs from the progress engine.
type Engine interface {
	regionmap.Engine
	quiz.Engine
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	progress layout.Progress
	width    int
	height   int
}

func newAppModel(engine Engine) AppModel {
	mapScreen := regionmap.New(engine, func(regionID string) screen.Screen {
		return quiz.New(engine, regionID)
	})
	return AppModel{router: router.New(mapScreen)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case regionmap.SummariesMsg:
		if msg.Err == nil {
			m.progress = overall(msg.Summaries)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, components.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, components.Keys.Back):
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.progress, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if h := hp.KeyHints(); h != nil {
			hints = h
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func overall(sums []progress.RegionSummary) layout.Progress {
	p := layout.Progress{Total: len(sums)}
	for _, s := range sums {
		if s.Unlocked {
			p.Unlocked++
		}
		if s.Status == mastery.StatusMastered {
			p.Mastered++
		}
	}
	return p
}

// Run starts the terminal UI on engine.
func Run(engine Engine) error {
	p := tea.NewProgram(newAppModel(engine))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
