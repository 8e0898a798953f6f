package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMultiChoice_NavigateAndChoose(t *testing.T) {
	m := NewMultiChoice("ما هي عاصمة المغرب؟", []string{"فاس", "الرباط", "مراكش", "طنجة"})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.Cursor)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	if m.Answered() {
		t.Fatal("answered before select")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Answer() != "الرباط" {
		t.Fatalf("answer = %q, want الرباط", m.Answer())
	}

	// Further keys are ignored once chosen.
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Cursor != 1 {
		t.Errorf("cursor moved after choosing: %d", m.Cursor)
	}
}

func TestMultiChoice_CursorStopsAtEnds(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b"})
	for range 5 {
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
}

func TestMultiChoice_NoOptions(t *testing.T) {
	m := NewMultiChoice("q", nil)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Answered() || m.Answer() != "" {
		t.Error("empty selector should never be answered")
	}
}

func TestMultiChoice_ViewShowsReveal(t *testing.T) {
	m := NewMultiChoice("prompt?", []string{"a", "b", "c", "d"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.Reveal("c")

	view := m.View()
	for _, want := range []string{"prompt?", "A)  a", "C)  c", "D)  d"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	view := NewProgressBar(75, 30).View()
	if !strings.Contains(view, "75.0%") {
		t.Errorf("view = %q, want percentage", view)
	}
	if NewProgressBar(250, 10).View() == "" {
		t.Error("out of range percent should still render")
	}
}
