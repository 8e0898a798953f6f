package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mapquiz/internal/ui/theme"
)

// ProgressBar draws a horizontal bar for a percentage in [0, 100].
type ProgressBar struct {
	Percent float64
	Width   int
}

// NewProgressBar creates a progress bar.
func NewProgressBar(percent float64, width int) ProgressBar {
	return ProgressBar{Percent: percent, Width: width}
}

// View renders the bar followed by the percentage.
func (p ProgressBar) View() string {
	barWidth := max(p.Width-7, 4)

	filled := int(float64(barWidth) * p.Percent / 100)
	filled = min(max(filled, 0), barWidth)

	fill := theme.Secondary
	if p.Percent >= 75 {
		fill = theme.Success
	}

	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		theme.Subtitle.Render(fmt.Sprintf(" %5.1f%%", p.Percent))
}
