package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dispatch/internal/steps"
	"github.com/mark3labs/dispatch/internal/tui/theme"
)

const (
	minModalWidth = 60
	maxModalWidth = 100
)

// modalWidth clamps the modal to a readable width for the terminal.
func modalWidth(termWidth int) int {
	w := termWidth - 10
	if w < minModalWidth {
		w = minModalWidth
	}
	if w > maxModalWidth {
		w = maxModalWidth
	}
	return w
}

// renderProgress draws the main steps as a breadcrumb. Completed steps show
// a check, the current one its icon and title, later ones only the icon.
func renderProgress(tree steps.Tree, current int, width int) string {
	s := theme.Current().S()
	parts := make([]string, 0, len(tree.Steps))
	for i, st := range tree.Steps {
		switch {
		case i < current:
			parts = append(parts, s.StepDone.Render("✓ "+st.Icon))
		case i == current:
			parts = append(parts, s.StepActive.Render(st.Icon+" "+st.Title))
		default:
			parts = append(parts, s.StepPending.Render(st.Icon))
		}
	}

	line := strings.Join(parts, s.Muted.Render("›"))
	if lipgloss.Width(line) > width {
		line = s.StepActive.Render(tree.Steps[current].Icon + " " + tree.Steps[current].Title)
	}
	return line
}

// renderProgressBar draws a thin filled bar for current of total.
func renderProgressBar(current, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := width * current / total
	if filled > width {
		filled = width
	}
	t := theme.Current()
	on := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Render(strings.Repeat("━", filled))
	off := lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface1)).Render(strings.Repeat("━", width-filled))
	return on + off
}
