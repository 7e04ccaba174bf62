package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dispatch/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Render renders the button bar centered within its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()
	base := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)
	normalStyle := base.
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0))
	disabledStyle := base.
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle))
	focusedStyle := base.
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Secondary)).
		Bold(true)

	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, disabledStyle.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, focusedStyle.Render(btn.Label))
		default:
			rendered = append(rendered, normalStyle.Render(btn.Label))
		}
	}

	return lipgloss.PlaceHorizontal(b.width, lipgloss.Center, strings.Join(rendered, ""))
}

// Button indexes in the navigation bar.
const (
	buttonBack = 0
	buttonNext = 1
)

// CreateBackNextButtons creates the Back/Next pair. first labels Back as
// Cancel, last labels Next as Finish, and focused is the highlighted index
// (-1 for none).
func CreateBackNextButtons(first, last bool, focused int) []Button {
	back := Button{Label: "← Back"}
	if first {
		back.Label = "Cancel"
	}
	next := Button{Label: "Next →"}
	if last {
		next.Label = "Finish ✓"
	}

	buttons := []Button{back, next}
	if focused >= 0 && focused < len(buttons) {
		buttons[focused].State = ButtonFocused
	}
	return buttons
}

// DisableAll greys out every button, e.g. while saving.
func DisableAll(buttons []Button) []Button {
	for i := range buttons {
		buttons[i].State = ButtonDisabled
	}
	return buttons
}
