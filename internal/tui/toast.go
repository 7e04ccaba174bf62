package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dispatch/internal/tui/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// ToastDismissMsg is sent when a toast should be dismissed. Seq identifies
// the Show call it belongs to, so a stale timer cannot hide a newer toast.
type ToastDismissMsg struct {
	Seq int
}

// Toast is a minimal toast notification component.
// Shows a message in the bottom-right corner that auto-dismisses.
type Toast struct {
	message string
	visible bool
	seq     int
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays a toast with the given message and returns the dismiss timer.
func (t *Toast) Show(msg string) tea.Cmd {
	t.seq++
	t.message = msg
	t.visible = true

	seq := t.seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastDismissMsg{Seq: seq}
	})
}

// Update handles messages for the toast component.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(ToastDismissMsg); ok && m.Seq == t.seq {
		t.visible = false
		t.message = ""
	}
	return nil
}

// View renders the toast right-aligned within width.
// Returns empty string if toast is not visible.
func (t *Toast) View(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	style := theme.Current().S().Toast
	content := style.Render(t.message)
	if width > 2 && lipgloss.Width(content) > width-2 {
		content = style.Width(width - 2).Render(t.message)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		PaddingRight(1).
		Render(content)
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// GetMessage returns the current toast message (empty if not visible).
func (t *Toast) GetMessage() string {
	if !t.visible {
		return ""
	}
	return t.message
}
