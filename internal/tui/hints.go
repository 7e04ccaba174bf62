package tui

import (
	"strings"

	"github.com/mark3labs/dispatch/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDown    = "↑/↓"
	KeyLeftRight = "←/→"
	KeyEnter     = "enter"
	KeySpace     = "space"
	KeyEsc       = "esc"
	KeyTab       = "tab"
	KeyCtrlC     = "ctrl+c"
	KeyCtrlE     = "ctrl+e"
	KeyPgUp      = "pgup"
)

// RenderHint renders a single key-description pair.
// Example: RenderHint("enter", "select") -> "enter select"
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Example: RenderHintBar("↑/↓", "choose", "enter", "next", "esc", "back")
// Returns: "↑/↓ choose • enter next • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	sep := " " + theme.Current().S().HintSeparator.Render("•") + " "
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, RenderHint(pairs[i], pairs[i+1]))
	}
	return strings.Join(parts, sep)
}
