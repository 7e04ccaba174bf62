package testfixtures

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/dispatch/internal/tui"
)

// Initialize test environment
func init() {
	// Ascii profile strips color so rendered output compares as plain text
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// WindowSize is the resize message for the canonical terminal.
func WindowSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: TestTermWidth, Height: TestTermHeight}
}

// Key builds a key press for a named key such as "enter", "esc" or "tab".
func Key(name string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: name}
}

// Runes builds one key press per character of s.
func Runes(s string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

// Screen draws content onto a canonical-size screen buffer and returns the
// text without styling, trailing spaces trimmed from each line.
func Screen(content string) string {
	rendered := tui.Canvas(content, TestTermWidth, TestTermHeight)
	lines := strings.Split(ansi.Strip(rendered), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \r")
	}
	return strings.Join(lines, "\n")
}
