package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// Area is the rectangle covering a width x height screen.
func Area(width, height int) uv.Rectangle {
	return uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: width, Y: height},
	}
}

// DrawText renders styled text into an area of scr, clipping what does not
// fit.
func DrawText(scr uv.Screen, area uv.Rectangle, text string) {
	uv.NewStyledString(text).Draw(scr, area)
}

// Canvas draws content onto a fresh width x height buffer and returns the
// rendered cells.
func Canvas(content string, width, height int) string {
	canvas := uv.NewScreenBuffer(width, height)
	DrawText(canvas, Area(width, height), content)
	return canvas.Render()
}

// FullScreen wraps content in an alt-screen view sized to width x height.
func FullScreen(content string, width, height int) tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = lipgloss.NewLayer(Canvas(content, width, height))
	return view
}

// Overlay replaces the line row lines from the bottom of content with line.
// Content with fewer lines is returned unchanged.
func Overlay(content, line string, row int) string {
	if line == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	if i := len(lines) - row; i >= 0 && i < len(lines) {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
