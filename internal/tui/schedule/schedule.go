// Package schedule is the calendar viewer: a day, week or month range of
// service calls that can be paged and switched from the keyboard.
package schedule

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dispatch/internal/calendar"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/tui"
)

// Default visible hours for the day and week grids. Items outside are still
// listed, the grid just grows to include them.
const (
	DefaultFirstHour = 6
	DefaultLastHour  = 20
)

// Model is the calendar viewer's bubbletea model.
type Model struct {
	items      []calendar.Item
	rng        calendar.Range
	now        func() time.Time
	hourHeight int
	width      int
	height     int
}

// New creates a viewer over items showing view around anchor. hourHeight is
// the number of rows per hour in the day and week grids.
func New(items []calendar.Item, view calendar.View, anchor time.Time, hourHeight int) *Model {
	if hourHeight < 1 {
		hourHeight = 1
	}
	return &Model{
		items:      items,
		rng:        calendar.RangeFor(view, anchor),
		now:        time.Now,
		hourHeight: hourHeight,
		width:      120,
		height:     40,
	}
}

// Run shows the viewer full screen until the user quits and returns the view
// it was left on.
func Run(items []calendar.Item, view calendar.View, anchor time.Time, hourHeight int) (calendar.View, error) {
	final, err := tea.NewProgram(New(items, view, anchor, hourHeight)).Run()
	if err != nil {
		return view, err
	}
	if m, ok := final.(*Model); ok {
		return m.rng.View, nil
	}
	return view, nil
}

// Range returns the visible range.
func (m *Model) Range() calendar.Range {
	return m.rng
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the viewer.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "d":
			m.setView(calendar.Day)
		case "w":
			m.setView(calendar.Week)
		case "m":
			m.setView(calendar.Month)
		case "left", "h":
			m.rng = m.rng.Prev()
		case "right", "l":
			m.rng = m.rng.Next()
		case "t":
			m.rng = calendar.RangeFor(m.rng.View, m.now())
		}
	}
	return m, nil
}

func (m *Model) setView(v calendar.View) {
	if v == m.rng.View {
		return
	}
	logger.Debug("calendar: %s -> %s", m.rng.View, v)
	m.rng = calendar.RangeFor(v, m.rng.Anchor)
}

// View renders the viewer.
func (m *Model) View() tea.View {
	content := lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(m.height).Render(m.render())
	return tui.FullScreen(content, m.width, m.height)
}
