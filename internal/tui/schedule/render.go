package schedule

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dispatch/internal/calendar"
	"github.com/mark3labs/dispatch/internal/tui"
	"github.com/mark3labs/dispatch/internal/tui/theme"
)

const gutterWidth = 6 // "07:00 "

func (m *Model) render() string {
	s := theme.Current().S()
	header := s.HeaderTitle.Render(m.rng.Title()) + "  " + s.Muted.Render("["+m.rng.View.String()+"]")

	buckets := calendar.Bucket(m.items, m.rng)
	var body string
	if m.rng.View == calendar.Month {
		body = m.renderMonth(buckets)
	} else {
		body = m.renderGrid(buckets)
	}

	hints := tui.RenderHintBar(
		"d/w/m", "view",
		tui.KeyLeftRight, "page",
		"t", "today",
		"q", "quit",
	)
	return strings.Join([]string{header, "", body, "", hints}, "\n")
}

func label(it calendar.Item) string {
	if it.StartTime == "" {
		return it.Title
	}
	return it.StartTime + " " + it.Title
}

// hourSpan is the range of hours the grid must show.
func (m *Model) hourSpan(buckets []calendar.DayBucket) (first, last int) {
	first, last = DefaultFirstHour, DefaultLastHour
	for _, b := range buckets {
		for _, it := range b.Items {
			start, ok := it.Start()
			if !ok {
				continue
			}
			if h := start / 60; h < first {
				first = h
			}
			d := it.Duration
			if d <= 0 {
				d = calendar.DefaultDuration
			}
			end := start + int(d.Minutes())
			if h := (end + 59) / 60; h > last {
				last = h
			}
		}
	}
	if last > 24 {
		last = 24
	}
	return first, last
}

// renderGrid draws the day and week views: a column per day with items
// placed by start time and packed side by side when they overlap.
func (m *Model) renderGrid(buckets []calendar.DayBucket) string {
	s := theme.Current().S()
	colWidth := (m.width - gutterWidth) / len(buckets)
	if colWidth < 10 {
		colWidth = 10
	}
	first, last := m.hourSpan(buckets)
	total := gutterWidth + colWidth*len(buckets)
	today := m.now().Format(calendar.DateLayout)

	var out []string

	// Day headers
	var head strings.Builder
	head.WriteString(strings.Repeat(" ", gutterWidth))
	for _, b := range buckets {
		name := fit(b.Date.Format("Mon 01/02"), colWidth)
		if b.Date.Format(calendar.DateLayout) == today {
			head.WriteString(s.Selected.Render(name))
		} else {
			head.WriteString(s.Label.Render(name))
		}
	}
	out = append(out, head.String())

	// Untimed items
	allDay := newGrid(1, total)
	hasAllDay := false
	for i, b := range buckets {
		if len(b.AllDay) == 0 {
			continue
		}
		hasAllDay = true
		text := "• " + b.AllDay[0].Title
		if n := len(b.AllDay) - 1; n > 0 {
			text += fmt.Sprintf(" +%d", n)
		}
		allDay.write(0, gutterWidth+i*colWidth+1, text, colWidth-1)
	}
	if hasAllDay {
		allDay.write(0, 0, "all", gutterWidth)
		out = append(out, s.Muted.Render(allDay.lines()[0]))
	}

	// Timed grid
	g := newGrid((last-first)*m.hourHeight, total)
	for h := first; h < last; h++ {
		g.write((h-first)*m.hourHeight, 0, fmt.Sprintf("%02d:00", h), gutterWidth)
	}
	for i, b := range buckets {
		x := gutterWidth + i*colWidth
		for row := range g.cells {
			g.set(row, x, '│')
		}
		for _, blk := range calendar.Layout(b.Items, m.hourHeight, colWidth-1) {
			top := blk.Top - first*m.hourHeight
			left := x + 1 + blk.Left
			for r := 0; r < blk.Height; r++ {
				g.set(top+r, left, '▌')
			}
			g.write(top, left+1, label(blk.Item), blk.Width-1)
		}
	}
	out = append(out, g.lines()...)

	return strings.Join(out, "\n")
}

// renderMonth draws a six-week grid with as many items per day as fit.
func (m *Model) renderMonth(buckets []calendar.DayBucket) string {
	s := theme.Current().S()
	colWidth := m.width / 7
	if colWidth < 12 {
		colWidth = 12
	}
	cellHeight := (m.height - 8) / calendar.MonthWeeks
	if cellHeight < 3 {
		cellHeight = 3
	}
	if cellHeight > 6 {
		cellHeight = 6
	}
	cell := lipgloss.NewStyle().Width(colWidth).Height(cellHeight)
	today := m.now().Format(calendar.DateLayout)
	month := m.rng.Anchor.Month()

	var rows []string
	var names []string
	for i := 0; i < 7; i++ {
		names = append(names, cell.Height(1).Render(s.Label.Render(buckets[i].Date.Format("Mon"))))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, names...))

	for w := 0; w < calendar.MonthWeeks; w++ {
		var cells []string
		for d := 0; d < 7; d++ {
			b := buckets[w*7+d]

			day := fmt.Sprintf("%2d", b.Date.Day())
			switch {
			case b.Date.Format(calendar.DateLayout) == today:
				day = s.Selected.Render(day + " •")
			case b.Date.Month() != month:
				day = s.Muted.Render(day)
			default:
				day = s.Text.Render(day)
			}
			lines := []string{day}

			room := cellHeight - 1
			for i, it := range b.Items {
				if i == room-1 && len(b.Items) > room {
					lines = append(lines, s.Muted.Render(fmt.Sprintf("+%d more", len(b.Items)-i)))
					break
				}
				lines = append(lines, fit(label(it), colWidth-1))
			}
			cells = append(cells, cell.Render(strings.Join(lines, "\n")))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

// fit truncates or pads s to exactly width runes.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

// grid is a fixed rune canvas; writes outside it are dropped.
type grid struct {
	cells [][]rune
}

func newGrid(rows, cols int) *grid {
	g := &grid{cells: make([][]rune, rows)}
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return g
}

func (g *grid) set(row, col int, r rune) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col] = r
}

func (g *grid) write(row, col int, s string, width int) {
	if width <= 0 {
		return
	}
	for i, r := range []rune(fit(s, width)) {
		g.set(row, col+i, r)
	}
}

func (g *grid) lines() []string {
	out := make([]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}
