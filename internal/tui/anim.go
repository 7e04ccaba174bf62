package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dispatch/internal/tui/theme"
)

// ShakeMsg is sent on each shake tick.
type ShakeMsg struct {
	Seq int
}

// Shake is a short horizontal jitter used to flag a rejected input.
type Shake struct {
	active   bool
	frame    int
	maxFrame int
	seq      int
	interval time.Duration
}

// NewShake creates a shake lasting duration, split into 50ms frames.
func NewShake(duration time.Duration) Shake {
	interval := 50 * time.Millisecond
	frames := int(duration / interval)
	if frames < 1 {
		frames = 1
	}
	return Shake{maxFrame: frames, interval: interval}
}

// Start (re)starts the animation. Ticks from an earlier run are ignored.
func (s *Shake) Start() tea.Cmd {
	s.seq++
	s.active = true
	s.frame = 0
	return s.tick()
}

// Stop ends the animation.
func (s *Shake) Stop() {
	s.active = false
	s.frame = 0
}

// Update handles shake tick messages.
func (s *Shake) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(ShakeMsg)
	if !ok || !s.active || m.Seq != s.seq {
		return nil
	}
	s.frame++
	if s.frame >= s.maxFrame {
		s.Stop()
		return nil
	}
	return s.tick()
}

func (s *Shake) tick() tea.Cmd {
	seq := s.seq
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return ShakeMsg{Seq: seq}
	})
}

// IsActive returns whether the shake is animating.
func (s *Shake) IsActive() bool {
	return s.active
}

// Offset returns the horizontal displacement for the current frame: -1, 0 or 1.
func (s *Shake) Offset() int {
	if !s.active {
		return 0
	}
	switch s.frame % 4 {
	case 0:
		return 1
	case 2:
		return -1
	}
	return 0
}

// Apply shifts content by the current offset around a one column gutter.
func (s *Shake) Apply(content string) string {
	return lipgloss.NewStyle().PaddingLeft(1 + s.Offset()).Render(content)
}

// ErrorStyle returns base tinted toward the error color, fading as the
// shake runs out.
func (s *Shake) ErrorStyle(base lipgloss.Style) lipgloss.Style {
	t := theme.Current()
	if !s.active {
		return base.Foreground(lipgloss.Color(t.Error))
	}
	pos := float64(s.frame) / float64(s.maxFrame)
	return base.Foreground(lipgloss.Color(theme.InterpolateColor(t.Error, t.FgBright, 1-pos)))
}
