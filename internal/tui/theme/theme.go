package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	current   *Theme
	currentMu sync.RWMutex
)

// Current returns the active theme, defaulting to Catppuccin Mocha.
func Current() *Theme {
	currentMu.RLock()
	t := current
	currentMu.RUnlock()
	if t != nil {
		return t
	}

	currentMu.Lock()
	defer currentMu.Unlock()
	if current == nil {
		current = NewCatppuccinMocha()
	}
	return current
}

// Set replaces the active theme.
func Set(t *Theme) {
	currentMu.Lock()
	current = t
	currentMu.Unlock()
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),
		StepActive: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Secondary)).
			Bold(true).
			Padding(0, 1),
		StepDone: lipgloss.NewStyle().
			Foreground(c(t.Success)).
			Padding(0, 1),
		StepPending: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(c(t.FgSubtle)).
			Bold(true),
		Text: lipgloss.NewStyle().
			Foreground(c(t.FgBase)),
		Muted: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),
		Selected: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),
		ErrorText: lipgloss.NewStyle().
			Foreground(c(t.Error)),
		Toast: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Warning)).
			Padding(0, 1).
			Bold(true),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Secondary)).
			Padding(1, 2),
		HintKey: lipgloss.NewStyle().
			Foreground(c(t.FgSubtle)).
			Bold(true),
		HintDesc: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(c(t.BgSurface1)),
	}
}
