package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style

	// Progress header
	StepActive  lipgloss.Style
	StepDone    lipgloss.Style
	StepPending lipgloss.Style

	// Form content
	Label     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	ErrorText lipgloss.Style

	Toast lipgloss.Style
	Modal lipgloss.Style

	// Hint bar
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style
}
