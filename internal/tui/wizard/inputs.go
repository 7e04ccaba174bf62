package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/dispatch/internal/document"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/tui/theme"
)

// input is the widget behind one Field.
type input interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	Focus() tea.Cmd
	Blur()
	Value() string
	SetWidth(width int)
}

// newInput builds the widget for f seeded with the current draft value.
func newInput(f Field, value string, cfg *Config) input {
	switch f.Kind {
	case KindChoice:
		if opts := optionsFor(f.Name, cfg); len(opts) > 0 {
			return newChoiceInput(opts, value)
		}
		return newTextInput(f.Placeholder, value)
	case KindToggle:
		return &toggleInput{on: value != ""}
	case KindNotes:
		return newNotesInput(value)
	case KindPreview:
		md := ""
		if cfg.Preview != nil {
			md = cfg.Preview()
		}
		return newPreviewInput(md)
	}
	return newTextInput(f.Placeholder, value)
}

func inputStyles() textinput.Styles {
	t := theme.Current()
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

// textInput wraps a bubbles textinput.
type textInput struct {
	model textinput.Model
}

func newTextInput(placeholder, value string) *textInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.SetStyles(inputStyles())
	ti.SetWidth(50)
	ti.SetValue(value)
	return &textInput{model: ti}
}

func (t *textInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return cmd
}

func (t *textInput) View() string       { return t.model.View() }
func (t *textInput) Focus() tea.Cmd     { return t.model.Focus() }
func (t *textInput) Blur()              { t.model.Blur() }
func (t *textInput) Value() string      { return t.model.Value() }
func (t *textInput) SetWidth(width int) { t.model.SetWidth(width) }

// choiceInput is a vertical option list. The selection follows the cursor;
// -1 means nothing has been picked yet.
type choiceInput struct {
	options []draft.Option
	cursor  int
	focused bool
}

// newChoiceInput selects value when present. A value missing from options,
// such as a customer carried over from a saved call, is kept as an extra
// option so advancing does not clear it.
func newChoiceInput(options []draft.Option, value string) *choiceInput {
	c := &choiceInput{options: options, cursor: -1}
	for i, o := range options {
		if o.Value == value {
			c.cursor = i
			return c
		}
	}
	if value != "" {
		c.options = append(append([]draft.Option(nil), options...), draft.Option{Value: value, Label: value})
		c.cursor = len(c.options) - 1
	}
	return c
}

func (c *choiceInput) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch s := k.String(); s {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		} else {
			c.cursor = len(c.options) - 1
		}
	case "down", "j":
		c.cursor = (c.cursor + 1) % len(c.options)
	case "home":
		c.cursor = 0
	case "end":
		c.cursor = len(c.options) - 1
	default:
		// 1-9 picks directly.
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(c.options) {
				c.cursor = i
			}
		}
	}
	return nil
}

func (c *choiceInput) View() string {
	s := theme.Current().S()
	lines := make([]string, 0, len(c.options))
	for i, o := range c.options {
		prefix := "  "
		style := s.Text
		if i == c.cursor {
			prefix = "● "
			style = s.Selected
		} else if !c.focused {
			style = s.Muted
		}
		hint := ""
		if i < 9 {
			hint = s.Muted.Render(fmt.Sprintf("%d ", i+1))
		}
		lines = append(lines, hint+style.Render(prefix+o.Label))
	}
	return strings.Join(lines, "\n")
}

func (c *choiceInput) Focus() tea.Cmd {
	c.focused = true
	return nil
}

func (c *choiceInput) Blur() { c.focused = false }

func (c *choiceInput) Value() string {
	if c.cursor < 0 || c.cursor >= len(c.options) {
		return ""
	}
	return c.options[c.cursor].Value
}

func (c *choiceInput) SetWidth(int) {}

// toggleInput is a yes/no switch.
type toggleInput struct {
	on      bool
	focused bool
}

func (t *toggleInput) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch k.String() {
	case "space", " ", "x":
		t.on = !t.on
	case "y", "left", "h":
		t.on = true
	case "n", "right", "l":
		t.on = false
	}
	return nil
}

func (t *toggleInput) View() string {
	s := theme.Current().S()
	yes, no := s.Muted.Render("  Yes"), s.Muted.Render("  No")
	if t.on {
		yes = s.Selected.Render("● Yes")
	} else {
		no = s.Selected.Render("● No")
	}
	return yes + "   " + no
}

func (t *toggleInput) Focus() tea.Cmd {
	t.focused = true
	return nil
}

func (t *toggleInput) Blur() { t.focused = false }

func (t *toggleInput) Value() string { return draft.FormatBool(t.on) }

func (t *toggleInput) SetWidth(int) {}

// notesInput is a multi-line editor. Enter is left to the wizard; shift+enter
// and ctrl+j insert a newline.
type notesInput struct {
	model textarea.Model
}

func newNotesInput(value string) *notesInput {
	ta := textarea.New()
	ta.Placeholder = "Anything the crew or office should know..."
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("shift+enter", "ctrl+j"))
	ta.SetWidth(50)
	ta.SetHeight(6)
	ta.SetValue(value)
	return &notesInput{model: ta}
}

func (n *notesInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	n.model, cmd = n.model.Update(msg)
	return cmd
}

func (n *notesInput) View() string       { return n.model.View() }
func (n *notesInput) Focus() tea.Cmd     { return n.model.Focus() }
func (n *notesInput) Blur()              { n.model.Blur() }
func (n *notesInput) Value() string      { return n.model.Value() }
func (n *notesInput) SetWidth(width int) { n.model.SetWidth(width) }

func (n *notesInput) SetValue(value string) {
	n.model.SetValue(value)
}

// previewInput shows the rendered document in a scrollable viewport.
type previewInput struct {
	viewport viewport.Model
	markdown string
	width    int
}

func newPreviewInput(markdown string) *previewInput {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(14),
	)
	p := &previewInput{viewport: vp, markdown: markdown}
	p.SetWidth(60)
	return p
}

func (p *previewInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *previewInput) View() string   { return p.viewport.View() }
func (p *previewInput) Focus() tea.Cmd { return nil }
func (p *previewInput) Blur()          {}
func (p *previewInput) Value() string  { return "" }

func (p *previewInput) SetWidth(width int) {
	if width == p.width && p.viewport.TotalLineCount() > 0 {
		return
	}
	p.width = width
	p.viewport.SetWidth(width)
	p.viewport.SetContent(document.RenderMarkdown(p.markdown, width))
	p.viewport.GotoTop()
}
