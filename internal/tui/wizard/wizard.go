// Package wizard is the bubbletea front end for a flow.Machine.
//
// Each substep renders the inputs listed for it in the field layout table.
// enter advances, esc goes back (or cancels on the first substep), tab moves
// focus through the inputs and onto the Back/Next button bar.
package wizard

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/flow"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/steps"
	"github.com/mark3labs/dispatch/internal/tui"
	"github.com/mark3labs/dispatch/internal/tui/theme"
)

// ErrCancelled is returned by Run when the user leaves without finishing.
var ErrCancelled = errors.New("wizard cancelled by user")

// Config describes one wizard run.
type Config struct {
	Title string
	Tree  steps.Tree
	Rules steps.Rules
	Draft draft.Editor

	InitialStep string
	Relaxed     bool

	// Directory-backed choices. Empty lists fall back to free text.
	Customers []draft.Option
	Operators []draft.Option

	// Preview returns the markdown shown on preview substeps.
	Preview func() string

	// Save persists the draft after the final substep is confirmed.
	Save func() error
}

type clearShakeMsg struct {
	seq int
}

// notesEditedMsg carries the buffer back from $EDITOR.
type notesEditedMsg struct {
	field   string
	content string
	err     error
}

// Model is the wizard's bubbletea model.
type Model struct {
	cfg     Config
	machine *flow.Machine

	fields    []Field
	inputs    []input
	focus     int // == len(inputs) when the button bar has focus
	button    int
	checkErrs map[string]string

	toast    *tui.Toast
	shake    tui.Shake
	shakeSeq int

	saving    bool
	cancelled bool
	width     int
	height    int
}

// New builds a wizard positioned on cfg.InitialStep.
func New(cfg Config) (*Model, error) {
	if cfg.Draft == nil {
		return nil, errors.New("wizard needs a draft")
	}

	m := &Model{
		cfg:    cfg,
		toast:  tui.NewToast(),
		shake:  tui.NewShake(flow.ShakeDuration),
		width:  80,
		height: 24,
	}

	machine, err := flow.New(cfg.Tree, cfg.Rules, cfg.Draft, flow.Options{
		InitialStep: cfg.InitialStep,
		Relaxed:     cfg.Relaxed,
		OnComplete:  m.complete,
	})
	if err != nil {
		return nil, err
	}
	m.machine = machine
	m.enterSubstep()
	return m, nil
}

// Run shows the wizard full screen until it completes or is cancelled.
func Run(cfg Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	wm, ok := final.(*Model)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}
	if !wm.Completed() {
		return ErrCancelled
	}
	return nil
}

// Machine exposes the underlying navigation state.
func (m *Model) Machine() *flow.Machine {
	return m.machine
}

// Completed reports whether the draft was saved.
func (m *Model) Completed() bool {
	return m.machine.Completed()
}

// Cancelled reports whether the user left the wizard.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Saving reports whether a save is in flight.
func (m *Model) Saving() bool {
	return m.saving
}

// Toast returns the visible toast message, if any.
func (m *Model) Toast() string {
	return m.toast.GetMessage()
}

func (m *Model) complete() error {
	if m.cfg.Save == nil {
		return nil
	}
	m.saving = true
	defer func() { m.saving = false }()
	return m.cfg.Save()
}

func (m *Model) inputWidth() int {
	return modalWidth(m.width) - 8
}

// enterSubstep rebuilds the inputs for the machine's current position.
func (m *Model) enterSubstep() tea.Cmd {
	pos := m.machine.Position()
	m.fields = FieldsFor(m.cfg.Tree.Name, pos.SubStep)
	m.inputs = make([]input, len(m.fields))
	for i, f := range m.fields {
		m.inputs[i] = newInput(f, m.cfg.Draft.Value(f.Name), &m.cfg)
		m.inputs[i].SetWidth(m.inputWidth())
	}
	m.focus = 0
	m.button = buttonNext
	m.checkErrs = make(map[string]string)
	return m.applyFocus()
}

func (m *Model) onButtons() bool {
	return m.focus >= len(m.inputs)
}

func (m *Model) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i, in := range m.inputs {
		if i == m.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	n := len(m.inputs) + 1
	m.focus = ((m.focus+delta)%n + n) % n
	return m.applyFocus()
}

// sync copies input i into the draft.
func (m *Model) sync(i int) {
	f := m.fields[i]
	if f.Kind == KindPreview {
		return
	}
	if err := m.cfg.Draft.Set(f.Name, m.inputs[i].Value()); err != nil {
		logger.Warn("wizard: setting %s: %v", f.Name, err)
	}
	delete(m.checkErrs, f.Name)
}

// Init starts the cursor blink in the first input.
func (m *Model) Init() tea.Cmd {
	return m.applyFocus()
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, in := range m.inputs {
			in.SetWidth(m.inputWidth())
		}
		return m, nil

	case tui.ToastDismissMsg:
		return m, m.toast.Update(msg)

	case tui.ShakeMsg:
		return m, m.shake.Update(msg)

	case clearShakeMsg:
		if msg.seq == m.shakeSeq {
			m.machine.ClearShake()
			m.shake.Stop()
		}
		return m, nil

	case notesEditedMsg:
		if msg.err != nil {
			return m, m.toast.Show("Editor failed: " + msg.err.Error())
		}
		if err := m.cfg.Draft.Set(msg.field, strings.TrimRight(msg.content, "\n")); err != nil {
			return m, m.toast.Show(err.Error())
		}
		return m, m.enterSubstep()

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		return m, m.paste(msg)
	}

	if !m.onButtons() {
		return m, m.inputs[m.focus].Update(msg)
	}
	return m, nil
}

// paste cleans pasted text and hands it to the focused text field.
func (m *Model) paste(msg tea.PasteMsg) tea.Cmd {
	if m.saving || m.onButtons() {
		return nil
	}
	content := tui.SanitizePaste(msg.Content)
	switch m.fields[m.focus].Kind {
	case KindText:
		content = tui.CollapseNewlines(content)
	case KindNotes:
	default:
		return nil
	}
	cmd := m.inputs[m.focus].Update(tea.PasteMsg{Content: content})
	m.sync(m.focus)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		m.cancelled = true
		return m, tea.Quit
	}
	if m.saving {
		return m, nil
	}

	switch k {
	case "esc":
		return m.back()
	case "enter":
		if m.onButtons() && m.button == buttonBack {
			return m.back()
		}
		return m.next()
	case "tab":
		return m, m.cycleFocus(1)
	case "shift+tab":
		return m, m.cycleFocus(-1)
	case "pgup":
		return m, m.jumpBack()
	case "ctrl+e":
		if !m.onButtons() && m.fields[m.focus].Kind == KindNotes {
			return m, m.openEditor(m.focus)
		}
	}

	if m.onButtons() {
		switch k {
		case "left", "h":
			m.button = buttonBack
		case "right", "l":
			m.button = buttonNext
		}
		return m, nil
	}

	cmd := m.inputs[m.focus].Update(msg)
	m.sync(m.focus)
	return m, cmd
}

// next checks input formats, then asks the machine to advance.
func (m *Model) next() (tea.Model, tea.Cmd) {
	var first string
	for i, f := range m.fields {
		m.sync(i)
		v := strings.TrimSpace(m.cfg.Draft.Value(f.Name))
		if f.Check == nil || v == "" {
			continue
		}
		if msg := f.Check(v); msg != "" {
			m.checkErrs[f.Name] = msg
			if first == "" {
				first = msg
			}
		}
	}
	if first != "" {
		return m, m.reject(first)
	}

	err := m.machine.MoveToNext()
	var verr *flow.ValidationError
	switch {
	case errors.As(err, &verr):
		return m, m.reject(verr.Error())
	case err != nil:
		return m, m.toast.Show(err.Error())
	case m.machine.Completed():
		return m, tea.Quit
	}
	return m, m.enterSubstep()
}

// reject shows msg and shakes the form for flow.ShakeDuration.
func (m *Model) reject(msg string) tea.Cmd {
	m.shakeSeq++
	seq := m.shakeSeq
	return tea.Batch(
		m.toast.Show(msg),
		m.shake.Start(),
		tea.Tick(flow.ShakeDuration, func(_ time.Time) tea.Msg {
			return clearShakeMsg{seq: seq}
		}),
	)
}

func (m *Model) back() (tea.Model, tea.Cmd) {
	if !m.machine.MoveToPrev() {
		m.cancelled = true
		return m, tea.Quit
	}
	return m, m.enterSubstep()
}

// jumpBack returns to the start of the previous main step.
func (m *Model) jumpBack() tea.Cmd {
	idx := m.cfg.Tree.IndexOf(m.machine.Position().Step)
	if idx <= 0 {
		return nil
	}
	if err := m.machine.Jump(m.cfg.Tree.Steps[idx-1].ID); err != nil {
		return m.toast.Show(err.Error())
	}
	return m.enterSubstep()
}

// openEditor hands the notes field to $EDITOR.
func (m *Model) openEditor(i int) tea.Cmd {
	field := m.fields[i].Name

	tmpfile, err := os.CreateTemp("", "dispatch_notes_*.md")
	if err != nil {
		return m.toast.Show("Editor unavailable")
	}
	path := tmpfile.Name()
	if _, err := tmpfile.WriteString(m.cfg.Draft.Value(field)); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(path)
		return m.toast.Show("Editor unavailable")
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("dispatch", path)
	if err != nil {
		_ = os.Remove(path)
		return m.toast.Show("Editor unavailable: " + err.Error())
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer os.Remove(path)
		if err != nil {
			return notesEditedMsg{field: field, err: err}
		}
		content, err := os.ReadFile(path)
		return notesEditedMsg{field: field, content: string(content), err: err}
	})
}

// View renders the wizard.
func (m *Model) View() tea.View {
	content := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.render())
	content = tui.Overlay(content, m.toast.View(m.width), 2)
	return tui.FullScreen(content, m.width, m.height)
}

// render draws the modal: title, progress, fields, buttons and hints.
func (m *Model) render() string {
	s := theme.Current().S()
	width := modalWidth(m.width)
	inner := width - 6

	pos := m.machine.Position()
	current, total := m.machine.Progress()
	mainIdx := m.cfg.Tree.IndexOf(pos.Step)

	var sections []string
	title := m.cfg.Title
	if title == "" {
		title = m.cfg.Tree.Name
	}
	sections = append(sections,
		s.HeaderTitle.Render(fmt.Sprintf("%s - Step %d of %d", title, current, total)),
		renderProgress(m.cfg.Tree, mainIdx, inner),
		renderProgressBar(current, total, inner),
		"",
	)

	var body []string
	for i, f := range m.fields {
		if f.Kind != KindPreview {
			label := s.Label
			if m.fieldError(f) != "" {
				label = m.shake.ErrorStyle(label)
			}
			body = append(body, label.Render(f.Label))
		}
		body = append(body, m.inputs[i].View())
		if msg := m.fieldError(f); msg != "" {
			body = append(body, m.shake.ErrorStyle(s.ErrorText).Render("✗ "+msg))
		}
		body = append(body, "")
	}
	sections = append(sections, m.shake.Apply(strings.Join(body, "\n")))

	buttons := CreateBackNextButtons(m.machine.IsFirst(), m.machine.IsLast(), -1)
	if m.onButtons() {
		buttons = CreateBackNextButtons(m.machine.IsFirst(), m.machine.IsLast(), m.button)
	}
	if m.saving {
		buttons = DisableAll(buttons)
	}
	bar := NewButtonBar(buttons)
	bar.SetWidth(inner)
	sections = append(sections, bar.Render(), "", m.renderHints())

	return s.Modal.Width(width).Render(strings.Join(sections, "\n"))
}

// fieldError is the message shown under f. Required-field errors hide once
// the field has a value.
func (m *Model) fieldError(f Field) string {
	if msg := m.checkErrs[f.Name]; msg != "" {
		return msg
	}
	if f.Name == "" || strings.TrimSpace(m.cfg.Draft.Value(f.Name)) != "" {
		return ""
	}
	return m.machine.Error(f.Name)
}

func (m *Model) renderHints() string {
	back := "back"
	if m.machine.IsFirst() {
		back = "cancel"
	}
	next := "next"
	if m.machine.IsLast() {
		next = "finish"
	}

	pairs := []string{tui.KeyEnter, next, tui.KeyEsc, back, tui.KeyTab, "focus"}
	if !m.onButtons() {
		switch m.fields[m.focus].Kind {
		case KindChoice:
			pairs = append(pairs, tui.KeyUpDown, "choose")
		case KindPreview:
			pairs = append(pairs, tui.KeyUpDown, "scroll")
		case KindToggle:
			pairs = append(pairs, tui.KeySpace, "toggle")
		case KindNotes:
			if os.Getenv("EDITOR") != "" || os.Getenv("VISUAL") != "" {
				pairs = append(pairs, tui.KeyCtrlE, "editor")
			}
		}
	}
	if m.cfg.Tree.IndexOf(m.machine.Position().Step) > 0 {
		pairs = append(pairs, tui.KeyPgUp, "prev section")
	}
	return tui.RenderHintBar(pairs...)
}
