// Package flow implements the wizard navigation state machine.
//
// A Machine walks a steps.Tree one substep at a time. Advancing checks the
// required fields of the current substep against a steps.Rules table; going
// back never validates. Crossing into the next or previous main step happens
// automatically at the edges of a substep list, and advancing past the last
// substep of the last main step runs the caller's completion callback.
package flow

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/steps"
)

// ShakeDuration is how long the shake flag stays set after a blocked advance.
// The machine does not run timers; callers schedule ClearShake.
const ShakeDuration = 500 * time.Millisecond

var (
	// ErrUnknownStep is returned for a main step that is not in the tree.
	ErrUnknownStep = errors.New("unknown step")
	// ErrCompleted is returned when navigating a machine that already completed.
	ErrCompleted = errors.New("wizard already completed")
	// ErrForwardJump is returned by Jump for a step at or after the current one.
	ErrForwardJump = errors.New("can only jump back to an earlier step")
)

// Fields exposes draft values by field name.
type Fields interface {
	Value(field string) string
}

// Position identifies the current main step and substep.
type Position struct {
	Step    string
	SubStep string
}

func (p Position) String() string {
	if p.Step == p.SubStep {
		return p.Step
	}
	return p.Step + "/" + p.SubStep
}

// ValidationError reports the required fields that blocked an advance.
type ValidationError struct {
	SubStep string
	Fields  map[string]string // field -> message
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	msgs := make([]string, 0, len(names))
	for _, f := range names {
		msgs = append(msgs, e.Fields[f])
	}
	return strings.Join(msgs, "; ")
}

// Options configures a Machine at construction.
type Options struct {
	// InitialStep places the machine on the first substep of this main step.
	// Empty means the first main step. It is read once, in New.
	InitialStep string

	// Relaxed records missing fields in the error map without blocking
	// advancement or shaking. Used when a trusted upstream source, such as a
	// saved service call, already supplied the early fields.
	Relaxed bool

	// OnComplete runs when advancing past the final substep. A non-nil error
	// leaves the machine on the final substep.
	OnComplete func() error
}

// Machine is the navigation state for one wizard instance.
type Machine struct {
	tree   steps.Tree
	rules  steps.Rules
	fields Fields

	relaxed    bool
	onComplete func() error

	main int // index into tree.Steps
	sub  int // index into tree.Steps[main].Substeps

	errors    map[string]string
	shaking   bool
	completed bool
}

// New builds a machine over tree. fields supplies the draft values checked by rules.
func New(tree steps.Tree, rules steps.Rules, fields Fields, opts Options) (*Machine, error) {
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s tree: %w", tree.Name, err)
	}
	if fields == nil {
		return nil, errors.New("fields must not be nil")
	}

	m := &Machine{
		tree:       tree,
		rules:      rules,
		fields:     fields,
		relaxed:    opts.Relaxed,
		onComplete: opts.OnComplete,
		errors:     make(map[string]string),
	}

	if opts.InitialStep != "" {
		idx := tree.IndexOf(opts.InitialStep)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStep, opts.InitialStep)
		}
		m.main = idx
	}

	logger.Debug("wizard %s starting at %s (relaxed=%v)", tree.Name, m.Position(), m.relaxed)
	return m, nil
}

// Tree returns the step tree the machine walks.
func (m *Machine) Tree() steps.Tree {
	return m.tree
}

// Position returns the current main step and substep.
func (m *Machine) Position() Position {
	step := m.tree.Steps[m.main]
	return Position{Step: step.ID, SubStep: step.Substeps[m.sub]}
}

// Current returns the current main step.
func (m *Machine) Current() steps.Main {
	return m.tree.Steps[m.main]
}

// Errors returns a copy of the field -> message error map.
func (m *Machine) Errors() map[string]string {
	out := make(map[string]string, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

// Error returns the recorded message for a field, if any.
func (m *Machine) Error(field string) string {
	return m.errors[field]
}

// Shaking reports whether the error shake flag is set.
func (m *Machine) Shaking() bool {
	return m.shaking
}

// ClearShake resets the shake flag.
func (m *Machine) ClearShake() {
	m.shaking = false
}

// Completed reports whether the completion callback ran successfully.
func (m *Machine) Completed() bool {
	return m.completed
}

// Relaxed reports whether validation is advisory for this machine.
func (m *Machine) Relaxed() bool {
	return m.relaxed
}

// IsFirst reports whether the machine is on the very first substep.
func (m *Machine) IsFirst() bool {
	return m.main == 0 && m.sub == 0
}

// IsLast reports whether the next advance will complete the wizard.
func (m *Machine) IsLast() bool {
	return m.main == len(m.tree.Steps)-1 && m.sub == len(m.tree.Steps[m.main].Substeps)-1
}

// Progress returns the 1-based ordinal of the current substep and the total count.
func (m *Machine) Progress() (current, total int) {
	pos := m.Position()
	return m.tree.Ordinal(pos.Step, pos.SubStep) + 1, m.tree.Count()
}

// Required returns the fields the current substep requires.
func (m *Machine) Required() []string {
	rules := m.rules.For(m.Position().SubStep)
	fields := make([]string, 0, len(rules))
	for _, r := range rules {
		fields = append(fields, r.Field)
	}
	return fields
}

// validate checks the current substep's rules, recording missing fields and
// clearing satisfied ones. It returns the missing set (nil when valid).
func (m *Machine) validate() map[string]string {
	var missing map[string]string
	for _, r := range m.rules.For(m.Position().SubStep) {
		if strings.TrimSpace(m.fields.Value(r.Field)) == "" {
			if missing == nil {
				missing = make(map[string]string)
			}
			missing[r.Field] = r.Message
			m.errors[r.Field] = r.Message
			continue
		}
		delete(m.errors, r.Field)
	}
	return missing
}

// MoveToNext validates the current substep and advances one position.
// A blocked advance returns a *ValidationError and sets the shake flag.
func (m *Machine) MoveToNext() error {
	if m.completed {
		return ErrCompleted
	}

	pos := m.Position()
	if missing := m.validate(); missing != nil {
		if !m.relaxed {
			m.shaking = true
			logger.Debug("wizard %s blocked at %s: %d missing field(s)", m.tree.Name, pos, len(missing))
			return &ValidationError{SubStep: pos.SubStep, Fields: missing}
		}
		logger.Debug("wizard %s: %d missing field(s) at %s ignored (relaxed)", m.tree.Name, len(missing), pos)
	}

	subs := m.tree.Steps[m.main].Substeps
	switch {
	case m.sub+1 < len(subs):
		m.sub++
	case m.main+1 < len(m.tree.Steps):
		m.main++
		m.sub = 0
	default:
		if m.onComplete != nil {
			if err := m.onComplete(); err != nil {
				logger.Warn("wizard %s completion failed: %v", m.tree.Name, err)
				return fmt.Errorf("completing %s: %w", m.tree.Name, err)
			}
		}
		m.completed = true
		logger.Debug("wizard %s completed", m.tree.Name)
		return nil
	}

	logger.Debug("wizard %s: %s -> %s", m.tree.Name, pos, m.Position())
	return nil
}

// MoveToPrev steps back one position without validating. It returns false
// when already on the very first substep.
func (m *Machine) MoveToPrev() bool {
	if m.completed {
		return false
	}

	switch {
	case m.sub > 0:
		m.sub--
	case m.main > 0:
		m.main--
		m.sub = len(m.tree.Steps[m.main].Substeps) - 1
	default:
		return false
	}
	return true
}

// Jump moves to the first substep of an earlier main step.
func (m *Machine) Jump(main string) error {
	if m.completed {
		return ErrCompleted
	}
	idx := m.tree.IndexOf(main)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownStep, main)
	}
	if idx >= m.main {
		return ErrForwardJump
	}
	m.main = idx
	m.sub = 0
	return nil
}
