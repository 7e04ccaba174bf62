// Package steps holds the static step trees driven by the wizard engine.
//
// A tree is an ordered list of main steps, each with an ordered list of
// substeps. Substeps are the unit of navigation and validation; their
// identifiers are unique within a tree so the rule table can key on them.
package steps

import (
	"errors"
	"fmt"
)

// Main is one top-level wizard step.
type Main struct {
	ID       string
	Title    string
	Icon     string
	Substeps []string
}

// Tree is an ordered set of main steps.
type Tree struct {
	Name  string
	Steps []Main
}

// Rule marks a draft field that must be non-empty before leaving a substep.
type Rule struct {
	Field   string
	Message string
}

// Rules maps a substep identifier to the fields it requires.
type Rules map[string][]Rule

// For returns the rules for a substep (nil when it has none).
func (r Rules) For(substep string) []Rule {
	return r[substep]
}

// Validate checks the tree has at least one step, every main step has at
// least one substep, and no identifier repeats.
func (t Tree) Validate() error {
	if len(t.Steps) == 0 {
		return errors.New("step tree has no steps")
	}
	mains := make(map[string]bool, len(t.Steps))
	subs := make(map[string]string)
	for _, m := range t.Steps {
		if m.ID == "" {
			return errors.New("main step with empty id")
		}
		if mains[m.ID] {
			return fmt.Errorf("duplicate main step %q", m.ID)
		}
		mains[m.ID] = true
		if len(m.Substeps) == 0 {
			return fmt.Errorf("main step %q has no substeps", m.ID)
		}
		for _, s := range m.Substeps {
			if s == "" {
				return fmt.Errorf("main step %q has an empty substep id", m.ID)
			}
			if owner, ok := subs[s]; ok {
				return fmt.Errorf("substep %q appears in both %q and %q", s, owner, m.ID)
			}
			subs[s] = m.ID
		}
	}
	return nil
}

// First returns the first main step and its first substep.
func (t Tree) First() (main, sub string) {
	if len(t.Steps) == 0 {
		return "", ""
	}
	return t.Steps[0].ID, t.Steps[0].Substeps[0]
}

// IndexOf returns the position of a main step, or -1.
func (t Tree) IndexOf(main string) int {
	for i, m := range t.Steps {
		if m.ID == main {
			return i
		}
	}
	return -1
}

// Main looks up a main step by id.
func (t Tree) Main(id string) (Main, bool) {
	if i := t.IndexOf(id); i >= 0 {
		return t.Steps[i], true
	}
	return Main{}, false
}

// Substeps returns the ordered substeps of a main step (nil if unknown).
func (t Tree) Substeps(main string) []string {
	m, ok := t.Main(main)
	if !ok {
		return nil
	}
	return m.Substeps
}

// Count returns the total number of substeps across the tree.
func (t Tree) Count() int {
	n := 0
	for _, m := range t.Steps {
		n += len(m.Substeps)
	}
	return n
}

// Ordinal returns the 0-based position of a substep across the whole tree, or -1.
func (t Tree) Ordinal(main, sub string) int {
	n := 0
	for _, m := range t.Steps {
		for _, s := range m.Substeps {
			if m.ID == main && s == sub {
				return n
			}
			n++
		}
	}
	return -1
}

// Flat reports whether every main step has exactly one substep.
func (t Tree) Flat() bool {
	for _, m := range t.Steps {
		if len(m.Substeps) != 1 {
			return false
		}
	}
	return len(t.Steps) > 0
}
