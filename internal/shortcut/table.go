// Package shortcut maps keyboard chords to session actions.
package shortcut

import (
	"errors"
	"fmt"

	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/action"
)

var (
	// ErrDuplicateChord is returned when a chord is already bound, active or not.
	ErrDuplicateChord = errors.New("chord already bound")
	// ErrIncompleteChord is returned for bindings missing a modifier, key or action.
	ErrIncompleteChord = errors.New("binding needs a modifier, a key and an action")
)

// Binding ties a chord to an action.
type Binding struct {
	Chord  Chord
	Action action.Action
	Active bool
}

// RequiresViewer mirrors the bound action.
func (b Binding) RequiresViewer() bool { return b.Action.RequiresViewer() }

// Table is an ordered list of bindings with unique chords.
type Table struct {
	bindings []Binding
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Default returns the built-in bindings.
func Default() *Table {
	t := New()
	for _, b := range []struct {
		code key.Code
		mods key.Modifiers
		act  action.Action
	}{
		{key.CodeS, 0, action.Save},
		{key.CodeF, 0, action.SetEntireScreen},
		{key.CodeDownArrow, 0, action.SetSelection},
		{key.CodeT, 0, action.OpenTimerForm},
		{key.CodeT, key.ModShift, action.StartTimer},
		{key.CodeT, key.ModAlt, action.CancelTimer},
		{key.CodeO, 0, action.OpenOptions},
		{key.CodeReturnEnter, 0, action.Capture},
		{key.CodeX, 0, action.Close},
		{key.CodeM, 0, action.Modify},
		{key.CodeA, 0, action.TakeAnotherScreenshot},
		{key.CodeC, 0, action.Copy},
		{key.CodeZ, 0, action.Undo},
	} {
		t.bindings = append(t.bindings, Binding{
			Chord:  Chord{Modifiers: key.ModControl | b.mods, Code: b.code},
			Action: b.act,
			Active: true,
		})
	}
	return t
}

// Len returns the number of bindings.
func (t *Table) Len() int { return len(t.bindings) }

// Bindings returns a copy of the table in order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Find returns the binding owning chord.
func (t *Table) Find(c Chord) (Binding, bool) {
	if i := t.index(c); i >= 0 {
		return t.bindings[i], true
	}
	return Binding{}, false
}

// Insert appends an active binding and returns it.
func (t *Table) Insert(c Chord, a action.Action) (Binding, error) {
	if !c.Complete() || !a.Valid() {
		return Binding{}, fmt.Errorf("insert %s: %w", c, ErrIncompleteChord)
	}
	if t.index(c) >= 0 {
		return Binding{}, fmt.Errorf("insert %s: %w", c, ErrDuplicateChord)
	}
	b := Binding{Chord: c, Action: a, Active: true}
	t.bindings = append(t.bindings, b)
	return b, nil
}

// Delete removes the binding owning chord. It reports whether one existed.
func (t *Table) Delete(c Chord) bool {
	i := t.index(c)
	if i < 0 {
		return false
	}
	t.bindings = append(t.bindings[:i], t.bindings[i+1:]...)
	return true
}

// SetActive enables or disables a binding without removing it.
func (t *Table) SetActive(c Chord, active bool) bool {
	i := t.index(c)
	if i < 0 {
		return false
	}
	t.bindings[i].Active = active
	return true
}

// Toggle flips the active flag of a binding.
func (t *Table) Toggle(c Chord) bool {
	i := t.index(c)
	if i < 0 {
		return false
	}
	t.bindings[i].Active = !t.bindings[i].Active
	return true
}

// Lookup resolves a pressed chord. Close and OpenOptions fire in any mode;
// every other action fires only when its viewer requirement matches
// viewerOpen. The first matching active binding wins.
func (t *Table) Lookup(c Chord, viewerOpen bool) (action.Action, bool) {
	for _, b := range t.bindings {
		if !b.Active || b.Chord != c {
			continue
		}
		switch b.Action {
		case action.Close, action.OpenOptions:
			return b.Action, true
		}
		if b.RequiresViewer() == viewerOpen {
			return b.Action, true
		}
	}
	return action.None, false
}

func (t *Table) index(c Chord) int {
	for i, b := range t.bindings {
		if b.Chord == c {
			return i
		}
	}
	return -1
}
