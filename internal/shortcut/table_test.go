package shortcut

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/action"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	require.Equal(t, 13, tbl.Len())

	seen := map[Chord]bool{}
	for _, b := range tbl.Bindings() {
		assert.True(t, b.Active, b.Chord.String())
		assert.False(t, seen[b.Chord], "duplicate %s", b.Chord)
		seen[b.Chord] = true
		assert.NotEqual(t, action.HandleTimerTick, b.Action)
	}

	b, ok := tbl.Find(Ctrl(key.CodeS))
	require.True(t, ok)
	assert.Equal(t, action.Save, b.Action)
	assert.True(t, b.RequiresViewer())

	b, ok = tbl.Find(Chord{Modifiers: key.ModControl | key.ModShift, Code: key.CodeT})
	require.True(t, ok)
	assert.Equal(t, action.StartTimer, b.Action)
}

func TestLookupGatesOnViewer(t *testing.T) {
	tbl := Default()

	got, ok := tbl.Lookup(Ctrl(key.CodeS), true)
	require.True(t, ok)
	assert.Equal(t, action.Save, got)

	_, ok = tbl.Lookup(Ctrl(key.CodeS), false)
	assert.False(t, ok, "save must not fire without a viewer")

	got, ok = tbl.Lookup(Ctrl(key.CodeF), false)
	require.True(t, ok)
	assert.Equal(t, action.SetEntireScreen, got)

	_, ok = tbl.Lookup(Ctrl(key.CodeF), true)
	assert.False(t, ok, "pre-capture actions are gated while viewing")
}

func TestLookupCloseAndOptionsAlwaysFire(t *testing.T) {
	tbl := Default()
	for _, viewer := range []bool{false, true} {
		got, ok := tbl.Lookup(Ctrl(key.CodeX), viewer)
		require.True(t, ok)
		assert.Equal(t, action.Close, got)

		got, ok = tbl.Lookup(Ctrl(key.CodeO), viewer)
		require.True(t, ok)
		assert.Equal(t, action.OpenOptions, got)
	}
}

func TestInsertRejectsDuplicateEvenWhenInactive(t *testing.T) {
	tbl := Default()
	require.True(t, tbl.SetActive(Ctrl(key.CodeZ), false))

	_, ok := tbl.Lookup(Ctrl(key.CodeZ), true)
	assert.False(t, ok)

	_, err := tbl.Insert(Ctrl(key.CodeZ), action.Copy)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateChord))
	assert.Equal(t, 13, tbl.Len())
}

func TestInsertThenLookup(t *testing.T) {
	tbl := Default()
	_, err := tbl.Insert(Ctrl(key.CodeF), action.SetSelection)
	require.ErrorIs(t, err, ErrDuplicateChord)
	got, ok := tbl.Lookup(Ctrl(key.CodeF), false)
	require.True(t, ok)
	assert.Equal(t, action.SetEntireScreen, got)

	chord := Chord{Modifiers: key.ModControl | key.ModAlt, Code: key.CodeF}
	b, err := tbl.Insert(chord, action.SetSelection)
	require.NoError(t, err)
	assert.Equal(t, Binding{Chord: chord, Action: action.SetSelection, Active: true}, b)
	assert.Equal(t, 14, tbl.Len())

	got, ok = tbl.Lookup(chord, false)
	require.True(t, ok)
	assert.Equal(t, action.SetSelection, got)
}

func TestInsertIncomplete(t *testing.T) {
	tbl := New()
	tests := []struct {
		name  string
		chord Chord
		act   action.Action
	}{
		{"no modifier", Chord{Code: key.CodeQ}, action.Close},
		{"no key", Chord{Modifiers: key.ModControl}, action.Close},
		{"no action", Ctrl(key.CodeQ), action.None},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tbl.Insert(tc.chord, tc.act)
			assert.True(t, errors.Is(err, ErrIncompleteChord), "got %v", err)
		})
	}
	assert.Equal(t, 0, tbl.Len())
}

func TestDeleteAndToggle(t *testing.T) {
	tbl := Default()
	assert.False(t, tbl.Delete(Ctrl(key.CodeQ)))
	assert.Equal(t, 13, tbl.Len())

	require.True(t, tbl.Toggle(Ctrl(key.CodeC)))
	b, _ := tbl.Find(Ctrl(key.CodeC))
	assert.False(t, b.Active)
	require.True(t, tbl.Toggle(Ctrl(key.CodeC)))
	b, _ = tbl.Find(Ctrl(key.CodeC))
	assert.True(t, b.Active)

	require.True(t, tbl.Delete(Ctrl(key.CodeC)))
	_, ok := tbl.Lookup(Ctrl(key.CodeC), true)
	assert.False(t, ok)
	assert.Equal(t, 12, tbl.Len())
	_, err := tbl.Insert(Ctrl(key.CodeC), action.Copy)
	assert.NoError(t, err)
}

func TestFirstMatchWins(t *testing.T) {
	tbl := New()
	chord := Ctrl(key.CodeK)
	_, err := tbl.Insert(chord, action.Copy)
	require.NoError(t, err)
	tbl.bindings = append(tbl.bindings, Binding{Chord: chord, Action: action.Save, Active: true})

	got, ok := tbl.Lookup(chord, true)
	require.True(t, ok)
	assert.Equal(t, action.Copy, got)
}
