// Package action enumerates the operations a user can trigger during a
// capture session.
package action

import (
	"fmt"
	"strings"
)

// Action identifies a user-triggerable operation.
type Action int

const (
	None Action = iota
	SetEntireScreen
	SetSelection
	OpenTimerForm
	StartTimer
	HandleTimerTick
	CancelTimer
	OpenOptions
	Capture
	Close
	Modify
	TakeAnotherScreenshot
	Save
	Copy
	Undo
)

type info struct {
	name           string
	label          string
	requiresViewer bool
}

var infos = map[Action]info{
	SetEntireScreen:       {"SetEntireScreen", "Entire screen", false},
	SetSelection:          {"SetSelection", "Selection", false},
	OpenTimerForm:         {"OpenTimerForm", "Timer", false},
	StartTimer:            {"StartTimer", "Start timer", false},
	HandleTimerTick:       {"HandleTimerTick", "Timer tick", false},
	CancelTimer:           {"CancelTimer", "Cancel timer", false},
	OpenOptions:           {"OpenOptions", "Options", false},
	Capture:               {"Capture", "Capture", false},
	Close:                 {"Close", "Close", false},
	Modify:                {"Modify", "Modify", true},
	TakeAnotherScreenshot: {"TakeAnotherScreenshot", "Take another screenshot", true},
	Save:                  {"Save", "Save", true},
	Copy:                  {"Copy", "Copy", true},
	Undo:                  {"Undo", "Undo", true},
}

// All returns every action in declaration order.
func All() []Action {
	out := make([]Action, 0, len(infos))
	for a := SetEntireScreen; a <= Undo; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a names a known action.
func (a Action) Valid() bool {
	_, ok := infos[a]
	return ok
}

// Label is the human readable name shown next to a shortcut.
func (a Action) Label() string {
	if i, ok := infos[a]; ok {
		return i.label
	}
	return "None"
}

// String returns the identifier used in configuration files.
func (a Action) String() string {
	if i, ok := infos[a]; ok {
		return i.name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// RequiresViewer reports whether the action is only meaningful while a
// captured image is being shown.
func (a Action) RequiresViewer() bool {
	return infos[a].requiresViewer
}

// Parse resolves an identifier or label, ignoring case, spaces, dashes and
// underscores.
func Parse(s string) (Action, error) {
	want := normalize(s)
	if want == "" {
		return None, fmt.Errorf("empty action name")
	}
	for _, a := range All() {
		i := infos[a]
		if normalize(i.name) == want || normalize(i.label) == want {
			return a, nil
		}
	}
	return None, fmt.Errorf("unknown action %q", s)
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
