package shortcut

import (
	"fmt"
	"strings"

	"golang.org/x/mobile/event/key"
)

// Chord is a modifier set plus a single non-modifier key.
type Chord struct {
	Modifiers key.Modifiers
	Code      key.Code
}

// Ctrl is shorthand for a chord using only the control modifier.
func Ctrl(code key.Code) Chord {
	return Chord{Modifiers: key.ModControl, Code: code}
}

// Complete reports whether the chord has at least one modifier and a key.
func (c Chord) Complete() bool {
	return c.Modifiers != 0 && c.Code != key.CodeUnknown
}

var modifierNames = []struct {
	mod  key.Modifiers
	name string
}{
	{key.ModControl, "Ctrl"},
	{key.ModAlt, "Alt"},
	{key.ModShift, "Shift"},
	{key.ModMeta, "Meta"},
}

var (
	codeNames = map[key.Code]string{}
	nameCodes = map[string]key.Code{}
)

func init() {
	add := func(code key.Code, names ...string) {
		codeNames[code] = names[0]
		for _, n := range names {
			nameCodes[strings.ToLower(n)] = code
		}
	}
	for i := 0; i < 26; i++ {
		add(key.CodeA+key.Code(i), string(rune('A'+i)))
	}
	digits := []key.Code{key.Code0, key.Code1, key.Code2, key.Code3, key.Code4, key.Code5, key.Code6, key.Code7, key.Code8, key.Code9}
	for i, code := range digits {
		add(code, string(rune('0'+i)))
	}
	fkeys := []key.Code{key.CodeF1, key.CodeF2, key.CodeF3, key.CodeF4, key.CodeF5, key.CodeF6, key.CodeF7, key.CodeF8, key.CodeF9, key.CodeF10, key.CodeF11, key.CodeF12}
	for i, code := range fkeys {
		add(code, fmt.Sprintf("F%d", i+1))
	}
	add(key.CodeReturnEnter, "Enter", "Return")
	add(key.CodeEscape, "Escape", "Esc")
	add(key.CodeDeleteBackspace, "Backspace")
	add(key.CodeDeleteForward, "Delete", "Del")
	add(key.CodeTab, "Tab")
	add(key.CodeSpacebar, "Space")
	add(key.CodeHyphenMinus, "Minus")
	add(key.CodeEqualSign, "Equal")
	add(key.CodeUpArrow, "Up", "ArrowUp")
	add(key.CodeDownArrow, "Down", "ArrowDown")
	add(key.CodeLeftArrow, "Left", "ArrowLeft")
	add(key.CodeRightArrow, "Right", "ArrowRight")
	add(key.CodeHome, "Home")
	add(key.CodeEnd, "End")
	add(key.CodePageUp, "PageUp")
	add(key.CodePageDown, "PageDown")
	add(key.CodeInsert, "Insert")
}

// String renders the chord as "Ctrl+Shift+T".
func (c Chord) String() string {
	var parts []string
	for _, m := range modifierNames {
		if c.Modifiers&m.mod != 0 {
			parts = append(parts, m.name)
		}
	}
	name, ok := codeNames[c.Code]
	if !ok {
		name = fmt.Sprintf("Code%d", uint32(c.Code))
	}
	parts = append(parts, name)
	return strings.Join(parts, "+")
}

// ParseChord parses the textual form produced by String. Modifier and key
// names are case-insensitive; "cmd" and "control" are accepted for Ctrl.
func ParseChord(s string) (Chord, error) {
	fields := strings.Split(strings.TrimSpace(s), "+")
	var c Chord
	for i, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			return Chord{}, fmt.Errorf("chord %q: empty component", s)
		}
		last := i == len(fields)-1
		switch f {
		case "ctrl", "control", "cmd", "command":
			c.Modifiers |= key.ModControl
			continue
		case "alt", "option":
			c.Modifiers |= key.ModAlt
			continue
		case "shift":
			c.Modifiers |= key.ModShift
			continue
		case "meta", "super", "win":
			c.Modifiers |= key.ModMeta
			continue
		}
		if !last {
			return Chord{}, fmt.Errorf("chord %q: unknown modifier %q", s, f)
		}
		code, ok := nameCodes[f]
		if !ok {
			return Chord{}, fmt.Errorf("chord %q: unknown key %q", s, f)
		}
		c.Code = code
	}
	if c.Code == key.CodeUnknown {
		return Chord{}, fmt.Errorf("chord %q: missing key", s)
	}
	return c, nil
}

// FromEvent builds the chord for a key press.
func FromEvent(e key.Event) Chord {
	return Chord{Modifiers: e.Modifiers & (key.ModShift | key.ModControl | key.ModAlt | key.ModMeta), Code: e.Code}
}
