// Package annotate holds the drawing elements layered over a captured image
// and the undo log that removes them in reverse order.
package annotate

import (
	"image/color"
	"math"
)

// DefaultText is the text buffer content after every commit.
const DefaultText = "Edit this text"

// Point is a canvas position in image pixels.
type Point struct {
	X, Y float64
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Style is the stroke applied to an element.
type Style struct {
	Color color.RGBA
	Width float64
}

// DefaultStyle is a one pixel black stroke.
func DefaultStyle() Style {
	return Style{Color: color.RGBA{A: 255}, Width: 1}
}

// TextSize returns the point size used for text drawn with s.
func (s Style) TextSize() float64 {
	return s.Width*20 + 0.1
}

// Sample is one recorded pointer position.
type Sample struct {
	Pos   Point
	Style Style
}

// Stroke is a run of samples recorded while the pointer was held down.
type Stroke []Sample

// TextBox is a committed piece of text.
type TextBox struct {
	Anchor Point
	Text   string
	Style  Style
}

// Store accumulates annotation elements. For every stroke tool the last
// stroke is the in-progress placeholder, and every completed element has a
// matching entry on the undo log.
type Store struct {
	Style Style
	// Draft is the text staged for the next commit.
	Draft string

	strokes map[Tool][]Stroke
	texts   []TextBox
	undo    []Tool
	pending bool
}

// NewStore returns an empty store using DefaultStyle.
func NewStore() *Store {
	return &Store{
		Style:   DefaultStyle(),
		Draft:   DefaultText,
		strokes: make(map[Tool][]Stroke),
	}
}

// Track feeds one frame of pointer state for a stroke tool. pressed is true
// while the pointer is held down over the canvas. It returns true when the
// frame sealed a stroke.
func (s *Store) Track(tool Tool, pos Point, pressed bool) bool {
	if !tool.Stroke() {
		return false
	}
	strokes := s.strokes[tool]
	if len(strokes) == 0 {
		strokes = append(strokes, nil)
	}
	last := len(strokes) - 1
	cur := strokes[last]
	sealed := false
	if pressed {
		sample := Sample{Pos: pos, Style: s.Style}
		if len(cur) == 0 || cur[len(cur)-1] != sample {
			strokes[last] = append(cur, sample)
		}
	} else if len(cur) > 0 {
		strokes = append(strokes, nil)
		s.undo = append(s.undo, tool)
		sealed = true
	}
	s.strokes[tool] = strokes
	return sealed
}

// CommitText marks the draft for placement on the next frame and records
// it on the undo log.
func (s *Store) CommitText() {
	s.pending = true
	s.undo = append(s.undo, ToolText)
}

// TextPending reports whether a committed draft awaits its anchor.
func (s *Store) TextPending() bool { return s.pending }

// PlacePendingText stores the committed draft at anchor and resets the draft.
func (s *Store) PlacePendingText(anchor Point) bool {
	if !s.pending {
		return false
	}
	s.texts = append(s.texts, TextBox{Anchor: anchor, Text: s.Draft, Style: s.Style})
	s.Draft = DefaultText
	s.pending = false
	return true
}

// Undo removes the most recently completed element. It returns the tool of
// the removed element, or false when the log is empty.
func (s *Store) Undo() (Tool, bool) {
	if len(s.undo) == 0 {
		return ToolNotSelected, false
	}
	tool := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	if tool == ToolText {
		// a commit not yet placed is the newest text element
		if s.pending {
			s.pending = false
			s.Draft = DefaultText
			return tool, true
		}
		if n := len(s.texts); n > 0 {
			s.texts = s.texts[:n-1]
		}
		return tool, true
	}
	// the last stroke is the in-progress placeholder, so the newest sealed
	// one sits just before it
	strokes := s.strokes[tool]
	if n := len(strokes); n >= 2 {
		s.strokes[tool] = append(strokes[:n-2], strokes[n-1])
	}
	return tool, true
}

// Clear drops every element, the undo log and any pending text.
func (s *Store) Clear() {
	s.strokes = make(map[Tool][]Stroke)
	s.texts = nil
	s.undo = nil
	s.pending = false
	s.Draft = DefaultText
}

// Strokes returns the strokes recorded for tool, including the placeholder.
func (s *Store) Strokes(tool Tool) []Stroke {
	src := s.strokes[tool]
	out := make([]Stroke, len(src))
	copy(out, src)
	return out
}

// Texts returns the committed text boxes.
func (s *Store) Texts() []TextBox {
	out := make([]TextBox, len(s.texts))
	copy(out, s.texts)
	return out
}

// UndoLog returns the undo markers, oldest first.
func (s *Store) UndoLog() []Tool {
	out := make([]Tool, len(s.undo))
	copy(out, s.undo)
	return out
}

// UndoLen is the number of undoable elements.
func (s *Store) UndoLen() int { return len(s.undo) }

// Empty reports whether nothing has been drawn.
func (s *Store) Empty() bool {
	if len(s.texts) > 0 || len(s.undo) > 0 || s.pending {
		return false
	}
	for _, strokes := range s.strokes {
		for _, st := range strokes {
			if len(st) > 0 {
				return false
			}
		}
	}
	return true
}

// Shape is a drawable element derived from a stroke.
type Shape struct {
	Tool   Tool
	Points []Point
	Style  Style
}

// Shapes returns the strokes that have enough samples to be drawn, in tool
// order. Strokes with fewer than two samples are skipped.
func (s *Store) Shapes() []Shape {
	var out []Shape
	for _, tool := range StrokeTools {
		for _, st := range s.strokes[tool] {
			if len(st) < 2 {
				continue
			}
			pts := make([]Point, len(st))
			for i, smp := range st {
				pts[i] = smp.Pos
			}
			out = append(out, Shape{Tool: tool, Points: pts, Style: st[0].Style})
		}
	}
	return out
}
