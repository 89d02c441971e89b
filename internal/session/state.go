package session

import (
	"fmt"
	"math"

	"github.com/example/snapmark/internal/annotate"
)

// SelectionMode decides what the next capture grabs.
type SelectionMode int

const (
	SelectScreen SelectionMode = iota
	SelectRegion
)

func (m SelectionMode) String() string {
	if m == SelectRegion {
		return "region"
	}
	return "screen"
}

// Region is a rectangle in screen coordinates.
type Region struct {
	X, Y, Width, Height float64
}

// Floor converts the region to whole pixels. Negative sizes become zero.
func (r Region) Floor() (x, y int, w, h uint32) {
	x = int(math.Floor(r.X))
	y = int(math.Floor(r.Y))
	if fw := math.Floor(r.Width); fw > 0 {
		w = uint32(fw)
	}
	if fh := math.Floor(r.Height); fh > 0 {
		h = uint32(fh)
	}
	return x, y, w, h
}

func (r Region) String() string {
	x, y, w, h := r.Floor()
	return fmt.Sprintf("%dx%d+%d+%d", w, h, x, y)
}

// Geometry describes how window-local bounds map to screen pixels.
type Geometry struct {
	// OffsetX and OffsetY locate the window's client area on screen.
	OffsetX, OffsetY float64
	// TitleBar is added to Y on platforms that report the outer frame.
	TitleBar float64
	// Scale is the pixel density; zero means 1.
	Scale float64
}

// Adjust maps bounds reported by the UI to screen pixels.
func (g Geometry) Adjust(bounds Region) Region {
	scale := g.Scale
	if scale <= 0 {
		scale = 1
	}
	return Region{
		X:      (bounds.X + g.OffsetX) * scale,
		Y:      (bounds.Y + g.OffsetY + g.TitleBar) * scale,
		Width:  bounds.Width * scale,
		Height: bounds.Height * scale,
	}
}

// Phase tracks window visibility around a grab.
type Phase int

const (
	// PhaseStable means the window is shown and no grab is pending.
	PhaseStable Phase = iota
	// PhaseHiding means a hide was requested and the grab runs next frame.
	PhaseHiding
	// PhaseSettling covers the settle delay and the grab itself.
	PhaseSettling
	// PhaseRestoring means the window is shown again on the next frame.
	PhaseRestoring
)

func (p Phase) String() string {
	switch p {
	case PhaseHiding:
		return "hiding"
	case PhaseSettling:
		return "settling"
	case PhaseRestoring:
		return "restoring"
	}
	return "stable"
}

// Mode is the user-visible session state derived from State.
type Mode int

const (
	ModeIdle Mode = iota
	ModeArming
	ModeHidden
	ModeViewing
	ModeAnnotating
	ModeCropping
)

func (m Mode) String() string {
	return [...]string{"idle", "arming", "hidden", "viewing", "annotating", "cropping"}[m]
}

// State is everything the UI needs to draw the current frame.
type State struct {
	Selection SelectionMode
	Region    Region
	// PendingRegion is set while hidden when the grab targets Region
	// instead of the whole display.
	PendingRegion bool
	WindowHidden  bool
	ViewerOpen    bool
	Annotating    bool
	Tool          annotate.Tool
	OptionsOpen   bool
	Phase         Phase
	Screen        int
}

// Mode derives the session mode.
func (s State) Mode() Mode {
	switch {
	case s.WindowHidden:
		return ModeHidden
	case s.Annotating && s.Tool == annotate.ToolCrop:
		return ModeCropping
	case s.Annotating:
		return ModeAnnotating
	case s.ViewerOpen:
		return ModeViewing
	case s.Selection == SelectRegion:
		return ModeArming
	}
	return ModeIdle
}
