// Package viewer is the interactive window: it feeds keyboard and pointer
// input to a session controller, drives its frame loop and paints the
// capture with its annotations.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/session"
	"github.com/example/snapmark/internal/shortcut"
)

const (
	// FrameInterval is the pace of the frame loop.
	FrameInterval = 33 * time.Millisecond

	messageDuration = 3 * time.Second
	maxTimerSeconds = 3600
	maxStrokeWidth  = 16
)

var palette = []color.RGBA{
	{0, 0, 0, 255},
	{255, 0, 0, 255},
	{0, 160, 0, 255},
	{0, 0, 255, 255},
	{255, 200, 0, 255},
	{255, 0, 255, 255},
	{0, 200, 200, 255},
	{255, 255, 255, 255},
}

var toolKeys = map[rune]annotate.Tool{
	'p': annotate.ToolPen,
	'l': annotate.ToolLine,
	'a': annotate.ToolArrow,
	'r': annotate.ToolRect,
	'o': annotate.ToolCircle,
	't': annotate.ToolText,
	'k': annotate.ToolCrop,
}

// Viewer owns the UI side of a session. Only the event loop goroutine
// touches it.
type Viewer struct {
	ctrl *session.Controller

	width, height int
	recapture     bool

	pointer image.Point
	pressed bool

	editing    bool
	textAnchor annotate.Point

	cropping  bool
	cropStart annotate.Point
	crop      image.Rectangle

	message      string
	messageUntil time.Time

	now func() time.Time
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithRecapture makes the apply keys re-capture the canvas from the screen
// instead of flattening annotations in memory.
func WithRecapture(on bool) Option { return func(v *Viewer) { v.recapture = on } }

// WithSize sets the initial window size.
func WithSize(w, h int) Option {
	return func(v *Viewer) {
		v.width = w
		v.height = h
	}
}

// New creates a viewer for ctrl.
func New(ctrl *session.Controller, opts ...Option) *Viewer {
	v := &Viewer{ctrl: ctrl, width: 800, height: 600, now: time.Now}
	for _, o := range opts {
		o(v)
	}
	return v
}

func (v *Viewer) layout() layout {
	if shot := v.ctrl.Shot(); shot != nil {
		return newLayout(shot.Bounds(), v.width, v.height)
	}
	return layout{zoom: 1}
}

func (v *Viewer) flash(format string, args ...interface{}) {
	v.message = fmt.Sprintf(format, args...)
	v.messageUntil = v.now().Add(messageDuration)
	log.Print(v.message)
}

func (v *Viewer) report(effects []session.Effect, err error) {
	if err != nil {
		v.flash("%v", err)
		return
	}
	for _, e := range effects {
		switch e.Kind {
		case session.EffectWriteFile:
			v.flash("saved %s", e.Path)
		case session.EffectWriteClipboard:
			v.flash("image copied to clipboard")
		}
	}
}

// frame runs one pass of the frame loop. It returns true once the session
// has been closed.
func (v *Viewer) frame(now time.Time) bool {
	st := &v.ctrl.State
	if st.Mode() == session.ModeArming {
		v.ctrl.SetSelectionBounds(session.Region{Width: float64(v.width), Height: float64(v.height)})
	}
	if st.Annotating && st.Tool.Stroke() {
		over := v.layout().contains(v.pointer)
		v.ctrl.Track(v.layout().toImage(v.pointer), v.pressed && over)
	}
	effects, err := v.ctrl.Frame(now)
	v.report(effects, err)
	return v.ctrl.Closed()
}

// handleKey processes a key press. It returns true when the viewer should
// quit.
func (v *Viewer) handleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if v.editing {
		v.editText(e)
		return false
	}
	chord := shortcut.FromEvent(e)
	if chord.Complete() {
		effects, handled, err := v.ctrl.HandleChord(chord)
		if handled {
			v.report(effects, err)
			return v.ctrl.Closed()
		}
	}
	if e.Modifiers&(key.ModControl|key.ModAlt|key.ModMeta) != 0 {
		return false
	}

	st := &v.ctrl.State
	switch {
	case e.Code == key.CodeEscape:
		switch {
		case st.Annotating:
			v.ctrl.CancelAnnotation()
			v.crop = image.Rectangle{}
		case v.ctrl.Timer.FormOpen || v.ctrl.Timer.Running:
			_, _ = v.ctrl.RunAction(action.CancelTimer)
		case st.OptionsOpen:
			st.OptionsOpen = false
		}
	case e.Code == key.CodeReturnEnter:
		v.apply()
	case e.Rune >= '0' && e.Rune <= '9':
		d := uint32(e.Rune - '0')
		switch {
		case v.ctrl.Timer.FormOpen:
			v.ctrl.SetTimerSeconds(min(v.ctrl.Timer.Seconds*10+d, maxTimerSeconds))
		case st.Annotating && d >= 1 && int(d) <= len(palette):
			v.ctrl.Store.Style.Color = palette[d-1]
		}
	case e.Rune == '+' || e.Rune == '=':
		v.ctrl.Store.Style.Width = min(v.ctrl.Store.Style.Width+1, maxStrokeWidth)
	case e.Rune == '-':
		v.ctrl.Store.Style.Width = max(v.ctrl.Store.Style.Width-1, 1)
	default:
		r := e.Rune
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if tool, ok := toolKeys[r]; ok && st.Annotating {
			v.ctrl.SelectTool(tool)
			v.crop = image.Rectangle{}
		}
	}
	return false
}

func (v *Viewer) editText(e key.Event) {
	switch e.Code {
	case key.CodeReturnEnter:
		v.ctrl.CommitText()
		v.editing = false
	case key.CodeEscape:
		v.ctrl.StageText(annotate.DefaultText)
		v.editing = false
	case key.CodeDeleteBackspace:
		if d := []rune(v.ctrl.Store.Draft); len(d) > 0 {
			v.ctrl.StageText(string(d[:len(d)-1]))
		}
	default:
		if e.Rune > 0 {
			v.ctrl.StageText(v.ctrl.Store.Draft + string(e.Rune))
		}
	}
}

// apply burns the annotations, or the crop when one is drawn, into the image.
func (v *Viewer) apply() {
	st := v.ctrl.State
	if !st.Annotating {
		return
	}
	l := v.layout()
	if st.Tool == annotate.ToolCrop {
		if v.crop.Empty() {
			return
		}
		if v.recapture {
			r := v.crop
			bounds := session.Region{
				X:      float64(l.canvas.Min.X) + float64(r.Min.X)*l.zoom,
				Y:      float64(l.canvas.Min.Y) + float64(r.Min.Y)*l.zoom,
				Width:  float64(r.Dx()) * l.zoom,
				Height: float64(r.Dy()) * l.zoom,
			}
			v.report(v.ctrl.SaveCrop(bounds))
		} else if err := v.ctrl.ApplyAnnotations(&v.crop); err != nil {
			v.flash("crop: %v", err)
		}
		v.crop = image.Rectangle{}
		return
	}
	if v.recapture {
		c := l.canvas
		v.report(v.ctrl.SaveModify(session.Region{
			X: float64(c.Min.X), Y: float64(c.Min.Y),
			Width: float64(c.Dx()), Height: float64(c.Dy()),
		}))
		return
	}
	if err := v.ctrl.ApplyAnnotations(nil); err != nil {
		v.flash("apply: %v", err)
	}
}

func (v *Viewer) handleMouse(e mouse.Event) {
	v.pointer = image.Pt(int(e.X), int(e.Y))
	if e.Button != mouse.ButtonLeft && e.Direction != mouse.DirNone {
		return
	}
	st := v.ctrl.State
	l := v.layout()
	pos := l.toImage(v.pointer)
	switch e.Direction {
	case mouse.DirPress:
		if !l.contains(v.pointer) {
			return
		}
		v.pressed = true
		if !st.Annotating {
			return
		}
		switch st.Tool {
		case annotate.ToolText:
			v.textAnchor = pos
			v.ctrl.SetTextAnchor(pos)
			if !v.editing {
				v.ctrl.StageText("")
				v.editing = true
			}
		case annotate.ToolCrop:
			v.cropping = true
			v.cropStart = pos
			v.crop = image.Rectangle{}
		}
	case mouse.DirRelease:
		v.pressed = false
		if v.cropping {
			v.cropping = false
			v.crop = imageRect(v.cropStart, pos)
		}
	case mouse.DirNone:
		if v.cropping {
			v.crop = imageRect(v.cropStart, pos)
		}
	}
}
