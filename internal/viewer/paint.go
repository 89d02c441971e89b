package viewer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"
	"time"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/session"
	"github.com/example/snapmark/internal/shortcut"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var (
	backdrop   = color.RGBA{0x30, 0x30, 0x30, 0xff}
	statusFill = color.RGBA{0xee, 0xee, 0xee, 0xff}
	panelFill  = color.RGBA{0xff, 0xff, 0xff, 0xe6}
)

// paintState is a copy of everything a frame needs, so the painter
// goroutine never reads controller state.
type paintState struct {
	width, height int
	mode          session.Mode
	tool          annotate.Tool
	annotating    bool
	style         annotate.Style

	shot   *image.RGBA
	layout layout
	shapes []annotate.Shape
	texts  []annotate.TextBox

	editing    bool
	draft      string
	textAnchor annotate.Point

	crop image.Rectangle

	timerForm    bool
	timerRunning bool
	timerSeconds uint32

	options  bool
	bindings []shortcut.Binding

	message string
}

func (v *Viewer) snapshot(now time.Time) paintState {
	st := v.ctrl.State
	ps := paintState{
		width:        v.width,
		height:       v.height,
		mode:         st.Mode(),
		tool:         st.Tool,
		annotating:   st.Annotating,
		style:        v.ctrl.Store.Style,
		shot:         v.ctrl.Shot(),
		layout:       v.layout(),
		shapes:       v.ctrl.Store.Shapes(),
		texts:        v.ctrl.Store.Texts(),
		editing:      v.editing,
		draft:        v.ctrl.Store.Draft,
		textAnchor:   v.textAnchor,
		crop:         v.crop,
		timerForm:    v.ctrl.Timer.FormOpen,
		timerRunning: v.ctrl.Timer.Running,
		timerSeconds: v.ctrl.Timer.Seconds,
		options:      st.OptionsOpen,
	}
	if ps.options && v.ctrl.Shortcuts != nil {
		ps.bindings = v.ctrl.Shortcuts.Bindings()
	}
	if v.message != "" && now.Before(v.messageUntil) {
		ps.message = v.message
	}
	return ps
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !renderFrame(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// renderFrame paints st into dst. It returns false when ctx was canceled
// before the frame was complete.
func renderFrame(ctx context.Context, dst *image.RGBA, st paintState) bool {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{backdrop}, image.Point{}, draw.Src)

	if st.shot != nil {
		canvas := st.layout.canvas
		b := st.shot.Bounds()
		// Annotations are drawn at image resolution and scaled with it.
		layer := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(layer, layer.Bounds(), st.shot, b.Min, draw.Src)
		for _, sh := range st.shapes {
			annotate.RenderShape(layer, image.Point{}, sh)
		}
		for _, tb := range st.texts {
			if err := annotate.RenderText(layer, image.Point{}, tb); err != nil {
				log.Printf("render text: %v", err)
			}
		}
		if st.editing {
			draft := annotate.TextBox{Anchor: st.textAnchor, Text: st.draft + "|", Style: st.style}
			if err := annotate.RenderText(layer, image.Point{}, draft); err != nil {
				log.Printf("render text: %v", err)
			}
		}
		if ctx.Err() != nil {
			return false
		}
		if st.layout.zoom == 1 {
			draw.Draw(dst, canvas, layer, image.Point{}, draw.Src)
		} else {
			xdraw.ApproxBiLinear.Scale(dst, canvas, layer, layer.Bounds(), draw.Src, nil)
		}
		if st.tool == annotate.ToolCrop && !st.crop.Empty() {
			drawOutline(dst, st.layout.toWindow(st.crop), color.White, color.Black)
		}
	}
	if ctx.Err() != nil {
		return false
	}

	if st.options {
		drawPanel(dst, optionLines(st.bindings))
	} else if st.timerForm {
		drawPanel(dst, []string{fmt.Sprintf("Delay: %ds", st.timerSeconds), "Type seconds, then start the timer. Esc cancels."})
	}
	drawStatus(dst, st.width, st.height, statusLine(st))

	if st.message != "" {
		drawPanel(dst, []string{st.message})
	}
	return ctx.Err() == nil
}

func statusLine(st paintState) string {
	var parts []string
	switch {
	case st.timerRunning:
		parts = append(parts, fmt.Sprintf("capture in %ds", st.timerSeconds))
	case st.annotating:
		parts = append(parts, fmt.Sprintf("%s  width %.0f", st.tool, st.style.Width))
	default:
		parts = append(parts, st.mode.String())
	}
	if st.shot != nil {
		b := st.shot.Bounds()
		parts = append(parts, fmt.Sprintf("%dx%d  %.0f%%", b.Dx(), b.Dy(), st.layout.zoom*100))
	}
	return strings.Join(parts, "  |  ")
}

func optionLines(bindings []shortcut.Binding) []string {
	lines := []string{"Shortcuts"}
	for _, b := range bindings {
		state := ""
		if !b.Active {
			state = " (off)"
		}
		lines = append(lines, fmt.Sprintf("%-14s %s%s", b.Chord, b.Action.Label(), state))
	}
	return lines
}

func drawStatus(dst *image.RGBA, width, height int, text string) {
	r := image.Rect(0, height-statusHeight, width, height)
	draw.Draw(dst, r, &image.Uniform{statusFill}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13}
	d.Dot = fixed.P(margin, height-statusHeight/2+4)
	d.DrawString(text)
}

func drawPanel(dst *image.RGBA, lines []string) {
	if len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	lineH := face.Metrics().Height.Ceil() + 2
	wmax := 0
	for _, l := range lines {
		wmax = max(wmax, d.MeasureString(l).Ceil())
	}
	b := dst.Bounds()
	h := lineH * len(lines)
	x := (b.Dx() - wmax) / 2
	y := (b.Dy() - statusHeight - h) / 2
	rect := image.Rect(x-margin, y-margin, x+wmax+margin, y+h+margin)
	draw.Draw(dst, rect, &image.Uniform{panelFill}, image.Point{}, draw.Over)
	drawOutline(dst, rect, color.Black, color.Black)
	for i, l := range lines {
		d.Dot = fixed.P(x, y+(i+1)*lineH-4)
		d.DrawString(l)
	}
}

// drawOutline draws a one pixel dashed border alternating a and b.
func drawOutline(dst *image.RGBA, r image.Rectangle, a, b color.Color) {
	pick := func(i int) color.Color {
		if (i/4)%2 == 0 {
			return a
		}
		return b
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, pick(x))
		dst.Set(x, r.Max.Y-1, pick(x))
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, pick(y))
		dst.Set(r.Max.X-1, y, pick(y))
	}
}
