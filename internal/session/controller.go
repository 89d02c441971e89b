// Package session drives a capture session: it owns the session state, runs
// actions, and sequences window hiding around screen grabs one frame at a
// time.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"time"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/savefile"
	"github.com/example/snapmark/internal/shortcut"
	"github.com/example/snapmark/internal/timer"
)

const (
	// DefaultSettleDelay lets the compositor remove the window before the grab.
	DefaultSettleDelay = 300 * time.Millisecond
	// DefaultRestoreDelay is waited before the window is shown again.
	DefaultRestoreDelay = 100 * time.Millisecond
)

// Options configures a Controller.
type Options struct {
	SaveDir      string
	SettleDelay  time.Duration
	RestoreDelay time.Duration
	Geometry     Geometry
	Screen       int
}

// DefaultOptions returns the stock delays and the home save directory.
func DefaultOptions() Options {
	return Options{
		SaveDir:      savefile.DefaultDir,
		SettleDelay:  DefaultSettleDelay,
		RestoreDelay: DefaultRestoreDelay,
	}
}

// Controller is the single owner of a session's state. It is not safe for
// concurrent use; the UI calls it from its event loop.
type Controller struct {
	State     State
	Store     *annotate.Store
	Timer     *timer.Timer
	Shortcuts *shortcut.Table

	opts     Options
	capturer Capturer
	window   Window
	dialog   SaveDialog
	clip     Clipboard
	notifier Notifier

	shot    *image.RGBA
	encoded []byte

	textAnchor annotate.Point
	closed     bool
	lostOrigin bool

	now    func() time.Time
	sleep  func(time.Duration)
	encode func(image.Image) ([]byte, error)
	write  func(path string, img image.Image, encoded []byte) error
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithOptions replaces the configuration.
func WithOptions(o Options) Option { return func(c *Controller) { c.opts = o } }

// WithCapturer sets the screen grab backend.
func WithCapturer(cp Capturer) Option { return func(c *Controller) { c.capturer = cp } }

// WithWindow sets the window visibility controller.
func WithWindow(w Window) Option { return func(c *Controller) { c.window = w } }

// WithSaveDialog sets the save location prompt.
func WithSaveDialog(d SaveDialog) Option { return func(c *Controller) { c.dialog = d } }

// WithClipboard sets the clipboard sink.
func WithClipboard(cb Clipboard) Option { return func(c *Controller) { c.clip = cb } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n Notifier) Option { return func(c *Controller) { c.notifier = n } }

// WithShortcuts replaces the default binding table.
func WithShortcuts(t *shortcut.Table) Option { return func(c *Controller) { c.Shortcuts = t } }

// WithClock overrides time.Now and time.Sleep.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(c *Controller) {
		c.now = now
		c.sleep = sleep
	}
}

// WithEncoder overrides PNG encoding of grabbed images.
func WithEncoder(fn func(image.Image) ([]byte, error)) Option {
	return func(c *Controller) { c.encode = fn }
}

// WithFileWriter overrides how saved images reach the disk.
func WithFileWriter(fn func(path string, img image.Image, encoded []byte) error) Option {
	return func(c *Controller) { c.write = fn }
}

// New creates an idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		Store:     annotate.NewStore(),
		Timer:     &timer.Timer{},
		Shortcuts: shortcut.Default(),
		opts:      DefaultOptions(),
		window:    noopWindow{},
		notifier:  noopNotifier{},
		now:       time.Now,
		sleep:     time.Sleep,
		encode:    encodePNG,
		write:     savefile.Write,
	}
	for _, o := range opts {
		o(c)
	}
	c.State.Screen = c.opts.Screen
	return c
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Shot returns the most recent capture, or nil.
func (c *Controller) Shot() *image.RGBA { return c.shot }

// PNG returns the encoded bytes of the most recent capture.
func (c *Controller) PNG() []byte { return c.encoded }

// Closed reports whether Close has been run.
func (c *Controller) Closed() bool { return c.closed }

// HandleChord resolves a key chord through the shortcut table and runs the
// bound action. handled is false when no active binding matched.
func (c *Controller) HandleChord(ch shortcut.Chord) (effects []Effect, handled bool, err error) {
	a, ok := c.Shortcuts.Lookup(ch, c.State.ViewerOpen)
	if !ok {
		return nil, false, nil
	}
	effects, err = c.RunAction(a)
	return effects, true, err
}

// RunAction executes a single action and returns the effects it issued.
func (c *Controller) RunAction(a action.Action) ([]Effect, error) {
	if a.RequiresViewer() && !c.State.ViewerOpen {
		return nil, fmt.Errorf("%s: %w", a, ErrViewerClosed)
	}
	switch a {
	case action.SetEntireScreen:
		c.State.Selection = SelectScreen
	case action.SetSelection:
		c.State.Selection = SelectRegion
	case action.OpenTimerForm:
		c.Timer.OpenForm()
	case action.StartTimer:
		if c.Timer.Start(c.now()) {
			return c.arm(c.State.Selection == SelectRegion), nil
		}
	case action.HandleTimerTick:
		return c.tick(c.now()), nil
	case action.CancelTimer:
		c.Timer.Cancel()
	case action.OpenOptions:
		c.State.OptionsOpen = true
	case action.Capture:
		return c.arm(c.State.Selection == SelectRegion), nil
	case action.Close:
		c.closed = true
		return []Effect{c.do(Effect{Kind: EffectCloseApp})}, nil
	case action.Modify:
		c.State.Annotating = true
	case action.TakeAnotherScreenshot:
		return c.takeAnother(), nil
	case action.Save:
		return c.save()
	case action.Copy:
		return c.copyImage()
	case action.Undo:
		c.Store.Undo()
	default:
		return nil, fmt.Errorf("run %s: unknown action", a)
	}
	return nil, nil
}

// Frame runs the per-frame pass: it restores or grabs around a pending
// capture, advances a running timer and places committed text.
func (c *Controller) Frame(now time.Time) ([]Effect, error) {
	var effects []Effect
	switch c.State.Phase {
	case PhaseRestoring:
		c.sleep(c.opts.RestoreDelay)
		effects = append(effects, c.do(Effect{Kind: EffectShowWindow}))
		c.State.Phase = PhaseStable
	case PhaseHiding:
		grabbed, err := c.grab()
		effects = append(effects, grabbed...)
		if err != nil {
			return effects, err
		}
	}
	if c.Timer.Running {
		effects = append(effects, c.tick(now)...)
	}
	c.Store.PlacePendingText(c.textAnchor)
	return effects, nil
}

func (c *Controller) tick(now time.Time) []Effect {
	if c.Timer.Tick(now) {
		return c.arm(c.State.Selection == SelectRegion)
	}
	return nil
}

// arm hides the window; the grab happens on the next Frame.
func (c *Controller) arm(region bool) []Effect {
	if c.State.Phase == PhaseHiding || c.State.Phase == PhaseSettling {
		return nil
	}
	c.State.WindowHidden = true
	c.State.PendingRegion = region
	c.State.Phase = PhaseHiding
	return []Effect{c.do(Effect{Kind: EffectHideWindow})}
}

func (c *Controller) grab() ([]Effect, error) {
	c.State.Phase = PhaseSettling
	c.sleep(c.opts.SettleDelay)

	eff := Effect{Kind: EffectCapture}
	var (
		img    *image.RGBA
		err    error
		detail string
	)
	if c.capturer == nil {
		err = errors.New("no capture backend")
	} else if c.State.PendingRegion {
		r := c.State.Region
		eff.Region = &r
		x, y, w, h := r.Floor()
		detail = fmt.Sprintf("region %s", r)
		img, err = c.capturer.CaptureRegion(x, y, w, h)
	} else {
		detail = fmt.Sprintf("screen %d", c.State.Screen)
		img, err = c.capturer.CaptureFull(c.State.Screen)
	}
	effects := []Effect{eff}

	c.State.WindowHidden = false
	c.State.PendingRegion = false
	if err == nil && img == nil {
		err = errors.New("backend returned no image")
	}
	if err != nil {
		log.Printf("capture: %v", err)
		c.State.Phase = PhaseStable
		effects = append(effects, c.do(Effect{Kind: EffectShowWindow}))
		return effects, fmt.Errorf("%w: %w", ErrCapture, err)
	}
	encoded, err := c.encode(img)
	if err != nil {
		log.Printf("encode: %v", err)
		c.resetToIdle()
		c.State.Selection = SelectScreen
		c.State.Phase = PhaseStable
		effects = append(effects, c.do(Effect{Kind: EffectShowWindow}))
		return effects, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	c.shot = img
	c.encoded = encoded
	c.State.ViewerOpen = true
	c.State.Annotating = false
	c.State.Tool = annotate.ToolNotSelected
	c.Store.Clear()
	c.State.Phase = PhaseRestoring
	c.notifier.Capture(detail, img)
	return effects, nil
}

func (c *Controller) resetToIdle() {
	c.shot = nil
	c.encoded = nil
	c.State.ViewerOpen = false
	c.State.Annotating = false
	c.State.Tool = annotate.ToolNotSelected
	c.Store.Clear()
}

func (c *Controller) takeAnother() []Effect {
	c.resetToIdle()
	c.State.Selection = SelectScreen
	c.State.Phase = PhaseRestoring
	return []Effect{c.do(Effect{Kind: EffectHideWindow})}
}

func (c *Controller) save() ([]Effect, error) {
	name, err := savefile.DefaultNameAsync(context.Background(), c.now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSave, err)
	}
	dir := savefile.ResolveDir(c.opts.SaveDir)
	if c.dialog == nil {
		return nil, fmt.Errorf("%w: no save dialog", ErrSave)
	}
	effects := []Effect{{Kind: EffectOpenSaveDialog, Name: name, Dir: dir}}
	path, ok, err := c.dialog.SaveFile(name, dir)
	if err != nil {
		log.Printf("save dialog in %s: %v", dir, err)
		fallback := savefile.HomeDir()
		effects = append(effects, Effect{Kind: EffectOpenSaveDialog, Name: name, Dir: fallback})
		path, ok, err = c.dialog.SaveFile(name, fallback)
		if err != nil {
			return effects, fmt.Errorf("%w: %w", ErrSave, err)
		}
	}
	if !ok {
		return effects, nil
	}
	effects = append(effects, Effect{Kind: EffectWriteFile, Path: path})
	var img image.Image
	if c.shot != nil {
		img = c.shot
	}
	if err := c.write(path, img, c.encoded); err != nil {
		log.Printf("save: %v", err)
		return effects, fmt.Errorf("%w: %w", ErrSave, err)
	}
	c.notifier.Save(path)
	return effects, nil
}

func (c *Controller) copyImage() ([]Effect, error) {
	if c.clip == nil {
		return nil, fmt.Errorf("%w: no clipboard", ErrClipboard)
	}
	if c.shot == nil {
		return nil, fmt.Errorf("copy: %w", ErrViewerClosed)
	}
	effects := []Effect{{Kind: EffectWriteClipboard}}
	if err := c.clip.WriteImage(clipboard.FromRGBA(c.shot)); err != nil {
		log.Printf("copy: %v", err)
		return effects, fmt.Errorf("%w: %w", ErrClipboard, err)
	}
	c.notifier.Copy("image")
	return effects, nil
}

// do forwards visibility effects to the window. Failures are logged only.
func (c *Controller) do(e Effect) Effect {
	var err error
	switch e.Kind {
	case EffectHideWindow:
		err = c.window.Hide()
	case EffectShowWindow:
		err = c.window.Show()
	case EffectCloseApp:
		err = c.window.Close()
	}
	if err != nil {
		log.Printf("window %s: %v", e.Kind, err)
	}
	return e
}

// SetSelectionBounds records the selection window's bounds as reported by
// the UI, mapped to screen pixels.
func (c *Controller) SetSelectionBounds(bounds Region) {
	c.locate()
	c.State.Region = c.opts.Geometry.Adjust(bounds)
}

// locate refreshes the geometry offset from the window's on-screen origin.
// A failing lookup keeps the last known offset and is logged once.
func (c *Controller) locate() {
	l, ok := c.window.(Locator)
	if !ok {
		return
	}
	x, y, err := l.Origin()
	if err != nil {
		if !c.lostOrigin {
			log.Printf("window origin: %v", err)
			c.lostOrigin = true
		}
		return
	}
	c.lostOrigin = false
	c.opts.Geometry.OffsetX = float64(x)
	c.opts.Geometry.OffsetY = float64(y)
}

// SelectTool picks the annotation tool. It is ignored outside annotation.
func (c *Controller) SelectTool(t annotate.Tool) {
	if !c.State.Annotating {
		return
	}
	c.State.Tool = t
}

// Track forwards one frame of pointer state to the store for the selected
// stroke tool.
func (c *Controller) Track(pos annotate.Point, pressed bool) bool {
	if !c.State.Annotating || !c.State.Tool.Stroke() {
		return false
	}
	return c.Store.Track(c.State.Tool, pos, pressed)
}

// StageText replaces the text draft.
func (c *Controller) StageText(s string) { c.Store.Draft = s }

// SetTextAnchor sets where the next committed text is placed.
func (c *Controller) SetTextAnchor(p annotate.Point) { c.textAnchor = p }

// CommitText commits the draft; it lands at the anchor on the next Frame.
func (c *Controller) CommitText() bool {
	if !c.State.Annotating || c.State.Tool != annotate.ToolText || c.Store.TextPending() {
		return false
	}
	c.Store.CommitText()
	return true
}

// CancelAnnotation drops every annotation and leaves annotation mode.
func (c *Controller) CancelAnnotation() {
	c.Store.Clear()
	c.State.Annotating = false
	c.State.Tool = annotate.ToolNotSelected
}

// SaveModify re-captures the annotated canvas, given by its window-local
// bounds, as the new image.
func (c *Controller) SaveModify(canvas Region) ([]Effect, error) {
	return c.recapture(canvas)
}

// SaveCrop re-captures the crop rectangle as the new image.
func (c *Controller) SaveCrop(bounds Region) ([]Effect, error) {
	return c.recapture(bounds)
}

func (c *Controller) recapture(bounds Region) ([]Effect, error) {
	if !c.State.ViewerOpen {
		return nil, fmt.Errorf("recapture: %w", ErrViewerClosed)
	}
	c.locate()
	c.State.Region = c.opts.Geometry.Adjust(bounds)
	c.State.Annotating = false
	c.State.Tool = annotate.ToolNotSelected
	return c.arm(true), nil
}

// ApplyAnnotations burns the annotations into the current image without a
// screen grab. A non-nil crop keeps only that part, in image coordinates.
func (c *Controller) ApplyAnnotations(crop *image.Rectangle) error {
	if !c.State.ViewerOpen || c.shot == nil {
		return fmt.Errorf("apply annotations: %w", ErrViewerClosed)
	}
	img := c.Store.Flatten(c.shot)
	if crop != nil {
		r := crop.Intersect(img.Bounds())
		if r.Empty() {
			return fmt.Errorf("crop %v: outside the image", *crop)
		}
		out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
		img = out
	}
	encoded, err := c.encode(img)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	c.shot = img
	c.encoded = encoded
	c.CancelAnnotation()
	return nil
}

// SetTimerSeconds sets the countdown length entered in the timer form.
func (c *Controller) SetTimerSeconds(n uint32) {
	if c.Timer.Running {
		return
	}
	c.Timer.Seconds = n
}
