package viewer

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/session"
	"github.com/example/snapmark/internal/shortcut"
)

var red = color.RGBA{R: 255, A: 255}

type stubCapturer struct {
	regions int
	rects   []image.Rectangle
}

func (s *stubCapturer) CaptureFull(int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	img.SetRGBA(0, 0, red)
	return img, nil
}

func (s *stubCapturer) CaptureRegion(x, y int, w, h uint32) (*image.RGBA, error) {
	s.regions++
	s.rects = append(s.rects, image.Rect(x, y, x+int(w), y+int(h)))
	return image.NewRGBA(image.Rect(0, 0, int(w), int(h))), nil
}

var epoch = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// placedWindow is a window whose client area sits at a fixed screen origin.
type placedWindow struct{ x, y int }

func (placedWindow) Hide() error  { return nil }
func (placedWindow) Show() error  { return nil }
func (placedWindow) Close() error { return nil }

func (w placedWindow) Origin() (int, int, error) { return w.x, w.y, nil }

func newViewer(t *testing.T, opts ...Option) (*Viewer, *stubCapturer) {
	t.Helper()
	return newViewerIn(t, nil, opts...)
}

// newViewerIn builds a viewer whose controller hides and shows win.
func newViewerIn(t *testing.T, win session.Window, opts ...Option) (*Viewer, *stubCapturer) {
	t.Helper()
	grab := &stubCapturer{}
	sopts := []session.Option{
		session.WithCapturer(grab),
		session.WithShortcuts(shortcut.Default()),
		session.WithClock(func() time.Time { return epoch }, func(time.Duration) {}),
	}
	if win != nil {
		sopts = append(sopts, session.WithWindow(win))
	}
	ctrl := session.New(sopts...)
	v := New(ctrl, opts...)
	v.now = func() time.Time { return epoch }
	return v, grab
}

// open captures the full screen and runs the two frames around the grab.
func open(t *testing.T, v *Viewer) {
	t.Helper()
	_, err := v.ctrl.RunAction(action.Capture)
	require.NoError(t, err)
	require.False(t, v.frame(epoch))
	require.False(t, v.frame(epoch))
	require.True(t, v.ctrl.State.ViewerOpen)
}

func press(r rune) key.Event {
	return key.Event{Rune: r, Direction: key.DirPress}
}

func pressCode(code key.Code, mods key.Modifiers) key.Event {
	return key.Event{Rune: -1, Code: code, Modifiers: mods, Direction: key.DirPress}
}

func pointer(v *Viewer, x, y int, dir mouse.Direction) {
	v.handleMouse(mouse.Event{X: float32(x), Y: float32(y), Button: mouse.ButtonLeft, Direction: dir})
}

func TestLayoutFitsAndCenters(t *testing.T) {
	l := newLayout(image.Rect(0, 0, 200, 100), 800, 600)
	assert.Equal(t, 1.0, l.zoom)
	assert.Equal(t, image.Rect(300, 238, 500, 338), l.canvas)

	big := newLayout(image.Rect(0, 0, 1600, 1200), 800, 600)
	assert.Less(t, big.zoom, 1.0)
	assert.True(t, big.canvas.In(image.Rect(0, 0, 800, 600-statusHeight)))
	assert.Equal(t, annotate.Point{}, big.toImage(big.canvas.Min))
}

func TestLayoutRoundTrip(t *testing.T) {
	l := newLayout(image.Rect(0, 0, 200, 100), 800, 600)
	r := image.Rect(10, 20, 30, 40)
	assert.Equal(t, image.Rect(310, 258, 330, 278), l.toWindow(r))
	assert.Equal(t, annotate.Point{X: 10, Y: 20}, l.toImage(image.Pt(310, 258)))
	assert.True(t, l.contains(image.Pt(310, 258)))
	assert.False(t, l.contains(image.Pt(10, 10)))
}

func TestImageRectIsCanonical(t *testing.T) {
	got := imageRect(annotate.Point{X: 20.7, Y: 5.2}, annotate.Point{X: 3.1, Y: 9.9})
	assert.Equal(t, image.Rect(3, 5, 20, 9), got)
}

func TestArmingReportsWindowBounds(t *testing.T) {
	v, grab := newViewerIn(t, placedWindow{x: 250, y: 120}, WithSize(640, 480))
	_, err := v.ctrl.RunAction(action.SetSelection)
	require.NoError(t, err)

	v.frame(epoch)
	assert.Equal(t, session.Region{X: 250, Y: 120, Width: 640, Height: 480}, v.ctrl.State.Region)

	_, err = v.ctrl.RunAction(action.Capture)
	require.NoError(t, err)
	v.frame(epoch)
	assert.Equal(t, []image.Rectangle{image.Rect(250, 120, 890, 600)}, grab.rects)
	assert.True(t, v.ctrl.State.ViewerOpen)
}

func TestArmingWithoutWindowPosition(t *testing.T) {
	v, _ := newViewer(t, WithSize(640, 480))
	_, err := v.ctrl.RunAction(action.SetSelection)
	require.NoError(t, err)
	v.frame(epoch)
	assert.Equal(t, session.Region{Width: 640, Height: 480}, v.ctrl.State.Region)
}

func TestPenStrokeFromPointer(t *testing.T) {
	v, _ := newViewer(t)
	open(t, v)
	_, err := v.ctrl.RunAction(action.Modify)
	require.NoError(t, err)
	v.handleKey(press('p'))
	require.Equal(t, annotate.ToolPen, v.ctrl.State.Tool)

	pointer(v, 310, 248, mouse.DirPress)
	v.frame(epoch)
	pointer(v, 320, 258, mouse.DirNone)
	v.frame(epoch)
	pointer(v, 320, 258, mouse.DirRelease)
	v.frame(epoch)

	shapes := v.ctrl.Store.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, []annotate.Point{{X: 10, Y: 10}, {X: 20, Y: 20}}, shapes[0].Points)
	assert.Equal(t, 1, v.ctrl.Store.UndoLen())
}

func TestToolKeysNeedAnnotation(t *testing.T) {
	v, _ := newViewer(t)
	open(t, v)
	v.handleKey(press('r'))
	assert.Equal(t, annotate.ToolNotSelected, v.ctrl.State.Tool)
}

func TestTextEntryCommitsOnNextFrame(t *testing.T) {
	v, _ := newViewer(t)
	open(t, v)
	_, err := v.ctrl.RunAction(action.Modify)
	require.NoError(t, err)
	v.handleKey(press('t'))

	pointer(v, 340, 268, mouse.DirPress)
	require.True(t, v.editing)
	v.handleKey(press('h'))
	v.handleKey(press('i'))
	v.handleKey(press('x'))
	v.handleKey(pressCode(key.CodeDeleteBackspace, 0))
	assert.Equal(t, "hi", v.ctrl.Store.Draft)

	v.handleKey(pressCode(key.CodeReturnEnter, 0))
	assert.False(t, v.editing)
	assert.Empty(t, v.ctrl.Store.Texts())

	v.frame(epoch)
	texts := v.ctrl.Store.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "hi", texts[0].Text)
	assert.Equal(t, annotate.Point{X: 40, Y: 30}, texts[0].Anchor)
	assert.Equal(t, annotate.DefaultText, v.ctrl.Store.Draft)
}

func TestCropApplyKeepsSelection(t *testing.T) {
	v, grab := newViewer(t)
	open(t, v)
	_, err := v.ctrl.RunAction(action.Modify)
	require.NoError(t, err)
	v.handleKey(press('k'))

	pointer(v, 300, 238, mouse.DirPress)
	pointer(v, 340, 258, mouse.DirNone)
	pointer(v, 350, 268, mouse.DirRelease)
	assert.Equal(t, image.Rect(0, 0, 50, 30), v.crop)

	v.handleKey(pressCode(key.CodeReturnEnter, 0))
	shot := v.ctrl.Shot()
	require.NotNil(t, shot)
	assert.Equal(t, image.Pt(50, 30), shot.Bounds().Size())
	assert.Equal(t, red, shot.RGBAAt(0, 0))
	assert.False(t, v.ctrl.State.Annotating)
	assert.Zero(t, grab.regions)
}

func TestRecaptureCropUsesWindowBounds(t *testing.T) {
	v, grab := newViewerIn(t, placedWindow{x: 100, y: 40}, WithRecapture(true))
	open(t, v)
	_, err := v.ctrl.RunAction(action.Modify)
	require.NoError(t, err)
	v.handleKey(press('k'))
	pointer(v, 310, 248, mouse.DirPress)
	pointer(v, 330, 258, mouse.DirRelease)

	v.handleKey(pressCode(key.CodeReturnEnter, 0))
	assert.Equal(t, session.Region{X: 410, Y: 288, Width: 20, Height: 10}, v.ctrl.State.Region)
	assert.Equal(t, session.PhaseHiding, v.ctrl.State.Phase)
	v.frame(epoch)
	assert.Equal(t, []image.Rectangle{image.Rect(410, 288, 430, 298)}, grab.rects)
}

func TestEscapeCancelsAnnotation(t *testing.T) {
	v, _ := newViewer(t)
	open(t, v)
	_, err := v.ctrl.RunAction(action.Modify)
	require.NoError(t, err)
	v.handleKey(press('l'))
	v.ctrl.Track(annotate.Point{X: 1, Y: 1}, true)
	v.ctrl.Track(annotate.Point{X: 5, Y: 5}, true)
	v.ctrl.Track(annotate.Point{X: 5, Y: 5}, false)

	v.handleKey(pressCode(key.CodeEscape, 0))
	assert.False(t, v.ctrl.State.Annotating)
	assert.True(t, v.ctrl.Store.Empty())
}

func TestChordsDispatchThroughController(t *testing.T) {
	v, _ := newViewer(t)
	assert.False(t, v.handleKey(pressCode(key.CodeT, key.ModControl)))
	require.True(t, v.ctrl.Timer.FormOpen)

	v.handleKey(press('1'))
	v.handleKey(press('2'))
	assert.Equal(t, uint32(12), v.ctrl.Timer.Seconds)

	v.handleKey(pressCode(key.CodeEscape, 0))
	assert.False(t, v.ctrl.Timer.FormOpen)

	assert.True(t, v.handleKey(pressCode(key.CodeX, key.ModControl)))
	assert.True(t, v.ctrl.Closed())
}

func TestViewerChordIgnoredWithoutImage(t *testing.T) {
	v, _ := newViewer(t)
	before := v.ctrl.State
	assert.False(t, v.handleKey(pressCode(key.CodeS, key.ModControl)))
	assert.Empty(t, v.message)
	assert.Equal(t, before, v.ctrl.State)
}

func TestStrokeWidthKeys(t *testing.T) {
	v, _ := newViewer(t)
	v.handleKey(press('+'))
	v.handleKey(press('+'))
	v.handleKey(press('-'))
	assert.Equal(t, 2.0, v.ctrl.Store.Style.Width)
	for i := 0; i < 5; i++ {
		v.handleKey(press('-'))
	}
	assert.Equal(t, 1.0, v.ctrl.Store.Style.Width)
}

func TestRenderFrame(t *testing.T) {
	v, _ := newViewer(t)
	open(t, v)
	st := v.snapshot(epoch)
	dst := image.NewRGBA(image.Rect(0, 0, st.width, st.height))

	require.True(t, renderFrame(context.Background(), dst, st))
	assert.Equal(t, red, dst.RGBAAt(300, 238))
	assert.Equal(t, backdrop, dst.RGBAAt(5, 5))
	assert.Equal(t, statusFill, dst.RGBAAt(st.width-1, st.height-1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, renderFrame(ctx, dst, st))
}

func TestStatusLine(t *testing.T) {
	v, _ := newViewer(t)
	assert.Equal(t, "idle", statusLine(v.snapshot(epoch)))
	open(t, v)
	assert.Equal(t, "viewing  |  200x100  100%", statusLine(v.snapshot(epoch)))
}
