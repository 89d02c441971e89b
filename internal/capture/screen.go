package capture

import (
	"image"

	"github.com/kbinani/screenshot"
)

// screenBackend reads the framebuffer directly (X11 SHM, GDI, CoreGraphics).
type screenBackend struct{}

func (screenBackend) Name() string { return "screen" }

func (screenBackend) Displays() ([]Display, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, errNoDisplays
	}
	displays := make([]Display, n)
	for i := range displays {
		displays[i] = Display{Index: i, Rect: screenshot.GetDisplayBounds(i), Primary: i == 0}
	}
	nameDisplays(displays)
	return displays, nil
}

func (screenBackend) Grab(rect image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(rect)
}
