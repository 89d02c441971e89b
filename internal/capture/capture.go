// Package capture grabs pixels from the desktop.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
)

var errEmptyRegion = errors.New("region is empty")

// Backend produces pixels for rectangles of the virtual desktop.
type Backend interface {
	Name() string
	Displays() ([]Display, error)
	Grab(rect image.Rectangle) (*image.RGBA, error)
}

// Grabber captures whole displays or regions through a Backend.
type Grabber struct {
	backend Backend
}

// Option configures a Grabber.
type Option func(*Grabber)

// WithBackend replaces the automatically chosen backend.
func WithBackend(b Backend) Option {
	return func(g *Grabber) { g.backend = b }
}

// New returns a Grabber. Without WithBackend it uses the desktop portal on
// Wayland sessions and direct screen reads elsewhere.
func New(opts ...Option) *Grabber {
	g := &Grabber{}
	for _, o := range opts {
		o(g)
	}
	if g.backend == nil {
		g.backend = defaultBackend()
	}
	return g
}

func defaultBackend() Backend {
	if runningOnWayland() {
		return portalBackend{}
	}
	return screenBackend{}
}

// NewBackend resolves a backend by name. "auto" or "" picks the default.
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", "auto":
		return defaultBackend(), nil
	case "screen", "direct":
		return screenBackend{}, nil
	case "portal":
		return portalBackend{}, nil
	}
	return nil, fmt.Errorf("unknown capture backend %q", name)
}

// Backend returns the backend in use.
func (g *Grabber) Backend() Backend { return g.backend }

// Displays lists the connected displays.
func (g *Grabber) Displays() ([]Display, error) {
	displays, err := g.backend.Displays()
	if err != nil {
		return nil, fmt.Errorf("%s displays: %w", g.backend.Name(), err)
	}
	if len(displays) == 0 {
		return nil, errNoDisplays
	}
	return displays, nil
}

// CaptureFull grabs the display with the given index.
func (g *Grabber) CaptureFull(screen int) (*image.RGBA, error) {
	displays, err := g.Displays()
	if err != nil {
		return nil, err
	}
	if screen < 0 || screen >= len(displays) {
		return nil, fmt.Errorf("display index %d out of range", screen)
	}
	return g.grab(displays[screen].Rect)
}

// CaptureDisplay grabs the display matching selector, see FindDisplay.
func (g *Grabber) CaptureDisplay(selector string) (*image.RGBA, Display, error) {
	displays, err := g.Displays()
	if err != nil {
		return nil, Display{}, err
	}
	d, err := FindDisplay(displays, selector)
	if err != nil {
		return nil, Display{}, err
	}
	img, err := g.grab(d.Rect)
	if err != nil {
		return nil, Display{}, err
	}
	return img, d, nil
}

// CaptureRegion grabs a rectangle in global screen coordinates.
func (g *Grabber) CaptureRegion(x, y int, width, height uint32) (*image.RGBA, error) {
	rect := image.Rect(x, y, x+int(width), y+int(height))
	if rect.Empty() {
		return nil, fmt.Errorf("capture %dx%d+%d+%d: %w", width, height, x, y, errEmptyRegion)
	}
	return g.grab(rect)
}

func (g *Grabber) grab(rect image.Rectangle) (*image.RGBA, error) {
	img, err := g.backend.Grab(rect)
	if err != nil {
		log.Printf("capture %s via %s: %v", rect, g.backend.Name(), err)
		return nil, fmt.Errorf("%s capture: %w", g.backend.Name(), err)
	}
	return img, nil
}

// cropToRect copies rect out of a full desktop image whose origin is at
// screen coordinate origin.
func cropToRect(src *image.RGBA, origin image.Point, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Sub(origin).Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
