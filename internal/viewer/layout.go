package viewer

import (
	"image"
	"math"

	"github.com/example/snapmark/internal/annotate"
)

const (
	statusHeight = 24
	margin       = 8
)

// layout places the captured image inside the window.
type layout struct {
	canvas image.Rectangle
	zoom   float64
}

func fitZoom(img image.Rectangle, winW, winH int) float64 {
	availW := winW - 2*margin
	availH := winH - statusHeight - 2*margin
	if img.Dx() == 0 || img.Dy() == 0 || availW <= 0 || availH <= 0 {
		return 1
	}
	zx := float64(availW) / float64(img.Dx())
	zy := float64(availH) / float64(img.Dy())
	z := math.Min(zx, zy)
	if z > 1 {
		return 1
	}
	return z
}

func newLayout(img image.Rectangle, winW, winH int) layout {
	zoom := fitZoom(img, winW, winH)
	w := int(float64(img.Dx()) * zoom)
	h := int(float64(img.Dy()) * zoom)
	x0 := (winW - w) / 2
	y0 := (winH - statusHeight - h) / 2
	x0 = max(x0, 0)
	y0 = max(y0, 0)
	return layout{canvas: image.Rect(x0, y0, x0+w, y0+h), zoom: zoom}
}

// toImage maps a window pixel to image coordinates.
func (l layout) toImage(p image.Point) annotate.Point {
	return annotate.Point{
		X: float64(p.X-l.canvas.Min.X) / l.zoom,
		Y: float64(p.Y-l.canvas.Min.Y) / l.zoom,
	}
}

func (l layout) contains(p image.Point) bool {
	return p.In(l.canvas)
}

// imageRect converts a rectangle between two image points to whole pixels.
func imageRect(a, b annotate.Point) image.Rectangle {
	return image.Rect(
		int(math.Floor(a.X)), int(math.Floor(a.Y)),
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
	).Canon()
}

// toWindow maps an image rectangle back to window pixels.
func (l layout) toWindow(r image.Rectangle) image.Rectangle {
	return image.Rect(
		l.canvas.Min.X+int(float64(r.Min.X)*l.zoom),
		l.canvas.Min.Y+int(float64(r.Min.Y)*l.zoom),
		l.canvas.Min.X+int(float64(r.Max.X)*l.zoom),
		l.canvas.Min.Y+int(float64(r.Max.Y)*l.zoom),
	)
}
