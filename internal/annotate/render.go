package annotate

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce sync.Once
	regular  *opentype.Font
	fontErr  error
	faces    sync.Map // map[float64]font.Face
)

func faceForSize(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse font: %w", fontErr)
	}
	if f, ok := faces.Load(size); ok {
		return f.(font.Face), nil
	}
	face, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	faces.Store(size, face)
	return face, nil
}

// Render draws every element onto dst. origin is where canvas (0,0) lands in
// dst, so callers can draw into a larger frame.
func (s *Store) Render(dst *image.RGBA, origin image.Point) {
	for _, sh := range s.Shapes() {
		RenderShape(dst, origin, sh)
	}
	for _, tb := range s.texts {
		if err := RenderText(dst, origin, tb); err != nil {
			log.Printf("render text: %v", err)
		}
	}
}

// Flatten returns a copy of img with the elements drawn on top.
func (s *Store) Flatten(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	s.Render(out, image.Point{})
	return out
}

// RenderShape draws one stroke element. Pen strokes are polylines, the
// other tools only use the first and last sample.
func RenderShape(dst *image.RGBA, origin image.Point, sh Shape) {
	if len(sh.Points) < 2 {
		return
	}
	col := sh.Style.Color
	thick := int(math.Max(1, math.Round(sh.Style.Width)))
	first := toPixel(origin, sh.Points[0])
	last := toPixel(origin, sh.Points[len(sh.Points)-1])
	switch sh.Tool {
	case ToolPen:
		pts := make([]image.Point, len(sh.Points))
		for i, p := range sh.Points {
			pts[i] = toPixel(origin, p)
		}
		drawPolyline(dst, pts, col, thick)
	case ToolLine:
		drawLine(dst, first.X, first.Y, last.X, last.Y, col, thick)
	case ToolArrow:
		drawArrow(dst, first.X, first.Y, last.X, last.Y, col, thick)
	case ToolRect:
		drawRect(dst, image.Rectangle{Min: first, Max: last}, col, thick)
	case ToolCircle:
		r := int(math.Round(sh.Points[0].Dist(sh.Points[len(sh.Points)-1])))
		drawCircle(dst, first.X, first.Y, r, col, thick)
	}
}

// RenderText draws a text box with its top-left corner at the anchor.
func RenderText(dst *image.RGBA, origin image.Point, tb TextBox) error {
	face, err := faceForSize(tb.Style.TextSize())
	if err != nil {
		return err
	}
	at := toPixel(origin, tb.Anchor)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(tb.Style.Color),
		Face: face,
		Dot:  fixed.P(at.X, at.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(tb.Text)
	return nil
}

func toPixel(origin image.Point, p Point) image.Point {
	return image.Pt(origin.X+int(math.Floor(p.X)), origin.Y+int(math.Floor(p.Y)))
}
