package annotate

import (
	"image"
	"image/color"
	"math"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	b := img.Bounds()
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(b) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// drawLine is Bresenham with a square brush of side thick.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawPolyline(img *image.RGBA, pts []image.Point, col color.Color, thick int) {
	for i := 1; i < len(pts); i++ {
		drawLine(img, pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, col, thick)
	}
}

// drawCircleThin plots a one pixel midpoint circle.
func drawCircleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	x, y := r, 0
	err := 1 - r
	b := img.Bounds()
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			pt := image.Pt(cx+p[0], cy+p[1])
			if pt.In(b) {
				img.Set(pt.X, pt.Y, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

func drawCircle(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	if thick <= 1 {
		drawCircleThin(img, cx, cy, r, col)
		return
	}
	start := -thick / 2
	for i := 0; i < thick; i++ {
		if rr := r + start + i; rr >= 0 {
			drawCircleThin(img, cx, cy, rr, col)
		}
	}
}

// drawArrow draws the shaft and two head strokes at ±30° from it.
func drawArrow(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	drawLine(img, x0, y0, x1, y1, col, thick)
	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	size := float64(6 + thick*2)
	for _, a := range []float64{angle + math.Pi/6, angle - math.Pi/6} {
		hx := x1 - int(math.Cos(a)*size)
		hy := y1 - int(math.Sin(a)*size)
		drawLine(img, x1, y1, hx, hy, col, thick)
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	rect = rect.Canon()
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, col, thick)
	drawLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, col, thick)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
