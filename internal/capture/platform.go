package capture

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

var errNoDisplays = errors.New("no displays available")

// Display describes one monitor in the desktop layout.
type Display struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

func (d Display) String() string {
	name := d.Name
	if name == "" {
		name = "display"
	}
	s := fmt.Sprintf("#%d %s %dx%d+%d+%d", d.Index, name, d.Rect.Dx(), d.Rect.Dy(), d.Rect.Min.X, d.Rect.Min.Y)
	if d.Primary {
		s += " (primary)"
	}
	return s
}

// FindDisplay resolves a selector: empty for the first display, "primary",
// an index with optional leading '#', or part of a display name.
func FindDisplay(displays []Display, selector string) (Display, error) {
	if len(displays) == 0 {
		return Display{}, errNoDisplays
	}
	if selector == "" {
		return displays[0], nil
	}
	sel := strings.TrimSpace(selector)
	lower := strings.ToLower(sel)
	if lower == "primary" {
		for _, d := range displays {
			if d.Primary {
				return d, nil
			}
		}
		return displays[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(displays) {
			return Display{}, fmt.Errorf("display index %d out of range", idx)
		}
		return displays[idx], nil
	}
	for _, d := range displays {
		if strings.Contains(strings.ToLower(d.Name), lower) {
			return d, nil
		}
	}
	return Display{}, fmt.Errorf("display %q not found", selector)
}

// desktopBounds is the union of all display rectangles.
func desktopBounds(displays []Display) image.Rectangle {
	var r image.Rectangle
	for i, d := range displays {
		if i == 0 {
			r = d.Rect
			continue
		}
		r = r.Union(d.Rect)
	}
	return r
}
