// Package clipboard publishes captured images to the system clipboard.
package clipboard

import (
	"fmt"
	"image"
)

// Image is a raw RGBA pixel payload.
type Image struct {
	Width  int
	Height int
	// Pix holds Width*Height*4 bytes, row major, no padding.
	Pix []byte
}

// FromRGBA copies img into a tightly packed payload.
func FromRGBA(img *image.RGBA) Image {
	b := img.Bounds()
	out := Image{Width: b.Dx(), Height: b.Dy(), Pix: make([]byte, b.Dx()*b.Dy()*4)}
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(out.Pix[y*out.Width*4:(y+1)*out.Width*4], row[:out.Width*4])
	}
	return out
}

// RGBA wraps the payload as an image without copying.
func (i Image) RGBA() (*image.RGBA, error) {
	if i.Width < 0 || i.Height < 0 || len(i.Pix) != i.Width*i.Height*4 {
		return nil, fmt.Errorf("clipboard image %dx%d has %d bytes", i.Width, i.Height, len(i.Pix))
	}
	return &image.RGBA{Pix: i.Pix, Stride: i.Width * 4, Rect: image.Rect(0, 0, i.Width, i.Height)}, nil
}

// System writes to the desktop clipboard.
type System struct{}

// WriteImage publishes the payload as PNG.
func (System) WriteImage(img Image) error {
	rgba, err := img.RGBA()
	if err != nil {
		return err
	}
	return WriteImage(rgba)
}
