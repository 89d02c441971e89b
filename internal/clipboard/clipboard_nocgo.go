//go:build !windows && !((linux || freebsd || openbsd || netbsd || dragonfly || darwin) && cgo)

package clipboard

import (
	"errors"
	"image"
)

var errCGODisabled = errors.New("clipboard operations require cgo support")

// WriteImage always fails without cgo.
func WriteImage(image.Image) error {
	return errCGODisabled
}
