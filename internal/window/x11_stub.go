//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package window

import "errors"

// X11 is unavailable on this platform.
type X11 struct{}

// NewX11 always fails here.
func NewX11() (*X11, error) {
	return nil, errors.New("x11 window control is not supported on this platform")
}

func (*X11) Hide() error  { return nil }
func (*X11) Show() error  { return nil }
func (*X11) Close() error { return nil }

func (*X11) Origin() (int, int, error) {
	return 0, 0, errors.New("x11 window control is not supported on this platform")
}
