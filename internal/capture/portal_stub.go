//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"errors"
	"image"
)

var errNoPortal = errors.New("the desktop portal is not available on this platform")

type portalBackend struct{}

func (portalBackend) Name() string { return "portal" }

func (portalBackend) Displays() ([]Display, error) { return nil, errNoPortal }

func (portalBackend) Grab(image.Rectangle) (*image.RGBA, error) { return nil, errNoPortal }
