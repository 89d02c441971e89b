// Package window hides and shows the application's own top-level windows
// around a screen grab.
package window

import (
	"errors"
	"log"
)

var errNoOrigin = errors.New("window position unavailable")

// Noop does nothing. It serves headless runs and platforms without a
// window manager handle.
type Noop struct{}

func (Noop) Hide() error  { return nil }
func (Noop) Show() error  { return nil }
func (Noop) Close() error { return nil }

// Logged wraps another window and logs each transition.
type Logged struct {
	Next interface {
		Hide() error
		Show() error
		Close() error
	}
}

func (l Logged) Hide() error  { log.Printf("window: hide"); return l.Next.Hide() }
func (l Logged) Show() error  { log.Printf("window: show"); return l.Next.Show() }
func (l Logged) Close() error { log.Printf("window: close"); return l.Next.Close() }

// Origin forwards to Next when it can report its on-screen position.
func (l Logged) Origin() (int, int, error) {
	if loc, ok := l.Next.(interface{ Origin() (int, int, error) }); ok {
		return loc.Origin()
	}
	return 0, 0, errNoOrigin
}
