package session

import (
	"errors"
	"image"

	"github.com/example/snapmark/internal/clipboard"
)

var (
	// ErrViewerClosed is returned for viewer actions while no image is shown.
	ErrViewerClosed = errors.New("no captured image is open")
	// ErrCapture wraps failures of the screen grab.
	ErrCapture = errors.New("capture failed")
	// ErrEncode wraps failures encoding a grabbed image.
	ErrEncode = errors.New("encode failed")
	// ErrSave wraps dialog and file write failures.
	ErrSave = errors.New("save failed")
	// ErrClipboard wraps clipboard write failures.
	ErrClipboard = errors.New("clipboard write failed")
)

// Capturer grabs pixels from the screen.
type Capturer interface {
	CaptureFull(screen int) (*image.RGBA, error)
	CaptureRegion(x, y int, width, height uint32) (*image.RGBA, error)
}

// Window controls the visibility of the application window.
type Window interface {
	Hide() error
	Show() error
	Close() error
}

// Locator is implemented by windows that can report where their client
// area sits on screen. The controller adds the origin to window-local
// bounds before a region grab.
type Locator interface {
	Origin() (x, y int, err error)
}

// SaveDialog asks where to write a file. ok is false when the user cancels.
type SaveDialog interface {
	SaveFile(name, dir string) (path string, ok bool, err error)
}

// Clipboard receives copied images.
type Clipboard interface {
	WriteImage(img clipboard.Image) error
}

// Notifier reports finished operations to the desktop.
type Notifier interface {
	Capture(detail string, img image.Image)
	Save(path string)
	Copy(detail string)
}

type noopWindow struct{}

func (noopWindow) Hide() error  { return nil }
func (noopWindow) Show() error  { return nil }
func (noopWindow) Close() error { return nil }

type noopNotifier struct{}

func (noopNotifier) Capture(string, image.Image) {}
func (noopNotifier) Save(string)                 {}
func (noopNotifier) Copy(string)                 {}
