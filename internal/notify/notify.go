// Package notify reports finished captures, saves and copies as desktop
// notifications.
package notify

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/platform"
)

// Event is a session result that can be announced.
type Event int

const (
	EventCapture Event = iota
	EventSave
	EventCopy
	eventCount
)

func (e Event) String() string {
	return [...]string{"capture", "save", "copy"}[e]
}

// previewSize bounds the longer edge of capture previews.
const previewSize = 256

var send = platform.Notify

// Texts is the notification title plus one body format per event. Each
// body takes the event detail as its only verb.
type Texts struct {
	Title string
	Body  [eventCount]string
}

// DefaultTexts returns the built-in wording.
func DefaultTexts() Texts {
	return Texts{
		Title: platform.AppName,
		Body:  [eventCount]string{"Captured %s", "Saved %s", "Copied %s to clipboard"},
	}
}

// TextsFromEnv applies SNAPMARK_NOTIFY_TITLE and SNAPMARK_NOTIFY_<EVENT>_TEXT
// over the defaults.
func TextsFromEnv() Texts {
	t := DefaultTexts()
	if v := strings.TrimSpace(os.Getenv("SNAPMARK_NOTIFY_TITLE")); v != "" {
		t.Title = v
	}
	for e := EventCapture; e < eventCount; e++ {
		name := "SNAPMARK_NOTIFY_" + strings.ToUpper(e.String()) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			t.Body[e] = v
		}
	}
	return t
}

// Notifier implements the session's notifier. A nil Notifier is silent.
type Notifier struct {
	texts Texts
	on    [eventCount]bool
	// preview is the thumbnail file of the last capture. It is rewritten
	// by each capture and removed by Close.
	preview string
}

// New creates a notifier with the events switched on in sw.
func New(texts Texts, sw config.Notify) *Notifier {
	n := &Notifier{texts: texts}
	n.Switch(sw)
	return n
}

// Switch replaces the set of announced events.
func (n *Notifier) Switch(sw config.Notify) {
	if n == nil {
		return
	}
	n.on = [eventCount]bool{sw.Capture, sw.Save, sw.Copy}
}

func (n *Notifier) wants(e Event) bool { return n != nil && n.on[e] }

// Capture announces a grab, showing a thumbnail of img when possible.
func (n *Notifier) Capture(detail string, img image.Image) {
	if !n.wants(EventCapture) {
		return
	}
	var icon string
	if img != nil {
		if err := n.writePreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			icon = n.preview
		}
	}
	n.post(EventCapture, detail, icon)
}

// Save announces a written file and uses it as the icon.
func (n *Notifier) Save(path string) {
	if !n.wants(EventSave) {
		return
	}
	var icon string
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
		if _, err := os.Stat(abs); err == nil {
			icon = abs
		}
	}
	n.post(EventSave, path, icon)
}

// Copy announces a clipboard write.
func (n *Notifier) Copy(detail string) {
	if n.wants(EventCopy) {
		n.post(EventCopy, detail, "")
	}
}

// Close removes the preview file.
func (n *Notifier) Close() error {
	if n == nil || n.preview == "" {
		return nil
	}
	path := n.preview
	n.preview = ""
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove preview: %w", err)
	}
	return nil
}

func (n *Notifier) post(e Event, detail, icon string) {
	format := strings.TrimSpace(n.texts.Body[e])
	detail = strings.TrimSpace(detail)
	if format == "" || detail == "" {
		return
	}
	body := fmt.Sprintf(format, detail)
	if err := send(n.texts.Title, body, platform.Options{IconPath: icon}); err != nil {
		log.Printf("notification %s: %v", e, err)
	}
}

func (n *Notifier) writePreview(img image.Image) error {
	var (
		f   *os.File
		err error
	)
	if n.preview == "" {
		f, err = os.CreateTemp("", "snapmark-preview-*.png")
	} else {
		f, err = os.Create(n.preview)
	}
	if err != nil {
		return err
	}
	n.preview = f.Name()
	if err := png.Encode(f, thumbnail(img)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// thumbnail scales img so its longer edge is at most previewSize.
func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= previewSize && h <= previewSize {
		return img
	}
	if w >= h {
		h = max(1, h*previewSize/w)
		w = previewSize
	} else {
		w = max(1, w*previewSize/h)
		h = previewSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
