//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalScreenshotOptions(t *testing.T) {
	prevToken := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prevToken })

	values := portalScreenshotOptions()
	if len(values) != 3 {
		t.Fatalf("expected 3 options, got %d", len(values))
	}
	if v, _ := values["interactive"].Value().(bool); v {
		t.Fatalf("interactive should be false")
	}
	if v, _ := values["handle_token"].Value().(string); v != "test-token" {
		t.Fatalf("handle_token = %q", v)
	}
}

func TestPortalHandleTokenIsPathSafe(t *testing.T) {
	a, b := newPortalHandleToken(), newPortalHandleToken()
	if a == b {
		t.Fatalf("tokens should differ")
	}
	if !strings.HasPrefix(a, "snapmark_") {
		t.Fatalf("token %q", a)
	}
	for _, r := range a {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			t.Fatalf("token %q contains %q", a, r)
		}
	}
}

func TestPortalResultPath(t *testing.T) {
	ok := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/Screenshot%20one.png")}}
	path, err := portalResultPath(ok)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if path != "/tmp/Screenshot one.png" {
		t.Fatalf("path = %q", path)
	}

	denied := []interface{}{uint32(1), map[string]dbus.Variant{}}
	if _, err := portalResultPath(denied); err == nil {
		t.Fatalf("expected error for denied request")
	}
	if _, err := portalResultPath([]interface{}{uint32(0)}); err == nil {
		t.Fatalf("expected error for short body")
	}
	if _, err := portalResultPath([]interface{}{uint32(0), map[string]dbus.Variant{}}); err == nil {
		t.Fatalf("expected error for missing uri")
	}
}

func TestPortalBackendCropsDesktop(t *testing.T) {
	prevShot, prevDisplays := portalScreenshot, portalDisplays
	t.Cleanup(func() {
		portalScreenshot = prevShot
		portalDisplays = prevDisplays
	})
	shot := image.NewRGBA(image.Rect(0, 0, 200, 100))
	shot.SetRGBA(150, 50, color.RGBA{B: 255, A: 255})
	portalScreenshot = func() (*image.RGBA, error) { return shot, nil }
	portalDisplays = func() ([]Display, error) {
		return []Display{
			{Index: 0, Rect: image.Rect(0, 0, 100, 100)},
			{Index: 1, Rect: image.Rect(100, 0, 200, 100)},
		}, nil
	}

	g := New(WithBackend(portalBackend{}))
	img, err := g.CaptureFull(1)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.RGBAAt(50, 50).B != 255 {
		t.Fatalf("unexpected crop %v", img.Bounds())
	}
}

func TestPortalBackendWithoutLayout(t *testing.T) {
	prevShot, prevDisplays := portalScreenshot, portalDisplays
	t.Cleanup(func() {
		portalScreenshot = prevShot
		portalDisplays = prevDisplays
	})
	shot := image.NewRGBA(image.Rect(0, 0, 64, 48))
	portalScreenshot = func() (*image.RGBA, error) { return shot, nil }
	portalDisplays = func() ([]Display, error) { return nil, errors.New("no XWayland") }

	img, err := New(WithBackend(portalBackend{})).CaptureFull(0)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if img != shot {
		t.Fatalf("expected the whole desktop image")
	}
}
