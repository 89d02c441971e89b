//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

func runningOnWayland() bool {
	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	if sessionType == "wayland" {
		return true
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}
	return false
}

// randrDisplays lists the connected outputs of the X server (or XWayland).
func randrDisplays() ([]Display, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	displays, err := fetchDisplays(conn, screen.Root)
	if err != nil {
		return nil, err
	}
	if len(displays) == 0 {
		return nil, errNoDisplays
	}
	return displays, nil
}

// nameDisplays copies output names and the primary flag from RandR onto
// displays with matching bounds.
func nameDisplays(displays []Display) {
	outputs, err := randrDisplays()
	if err != nil {
		log.Printf("display names: %v", err)
		return
	}
	primarySeen := false
	for _, o := range outputs {
		if o.Primary {
			primarySeen = true
		}
	}
	for i := range displays {
		for _, o := range outputs {
			if o.Rect != displays[i].Rect {
				continue
			}
			displays[i].Name = o.Name
			if primarySeen {
				displays[i].Primary = o.Primary
			}
			break
		}
	}
}

func fetchDisplays(conn *xgb.Conn, root xproto.Window) ([]Display, error) {
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primaryOutput = primary.Output
	}
	displays := make([]Display, 0, len(res.Outputs))
	idx := 0
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(info.Name))
		rect := image.Rect(
			int(crtc.X),
			int(crtc.Y),
			int(crtc.X)+int(crtc.Width),
			int(crtc.Y)+int(crtc.Height),
		)
		displays = append(displays, Display{
			Index:   idx,
			Name:    name,
			Rect:    rect,
			Primary: output == primaryOutput,
		})
		idx++
	}
	return displays, nil
}
