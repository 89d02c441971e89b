//go:build linux || freebsd || openbsd || netbsd || dragonfly

package window

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var errNoWindows = errors.New("no top-level windows owned by this process")

// X11 maps and unmaps the top-level windows whose _NET_WM_PID matches PID.
type X11 struct {
	PID uint32

	mu     sync.Mutex
	conn   *xgb.Conn
	hidden []xproto.Window
	self   xproto.Window
}

// NewX11 connects to the X server for the current process.
func NewX11() (*X11, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	return &X11{PID: uint32(os.Getpid()), conn: conn}, nil
}

// Hide unmaps every owned window.
func (x *X11) Hide() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	wins, err := x.owned()
	if err != nil {
		return err
	}
	if len(wins) == 0 {
		return errNoWindows
	}
	for _, w := range wins {
		if err := xproto.UnmapWindowChecked(x.conn, w).Check(); err != nil {
			return fmt.Errorf("unmap 0x%x: %w", uint32(w), err)
		}
	}
	x.hidden = wins
	x.conn.Sync()
	return nil
}

// Show maps the windows hidden by the last Hide.
func (x *X11) Show() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, w := range x.hidden {
		if err := xproto.MapWindowChecked(x.conn, w).Check(); err != nil {
			return fmt.Errorf("map 0x%x: %w", uint32(w), err)
		}
	}
	x.hidden = nil
	x.conn.Sync()
	return nil
}

// Origin reports the root coordinates of the first owned window's client
// area. The window is looked up once and remembered.
func (x *X11) Origin() (int, int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.conn == nil {
		return 0, 0, errors.New("x11 connection closed")
	}
	if x.self == 0 {
		wins, err := x.owned()
		if err != nil {
			return 0, 0, err
		}
		if len(wins) == 0 {
			return 0, 0, errNoWindows
		}
		x.self = wins[0]
	}
	w := x.self
	root := xproto.Setup(x.conn).DefaultScreen(x.conn).Root
	reply, err := xproto.TranslateCoordinates(x.conn, w, root, 0, 0).Reply()
	if err != nil {
		x.self = 0
		return 0, 0, fmt.Errorf("translate 0x%x: %w", uint32(w), err)
	}
	return int(reply.DstX), int(reply.DstY), nil
}

// Close releases the X connection.
func (x *X11) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.conn != nil {
		x.conn.Close()
		x.conn = nil
	}
	return nil
}

func (x *X11) owned() ([]xproto.Window, error) {
	if x.conn == nil {
		return nil, errors.New("x11 connection closed")
	}
	root := xproto.Setup(x.conn).DefaultScreen(x.conn).Root
	listAtom, err := internAtom(x.conn, "_NET_CLIENT_LIST")
	if err != nil {
		return nil, err
	}
	pidAtom, err := internAtom(x.conn, "_NET_WM_PID")
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(x.conn, false, root, listAtom, xproto.AtomWindow, 0, 1<<16).Reply()
	if err != nil {
		return nil, fmt.Errorf("client list: %w", err)
	}
	return matchPID(x.conn, clientIDs(reply), pidAtom, x.PID), nil
}

func clientIDs(reply *xproto.GetPropertyReply) []xproto.Window {
	if reply == nil || reply.Format != 32 {
		return nil
	}
	ids := make([]xproto.Window, 0, reply.ValueLen)
	for i := 0; i < int(reply.ValueLen); i++ {
		ids = append(ids, xproto.Window(xgb.Get32(reply.Value[i*4:])))
	}
	return ids
}

func matchPID(conn *xgb.Conn, ids []xproto.Window, pidAtom xproto.Atom, pid uint32) []xproto.Window {
	var out []xproto.Window
	for _, w := range ids {
		reply, err := xproto.GetProperty(conn, false, w, pidAtom, xproto.AtomCardinal, 0, 1).Reply()
		if err != nil || reply.Format != 32 || reply.ValueLen == 0 {
			continue
		}
		if xgb.Get32(reply.Value) == pid {
			out = append(out, w)
		}
	}
	return out
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	return reply.Atom, nil
}
