package viewer

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// Title is the window title.
const Title = "Snapmark"

type frameEvent struct{ at time.Time }

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() { driver.Main(v.Main) }

// Main runs the event loop on s.
func (v *Viewer) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: v.width, Height: v.height, Title: Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(FrameInterval)
		defer t.Stop()
		for {
			select {
			case now := <-t.C:
				w.Send(frameEvent{at: now})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	cancelPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				cancelPaint()
				return
			}
		case size.Event:
			v.width = e.WidthPx
			v.height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := v.snapshot(v.now())
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case key.Event:
			if v.handleKey(e) {
				cancelPaint()
				return
			}
			w.Send(paint.Event{})
		case mouse.Event:
			v.handleMouse(e)
			w.Send(paint.Event{})
		case frameEvent:
			if v.frame(e.at) {
				cancelPaint()
				return
			}
			w.Send(paint.Event{})
		}
	}
}
