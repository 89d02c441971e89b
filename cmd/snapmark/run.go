package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/savefile"
	"github.com/example/snapmark/internal/session"
	"github.com/example/snapmark/internal/viewer"
	"github.com/example/snapmark/internal/window"
)

// newWindow and runViewer are replaced in tests.
var (
	newWindow = func() (session.Window, error) { return window.NewX11() }
	runViewer = func(v *viewer.Viewer) { v.Run() }
)

type runCmd struct {
	*root
	fs        *flag.FlagSet
	program   string
	width     int
	height    int
	region    bool
	recapture bool
	trace     bool
	dir       string
}

func (c *runCmd) Program() string {
	return c.program
}

func (c *runCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	c := &runCmd{root: r, fs: fs, program: "snapmark run"}
	if r != nil {
		c.program = r.subcommand("run")
	}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.width, "width", 900, "initial window width")
	fs.IntVar(&c.height, "height", 640, "initial window height")
	fs.BoolVar(&c.region, "region", false, "start in selection mode: the window area is captured")
	fs.BoolVar(&c.recapture, "recapture", false, "apply annotations by grabbing the canvas from the screen")
	fs.BoolVar(&c.trace, "trace", false, "log every window hide and show")
	fs.StringVar(&c.dir, "dir", "", "directory for saved images (overrides save_dir)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("window size %dx%d must be positive", c.width, c.height)
	}
	return c, nil
}

func (c *runCmd) Run() error {
	g, err := newGrabber(c.backend)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	var win session.Window = window.Noop{}
	if w, err := newWindow(); err != nil {
		log.Printf("window control: %v", err)
	} else {
		win = w
		defer func() {
			if err := win.Close(); err != nil {
				log.Printf("window close: %v", err)
			}
		}()
	}
	if c.trace {
		win = window.Logged{Next: win}
	}

	opts := c.sessionOptions(g)
	if c.dir != "" {
		opts.SaveDir = c.dir
	}
	ctrl, err := c.newController(g,
		session.WithOptions(opts),
		session.WithWindow(win),
		session.WithSaveDialog(savefile.AutoDialog{}),
		session.WithClipboard(clipboard.System{}),
	)
	if err != nil {
		return err
	}
	if c.region {
		if _, err := ctrl.RunAction(action.SetSelection); err != nil {
			return err
		}
	}

	runViewer(viewer.New(ctrl,
		viewer.WithSize(c.width, c.height),
		viewer.WithRecapture(c.recapture),
	))
	return nil
}
