package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/savefile"
	"github.com/example/snapmark/internal/session"
)

// newClipboard is replaced in tests.
var newClipboard = func() session.Clipboard { return clipboard.System{} }

// maxDelayFrames bounds the countdown loop so a stuck clock cannot hang.
const maxDelayFrames = 1 << 20

type snapshotCmd struct {
	*root
	fs          *flag.FlagSet
	program     string
	output      string
	dir         string
	region      string
	delay       uint
	toClipboard bool

	rect *session.Region
}

func (s *snapshotCmd) Program() string {
	return s.program
}

func (s *snapshotCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSnapshotCmd(args []string, r *root) (*snapshotCmd, error) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	s := &snapshotCmd{root: r, fs: fs, program: "snapmark snapshot"}
	if r != nil {
		s.program = r.subcommand("snapshot")
	}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.output, "output", "", "write the capture to this file path or directory")
	fs.StringVar(&s.dir, "dir", "", "directory for the generated file name (overrides save_dir)")
	fs.StringVar(&s.region, "region", "", "capture rectangle x,y,width,height instead of the whole screen")
	fs.UintVar(&s.delay, "delay", 0, "seconds to wait before capturing")
	fs.BoolVar(&s.toClipboard, "to-clipboard", false, "copy the capture to the clipboard")
	fs.BoolVar(&s.toClipboard, "to-clip", false, "copy the capture to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: s}
	}
	if s.toClipboard && s.output != "" {
		return nil, errors.New("-output cannot be used with -to-clipboard")
	}
	if strings.TrimSpace(s.region) != "" {
		rect, err := parseRegion(s.region)
		if err != nil {
			return nil, err
		}
		s.rect = &rect
	}
	return s, nil
}

func (s *snapshotCmd) Run() error {
	if s.root == nil {
		s.root = &root{program: "snapmark"}
	}
	g, err := newGrabber(s.backend)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	opts := s.sessionOptions(g)
	if s.dir != "" {
		opts.SaveDir = s.dir
	}
	dialog := session.SaveDialog(savefile.AutoDialog{})
	if s.output != "" {
		dialog = savefile.FixedDialog{Path: s.output}
	}
	ctrl, err := s.newController(g,
		session.WithOptions(opts),
		session.WithSaveDialog(dialog),
		session.WithClipboard(newClipboard()),
	)
	if err != nil {
		return err
	}

	if err := s.capture(ctrl); err != nil {
		return fmt.Errorf("snapshot %s: %w", s.describeCapture(), err)
	}

	if s.toClipboard {
		if _, err := ctrl.RunAction(action.Copy); err != nil {
			return fmt.Errorf("snapshot copy: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", s.describeCapture())
		return nil
	}
	effects, err := ctrl.RunAction(action.Save)
	if err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}
	for _, e := range effects {
		if e.Kind != session.EffectWriteFile {
			continue
		}
		saved := e.Path
		if abs, err := filepath.Abs(saved); err == nil {
			saved = abs
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	}
	return nil
}

// capture drives the controller's frame loop until the grab has happened.
func (s *snapshotCmd) capture(ctrl *session.Controller) error {
	if s.rect != nil {
		if _, err := ctrl.RunAction(action.SetSelection); err != nil {
			return err
		}
		ctrl.SetSelectionBounds(*s.rect)
	}
	start := action.Capture
	if s.delay > 0 {
		ctrl.SetTimerSeconds(uint32(s.delay))
		start = action.StartTimer
	}
	if _, err := ctrl.RunAction(start); err != nil {
		return err
	}
	for i := 0; i < maxDelayFrames; i++ {
		if _, err := ctrl.Frame(time.Now()); err != nil {
			return err
		}
		if ctrl.State.ViewerOpen && ctrl.State.Phase == session.PhaseStable {
			return nil
		}
		if ctrl.Timer.Running {
			time.Sleep(100 * time.Millisecond)
		}
	}
	return errors.New("capture did not complete")
}

func (s *snapshotCmd) describeCapture() string {
	if s.rect != nil {
		return fmt.Sprintf("region %s", s.rect)
	}
	if s.root != nil && strings.TrimSpace(s.screen) != "" {
		return fmt.Sprintf("screen %s", s.screen)
	}
	return "screen"
}

// parseRegion reads x,y,width,height.
func parseRegion(val string) (session.Region, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 4 {
		return session.Region{}, fmt.Errorf("invalid region %q", val)
	}
	nums := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return session.Region{}, fmt.Errorf("invalid region %q", val)
		}
		nums[i] = v
	}
	if nums[2] <= 0 || nums[3] <= 0 {
		return session.Region{}, fmt.Errorf("region %q is empty", val)
	}
	return session.Region{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}, nil
}
