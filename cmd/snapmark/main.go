package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/snapmark/internal/capture"
	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/notify"
	"github.com/example/snapmark/internal/session"
	"github.com/example/snapmark/internal/shortcut"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// newGrabber is replaced in tests.
var newGrabber = func(backend string) (*capture.Grabber, error) {
	b, err := capture.NewBackend(backend)
	if err != nil {
		return nil, err
	}
	return capture.New(capture.WithBackend(b)), nil
}

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
	backend       string
	screen        string
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("snapmark", flag.ExitOnError),
		program:  "snapmark",
		notifier: notify.New(notify.TextsFromEnv(), cfg.Notify),
		config:   cfg,
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after capturing a screenshot")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.StringVar(&r.backend, "backend", cfg.Backend, "capture backend: auto, screen or portal")
	r.fs.StringVar(&r.screen, "screen", cfg.Screen, "display to capture: primary, #N or a name")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Switch(config.Notify{Capture: r.captureAlerts, Save: r.saveAlerts, Copy: r.copyAlerts})
	defer func() {
		if err := r.notifier.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "run":
		cmd, err = parseRunCmd(subArgs, r)
	case "snapshot":
		cmd, err = parseSnapshotCmd(subArgs, r)
	case "shortcuts":
		cmd, err = parseShortcutsCmd(subArgs, r)
	case "screens":
		cmd, err = parseScreensCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// shortcuts returns the default table with the [shortcuts] section applied.
func (r *root) shortcuts() (*shortcut.Table, error) {
	t := shortcut.Default()
	if r.config == nil {
		return t, nil
	}
	if err := r.config.ApplyShortcuts(t); err != nil {
		return nil, fmt.Errorf("config shortcuts: %w", err)
	}
	return t, nil
}

// sessionOptions maps the configuration onto controller options. The
// configured screen selector is resolved against the grabber's displays.
func (r *root) sessionOptions(g *capture.Grabber) session.Options {
	opts := session.DefaultOptions()
	if r.config != nil {
		opts.SaveDir = r.config.SaveDir
		if r.config.SettleDelay > 0 {
			opts.SettleDelay = r.config.SettleDelay
		}
		if r.config.RestoreDelay > 0 {
			opts.RestoreDelay = r.config.RestoreDelay
		}
	}
	if strings.TrimSpace(r.screen) != "" && g != nil {
		displays, err := g.Displays()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: list displays: %v\n", err)
			return opts
		}
		d, err := capture.FindDisplay(displays, r.screen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v, using the first display\n", err)
			return opts
		}
		opts.Screen = d.Index
	}
	return opts
}

// newController builds a session over g with the configured options,
// shortcuts and notifier. extra options are applied last.
func (r *root) newController(g *capture.Grabber, extra ...session.Option) (*session.Controller, error) {
	table, err := r.shortcuts()
	if err != nil {
		return nil, err
	}
	opts := []session.Option{
		session.WithOptions(r.sessionOptions(g)),
		session.WithCapturer(g),
		session.WithShortcuts(table),
	}
	if r.notifier != nil {
		opts = append(opts, session.WithNotifier(r.notifier))
	}
	return session.New(append(opts, extra...)...), nil
}
