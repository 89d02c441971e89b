package main

import (
	"flag"
	"fmt"
)

type screensCmd struct {
	*root
	fs      *flag.FlagSet
	program string
}

func (c *screensCmd) Program() string {
	return c.program
}

func (c *screensCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseScreensCmd(args []string, r *root) (*screensCmd, error) {
	fs := flag.NewFlagSet("screens", flag.ExitOnError)
	c := &screensCmd{root: r, fs: fs, program: "snapmark screens"}
	if r != nil {
		c.program = r.subcommand("screens")
	}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *screensCmd) Run() error {
	backend := ""
	if c.root != nil {
		backend = c.backend
	}
	g, err := newGrabber(backend)
	if err != nil {
		return fmt.Errorf("screens: %w", err)
	}
	displays, err := g.Displays()
	if err != nil {
		return fmt.Errorf("screens: %w", err)
	}
	if len(displays) == 0 {
		fmt.Fprintln(stdout, "no displays available")
		return nil
	}
	fmt.Fprintf(stdout, "displays (%s backend):\n", g.Backend().Name())
	for _, d := range displays {
		fmt.Fprintf(stdout, "  %s\n", d)
	}
	fmt.Fprintln(stdout, "selectors: primary, #<n>, <n>, or part of a name")
	return nil
}
