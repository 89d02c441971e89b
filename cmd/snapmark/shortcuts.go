package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/snapmark/internal/shortcut"
)

var stdout io.Writer = os.Stdout

type shortcutsCmd struct {
	*root
	fs      *flag.FlagSet
	program string
}

func (c *shortcutsCmd) Program() string {
	return c.program
}

func (c *shortcutsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseShortcutsCmd(args []string, r *root) (*shortcutsCmd, error) {
	fs := flag.NewFlagSet("shortcuts", flag.ExitOnError)
	c := &shortcutsCmd{root: r, fs: fs, program: "snapmark shortcuts"}
	if r != nil {
		c.program = r.subcommand("shortcuts")
	}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *shortcutsCmd) Run() error {
	table := shortcut.Default()
	if c.root != nil {
		t, err := c.shortcuts()
		if err != nil {
			return err
		}
		table = t
	}
	args := c.fs.Args()
	if len(args) == 0 || args[0] == "list" {
		return listShortcuts(stdout, table)
	}
	if args[0] != "check" || len(args) != 2 {
		return &UsageError{of: c}
	}
	chord, err := shortcut.ParseChord(args[1])
	if err != nil {
		return err
	}
	b, ok := table.Find(chord)
	if !ok {
		fmt.Fprintf(stdout, "%s is not bound\n", chord)
		return nil
	}
	fmt.Fprintf(stdout, "%s -> %s%s\n", b.Chord, b.Action, describeBinding(b))
	return nil
}

func listShortcuts(w io.Writer, table *shortcut.Table) error {
	for _, b := range table.Bindings() {
		if _, err := fmt.Fprintf(w, "%-16s %-22s %s%s\n", b.Chord, b.Action, b.Action.Label(), describeBinding(b)); err != nil {
			return err
		}
	}
	return nil
}

func describeBinding(b shortcut.Binding) string {
	switch {
	case !b.Active:
		return " (off)"
	case b.RequiresViewer():
		return " (needs an image)"
	}
	return ""
}
