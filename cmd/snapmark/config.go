package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/snapmark/internal/config"
)

type configCmd struct {
	*root
	fs      *flag.FlagSet
	program string
}

func (c *configCmd) Program() string {
	return c.program
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs, program: "snapmark config"}
	if r != nil {
		c.program = r.subcommand("config")
	}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) current() *config.Config {
	if c.root == nil || c.root.config == nil {
		return config.New()
	}
	return c.root.config
}

func (c *configCmd) runPrint() error {
	fmt.Fprint(stdout, c.current().String())
	return nil
}

func (c *configCmd) runSave() error {
	path := config.NewLoader(version, configPathOverride).GetConfigPath()
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		return fmt.Errorf("config save: no home directory")
	}
	if err := config.Save(c.current(), path); err != nil {
		return fmt.Errorf("config save: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
