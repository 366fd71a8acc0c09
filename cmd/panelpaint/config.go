package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/example/panelpaint/internal/config"
)

// configCmd prints or writes the effective configuration.
type configCmd struct {
	action string
	*root
	program string
	fs      *flag.FlagSet
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Program() string {
	return c.program
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := &configCmd{root: r, fs: fs, program: r.subcommand("config")}
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: c}
	}
	c.action = "print"
	switch fs.NArg() {
	case 0:
	case 1:
		c.action = fs.Arg(0)
	default:
		return nil, &UsageError{of: c}
	}
	if c.action != "print" && c.action != "save" && c.action != "path" {
		return nil, fmt.Errorf("unknown config action %q\n\n%w", c.action, &UsageError{of: c})
	}
	return c, nil
}

func (c *configCmd) Run() error {
	loader := config.NewLoader(version, c.root.configPath)
	switch c.action {
	case "path":
		path := loader.GetConfigPath()
		if path == "" {
			path = config.UserConfigPath()
		}
		fmt.Fprintln(c.root.stdout, path)
	case "save":
		path, err := loader.Save(c.root.config)
		if err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(c.root.stdout, "wrote %s\n", path)
	default:
		fmt.Fprint(c.root.stdout, c.root.config.String())
	}
	return nil
}
