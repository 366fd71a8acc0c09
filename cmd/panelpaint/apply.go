package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/panelpaint/internal/script"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, "; ")
}

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// applyCmd runs an edit script against an image without opening a window.
type applyCmd struct {
	src        sourceFlags
	sink       sinkFlags
	scriptPath string
	exprs      commandList
	sess       *session
	*root
	program string
	fs      *flag.FlagSet
}

func (a *applyCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func (a *applyCmd) Program() string {
	return a.program
}

func parseApplyCmd(args []string, r *root) (*applyCmd, error) {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	a := &applyCmd{root: r, fs: fs, program: r.subcommand("apply")}
	a.src.register(fs)
	a.sink.register(fs)
	fs.StringVar(&a.scriptPath, "script", "", "file of edit commands to run (- for stdin)")
	fs.Var(&a.exprs, "e", "edit command to run after the script (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: a}
	}
	switch {
	case fs.NArg() == 1 && a.src.count() == 0:
		a.src.file = fs.Arg(0)
	case fs.NArg() > 0:
		return nil, &UsageError{of: a}
	}
	if err := a.src.validate(false); err != nil {
		return nil, err
	}
	if a.scriptPath == "" && len(a.exprs) == 0 {
		return nil, errors.New("nothing to apply: use -script or -e")
	}
	return a, nil
}

func (a *applyCmd) Run() error {
	ctx := context.Background()
	src, err := a.src.open()
	if err != nil {
		return err
	}
	s, err := a.root.newSession(&a.src, &a.sink)
	if err != nil {
		return err
	}
	a.sess = s
	defer func() {
		if !s.Finished() {
			s.Close()
		}
	}()
	if src != nil {
		if err := s.Load(ctx, src, a.src.rotation); err != nil {
			return err
		}
	}

	in := script.New(s.Session, a.root.stdout)
	if a.scriptPath != "" {
		if err := a.runScript(ctx, in); err != nil {
			return err
		}
	}
	for _, line := range a.exprs {
		if s.Finished() {
			break
		}
		if _, err := in.Exec(ctx, line); err != nil {
			return err
		}
	}
	if !s.Finished() {
		if err := s.Save(); err != nil {
			return err
		}
	}
	return s.saveErr
}

func (a *applyCmd) runScript(ctx context.Context, in *script.Interpreter) error {
	if a.scriptPath == "-" {
		return in.Run(ctx, a.root.stdin)
	}
	f, err := os.Open(a.scriptPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := in.Run(ctx, f); err != nil {
		return fmt.Errorf("%s: %w", a.scriptPath, err)
	}
	return nil
}
