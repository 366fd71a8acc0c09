package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/example/panelpaint/internal/viewer"
)

// editCmd opens an image in the editor window.
type editCmd struct {
	src  sourceFlags
	sink sinkFlags
	*root
	program string
	fs      *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func (e *editCmd) Program() string {
	return e.program
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	e := &editCmd{root: r, fs: fs, program: r.subcommand("edit")}
	e.src.register(fs)
	e.sink.register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: e}
	}
	switch {
	case fs.NArg() == 1 && e.src.count() == 0:
		e.src.file = fs.Arg(0)
	case fs.NArg() > 0:
		return nil, &UsageError{of: e}
	}
	if err := e.src.validate(true); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *editCmd) Run() error {
	src, err := e.src.open()
	if err != nil {
		return err
	}
	s, err := e.root.newSession(&e.src, &e.sink)
	if err != nil {
		return err
	}
	s.BeginLoad(context.Background(), src, e.src.rotation)

	title := "panelpaint"
	if e.src.file != "" {
		title = "panelpaint - " + filepath.Base(e.src.file)
	}
	viewer.New(s.Session,
		viewer.WithTheme(e.root.activeTheme),
		viewer.WithTitle(title),
		viewer.WithCopy(e.root.copyImage),
	).Run()

	if s.saveErr != nil {
		return s.saveErr
	}
	if s.closed {
		fmt.Fprintln(e.root.stderr, "closed without saving")
	}
	return nil
}
