package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/example/panelpaint/internal/script"
)

// interactiveCmd reads edit commands from stdin one at a time.
type interactiveCmd struct {
	src   sourceFlags
	sink  sinkFlags
	exprs commandList
	*root
	program string
	fs      *flag.FlagSet
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *interactiveCmd) Program() string {
	return i.program
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	i := &interactiveCmd{root: r, fs: fs, program: r.subcommand("interactive")}
	i.src.register(fs)
	i.sink.register(fs)
	fs.Var(&i.exprs, "e", "command to run before the prompt (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: i}
	}
	switch {
	case fs.NArg() == 1 && i.src.count() == 0:
		i.src.file = fs.Arg(0)
	case fs.NArg() > 0:
		return nil, &UsageError{of: i}
	}
	if err := i.src.validate(false); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	ctx := context.Background()
	src, err := i.src.open()
	if err != nil {
		return err
	}
	s, err := i.root.newSession(&i.src, &i.sink)
	if err != nil {
		return err
	}
	out := i.root.stdout
	in := script.New(s.Session, out)
	if src != nil {
		if err := s.Load(ctx, src, i.src.rotation); err != nil {
			return err
		}
		b := s.Buffer().Bounds()
		fmt.Fprintf(out, "loaded %s (%dx%d)\n", src, b.Dx(), b.Dy())
	}
	for _, line := range i.exprs {
		if _, err := in.Exec(ctx, line); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}

	scanner := bufio.NewScanner(i.root.stdin)
	for !s.Finished() {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if _, err := in.Exec(ctx, line); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	if !s.Finished() {
		s.Close()
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return s.saveErr
}
