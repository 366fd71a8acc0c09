// Package script runs line-oriented edit commands against an editor session.
// The same language backs the headless apply command and the interactive
// prompt.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/example/panelpaint/internal/editor"
	"github.com/example/panelpaint/internal/input"
	"github.com/example/panelpaint/internal/theme"
)

// ErrNoSelection is returned by commands that edit the selected text when
// nothing is selected.
var ErrNoSelection = errors.New("no text selected")

type command struct {
	usage string
	run   func(in *Interpreter, ctx context.Context, args []string) (bool, error)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"load":    {"load PATH [ROTATION]", (*Interpreter).load},
		"rotate":  {"rotate DEGREES", (*Interpreter).rotate},
		"tool":    {"tool paint|erase|text|select|sample", (*Interpreter).tool},
		"color":   {"color NAME|#RRGGBB", (*Interpreter).color},
		"radius":  {"radius N", (*Interpreter).radius},
		"down":    {"down X Y", pointer(func(s editor.PointerSample) editor.Event { return editor.PointerDown{PointerSample: s} })},
		"move":    {"move X Y", pointer(func(s editor.PointerSample) editor.Event { return editor.PointerMove{PointerSample: s} })},
		"up":      {"up X Y", pointer(func(s editor.PointerSample) editor.Event { return editor.PointerUp{PointerSample: s} })},
		"stroke":  {"stroke X0 Y0 X1 Y1 ...", (*Interpreter).stroke},
		"text":    {"text X Y CONTENT", (*Interpreter).text},
		"select":  {"select X Y", (*Interpreter).selectAt},
		"content": {"content TEXT", (*Interpreter).content},
		"size":    {"size N", (*Interpreter).size},
		"angle":   {"angle DEGREES", (*Interpreter).angle},
		"commit":  {"commit", (*Interpreter).commit},
		"delete":  {"delete", (*Interpreter).deleteText},
		"undo":    {"undo", (*Interpreter).undo},
		"redo":    {"redo", (*Interpreter).redo},
		"zoom":    {"zoom FACTOR", (*Interpreter).zoom},
		"sample":  {"sample X Y", (*Interpreter).sample},
		"info":    {"info", (*Interpreter).info},
		"save":    {"save", (*Interpreter).save},
		"close":   {"close", (*Interpreter).close},
		"help":    {"help", (*Interpreter).help},
	}
}

// Interpreter executes commands against one session.
type Interpreter struct {
	sess *editor.Session
	out  io.Writer
	// Open turns the argument of load into a source.
	Open func(arg string) editor.Source
}

// New returns an interpreter that reports to out.
func New(sess *editor.Session, out io.Writer) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{sess: sess, out: out, Open: OpenSource}
}

// OpenSource treats data: URIs as inline images and anything else as a path.
func OpenSource(arg string) editor.Source {
	if strings.HasPrefix(arg, "data:") {
		return editor.DataURISource(arg)
	}
	return editor.FileSource(arg)
}

// Exec runs a single line. done is true once the session has been saved or
// closed.
func (in *Interpreter) Exec(ctx context.Context, line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	args := strings.Fields(line)
	name := strings.ToLower(args[0])
	cmd, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("unknown command %q", args[0])
	}
	done, err = cmd.run(in, ctx, args[1:])
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return done, nil
}

// Run executes every line of r, stopping at the first error or once the
// session is finished.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		done, err := in.Exec(ctx, scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

func (in *Interpreter) printf(format string, args ...any) {
	fmt.Fprintf(in.out, format+"\n", args...)
}

func (in *Interpreter) ready() error {
	if in.sess.Finished() {
		return editor.ErrFinished
	}
	if !in.sess.Ready() {
		return editor.ErrNotReady
	}
	return nil
}

func (in *Interpreter) selected() (string, error) {
	if err := in.ready(); err != nil {
		return "", err
	}
	id, ok := in.sess.Selected()
	if !ok {
		return "", ErrNoSelection
	}
	return id, nil
}

func (in *Interpreter) load(ctx context.Context, args []string) (bool, error) {
	if len(args) < 1 || len(args) > 2 {
		return false, usage("load")
	}
	rot := 0
	if len(args) == 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("invalid rotation %q", args[1])
		}
		rot = v
	}
	if err := in.sess.Load(ctx, in.Open(args[0]), rot); err != nil {
		return false, err
	}
	b := in.sess.Buffer().Bounds()
	in.printf("loaded %s (%dx%d)", args[0], b.Dx(), b.Dy())
	return false, nil
}

func (in *Interpreter) rotate(ctx context.Context, args []string) (bool, error) {
	vals, err := expectInts(args, 1)
	if err != nil {
		return false, err
	}
	if err := in.sess.Rotate(ctx, vals[0]); err != nil {
		return false, err
	}
	in.printf("rotation %d", in.sess.Rotation())
	return false, nil
}

func (in *Interpreter) tool(_ context.Context, args []string) (bool, error) {
	if len(args) != 1 {
		return false, usage("tool")
	}
	t, err := editor.ParseTool(args[0])
	if err != nil {
		return false, err
	}
	in.sess.SetTool(t)
	return false, nil
}

func (in *Interpreter) color(_ context.Context, args []string) (bool, error) {
	if len(args) != 1 {
		return false, usage("color")
	}
	c, err := theme.ParseColor(args[0])
	if err != nil {
		return false, err
	}
	in.sess.SetColor(c)
	return false, nil
}

func (in *Interpreter) radius(_ context.Context, args []string) (bool, error) {
	if len(args) != 1 {
		return false, usage("radius")
	}
	r, err := input.ParseRadius(args[0])
	if err != nil {
		return false, err
	}
	in.sess.SetBrushRadius(r)
	return false, nil
}

func pointer(mk func(editor.PointerSample) editor.Event) func(*Interpreter, context.Context, []string) (bool, error) {
	return func(in *Interpreter, _ context.Context, args []string) (bool, error) {
		if err := in.ready(); err != nil {
			return false, err
		}
		vals, err := expectFloats(args, 2)
		if err != nil {
			return false, err
		}
		in.sess.Apply(mk(editor.PointerSample{X: vals[0], Y: vals[1]}))
		return false, nil
	}
}

func (in *Interpreter) stroke(_ context.Context, args []string) (bool, error) {
	if err := in.ready(); err != nil {
		return false, err
	}
	if len(args) < 2 || len(args)%2 != 0 {
		return false, usage("stroke")
	}
	vals, err := expectFloats(args, len(args))
	if err != nil {
		return false, err
	}
	last := len(vals) - 2
	in.sess.Apply(editor.PointerDown{PointerSample: editor.PointerSample{X: vals[0], Y: vals[1]}})
	for i := 2; i <= last; i += 2 {
		in.sess.Apply(editor.PointerMove{PointerSample: editor.PointerSample{X: vals[i], Y: vals[i+1]}})
	}
	in.sess.Apply(editor.PointerUp{PointerSample: editor.PointerSample{X: vals[last], Y: vals[last+1]}})
	return false, nil
}

func (in *Interpreter) text(_ context.Context, args []string) (bool, error) {
	if len(args) < 3 {
		return false, usage("text")
	}
	vals, err := expectFloats(args[:2], 2)
	if err != nil {
		return false, err
	}
	content := strings.Join(args[2:], " ")
	t, err := in.sess.PlaceText(editor.Point{X: vals[0], Y: vals[1]})
	if err != nil {
		return false, err
	}
	if err := in.sess.SetContent(t.ID, content); err != nil {
		return false, err
	}
	if _, err := in.sess.CommitProperties(); err != nil {
		return false, err
	}
	in.printf("placed %s", t.ID)
	return false, nil
}

func (in *Interpreter) selectAt(_ context.Context, args []string) (bool, error) {
	if err := in.ready(); err != nil {
		return false, err
	}
	vals, err := expectFloats(args, 2)
	if err != nil {
		return false, err
	}
	id, ok := in.sess.HitTest(editor.Point{X: vals[0], Y: vals[1]})
	if !ok {
		in.sess.ClearSelection()
		in.printf("nothing selected")
		return false, nil
	}
	if err := in.sess.Select(id); err != nil {
		return false, err
	}
	in.printf("selected %s", id)
	return false, nil
}

func (in *Interpreter) content(_ context.Context, args []string) (bool, error) {
	id, err := in.selected()
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, usage("content")
	}
	return false, in.sess.SetContent(id, strings.Join(args, " "))
}

func (in *Interpreter) size(_ context.Context, args []string) (bool, error) {
	id, err := in.selected()
	if err != nil {
		return false, err
	}
	if len(args) != 1 {
		return false, usage("size")
	}
	v, err := input.ParseFontSize(args[0])
	if err != nil {
		return false, err
	}
	return false, in.sess.SetFontSize(id, v)
}

func (in *Interpreter) angle(_ context.Context, args []string) (bool, error) {
	id, err := in.selected()
	if err != nil {
		return false, err
	}
	if len(args) != 1 {
		return false, usage("angle")
	}
	v, err := input.ParseRotation(args[0])
	if err != nil {
		return false, err
	}
	return false, in.sess.SetTextRotation(id, v)
}

func (in *Interpreter) commit(context.Context, []string) (bool, error) {
	changed, err := in.sess.CommitProperties()
	if err != nil {
		return false, err
	}
	if !changed {
		in.printf("nothing to commit")
	}
	return false, nil
}

func (in *Interpreter) deleteText(context.Context, []string) (bool, error) {
	id, err := in.selected()
	if err != nil {
		return false, err
	}
	if err := in.sess.Delete(id); err != nil {
		return false, err
	}
	in.printf("deleted %s", id)
	return false, nil
}

func (in *Interpreter) undo(context.Context, []string) (bool, error) {
	if err := in.ready(); err != nil {
		return false, err
	}
	if !in.sess.Undo() {
		in.printf("nothing to undo")
	}
	return false, nil
}

func (in *Interpreter) redo(context.Context, []string) (bool, error) {
	if err := in.ready(); err != nil {
		return false, err
	}
	if !in.sess.Redo() {
		in.printf("nothing to redo")
	}
	return false, nil
}

func (in *Interpreter) zoom(_ context.Context, args []string) (bool, error) {
	vals, err := expectFloats(args, 1)
	if err != nil {
		return false, err
	}
	in.sess.SetZoom(vals[0])
	return false, nil
}

func (in *Interpreter) sample(_ context.Context, args []string) (bool, error) {
	if err := in.ready(); err != nil {
		return false, err
	}
	vals, err := expectFloats(args, 2)
	if err != nil {
		return false, err
	}
	c, ok := in.sess.Sample(editor.Point{X: vals[0], Y: vals[1]})
	if !ok {
		return false, fmt.Errorf("%v,%v is outside the image", vals[0], vals[1])
	}
	in.sess.SetColor(c)
	in.printf("color %s", theme.Hex(c))
	return false, nil
}

func (in *Interpreter) info(context.Context, []string) (bool, error) {
	s := in.sess
	switch {
	case s.Finished():
		in.printf("finished")
		return false, nil
	case !s.Ready():
		in.printf("no image loaded")
		return false, nil
	}
	b := s.Buffer().Bounds()
	in.printf("size %dx%d rotation %d zoom %.2f", b.Dx(), b.Dy(), s.Rotation(), s.View().Zoom)
	in.printf("tool %s color %s radius %d", s.Tool(), theme.Hex(s.Color()), s.BrushRadius())
	in.printf("history %d undo %t redo %t", s.HistoryLen(), s.CanUndo(), s.CanRedo())
	sel, _ := s.Selected()
	for _, t := range s.Texts() {
		mark := " "
		if t.ID == sel {
			mark = "*"
		}
		in.printf("%s %s %q at %.0f,%.0f size %.0f angle %.0f", mark, t.ID, t.Content, t.X, t.Y, t.FontSize, t.Rotation)
	}
	return false, nil
}

func (in *Interpreter) save(context.Context, []string) (bool, error) {
	if err := in.sess.Save(); err != nil {
		return false, err
	}
	return true, nil
}

func (in *Interpreter) close(context.Context, []string) (bool, error) {
	in.sess.Close()
	return true, nil
}

func (in *Interpreter) help(context.Context, []string) (bool, error) {
	for _, u := range Usage() {
		in.printf("  %s", u)
	}
	return false, nil
}

// Usage lists the synopsis of every command, sorted.
func Usage() []string {
	out := make([]string, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.usage)
	}
	sort.Strings(out)
	return out
}

func usage(name string) error {
	return fmt.Errorf("usage: %s", commands[name].usage)
}

func expectInts(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d integer arguments", n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func expectFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numeric arguments", n)
	}
	vals := make([]float64, n)
	for i, raw := range args {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}
