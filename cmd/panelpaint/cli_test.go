package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/panelpaint/internal/editor"
)

func testRoot(t *testing.T) (*root, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PANELPAINT_THEME", "")
	r := newRoot()
	r.notifier = nil
	var stdout, stderr bytes.Buffer
	r.stdin = strings.NewReader("")
	r.stdout = &stdout
	r.stderr = &stderr
	r.configPath = filepath.Join(dir, "missing.rc")
	return r, &stdout, &stderr
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseEditRequiresSource(t *testing.T) {
	r, _, _ := testRoot(t)
	_, err := parseEditCmd(nil, r)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "an image source is required"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseEditConflictingSources(t *testing.T) {
	r, _, _ := testRoot(t)
	_, err := parseEditCmd([]string{"-file", "a.png", "-data-uri", "data:image/png;base64,AAAA"}, r)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "mutually exclusive"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseEditPositionalFile(t *testing.T) {
	r, _, _ := testRoot(t)
	cmd, err := parseEditCmd([]string{"-rotate", "90", "shot.png"}, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.src.file != "shot.png" || cmd.src.rotation != 90 {
		t.Fatalf("unexpected flags: %+v", cmd.src)
	}
}

func TestParseApplyNeedsCommands(t *testing.T) {
	r, _, _ := testRoot(t)
	if _, err := parseApplyCmd([]string{"-file", "a.png"}, r); err == nil {
		t.Fatalf("expected error")
	} else if want := "nothing to apply"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestUnknownCommand(t *testing.T) {
	r, _, _ := testRoot(t)
	err := r.Run([]string{"paint"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %T", err)
	}
	if want := `unknown command "paint"`; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestUsageErrorRendersHelp(t *testing.T) {
	r, _, _ := testRoot(t)
	_, err := parseApplyCmd([]string{"-nope"}, r)
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"panelpaint apply", "-script", "stroke X0 Y0 X1 Y1 ..."} {
		if !strings.Contains(msg, want) {
			t.Errorf("help missing %q:\n%s", want, msg)
		}
	}
}

func TestExportOptionsFromFlags(t *testing.T) {
	base := editor.DefaultExportOptions()
	k := sinkFlags{output: "out.png"}
	opts, err := k.exportOptions(base)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Format != editor.FormatPNG {
		t.Errorf("format = %v", opts.Format)
	}
	k = sinkFlags{output: "out.png", format: "jpeg", quality: 0.5}
	if opts, err = k.exportOptions(base); err != nil {
		t.Fatal(err)
	}
	if opts.Format != editor.FormatJPEG || opts.Quality != 0.5 {
		t.Errorf("opts = %+v", opts)
	}
	k = sinkFlags{quality: 2}
	if _, err := k.exportOptions(base); err == nil {
		t.Errorf("expected quality error")
	}
	k = sinkFlags{format: "gif"}
	if _, err := k.exportOptions(base); err == nil {
		t.Errorf("expected format error")
	}
}

func TestDefaultOutput(t *testing.T) {
	cases := []struct {
		input, dir string
		format     editor.Format
		want       string
	}{
		{"shots/a.png", "", editor.FormatJPEG, "shots/a-edited.jpg"},
		{"a.jpeg", "/tmp", editor.FormatPNG, "a-edited.png"},
		{"", "/tmp/out", editor.FormatPNG, filepath.Join("/tmp/out", "panelpaint.png")},
		{"", "", editor.FormatJPEG, "panelpaint.jpg"},
	}
	for _, c := range cases {
		if got := defaultOutput(c.input, c.dir, c.format); got != c.want {
			t.Errorf("defaultOutput(%q, %q, %v) = %q want %q", c.input, c.dir, c.format, got, c.want)
		}
	}
}

func TestApplyWritesOutput(t *testing.T) {
	r, stdout, stderr := testRoot(t)
	in := writePNG(t, 40, 30)
	out := filepath.Join(t.TempDir(), "result.png")
	err := r.Run([]string{"apply",
		"-output", out,
		"-e", "color #00FF00",
		"-e", "stroke 5 15 35 15",
		"-e", "info",
		in,
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !strings.Contains(stdout.String(), "size 40x30") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "saved ") {
		t.Errorf("stderr = %q", stderr.String())
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	cr, cg, _, _ := img.At(20, 15).RGBA()
	if cg>>8 < 200 || cr>>8 > 50 {
		t.Errorf("stroke pixel = %v", img.At(20, 15))
	}
	cr, cg, _, _ = img.At(20, 2).RGBA()
	if cr>>8 < 200 || cg>>8 < 200 {
		t.Errorf("untouched pixel = %v", img.At(20, 2))
	}
}

func TestApplyScriptErrorReportsLine(t *testing.T) {
	r, _, _ := testRoot(t)
	in := writePNG(t, 10, 10)
	script := filepath.Join(t.TempDir(), "edits.txt")
	if err := os.WriteFile(script, []byte("tool paint\nbogus 1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := r.Run([]string{"apply", "-script", script, "-output", filepath.Join(t.TempDir(), "x.png"), in})
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := `line 2: unknown command "bogus"`; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestApplyFailureClosesSession(t *testing.T) {
	r, _, _ := testRoot(t)
	r.loadConfig()
	in := writePNG(t, 10, 10)
	out := filepath.Join(t.TempDir(), "never.png")
	cmd, err := parseApplyCmd([]string{"-output", out, "-e", "bogus", in}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	}
	if cmd.sess == nil || !cmd.sess.Finished() || !cmd.sess.closed {
		t.Fatalf("session was not closed after a failing command")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output should not exist, stat err = %v", err)
	}
}

func TestApplyLoadFailureClosesSession(t *testing.T) {
	r, _, _ := testRoot(t)
	r.loadConfig()
	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd, err := parseApplyCmd([]string{"-e", "info", bad}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	}
	if cmd.sess == nil || !cmd.sess.closed {
		t.Fatalf("session was not closed after a failed load")
	}
}

func TestInteractiveSession(t *testing.T) {
	r, stdout, _ := testRoot(t)
	in := writePNG(t, 20, 20)
	out := filepath.Join(t.TempDir(), "i.png")
	r.stdin = strings.NewReader("nope\nundo\nsave\ninfo\n")
	if err := r.Run([]string{"interactive", "-output", out, in}); err != nil {
		t.Fatalf("interactive: %v", err)
	}
	got := stdout.String()
	if !strings.Contains(got, "loaded ") || !strings.Contains(got, `error: unknown command "nope"`) {
		t.Errorf("stdout = %q", got)
	}
	if strings.Contains(got, "size 20x20") {
		t.Errorf("commands after save should not run: %q", got)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestConfigPrint(t *testing.T) {
	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"config"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[editor]", "format = jpeg", "[notify]"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("config output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestVersion(t *testing.T) {
	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout.String(), "panelpaint dev") {
		t.Errorf("version = %q", stdout.String())
	}
}

func TestClipboardTextSource(t *testing.T) {
	in := writePNG(t, 4, 4)
	src, err := clipboardTextSource("  file://" + in + "\n")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if got, ok := src.(editor.FileSource); !ok || string(got) != in {
		t.Errorf("source = %#v", src)
	}
	src, err = clipboardTextSource("data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("data uri: %v", err)
	}
	if _, ok := src.(editor.DataURISource); !ok {
		t.Errorf("source = %#v", src)
	}
	if _, err := clipboardTextSource("just some words"); err == nil {
		t.Error("expected error for plain text")
	}
}
