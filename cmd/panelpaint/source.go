package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/panelpaint/internal/clipboard"
	"github.com/example/panelpaint/internal/editor"
)

// sourceFlags selects where the image to edit comes from.
type sourceFlags struct {
	file          string
	dataURI       string
	fromClipboard bool
	rotation      int
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.file, "file", "", "image file to edit")
	fs.StringVar(&s.dataURI, "data-uri", "", "inline image as a data: URI")
	fs.BoolVar(&s.fromClipboard, "from-clipboard", false, "read the image from the clipboard")
	fs.BoolVar(&s.fromClipboard, "from-clip", false, "read the image from the clipboard (alias)")
	fs.IntVar(&s.rotation, "rotate", 0, "initial rotation in degrees (multiples of 90)")
}

// count reports how many sources were given.
func (s *sourceFlags) count() int {
	n := 0
	if s.file != "" {
		n++
	}
	if s.dataURI != "" {
		n++
	}
	if s.fromClipboard {
		n++
	}
	return n
}

func (s *sourceFlags) validate(required bool) error {
	switch n := s.count(); {
	case n > 1:
		return errors.New("-file, -data-uri and -from-clipboard are mutually exclusive")
	case n == 0 && required:
		return errors.New("an image source is required: use -file, -data-uri or -from-clipboard")
	}
	return nil
}

// label names the source for messages.
func (s *sourceFlags) label() string {
	switch {
	case s.file != "":
		return s.file
	case s.dataURI != "":
		return "inline image"
	case s.fromClipboard:
		return "clipboard image"
	}
	return "image"
}

// open returns the selected source, or nil when none was given.
func (s *sourceFlags) open() (editor.Source, error) {
	switch {
	case s.file != "":
		return editor.FileSource(s.file), nil
	case s.dataURI != "":
		return editor.DataURISource(s.dataURI), nil
	case s.fromClipboard:
		data, err := clipboard.ReadImage()
		if err == nil {
			return editor.BytesSource{Name: "clipboard", Data: data}, nil
		}
		if !errors.Is(err, clipboard.ErrNoImage) {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		text, terr := clipboard.ReadText()
		if terr != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return clipboardTextSource(text)
	}
	return nil, nil
}

// clipboardTextSource accepts a copied data: URI or image path.
func clipboardTextSource(text string) (editor.Source, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "data:") {
		return editor.DataURISource(text), nil
	}
	path := strings.TrimPrefix(text, "file://")
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		return editor.FileSource(path), nil
	}
	return nil, clipboard.ErrNoImage
}

// sinkFlags controls what happens to the bytes a session saves.
type sinkFlags struct {
	output      string
	format      string
	quality     float64
	toClipboard bool
	copyPath    bool
}

func (k *sinkFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&k.output, "output", "", "output file path (defaults to NAME-edited.EXT next to the input)")
	fs.StringVar(&k.format, "format", "", "export format: jpeg or png (default from config)")
	fs.Float64Var(&k.quality, "quality", 0, "jpeg quality between 0 and 1 (default from config)")
	fs.BoolVar(&k.toClipboard, "to-clipboard", false, "also copy the result to the clipboard")
	fs.BoolVar(&k.toClipboard, "to-clip", false, "also copy the result to the clipboard (alias)")
	fs.BoolVar(&k.copyPath, "copy-path", false, "copy the saved file path to the clipboard as text")
}

// exportOptions merges the flags over base.
func (k *sinkFlags) exportOptions(base editor.ExportOptions) (editor.ExportOptions, error) {
	opts := base
	if k.format != "" {
		f, err := editor.ParseFormat(k.format)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	} else if k.output != "" {
		if f, err := editor.ParseFormat(strings.TrimPrefix(filepath.Ext(k.output), ".")); err == nil {
			opts.Format = f
		}
	}
	if k.quality != 0 {
		if k.quality < 0 || k.quality > 1 {
			return opts, fmt.Errorf("quality must be between 0 and 1")
		}
		opts.Quality = k.quality
	}
	return opts, nil
}

// defaultOutput names the output after the input file, or places it in dir
// when there is no input file.
func defaultOutput(input, dir string, f editor.Format) string {
	ext := "." + string(f)
	if f == editor.FormatJPEG {
		ext = ".jpg"
	}
	if input != "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return base + "-edited" + ext
	}
	name := "panelpaint" + ext
	if dir != "" {
		return filepath.Join(dir, name)
	}
	return name
}

// saveHandler writes saved bytes to path and reports the outcome through r.
// The returned function records the first error in *errp.
func (r *root) saveHandler(path string, sink *sinkFlags, errp *error) func([]byte) {
	return func(data []byte) {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			*errp = fmt.Errorf("write %s: %w", path, err)
			return
		}
		saved := path
		if abs, err := filepath.Abs(path); err == nil {
			saved = abs
		}
		fmt.Fprintf(r.stderr, "saved %s\n", saved)
		r.notifySave(saved)
		if sink.copyPath {
			if err := clipboard.WriteText(saved); err != nil {
				*errp = fmt.Errorf("copy path to clipboard: %w", err)
				return
			}
		}
		if !sink.toClipboard {
			return
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			log.Printf("copy: %v", err)
			return
		}
		if err := clipboard.WriteImage(img); err != nil {
			*errp = fmt.Errorf("copy image to clipboard: %w", err)
			return
		}
		detail := filepath.Base(path)
		fmt.Fprintf(r.stderr, "copied %s to clipboard\n", detail)
		r.notifyCopy(detail)
	}
}

// copyImage is the viewer's copy action.
func (r *root) copyImage(img image.Image) error {
	if err := clipboard.WriteImage(img); err != nil {
		return err
	}
	r.notifyCopy("image")
	return nil
}

// session bundles an editor session with the output it saves to.
type session struct {
	*editor.Session
	output  string
	saveErr error
	closed  bool
}

// newSession builds a session whose saves are written according to sink.
func (r *root) newSession(src *sourceFlags, sink *sinkFlags) (*session, error) {
	export, err := sink.exportOptions(r.exportDefaults())
	if err != nil {
		return nil, err
	}
	s := &session{output: sink.output}
	if s.output == "" {
		s.output = defaultOutput(src.file, r.saveDir(), export.Format)
	}
	opts := append(r.sessionOptions(),
		editor.WithExportOptions(export),
		editor.WithOnSave(r.saveHandler(s.output, sink, &s.saveErr)),
		editor.WithOnClose(func() {
			s.closed = true
			r.notifyDiscard(src.label())
		}),
	)
	s.Session = editor.New(opts...)
	return s, nil
}
