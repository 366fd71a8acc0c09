package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/panelpaint/internal/config"
	"github.com/example/panelpaint/internal/editor"
	"github.com/example/panelpaint/internal/notify"
	"github.com/example/panelpaint/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	configPath  string
	saveAlerts  bool
	copyAlerts  bool
	dropAlerts  bool
	themeName   string
	activeTheme *theme.Theme
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("panelpaint", flag.ContinueOnError),
		program:  "panelpaint",
		notifier: notify.New(notify.LoadPreferences()),
		config:   config.New(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.SetOutput(io.Discard)
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to use")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving an image (default from config)")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard (default from config)")
	r.fs.BoolVar(&r.dropAlerts, "notify-discard", false, "show a desktop notification when edits are closed without saving (default from config)")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme for the editor window (default, light, dark or a theme file)")
	return r
}

// loadConfig reads the config file and applies it to the flags the user did
// not set explicitly.
func (r *root) loadConfig() {
	loader := config.NewLoader(version, r.configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	if !set["notify-discard"] {
		r.dropAlerts = cfg.Notify.Discard
	}
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("PANELPAINT_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	t, err := theme.NewLoader(r.config.Themes).Load(name)
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return fmt.Errorf("%w\n\n%w", err, &UsageError{of: r})
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventDiscard, r.dropAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "apply":
		cmd, err = parseApplyCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	case "help":
		err = &UsageError{of: r}
	default:
		err = fmt.Errorf("unknown command %q\n\n%w", cmdName, &UsageError{of: r})
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(r.program + " " + name)
}

// sessionOptions returns the editor options derived from the config file.
func (r *root) sessionOptions() []editor.Option {
	e := r.editorConfig()
	return []editor.Option{
		editor.WithHistorySize(e.HistorySize),
		editor.WithBrushRadius(e.BrushRadius),
		editor.WithColor(e.Color),
		editor.WithBackground(e.Background),
	}
}

// exportDefaults returns the export settings from the config file.
func (r *root) exportDefaults() editor.ExportOptions {
	e := r.editorConfig()
	opts := editor.DefaultExportOptions()
	if f, err := editor.ParseFormat(e.Format); err == nil {
		opts.Format = f
	}
	if e.Quality > 0 && e.Quality <= 1 {
		opts.Quality = e.Quality
	}
	return opts
}

func (r *root) editorConfig() config.Editor {
	if r == nil || r.config == nil {
		return config.DefaultEditor()
	}
	return r.config.Editor
}

func (r *root) saveDir() string {
	if r == nil || r.config == nil {
		return ""
	}
	return r.config.SaveDir
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyDiscard(source string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Discard(source)
}
