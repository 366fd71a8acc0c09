package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/example/panelpaint/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save    bool
	Copy    bool
	Discard bool
}

// Editor holds the defaults a new editing session starts with.
type Editor struct {
	HistorySize int
	BrushRadius int
	Color       color.RGBA
	Background  color.RGBA
	Format      string
	Quality     float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Editor  Editor
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// DefaultEditor returns the editor settings used when the file omits them.
func DefaultEditor() Editor {
	return Editor{
		HistorySize: 20,
		BrushRadius: 8,
		Color:       color.RGBA{0xE5, 0x39, 0x35, 255},
		Background:  color.RGBA{255, 255, 255, 255},
		Format:      "jpeg",
		Quality:     0.92,
	}
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // empty lets PANELPAINT_THEME or the default apply
		Editor: DefaultEditor(),
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "history_size = %d\n", c.Editor.HistorySize)
	fmt.Fprintf(&sb, "brush_radius = %d\n", c.Editor.BrushRadius)
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Editor.Color))
	fmt.Fprintf(&sb, "background = %s\n", theme.Hex(c.Editor.Background))
	fmt.Fprintf(&sb, "format = %s\n", c.Editor.Format)
	fmt.Fprintf(&sb, "quality = %s\n", strconv.FormatFloat(c.Editor.Quality, 'g', -1, 64))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "discard = %v\n", c.Notify.Discard)
	sb.WriteString("\n")

	// sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(c.Themes[name].String())
		sb.WriteString("\n")
	}

	return sb.String()
}
