// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/creachadair/jtview/markup"
	"github.com/creachadair/jtview/surface"
	"github.com/creachadair/jtview/view"
	"github.com/spf13/cobra"
)

// Config holds the settings shared by the commands. Values are read from an
// optional TOML file, and then overridden by flags set on the command line.
type Config struct {
	Placement      string `toml:"placement"` // "default" or "left"
	GuideLines     bool   `toml:"guide_lines"`
	NoFoldControls bool   `toml:"no_fold_controls"`
	NoHover        bool   `toml:"no_hover"`
	RowNumbers     bool   `toml:"row_numbers"`
	ErrorWindow    int    `toml:"error_window"`

	Collapse bool   `toml:"collapse"` // collapse all groups after rendering
	JWCC     bool   `toml:"jwcc"`     // accept JSON with comments and trailing commas
	Path     string `toml:"path"`     // render only the value at this path

	Title string `toml:"title"` // page title for HTML output
	Addr  string `toml:"addr"`  // listen address for serve
}

func defaultConfig() *Config {
	return &Config{
		Placement:   "default",
		ErrorWindow: markup.DefaultWindow,
		Title:       "jtview",
		Addr:        "localhost:8080",
	}
}

var placements = []string{"default", "left"}

// loadConfig reads the TOML configuration file at path over the defaults.
// If path == "", the defaults are returned.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) != 0 {
		var names []string
		for _, k := range keys {
			names = append(names, k.String())
		}
		return nil, fmt.Errorf("load config: unknown keys %s", strings.Join(names, ", "))
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) check() error {
	if !slices.Contains(placements, c.Placement) {
		return fmt.Errorf("invalid placement %q (want one of %s)", c.Placement, strings.Join(placements, ", "))
	}
	if c.ErrorWindow < 0 {
		return fmt.Errorf("invalid error window %d", c.ErrorWindow)
	}
	return nil
}

// viewFlags registers flags bound to the fields of c that affect the view.
// Use merge to apply the flags that were set to a loaded configuration.
func (c *Config) viewFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&c.GuideLines, "lines", false, "show guide-lines between sibling rows")
	fs.BoolVar(&c.NoFoldControls, "no-controls", false, "do not render fold controls")
	fs.BoolVar(&c.NoHover, "no-hover", false, "do not highlight the row under the pointer")
	fs.BoolVar(&c.RowNumbers, "rownums", false, "show row numbers")
	fs.IntVar(&c.ErrorWindow, "window", markup.DefaultWindow, "runes of context shown around a decoding error")
	fs.BoolVar(&c.Collapse, "collapse", false, "collapse all groups after rendering")
	fs.BoolVar(&c.JWCC, "jwcc", false, "accept JSON with comments and trailing commas")
	fs.StringVar(&c.Path, "path", "", "render only the value at this slash-separated path")
	fs.Bool("left", false, "align fold controls in the left gutter")
}

// merge copies over c the values of the flags explicitly set on cmd, which
// were bound to f by viewFlags.
func (c *Config) merge(cmd *cobra.Command, f *Config) error {
	fs := cmd.Flags()
	if fs.Changed("lines") {
		c.GuideLines = f.GuideLines
	}
	if fs.Changed("no-controls") {
		c.NoFoldControls = f.NoFoldControls
	}
	if fs.Changed("no-hover") {
		c.NoHover = f.NoHover
	}
	if fs.Changed("rownums") {
		c.RowNumbers = f.RowNumbers
	}
	if fs.Changed("window") {
		c.ErrorWindow = f.ErrorWindow
	}
	if fs.Changed("collapse") {
		c.Collapse = f.Collapse
	}
	if fs.Changed("jwcc") {
		c.JWCC = f.JWCC
	}
	if fs.Changed("path") {
		c.Path = f.Path
	}
	if fs.Changed("left") {
		c.Placement = "default"
		if left, _ := fs.GetBool("left"); left {
			c.Placement = "left"
		}
	}
	return c.check()
}

// viewConfig returns a view configuration for c attached to e.
func (c *Config) viewConfig(e surface.Element, lg *log.Logger) view.Config {
	place := view.PlaceDefault
	if c.Placement == "left" {
		place = view.PlaceLeft
	}
	return view.Config{
		Attach:         e,
		Placement:      place,
		GuideLines:     c.GuideLines,
		NoFoldControls: c.NoFoldControls,
		NoHover:        c.NoHover,
		RowNumbers:     c.RowNumbers,
		ErrorWindow:    c.ErrorWindow,
		Logger:         lg,
	}
}
