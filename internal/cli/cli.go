// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cli implements the jtview command-line interface.
//
// The commands display JSON values as foldable trees:
//
//   - render: write a standalone HTML page
//   - serve: serve an interactive page over HTTP
//   - browse: explore the tree in the terminal
//
// All commands accept --verbose (-v) for debug logging, and --config to read
// default settings from a TOML file. Loggers and settings are passed to the
// commands through their context.
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/creachadair/jtview/surface/dom"
	"github.com/creachadair/jtview/view"
	"github.com/spf13/cobra"
)

var version = "devel"

// Execute runs the jtview command line with the given context.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:          "jtview",
		Short:        "jtview displays JSON values as foldable trees",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			lg := newLogger(cmd.ErrOrStderr(), level)
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if configPath != "" {
				lg.Debug("Loaded config", "path", configPath)
			}
			ctx := withConfig(withLogger(cmd.Context(), lg), cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("JTVIEW_CONFIG"), "path of a TOML configuration file")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newBrowseCmd())
	return root
}

// lineHeight is the height of one line in the in-memory layout, so that the
// height of a tree is its number of lines.
const lineHeight = 1

// newView constructs an in-memory document holding a view configured by c.
func (c *Config) newView(lg *log.Logger) (*dom.Document, *view.View, error) {
	doc := dom.New(lineHeight)
	v, err := view.New(c.viewConfig(doc.Body(), lg))
	if err != nil {
		return nil, nil, err
	}
	return doc, v, nil
}
