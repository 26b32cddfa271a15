// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var flags Config
	var output, title string
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render JSON as a foldable tree in a standalone HTML page",
		Long: `Render reads JSON text from the named file, or from stdin, and writes a
standalone HTML page displaying it as a tree. Text that does not decode is
shown as an error, with the input around the position of the error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lg := loggerFromContext(ctx)
			cfg := *configFromContext(ctx)
			if err := cfg.merge(cmd, &flags); err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				cfg.Title = title
			}

			prog := newProgress(lg)
			raw, err := readInput(argName(args), cmd.InOrStdin())
			if err != nil {
				return err
			}
			doc, v, err := cfg.newView(lg)
			if err != nil {
				return err
			}
			if err := cfg.load(v, raw); err != nil {
				return err
			}
			if ec := v.Err(); ec != nil {
				lg.Warn("Input is not valid JSON", "err", ec.Message)
			}

			p := page{Title: cfg.Title, Body: doc.HTML(), Hover: !cfg.NoHover}
			if err := writeOutput(output, cmd.OutOrStdout(), p.write); err != nil {
				return err
			}
			prog.done("Rendered page", "groups", len(v.IDs()), "bytes", len(raw))
			return nil
		},
	}
	flags.viewFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the page to this file (default stdout)")
	cmd.Flags().StringVar(&title, "title", "jtview", "page title")
	return cmd
}

// writeOutput calls write with the named file, or with stdout if name is ""
// or "-".
func writeOutput(name string, stdout io.Writer, write func(io.Writer) error) error {
	if name == "" || name == "-" {
		return write(stdout)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}
