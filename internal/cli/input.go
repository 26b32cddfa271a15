// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/creachadair/jtview"
	"github.com/creachadair/jtview/ast"
	"github.com/creachadair/jtview/ast/cursor"
	"github.com/creachadair/jtview/view"
	"github.com/tailscale/hujson"
)

// readInput reads the named file, or r if name is "" or "-".
func readInput(name string, r io.Reader) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(r)
	}
	return os.ReadFile(name)
}

// argName returns the first element of args, or "".
func argName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// load renders the input text raw into v according to the settings of c.
// Decoding errors are displayed by v and are not reported.
func (c *Config) load(v *view.View, raw []byte) error {
	text := raw
	if c.JWCC {
		std, err := hujson.Standardize(bytes.Clone(raw))
		if err != nil {
			return v.ShowError(string(raw), jwccError(raw, err))
		}
		text = std
	}

	if c.Path != "" {
		root, err := ast.ParseSingle(bytes.NewReader(text))
		if err != nil {
			return v.Render(text)
		}
		sub, err := cursor.Path[ast.Value](root, cursor.ParsePath(c.Path)...)
		if err != nil {
			return fmt.Errorf("path %q: %w", c.Path, err)
		}
		if err := v.Render(sub); err != nil {
			return err
		}
	} else if err := v.Render(text); err != nil {
		return err
	}

	if c.Collapse {
		v.CollapseAll()
	}
	return nil
}

var jwccPos = regexp.MustCompile(`line (\d+), column (\d+)`)

// jwccError converts err, a hujson error reporting a line and a 1-based byte
// column of raw, into a *jtview.SyntaxError reporting the byte offset of that
// location. Errors without a location are returned unchanged.
func jwccError(raw []byte, err error) error {
	m := jwccPos.FindStringSubmatch(err.Error())
	if m == nil {
		return err
	}
	line, _ := strconv.Atoi(m[1])
	col, _ := strconv.Atoi(m[2])
	if line < 1 || col < 1 {
		return err
	}
	var off int
	for range line - 1 {
		i := bytes.IndexByte(raw[off:], '\n')
		if i < 0 {
			return err
		}
		off += i + 1
	}
	cause := err
	if u := errors.Unwrap(err); u != nil {
		cause = u
	}
	return jtview.NewSyntaxError(min(off+col-1, len(raw)), jtview.LineCol{Line: line, Column: col - 1}, cause)
}
