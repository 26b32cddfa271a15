// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creachadair/jtview/markup"
	"github.com/creachadair/jtview/view"
)

func newTestBrowser(t *testing.T, cfg Config, input string) *browseModel {
	t.Helper()
	doc, v, err := cfg.newView(nil)
	if err != nil {
		t.Fatalf("newView: %v", err)
	}
	if err := cfg.load(v, []byte(input)); err != nil {
		t.Fatalf("load: %v", err)
	}
	return newBrowseModel(doc, v, "test")
}

func press(m *browseModel, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestBrowse(t *testing.T) {
	cfg := *defaultConfig()
	cfg.RowNumbers = true
	m := newTestBrowser(t, cfg, `{"a": [1, 2], "b": {"c": true}}`)

	// { / "a":[ / 1, / 2 / ], / "b":{ / "c":true / } / }
	if n := len(m.lines); n != 9 {
		t.Fatalf("Lines: got %d, want 9", n)
	}
	if h := m.v.Hovered(); h == nil {
		t.Error("The first line should be hovered")
	}

	press(m, "down")
	if m.cursor != 1 {
		t.Errorf("Cursor: got %d, want 1", m.cursor)
	}
	if got := m.lines[1].Text(); got != `"a":[` {
		t.Errorf("Line 1: got %q", got)
	}

	// Fold the array on line 1.
	ids := m.v.IDs()
	press(m, "enter")
	if s := m.v.State(ids[1]); s != view.Collapsed {
		t.Errorf("State of %q: got %v, want %v", ids[1], s, view.Collapsed)
	}
	if n := len(m.lines); n != 8 {
		t.Errorf("Lines after fold: got %d, want 8", n)
	}
	if got := m.lines[2].Text(); got != markup.EllipsisText {
		t.Errorf("Line 2 after fold: got %q, want placeholder", got)
	}

	// A line without a fold control reports a status.
	press(m, "down", "enter")
	if m.status == "" {
		t.Error("Enter on a line without a control should set a status")
	}

	press(m, "c")
	if n := len(m.lines); n != 3 || m.cursor != 0 {
		t.Errorf("After collapse all: got %d lines, cursor %d; want 3, 0", len(m.lines), m.cursor)
	}
	press(m, "e")
	if n := len(m.lines); n != 9 {
		t.Errorf("After expand all: got %d lines, want 9", n)
	}

	press(m, "up", "up")
	if m.cursor != 0 {
		t.Errorf("Cursor: got %d, want 0", m.cursor)
	}

	out := m.View()
	for _, s := range []string{"test", "1", "9", iconExpanded, `"c"`} {
		if !strings.Contains(out, s) {
			t.Errorf("View lacks %q:\n%s", s, out)
		}
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}

func TestBrowseError(t *testing.T) {
	m := newTestBrowser(t, *defaultConfig(), `{"a": tru}`)
	if len(m.lines) != 2 {
		t.Fatalf("Lines: got %d, want 2", len(m.lines))
	}
	press(m, "enter")
	if m.status == "" {
		t.Error("Enter on an error line should set a status")
	}
	if out := m.View(); !strings.Contains(out, "tru") {
		t.Errorf("View lacks the error excerpt:\n%s", out)
	}
}

func TestBrowseEmpty(t *testing.T) {
	m := newTestBrowser(t, *defaultConfig(), "  ")
	press(m, "down", "up", "enter", "c", "e")
	if len(m.lines) != 0 || m.cursor != 0 {
		t.Errorf("Empty view: got %d lines, cursor %d", len(m.lines), m.cursor)
	}
	_ = m.View()
}
