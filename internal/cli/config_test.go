// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jtview/surface/dom"
	"github.com/creachadair/jtview/view"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
			t.Errorf("Config (-want, +got):\n%s", diff)
		}
	})

	t.Run("File", func(t *testing.T) {
		path := writeFile(t, "jtview.toml", `
placement = "left"
guide_lines = true
row_numbers = true
error_window = 8
addr = ":9999"
`)
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		want := defaultConfig()
		want.Placement = "left"
		want.GuideLines = true
		want.RowNumbers = true
		want.ErrorWindow = 8
		want.Addr = ":9999"
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("Config (-want, +got):\n%s", diff)
		}
	})

	tests := []struct {
		name, content, want string
	}{
		{"UnknownKey", `colour = "red"`, "unknown keys colour"},
		{"BadPlacement", `placement = "right"`, `invalid placement "right"`},
		{"BadWindow", `error_window = -1`, "invalid error window"},
		{"BadSyntax", `placement = `, "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, "bad.toml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("loadConfig: got error %v, want %q", err, tt.want)
			}
		})
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("loadConfig of a missing file should fail")
	}
}

func TestMerge(t *testing.T) {
	base := defaultConfig()
	base.GuideLines = true
	base.RowNumbers = true

	var flags Config
	cmd := &cobra.Command{Use: "test"}
	flags.viewFlags(cmd)
	if err := cmd.ParseFlags([]string{"--left", "--window=5", "--rownums=false", "--path", "a/0"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := *base
	if err := cfg.merge(cmd, &flags); err != nil {
		t.Fatalf("merge: %v", err)
	}
	want := *base
	want.Placement = "left"
	want.ErrorWindow = 5
	want.RowNumbers = false
	want.Path = "a/0"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Merged config (-want, +got):\n%s", diff)
	}

	doc := dom.New(1)
	vc := cfg.viewConfig(doc.Body(), nil)
	wantView := view.Config{
		Placement:   view.PlaceLeft,
		GuideLines:  true,
		ErrorWindow: 5,
	}
	if diff := cmp.Diff(wantView, vc, cmpopts.IgnoreFields(view.Config{}, "Attach", "Logger")); diff != "" {
		t.Errorf("View config (-want, +got):\n%s", diff)
	}
	if vc.Attach == nil {
		t.Error("View config has no attachment")
	}
}

func TestMergeInvalid(t *testing.T) {
	var flags Config
	cmd := &cobra.Command{Use: "test"}
	flags.viewFlags(cmd)
	if err := cmd.ParseFlags([]string{"--window=-3"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cfg := *defaultConfig()
	if err := cfg.merge(cmd, &flags); err == nil {
		t.Error("merge with a negative window should fail")
	}
}
