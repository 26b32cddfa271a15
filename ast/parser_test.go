// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jtview"
	"github.com/creachadair/jtview/ast"
)

const episodes = `{
  "episodes": [
    {"episode": 1, "summary": "It \"begins\"!", "hasDetail": false},
    {"episode": 2, "summary": "caf\u00e9 \ud83d\ude00", "hasDetail": true, "tags": []}
  ],
  "meta": {}
}`

func TestParse(t *testing.T) {
	vs, err := ast.Parse(strings.NewReader(episodes + " [] 3"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(vs) != 3 {
		t.Fatalf("Parse: got %d values, want 3", len(vs))
	}

	root, ok := vs[0].(ast.Object)
	if !ok {
		t.Fatalf("Root is %T, not object", vs[0])
	}
	mem := root.Find("episodes")
	if mem == nil {
		t.Fatal(`Key "episodes" not found`)
	}
	lst, ok := mem.Value.(ast.Array)
	if !ok {
		t.Fatalf("Member value is %T, not array", mem.Value)
	} else if len(lst) != 2 {
		t.Fatalf("Array has %d entries, want 2", len(lst))
	}
	check[ast.String](t, lst[0].(ast.Object), "summary", func(s ast.String) {
		if want := `It "begins"!`; string(s) != want {
			t.Errorf("summary: got %q, want %q", s, want)
		}
	})
	check[ast.String](t, lst[1].(ast.Object), "summary", func(s ast.String) {
		if want := "caf\u00e9 \U0001F600"; string(s) != want {
			t.Errorf("summary: got %q, want %q", s, want)
		}
	})
	check[ast.Number](t, lst[1].(ast.Object), "episode", func(v ast.Number) {
		if got := v.Text(); got != "2" {
			t.Errorf("episode: got %s, want 2", got)
		}
	})
	check[ast.Bool](t, lst[1].(ast.Object), "hasDetail", nil)
	check[ast.Array](t, lst[1].(ast.Object), "tags", nil)
	check[ast.Object](t, root, "meta", nil)

	// Key order is preserved.
	var keys []string
	for _, m := range lst[0].(ast.Object) {
		keys = append(keys, m.Key)
	}
	if got := strings.Join(keys, ","); got != "episode,summary,hasDetail" {
		t.Errorf("Keys: got %s, want input order", got)
	}
}

func check[T any](t *testing.T, obj ast.Object, key string, f func(T)) {
	t.Helper()
	if v := obj.Find(key); v == nil {
		t.Fatalf("Key %q not found", key)
	} else if tv, ok := v.Value.(T); !ok {
		var zero T
		t.Fatalf("Key %q value is %T, not %T", key, v.Value, zero)
	} else if f != nil {
		f(tv)
	}
}

func TestParseSingle(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		offset int // -1 if no syntax error expected
		extra  bool
	}{
		{`true`, `true`, -1, false},
		{` {"a" : [ 1 , 2 ] } `, `{"a":[1,2]}`, -1, false},
		{`{"a":}`, ``, 5, false},
		{`[1,2`, ``, 4, false},
		{`{"a" 1}`, ``, 5, false},
		{`[tru]`, ``, 1, false},
		{`[01]`, ``, 1, false},
		{"\"abc\x01\"", ``, 4, false},
		{`1 2`, `1`, 2, true},
		{`{"a":1} {"b":2}`, `{"a":1}`, 8, true},
		{`[1] "x"`, `[1]`, 4, true},
		{`[1] }`, ``, 4, false},
	}
	for _, test := range tests {
		v, err := ast.ParseString(test.input)
		switch {
		case test.extra:
			var se *jtview.SyntaxError
			if !errors.Is(err, ast.ErrExtraInput) || !errors.As(err, &se) {
				t.Errorf("ParseSingle(%#q): got %v, want ErrExtraInput", test.input, err)
				continue
			}
			if se.Offset != test.offset {
				t.Errorf("ParseSingle(%#q): offset %d, want %d (%v)", test.input, se.Offset, test.offset, err)
			}
		case test.offset >= 0:
			var se *jtview.SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("ParseSingle(%#q): got %v, want syntax error", test.input, err)
				continue
			}
			if se.Offset != test.offset {
				t.Errorf("ParseSingle(%#q): offset %d, want %d (%v)", test.input, se.Offset, test.offset, err)
			}
			if !strings.Contains(err.Error(), "position") {
				t.Errorf("ParseSingle(%#q): error %q does not mention a position", test.input, err)
			}
			continue
		case err != nil:
			t.Errorf("ParseSingle(%#q): unexpected error: %v", test.input, err)
			continue
		}
		if got := v.JSON(); got != test.want {
			t.Errorf("ParseSingle(%#q): got %s, want %s", test.input, got, test.want)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := ast.ParseString("   \n"); err == nil {
		t.Error("ParseSingle: got no error for empty input")
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`{"a":1,"a":2}`, `{"a":2}`},
		{`{"a":1,"b":2,"a":{"c":3}}`, `{"a":{"c":3},"b":2}`},
		{`{"x":{"a":1,"a":[]},"x":true}`, `{"x":true}`},
		{`[{"a":1},{"a":2}]`, `[{"a":1},{"a":2}]`},
	}
	for _, test := range tests {
		v, err := ast.ParseString(test.input)
		if err != nil {
			t.Errorf("ParseString(%#q): unexpected error: %v", test.input, err)
			continue
		}
		if got := v.JSON(); got != test.want {
			t.Errorf("ParseString(%#q): got %s, want %s", test.input, got, test.want)
		}
	}
}
