// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtview_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jtview"
	"github.com/google/go-cmp/cmp"
)

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{"   ", "."},

		{"true false null", `
Value true <true>
Value false <false>
Value null <null>
.`},

		{`0 5 -6.32 0.1e-2`, `
Value integer <0>
Value integer <5>
Value number <-6.32>
Value number <0.1e-2>
.`},

		{`{}`, "BeginObject\nEndObject\n."},

		{`{"x":null, "y":[true]}`, `
BeginObject
BeginMember <"x">
Value null <null>
EndMember ","
BeginMember <"y">
BeginArray
Value true <true>
EndArray
EndMember "}"
EndObject
.`},

		{`[]`, "BeginArray\nEndArray\n."},
	}

	for _, test := range tests {
		st := jtview.NewStream(strings.NewReader(test.input))
		th := new(testHandler)
		if err := st.Parse(th); err != nil {
			t.Errorf("Parse failed: %v", err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		{`{`, `BeginObject`,
			`at position 1 (line 1, column 1): expected "}" or string, got end of input`},
		{`}`, ``, `at position 0 (line 1, column 0): unexpected "}"`},
		{`{false:1}`, `BeginObject`,
			`at position 1 (line 1, column 1): expected "}" or string, got false`},
		{`{"a":}`, `
BeginObject
BeginMember <"a">`,
			`at position 5 (line 1, column 5): unexpected "}"`},
		{`[15,]`, `
BeginArray
Value integer <15>`,
			`at position 4 (line 1, column 4): unexpected "]"`},
		{`[1 2]`, `
BeginArray
Value integer <1>`,
			`at position 3 (line 1, column 3): expected "]" or ",", got integer`},
		{"[\n  nul\n]", `BeginArray`,
			`at position 4 (line 2, column 2): unknown constant "nul"`},
	}

	for _, test := range tests {
		st := jtview.NewStream(strings.NewReader(test.input))
		th := new(testHandler)
		err := st.Parse(th)
		if err == nil {
			t.Error("Parse did not report an error")
			continue
		}
		var se *jtview.SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Input: %#q: error %T is not a *SyntaxError", test.input, err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := diffStrings(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestHandlerError(t *testing.T) {
	errStop := errors.New("stop")
	st := jtview.NewStream(strings.NewReader(`[1, 2]`))
	err := st.Parse(stopHandler{testHandler: new(testHandler), err: errStop})
	if !errors.Is(err, errStop) {
		t.Errorf("Parse: got %v, want %v", err, errStop)
	}
}

func TestParseOne(t *testing.T) {
	const input = `{ "love": true } [] "ok"`
	const want = `
BeginObject
BeginMember <"love">
Value true <true>
EndMember "}"
EndObject
---
BeginArray
EndArray
---
Value string <"ok">
---
.`
	th := new(testHandler)

	st := jtview.NewStream(strings.NewReader(input))
	for {
		err := st.ParseOne(th)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("ParseOne failed: %v", err)
		}
		th.pr("---")
	}

	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", input, diff)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

type testHandler struct {
	buf bytes.Buffer
}

func (t *testHandler) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) BeginObject(loc jtview.Anchor) error { t.pr("BeginObject"); return nil }
func (t *testHandler) EndObject(loc jtview.Anchor) error   { t.pr("EndObject"); return nil }
func (t *testHandler) BeginArray(loc jtview.Anchor) error  { t.pr("BeginArray"); return nil }
func (t *testHandler) EndArray(loc jtview.Anchor) error    { t.pr("EndArray"); return nil }
func (t *testHandler) EndOfInput(loc jtview.Anchor)        { t.pr(".") }

func (t *testHandler) BeginMember(loc jtview.Anchor) error {
	t.pr("BeginMember <%s>", string(loc.Text()))
	return nil
}

func (t *testHandler) EndMember(loc jtview.Anchor) error {
	t.pr("EndMember %s", loc.Token())
	return nil
}

func (t *testHandler) Value(loc jtview.Anchor) error {
	t.pr(`Value %s <%s>`, loc.Token(), string(loc.Text()))
	return nil
}

// stopHandler reports err for the second value it sees.
type stopHandler struct {
	*testHandler
	err error
}

func (s stopHandler) Value(loc jtview.Anchor) error {
	if strings.Contains(s.output(), "Value") {
		return s.err
	}
	return s.testHandler.Value(loc)
}
