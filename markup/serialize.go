// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package markup

import (
	"strings"

	"github.com/creachadair/jtview/ast"
	"golang.org/x/net/html"
)

// Options control the shape of the markup generated by a Serializer.
type Options struct {
	// If true, each non-empty object or array carries a fold control.
	FoldControls bool

	// If true, fold controls are aligned in the left gutter rather than
	// beside the opening punctuation of their group.
	ControlsLeft bool

	// If true, group bodies are marked to display connecting guide-lines.
	GuideLines bool
}

// A Serializer renders JSON values as tree markup. Each object or array
// rendered consumes one id from the allocator the serializer was built with.
type Serializer struct {
	opts Options
	ids  *Allocator
}

// NewSerializer constructs a Serializer that draws ids from ids.
func NewSerializer(ids *Allocator, opts Options) *Serializer {
	return &Serializer{opts: opts, ids: ids}
}

// Document renders v as the complete contents of a tree: one row holding
// the markup for the value.
func (s *Serializer) Document(v ast.Value) string {
	var sb strings.Builder
	sb.WriteString(`<div class="` + Row + `">`)
	s.writeValue(&sb, v, false, true)
	sb.WriteString(`</div>`)
	return sb.String()
}

// Serialize renders the markup for v. If isValueOfKeyPair is true, v is the
// value of an object member and its opening punctuation is rendered inline
// after the key. If isLast is false, the closing line of a non-empty object
// or array is followed by a separator.
func (s *Serializer) Serialize(v ast.Value, isValueOfKeyPair, isLast bool) string {
	var sb strings.Builder
	s.writeValue(&sb, v, isValueOfKeyPair, isLast)
	return sb.String()
}

// A punct describes the punctuation of a group.
type punct struct {
	class       string // Brace or Bracket
	open, close string
	body        string // Object or Array
}

var (
	objectPunct = punct{class: Brace, open: "{", close: "}", body: Object}
	arrayPunct  = punct{class: Bracket, open: "[", close: "]", body: Array}
)

func (s *Serializer) writeValue(w *strings.Builder, v ast.Value, inline, isLast bool) {
	switch t := v.(type) {
	case ast.Object:
		s.writeGroup(w, objectPunct, len(t), inline, isLast, func(i int) ast.Value {
			w.WriteString(`<span class="` + Key + `">"`)
			writeText(w, t[i].Key)
			w.WriteString(`"</span><span class="` + Colon + `">:</span>`)
			return t[i].Value
		}, true)
	case ast.Array:
		s.writeGroup(w, arrayPunct, len(t), inline, isLast, func(i int) ast.Value {
			return t[i]
		}, false)
	default:
		if v == nil {
			v = ast.Null
		}
		kind := ast.Classify(v)
		w.WriteString(`<span class="` + kind.String() + `">`)
		if kind == ast.StringKind {
			w.WriteByte('"')
			writeText(w, v.Text())
			w.WriteByte('"')
		} else {
			writeText(w, v.Text())
		}
		w.WriteString(`</span>`)
	}
}

// writeGroup renders a group of n entries. For each entry, row is called to
// write any prefix of the row and return the entry's value. If keyed, entry
// values are rendered as the values of key pairs.
func (s *Serializer) writeGroup(w *strings.Builder, p punct, n int, inline, isLast bool, row func(int) ast.Value, keyed bool) {
	id := s.ids.Next()
	if n == 0 {
		w.WriteString(`<span class="` + p.class + `">` + p.open + `</span>`)
		w.WriteString(`<span class="` + p.class + `">` + p.close + `</span>`)
		return
	}

	tag := "div"
	if inline {
		tag = "span"
	}
	w.WriteString(`<` + tag + ` class="` + p.class + `">`)
	s.writeControl(w, id)
	w.WriteString(p.open + `</` + tag + `>`)

	w.WriteString(`<div class="` + p.body)
	if s.opts.GuideLines {
		w.WriteString(" " + ShowLine)
	}
	w.WriteString(`" ` + DataFID + `="` + id + `">`)
	for i := range n {
		w.WriteString(`<div class="` + Row + `">`)
		elt := row(i)
		s.writeValue(w, elt, keyed, i == n-1)
		if i < n-1 && !ast.IsNonEmptyGroup(elt) {
			w.WriteString(commaMarkup)
		}
		w.WriteString(`</div>`)
	}
	w.WriteString(`</div>`)

	w.WriteString(`<div class="` + p.class + `">` + p.close)
	if !isLast {
		w.WriteString(commaMarkup)
	}
	w.WriteString(`</div>`)
}

const commaMarkup = `<span class="` + Comma + `">,</span>`

func (s *Serializer) writeControl(w *strings.Builder, id string) {
	if !s.opts.FoldControls {
		return
	}
	w.WriteString(`<span class="` + ExpandBtn + " " + Expand)
	if s.opts.ControlsLeft {
		w.WriteString(" " + InLeft)
	}
	w.WriteString(`" ` + DataID + `="` + id + `"></span>`)
}

func writeText(w *strings.Builder, s string) { w.WriteString(html.EscapeString(s)) }
