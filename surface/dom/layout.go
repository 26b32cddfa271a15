// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockAtoms = map[atom.Atom]bool{
	atom.Body: true, atom.Div: true, atom.P: true, atom.Pre: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Section: true,
	atom.Header: true, atom.Footer: true, atom.Main: true,
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockAtoms[n.DataAtom]
}

func isHidden(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "style" {
			return strings.Contains(strings.ReplaceAll(a.Val, " ", ""), hiddenStyle)
		}
	}
	return false
}

// isInline reports whether n is visible inline content.
func isInline(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return strings.TrimSpace(n.Data) != ""
	case html.ElementNode:
		return !isBlock(n) && !isHidden(n)
	}
	return false
}

// lineCount reports the number of line boxes in the visible contents of the
// block n.
func lineCount(n *html.Node) int {
	var total int
	var inRun bool
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isHidden(c):
		case isBlock(c):
			total += lineCount(c)
			inRun = false
		case isInline(c):
			if !inRun {
				total++
				inRun = true
			}
		}
	}
	return total
}

// A Line is one line box of laid-out content.
type Line struct {
	Block *Element // the innermost block containing the line
	Spans []Span   // the inline content of the line, in order
}

// Text returns the concatenated text of the spans of the line.
func (ln Line) Text() string {
	var sb strings.Builder
	for _, s := range ln.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// A Span is a piece of inline content. Empty inline elements are reported
// as spans with no text.
type Span struct {
	Elem *Element // the innermost element containing the text
	Text string
}

// Lines returns the visible line boxes of e, in order.
// If e is hidden, Lines returns nil.
func (e *Element) Lines() []Line {
	switch {
	case isHidden(e.n):
		return nil
	case !isBlock(e.n):
		return []Line{{Block: e, Spans: e.doc.inline(e.n, nil, nil)}}
	}
	return e.doc.lines(e.n, nil)
}

func (d *Document) lines(n *html.Node, out []Line) []Line {
	cur := -1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isHidden(c):
		case isBlock(c):
			out = d.lines(c, out)
			cur = -1
		case isInline(c):
			if cur < 0 {
				out = append(out, Line{Block: d.wrap(n)})
				cur = len(out) - 1
			}
			out[cur].Spans = d.inline(c, n, out[cur].Spans)
		}
	}
	return out
}

// inline appends the spans of the inline content n, whose parent is p.
func (d *Document) inline(n, p *html.Node, out []Span) []Span {
	switch {
	case n.Type == html.TextNode:
		return append(out, Span{Elem: d.wrap(p), Text: n.Data})
	case n.Type != html.ElementNode || isHidden(n):
		return out
	case n.FirstChild == nil:
		return append(out, Span{Elem: d.wrap(n)})
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = d.inline(c, n, out)
	}
	return out
}
