// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package dom implements an in-memory host surface backed by an HTML node
// tree, with a simple line-box layout.
//
// Layout follows a reduced form of normal flow: block elements (such as div)
// stack vertically, and each maximal run of inline content inside a block
// (inline elements and text that is not blank) forms one line box of the
// document's line height. Hidden elements, marked with display:none, occupy
// no space.
package dom

import (
	"bytes"
	"slices"
	"strings"

	"github.com/creachadair/jtview/surface"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A Document is a tree of elements rooted at a body element.
// A Document is not safe for concurrent use.
type Document struct {
	lineHeight float64
	body       *html.Node
	elems      map[*html.Node]*Element
	listen     map[*html.Node]map[surface.Event][]*listener
}

type listener struct{ h surface.Handler }

// New constructs an empty document whose line boxes have the given height.
func New(lineHeight float64) *Document {
	return &Document{
		lineHeight: lineHeight,
		body:       &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body},
		elems:      make(map[*html.Node]*Element),
		listen:     make(map[*html.Node]map[surface.Event][]*listener),
	}
}

// Body returns the root element of d.
func (d *Document) Body() *Element { return d.wrap(d.body) }

// LineHeight reports the height of one line box in d.
func (d *Document) LineHeight() float64 { return d.lineHeight }

// HTML renders the contents of the body of d.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&buf, c)
	}
	return buf.String()
}

// Dispatch delivers an event of type e to target and then to each of its
// ancestors in turn. Each handler receives target.
func (d *Document) Dispatch(e surface.Event, target *Element) {
	for n := target.n; n != nil; n = n.Parent {
		for _, l := range slices.Clone(d.listen[n][e]) {
			l.h(target)
		}
	}
}

// wrap returns the unique Element for n.
func (d *Document) wrap(n *html.Node) *Element {
	if e, ok := d.elems[n]; ok {
		return e
	}
	e := &Element{doc: d, n: n}
	d.elems[n] = e
	return e
}

// forget discards the state associated with n and its descendants.
func (d *Document) forget(n *html.Node) {
	delete(d.elems, n)
	delete(d.listen, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

// An Element is a node of a Document. It implements surface.Element.
type Element struct {
	doc *Document
	n   *html.Node
}

var _ surface.Element = (*Element)(nil)

// HTML renders e and its contents.
func (e *Element) HTML() string {
	var buf bytes.Buffer
	html.Render(&buf, e.n)
	return buf.String()
}

// Text returns the concatenated text content of e, including hidden text.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return sb.String()
}

// Parent implements part of surface.Element.
func (e *Element) Parent() surface.Element {
	if e.n.Parent == nil {
		return nil
	}
	return e.doc.wrap(e.n.Parent)
}

// Children implements part of surface.Element.
func (e *Element) Children() []surface.Element {
	var out []surface.Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Create implements part of surface.Element.
func (e *Element) Create(tag string) surface.Element {
	return e.doc.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// AppendChild implements part of surface.Element.
func (e *Element) AppendChild(c surface.Element) { e.n.AppendChild(e.own(c).n) }

// InsertBefore implements part of surface.Element.
func (e *Element) InsertBefore(c, ref surface.Element) {
	e.n.InsertBefore(e.own(c).n, e.own(ref).n)
}

// RemoveChild implements part of surface.Element.
func (e *Element) RemoveChild(c surface.Element) { e.n.RemoveChild(e.own(c).n) }

// own asserts that c belongs to the same document as e.
func (e *Element) own(c surface.Element) *Element {
	ce, ok := c.(*Element)
	if !ok || ce.doc != e.doc {
		panic("dom: element does not belong to this document")
	}
	return ce
}

// HasClass implements part of surface.Element.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes(), name)
}

// AddClass implements part of surface.Element.
func (e *Element) AddClass(name string) {
	cs := e.classes()
	if !slices.Contains(cs, name) {
		e.setClasses(append(cs, name))
	}
}

// RemoveClass implements part of surface.Element.
func (e *Element) RemoveClass(name string) {
	cs := e.classes()
	if i := slices.Index(cs, name); i >= 0 {
		e.setClasses(slices.Delete(cs, i, i+1))
	}
}

func (e *Element) classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

func (e *Element) setClasses(cs []string) {
	if len(cs) == 0 {
		e.delAttr("class")
	} else {
		e.SetAttr("class", strings.Join(cs, " "))
	}
}

// Attr implements part of surface.Element.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr implements part of surface.Element.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) delAttr(name string) {
	e.n.Attr = slices.DeleteFunc(e.n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
}

const hiddenStyle = "display:none"

// SetHidden implements part of surface.Element.
func (e *Element) SetHidden(hidden bool) {
	if hidden {
		e.SetAttr("style", hiddenStyle)
	} else {
		e.delAttr("style")
	}
}

// Hidden implements part of surface.Element.
func (e *Element) Hidden() bool { return isHidden(e.n) }

// SetText implements part of surface.Element.
func (e *Element) SetText(text string) {
	e.clear()
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetMarkup implements part of surface.Element.
func (e *Element) SetMarkup(markup string) error {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return err
	}
	e.clear()
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

// clear removes and forgets all the contents of e.
func (e *Element) clear() {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		e.doc.forget(c)
		c = next
	}
}

// Height implements part of surface.Element.
func (e *Element) Height() float64 {
	switch {
	case isHidden(e.n):
		return 0
	case !isBlock(e.n):
		return e.doc.lineHeight
	}
	return float64(lineCount(e.n)) * e.doc.lineHeight
}

// Listen implements part of surface.Element.
func (e *Element) Listen(ev surface.Event, h surface.Handler) func() {
	l := &listener{h: h}
	m := e.doc.listen[e.n]
	if m == nil {
		m = make(map[surface.Event][]*listener)
		e.doc.listen[e.n] = m
	}
	m[ev] = append(m[ev], l)
	return func() {
		if m := e.doc.listen[e.n]; m != nil {
			m[ev] = slices.DeleteFunc(m[ev], func(x *listener) bool { return x == l })
		}
	}
}

// Dispatch delivers an event of type ev targeted at e. It is shorthand for
// calling Dispatch on the document of e.
func (e *Element) Dispatch(ev surface.Event) { e.doc.Dispatch(ev, e) }
