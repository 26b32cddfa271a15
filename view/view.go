// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package view implements an interactive, foldable tree view of a JSON value
// attached to a host surface.
//
// A View renders a value as markup (see package markup) into its tree
// element, and indexes the rendered groups by id. Each non-empty object or
// array starts out expanded, and may be collapsed and expanded again by
// Toggle or by a click on its fold control. Collapsing a group hides its body
// and shows a placeholder in its place; the placeholder is created the first
// time the group is collapsed and reused afterward.
//
// When the input to Render is text that does not decode as JSON, the view
// displays the error message together with the region of the input around
// the position of the error, and Render reports success. Text consisting only
// of whitespace clears the view.
//
// A View is not safe for concurrent use. Hosts that deliver events from
// multiple goroutines must serialize access.
package view

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/creachadair/jtview/ast"
	"github.com/creachadair/jtview/markup"
	"github.com/creachadair/jtview/surface"
	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/mds/stack"
	"github.com/google/uuid"
)

var (
	// ErrNoAttachment is reported by New if the configuration does not
	// specify an attachment point.
	ErrNoAttachment = errors.New("no attachment point")

	// ErrDestroyed is reported by operations on a view that was destroyed.
	ErrDestroyed = errors.New("view is destroyed")

	// ErrUnknownID is reported by Toggle for an id that does not name a
	// foldable group of the current rendering.
	ErrUnknownID = errors.New("unknown node id")
)

// Placement selects where fold controls are drawn.
type Placement int

const (
	PlaceDefault Placement = iota // beside the opening punctuation of a group
	PlaceLeft                     // aligned in the left gutter
)

// Config carries the settings for a View. A zero Config is valid except
// that Attach must be set.
type Config struct {
	// The host element the view attaches to (required).
	Attach surface.Element

	Placement  Placement
	GuideLines bool // show guide-lines between the rows of a group

	NoFoldControls bool // do not render fold controls
	NoHover        bool // do not highlight the row under the pointer
	RowNumbers     bool // maintain a gutter of row numbers

	// The number of runes of context shown on each side of the position of a
	// decoding error. If <= 0, markup.DefaultWindow is used.
	ErrorWindow int

	// If set, the view logs its activity here at debug level.
	Logger *log.Logger
}

// A FoldState is the display state of a foldable group.
type FoldState int

const (
	Absent    FoldState = iota // no such group
	Expanded                   // body visible
	Collapsed                  // body hidden, placeholder visible
)

func (s FoldState) String() string {
	switch s {
	case Expanded:
		return "expanded"
	case Collapsed:
		return "collapsed"
	}
	return "absent"
}

// A View is a foldable tree view attached to a host element.
type View struct {
	cfg Config
	log *log.Logger
	ids *markup.Allocator
	ser *markup.Serializer

	root   surface.Element // the container attached to cfg.Attach
	tree   surface.Element
	gutter surface.Element // nil unless cfg.RowNumbers
	cancel []func()

	nodes   map[string]*node
	order   []string // ids in document order
	hovered surface.Element
	lastErr *markup.ErrorContext

	rowHeight float64
	measured  bool
	rows      int

	destroyed bool
}

// A node records the rendered parts of one foldable group.
type node struct {
	id          string
	control     surface.Element // nil if fold controls are disabled
	body        surface.Element
	placeholder surface.Element // nil until first collapsed
	state       FoldState
}

// New constructs a View from cfg and attaches it to cfg.Attach. The view is
// initially empty.
func New(cfg Config) (*View, error) {
	if cfg.Attach == nil {
		return nil, ErrNoAttachment
	}
	lg := cfg.Logger
	if lg == nil {
		lg = log.New(io.Discard)
	}
	ids := markup.NewAllocator("jtv-" + uuid.NewString() + "-")
	v := &View{
		cfg: cfg,
		log: lg,
		ids: ids,
		ser: markup.NewSerializer(ids, markup.Options{
			FoldControls: !cfg.NoFoldControls,
			ControlsLeft: cfg.Placement == PlaceLeft,
			GuideLines:   cfg.GuideLines,
		}),
	}

	v.root = cfg.Attach.Create("div")
	v.root.AddClass(markup.ContainerClass)
	if cfg.Placement == PlaceLeft {
		v.root.AddClass(markup.AddPadding)
	}
	if cfg.RowNumbers {
		v.gutter = v.root.Create("div")
		v.gutter.AddClass(markup.RowWrap)
		v.root.AppendChild(v.gutter)
	}
	v.tree = v.root.Create("div")
	v.tree.AddClass(markup.TreeWrap)
	v.root.AppendChild(v.tree)
	cfg.Attach.AppendChild(v.root)

	v.cancel = append(v.cancel, v.root.Listen(surface.Click, v.onClick))
	if !cfg.NoHover {
		v.cancel = append(v.cancel,
			v.root.Listen(surface.PointerOver, v.onPointerOver),
			v.root.Listen(surface.PointerOut, v.onPointerOut),
		)
	}
	return v, nil
}

// jsonSpace is the set of JSON whitespace characters.
const jsonSpace = " \t\r\n"

// Render replaces the contents of the view with a rendering of data, with
// every group expanded.
//
// If data is a string or []byte, it is decoded as JSON text. Text that is
// empty or all whitespace clears the view; text that does not decode renders
// a description of the error, and Render returns nil. Otherwise data must be
// an ast.Value, or a value accepted by ast.Convert.
func (v *View) Render(data any) error {
	if v.destroyed {
		return ErrDestroyed
	}

	var raw string
	switch t := data.(type) {
	case string:
		raw = t
	case []byte:
		raw = string(t)
	default:
		val, err := ast.Convert(data)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		return v.renderValue(val)
	}

	if strings.Trim(raw, jsonSpace) == "" {
		v.reset()
		v.log.Debug("cleared view")
		if err := v.tree.SetMarkup(""); err != nil {
			return err
		}
		v.recomputeRows()
		return nil
	}
	val, err := ast.ParseString(raw)
	if err != nil {
		return v.ShowError(raw, err)
	}
	return v.renderValue(val)
}

// ShowError replaces the contents of the view with a description of err, a
// failure to decode the text raw. If the message of err reports a position,
// the region of raw around that position is shown.
func (v *View) ShowError(raw string, err error) error {
	if v.destroyed {
		return ErrDestroyed
	}
	v.reset()
	ec := markup.Locate(raw, err, v.cfg.ErrorWindow)
	v.lastErr = &ec
	v.log.Debug("decoding input failed", "err", err, "position", ec.Position)
	if err := v.tree.SetMarkup(markup.ErrorMarkup(ec)); err != nil {
		return err
	}
	v.recomputeRows()
	return nil
}

func (v *View) renderValue(val ast.Value) error {
	v.reset()
	start := v.ids.Issued()
	if err := v.tree.SetMarkup(v.ser.Document(val)); err != nil {
		return err
	}
	v.index()
	v.recomputeRows()
	v.log.Debug("rendered value", "kind", ast.Classify(val),
		"ids", v.ids.Issued()-start, "groups", len(v.order), "rows", v.rows)
	return nil
}

// reset discards the state of the current rendering.
func (v *View) reset() {
	v.nodes = nil
	v.order = nil
	v.hovered = nil
	v.lastErr = nil
}

// index records the foldable groups of the current rendering.
func (v *View) index() {
	v.nodes = make(map[string]*node)
	get := func(id string) *node {
		n, ok := v.nodes[id]
		if !ok {
			n = &node{id: id, state: Expanded}
			v.nodes[id] = n
			v.order = append(v.order, id)
		}
		return n
	}

	stk := stack.New[surface.Element]()
	stk.Push(v.tree)
	for {
		e, ok := stk.Pop()
		if !ok {
			break
		}
		if id, ok := e.Attr(markup.DataID); ok {
			get(id).control = e
		}
		if id, ok := e.Attr(markup.DataFID); ok {
			get(id).body = e
		}
		kids := e.Children()
		for i := len(kids) - 1; i >= 0; i-- {
			stk.Push(kids[i])
		}
	}
}

// Destroy detaches the view from its host and releases its event handlers.
// After Destroy, other operations on v report ErrDestroyed or do nothing.
func (v *View) Destroy() error {
	if v.destroyed {
		return ErrDestroyed
	}
	for _, cancel := range v.cancel {
		cancel()
	}
	v.cancel = nil
	v.clearHover()
	v.reset()
	if p := v.root.Parent(); p != nil {
		p.RemoveChild(v.root)
	}
	v.destroyed = true
	v.log.Debug("destroyed view")
	return nil
}

// Root returns the container element of the view.
func (v *View) Root() surface.Element { return v.root }

// Tree returns the element holding the rendered tree.
func (v *View) Tree() surface.Element { return v.tree }

// Gutter returns the element holding the row numbers, or nil if row numbers
// are not enabled.
func (v *View) Gutter() surface.Element { return v.gutter }

// Err returns a description of the decoding error shown by the view, or nil
// if the view is not showing an error.
func (v *View) Err() *markup.ErrorContext { return v.lastErr }

// IDs returns the ids of the foldable groups of the current rendering, in
// document order. Empty objects and arrays are not foldable.
func (v *View) IDs() []string { return append([]string(nil), v.order...) }

// State reports the fold state of the group with the given id.
func (v *View) State(id string) FoldState {
	if n, ok := v.nodes[id]; ok {
		return n.state
	}
	return Absent
}

// Collapsed returns the set of ids of collapsed groups.
func (v *View) Collapsed() mapset.Set[string] {
	out := mapset.New[string]()
	for id, n := range v.nodes {
		if n.state == Collapsed {
			out.Add(id)
		}
	}
	return out
}

// Hovered returns the highlighted row, or nil.
func (v *View) Hovered() surface.Element { return v.hovered }

// Rows reports the number of row numbers in the gutter.
func (v *View) Rows() int { return v.rows }

// Toggle collapses the group with the given id if it is expanded, or expands
// it if it is collapsed.
func (v *View) Toggle(id string) error {
	if v.destroyed {
		return ErrDestroyed
	}
	n, ok := v.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	v.toggle(n)
	v.recomputeRows()
	return nil
}

// ExpandAll expands every collapsed group.
func (v *View) ExpandAll() { v.setAll(Collapsed) }

// CollapseAll collapses every expanded group.
func (v *View) CollapseAll() { v.setAll(Expanded) }

// setAll toggles every group in state from, in document order.
func (v *View) setAll(from FoldState) {
	if v.destroyed {
		return
	}
	var n int
	for _, id := range v.order {
		if nd := v.nodes[id]; nd.state == from {
			v.toggle(nd)
			n++
		}
	}
	v.recomputeRows()
	v.log.Debug("toggled all", "from", from, "count", n)
}

func (v *View) toggle(n *node) {
	if n.state == Expanded {
		v.collapse(n)
	} else {
		v.expand(n)
	}
}

func (v *View) collapse(n *node) {
	if n.placeholder == nil {
		p := v.tree.Create("div")
		p.AddClass(markup.Ellipsis)
		p.SetText(markup.EllipsisText)
		p.SetAttr(markup.DataEID, n.id)
		p.SetHidden(true)
		n.body.Parent().InsertBefore(p, n.body)
		n.placeholder = p
	}
	n.body.SetHidden(true)
	n.placeholder.SetHidden(false)
	if n.control != nil {
		n.control.RemoveClass(markup.Expand)
		n.control.AddClass(markup.UnExpand)
	}
	n.state = Collapsed
}

func (v *View) expand(n *node) {
	n.body.SetHidden(false)
	if n.placeholder != nil {
		n.placeholder.SetHidden(true)
	}
	if n.control != nil {
		n.control.RemoveClass(markup.UnExpand)
		n.control.AddClass(markup.Expand)
	}
	n.state = Expanded
}

func (v *View) onClick(target surface.Element) {
	if !target.HasClass(markup.ExpandBtn) {
		return
	}
	id, _ := target.Attr(markup.DataID)
	if n, ok := v.nodes[id]; ok {
		v.toggle(n)
		v.recomputeRows()
	}
}

func (v *View) onPointerOver(target surface.Element) {
	v.clearHover()
	if row := surface.Closest(target, v.root, markup.Row); row != nil {
		row.AddClass(markup.Hover)
		v.hovered = row
	}
}

func (v *View) onPointerOut(surface.Element) { v.clearHover() }

func (v *View) clearHover() {
	if v.hovered != nil {
		v.hovered.RemoveClass(markup.Hover)
		v.hovered = nil
	}
}

// recomputeRows reconciles the row-number gutter with the height of the
// tree. It does nothing if row numbers are disabled.
func (v *View) recomputeRows() {
	if v.gutter == nil {
		return
	}
	if !v.measured {
		v.rowHeight = v.measureRow()
		v.measured = true
		v.log.Debug("measured row", "height", v.rowHeight)
	}
	want := 0
	if v.rowHeight > 0 {
		// Allow for rounding error in the layout.
		want = int(math.Floor(v.tree.Height()/v.rowHeight + 1e-9))
	}

	kids := v.gutter.Children()
	for i := len(kids); i < want; i++ {
		num := v.gutter.Create("div")
		num.AddClass(markup.RowNum)
		num.SetText(strconv.Itoa(i + 1))
		v.gutter.AppendChild(num)
	}
	for i := len(kids) - 1; i >= want; i-- {
		v.gutter.RemoveChild(kids[i])
	}
	v.rows = want
}

// measureRow reports the height of a single row of the tree.
func (v *View) measureRow() float64 {
	probe := v.tree.Create("div")
	probe.AddClass(markup.Row)
	probe.SetText("0")
	v.tree.AppendChild(probe)
	defer v.tree.RemoveChild(probe)
	return probe.Height()
}
