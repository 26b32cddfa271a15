// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creachadair/jtview/markup"
	"github.com/creachadair/jtview/surface"
	"github.com/creachadair/jtview/surface/dom"
	"github.com/creachadair/jtview/view"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	var flags Config
	cmd := &cobra.Command{
		Use:   "browse file",
		Short: "Explore a JSON value as a foldable tree in the terminal",
		Long: `Browse displays the JSON value in the named file as a foldable tree.

Keys:
  up/down, k/j   move between lines
  enter, space   fold or unfold the group on the current line
  e, c           expand or collapse all groups
  q              quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lg := loggerFromContext(ctx)
			cfg := *configFromContext(ctx)
			if err := cfg.merge(cmd, &flags); err != nil {
				return err
			}
			raw, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			doc, v, err := cfg.newView(lg)
			if err != nil {
				return err
			}
			defer v.Destroy()
			if err := cfg.load(v, raw); err != nil {
				return err
			}

			m := newBrowseModel(doc, v, args[0])
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}
	flags.viewFlags(cmd)
	return cmd
}

// browseModel is the bubbletea model for browsing a view. It drives the view
// through the events of its document, the way a pointer would.
type browseModel struct {
	doc   *dom.Document
	v     *view.View
	title string

	lines  []dom.Line
	cursor int
	offset int
	height int
	status string
}

func newBrowseModel(doc *dom.Document, v *view.View, title string) *browseModel {
	m := &browseModel{doc: doc, v: v, title: title, height: 20}
	m.relayout()
	return m
}

// relayout refreshes the lines of the tree, keeping the cursor in range.
func (m *browseModel) relayout() {
	m.lines = m.v.Tree().(*dom.Element).Lines()
	m.cursor = max(0, min(m.cursor, len(m.lines)-1))
	m.scroll()
	m.point()
}

// scroll adjusts the offset so that the cursor is visible.
func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// point moves the pointer of the document to the current line.
func (m *browseModel) point() {
	if len(m.lines) == 0 {
		return
	}
	m.doc.Dispatch(surface.PointerOver, m.target(m.lines[m.cursor]))
}

// target returns the element under the pointer on a line.
func (m *browseModel) target(ln dom.Line) *dom.Element {
	if len(ln.Spans) != 0 {
		return ln.Spans[0].Elem
	}
	return ln.Block
}

// control returns the fold control on a line, or nil.
func (m *browseModel) control(ln dom.Line) *dom.Element {
	for _, s := range ln.Spans {
		if s.Elem.HasClass(markup.ExpandBtn) {
			return s.Elem
		}
	}
	return nil
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
				m.point()
			}
		case "down", "j":
			if m.cursor < len(m.lines)-1 {
				m.cursor++
				m.scroll()
				m.point()
			}
		case "enter", " ":
			if len(m.lines) == 0 {
				break
			}
			if ctl := m.control(m.lines[m.cursor]); ctl != nil {
				m.doc.Dispatch(surface.Click, ctl)
				m.relayout()
			} else {
				m.status = "no group starts on this line"
			}
		case "e":
			m.v.ExpandAll()
			m.relayout()
		case "c":
			m.v.CollapseAll()
			m.cursor = 0
			m.relayout()
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-4, 5)
		m.scroll()
	}
	return m, nil
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ move  ⏎ fold  e/c expand/collapse all  q quit"))
	b.WriteString("\n\n")

	nums := m.rowNumbers()
	end := min(m.offset+m.height, len(m.lines))
	hovered := m.v.Hovered()
	for i := m.offset; i < end; i++ {
		ln := m.lines[i]
		var line strings.Builder
		if nums != nil {
			num := ""
			if i < len(nums) {
				num = nums[i]
			}
			line.WriteString(styleRowNum.Render(num) + " ")
		}
		if i == m.cursor {
			line.WriteString(styleCursor.Render(iconCursor) + " ")
		} else {
			line.WriteString("  ")
		}
		line.WriteString(strings.Repeat("  ", m.depth(ln.Block)))
		for _, s := range ln.Spans {
			line.WriteString(renderSpan(s))
		}

		text := line.String()
		if hovered != nil && surface.Closest(ln.Block, m.v.Root(), markup.Row) == hovered {
			text = styleHover.Render(text)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(m.lines)), len(m.lines))
	if n := m.v.Collapsed(); len(n) != 0 {
		status += fmt.Sprintf("  %d collapsed", len(n))
	}
	if m.status != "" {
		status += "  " + m.status
	}
	b.WriteString(styleDim.Render(status))
	return b.String()
}

// rowNumbers returns the text of the row numbers of the view, or nil if the
// view does not number its rows.
func (m *browseModel) rowNumbers() []string {
	g := m.v.Gutter()
	if g == nil {
		return nil
	}
	nums := []string{}
	for _, e := range g.Children() {
		nums = append(nums, e.(*dom.Element).Text())
	}
	return nums
}

// depth reports the number of group bodies enclosing e within the tree.
func (m *browseModel) depth(e surface.Element) int {
	var n int
	for ; e != nil && e != m.v.Tree(); e = e.Parent() {
		if e.HasClass(markup.Object) || e.HasClass(markup.Array) {
			n++
		}
	}
	return n
}

// renderSpan renders one span of a line with the style of its class.
func renderSpan(s dom.Span) string {
	text := s.Text
	if s.Elem.HasClass(markup.ExpandBtn) {
		text = iconExpanded + " "
		if s.Elem.HasClass(markup.UnExpand) {
			text = iconCollapsed + " "
		}
	}
	for _, cs := range classStyles {
		if s.Elem.HasClass(cs.class) {
			return cs.style.Render(text)
		}
	}
	return text
}
