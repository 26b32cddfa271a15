// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/creachadair/jtview/markup"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorPurple = lipgloss.Color("176")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHover  = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	styleCursor = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleRowNum = lipgloss.NewStyle().Foreground(colorDim).Width(5).Align(lipgloss.Right)
)

// classStyles maps the class of a span of tree markup to its style.
// Classes are checked in order, and the first match is used.
var classStyles = []struct {
	class string
	style lipgloss.Style
}{
	{markup.ErrorPosition, lipgloss.NewStyle().Reverse(true).Foreground(colorRed)},
	{markup.ErrorMsg, lipgloss.NewStyle().Bold(true).Foreground(colorRed)},
	{markup.Key, lipgloss.NewStyle().Foreground(colorPurple)},
	{"string", lipgloss.NewStyle().Foreground(colorGreen)},
	{"number", lipgloss.NewStyle().Foreground(colorBlue)},
	{"boolean", lipgloss.NewStyle().Foreground(colorYellow)},
	{"null", lipgloss.NewStyle().Foreground(colorRed)},
	{markup.Ellipsis, styleDim},
	{markup.ExpandBtn, lipgloss.NewStyle().Foreground(colorCyan)},
	{markup.Brace, lipgloss.NewStyle().Foreground(colorWhite)},
	{markup.Bracket, lipgloss.NewStyle().Foreground(colorWhite)},
	{markup.Comma, lipgloss.NewStyle().Foreground(colorGray)},
	{markup.Colon, lipgloss.NewStyle().Foreground(colorGray)},
}

const (
	iconExpanded  = "▾"
	iconCollapsed = "▸"
	iconCursor    = "›"
)
