// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package markup compiles JSON values into the markup of a foldable tree.
//
// Each non-empty object or array is rendered as an opening punctuation line,
// a body holding one row per member or element, and a closing punctuation
// line. Every object or array is assigned an id from an Allocator; the id is
// written on its fold control (data-id) and its body (data-fid), so that a
// controller can find the pieces of a group without re-running the
// serializer. The collapsed placeholder for a group carries the same id as
// data-eid.
//
// The class names below are the contract between the markup and whatever
// theme displays it.
package markup

// Class names used in the generated markup.
const (
	ContainerClass = "jsonTreeView"

	ExpandBtn  = "expandBtn" // fold control
	Expand     = "expand"    // control state: group is expanded
	UnExpand   = "unExpand"  // control state: group is collapsed
	InLeft     = "inLeft"    // control placed in the left gutter
	AddPadding = "addPadding"

	Hover   = "hover"
	Row     = "row"
	RowNum  = "rowNum"
	RowWrap = "rowWrap"

	TreeWrap = "treeWrap"

	ErrorWrap     = "errorWrap"
	ErrorMsg      = "errorMsg"
	ErrorStr      = "errorStr"
	ErrorPosition = "errorPosition"

	Brace    = "brace"
	Bracket  = "bracket"
	Comma    = "comma"
	ShowLine = "showLine"
	Object   = "object"
	Array    = "array"
	Key      = "key"
	Colon    = "colon"
	Ellipsis = "ellipsis"
)

// Attribute names correlating the parts of a group.
const (
	DataID  = "data-id"  // on the fold control
	DataFID = "data-fid" // on the body
	DataEID = "data-eid" // on the collapsed placeholder
)

// EllipsisText is the content of a collapsed placeholder.
const EllipsisText = "\u00b7\u00b7\u00b7"
