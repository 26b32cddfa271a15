// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtview implements the JSON decoder underlying an interactive,
// foldable JSON tree view.
//
// The view itself lives in package [github.com/creachadair/jtview/view]; it
// renders values from package ast into markup (package markup) on a host
// surface (package surface). This package provides the lexical scanner and
// the event-driven stream parser those values are decoded with.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jtview.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON. The
// parser works by calling methods on a Handler value to report the structure
// of the input:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// In case of error, parsing is terminated and an error of concrete type
// *jtview.SyntaxError is returned. Its message reports the byte offset of the
// error as "at position N", which is what the tree view uses to highlight
// the offending input.
package jtview
