// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package markup

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultWindow is the number of runes of context shown on each side of the
// position of a decoding error, if no other value is configured.
const DefaultWindow = 20

// An ErrorContext describes a decoding error and the region of the input
// around the position where it occurred.
type ErrorContext struct {
	Message string // the text of the error

	// The byte offset of the error in the input, or -1 if the error message
	// does not report a position. When Position < 0, the other fields are
	// empty.
	Position int

	Before    string // up to window runes ending at the error position
	ErrorChar string // the rune at the error position, "" at end of input
	After     string // up to window runes following ErrorChar
}

// Located reports whether ec carries a position in the input.
func (ec ErrorContext) Located() bool { return ec.Position >= 0 }

var positionRE = regexp.MustCompile(`position\D*(\d+)`)

// Locate extracts the position of err from its message, and returns the
// context of that position in raw. The position is the first decimal integer
// following the word "position" in the message, interpreted as a byte offset
// into raw. Offsets beyond the end of raw are clamped to its end. If window
// <= 0, DefaultWindow is used.
func Locate(raw string, err error, window int) ErrorContext {
	if window <= 0 {
		window = DefaultWindow
	}
	ec := ErrorContext{Message: err.Error(), Position: -1}
	m := positionRE.FindStringSubmatch(ec.Message)
	if m == nil {
		return ec
	}
	pos, perr := strconv.Atoi(m[1])
	if perr != nil {
		return ec // out of range
	}
	ec.Position = pos

	// Align to the start of the rune containing the offset.
	pos = min(pos, len(raw))
	for pos > 0 && pos < len(raw) && !utf8.RuneStart(raw[pos]) {
		pos--
	}

	start := pos
	for range window {
		if start == 0 {
			break
		}
		_, n := utf8.DecodeLastRuneInString(raw[:start])
		start -= n
	}
	ec.Before = raw[start:pos]

	rest := raw[pos:]
	if rest != "" {
		_, n := utf8.DecodeRuneInString(rest)
		ec.ErrorChar, rest = rest[:n], rest[n:]
	}
	end := 0
	for range window {
		if end >= len(rest) {
			break
		}
		_, n := utf8.DecodeRuneInString(rest[end:])
		end += n
	}
	ec.After = rest[:end]
	return ec
}

// ErrorMarkup renders ec as the markup shown in place of a tree. If ec has
// no position, only the message is shown.
func ErrorMarkup(ec ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(`<div class="` + ErrorWrap + `"><div class="` + ErrorMsg + `">`)
	writeText(&sb, ec.Message)
	sb.WriteString(`</div>`)
	if ec.Located() {
		sb.WriteString(`<div class="` + ErrorStr + `">`)
		writeText(&sb, ec.Before)
		sb.WriteString(`<span class="` + ErrorPosition + `">`)
		writeText(&sb, ec.ErrorChar)
		sb.WriteString(`</span>`)
		writeText(&sb, ec.After)
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}
