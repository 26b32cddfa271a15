// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Invalid
// escapes are replaced by the Unicode replacement rune, and surrogate pairs
// written as two \u escapes are combined. Unquote reports an error for an
// incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	var hi rune // pending high surrogate, or 0
	flush := func() {
		if hi != 0 {
			dec = utf8.AppendRune(dec, utf8.RuneError)
			hi = 0
		}
	}
	for {
		if i > 0 {
			flush()
		}
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(max(n, 1))

		if r == 'u' {
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.SliceTo(4))
			src = src.SliceFrom(4)
			switch {
			case err != nil:
				flush()
				dec = utf8.AppendRune(dec, utf8.RuneError)
			case utf16.IsSurrogate(rune(v)) && hi == 0:
				hi = rune(v)
			case hi != 0:
				if c := utf16.DecodeRune(hi, rune(v)); c != utf8.RuneError {
					dec = utf8.AppendRune(dec, c)
					hi = 0
				} else {
					flush()
					dec = utf8.AppendRune(dec, rune(v))
				}
			default:
				dec = utf8.AppendRune(dec, rune(v))
			}
		} else {
			flush()
			switch r {
			case '"', '\\', '/':
				dec = append(dec, byte(r))
			case 'b':
				dec = append(dec, '\b')
			case 'f':
				dec = append(dec, '\f')
			case 'n':
				dec = append(dec, '\n')
			case 'r':
				dec = append(dec, '\r')
			case 't':
				dec = append(dec, '\t')
			default:
				dec = utf8.AppendRune(dec, utf8.RuneError)
			}
		}

		// Look for the next escape sequence; if there is none, copy the rest
		// of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			flush()
			return mem.Append(dec, src), nil
		}
	}
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
