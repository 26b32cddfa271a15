// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jtview"
)

// ErrExtraInput is reported by ParseSingle when the input contains data
// after the first value, other than whitespace. It is wrapped by a
// *jtview.SyntaxError giving the offset where the extra data begins.
var ErrExtraInput = errors.New("extra input after value")

// Parse parses and returns the JSON values from r. In case of error, any
// complete values already parsed are returned along with the error.
func Parse(r io.Reader) ([]Value, error) {
	h := new(parseHandler)
	st := jtview.NewStream(r)
	var vs []Value
	for {
		if err := st.ParseOne(h); err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		v, err := h.result()
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
}

// ParseSingle parses and returns a single JSON value from r. If r contains
// data after the first value, apart from whitespace, ParseSingle returns the
// first value along with a *jtview.SyntaxError wrapping ErrExtraInput.
func ParseSingle(r io.Reader) (Value, error) {
	h := new(parseHandler)
	st := jtview.NewStream(r)
	if err := st.ParseOne(h); err == io.EOF {
		return nil, errors.New("no JSON value in input")
	} else if err != nil {
		return nil, err
	}
	v, err := h.result()
	if err != nil {
		return nil, err
	}
	var tail trailingHandler
	if err := st.ParseOne(&tail); errors.Is(err, ErrExtraInput) {
		return v, jtview.NewSyntaxError(tail.loc.Pos, tail.loc.First, ErrExtraInput)
	} else if err != io.EOF {
		return v, err
	}
	return v, nil
}

// trailingHandler implements the jtview.Handler interface to report the
// location of the first token of a value, if there is one.
type trailingHandler struct{ loc jtview.Location }

func (t *trailingHandler) stop(loc jtview.Anchor) error {
	t.loc = loc.Location()
	return ErrExtraInput
}

func (t *trailingHandler) BeginObject(loc jtview.Anchor) error { return t.stop(loc) }
func (t *trailingHandler) EndObject(loc jtview.Anchor) error   { return t.stop(loc) }
func (t *trailingHandler) BeginArray(loc jtview.Anchor) error  { return t.stop(loc) }
func (t *trailingHandler) EndArray(loc jtview.Anchor) error    { return t.stop(loc) }
func (t *trailingHandler) BeginMember(loc jtview.Anchor) error { return t.stop(loc) }
func (t *trailingHandler) EndMember(loc jtview.Anchor) error   { return t.stop(loc) }
func (t *trailingHandler) Value(loc jtview.Anchor) error       { return t.stop(loc) }
func (t *trailingHandler) EndOfInput(jtview.Anchor)            {}

// ParseString is a convenience wrapper that parses a single value from s.
func ParseString(s string) (Value, error) { return ParseSingle(strings.NewReader(s)) }

// A parseHandler implements the jtview.Handler interface to construct
// syntax trees for JSON values. The stack holds incomplete objects, arrays,
// and members; a completed top-level value is left alone on the stack.
type parseHandler struct {
	stk []any
}

func (h *parseHandler) result() (Value, error) {
	defer func() { h.stk = h.stk[:0] }()
	if len(h.stk) != 1 {
		return nil, errors.New("incomplete value")
	}
	return h.stk[0].(Value), nil
}

func (h *parseHandler) top() int { return len(h.stk) - 1 }

func (h *parseHandler) pop() any {
	last := h.stk[h.top()]
	h.stk = h.stk[:h.top()]
	return last
}

func (h *parseHandler) push(v any) { h.stk = append(h.stk, v) }

// reduceValue attaches a completed value to the incomplete member or array
// atop the stack, or leaves it as the result if there is none.
func (h *parseHandler) reduceValue(v Value) error {
	if len(h.stk) == 0 {
		h.push(v)
		return nil
	}
	switch prev := h.stk[h.top()].(type) {
	case *Member:
		prev.Value = v
	case Array:
		h.stk[h.top()] = append(prev, v)
	default:
		return fmt.Errorf("unexpected %T on parse stack", prev)
	}
	return nil
}

func (h *parseHandler) BeginObject(jtview.Anchor) error { h.push(Object{}); return nil }

func (h *parseHandler) EndObject(jtview.Anchor) error { return h.reduceValue(h.pop().(Object)) }

func (h *parseHandler) BeginArray(jtview.Anchor) error { h.push(Array{}); return nil }

func (h *parseHandler) EndArray(jtview.Anchor) error { return h.reduceValue(h.pop().(Array)) }

func (h *parseHandler) BeginMember(loc jtview.Anchor) error {
	key, err := jtview.Unquote(loc.Text())
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	h.push(&Member{Key: string(key)})
	return nil
}

// EndMember attaches the completed member to its object. A repeated key
// keeps its first position and takes the latest value.
func (h *parseHandler) EndMember(jtview.Anchor) error {
	m := h.pop().(*Member)
	obj := h.stk[h.top()].(Object)
	if old := obj.Find(m.Key); old != nil {
		old.Value = m.Value
		return nil
	}
	h.stk[h.top()] = append(obj, m)
	return nil
}

func (h *parseHandler) Value(loc jtview.Anchor) error {
	switch loc.Token() {
	case jtview.String:
		dec, err := jtview.Unquote(loc.Text())
		if err != nil {
			return fmt.Errorf("invalid string: %w", err)
		}
		return h.reduceValue(String(dec))
	case jtview.Integer, jtview.Number:
		return h.reduceValue(Number{text: string(loc.Text())})
	case jtview.True, jtview.False:
		return h.reduceValue(Bool(loc.Token() == jtview.True))
	case jtview.Null:
		return h.reduceValue(Null)
	default:
		return fmt.Errorf("unknown value %v", loc.Token())
	}
}

func (h *parseHandler) EndOfInput(jtview.Anchor) {}
