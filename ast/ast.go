// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a syntax tree for JSON values, and a parser that
// constructs syntax trees from JSON source.
//
// A Value is one of the concrete types Object, Array, String, Number, Bool,
// or the constant Null. The set of types is closed: Classify decides the Kind
// of any value with a type switch, so no code downstream of the parser needs
// to probe values dynamically.
package ast

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/jtview"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string

	// Text returns the display text of the value. For strings this is the
	// decoded string without quotation marks; for other scalars it is the
	// literal JSON text. Objects and arrays return their JSON encoding.
	Text() string

	isValue()
}

// A Kind identifies the type of a JSON value.
type Kind byte

// Constants defining the Kind values.
const (
	NullKind Kind = iota
	ObjectKind
	ArrayKind
	StringKind
	NumberKind
	BoolKind
)

var kindStr = [...]string{
	NullKind:   "null",
	ObjectKind: "object",
	ArrayKind:  "array",
	StringKind: "string",
	NumberKind: "number",
	BoolKind:   "boolean",
}

// String returns the name of k, matching the name used for it in markup.
func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// Classify reports the kind of v. A nil Value is classified as null.
func Classify(v Value) Kind {
	switch v.(type) {
	case Object:
		return ObjectKind
	case Array:
		return ArrayKind
	case String:
		return StringKind
	case Number:
		return NumberKind
	case Bool:
		return BoolKind
	default:
		return NullKind
	}
}

// IsNonEmptyGroup reports whether v is an object or array with at least one
// element.
func IsNonEmptyGroup(v Value) bool {
	switch t := v.(type) {
	case Object:
		return len(t) != 0
	case Array:
		return len(t) != 0
	default:
		return false
	}
}

// An Object is a collection of key-value members, in input order.
type Object []*Member

func (Object) isValue() {}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) Text() string { return o.JSON() }

// Sort sorts the members of o in ascending order by key.
func (o Object) Sort() {
	slices.SortStableFunc(o, func(a, b *Member) int { return cmp.Compare(a.Key, b.Key) })
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string // decoded
	Value Value
}

// Field constructs an object member with the given key and value.
// The value must be acceptable to ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

func (m Member) JSON() string { return jtview.Quote(m.Key) + ":" + m.Value.JSON() }

func (m Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// An Array is a sequence of values.
type Array []Value

func (Array) isValue() {}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) Text() string { return a.JSON() }

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

// A String is a decoded string value.
type String string

func (String) isValue() {}

func (s String) JSON() string { return jtview.Quote(string(s)) }

func (s String) Text() string { return string(s) }

// A Number is a numeric value. It retains the text of the number as it was
// written in the input, so that rendering it does not alter its precision.
type Number struct{ text string }

func (Number) isValue() {}

// Int returns a Number for the given integer.
func Int(z int64) Number { return Number{text: strconv.FormatInt(z, 10)} }

// Float returns a Number for the given floating-point value.
func Float(f float64) Number { return Number{text: strconv.FormatFloat(f, 'g', -1, 64)} }

func (n Number) JSON() string { return n.text }

func (n Number) Text() string { return n.text }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) isValue() {}

func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

func (b Bool) Text() string { return b.JSON() }

type nullValue struct{}

func (nullValue) isValue() {}

func (nullValue) JSON() string { return "null" }

func (nullValue) Text() string { return "null" }

// Null is the JSON null constant.
var Null Value = nullValue{}

// ToValue converts a string, int, float, bool, nil, json.Number, or ast.Value
// into an ast.Value. It panics if v does not have one of those types; see
// Convert for a version that reports an error instead.
func ToValue(v any) Value {
	out, err := Convert(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Convert converts a Go value into an ast.Value. In addition to the types
// accepted by ToValue, it converts []any and map[string]any recursively, as
// produced by the encoding/json package. Since Go maps are unordered, the
// members of a converted map are sorted by key.
func Convert(v any) (Value, error) {
	switch t := v.(type) {
	case Value:
		return t, nil
	case nil:
		return Null, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Number{text: strconv.FormatUint(uint64(t), 10)}, nil
	case uint64:
		return Number{text: strconv.FormatUint(t, 10)}, nil
	case float32:
		if !isFinite(float64(t)) {
			return nil, fmt.Errorf("cannot convert %v to a JSON number", t)
		}
		return Number{text: strconv.FormatFloat(float64(t), 'g', -1, 32)}, nil
	case float64:
		if !isFinite(t) {
			return nil, fmt.Errorf("cannot convert %v to a JSON number", t)
		}
		return Float(t), nil
	case json.Number:
		return Number{text: string(t)}, nil
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			ev, err := Convert(elt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		out := make(Object, 0, len(t))
		for key, elt := range t {
			ev, err := Convert(elt)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out = append(out, &Member{Key: key, Value: ev})
		}
		out.Sort()
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a JSON value", v)
	}
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
