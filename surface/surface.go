// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package surface defines the interface between a tree view and the host
// that displays it.
package surface

// An Event identifies a kind of input event delivered by a host.
type Event int

// Constants defining the Event values.
const (
	Click       Event = iota + 1 // activation of an element
	PointerOver                  // the pointer entered an element
	PointerOut                   // the pointer left an element
)

var eventStr = [...]string{Click: "click", PointerOver: "pointerover", PointerOut: "pointerout"}

func (e Event) String() string {
	if e <= 0 || int(e) >= len(eventStr) {
		return "unknown"
	}
	return eventStr[e]
}

// A Handler is called with the original target of an event.
type Handler func(target Element)

// An Element is a node in the structure of a host surface.
//
// Hosts deliver events to an element and then to each of its ancestors in
// turn, so a handler registered on an element sees the events of all its
// descendants.
type Element interface {
	// Parent returns the parent of the element, or nil if it is detached.
	Parent() Element

	// Children returns the element children of the element, in order.
	Children() []Element

	// Create returns a new detached element with the given tag, belonging to
	// the same surface as the receiver.
	Create(tag string) Element

	// AppendChild adds c as the last child of the element.
	AppendChild(c Element)

	// InsertBefore inserts c as a child of the element, immediately before
	// ref, which must be a child of the element.
	InsertBefore(c, ref Element)

	// RemoveChild detaches c, which must be a child of the element.
	RemoveChild(c Element)

	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)

	// Attr reports the value of the named attribute, and whether it is set.
	Attr(name string) (string, bool)
	SetAttr(name, value string)

	// SetHidden hides or shows the element. A hidden element and all its
	// descendants occupy no space.
	SetHidden(hidden bool)
	Hidden() bool

	// SetText replaces the contents of the element with plain text.
	SetText(text string)

	// SetMarkup replaces the contents of the element with the given markup.
	SetMarkup(markup string) error

	// Height reports the vertical extent of the element as laid out by the
	// host. Hosts without layout report 0.
	Height() float64

	// Listen registers h to be called for events of type e delivered to the
	// element or its descendants. The returned function cancels the
	// registration.
	Listen(e Event, h Handler) (cancel func())
}

// Closest returns the nearest element, starting from e and moving toward the
// root, that has the given class. The search stops without a result when it
// reaches stop, which is not itself considered. It returns nil if no
// matching element is found.
func Closest(e, stop Element, class string) Element {
	for ; e != nil && e != stop; e = e.Parent() {
		if e.HasClass(class) {
			return e
		}
	}
	return nil
}
