// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package markup

import "strconv"

// An Allocator issues node ids. Ids are unique for the lifetime of the
// allocator and are never reused; an allocator is not reset between renders.
// An Allocator is not safe for concurrent use.
type Allocator struct {
	prefix string
	next   int
}

// NewAllocator constructs an Allocator whose ids all begin with prefix.
func NewAllocator(prefix string) *Allocator { return &Allocator{prefix: prefix} }

// Next returns a fresh id.
func (a *Allocator) Next() string {
	id := a.prefix + strconv.Itoa(a.next)
	a.next++
	return id
}

// Issued reports the number of ids a has issued so far.
func (a *Allocator) Issued() int { return a.next }
