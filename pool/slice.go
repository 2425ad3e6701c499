// File: pool/slice.go
// Author: momentics <momentics@gmail.com>
//
// Scope-guarded borrow handle over one pooled buffer.

package pool

import (
	"fmt"
	"strings"
)

// Slice is the borrow handle for one pooled buffer. It exclusively owns
// its raw buffer until Release returns the buffer to the pool; release it
// exactly once, normally with defer:
//
//	s, err := p.Rent(64)
//	if err != nil { ... }
//	defer s.Release()
//
// A live handle has every slot holding a caller-visible value; releasing
// it clears the slots first. A handle rented uninitialized is not live:
// no slot may be read before it is written, and the caller decides via
// MarkLive whether release should clear the contents.
//
// Using a handle after Release, releasing twice, or cloning a not-live
// handle are contract violations and panic.
type Slice[T any] struct {
	raw   *rawBuffer[T]
	chain *chain[T]
}

func (s *Slice[T]) mustRaw() *rawBuffer[T] {
	if s.raw == nil {
		panic("pool: slice used after release")
	}
	return s.raw
}

// Data returns the mutable view over the buffer, sized to its capacity.
func (s *Slice[T]) Data() []T {
	return s.mustRaw().data
}

// Len returns the buffer capacity in elements.
func (s *Slice[T]) Len() int {
	return s.mustRaw().len()
}

// Live reports whether the contents are currently marked live.
func (s *Slice[T]) Live() bool {
	return s.mustRaw().live
}

// MarkLive declares that every slot now holds a caller-written value, so
// release will clear the contents before stashing the buffer.
func (s *Slice[T]) MarkLive() {
	s.mustRaw().live = true
}

// Release returns the buffer to the releasing thread's stash, clearing
// live contents first. Releasing the empty sentinel is a no-op.
func (s *Slice[T]) Release() {
	rb := s.raw
	if rb == nil {
		panic("pool: slice released twice")
	}
	s.raw = nil
	if rb.len() == 0 {
		return
	}
	s.chain.release(rb)
}

// Clone borrows a same-class buffer from the owning chain and deep-copies
// every element into it. The clone is live. Cloning a handle whose
// contents are not live would copy unspecified values and panics instead.
func (s *Slice[T]) Clone() *Slice[T] {
	rb := s.mustRaw()
	if !rb.live {
		panic("pool: clone of uninitialized slice contents")
	}
	if rb.len() == 0 {
		return &Slice[T]{raw: emptyLiveRawBuffer[T](), chain: s.chain}
	}
	ns := s.chain.rent(nil, false)
	copy(ns.raw.data, rb.data)
	ns.raw.live = true
	return ns
}

// String renders the elements in index order as "[ a, b, c ]".
func (s *Slice[T]) String() string {
	var b strings.Builder
	b.WriteString("[ ")
	for i, v := range s.Data() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteString(" ]")
	return b.String()
}
