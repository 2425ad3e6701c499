// File: vec/vec.go
// Author: momentics <momentics@gmail.com>
//
// Growable vector backed by the array pool. Demonstrates and exercises
// the pool's expand/shrink contract; deliberately dependency-free.

package vec

import (
	"fmt"
	"strings"

	"github.com/momentics/hioload-pool/pool"
)

// PooledVec is a growable vector whose backing storage is rented from an
// ArrayPool. It holds at most one handle at a time, grows by Expand when
// the logical length reaches the handle's capacity and shrinks by Shrink
// once the length falls below half of it (with hysteresis, so lengths at
// the class boundary never thrash).
//
// The handle stays not-live: the vector tracks which prefix of the slots
// is meaningful and clears slots itself on Pop and Clear.
type PooledVec[T any] struct {
	pool   *pool.ArrayPool[T]
	buf    *pool.Slice[T]
	length int
}

// Create returns an empty vector renting from p. No buffer is held until
// the first Push.
func Create[T any](p *pool.ArrayPool[T]) *PooledVec[T] {
	return &PooledVec[T]{pool: p}
}

// Push appends value, expanding the backing buffer when full. It panics
// if the pool's largest class cannot hold the grown buffer.
func (v *PooledVec[T]) Push(value T) {
	if v.buf == nil {
		s, err := v.pool.RentMinimumUninitialized(false)
		if err != nil {
			panic(fmt.Sprintf("vec: could not rent backing buffer: %v", err))
		}
		v.buf = s
	}
	if v.length >= v.buf.Len() {
		s, err := v.pool.Expand(v.buf)
		if err != nil {
			panic(fmt.Sprintf("vec: could not expand backing buffer: %v", err))
		}
		v.buf = s
	}
	v.buf.Data()[v.length] = value
	v.length++
}

// Pop removes and returns the last element. The vacated slot is cleared
// so the stashed buffer never retains the value.
func (v *PooledVec[T]) Pop() (T, bool) {
	var zero T
	if v.buf == nil || v.length == 0 {
		return zero, false
	}
	v.length--
	d := v.buf.Data()
	value := d[v.length]
	d[v.length] = zero
	v.tryShrink()
	return value, true
}

// tryShrink halves the backing buffer once the length drops below half
// its capacity, but only while a smaller class exists.
func (v *PooledVec[T]) tryShrink() {
	capacity := v.buf.Len()
	if v.pool.MinSize() < capacity && v.length*2 < capacity {
		v.buf = v.pool.Shrink(v.buf)
	}
}

// Len returns the logical length.
func (v *PooledVec[T]) Len() int { return v.length }

// Capacity returns the backing buffer's capacity, 0 when none is held.
func (v *PooledVec[T]) Capacity() int {
	if v.buf == nil {
		return 0
	}
	return v.buf.Len()
}

// At returns the element at index, or false when out of bounds.
func (v *PooledVec[T]) At(index int) (T, bool) {
	if index < 0 || index >= v.length {
		var zero T
		return zero, false
	}
	return v.buf.Data()[index], true
}

// Set overwrites the element at index; false when out of bounds.
func (v *PooledVec[T]) Set(index int, value T) bool {
	if index < 0 || index >= v.length {
		return false
	}
	v.buf.Data()[index] = value
	return true
}

// Slice returns the live prefix of the backing buffer. The view is
// invalidated by Push, Pop and Clear.
func (v *PooledVec[T]) Slice() []T {
	if v.buf == nil {
		return nil
	}
	return v.buf.Data()[:v.length]
}

// Clear drops every element, releases the backing buffer to the pool and
// returns the previous length. The vector is reusable afterwards.
func (v *PooledVec[T]) Clear() int {
	if v.buf == nil {
		return 0
	}
	clear(v.buf.Data()[:v.length])
	v.buf.Release()
	v.buf = nil
	n := v.length
	v.length = 0
	return n
}

// Clone copies the live prefix into a fresh vector renting from the same
// pool. Slots beyond the length are not copied.
func (v *PooledVec[T]) Clone() *PooledVec[T] {
	out := Create(v.pool)
	if v.buf == nil {
		return out
	}
	s, err := v.pool.RentUninitialized(v.buf.Len(), false)
	if err != nil {
		panic(fmt.Sprintf("vec: could not rent clone buffer: %v", err))
	}
	copy(s.Data(), v.buf.Data()[:v.length])
	out.buf = s
	out.length = v.length
	return out
}

// String renders the live elements in index order as "[ a, b, c ]".
func (v *PooledVec[T]) String() string {
	var b strings.Builder
	b.WriteString("[ ")
	for i, x := range v.Slice() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", x)
	}
	b.WriteString(" ]")
	return b.String()
}
