// File: pool/rawbuf.go
// Author: momentics <momentics@gmail.com>
//
// Raw backing storage for one pooled buffer of a fixed size class.

package pool

// rawBuffer owns the backing array of one pooled buffer.
//
// live is the single authority for "the slots hold caller-visible
// values": release clears slots only when it is set, and Clone refuses
// to read a buffer without it. The handle mutates the flag exclusively
// through Slice methods, so the two can never diverge.
//
// Invariant: data == nil iff the capacity is zero (the empty sentinel,
// which has no backing allocation and is never stashed).
type rawBuffer[T any] struct {
	data []T
	live bool
}

// newRawBuffer allocates a buffer with the given capacity. A fresh Go
// allocation is always zero-valued; the uninitialized-content discipline
// of the pool only becomes observable once buffers are reused.
func newRawBuffer[T any](capacity int) *rawBuffer[T] {
	if capacity == 0 {
		return &rawBuffer[T]{}
	}
	return &rawBuffer[T]{data: make([]T, capacity)}
}

// newRawBufferWith allocates a buffer and writes every slot from the
// fabricator, leaving it live.
func newRawBufferWith[T any](capacity int, fab func() T) *rawBuffer[T] {
	rb := newRawBuffer[T](capacity)
	rb.fill(fab)
	return rb
}

// emptyLiveRawBuffer returns the zero-capacity sentinel, marked live so
// that cloning and rendering work without special cases.
func emptyLiveRawBuffer[T any]() *rawBuffer[T] {
	return &rawBuffer[T]{live: true}
}

func (rb *rawBuffer[T]) len() int { return len(rb.data) }

// fill writes every slot from the fabricator and marks the buffer live.
func (rb *rawBuffer[T]) fill(fab func() T) {
	for i := range rb.data {
		rb.data[i] = fab()
	}
	rb.live = true
}

// clearSlots resets every slot to the zero value. This is the Go analogue
// of destructing the elements: it releases any references the slots held
// so a stashed buffer never pins caller memory against the GC.
func (rb *rawBuffer[T]) clearSlots() {
	clear(rb.data)
}
