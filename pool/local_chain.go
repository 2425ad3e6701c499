// File: pool/local_chain.go
// Author: momentics <momentics@gmail.com>
//
// One thread's private stash of released buffers for one size class.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
)

// localChain is a mutex-guarded FIFO of not-live raw buffers belonging to
// exactly one size class and one OS thread, plus a back-reference to the
// chain-wide hint counter.
//
// The stash lock is held only for O(1) queue operations. The hint is
// incremented before a buffer becomes visible in the queue and
// decremented after one is removed, so it may transiently over-report
// but never under-reports: a zero read guarantees no idle buffer exists.
type localChain[T any] struct {
	mu   sync.Mutex
	fifo *queue.Queue
	hint *atomic.Int64
}

func newLocalChain[T any](hint *atomic.Int64) *localChain[T] {
	return &localChain[T]{
		fifo: queue.New(),
		hint: hint,
	}
}

// push stashes a buffer for reuse. Only the releasing thread pushes into
// its own stash, but any thread may pop.
func (lc *localChain[T]) push(rb *rawBuffer[T]) {
	lc.hint.Add(1)
	lc.mu.Lock()
	lc.fifo.Add(rb)
	lc.mu.Unlock()
}

// pop removes one stashed buffer, or returns nil if the stash is empty.
func (lc *localChain[T]) pop() *rawBuffer[T] {
	lc.mu.Lock()
	if lc.fifo.Length() == 0 {
		lc.mu.Unlock()
		return nil
	}
	rb := lc.fifo.Remove().(*rawBuffer[T])
	lc.mu.Unlock()
	lc.hint.Add(-1)
	return rb
}

// drain empties the stash and returns the residual count, leaving the
// hint untouched; the caller reconciles it. Used when purging the stash
// of a dead thread, whose buffers are dropped to the garbage collector.
func (lc *localChain[T]) drain() int {
	lc.mu.Lock()
	n := lc.fifo.Length()
	lc.fifo = queue.New()
	lc.mu.Unlock()
	return n
}
