// File: pool/chain.go
// Author: momentics <momentics@gmail.com>
//
// Borrow/return engine for one size class: thread-local stashes, a
// cross-thread steal path and lazy reclamation of dead threads' caches.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/tidwall/btree"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/internal/concurrency"
)

// chain manages every buffer of one size class.
//
// Each OS thread that touches the chain gets a localChain registered in
// an ordered map keyed by thread identity. Entries whose thread no
// longer exists are tombstones: they are detected and purged lazily
// during steal scans, and their residual buffers are dropped, so a dead
// thread's cache never outlives the next scan.
//
// Lock ordering: the registry lock is always acquired before any stash
// lock visited under it, never the other way around, and no operation
// ever holds locks of two different size classes.
type chain[T any] struct {
	classSize int
	hint      atomic.Int64

	mu       sync.RWMutex
	registry *btree.Map[uint64, *localChain[T]]

	stats chainStats
}

// chainStats mirrors the accounting style of the slab pools: independent
// atomics, read without coordination for snapshots.
type chainStats struct {
	rents       atomic.Int64
	releases    atomic.Int64
	freshAllocs atomic.Int64
	localHits   atomic.Int64
	steals      atomic.Int64
	discards    atomic.Int64
}

func newChain[T any](classSize int) *chain[T] {
	return &chain[T]{
		classSize: classSize,
		registry:  btree.NewMap[uint64, *localChain[T]](8),
	}
}

// local returns the calling thread's stash, creating and registering it
// on first touch.
func (c *chain[T]) local(tid uint64) *localChain[T] {
	c.mu.RLock()
	lc, ok := c.registry.Get(tid)
	c.mu.RUnlock()
	if ok {
		return lc
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if lc, ok := c.registry.Get(tid); ok {
		return lc
	}
	lc = newLocalChain[T](&c.hint)
	c.registry.Set(tid, lc)
	return lc
}

// rent hands out one buffer of this chain's class size wrapped in a
// handle. fab != nil selects the fabricator-initialized mode: every slot
// of the returned buffer holds a fabricated value and the handle is live.
// fab == nil selects the uninitialized mode: reused buffers may hold
// stale values from a previous tenant unless zeroFill is set, and the
// caller must write a slot before reading it.
func (c *chain[T]) rent(fab func() T, zeroFill bool) *Slice[T] {
	c.stats.rents.Add(1)
	return &Slice[T]{raw: c.acquire(fab, zeroFill), chain: c}
}

func (c *chain[T]) acquire(fab func() T, zeroFill bool) *rawBuffer[T] {
	// Hint gate: zero means no stash anywhere holds a buffer, so skip
	// straight to allocation without touching any lock.
	if c.hint.Load() == 0 {
		return c.allocate(fab)
	}
	tid := concurrency.ThreadID()
	if rb := c.local(tid).pop(); rb != nil {
		c.stats.localHits.Add(1)
		return c.prepare(rb, fab, zeroFill)
	}
	if rb := c.steal(); rb != nil {
		c.stats.steals.Add(1)
		return c.prepare(rb, fab, zeroFill)
	}
	return c.allocate(fab)
}

func (c *chain[T]) allocate(fab func() T) *rawBuffer[T] {
	c.stats.freshAllocs.Add(1)
	if fab != nil {
		return newRawBufferWith(c.classSize, fab)
	}
	return newRawBuffer[T](c.classSize)
}

// prepare brings a reused buffer into the requested mode. Buffers enter
// a stash not live, so only the slot contents need fixing up.
func (c *chain[T]) prepare(rb *rawBuffer[T], fab func() T, zeroFill bool) *rawBuffer[T] {
	if fab != nil {
		rb.fill(fab)
	} else if zeroFill {
		rb.clearSlots()
	}
	return rb
}

// steal scans every registered stash in ascending thread-identity order
// under the registry lock and takes the first buffer found. Entries whose
// thread is gone are collected during the scan and purged after it,
// whether or not a buffer was found; their residual counts are subtracted
// from the hint and their buffers dropped. No fairness or recency
// ordering is guaranteed across threads.
func (c *chain[T]) steal() *rawBuffer[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	var dead []uint64
	var found *rawBuffer[T]
	c.registry.Scan(func(tid uint64, lc *localChain[T]) bool {
		if !concurrency.ThreadAlive(tid) {
			dead = append(dead, tid)
			return true
		}
		if rb := lc.pop(); rb != nil {
			found = rb
			return false
		}
		return true
	})

	for _, tid := range dead {
		lc, ok := c.registry.Delete(tid)
		if !ok {
			continue
		}
		if n := lc.drain(); n > 0 {
			c.hint.Add(-int64(n))
			c.stats.discards.Add(int64(n))
		}
	}
	return found
}

// release destructs live contents and stashes the buffer on the
// *releasing* thread's own stash, so buffers migrate to whichever thread
// last released them.
func (c *chain[T]) release(rb *rawBuffer[T]) {
	c.stats.releases.Add(1)
	if rb.live {
		rb.clearSlots()
		rb.live = false
	}
	c.local(concurrency.ThreadID()).push(rb)
}

func (c *chain[T]) snapshot() api.ChainStats {
	rents := c.stats.rents.Load()
	releases := c.stats.releases.Load()
	return api.ChainStats{
		Rents:       rents,
		Releases:    releases,
		FreshAllocs: c.stats.freshAllocs.Load(),
		LocalHits:   c.stats.localHits.Load(),
		Steals:      c.stats.steals.Load(),
		Discards:    c.stats.discards.Load(),
		Idle:        c.hint.Load(),
		InUse:       rents - releases,
	}
}
