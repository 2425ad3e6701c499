// File: api/stats.go
// Author: momentics <momentics@gmail.com>
//
// Accounting snapshots for pooled buffer allocation and reuse.

package api

// ChainStats aggregates counters for one size class.
//
// Idle is a snapshot of the class-wide hint counter. It is approximate
// under concurrent load and only ever gates the reuse fast path; it is
// exported for observability, not as an authoritative count.
type ChainStats struct {
	Rents       int64 // buffers handed out, any path
	Releases    int64 // buffers returned through handles
	FreshAllocs int64 // buffers newly allocated
	LocalHits   int64 // reuse from the calling thread's own stash
	Steals      int64 // reuse from another thread's stash
	Discards    int64 // buffers dropped while purging dead threads
	Idle        int64 // stashed buffers ready for reuse (hint snapshot)
	InUse       int64 // Rents - Releases
}

// PoolStats aggregates per-class stats plus pool-wide totals.
type PoolStats struct {
	Classes map[int]ChainStats // key: class size in elements
	Totals  ChainStats
}

// StatsSource exposes pool accounting without binding to an element type.
// Implemented by every ArrayPool regardless of its type parameter, so
// observability code can treat pools uniformly.
type StatsSource interface {
	Stats() PoolStats
}
