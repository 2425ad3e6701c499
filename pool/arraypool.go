// File: pool/arraypool.go
// Author: momentics <momentics@gmail.com>
//
// Size-class router: maps capacity requests onto a ladder of
// power-of-two buffer chains.

package pool

import (
	"github.com/tidwall/btree"

	"github.com/momentics/hioload-pool/api"
)

// ArrayPool routes every capacity request to the smallest size class
// that can hold it. Classes are powers of two from 8 up to
// 2^(maxPower-1), each owned by one chain that lives for the pool's
// lifetime, plus one degenerate chain backing zero-capacity handles.
type ArrayPool[T any] struct {
	emptyChain *chain[T]
	classes    *btree.Map[int, *chain[T]]
}

// New builds a pool with classes 8, 16, ..., 2^(maxPower-1).
// maxPower below 4 leaves no room for a single class and fails with
// api.ErrMaxPowerTooSmall.
func New[T any](maxPower uint8) (*ArrayPool[T], error) {
	if maxPower < 4 {
		return nil, api.NewError(api.ErrCodeMaxPowerTooSmall, "array pool: max power too small").
			WithCause(api.ErrMaxPowerTooSmall).
			WithContext("max_power", int(maxPower))
	}
	classes := btree.NewMap[int, *chain[T]](8)
	for p := uint8(3); p < maxPower; p++ {
		size := 1 << p
		classes.Set(size, newChain[T](size))
	}
	return &ArrayPool[T]{
		emptyChain: newChain[T](0),
		classes:    classes,
	}, nil
}

// DefaultMaxPower sizes NewDefault pools: classes up to 32768 elements.
const DefaultMaxPower = 16

// NewDefault builds a pool with the default class ladder. It cannot fail.
func NewDefault[T any]() *ArrayPool[T] {
	p, err := New[T](DefaultMaxPower)
	if err != nil {
		panic(err)
	}
	return p
}

// lookup returns the chain of the smallest class >= minCapacity.
func (p *ArrayPool[T]) lookup(minCapacity int) (*chain[T], bool) {
	var found *chain[T]
	p.classes.Ascend(minCapacity, func(_ int, c *chain[T]) bool {
		found = c
		return false
	})
	return found, found != nil
}

func (p *ArrayPool[T]) classTooSmall(minCapacity int) error {
	return api.NewError(api.ErrCodeClassTooSmall, "array pool: requested capacity exceeds largest class").
		WithCause(api.ErrClassTooSmall).
		WithContext("min_capacity", minCapacity).
		WithContext("max_class", p.MaxSize())
}

// Rent returns a live handle of at least minCapacity elements, every
// slot holding the zero value of T.
func (p *ArrayPool[T]) Rent(minCapacity int) (*Slice[T], error) {
	return p.RentWith(minCapacity, zeroFab[T])
}

// RentWith returns a live handle of at least minCapacity elements, every
// slot written by the fabricator.
func (p *ArrayPool[T]) RentWith(minCapacity int, fab func() T) (*Slice[T], error) {
	c, ok := p.lookup(minCapacity)
	if !ok {
		return nil, p.classTooSmall(minCapacity)
	}
	return c.rent(fab, false), nil
}

// RentUninitialized returns a not-live handle of at least minCapacity
// elements. Caller contract: no slot may be read before it is written; a
// reused buffer holds stale values from its previous tenant unless
// zeroFill is set. The caller decides afterward whether to MarkLive.
func (p *ArrayPool[T]) RentUninitialized(minCapacity int, zeroFill bool) (*Slice[T], error) {
	c, ok := p.lookup(minCapacity)
	if !ok {
		return nil, p.classTooSmall(minCapacity)
	}
	return c.rent(nil, zeroFill), nil
}

// RentMinimum rents a live zero-valued handle at the smallest class.
func (p *ArrayPool[T]) RentMinimum() (*Slice[T], error) {
	return p.RentMinimumWith(zeroFab[T])
}

// RentMinimumWith rents a fabricator-filled handle at the smallest class.
func (p *ArrayPool[T]) RentMinimumWith(fab func() T) (*Slice[T], error) {
	_, c, ok := p.classes.Min()
	if !ok {
		return nil, p.classTooSmall(0)
	}
	return c.rent(fab, false), nil
}

// RentMinimumUninitialized rents a not-live handle at the smallest class.
func (p *ArrayPool[T]) RentMinimumUninitialized(zeroFill bool) (*Slice[T], error) {
	_, c, ok := p.classes.Min()
	if !ok {
		return nil, p.classTooSmall(0)
	}
	return c.rent(nil, zeroFill), nil
}

// RentEmpty returns a handle over the zero-capacity sentinel: always
// live, no backing allocation, release is a no-op.
func (p *ArrayPool[T]) RentEmpty() *Slice[T] {
	return &Slice[T]{raw: emptyLiveRawBuffer[T](), chain: p.emptyChain}
}

// Expand rents a not-live handle of twice the old capacity, moves every
// element across by pairwise swap (supporting non-copyable usage and
// never clearing moved-out values twice), marks the old handle not-live
// and releases it. On failure the old handle is untouched and remains
// owned by the caller.
func (p *ArrayPool[T]) Expand(s *Slice[T]) (*Slice[T], error) {
	old := s.mustRaw()
	ns, err := p.RentUninitialized(old.len()*2, false)
	if err != nil {
		return nil, err
	}
	od, nd := old.data, ns.raw.data
	for i := range od {
		od[i], nd[i] = nd[i], od[i]
	}
	old.live = false
	s.Release()
	return ns, nil
}

// Shrink moves the first half of the elements into a handle of half the
// capacity. When no smaller class fits it returns the input unchanged;
// Shrink never fails.
func (p *ArrayPool[T]) Shrink(s *Slice[T]) *Slice[T] {
	old := s.mustRaw()
	newSize := old.len() / 2
	c, ok := p.lookup(newSize)
	if !ok || c.classSize >= old.len() {
		return s
	}
	ns := c.rent(nil, false)
	od, nd := old.data, ns.raw.data
	for i := 0; i < newSize; i++ {
		od[i], nd[i] = nd[i], od[i]
	}
	old.live = false
	s.Release()
	return ns
}

// MinSize returns the smallest configured class size.
func (p *ArrayPool[T]) MinSize() int {
	size, _, _ := p.classes.Min()
	return size
}

// MaxSize returns the largest configured class size.
func (p *ArrayPool[T]) MaxSize() int {
	size, _, _ := p.classes.Max()
	return size
}

// Stats snapshots per-class accounting plus pool-wide totals.
func (p *ArrayPool[T]) Stats() api.PoolStats {
	st := api.PoolStats{Classes: make(map[int]api.ChainStats, p.classes.Len())}
	p.classes.Scan(func(size int, c *chain[T]) bool {
		cs := c.snapshot()
		st.Classes[size] = cs
		st.Totals.Rents += cs.Rents
		st.Totals.Releases += cs.Releases
		st.Totals.FreshAllocs += cs.FreshAllocs
		st.Totals.LocalHits += cs.LocalHits
		st.Totals.Steals += cs.Steals
		st.Totals.Discards += cs.Discards
		st.Totals.Idle += cs.Idle
		st.Totals.InUse += cs.InUse
		return true
	})
	return st
}

var _ api.StatsSource = (*ArrayPool[int])(nil)

func zeroFab[T any]() T {
	var zero T
	return zero
}
