// File: pool/chain_test.go
// Author: momentics <momentics@gmail.com>
//
// Concurrency tests for the borrow/return engine: cross-thread stealing,
// dead-thread reclamation and allocation high-water behavior.

package pool_test

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/momentics/hioload-pool/internal/concurrency"
	"github.com/momentics/hioload-pool/pool"
)

// TestCrossThreadReuse: a buffer released by thread A becomes obtainable
// by thread B without a fresh allocation.
func TestCrossThreadReuse(t *testing.T) {
	p, err := pool.New[int](6)
	if err != nil {
		t.Fatal(err)
	}

	released := make(chan struct{})
	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() { // thread A: rent, release, then stay alive until B is done
		defer wg.Done()
		runtime.LockOSThread()
		s, err := p.Rent(8)
		if err != nil {
			t.Error(err)
			close(released)
			return
		}
		s.Release()
		close(released)
		<-stop
	}()

	wg.Add(1)
	go func() { // thread B: steal A's buffer
		defer wg.Done()
		defer close(stop)
		runtime.LockOSThread()
		<-released
		s, err := p.Rent(8)
		if err != nil {
			t.Error(err)
			return
		}
		s.Release()
	}()
	wg.Wait()

	cs := p.Stats().Classes[8]
	if cs.FreshAllocs != 1 {
		t.Errorf("FreshAllocs = %d, want 1 (B must reuse A's buffer)", cs.FreshAllocs)
	}
	if cs.LocalHits+cs.Steals != 1 {
		t.Errorf("reuses = %d, want 1", cs.LocalHits+cs.Steals)
	}
}

// TestConcurrentHighWater: two threads rent-then-release 1000 times each;
// the number of buffers ever allocated never exceeds the high-water mark
// of concurrently outstanding handles.
func TestConcurrentHighWater(t *testing.T) {
	p, err := pool.New[byte](6)
	if err != nil {
		t.Fatal(err)
	}

	const workers = 2
	const rounds = 1000
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runtime.LockOSThread()
			for i := 0; i < rounds; i++ {
				s, err := p.RentUninitialized(16, false)
				if err != nil {
					t.Error(err)
					return
				}
				s.Data()[0] = byte(i)
				s.Release()
			}
		}()
	}
	wg.Wait()

	cs := p.Stats().Classes[16]
	if cs.FreshAllocs > workers {
		t.Errorf("FreshAllocs = %d, exceeds high-water mark %d", cs.FreshAllocs, workers)
	}
	if cs.InUse != 0 {
		t.Errorf("InUse = %d, want 0 after all releases", cs.InUse)
	}
	if cs.Idle > cs.FreshAllocs {
		t.Errorf("Idle = %d exceeds allocated %d", cs.Idle, cs.FreshAllocs)
	}
	if cs.Rents != workers*rounds {
		t.Errorf("Rents = %d, want %d", cs.Rents, workers*rounds)
	}
}

// TestDeadThreadPurge: buffers stashed by a terminated thread are
// discarded lazily during a later steal scan instead of lingering.
func TestDeadThreadPurge(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs a thread liveness probe")
	}

	p, err := pool.New[int](6)
	if err != nil {
		t.Fatal(err)
	}

	tidCh := make(chan uint64, 1)
	go func() {
		// Locked goroutine that exits without unlocking: the runtime
		// terminates its OS thread.
		runtime.LockOSThread()
		s, err := p.Rent(8)
		if err != nil {
			t.Error(err)
		} else {
			s.Release()
		}
		tidCh <- concurrency.ThreadID()
	}()
	tid := <-tidCh

	deadline := time.Now().Add(5 * time.Second)
	for concurrency.ThreadAlive(tid) {
		if time.Now().After(deadline) {
			t.Skip("stash owner thread did not terminate in time")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// The hint is non-zero, our own stash is empty, so this rent scans,
	// purges the dead entry and falls back to a fresh allocation.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	s, err := p.Rent(8)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()

	cs := p.Stats().Classes[8]
	if cs.Discards != 1 {
		t.Errorf("Discards = %d, want 1", cs.Discards)
	}
	if cs.FreshAllocs != 2 {
		t.Errorf("FreshAllocs = %d, want 2 (dead stash must not serve)", cs.FreshAllocs)
	}
	if cs.Idle != 0 {
		t.Errorf("Idle = %d, want 0 after purge", cs.Idle)
	}
}

// TestManyThreadsSharedClass hammers one class from many threads to
// exercise the registry under contention.
func TestManyThreadsSharedClass(t *testing.T) {
	p, err := pool.New[int](7)
	if err != nil {
		t.Fatal(err)
	}
	const workers = 8
	const rounds = 500
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			runtime.LockOSThread()
			for i := 0; i < rounds; i++ {
				s, err := p.Rent(seed%56 + 1) // spread across classes
				if err != nil {
					t.Error(err)
					return
				}
				d := s.Data()
				d[0] = seed
				if d[0] != seed {
					t.Error("lost write")
				}
				s.Release()
			}
		}(w * 7)
	}
	wg.Wait()
	if got := p.Stats().Totals.InUse; got != 0 {
		t.Errorf("InUse = %d, want 0", got)
	}
}
