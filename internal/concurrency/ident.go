// File: internal/concurrency/ident.go
// Author: momentics <momentics@gmail.com>
//
// Portable entry points for OS-thread identity and liveness.

package concurrency

// ThreadID returns an identity for the OS thread executing the caller.
//
// Goroutines migrate between threads unless pinned with
// runtime.LockOSThread, so two consecutive calls from the same goroutine
// may return different identities. Callers must treat the identity as an
// affinity hint, never as a correctness token: anything filed under one
// identity stays reachable from every other thread.
func ThreadID() uint64 {
	return platformThreadID()
}

// ThreadAlive reports whether the OS thread with the given identity still
// exists inside this process. On platforms without a liveness probe every
// identity is reported alive, which disables dead-thread reclamation but
// never affects correctness.
func ThreadAlive(id uint64) bool {
	return platformThreadAlive(id)
}
