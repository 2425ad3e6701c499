// Package concurrency provides OS-thread identity primitives for the
// thread-striped buffer stashes in hioload-pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-specific identity and liveness probes live in ident_linux.go,
// ident_windows.go and ident_stub.go, selected via build tags.
package concurrency
