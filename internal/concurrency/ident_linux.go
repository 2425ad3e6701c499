//go:build linux

// File: internal/concurrency/ident_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux thread identity via gettid(2) and liveness via /proc/self/task.

package concurrency

import (
	"strconv"

	"golang.org/x/sys/unix"
)

func platformThreadID() uint64 {
	return uint64(unix.Gettid())
}

// platformThreadAlive probes /proc/self/task/<tid>, which exists exactly
// as long as the thread does. The probe runs only on the cross-thread
// steal path, never on the uncontended fast path.
func platformThreadAlive(id uint64) bool {
	return unix.Access("/proc/self/task/"+strconv.FormatUint(id, 10), unix.F_OK) == nil
}
