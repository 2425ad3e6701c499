//go:build windows

// File: internal/concurrency/ident_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows thread identity and liveness via kernel32 thread handles.

package concurrency

import (
	"golang.org/x/sys/windows"
)

const threadQueryLimitedInformation = 0x0800

func platformThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}

func platformThreadAlive(id uint64) bool {
	h, err := windows.OpenThread(threadQueryLimitedInformation, false, uint32(id))
	if err != nil {
		return false
	}
	windows.CloseHandle(h)
	return true
}
