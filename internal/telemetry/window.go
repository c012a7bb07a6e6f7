//go:build windows
// +build windows

package telemetry

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowQuery struct {
	pid   uint32
	found bool
}

var (
	// windows.NewCallback slots are never released, so the callback is
	// created once and the query travels through lParam.
	enumWindowsCallback = windows.NewCallback(func(hwnd windows.HWND, lparam uintptr) uintptr {
		q := (*windowQuery)(unsafe.Pointer(lparam))
		if !windows.IsWindowVisible(hwnd) {
			return 1
		}
		var owner uint32
		if _, err := windows.GetWindowThreadProcessId(hwnd, &owner); err != nil {
			return 1
		}
		if owner == q.pid {
			q.found = true
			return 0
		}
		return 1
	})
	enumWindowsMu sync.Mutex
)

// HasVisibleWindow reports whether pid owns a visible top-level window.
// Enumeration failures count as "no window".
func HasVisibleWindow(pid int) bool {
	if pid <= 0 {
		return false
	}

	enumWindowsMu.Lock()
	defer enumWindowsMu.Unlock()

	q := &windowQuery{pid: uint32(pid)}
	// EnumWindows reports an error when the callback stops early; the
	// result is carried by q either way.
	_ = windows.EnumWindows(enumWindowsCallback, unsafe.Pointer(q))
	return q.found
}
