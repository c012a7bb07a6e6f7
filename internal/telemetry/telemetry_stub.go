//go:build !windows
// +build !windows

package telemetry

// HasVisibleWindow has no windowing backend outside Windows and reports
// false, which scores the process as hidden.
func HasVisibleWindow(pid int) bool {
	return false
}
