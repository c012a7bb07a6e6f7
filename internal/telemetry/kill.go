//go:build windows
// +build windows

package telemetry

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// KillProcess terminates the process with the given PID. The error text is
// shown to the user as-is.
func KillProcess(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid pid: %d", pid)
	}

	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE|windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		return fmt.Errorf("open process %d: %w", pid, describeWinErr(err))
	}
	defer windows.CloseHandle(h)

	if err := windows.TerminateProcess(h, 1); err != nil {
		return fmt.Errorf("terminate process %d: %w", pid, describeWinErr(err))
	}

	// give the kernel a moment so a follow-up scan does not see it again
	_, _ = windows.WaitForSingleObject(h, 500)
	return nil
}

func describeWinErr(err error) error {
	switch {
	case errors.Is(err, windows.ERROR_INVALID_PARAMETER):
		// OpenProcess reports a PID that no longer exists this way
		return ErrProcessExited
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return fmt.Errorf("access denied, elevated privileges required: %w", err)
	}
	return err
}
