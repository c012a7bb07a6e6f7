//go:build windows
// +build windows

package telemetry

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unsafe"

	"keywatch/internal/shared"

	"golang.org/x/sys/windows"
)

var (
	modKernel32         = windows.NewLazySystemDLL("kernel32.dll")
	procGetProcessTimes = modKernel32.NewProc("GetProcessTimes")
)

const stillActive = 259

type winSource struct {
	sample time.Duration
}

// NewSource returns the Toolhelp32-backed process source.
func NewSource(sample time.Duration) Source {
	return &winSource{sample: sample}
}

// Snapshot walks the Toolhelp32 process list and falls back to tasklist
// when the snapshot cannot be taken.
func (s *winSource) Snapshot(ctx context.Context) ([]shared.ProcessRef, error) {
	refs, err := toolhelpSnapshot()
	if err == nil {
		return refs, nil
	}
	fallback, ferr := tasklistSnapshot(ctx)
	if ferr != nil {
		return nil, fmt.Errorf("%w; %w", err, ferr)
	}
	return fallback, nil
}

func tasklistSnapshot(ctx context.Context) ([]shared.ProcessRef, error) {
	cmd := exec.CommandContext(ctx, "tasklist", "/FO", "CSV", "/NH")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("tasklist failed: %w", err)
	}
	return parseTasklist(bytes.NewReader(out))
}

func toolhelpSnapshot() ([]shared.ProcessRef, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("toolhelp snapshot: %w", err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Process32First(snap, &entry); err != nil {
		return nil, fmt.Errorf("first process: %w", err)
	}

	var refs []shared.ProcessRef
	for {
		refs = append(refs, shared.ProcessRef{
			Pid:     int(entry.ProcessID),
			Name:    strings.TrimSpace(windows.UTF16ToString(entry.ExeFile[:])),
			Threads: int(entry.Threads),
		})

		if err := windows.Process32Next(snap, &entry); err != nil {
			break
		}
	}

	return refs, nil
}

func (s *winSource) Features(ctx context.Context, ref shared.ProcessRef) (shared.Features, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(ref.Pid))
	if err != nil {
		return shared.Features{}, fmt.Errorf("open process %d: %w", ref.Pid, describeWinErr(err))
	}
	defer windows.CloseHandle(h)

	created, cpuBefore, err := processTimes(h)
	if err != nil {
		return shared.Features{}, err
	}

	start := time.Now()
	if err := SleepContext(ctx, s.sample); err != nil {
		return shared.Features{}, err
	}

	_, cpuAfter, err := processTimes(h)
	if err != nil {
		return shared.Features{}, err
	}
	now := time.Now()

	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return shared.Features{}, fmt.Errorf("exit code: %w", err)
	}
	if code != stillActive {
		return shared.Features{}, ErrProcessExited
	}

	cpu := 0.0
	if wall := now.Sub(start); wall > 0 && cpuAfter > cpuBefore {
		cpu = float64(cpuAfter-cpuBefore) / float64(wall)
	}

	return shared.Features{
		Name:      ref.Name,
		Visible:   HasVisibleWindow(ref.Pid),
		Threads:   ref.Threads,
		Uptime:    uptimeSince(created, now),
		CPU:       cpu,
		StartedAt: created,
	}, nil
}

/* --- helpers --- */

// processTimes returns the creation time and the total kernel+user CPU time.
func processTimes(h windows.Handle) (time.Time, time.Duration, error) {
	var c, e, k, u windows.Filetime
	if r, _, err := procGetProcessTimes.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&c)),
		uintptr(unsafe.Pointer(&e)),
		uintptr(unsafe.Pointer(&k)),
		uintptr(unsafe.Pointer(&u)),
	); r == 0 {
		return time.Time{}, 0, fmt.Errorf("GetProcessTimes: %w", err)
	}

	return time.Unix(0, c.Nanoseconds()), filetimeToDuration(k) + filetimeToDuration(u), nil
}

func filetimeToDuration(ft windows.Filetime) time.Duration {
	v := (uint64(ft.HighDateTime) << 32) | uint64(ft.LowDateTime)
	return time.Duration(v * 100)
}
