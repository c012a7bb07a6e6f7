//go:build !windows
// +build !windows

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"keywatch/internal/shared"
)

type psSource struct {
	sample time.Duration
}

// NewSource returns the gopsutil-backed process source.
func NewSource(sample time.Duration) Source {
	return &psSource{sample: sample}
}

func (s *psSource) Snapshot(ctx context.Context) ([]shared.ProcessRef, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	refs := make([]shared.ProcessRef, 0, len(procs))
	for _, p := range procs {
		ref := shared.ProcessRef{Pid: int(p.Pid)}
		if name, err := p.NameWithContext(ctx); err == nil {
			ref.Name = name
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *psSource) Features(ctx context.Context, ref shared.ProcessRef) (shared.Features, error) {
	p, err := process.NewProcessWithContext(ctx, int32(ref.Pid))
	if err != nil {
		return shared.Features{}, fmt.Errorf("open process %d: %w", ref.Pid, err)
	}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return shared.Features{}, fmt.Errorf("name: %w", err)
	}
	threads, err := p.NumThreadsWithContext(ctx)
	if err != nil {
		return shared.Features{}, fmt.Errorf("threads: %w", err)
	}
	createdMS, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return shared.Features{}, fmt.Errorf("create time: %w", err)
	}
	pct, err := p.PercentWithContext(ctx, s.sample)
	if err != nil {
		return shared.Features{}, fmt.Errorf("cpu sample: %w", err)
	}
	if running, err := p.IsRunningWithContext(ctx); err != nil || !running {
		return shared.Features{}, ErrProcessExited
	}

	created := time.UnixMilli(createdMS)
	return shared.Features{
		Name:      name,
		Visible:   HasVisibleWindow(ref.Pid),
		Threads:   int(threads),
		Uptime:    uptimeSince(created, time.Now()),
		CPU:       pct / 100,
		StartedAt: created,
	}, nil
}

// KillProcess sends SIGTERM to the process with the given PID.
func KillProcess(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid pid: %d", pid)
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return fmt.Errorf("open process %d: %w", pid, ErrProcessExited)
		}
		return fmt.Errorf("open process %d: %w", pid, err)
	}

	if err := p.Terminate(); err != nil {
		return fmt.Errorf("terminate process %d: %w", pid, err)
	}
	return nil
}
