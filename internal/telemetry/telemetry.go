// Package telemetry reads process snapshots and per-process signals from
// the operating system and carries out process termination.
package telemetry

import (
	"context"
	"errors"
	"time"

	"keywatch/internal/shared"
)

var ErrProcessExited = errors.New("process exited")

// Source enumerates processes and reads their features. Features returns an
// error whenever any attribute cannot be read; callers skip such processes.
type Source interface {
	Snapshot(ctx context.Context) ([]shared.ProcessRef, error)
	Features(ctx context.Context, ref shared.ProcessRef) (shared.Features, error)
}

// SleepContext blocks for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func uptimeSince(created, now time.Time) time.Duration {
	if created.IsZero() || created.After(now) {
		return 0
	}
	return now.Sub(created)
}
