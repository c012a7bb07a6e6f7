// Package scanner runs one bounded-duration pass over the process table:
// snapshot, feature read, scoring, threshold filtering and ranking, with
// progress reported along the way.
package scanner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"keywatch/internal/classifier"
	"keywatch/internal/score"
	"keywatch/internal/shared"
	"keywatch/internal/telemetry"
)

type Scanner struct {
	cfg      shared.Config
	source   telemetry.Source
	log      hclog.Logger
	excluded map[int]struct{}

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

var _ shared.Scanner = (*Scanner)(nil)

// New builds a Scanner. The excluded-PID set is fixed here and never
// changes for the lifetime of the Scanner.
func New(cfg shared.Config, source telemetry.Source, log hclog.Logger) *Scanner {
	if cfg.ProgressStep <= 0 {
		cfg.ProgressStep = shared.DefaultProgressStep
	}
	return &Scanner{
		cfg:      cfg,
		source:   source,
		log:      shared.OrNull(log).Named("scanner"),
		excluded: cfg.ExcludedSet(),
		now:      time.Now,
		sleep:    telemetry.SleepContext,
	}
}

// IsExcluded reports whether pid is protected from scoring and termination.
func (s *Scanner) IsExcluded(pid int) bool {
	return shared.IsExcluded(s.excluded, pid)
}

// Scan never fails. Processes that cannot be read are skipped, and a failed
// snapshot behaves like an empty one. The call lasts at least
// MinScanDuration unless ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, mode shared.DetectionMode, onProgress shared.ProgressFunc) shared.ScanResult {
	start := s.now()
	prog := &progress{fn: onProgress}
	prog.report(0)

	res := shared.ScanResult{
		ID:        uuid.NewString(),
		Mode:      mode,
		ModeName:  mode.String(),
		StartedAt: start,
	}
	log := s.log.With("scan_id", res.ID, "mode", mode.String())
	log.Info("scan started", "threshold", s.cfg.Threshold(mode))

	refs, err := s.source.Snapshot(ctx)
	if err != nil {
		log.Warn("process snapshot failed, continuing with empty snapshot", "error", err)
		refs = nil
	}

	scored := make([]shared.Finding, 0, len(refs))
	total := len(refs)
	for i, ref := range refs {
		if ctx.Err() != nil {
			log.Warn("scan interrupted", "processed", i, "total", total)
			break
		}

		if !s.IsExcluded(ref.Pid) {
			if f, ok := s.inspect(ctx, log, ref, mode); ok {
				res.Scanned++
				scored = append(scored, f)
			} else {
				res.Skipped++
			}
		}

		prog.report(float64(i+1) / float64(total) * shared.EnumerationProgressShare)
	}

	res.Findings = classifier.Classify(scored, mode, s.cfg)

	s.holdMinimum(ctx, start, prog)
	prog.report(100)

	res.Duration = s.now().Sub(start)
	log.Info("scan finished",
		"findings", len(res.Findings),
		"scanned", res.Scanned,
		"skipped", res.Skipped,
		"duration", res.Duration,
	)
	return res
}

func (s *Scanner) inspect(ctx context.Context, log hclog.Logger, ref shared.ProcessRef, mode shared.DetectionMode) (shared.Finding, bool) {
	f, err := s.source.Features(ctx, ref)
	if err != nil {
		log.Debug("skipping unreadable process", "pid", ref.Pid, "name", ref.Name, "error", err)
		return shared.Finding{}, false
	}
	if f.Name == "" {
		f.Name = ref.Name
	}

	r := score.Score(f, mode, s.cfg.Weights)
	return shared.Finding{
		Name:     f.Name,
		Pid:      ref.Pid,
		Score:    r.Score,
		Reasons:  r.Reasons,
		Features: f,
	}, true
}

// holdMinimum waits out the rest of MinScanDuration, moving progress from
// the enumeration share to just under 100 across the remaining budget.
func (s *Scanner) holdMinimum(ctx context.Context, start time.Time, prog *progress) {
	deadline := start.Add(s.cfg.MinScanDuration)
	waitStart := s.now()
	budget := deadline.Sub(waitStart)
	if budget <= 0 {
		return
	}

	share := shared.EnumerationProgressShare
	for {
		now := s.now()
		if !now.Before(deadline) {
			return
		}
		frac := float64(now.Sub(waitStart)) / float64(budget)
		prog.report(share + frac*(100-share))

		step := s.cfg.ProgressStep
		if left := deadline.Sub(now); left < step {
			step = left
		}
		if err := s.sleep(ctx, step); err != nil {
			return
		}
	}
}

// progress keeps reported values inside [0,100] and never lets them go
// backwards.
type progress struct {
	fn   shared.ProgressFunc
	last float64
}

func (p *progress) report(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	if v < p.last {
		v = p.last
	}
	p.last = v
	if p.fn != nil {
		p.fn(v)
	}
}
