// Package score turns the raw signals of one process into a bounded risk
// score and the list of reasons that contributed to it.
package score

import (
	"fmt"
	"math"

	"keywatch/internal/shared"
)

const (
	ReasonHidden      = "Hidden background process"
	ReasonLongRunning = "Long-running background process"
	ReasonCPU         = "Sustained background CPU activity"
	ReasonScripted    = "Scripted runtime running without UI"
)

func ReasonThreads(n int) string {
	return fmt.Sprintf("High thread count (%d)", n)
}

// Score is pure: the same features, mode and weights always give the same
// result. Reasons follow evaluation order (visibility, threads, uptime, CPU,
// mode rule). The sum is truncated and clamped to [0, MaxScore].
func Score(f shared.Features, mode shared.DetectionMode, w shared.Weights) shared.ScoreResult {
	scoreVal := 0.0
	reasons := []string{}

	if !f.Visible {
		scoreVal += nonNeg(w.HiddenPoints)
		reasons = append(reasons, ReasonHidden)
	}

	scoreVal += capped(float64(f.Threads)*w.ThreadPoints, w.ThreadCap)
	if f.Threads >= w.ThreadReasonMin {
		reasons = append(reasons, ReasonThreads(f.Threads))
	}

	if w.UptimeDivisor > 0 {
		scoreVal += capped(f.Uptime.Seconds()/w.UptimeDivisor, w.UptimeCap)
	}
	if f.Uptime > w.UptimeReasonAfter {
		reasons = append(reasons, ReasonLongRunning)
	}

	scoreVal += capped(f.CPU*w.CPUMultiplier, w.CPUCap)
	if f.CPU > w.CPUReasonAbove {
		reasons = append(reasons, ReasonCPU)
	}

	if mode == shared.ModeAggressive && w.IsScriptedRuntime(f.Name) {
		scoreVal += nonNeg(w.ScriptedRuntimePoints)
		reasons = append(reasons, ReasonScripted)
	}

	return shared.ScoreResult{
		Score:   clamp(scoreVal, w.MaxScore),
		Reasons: reasons,
	}
}

// Flagged reports whether a score meets the threshold for mode.
func Flagged(scoreVal int, mode shared.DetectionMode, cfg shared.Config) bool {
	return scoreVal >= cfg.Threshold(mode)
}

func capped(v, max float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > max {
		return nonNeg(max)
	}
	return v
}

func nonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clamp(v float64, max int) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if max < 0 {
		max = 0
	}
	if v >= float64(max) {
		return max
	}
	return int(v)
}
