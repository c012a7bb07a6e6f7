package shared

import (
	"strings"
	"time"
)

// Weights are the per-heuristic contributions and caps used by the scorer.
type Weights struct {
	HiddenPoints float64 `yaml:"hidden_points"`

	ThreadPoints    float64 `yaml:"thread_points"`
	ThreadCap       float64 `yaml:"thread_cap"`
	ThreadReasonMin int     `yaml:"thread_reason_min"`

	UptimeDivisor     float64       `yaml:"uptime_divisor"` // seconds per point
	UptimeCap         float64       `yaml:"uptime_cap"`
	UptimeReasonAfter time.Duration `yaml:"uptime_reason_after"`

	CPUMultiplier  float64 `yaml:"cpu_multiplier"`
	CPUCap         float64 `yaml:"cpu_cap"`
	CPUReasonAbove float64 `yaml:"cpu_reason_above"`

	ScriptedRuntimePoints float64  `yaml:"scripted_runtime_points"`
	ScriptedRuntimes      []string `yaml:"scripted_runtimes"`

	MaxScore int `yaml:"max_score"`
}

type Config struct {
	BasicThreshold      int `yaml:"basic_threshold"`
	AggressiveThreshold int `yaml:"aggressive_threshold"`

	MinScanDuration time.Duration `yaml:"min_scan_duration"`
	ProgressStep    time.Duration `yaml:"progress_step"`
	CPUSampleWindow time.Duration `yaml:"cpu_sample_window"`
	ConfirmTimeout  time.Duration `yaml:"confirm_timeout"`

	ExcludedPIDs []int   `yaml:"excluded_pids"`
	Weights      Weights `yaml:"weights"`
}

func DefaultWeights() Weights {
	return Weights{
		HiddenPoints: 20,

		ThreadPoints:    5,
		ThreadCap:       20,
		ThreadReasonMin: 4,

		UptimeDivisor:     5,
		UptimeCap:         25,
		UptimeReasonAfter: 20 * time.Second,

		CPUMultiplier:  30,
		CPUCap:         15,
		CPUReasonAbove: 0.3,

		ScriptedRuntimePoints: 25,
		ScriptedRuntimes:      DefaultScriptedRuntimes(),

		MaxScore: 100,
	}
}

func DefaultConfig() Config {
	return Config{
		BasicThreshold:      DefaultBasicThreshold,
		AggressiveThreshold: DefaultAggressiveThreshold,
		MinScanDuration:     DefaultMinScanDuration,
		ProgressStep:        DefaultProgressStep,
		CPUSampleWindow:     DefaultCPUSampleWindow,
		ConfirmTimeout:      DefaultConfirmTimeout,
		ExcludedPIDs:        DefaultExcludedPIDs(),
		Weights:             DefaultWeights(),
	}
}

// Threshold returns the inclusive minimum score for a finding in mode m.
func (c Config) Threshold(m DetectionMode) int {
	if m == ModeAggressive {
		return c.AggressiveThreshold
	}
	return c.BasicThreshold
}

// ExcludedSet builds the lookup set for ExcludedPIDs.
func (c Config) ExcludedSet() map[int]struct{} {
	set := make(map[int]struct{}, len(c.ExcludedPIDs))
	for _, pid := range c.ExcludedPIDs {
		set[pid] = struct{}{}
	}
	return set
}

// IsScriptedRuntime reports whether name is one of the configured
// interpreter executables, ignoring case.
func (w Weights) IsScriptedRuntime(name string) bool {
	name = strings.TrimSpace(name)
	for _, rt := range w.ScriptedRuntimes {
		if strings.EqualFold(rt, name) {
			return true
		}
	}
	return false
}
