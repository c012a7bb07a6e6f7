package shared

import (
	"time"
)

type ScoreResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Finding is a scored process that met the active threshold.
type Finding struct {
	Name    string   `json:"name"`
	Pid     int      `json:"pid"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`

	// observed signals, kept for the inspector and JSON output
	Features Features `json:"features"`
}

// ScanResult is the outcome of one scan. Findings are ordered by score,
// highest first, with enumeration order kept for equal scores.
type ScanResult struct {
	ID        string        `json:"id"`
	Mode      DetectionMode `json:"-"`
	ModeName  string        `json:"mode"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Scanned   int           `json:"scanned"`
	Skipped   int           `json:"skipped"`
	Findings  []Finding     `json:"findings"`
}
