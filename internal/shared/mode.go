package shared

import (
	"fmt"
	"strings"
)

type DetectionMode int

const (
	ModeBasic DetectionMode = iota
	ModeAggressive
)

func (m DetectionMode) String() string {
	switch m {
	case ModeBasic:
		return "basic"
	case ModeAggressive:
		return "aggressive"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Description is the short hint shown next to the scan controls.
func (m DetectionMode) Description() string {
	switch m {
	case ModeAggressive:
		return "Heuristic detection. May flag legitimate processes. Higher false positives."
	default:
		return "Honest detection. Low false positives. May miss advanced threats."
	}
}

func ParseMode(s string) (DetectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "b":
		return ModeBasic, nil
	case "aggressive", "a":
		return ModeAggressive, nil
	}
	return ModeBasic, fmt.Errorf("unknown detection mode %q (want basic or aggressive)", s)
}
