package classifier

import (
	"sort"

	"keywatch/internal/score"
	"keywatch/internal/shared"
)

// Classify keeps the scored processes that meet the threshold for mode and
// ranks them by score, highest first. Equal scores keep their input order.
func Classify(scored []shared.Finding, mode shared.DetectionMode, cfg shared.Config) []shared.Finding {
	interesting := make([]shared.Finding, 0, len(scored))
	for i := range scored {
		if score.Flagged(scored[i].Score, mode, cfg) {
			interesting = append(interesting, scored[i])
		}
	}

	sort.SliceStable(interesting, func(i, j int) bool {
		return interesting[i].Score > interesting[j].Score
	})

	return interesting
}
