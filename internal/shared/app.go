package shared

import "context"

// ProgressFunc receives scan progress in [0,100]. Values never decrease
// within one scan and the last call is always 100.
type ProgressFunc func(pct float64)

// Scanner runs one complete scan. Implementations absorb per-process
// failures; a scan always produces a result.
type Scanner interface {
	Scan(ctx context.Context, mode DetectionMode, onProgress ProgressFunc) ScanResult
}
