package shared

import (
	"os"
	"time"
)

const (
	DefaultBasicThreshold      = 90
	DefaultAggressiveThreshold = 50
	DefaultMinScanDuration     = 5 * time.Second
	DefaultProgressStep        = 50 * time.Millisecond
	DefaultCPUSampleWindow     = 100 * time.Millisecond
	DefaultConfirmTimeout      = 10 * time.Second

	// share of the progress range consumed by the enumeration phase
	EnumerationProgressShare = 70.0
)

var selfPID = os.Getpid()

// SelfPID is the PID of this process, captured once at start-up.
func SelfPID() int {
	return selfPID
}

// DefaultScriptedRuntimes returns a fresh copy of the interpreter names that
// earn the aggressive-mode bonus.
func DefaultScriptedRuntimes() []string {
	return []string{
		"python.exe",
		"pythonw.exe",
		"python",
		"python3",
	}
}

// DefaultExcludedPIDs returns the platform's kernel PIDs plus our own.
func DefaultExcludedPIDs() []int {
	return append(kernelPIDs(), SelfPID())
}
