//go:build windows

package shared

// well-known Windows PIDs that are never scored
const (
	IdlePID   = 0
	SystemPID = 4
)

func kernelPIDs() []int {
	return []int{IdlePID, SystemPID}
}
