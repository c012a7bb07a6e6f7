//go:build !windows

package shared

// swapper, init and kthreadd are never scored or killed
const (
	IdlePID     = 0
	InitPID     = 1
	KthreaddPID = 2
)

func kernelPIDs() []int {
	return []int{IdlePID, InitPID, KthreaddPID}
}
