//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
//
// workerID values beyond the core count wrap around, so any worker id maps to
// a valid core.
func pinToCore(workerID int) error {
	numCPU := runtime.NumCPU()
	core := workerID
	if core < 0 || core >= numCPU {
		core = ((core % numCPU) + numCPU) % numCPU
	}

	handle, _, _ := getCurrentThread.Call()

	// Bit N of the affinity mask selects CPU N.
	mask := uintptr(1) << uint(core)

	prev, _, err := setThreadAffinityMask.Call(handle, mask)
	if prev == 0 {
		return err
	}
	return nil
}
