//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
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

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)

	return unix.SchedSetaffinity(0, &mask) // 0 = current thread
}
