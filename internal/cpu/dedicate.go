// Package cpu gives pool workers their own OS threads and, where the platform
// supports it, pins each thread to a core.
package cpu

import "runtime"

// Dedicate locks the calling goroutine to an OS thread for the life of the
// worker and optionally pins that thread to a core chosen from the worker id.
// Returns a release function that should be deferred by the worker.
func Dedicate(workerID int, pin bool) func() {
	runtime.LockOSThread()
	if pin {
		_ = pinToCore(workerID)
	}

	return runtime.UnlockOSThread
}
