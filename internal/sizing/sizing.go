// Package sizing resolves the worker count for the process-wide default pool.
//
// Resolution is deliberately decoupled from the ambient environment: callers
// inject the env lookup and the CPU probe, so tests can exercise every
// priority level without mutating process state.
package sizing

import (
	"strconv"
	"strings"
)

const (
	// EnvNumThreads is the explicit worker-count override for the default
	// pool. It wins over everything else when set to a positive integer.
	EnvNumThreads = "PARFOR_NUM_THREADS"

	// EnvMaxProcs is the generic Go parallelism override. It is consulted
	// only when EnvNumThreads is absent or invalid.
	EnvMaxProcs = "GOMAXPROCS"
)

// Resolve returns the worker count for the default pool.
//
// Priority order, first present-and-valid wins:
//  1. EnvNumThreads
//  2. EnvMaxProcs
//  3. numCPU()
//
// Values that are unset, unparsable, or non-positive fall through to the next
// level. The result is always >= 1.
func Resolve(getenv func(string) string, numCPU func() int) int {
	if n, ok := parseCount(getenv(EnvNumThreads)); ok {
		return n
	}
	if n, ok := parseCount(getenv(EnvMaxProcs)); ok {
		return n
	}
	return max(numCPU(), 1)
}

// parseCount interprets an environment value as a worker count.
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
