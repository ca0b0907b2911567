package benchmarks

import (
	"sort"
	"time"
)

// sink defeats dead-code elimination in benchmark bodies. Writes from
// parallel invocations race on purpose; the value is never read for
// correctness.
var sink int64

// cpuBoundWork returns an index function burning roughly iterations
// multiply-adds per call.
func cpuBoundWork(iterations int) func(int) {
	return func(idx int) {
		result := 0
		for i := 0; i < iterations; i++ {
			result += i * idx
		}
		sink = int64(result)
	}
}

// cpuBoundRangeWork is cpuBoundWork over a chunk, doing the per-index work
// inline so only the claim cost differs between Execute and ExecuteChunked.
func cpuBoundRangeWork(iterations int) func(int, int) {
	return func(lo, hi int) {
		result := 0
		for idx := lo; idx < hi; idx++ {
			for i := 0; i < iterations; i++ {
				result += i * idx
			}
		}
		sink = int64(result)
	}
}

// percentile returns the p-quantile of the given latencies.
func percentile(latencies []time.Duration, p float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
