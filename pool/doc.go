// Package pool provides a minimal-overhead, fixed-size worker pool for
// data-parallel loops.
//
// The primary type is Pool, a set of long-lived workers that invoke a single
// function over the index range [0, n) in parallel. The pool targets the
// coarse-grained case: a handful of expensive calls per second, each fanning
// one function out across every core. There is deliberately no task queue and
// nothing allocated per task; dispatch is one atomic claim per index and one
// condition-variable broadcast per call.
//
// # Basic Usage
//
//	p, err := pool.New(4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	sums := make([]int, len(rows))
//	err = p.Execute(len(rows), func(i int) {
//	    sums[i] = expensiveSum(rows[i])
//	})
//
// Each index runs exactly once. Indices are claimed dynamically from a shared
// atomic cursor, so uneven per-index cost balances across workers without any
// static partitioning. Execute blocks until every index has run; all writes
// made by the function are visible to the caller when it returns.
//
// # The Default Pool
//
// The free functions run on a lazily created package-level pool sized from
// the environment:
//
//	err := pool.Execute(len(items), func(i int) {
//	    process(items[i])
//	})
//
// The size is taken from PARFOR_NUM_THREADS if set to a positive integer,
// then from the GOMAXPROCS environment variable, then from the hardware CPU
// count. InitDefault sizes it explicitly before first use; CloseDefault tears
// it down.
//
// # Chunked Claiming
//
// When single iterations are too cheap to pay an atomic claim each, claim
// ranges instead:
//
//	err := p.ExecuteChunked(len(v), 1024, func(lo, hi int) {
//	    for i := lo; i < hi; i++ {
//	        v[i] *= 2
//	    }
//	})
//
// # Failure Semantics
//
// A panic inside the function does not kill the call: the panicking
// invocation is recovered, every other index still runs, and Execute returns
// the first panic as a *PanicError carrying the index, the panic value, and
// a stack trace. The pool remains usable.
//
//	var pe *pool.PanicError
//	if err := p.Execute(n, fn); errors.As(err, &pe) {
//	    log.Printf("index %d panicked: %v", pe.Index, pe.Value)
//	}
//
// A worker goroutine that dies outright (runtime.Goexit escaping the
// function) is not recoverable: the in-flight call still returns, but the
// pool is poisoned and every call from then on reports ErrPoolPoisoned.
//
// # Design Trade-offs
//
// One call in flight per pool. Calls from multiple goroutines serialize on an
// internal lock; a nested Execute on the same pool deadlocks. This is what
// buys the no-queue dispatch path, and it fits the intended workload, where
// parallel sections are already serialized by the surrounding algorithm.
// Code that needs many small independent tasks in flight at once wants a
// task-queue pool, not this one.
//
// # Limitations
//
//   - No cancellation: a call runs to completion once dispatched.
//   - No resizing: worker count is fixed at construction.
//   - No result collection: the function communicates through the data it
//     closes over.
//
// The package is designed to be small and idiomatic for Go 1.22+
// (range-over-int).
package pool
