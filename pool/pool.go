package pool

import (
	"sync"
	"sync/atomic"

	"github.com/utkarsh5026/parfor/internal/claim"
)

// Pool is a fixed-size worker pool specialized for one pattern: invoking a
// single function over a contiguous index range [0, n) in parallel, for a
// small number of expensive calls.
//
// Exactly one parallel call is in flight on a pool at a time; concurrent
// callers block until the previous call has fully returned. In exchange, the
// per-index cost is a single atomic claim, workers are woken by a blocking
// broadcast rather than a spin, and the callable is borrowed for the call's
// duration without copies or queue allocations.
//
// The zero value is not usable; construct with New.
type Pool struct {
	size      int
	osThreads bool
	pinCPU    bool

	// mu guards the generation counter, the task slot, and the closed flag.
	// cond is the workers' parking spot: they wait on it until the
	// generation moves past the one they last served, or until shutdown.
	mu     sync.Mutex
	cond   *sync.Cond
	gen    uint64
	closed bool

	// Task slot. A call binds either fnItem (Execute) or fnRange
	// (ExecuteChunked) together with limit and chunk; the binding is valid
	// only between publication and retirement of that one call. Workers
	// snapshot the slot under mu before draining, so nothing here is read
	// while a call is not in flight.
	fnItem  func(int)
	fnRange func(lo, hi int)
	limit   int64
	chunk   int64

	// cursor distributes indices; barrier releases the caller once every
	// worker has finished claiming. Both reset per call.
	cursor  claim.Cursor
	barrier sync.WaitGroup

	// failure holds the first recovered invocation panic of the current
	// call; poisoned is set forever once a worker goroutine dies.
	failure  atomic.Pointer[PanicError]
	poisoned atomic.Bool

	// callMu serializes execute calls; it is held for the full duration of
	// each call.
	callMu sync.Mutex

	// join tracks worker goroutine lifetimes for Close.
	join sync.WaitGroup

	execs  atomic.Uint64
	iters  atomic.Uint64
	wakes  atomic.Uint64
	panics atomic.Uint64
}

// Stats is a snapshot of a pool's counters, taken with Stats.
type Stats struct {
	// Executes counts calls that dispatched work (n > 0).
	Executes uint64
	// Iterations counts indices invoked by calls that ran to completion.
	Iterations uint64
	// Wakeups counts workers picking up a dispatched call; every worker
	// contributes exactly one per dispatched call. A call with n <= 0 never
	// wakes anyone.
	Wakeups uint64
	// Panics counts invocation panics recovered across all calls.
	Panics uint64
}

// New creates a pool of threads workers, parked and ready for Execute.
//
// Workers are spawned immediately and consume no CPU until a call wakes them.
// A non-positive count returns ErrInvalidWorkerCount; a pool that cannot make
// progress is never constructed.
//
// Example:
//
//	p, err := pool.New(4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	counters := make([]int, 10)
//	_ = p.Execute(10, func(i int) {
//	    counters[i]++
//	})
func New(threads int, opts ...Option) (*Pool, error) {
	if threads <= 0 {
		return nil, ErrInvalidWorkerCount
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Pool{
		size:      threads,
		osThreads: cfg.osThreads,
		pinCPU:    cfg.pinCPU,
	}
	p.cond = sync.NewCond(&p.mu)

	p.join.Add(threads)
	for i := range threads {
		w := &worker{pool: p, id: i}
		go w.loop()
	}

	debugLog("pool created: workers=%d osThreads=%v pinCPU=%v", threads, cfg.osThreads, cfg.pinCPU)
	return p, nil
}

// Execute invokes fn(i) for every i in [0, n), distributing indices across
// the pool's workers, and blocks until all of them have run. Indices are
// claimed dynamically, so uneven per-index cost balances itself; no ordering
// between indices is guaranteed, only that each runs exactly once and that
// every write fn made is visible to the caller when Execute returns.
//
// n <= 0 is a no-op that wakes no worker. Calls on the same pool from
// multiple goroutines serialize. Calling Execute from inside fn on the same
// pool deadlocks, since the call lock is held for the whole call; nested
// parallelism needs a second pool.
//
// If one or more invocations panic, the remaining indices still run, and the
// first panic is returned as a *PanicError once every worker has finished.
// The pool stays usable afterwards. If a worker goroutine itself dies
// (runtime.Goexit escaping fn), Execute returns ErrPoolPoisoned and so does
// every call after it.
func (p *Pool) Execute(n int, fn func(int)) error {
	if fn == nil {
		return ErrNilFunc
	}

	p.callMu.Lock()
	defer p.callMu.Unlock()

	return p.run(int64(n), fn, nil, 1)
}

// ExecuteChunked is Execute with coarser claiming: workers claim runs of
// chunk consecutive indices and hand fn the half-open range [lo, hi). One
// atomic operation per chunk instead of per index makes this the right entry
// point when single iterations are too cheap to pay a claim each.
//
// A chunk below 1 is treated as 1. Everything else matches Execute, down to
// the failure semantics.
func (p *Pool) ExecuteChunked(n, chunk int, fn func(lo, hi int)) error {
	if fn == nil {
		return ErrNilFunc
	}
	if chunk < 1 {
		chunk = 1
	}

	p.callMu.Lock()
	defer p.callMu.Unlock()

	return p.run(int64(n), nil, fn, int64(chunk))
}

// run drives one parallel call end to end: reset the per-call state, publish
// the task slot, bump the generation, broadcast, wait out the barrier, retire
// the slot. callMu must be held.
func (p *Pool) run(n int64, fnItem func(int), fnRange func(int, int), chunk int64) error {
	if p.poisoned.Load() {
		return ErrPoolPoisoned
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	if n <= 0 {
		p.mu.Unlock()
		return nil
	}

	p.cursor.Reset()
	p.failure.Store(nil)
	p.barrier.Add(p.size)

	p.fnItem, p.fnRange = fnItem, fnRange
	p.limit, p.chunk = n, chunk
	p.gen++
	debugLog("execute: gen=%d n=%d chunk=%d", p.gen, n, chunk)

	p.cond.Broadcast()
	p.mu.Unlock()

	// Every worker decrements the barrier exactly once per generation, even
	// the ones that find the range already exhausted, so zero here means the
	// slot has no remaining readers.
	p.barrier.Wait()

	p.mu.Lock()
	p.fnItem, p.fnRange = nil, nil
	p.limit, p.chunk = 0, 0
	p.mu.Unlock()

	p.execs.Add(1)

	if p.poisoned.Load() {
		return ErrPoolPoisoned
	}
	p.iters.Add(uint64(n))
	if pe := p.failure.Load(); pe != nil {
		return pe
	}
	return nil
}

// Close signals every worker to exit, wakes them, and joins them. It blocks
// behind any in-flight call and is safe to call more than once. Execute calls
// observing a closed pool return ErrPoolClosed.
func (p *Pool) Close() {
	p.callMu.Lock()
	defer p.callMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.join.Wait()
	debugLog("pool closed: %d workers joined", p.size)
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.size
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Executes:   p.execs.Load(),
		Iterations: p.iters.Load(),
		Wakeups:    p.wakes.Load(),
		Panics:     p.panics.Load(),
	}
}

// poison records a fatal worker exit. Called from the dying worker's deferred
// handler; settling the barrier there keeps the caller from waiting on a
// decrement that will never come.
func (p *Pool) poison(workerID, index int, draining bool) {
	p.poisoned.Store(true)
	debugLog("worker %d terminated fatally near index %d; pool poisoned", workerID, index)
	if draining {
		p.barrier.Done()
	}
}
