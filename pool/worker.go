package pool

import (
	"runtime"

	"github.com/utkarsh5026/parfor/internal/cpu"
)

// stackBufSize bounds the stack trace captured when an invocation panics.
const stackBufSize = 4096

// worker owns one goroutine of the pool. Its lifetime is the pool's: spawned
// by New, parked between calls, exits when the pool closes or the goroutine
// dies.
type worker struct {
	pool *Pool
	id   int

	// index is the claim currently being invoked, kept as a plain field for
	// the poisoning diagnostic; only this worker writes it.
	index int
}

// loop is the worker body: park until the generation advances, snapshot the
// task slot, drain claims, settle the barrier, park again.
//
// The deferred handler distinguishes a clean exit (pool closed) from a fatal
// one. Anything that unwinds the goroutine past this frame while a call is in
// flight poisons the pool and settles the worker's share of the barrier, so
// the caller of the interrupted call still returns.
func (w *worker) loop() {
	p := w.pool

	clean := false
	draining := false
	defer func() {
		if !clean {
			p.poison(w.id, w.index, draining)
		}
		p.join.Done()
	}()

	if p.osThreads {
		release := cpu.Dedicate(w.id, p.pinCPU)
		defer release()
	}

	var seen uint64
	p.mu.Lock()
	for {
		for p.gen == seen && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			break
		}
		seen = p.gen

		// Snapshot under mu; the slot is retired once the barrier clears,
		// so nothing below may touch p.fnItem and friends directly.
		fnItem, fnRange := p.fnItem, p.fnRange
		limit, chunk := p.limit, p.chunk
		p.mu.Unlock()

		p.wakes.Add(1)
		debugLog("worker %d: woke for gen=%d", w.id, seen)

		draining = true
		if fnItem != nil {
			w.drainItems(fnItem, limit)
		} else {
			w.drainRange(fnRange, limit, chunk)
		}
		draining = false

		p.barrier.Done()
		p.mu.Lock()
	}
	p.mu.Unlock()
	clean = true
}

// drainItems claims single indices until the cursor passes limit.
func (w *worker) drainItems(fn func(int), limit int64) {
	for {
		idx := w.pool.cursor.Next()
		if idx >= limit {
			return
		}
		w.invoke(fn, int(idx))
	}
}

// drainRange claims chunk-sized blocks until the cursor passes limit.
func (w *worker) drainRange(fn func(int, int), limit, chunk int64) {
	for {
		lo := w.pool.cursor.NextBlock(chunk)
		if lo >= limit {
			return
		}
		hi := min(lo+chunk, limit)
		w.invokeRange(fn, int(lo), int(hi))
	}
}

// invoke runs fn(idx), converting a panic into a recorded failure so the
// worker survives to claim the next index. runtime.Goexit is not a panic and
// unwinds through here to the loop's poisoning handler.
func (w *worker) invoke(fn func(int), idx int) {
	w.index = idx
	defer func() {
		if r := recover(); r != nil {
			w.recordFailure(idx, r)
		}
	}()
	fn(idx)
}

func (w *worker) invokeRange(fn func(int, int), lo, hi int) {
	w.index = lo
	defer func() {
		if r := recover(); r != nil {
			w.recordFailure(lo, r)
		}
	}()
	fn(lo, hi)
}

// recordFailure captures the panic with its stack and publishes it as the
// call's failure if no other invocation got there first. Later panics in the
// same call are counted but dropped.
func (w *worker) recordFailure(idx int, value any) {
	p := w.pool
	p.panics.Add(1)

	buf := make([]byte, stackBufSize)
	n := runtime.Stack(buf, false)

	pe := &PanicError{Index: idx, Value: value, Stack: buf[:n]}
	if p.failure.CompareAndSwap(nil, pe) {
		debugLog("worker %d: panic at index %d: %v", w.id, idx, value)
	}
}
