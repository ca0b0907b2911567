package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkerCount is returned by New for a non-positive worker
	// count. A pool with no workers can never make progress, so the count is
	// rejected outright rather than silently clamped.
	ErrInvalidWorkerCount = errors.New("worker count must be positive")

	// ErrNilFunc is returned when the callable passed to an execute call is
	// nil.
	ErrNilFunc = errors.New("callable must not be nil")

	// ErrPoolClosed is returned by execute calls on a pool whose Close has
	// been observed.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrPoolPoisoned is returned once a worker goroutine has terminated
	// fatally (runtime.Goexit escaping the callable). A poisoned pool
	// rejects every subsequent call instead of hanging on a barrier a dead
	// worker can never decrement.
	ErrPoolPoisoned = errors.New("pool is poisoned: a worker terminated fatally")

	// ErrDefaultInitialized is returned by InitDefault when the default pool
	// already exists. Call CloseDefault first to rebuild it with a
	// different size.
	ErrDefaultInitialized = errors.New("default pool is already initialized")
)

// PanicError carries the first panic recovered from the callable during one
// execute call. Recovery is per invocation, so the remaining indices still
// run; the error surfaces to the caller only after every worker has finished
// claiming.
type PanicError struct {
	// Index is the index whose invocation panicked. For chunked calls it is
	// the start of the panicking chunk.
	Index int

	// Value is the value the callable passed to panic.
	Value any

	// Stack is the panicking worker's stack, captured at the recovery point.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker panic at index %d: %v\nstack trace:\n%s", e.Index, e.Value, e.Stack)
}
