package pool

import (
	"os"
	"runtime"
	"sync"

	"github.com/utkarsh5026/parfor/internal/sizing"
)

// The default pool backs the free Execute functions. It is built lazily on
// first use and guarded by a plain mutex rather than sync.Once so that
// CloseDefault can tear it down and a later call can rebuild it. The mutex is
// held for the whole call, which also serializes free calls against
// InitDefault and CloseDefault.
var (
	defaultMu   sync.Mutex
	defaultPool *Pool
)

// Execute runs fn over [0, n) on the default pool, creating it on first use.
//
// The default pool's size is resolved once at creation: the PARFOR_NUM_THREADS
// environment variable if set to a positive integer, otherwise the GOMAXPROCS
// environment variable, otherwise the hardware CPU count. Semantics match
// (*Pool).Execute.
func Execute(n int, fn func(int)) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	p, err := defaultLocked()
	if err != nil {
		return err
	}
	return p.Execute(n, fn)
}

// ExecuteChunked runs fn over [0, n) in chunk-sized ranges on the default
// pool, creating it on first use. Semantics match (*Pool).ExecuteChunked.
func ExecuteChunked(n, chunk int, fn func(lo, hi int)) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	p, err := defaultLocked()
	if err != nil {
		return err
	}
	return p.ExecuteChunked(n, chunk, fn)
}

// InitDefault builds the default pool with an explicit size instead of the
// environment-resolved one. It must run before the first free Execute;
// once the default pool exists, for whatever reason, InitDefault returns
// ErrDefaultInitialized and changes nothing.
func InitDefault(threads int, opts ...Option) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool != nil {
		return ErrDefaultInitialized
	}
	p, err := New(threads, opts...)
	if err != nil {
		return err
	}
	defaultPool = p
	return nil
}

// CloseDefault shuts down the default pool if it exists. The next free
// Execute or InitDefault starts from scratch. Tests that touch the free
// functions should defer this to keep worker goroutines from leaking across
// test boundaries.
func CloseDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool == nil {
		return
	}
	defaultPool.Close()
	defaultPool = nil
}

// defaultLocked returns the default pool, building it if needed. defaultMu
// must be held.
func defaultLocked() (*Pool, error) {
	if defaultPool == nil {
		threads := sizing.Resolve(os.Getenv, runtime.NumCPU)
		p, err := New(threads)
		if err != nil {
			return nil, err
		}
		debugLog("default pool sized to %d workers", threads)
		defaultPool = p
	}
	return defaultPool, nil
}
