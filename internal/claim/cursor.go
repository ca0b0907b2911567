// Package claim provides the shared counter from which pool workers claim
// iteration indices during one parallel call.
//
// The cursor is the only value every worker mutates on every iteration, so it
// is padded to its own cache line to keep the claim fast-path down to a single
// uncontended-by-neighbors atomic add.
package claim

import "sync/atomic"

// Cache line size for padding to prevent false sharing
const cacheLinePadding = 128

// Cursor hands out the indices of a half-open range [0, n) to concurrent
// claimers. Next is the sole mutator while a call is draining; each index is
// returned exactly once. Claimers learn the range is exhausted when a claimed
// value comes back >= n, as the cursor itself has no upper bound.
type Cursor struct {
	_    [cacheLinePadding]byte
	next atomic.Int64
	_    [cacheLinePadding - 8]byte
}

// Reset rewinds the cursor to zero. Must not race with Next; the pool only
// resets between calls, while no worker is draining.
func (c *Cursor) Reset() {
	c.next.Store(0)
}

// Next claims and returns the next unclaimed index.
func (c *Cursor) Next() int64 {
	return c.next.Add(1) - 1
}

// NextBlock claims a run of size consecutive indices and returns the first.
// The caller owns [first, first+size), clipped by whatever upper bound it is
// draining toward. size must be positive.
func (c *Cursor) NextBlock(size int64) int64 {
	return c.next.Add(size) - size
}
