package bitpack

import (
	"sync"

	"github.com/chronos-tachyon/bufferpool"
)

// StringAllocator supplies the destination byte slice for a string decoded
// by SerializeString, the sole allocation this package performs on its own
// (see §5's allocator-hook requirement). Implementations must return a
// slice of length exactly n; ReleaseBytes is an optional hint that the
// caller is done with a previously allocated slice and it may be reused.
type StringAllocator interface {
	AllocBytes(n int) []byte
	ReleaseBytes(buf []byte)
}

// type syncPoolStringAllocator {{{

// syncPoolStringAllocator is the zero-configuration allocator used when the
// caller passes nil. It pools byte slices the same way pools.go pools its
// string builders and token slices: a bare sync.Pool, no shared state
// between callers.
type syncPoolStringAllocator struct {
	pool sync.Pool
}

// DefaultStringAllocator is used by SerializeString when no allocator is
// supplied.
var DefaultStringAllocator StringAllocator = &syncPoolStringAllocator{}

func (a *syncPoolStringAllocator) take(n int) []byte {
	if v, ok := a.pool.Get().([]byte); ok && cap(v) >= n {
		return v[:n]
	}
	return make([]byte, n)
}

// AllocBytes fulfills StringAllocator.
func (a *syncPoolStringAllocator) AllocBytes(n int) []byte {
	return a.take(n)
}

// ReleaseBytes fulfills StringAllocator.
func (a *syncPoolStringAllocator) ReleaseBytes(buf []byte) {
	a.pool.Put(buf[:0]) //nolint:staticcheck // pooled slices are reused by AllocBytes, not retained here
}

var _ StringAllocator = (*syncPoolStringAllocator)(nil)

// }}}

// type PooledStringAllocator {{{

// PooledStringAllocator backs SerializeString's allocations with a shared
// github.com/chronos-tachyon/bufferpool.Pool instead of a private
// sync.Pool, for callers that already maintain one pool across many
// unrelated subsystems and want decoded strings to draw from it too.
type PooledStringAllocator struct {
	pool *bufferpool.Pool
}

// NewPooledStringAllocator returns a PooledStringAllocator backed by pool.
// If pool is nil, a fresh bufferpool.Pool is created.
func NewPooledStringAllocator(pool *bufferpool.Pool) *PooledStringAllocator {
	if pool == nil {
		pool = &bufferpool.Pool{}
	}
	return &PooledStringAllocator{pool: pool}
}

// AllocBytes fulfills StringAllocator.
func (a *PooledStringAllocator) AllocBytes(n int) []byte {
	buf := a.pool.Get()
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	return buf[:n]
}

// ReleaseBytes fulfills StringAllocator.
func (a *PooledStringAllocator) ReleaseBytes(buf []byte) {
	a.pool.Put(buf[:0])
}

var _ StringAllocator = (*PooledStringAllocator)(nil)

// }}}
