// Package pool provides type-safe generic wrappers around sync.Pool.
//
// The MSM engine keeps its per-window bucket buffers in a pool, so that
// running many instances back to back does not reallocate them:
//
//	type scratch struct {
//	    digits []uint32
//	}
//
//	var scratchPool = sync.Pool{
//	    New: func() any {
//	        return &scratch{}
//	    },
//	}
//
//	func window() error {
//	    s, err := pool.Get[*scratch](&scratchPool)
//	    if err != nil {
//	        return err
//	    }
//	    defer pool.Put(&scratchPool, s)
//
//	    // Use s.digits...
//	    return nil
//	}
package pool

import (
	"fmt"
	"sync"
)

// Get retrieves a value from the pool with type safety.
// Returns an error if:
//   - the pool is nil
//   - the pool returns nil
//   - the pool returns a value of the wrong type
func Get[T any](p *sync.Pool) (T, error) {
	var zero T

	if p == nil {
		return zero, ErrPoolIsNil
	}

	v := p.Get()
	if v == nil {
		return zero, ErrPoolReturnedNil
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: expected %T, got %T",
			ErrPoolWrongType, zero, v)
	}

	return typed, nil
}

// Put returns a value to the pool.
// This is a thin wrapper around sync.Pool.Put for API consistency.
// Silently ignores nil pool to avoid panics in defer statements.
func Put[T any](p *sync.Pool, v T) {
	if p == nil {
		return
	}
	p.Put(v)
}
