// ============================================================================
// Async-Runtime Async/Map - Pool-Backed Future Combinators
// ============================================================================
//
// Package: internal/future
// File: async.go
// Function: Converts "compute f(x) on a pool" and "compute g(await F)
//           on a pool" into futures, adapted from original_source/future.c's
//           async/map.
//
// Map realisation: BLOCKING (spec.md §4.4, decided in DESIGN.md). Map
// synchronously Awaits the source future before deferring the
// follow-up task — the variant spec.md says "matches the sources"
// (future.c's map calls await(from) inline). The caller of Map blocks
// until the source completes; this is acceptable because the caller is
// typically a coordinator goroutine walking a dependency chain (the
// factorial client, P5).
//
// ============================================================================

package future

import (
	"github.com/ChuLiYu/go-async-runtime/internal/pool"
)

// Deferrer is the subset of pool.Pool that Async/Map need. Defined as
// an interface so this package depends only on the method it uses,
// matching the pool's own exported surface.
type Deferrer interface {
	Defer(pool.Runnable) error
}

// Async schedules fn(arg) on p and returns a future for its result.
// This is the typed-rewrite of future.c's async(pool, future, callable):
// the {fn, arg, future} binding the C original heap-allocates is simply
// the closure passed to Defer — nothing to free separately, and
// nothing leaks on refusal because the closure is never retained
// anywhere but the call stack that built it.
func Async[A, R any](p Deferrer, arg A, fn func(A) R) (*Future[R], error) {
	f := New[R]()

	err := p.Defer(func() {
		f.fulfil(fn(arg))
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Map fulfils the returned future with fn(v) once src is fulfilled
// with v, the task for fn being deferred on p. See the package doc
// above for the blocking-realisation choice.
func Map[A, R any](p Deferrer, src *Future[A], fn func(A) R) (*Future[R], error) {
	v := src.Await()

	f := New[R]()
	err := p.Defer(func() {
		f.fulfil(fn(v))
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}
