// ============================================================================
// Async-Runtime Future - One-Shot Result Cell
// ============================================================================
//
// Package: internal/future
// File: future.go
// Function: Single-assignment value cell with blocking retrieval,
//           adapted from original_source/future.c's future_init/await.
//
// Invariants (spec.md §4.3):
//   - ready transitions false -> true exactly once, never back.
//   - the value is written before ready flips (release ordering) and
//     Await only observes it once ready is true (acquire ordering) —
//     guaranteed here by writing under the same mutex that guards the
//     condition variable's wait/broadcast.
//   - Await re-checks under the lock, so no spurious wakeup escapes.
//
// ============================================================================

package future

import (
	"sync"

	"go.uber.org/atomic"
)

// Future is a one-shot result cell parametric in its result type — the
// typed-rewrite replacement for the C original's untyped void* retval
// (spec.md §9 DESIGN NOTES).
type Future[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	ready atomic.Bool
	value T
}

// New returns an unfulfilled future. Must precede any call to Await.
func New[T any]() *Future[T] {
	f := &Future[T]{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Await blocks until the future is fulfilled and returns its value.
// Multiple concurrent Awaits from any number of goroutines are
// permitted and all observe the same value (broadcast wake). There is
// no timeout variant: the runtime has no per-task cancellation, and a
// future whose task was never submitted (because Defer refused it)
// will never become ready — callers must not Await such a future
// (spec.md §5).
func (f *Future[T]) Await() T {
	if f.ready.Load() {
		// Fast path: avoids taking the lock at all once fulfilled,
		// matching the C original's "ready" check before the first
		// cond_wait but without its TOCTOU window, since the real
		// decision below is always made under the lock.
		return f.value
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for !f.ready.Load() {
		f.cond.Wait()
	}
	return f.value
}

// fulfil sets the result and wakes every waiter. Invoked exactly once,
// by the worker that runs the future's task. A second call panics —
// this is a programmer error (spec.md §3: "fulfilled at most once"),
// not a condition a caller of Async/Map can ever trigger from outside
// this package.
func (f *Future[T]) fulfil(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ready.Load() {
		panic("future: fulfil called twice")
	}
	f.value = v
	f.ready.Store(true)
	f.cond.Broadcast()
}

// Ready reports whether the future has been fulfilled, without
// blocking. Useful for diagnostics; not required by the core contract.
func (f *Future[T]) Ready() bool {
	return f.ready.Load()
}
