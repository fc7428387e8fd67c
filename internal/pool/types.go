// ============================================================================
// Async-Runtime Worker Pool - Type & Error Definitions
// ============================================================================
//
// Package: internal/pool
// File: types.go
// Purpose: Shared types and sentinel errors for the worker pool
//
// ============================================================================

package pool

import "errors"

// Runnable is a unit of work with no return value, the typed-rewrite
// equivalent of original_source/threadpool.h's runnable_t. Closures
// already own their captured argument, so there is no separate
// (function, arg, argsz) tuple to carry — the function value is the
// whole contract.
type Runnable func()

var (
	// ErrPoolStopping is returned by Defer once Stop has been called on
	// the pool, before Destroy completes.
	ErrPoolStopping = errors.New("pool: stopping, submission refused")

	// ErrSubmissionDenied is returned by Defer once the process-wide
	// supervisor has set its deny-new-work flag.
	ErrSubmissionDenied = errors.New("pool: shutdown in progress, submission refused")

	// ErrInvalidSize is returned by New when asked for a pool with no
	// workers.
	ErrInvalidSize = errors.New("pool: size must be at least 1")
)
