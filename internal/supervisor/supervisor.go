// ============================================================================
// Async-Runtime Shutdown Supervisor - Process-Wide Graceful Termination
// ============================================================================
//
// Package: internal/supervisor
// File: supervisor.go
// Purpose: Turn a terminal interrupt into an orderly teardown of every
//          live pool, then forward the signal to its default disposition.
//
// Protocol (mirrors original_source/threadpool.c's stop/destroy pair,
// lifted to process scope):
//   1. A dedicated goroutine blocks on signal.Notify(SIGINT, SIGTERM).
//      This is the portable substitute for the spec's sigwait-on-a-
//      masked-signal supervisor thread — Go offers no library-level
//      signal masking, so one goroutine owning the notification channel
//      plays the same role (see other_examples' gotoqueue Pool, which
//      uses the identical single-goroutine-on-a-signal-channel shape).
//   2. On receipt: set the deny-new-work flag. From that moment, every
//      registered pool's Defer returns ErrSubmissionDenied.
//   3. Destroy every registered pool (order unspecified).
//   4. Reset the signal to its default disposition and re-raise it, so
//      the process exits with the conventional signal-based status
//      (spec.md §9's decided Open Question: re-raise, not exit(SIGINT)).
//
// ============================================================================

package supervisor

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/atomic"
)

// Pool is the subset of pool.Pool the supervisor needs: every
// registered pool must be destroyable. Kept as an interface (rather
// than importing internal/pool) so internal/pool can in turn depend on
// internal/supervisor without an import cycle.
type Pool interface {
	Destroy()
}

// Supervisor is the process-wide registry of live pools plus the
// monotone deny-new-work flag described in spec.md §4.5.
type Supervisor struct {
	mu       sync.Mutex
	pools    map[int]Pool
	nextID   int
	deny     atomic.Bool
	sigCh    chan os.Signal
	watching atomic.Bool
}

var (
	instance *Supervisor
	once     sync.Once
)

// Get returns the process-wide Supervisor, lazily constructing it and
// starting its signal-watching goroutine on first use. Guarded by
// sync.Once rather than an init()/pre-main hook, per spec.md §9.
func Get() *Supervisor {
	once.Do(func() {
		instance = &Supervisor{
			pools: make(map[int]Pool),
			sigCh: make(chan os.Signal, 1),
		}
		instance.watch()
	})
	return instance
}

// watch starts the single goroutine that owns the signal channel.
func (s *Supervisor) watch() {
	if s.watching.Swap(true) {
		return
	}
	signal.Notify(s.sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-s.sigCh
		s.shutdown(sig)
	}()
}

// Register adds a pool to the registry and returns a handle used to
// Deregister it later. Safe to call concurrently with shutdown and
// ShutdownNow.
func (s *Supervisor) Register(p Pool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.pools[id] = p
	return id
}

// Deregister removes a pool from the registry, typically called from
// the pool's own Destroy once it has stopped itself.
func (s *Supervisor) Deregister(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pools, id)
}

// IsDenied reports whether the deny-new-work flag has been set. Once
// true it is never false again (spec.md §3 invariant).
func (s *Supervisor) IsDenied() bool {
	return s.deny.Load()
}

// shutdown implements the four-step protocol described at the top of
// this file. It is only ever invoked from the signal-watching
// goroutine, so it cannot race with itself.
func (s *Supervisor) shutdown(sig os.Signal) {
	s.deny.Store(true)

	s.mu.Lock()
	pools := make([]Pool, 0, len(s.pools))
	for _, p := range s.pools {
		pools = append(pools, p)
	}
	s.mu.Unlock()

	for _, p := range pools {
		p.Destroy()
	}

	s.reraise(sig)
}

// reraise restores the signal's default disposition and resends it to
// this process, so the process terminates with the conventional
// signal-based exit status rather than a synthetic os.Exit code.
func (s *Supervisor) reraise(sig os.Signal) {
	signal.Reset(sig)

	if err := syscall.Kill(syscall.Getpid(), sig.(syscall.Signal)); err != nil {
		// Synchronisation-primitive-class failure during the shutdown
		// path is terminal: there is no meaningful recovery once the
		// interrupt path has begun (spec.md §4.5, §7).
		panic("supervisor: failed to re-raise signal: " + err.Error())
	}
}

// ShutdownNow triggers the same teardown protocol as a delivered signal,
// without waiting for one. Exposed for tests and for programmatic
// shutdown (e.g. a CLI command) that should behave identically to an
// interrupt but without re-raising into the test process.
func (s *Supervisor) ShutdownNow() {
	s.deny.Store(true)

	s.mu.Lock()
	pools := make([]Pool, 0, len(s.pools))
	for _, p := range s.pools {
		pools = append(pools, p)
	}
	s.mu.Unlock()

	for _, p := range pools {
		p.Destroy()
	}
}
