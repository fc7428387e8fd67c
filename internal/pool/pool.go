// ============================================================================
// Async-Runtime Worker Pool - Lifecycle & Dispatch
// ============================================================================
//
// Package: internal/pool
// File: pool.go
// Function: Fixed set of worker goroutines draining a shared task queue
//           under a cooperative shutdown protocol.
//
// Design Pattern (adapted from original_source/threadpool.c):
//   A single mutex + condition variable guards the stop flag and gates
//   worker wakeups; a queue.Queue[Runnable] holds pending work. Workers
//   block on the condition variable while running AND the queue is
//   empty, wake to drain one task at a time, and exit once stopping AND
//   the queue is empty — guaranteeing in-flight submissions are drained
//   even after Stop (spec.md §4.2).
//
// Lifecycle: Fresh -> Running -> Stopping -> Drained -> Destroyed.
//   New            -> Running (registers with the process supervisor)
//   Stop()         -> Stopping (wakes every worker; idempotent)
//   Destroy()      -> stops, joins every worker, deregisters
//
// Lock order: supervisor -> pool -> future (spec.md §5). Defer checks
// the supervisor's deny flag before taking the pool's own lock, and
// never calls back into the supervisor while holding it.
//
// ============================================================================

package pool

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/ChuLiYu/go-async-runtime/internal/metrics"
	"github.com/ChuLiYu/go-async-runtime/internal/queue"
	"github.com/ChuLiYu/go-async-runtime/internal/supervisor"
)

// Pool is a fixed-size set of worker goroutines draining a shared FIFO
// task queue. The zero value is not usable; construct with New.
type Pool struct {
	mu    sync.Mutex
	idle  *sync.Cond
	tasks *queue.Queue[Runnable]

	numWorkers int
	stopping   atomic.Bool

	wg        sync.WaitGroup
	superID   int
	collector *metrics.Collector
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithMetrics attaches a Prometheus collector; every Defer, refusal,
// and task completion is reported to it. Optional — a Pool built
// without one runs with no instrumentation overhead.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Pool) { p.collector = c }
}

// New starts numWorkers workers and registers the pool with the
// process-wide supervisor (spec.md §4.2's init). There is no
// allocation-failure path to report in the Go rewrite — the C
// original's malloc-failure returns have no analogue once the queue
// and worker slice are ordinary GC-managed values — so New never
// fails except on an invalid size.
func New(numWorkers int, opts ...Option) (*Pool, error) {
	if numWorkers < 1 {
		return nil, ErrInvalidSize
	}

	p := &Pool{
		tasks:      queue.New[Runnable](),
		numWorkers: numWorkers,
	}
	p.idle = sync.NewCond(&p.mu)

	for _, opt := range opts {
		opt(p)
	}

	p.superID = supervisor.Get().Register(p)

	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.workerLoop()
	}

	if p.collector != nil {
		p.collector.SetWorkersAlive(float64(numWorkers))
	}

	return p, nil
}

// Defer enqueues a runnable for execution by some worker. It refuses
// (without enqueueing) when the process-wide supervisor has denied new
// work, or once this pool has started stopping — matching spec.md
// §4.2's precondition that the pool be Running. On success it wakes
// one idle worker.
func (p *Pool) Defer(r Runnable) error {
	if supervisor.Get().IsDenied() {
		p.recordRefused()
		return ErrSubmissionDenied
	}
	if p.stopping.Load() {
		p.recordRefused()
		return ErrPoolStopping
	}

	p.mu.Lock()
	// Re-check under the lock: stopping may have been set concurrently
	// between the fast atomic check above and acquiring the lock.
	if p.stopping.Load() {
		p.mu.Unlock()
		p.recordRefused()
		return ErrPoolStopping
	}
	p.tasks.Push(r)
	p.mu.Unlock()

	p.idle.Signal()

	if p.collector != nil {
		p.collector.IncDeferred()
		p.collector.SetQueueDepth(float64(p.tasks.Len()))
	}
	return nil
}

func (p *Pool) recordRefused() {
	if p.collector != nil {
		p.collector.IncRefused()
	}
}

// Stop marks the pool Stopping and wakes every worker so they can
// observe it. Idempotent — calling it more than once is a no-op after
// the first call.
func (p *Pool) Stop() {
	if p.stopping.Swap(true) {
		return
	}
	p.mu.Lock()
	p.idle.Broadcast()
	p.mu.Unlock()
}

// Destroy stops the pool (if not already stopped), deregisters it from
// the supervisor, and joins every worker. Every task that was deferred
// while Running is guaranteed to have executed exactly once by the
// time Destroy returns (spec.md §4.2's drain invariant, P6).
func (p *Pool) Destroy() {
	p.Stop()
	p.wg.Wait()
	supervisor.Get().Deregister(p.superID)

	if p.collector != nil {
		p.collector.SetWorkersAlive(0)
		p.collector.SetQueueDepth(0)
	}
}

// workerLoop is the S-Idle/S-Busy/S-Exiting loop described in
// spec.md §4.2: wait while running and the queue is empty, pop and run
// one task with the lock released, and exit once stopping and the
// queue is empty.
func (p *Pool) workerLoop() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for !p.stopping.Load() && p.tasks.IsEmpty() {
			p.idle.Wait()
		}

		task, ok := p.tasks.Pop()
		if !ok {
			if p.stopping.Load() {
				p.mu.Unlock()
				return
			}
			// Woken spuriously with nothing to do and not stopping:
			// loop back and wait again.
			p.mu.Unlock()
			continue
		}
		p.mu.Unlock()

		task()

		if p.collector != nil {
			p.collector.IncExecuted()
			p.collector.SetQueueDepth(float64(p.tasks.Len()))
		}
	}
}
