// ============================================================================
// Async-Runtime Metrics - Prometheus Monitoring
// ============================================================================
//
// Package: internal/metrics
// File: metrics.go
// Purpose: Collect and expose pool/supervisor metrics for Prometheus
//
// Metric Categories:
//   1. Counters - cumulative, monotonically increasing:
//      - pool_tasks_deferred_total
//      - pool_tasks_executed_total
//      - pool_tasks_refused_total
//   2. Gauges - instantaneous values:
//      - pool_queue_depth
//      - pool_workers_alive
//
// This is pure observability: a Pool built without a Collector (see
// pool.WithMetrics) runs with none of this wired in and behaves
// identically otherwise.
//
// ============================================================================

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector collects Prometheus metrics for one or more pools sharing
// the same process-wide registry.
type Collector struct {
	tasksDeferred prometheus.Counter
	tasksExecuted prometheus.Counter
	tasksRefused  prometheus.Counter

	queueDepth   prometheus.Gauge
	workersAlive prometheus.Gauge
}

// NewCollector creates and registers a new metrics collector against
// the default Prometheus registry.
func NewCollector() *Collector {
	c := &Collector{
		tasksDeferred: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_tasks_deferred_total",
			Help: "Total number of runnables successfully deferred to a pool",
		}),
		tasksExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_tasks_executed_total",
			Help: "Total number of runnables executed by a worker",
		}),
		tasksRefused: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_tasks_refused_total",
			Help: "Total number of Defer calls refused (pool stopping or shutdown denied)",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pool_queue_depth",
			Help: "Current number of runnables waiting in the task queue",
		}),
		workersAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pool_workers_alive",
			Help: "Current number of live worker goroutines",
		}),
	}

	prometheus.MustRegister(c.tasksDeferred)
	prometheus.MustRegister(c.tasksExecuted)
	prometheus.MustRegister(c.tasksRefused)
	prometheus.MustRegister(c.queueDepth)
	prometheus.MustRegister(c.workersAlive)

	return c
}

// IncDeferred records a successful Defer.
func (c *Collector) IncDeferred() { c.tasksDeferred.Inc() }

// IncExecuted records a completed task.
func (c *Collector) IncExecuted() { c.tasksExecuted.Inc() }

// IncRefused records a refused submission.
func (c *Collector) IncRefused() { c.tasksRefused.Inc() }

// SetQueueDepth updates the queue-depth gauge.
func (c *Collector) SetQueueDepth(depth float64) { c.queueDepth.Set(depth) }

// SetWorkersAlive updates the workers-alive gauge.
func (c *Collector) SetWorkersAlive(n float64) { c.workersAlive.Set(n) }

// StartServer starts a Prometheus metrics HTTP server on the given
// port, serving /metrics via promhttp. Intended to run in its own
// goroutine; blocks until the listener fails.
func StartServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, mux)
}
