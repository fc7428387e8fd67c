package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFIFOSingleWorker is property P1: with a pool of size 1 and tasks
// T1..Tn submitted in order, their execution order is exactly T1..Tn.
func TestFIFOSingleWorker(t *testing.T) {
	p, err := New(1)
	require.NoError(t, err)
	defer p.Destroy()

	var mu sync.Mutex
	var order []int

	const n = 50
	for i := 0; i < n; i++ {
		i := i
		require.NoError(t, p.Defer(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == n
	}, 2*time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for i := 0; i < n; i++ {
		assert.Equal(t, i, order[i])
	}
}

// TestParallelism is property P2: with a pool of size N>=2 and N tasks
// that each sleep for D, total wall time is well under N*D.
func TestParallelism(t *testing.T) {
	const workers = 4
	const sleep = 100 * time.Millisecond

	p, err := New(workers)
	require.NoError(t, err)
	defer p.Destroy()

	var wg sync.WaitGroup
	wg.Add(workers)

	start := time.Now()
	for i := 0; i < workers; i++ {
		require.NoError(t, p.Defer(func() {
			time.Sleep(sleep)
			wg.Done()
		}))
	}
	wg.Wait()
	elapsed := time.Since(start)

	assert.Less(t, elapsed, sleep+sleep/2, "tasks should run concurrently, not serially")
}

// TestDrainOnStop is property P6: after deferring M tasks followed by
// Stop and Destroy, all M tasks run to completion before Destroy
// returns.
func TestDrainOnStop(t *testing.T) {
	p, err := New(2)
	require.NoError(t, err)

	var completed int32
	const m = 20
	for i := 0; i < m; i++ {
		require.NoError(t, p.Defer(func() {
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&completed, 1)
		}))
	}

	p.Stop()
	p.Destroy()

	assert.EqualValues(t, m, atomic.LoadInt32(&completed))
}

// TestRefusalPostStop is property P7: Defer after Stop returns failure
// and does not execute the task.
func TestRefusalPostStop(t *testing.T) {
	p, err := New(1)
	require.NoError(t, err)

	p.Stop()

	var ran bool
	err = p.Defer(func() { ran = true })
	assert.ErrorIs(t, err, ErrPoolStopping)

	p.Destroy()
	assert.False(t, ran)
}

func TestEmptyPoolDestroy(t *testing.T) {
	p, err := New(2)
	require.NoError(t, err)
	p.Destroy()
}

func TestNewRejectsInvalidSize(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
