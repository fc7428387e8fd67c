package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := New[int]()
	for i := 0; i < 5; i++ {
		q.Push(i)
	}

	for i := 0; i < 5; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestQueueSingleElementHeadTail(t *testing.T) {
	q := New[string]()
	assert.True(t, q.IsEmpty())

	q.Push("only")
	assert.False(t, q.IsEmpty())
	assert.Equal(t, 1, q.Len())

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "only", v)
	assert.True(t, q.IsEmpty())
}

func TestQueueDrainReturnsFIFOAndEmpties(t *testing.T) {
	q := New[int]()
	for i := 0; i < 3; i++ {
		q.Push(i)
	}

	drained := q.Drain()
	assert.Equal(t, []int{0, 1, 2}, drained)
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Len())
}

func TestQueueConcurrentPushPop(t *testing.T) {
	q := New[int]()
	var wg sync.WaitGroup

	const producers = 8
	const perProducer = 200

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, producers*perProducer, q.Len())

	count := 0
	for {
		_, ok := q.Pop()
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, producers*perProducer, count)
}
