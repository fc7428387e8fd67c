package supervisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePool struct {
	destroyed bool
}

func (f *fakePool) Destroy() { f.destroyed = true }

func TestRegisterDeregister(t *testing.T) {
	s := &Supervisor{pools: make(map[int]Pool)}

	p := &fakePool{}
	id := s.Register(p)
	assert.Len(t, s.pools, 1)

	s.Deregister(id)
	assert.Len(t, s.pools, 0)
}

func TestShutdownNowDestroysEveryRegisteredPool(t *testing.T) {
	s := &Supervisor{pools: make(map[int]Pool)}

	pools := make([]*fakePool, 5)
	for i := range pools {
		pools[i] = &fakePool{}
		s.Register(pools[i])
	}

	assert.False(t, s.IsDenied())
	s.ShutdownNow()
	assert.True(t, s.IsDenied())

	for _, p := range pools {
		assert.True(t, p.destroyed)
	}
}

func TestIsDeniedMonotone(t *testing.T) {
	s := &Supervisor{pools: make(map[int]Pool)}
	assert.False(t, s.IsDenied())
	s.deny.Store(true)
	assert.True(t, s.IsDenied())
	// never flips back
	assert.True(t, s.IsDenied())
}

func TestGetReturnsSingleton(t *testing.T) {
	a := Get()
	b := Get()
	assert.Same(t, a, b)
}
