package reactive

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/slider/pkg/scheduler"
	"github.com/recera/slider/pkg/vango/vdom"
)

// countingScheduler records MarkDirty calls without running anything
type countingScheduler struct {
	count atomic.Int32
}

func (c *countingScheduler) MarkDirty(*scheduler.Fiber) {
	c.count.Add(1)
}

func TestState_GetSet(t *testing.T) {
	state := NewState(42, nil)
	assert.Equal(t, 42, state.Get())

	state.Set(100)
	assert.Equal(t, 100, state.Get())
	assert.Equal(t, 100, state.Peek())
}

func TestState_Update(t *testing.T) {
	state := NewState(uint64(1), nil)
	state.Update(func(v uint64) uint64 { return v + 1 })
	assert.Equal(t, uint64(2), state.Peek())
}

func TestState_GetSubscribesCurrentFiber(t *testing.T) {
	sched := scheduler.NewScheduler()
	counter := &countingScheduler{}
	state := NewState("1/4", counter)

	fiber := sched.CreateFiber(func() *vdom.VNode { return nil })

	// Peek never subscribes
	SetCurrentFiber(fiber)
	_ = state.Peek()
	assert.Zero(t, state.DependentCount())

	_ = state.Get()
	SetCurrentFiber(nil)
	assert.Equal(t, 1, state.DependentCount())

	state.Set("2/4")
	state.Set("3/4")
	assert.Equal(t, int32(2), counter.count.Load())
}

func TestState_RerendersSubscribedFiber(t *testing.T) {
	sched := scheduler.NewScheduler()
	revision := NewState(uint64(0), sched)

	var renders atomic.Int32
	fiber := sched.CreateFiber(func() *vdom.VNode {
		renders.Add(1)
		return vdom.NewText(strconv.FormatUint(revision.Peek(), 10))
	})
	revision.Subscribe(fiber)

	sched.Start()
	defer sched.Stop()

	sched.MarkDirty(fiber)
	assert.Eventually(t, func() bool { return renders.Load() == 1 }, time.Second, time.Millisecond)

	revision.Update(func(v uint64) uint64 { return v + 1 })
	assert.Eventually(t, func() bool { return renders.Load() == 2 }, time.Second, time.Millisecond)
}

func TestState_ConcurrentAccess(t *testing.T) {
	state := NewState(0, &countingScheduler{})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state.Update(func(v int) int { return v + 1 })
			_ = state.Get()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, state.Peek())
}

func TestSignal_Unsubscribe(t *testing.T) {
	sched := scheduler.NewScheduler()
	counter := &countingScheduler{}
	state := NewState("test", counter)

	fiber := sched.CreateFiber(func() *vdom.VNode { return nil })

	state.Subscribe(fiber)
	require.Equal(t, 1, state.DependentCount())

	state.Unsubscribe(fiber)
	assert.Zero(t, state.DependentCount())

	state.Set("changed")
	assert.Zero(t, counter.count.Load())
}

func TestSignal_NilFiber(t *testing.T) {
	state := NewState(42, nil)

	state.Subscribe(nil)
	state.Unsubscribe(nil)

	SetCurrentFiber(nil)
	assert.Equal(t, 42, state.Get())
}

func BenchmarkState_Get(b *testing.B) {
	state := NewState(42, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = state.Get()
	}
}

func BenchmarkState_Set(b *testing.B) {
	state := NewState(0, &countingScheduler{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		state.Set(i)
	}
}
