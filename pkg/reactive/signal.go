// Package reactive holds values that re-render the fibers reading them.
package reactive

import (
	"sync"
	"sync/atomic"

	"github.com/recera/slider/pkg/scheduler"
)

// Scheduler interface for reactive system
type Scheduler interface {
	MarkDirty(fiber *scheduler.Fiber)
}

// debugLog is nil unless wired by the embedding program
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// currentFiber is dynamically scoped to track dependencies
var currentFiber atomic.Pointer[scheduler.Fiber]

// SetCurrentFiber sets the fiber that Get calls subscribe. The slot is
// process wide, so renderers running on several loops subscribe explicitly
// instead.
func SetCurrentFiber(fiber *scheduler.Fiber) {
	currentFiber.Store(fiber)
}

// GetCurrentFiber returns the current fiber
func GetCurrentFiber() *scheduler.Fiber {
	return currentFiber.Load()
}

// Signal is the interface for reactive values
type Signal[T any] interface {
	Get() T
	Set(T)
	Subscribe(fiber *scheduler.Fiber)
	Unsubscribe(fiber *scheduler.Fiber)
}

// State represents a reactive state value
type State[T any] struct {
	value T
	mu    sync.RWMutex

	deps      map[uint32]*scheduler.Fiber
	depsMu    sync.RWMutex
	scheduler Scheduler
}

var _ Signal[int] = (*State[int])(nil)

// NewState creates a new reactive state
func NewState[T any](initial T, sched Scheduler) *State[T] {
	return &State[T]{
		value:     initial,
		deps:      make(map[uint32]*scheduler.Fiber),
		scheduler: sched,
	}
}

// Get returns the current value and subscribes the current fiber
func (s *State[T]) Get() T {
	if fiber := GetCurrentFiber(); fiber != nil {
		s.Subscribe(fiber)
	}
	return s.Peek()
}

// Peek returns the current value without tracking
func (s *State[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and marks dependent fibers as dirty
func (s *State[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	if debugLog != nil {
		debugLog("[State] Set called with value:", value)
	}
	s.notify()
}

// Update atomically reads, modifies, and writes the value
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	newValue := s.value
	s.mu.Unlock()

	if debugLog != nil {
		debugLog("[State] Update called, new:", newValue)
	}
	s.notify()
}

// notify marks dependents dirty outside the value lock
func (s *State[T]) notify() {
	s.depsMu.RLock()
	deps := make([]*scheduler.Fiber, 0, len(s.deps))
	for _, fiber := range s.deps {
		deps = append(deps, fiber)
	}
	s.depsMu.RUnlock()

	for _, fiber := range deps {
		markDirty(s.scheduler, fiber)
	}
}

// Subscribe adds a fiber as a dependency
func (s *State[T]) Subscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}

	s.depsMu.Lock()
	defer s.depsMu.Unlock()

	s.deps[fiber.ID()] = fiber
}

// Unsubscribe removes a fiber as a dependency
func (s *State[T]) Unsubscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}

	s.depsMu.Lock()
	defer s.depsMu.Unlock()

	delete(s.deps, fiber.ID())
}

// DependentCount returns the number of subscribed fibers
func (s *State[T]) DependentCount() int {
	s.depsMu.RLock()
	defer s.depsMu.RUnlock()
	return len(s.deps)
}

func markDirty(sched Scheduler, fiber *scheduler.Fiber) {
	if sched != nil {
		sched.MarkDirty(fiber)
	} else if debugLog != nil {
		debugLog("[State] No scheduler for fiber", fiber.ID())
	}
}
