package scheduler

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/recera/slider/pkg/vango/vdom"
)

// RenderFunc is the function type for component render functions
type RenderFunc func() *vdom.VNode

// ErrorHandler handles panics during rendering and loop tasks.
// fiber is nil when the panic came from a posted task.
// Returns true to keep the fiber scheduled, false to remove it.
type ErrorHandler func(fiber *Fiber, err interface{}) bool

// Fiber represents a lightweight component execution context
type Fiber struct {
	id    uint32
	vnode *vdom.VNode // last rendered tree

	render RenderFunc
	dirty  atomic.Bool

	onError ErrorHandler
}

// debugLog is nil unless wired by the embedding program
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Scheduler is a single-goroutine event loop. Posted tasks, expired
// timers and fiber renders all run on the loop goroutine, one at a time.
type Scheduler struct {
	mu         sync.Mutex
	fibers     map[uint32]*Fiber
	nextID     uint32
	globalWake chan *Fiber
	tasks      chan func()
	quit       chan struct{}
	stopOnce   sync.Once
	running    atomic.Bool
	clock      clockwork.Clock

	applyPatches func(fiber *Fiber, patches []vdom.Patch)
	defaultError ErrorHandler
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock sets the clock backing AfterFunc. Tests pass a fake clock.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// NewScheduler creates a new scheduler instance
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		fibers:     make(map[uint32]*Fiber),
		nextID:     1,
		globalWake: make(chan *Fiber, 1024),
		tasks:      make(chan func(), 1024),
		quit:       make(chan struct{}),
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPatchApplier sets the function that receives the patches of each render
func (s *Scheduler) SetPatchApplier(applier func(fiber *Fiber, patches []vdom.Patch)) {
	s.applyPatches = applier
}

// SetDefaultErrorHandler sets the error handler for tasks and new fibers
func (s *Scheduler) SetDefaultErrorHandler(handler ErrorHandler) {
	s.defaultError = handler
}

// Clock returns the clock timers are scheduled on
func (s *Scheduler) Clock() clockwork.Clock {
	return s.clock
}

// CreateFiber creates a new fiber for a component
func (s *Scheduler) CreateFiber(render RenderFunc) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	fiber := &Fiber{
		id:      id,
		render:  render,
		onError: s.defaultError,
	}
	s.fibers[id] = fiber
	return fiber
}

// RemoveFiber removes a fiber from the scheduler
func (s *Scheduler) RemoveFiber(fiber *Fiber) {
	if fiber == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.fibers, fiber.id)
}

// MarkDirty marks a fiber as needing re-render. Fibers marked before
// Start are rendered once the loop runs.
func (s *Scheduler) MarkDirty(fiber *Fiber) {
	if fiber == nil {
		return
	}

	if !fiber.dirty.CompareAndSwap(false, true) {
		if debugLog != nil {
			debugLog("[Scheduler] Fiber", fiber.ID(), "already dirty")
		}
		return
	}

	select {
	case s.globalWake <- fiber:
		if debugLog != nil {
			debugLog("[Scheduler] Fiber", fiber.ID(), "sent to wake channel")
		}
	default:
		// Channel full, the fiber keeps its dirty flag for the next batch
		if debugLog != nil {
			debugLog("[Scheduler] Wake channel full for fiber", fiber.ID())
		}
	}
}

// Post queues fn to run on the loop. It reports false once the scheduler
// has been stopped.
func (s *Scheduler) Post(fn func()) bool {
	select {
	case <-s.quit:
		return false
	default:
	}
	select {
	case s.tasks <- fn:
		return true
	case <-s.quit:
		return false
	}
}

// Call runs fn on the loop and waits for it to finish
func (s *Scheduler) Call(fn func()) bool {
	done := make(chan struct{})
	if !s.Post(func() {
		defer close(done)
		fn()
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-s.quit:
		return false
	}
}

// AfterFunc schedules fn to run on the loop after d. Stopping the timer
// from the loop guarantees fn never runs, even if the clock already fired.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = s.clock.AfterFunc(d, func() {
		s.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer   clockwork.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	first := t.stopped.CompareAndSwap(false, true)
	t.timer.Stop()
	return first
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		if debugLog != nil {
			debugLog("[Scheduler] Starting scheduler loop")
		}
		go s.loop()
	}
}

// Stop stops the loop. Pending tasks are discarded.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	s.running.Store(false)
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *Scheduler) loop() {
	if debugLog != nil {
		debugLog("[Scheduler] Loop started")
	}
	for {
		select {
		case <-s.quit:
			if debugLog != nil {
				debugLog("[Scheduler] Loop ended")
			}
			return

		case fn := <-s.tasks:
			s.runTask(fn)

		case fiber := <-s.globalWake:
			// Collect all currently dirty fibers to batch process
			batch := []*Fiber{fiber}
		drainLoop:
			for {
				select {
				case f := <-s.globalWake:
					batch = append(batch, f)
				default:
					break drainLoop
				}
			}
			if debugLog != nil {
				debugLog("[Scheduler] Processing batch of", len(batch), "fibers")
			}
			for _, f := range batch {
				s.processFiber(f)
			}
		}
	}
}

func (s *Scheduler) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			errorMsg := fmt.Sprintf("task panic: %v\n%s", r, debug.Stack())
			if s.defaultError != nil {
				s.defaultError(nil, errorMsg)
			} else if debugLog != nil {
				debugLog("[Scheduler]", errorMsg)
			}
		}
	}()
	fn()
}

// processFiber renders a single fiber and applies patches
func (s *Scheduler) processFiber(fiber *Fiber) {
	if !fiber.dirty.CompareAndSwap(true, false) {
		return
	}

	s.mu.Lock()
	_, alive := s.fibers[fiber.id]
	s.mu.Unlock()
	if !alive {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.handleFiberError(fiber, r)
		}
	}()

	next := fiber.render()
	patches := vdom.Diff(fiber.vnode, next)

	if debugLog != nil {
		debugLog("[Scheduler] Diff produced", len(patches), "patches for fiber", fiber.ID())
	}

	if s.applyPatches != nil && len(patches) > 0 {
		s.applyPatches(fiber, patches)
	}
	fiber.vnode = next
}

// handleFiberError handles a panic during fiber rendering
func (s *Scheduler) handleFiberError(fiber *Fiber, err interface{}) {
	errorMsg := fmt.Sprintf("Fiber %d panic: %v\n%s", fiber.id, err, debug.Stack())

	shouldContinue := false
	if fiber.onError != nil {
		shouldContinue = fiber.onError(fiber, errorMsg)
	}
	if !shouldContinue {
		s.RemoveFiber(fiber)
	}
}

// GetFiber returns a fiber by ID
func (s *Scheduler) GetFiber(id uint32) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fibers[id]
}

// FiberCount returns the number of active fibers
func (s *Scheduler) FiberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fibers)
}

// ID returns the fiber's unique ID
func (f *Fiber) ID() uint32 {
	return f.id
}

// VNode returns the fiber's last rendered VNode
func (f *Fiber) VNode() *vdom.VNode {
	return f.vnode
}

// SetErrorHandler sets a custom error handler for this fiber
func (f *Fiber) SetErrorHandler(handler ErrorHandler) {
	f.onError = handler
}
