package scheduler

import (
	"sort"
	"time"
)

// Timer is a pending deferred callback
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented
	// the callback from running.
	Stop() bool
}

// Timers schedules deferred callbacks onto the caller's timeline.
// Implementations deliver callbacks on the same goroutine that drives the
// rest of the state they touch.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

var (
	_ Timers = (*Scheduler)(nil)
	_ Timers = (*Virtual)(nil)
)

// Virtual is a manually advanced timeline. Callbacks run synchronously
// inside Advance, in deadline order, ties broken by scheduling order.
// A Virtual must only be used from one goroutine.
type Virtual struct {
	now     time.Duration
	seq     uint64
	pending []*virtualTimer
}

type virtualTimer struct {
	v   *Virtual
	at  time.Duration
	seq uint64
	fn  func()
}

// NewVirtual creates a timeline starting at zero
func NewVirtual() *Virtual {
	return &Virtual{}
}

// AfterFunc schedules fn at Now()+d
func (v *Virtual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &virtualTimer{v: v, at: v.now + d, seq: v.seq, fn: fn}
	v.pending = append(v.pending, t)
	return t
}

func (t *virtualTimer) Stop() bool {
	for i, p := range t.v.pending {
		if p == t {
			t.v.pending = append(t.v.pending[:i], t.v.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the timeline forward by d, running every callback that
// falls due, including ones scheduled by callbacks during the advance.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now + d
	for {
		next := v.nextDue(target)
		if next == nil {
			break
		}
		next.Stop()
		v.now = next.at
		next.fn()
	}
	v.now = target
}

func (v *Virtual) nextDue(limit time.Duration) *virtualTimer {
	if len(v.pending) == 0 {
		return nil
	}
	sort.SliceStable(v.pending, func(i, j int) bool {
		a, b := v.pending[i], v.pending[j]
		if a.at != b.at {
			return a.at < b.at
		}
		return a.seq < b.seq
	})
	if first := v.pending[0]; first.at <= limit {
		return first
	}
	return nil
}

// Now returns the elapsed virtual time
func (v *Virtual) Now() time.Duration {
	return v.now
}

// Pending returns the number of scheduled callbacks
func (v *Virtual) Pending() int {
	return len(v.pending)
}
