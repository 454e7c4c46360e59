package carousel

import (
	"time"

	"github.com/recera/slider/pkg/scheduler"
)

// Phase is the in-flight step of a navigation
type Phase int

const (
	// PhaseIdle means no navigation holds the lock
	PhaseIdle Phase = iota
	// PhaseSettling waits for the transition to finish before unlocking
	PhaseSettling
	// PhaseWrapping shows the mirrored clone range and waits to snap back
	PhaseWrapping
	// PhaseSnapping has snapped without transition and waits to restore it
	PhaseSnapping
)

func (p Phase) String() string {
	switch p {
	case PhaseSettling:
		return "settling"
	case PhaseWrapping:
		return "wrapping"
	case PhaseSnapping:
		return "snapping"
	default:
		return "idle"
	}
}

// State is the navigation state read by renderers
type State struct {
	// CurrentSlide is the logical index. It equals slideCount or
	// -slidesToScroll while a wrap is in flight.
	CurrentSlide int
	Locked       bool
	Transition   time.Duration
}

// NavigatorHooks are called synchronously on every change
type NavigatorHooks struct {
	// Update runs after any change to State
	Update func()

	// SlideChange receives the user-facing index of every committed
	// navigation
	SlideChange func(index int)
}

// Navigator owns the current slide, the navigation lock and the
// transition. Deferred steps run through the Timers it was built with.
type Navigator struct {
	cfg        Config
	slideCount int
	timers     scheduler.Timers
	hooks      NavigatorHooks

	state      State
	phase      Phase
	phaseTimer scheduler.Timer
	snapTarget int

	realignTimer scheduler.Timer
	autoplay     scheduler.Timer
	dragging     bool
	closed       bool
}

// NewNavigator creates an idle navigator at cfg.InitialSlide and arms
// autoplay. cfg must be valid.
func NewNavigator(cfg Config, slideCount int, timers scheduler.Timers, hooks NavigatorHooks) *Navigator {
	cfg = cfg.withDefaults()
	n := &Navigator{
		cfg:        cfg,
		slideCount: slideCount,
		timers:     timers,
		hooks:      hooks,
		state: State{
			CurrentSlide: cfg.InitialSlide,
			Transition:   DefaultTransition,
		},
	}
	n.armAutoplay()
	return n
}

// State returns the current navigation state
func (n *Navigator) State() State {
	return n.state
}

// Phase returns the pending step of the current navigation
func (n *Navigator) Phase() Phase {
	return n.phase
}

// SlideCount returns the number of real slides
func (n *Navigator) SlideCount() int {
	return n.slideCount
}

// LastSlide is the index of the last full page. It is negative when
// slidesToScroll exceeds the slide count.
func (n *Navigator) LastSlide() int {
	return n.slideCount - n.cfg.SlidesToScroll
}

// Navigable reports whether there is anything to scroll
func (n *Navigator) Navigable() bool {
	return n.slideCount > n.cfg.SlidesToShow
}

// GoTo requests navigation to target and reports whether it was accepted.
// Requests are dropped while locked, after Close and when every slide is
// already visible.
func (n *Navigator) GoTo(target int) bool {
	if n.closed || n.state.Locked || !n.Navigable() {
		return false
	}
	n.cancelRealign()
	n.state.Locked = true

	scroll, last := n.cfg.SlidesToScroll, n.LastSlide()
	switch {
	case target >= n.slideCount:
		if n.cfg.Finite {
			n.commit(last, last, PhaseSettling)
			break
		}
		n.snapTarget = 0
		n.commit(n.slideCount, 0, PhaseWrapping)

	case target < 0:
		if n.cfg.Finite {
			n.commit(0, 0, PhaseSettling)
			break
		}
		n.snapTarget = last
		n.commit(-scroll, last, PhaseWrapping)

	default:
		if target >= last {
			target = last
		} else if r := target % scroll; r != 0 {
			// Round up to the next scroll step
			target += scroll - r
		}
		n.commit(target, target, PhaseSettling)
	}

	n.armAutoplay()
	return true
}

// Next advances one scroll step
func (n *Navigator) Next() bool {
	return n.GoTo(n.state.CurrentSlide + n.cfg.SlidesToScroll)
}

// Prev goes back one scroll step
func (n *Navigator) Prev() bool {
	return n.GoTo(n.state.CurrentSlide - n.cfg.SlidesToScroll)
}

// Retreat goes back one scroll step the way arrows and swipes do: from the
// clamped last page it never overshoots past the first slide.
func (n *Navigator) Retreat() bool {
	cur, scroll := n.state.CurrentSlide, n.cfg.SlidesToScroll
	target := cur - scroll
	if cur == n.LastSlide() {
		target = max(cur-scroll, 0)
	}
	return n.GoTo(target)
}

// commit moves to slide, notifies listeners with notify and schedules the
// next phase.
func (n *Navigator) commit(slide, notify int, next Phase) {
	n.state.CurrentSlide = slide
	n.enter(next, SettleDelay)
	n.update()
	if n.hooks.SlideChange != nil {
		n.hooks.SlideChange(notify)
	}
}

func (n *Navigator) enter(phase Phase, after time.Duration) {
	n.phase = phase
	n.phaseTimer = n.timers.AfterFunc(after, n.step)
}

// step runs when the pending phase timer fires
func (n *Navigator) step() {
	n.phaseTimer = nil
	switch n.phase {
	case PhaseSettling:
		n.phase = PhaseIdle
		n.state.Locked = false
		n.realignIfStale()

	case PhaseWrapping:
		n.state.Transition = 0
		// The slide count may have shrunk while the wrap was in flight
		n.state.CurrentSlide = min(n.snapTarget, max(n.LastSlide(), 0))
		n.enter(PhaseSnapping, FollowUpDelay)

	case PhaseSnapping:
		n.phase = PhaseIdle
		n.state.Locked = false
		if !n.dragging {
			n.state.Transition = DefaultTransition
		}
		n.realignIfStale()

	default:
		return
	}
	n.update()
}

// realignIfStale moves an idle navigator off an index that no longer exists
func (n *Navigator) realignIfStale() {
	if n.state.CurrentSlide >= n.slideCount {
		n.Realign(max(n.LastSlide(), 0))
	}
}

// Realign re-commits index without animation, then restores the
// transition after the settle delay. It is a render nudge for resizes and
// initial slide changes, so it neither takes the lock nor notifies slide
// listeners, and it does nothing while a navigation is in flight.
func (n *Navigator) Realign(index int) {
	if n.closed || n.state.Locked {
		return
	}
	n.stopRealign()
	n.state.Transition = 0
	n.state.CurrentSlide = index
	n.realignTimer = n.timers.AfterFunc(SettleDelay, func() {
		n.realignTimer = nil
		if !n.dragging {
			n.state.Transition = DefaultTransition
		}
		n.update()
	})
	n.update()
}

func (n *Navigator) stopRealign() {
	if n.realignTimer != nil {
		n.realignTimer.Stop()
		n.realignTimer = nil
	}
}

// cancelRealign drops a pending restore and restores the transition itself
func (n *Navigator) cancelRealign() {
	if n.realignTimer == nil {
		return
	}
	n.stopRealign()
	if !n.dragging {
		n.state.Transition = DefaultTransition
	}
}

// BeginDrag removes the transition so the track follows the pointer
func (n *Navigator) BeginDrag() {
	if n.closed {
		return
	}
	n.dragging = true
	n.stopRealign()
	n.state.Transition = 0
	n.update()
}

// EndDrag restores the transition unless a snap-back is in progress, in
// which case the snap restores it.
func (n *Navigator) EndDrag() {
	if !n.dragging {
		return
	}
	n.dragging = false
	if n.phase != PhaseSnapping && n.phase != PhaseWrapping {
		n.state.Transition = DefaultTransition
	}
	n.update()
}

// SetSlideCount updates the slide count. When idle on an index that no
// longer exists the navigator realigns onto the last page; a navigation in
// flight does so once it unlocks.
func (n *Navigator) SetSlideCount(count int) {
	n.slideCount = count
	if !n.state.Locked {
		n.realignIfStale()
	}
}

// Reconfigure applies a new valid config. Autoplay is re-armed when its
// timeout changes and a new initial slide is realigned to.
func (n *Navigator) Reconfigure(cfg Config) {
	old := n.cfg
	n.cfg = cfg.withDefaults()
	if old.AutoplayTimeout != n.cfg.AutoplayTimeout {
		n.armAutoplay()
	}
	if old.InitialSlide != n.cfg.InitialSlide {
		n.Realign(n.cfg.InitialSlide)
	}
}

// armAutoplay (re)starts the autoplay countdown
func (n *Navigator) armAutoplay() {
	if n.autoplay != nil {
		n.autoplay.Stop()
		n.autoplay = nil
	}
	if n.closed || n.cfg.AutoplayTimeout <= 0 {
		return
	}
	n.autoplay = n.timers.AfterFunc(n.cfg.AutoplayTimeout, func() {
		n.autoplay = nil
		if debugLog != nil {
			debugLog("[Carousel] autoplay tick at", n.state.CurrentSlide)
		}
		// An accepted navigation re-arms the countdown itself
		if !n.Next() {
			n.armAutoplay()
		}
	})
}

// Close cancels every pending timer. A closed navigator ignores requests.
func (n *Navigator) Close() {
	if n.closed {
		return
	}
	n.closed = true
	for _, t := range []scheduler.Timer{n.phaseTimer, n.realignTimer, n.autoplay} {
		if t != nil {
			t.Stop()
		}
	}
	n.phaseTimer, n.realignTimer, n.autoplay = nil, nil, nil
	n.phase = PhaseIdle
}

func (n *Navigator) update() {
	if n.hooks.Update != nil {
		n.hooks.Update()
	}
}
