package carousel

import "math"

// PointerKind identifies the input device behind a pointer event
type PointerKind int

const (
	// PointerTouch is a finger on a touch screen
	PointerTouch PointerKind = iota
	// PointerMouse is a pressed mouse button
	PointerMouse
)

func (k PointerKind) String() string {
	if k == PointerMouse {
		return "mouse"
	}
	return "touch"
}

// PointerEvent is a pointer sample in viewport coordinates
type PointerEvent struct {
	Kind PointerKind
	X, Y float64

	// OnControl is set when the event target is an interactive control
	// such as an arrow or dot button.
	OnControl bool
}

// GestureOutcome is the classification of a finished gesture
type GestureOutcome int

const (
	// GestureNone means no gesture was in progress
	GestureNone GestureOutcome = iota
	// GestureAdvance is a swipe past the threshold toward the next slide
	GestureAdvance
	// GestureRetreat is a swipe past the threshold toward the previous slide
	GestureRetreat
	// GestureCancel is a drag too short to navigate; the track snaps back
	GestureCancel
)

func (o GestureOutcome) String() string {
	switch o {
	case GestureAdvance:
		return "advance"
	case GestureRetreat:
		return "retreat"
	case GestureCancel:
		return "cancel"
	default:
		return "none"
	}
}

type axis int

const (
	axisUndecided axis = iota
	axisHorizontal
	axisAbandoned
)

// GestureTracker turns a pointer sequence into a live drag offset and a
// final outcome.
type GestureTracker struct {
	mouseEnabled bool
	touchSeen    bool

	active bool
	kind   PointerKind
	axis   axis
	startX float64
	startY float64
	offset float64
}

// NewGestureTracker creates a tracker; mouse sequences are only tracked
// when mouseEnabled is set.
func NewGestureTracker(mouseEnabled bool) *GestureTracker {
	return &GestureTracker{mouseEnabled: mouseEnabled}
}

// SetMouseEnabled toggles mouse dragging
func (g *GestureTracker) SetMouseEnabled(enabled bool) {
	g.mouseEnabled = enabled
}

// Down starts a gesture. It reports false when the event is ignored:
// presses on controls, mouse presses while mouse dragging is off, and
// mouse presses once a touch has been seen, since touch screens also
// emit synthetic mouse events.
func (g *GestureTracker) Down(ev PointerEvent) bool {
	if ev.OnControl {
		return false
	}
	if ev.Kind == PointerMouse && (!g.mouseEnabled || g.touchSeen) {
		return false
	}
	if ev.Kind == PointerTouch {
		g.touchSeen = true
	}
	*g = GestureTracker{
		mouseEnabled: g.mouseEnabled,
		touchSeen:    g.touchSeen,
		active:       true,
		kind:         ev.Kind,
		startX:       ev.X,
		startY:       ev.Y,
	}
	return true
}

// Move updates the drag. The first move with any displacement decides the
// axis: mostly horizontal locks the gesture, otherwise it is abandoned so
// the page can scroll. It reports true while the gesture owns the move.
func (g *GestureTracker) Move(ev PointerEvent) bool {
	if !g.active || ev.Kind != g.kind || g.axis == axisAbandoned {
		return false
	}
	dx, dy := ev.X-g.startX, ev.Y-g.startY
	if g.axis == axisUndecided {
		if dx == 0 && dy == 0 {
			return false
		}
		if math.Abs(dx) <= math.Abs(dy) {
			g.axis = axisAbandoned
			g.offset = 0
			return false
		}
		g.axis = axisHorizontal
	}
	g.offset = dx
	return true
}

// Up ends the gesture of the given kind and classifies it against the
// viewport width.
func (g *GestureTracker) Up(kind PointerKind, width float64) GestureOutcome {
	if !g.active || kind != g.kind {
		return GestureNone
	}
	offset, locked := g.offset, g.axis == axisHorizontal
	g.active = false
	g.axis = axisUndecided
	g.offset = 0

	if !locked {
		return GestureCancel
	}
	if width <= 0 {
		width = 1
	}
	switch threshold := offset / width; {
	case threshold <= -SwipeThreshold:
		return GestureAdvance
	case threshold >= SwipeThreshold:
		return GestureRetreat
	default:
		return GestureCancel
	}
}

// Offset is the live horizontal drag distance
func (g *GestureTracker) Offset() float64 {
	return g.offset
}

// Active reports whether a gesture is in progress
func (g *GestureTracker) Active() bool {
	return g.active
}

// Dragging reports whether the gesture has locked onto the horizontal axis
func (g *GestureTracker) Dragging() bool {
	return g.active && g.axis == axisHorizontal
}
