package carousel

import (
	"maps"
	"slices"
	"sync"
)

// Viewport exposes the measurements the carousel reads from its renderer.
// Zero means not measured yet.
type Viewport interface {
	// Width is the width of the dragged viewport, used by swipe thresholds
	Width() float64
	// SlideWidth is the width of the active slide
	SlideWidth() float64
	// SlideHeight is the height of the active slide
	SlideHeight() float64
}

// Measured is a Viewport backed by stored measurements. Renderers that
// learn sizes asynchronously keep a *Measured and update it in place.
type Measured struct {
	Viewport float64 `json:"width"`
	Slide    float64 `json:"slideWidth"`
	Height   float64 `json:"slideHeight"`
}

func (m *Measured) Width() float64       { return m.Viewport }
func (m *Measured) SlideWidth() float64  { return m.Slide }
func (m *Measured) SlideHeight() float64 { return m.Height }

// ResizeSource notifies subscribers when the layout they render into
// changes size.
type ResizeSource interface {
	Subscribe(fn func()) (unsubscribe func())
}

// ResizeNotifier is a ResizeSource fed by the host. Subscribers run
// synchronously inside Notify, so the host must call Notify on the
// carousels' timeline.
type ResizeNotifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewResizeNotifier creates a notifier with no subscribers
func NewResizeNotifier() *ResizeNotifier {
	return &ResizeNotifier{subs: make(map[int]func())}
}

// Subscribe registers fn until the returned func is called
func (r *ResizeNotifier) Subscribe(fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.subs, id)
		})
	}
}

// Notify calls every subscriber in subscription order
func (r *ResizeNotifier) Notify() {
	r.mu.Lock()
	fns := maps.Clone(r.subs)
	r.mu.Unlock()

	ids := slices.Sorted(maps.Keys(fns))
	for _, id := range ids {
		fns[id]()
	}
}

// Len returns the number of subscribers
func (r *ResizeNotifier) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
