package carousel

import (
	"errors"
	"fmt"
	"time"

	"github.com/recera/slider/pkg/reactive"
	"github.com/recera/slider/pkg/scheduler"
)

// ErrNoTimers is returned by New when no Timers were configured
var ErrNoTimers = errors.New("carousel: WithTimers is required")

type options struct {
	timers      scheduler.Timers
	viewport    Viewport
	resize      ResizeSource
	slideChange func(int)
	changeHook  func()
	render      reactive.Scheduler
}

// Option configures a Controller
type Option func(*options)

// WithTimers sets the timeline deferred steps run on. Required.
func WithTimers(t scheduler.Timers) Option {
	return func(o *options) { o.timers = t }
}

// WithViewport sets where measurements are read from. Without one the
// carousel stays unmeasured and uses percentage transforms.
func WithViewport(v Viewport) Option {
	return func(o *options) { o.viewport = v }
}

// WithResizeSource realigns the carousel whenever the source fires
func WithResizeSource(r ResizeSource) Option {
	return func(o *options) { o.resize = r }
}

// WithSlideChange registers the callback receiving the user-facing index
// of every committed navigation.
func WithSlideChange(fn func(index int)) Option {
	return func(o *options) { o.slideChange = fn }
}

// WithChangeHook registers a callback run after every state change
func WithChangeHook(fn func()) Option {
	return func(o *options) { o.changeHook = fn }
}

// WithRenderScheduler marks the fibers subscribed to Signal dirty through
// s on every change.
func WithRenderScheduler(s reactive.Scheduler) Option {
	return func(o *options) { o.render = s }
}

// Controller wires a Navigator and a GestureTracker to a slide set and
// projects everything a renderer needs.
type Controller[T any] struct {
	cfg      Config
	slides   []T
	nav      *Navigator
	gesture  *GestureTracker
	viewport Viewport

	unsubscribe func()
	changeHook  func()
	revision    *reactive.State[uint64]
}

// New validates cfg and starts a controller over slides
func New[T any](cfg Config, slides []T, opts ...Option) (*Controller[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.timers == nil {
		return nil, ErrNoTimers
	}
	if o.viewport == nil {
		o.viewport = &Measured{}
	}

	cfg = cfg.withDefaults()
	c := &Controller[T]{
		cfg:        cfg,
		slides:     slides,
		gesture:    NewGestureTracker(cfg.SlidableWithMouse),
		viewport:   o.viewport,
		changeHook: o.changeHook,
		revision:   reactive.NewState(uint64(0), o.render),
	}
	c.nav = NewNavigator(cfg, len(slides), o.timers, NavigatorHooks{
		Update:      c.changed,
		SlideChange: o.slideChange,
	})
	if o.resize != nil {
		c.unsubscribe = o.resize.Subscribe(c.Resize)
	}
	return c, nil
}

func (c *Controller[T]) changed() {
	c.revision.Update(func(v uint64) uint64 { return v + 1 })
	if c.changeHook != nil {
		c.changeHook()
	}
}

// Signal is bumped on every change; fibers subscribed to it re-render
func (c *Controller[T]) Signal() *reactive.State[uint64] {
	return c.revision
}

// Config returns the effective config with defaults applied
func (c *Controller[T]) Config() Config {
	return c.cfg
}

// State returns the navigation state
func (c *Controller[T]) State() State {
	return c.nav.State()
}

// Phase returns the pending navigation step
func (c *Controller[T]) Phase() Phase {
	return c.nav.Phase()
}

// Slides returns the real slides
func (c *Controller[T]) Slides() []T {
	return c.slides
}

// GoTo navigates to index
func (c *Controller[T]) GoTo(index int) bool {
	return c.nav.GoTo(index)
}

// Next advances one scroll step
func (c *Controller[T]) Next() bool {
	return c.nav.Next()
}

// Prev goes back one scroll step
func (c *Controller[T]) Prev() bool {
	return c.nav.Prev()
}

// Retreat goes back the way the previous arrow does
func (c *Controller[T]) Retreat() bool {
	return c.nav.Retreat()
}

// DotClick navigates to the target of dot k
func (c *Controller[T]) DotClick(k int) bool {
	scroll := c.cfg.SlidesToScroll
	if k < 0 || k >= DotCount(len(c.slides), scroll) {
		return false
	}
	return c.nav.GoTo(DotTarget(k, len(c.slides), scroll))
}

// PointerDown starts a drag
func (c *Controller[T]) PointerDown(ev PointerEvent) bool {
	if !c.gesture.Down(ev) {
		return false
	}
	c.nav.BeginDrag()
	return true
}

// PointerMove follows a drag. It reports true when the move belongs to
// the carousel and the host should suppress scrolling.
func (c *Controller[T]) PointerMove(ev PointerEvent) bool {
	wasDragging := c.gesture.Dragging()
	if c.gesture.Move(ev) {
		c.changed()
		return true
	}
	if wasDragging != c.gesture.Dragging() {
		c.changed()
	}
	return false
}

// PointerUp finishes a drag and navigates according to its outcome
func (c *Controller[T]) PointerUp(kind PointerKind) GestureOutcome {
	outcome := c.gesture.Up(kind, c.viewport.Width())
	if outcome == GestureNone {
		return outcome
	}
	if debugLog != nil {
		debugLog("[Carousel] gesture", outcome)
	}
	c.nav.EndDrag()
	switch outcome {
	case GestureAdvance:
		c.nav.Next()
	case GestureRetreat:
		c.nav.Retreat()
	default:
		// Cancel: the offset is already back to zero
		c.changed()
	}
	return outcome
}

// Resize realigns the track after a layout change
func (c *Controller[T]) Resize() {
	c.nav.Realign(c.nav.State().CurrentSlide)
}

// SetSlides replaces the slide set
func (c *Controller[T]) SetSlides(slides []T) {
	c.slides = slides
	c.nav.SetSlideCount(len(slides))
	c.changed()
}

// Reconfigure validates and applies cfg. Timers governed by changed
// values are re-armed.
func (c *Controller[T]) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}
	c.cfg = cfg.withDefaults()
	c.gesture.SetMouseEnabled(c.cfg.SlidableWithMouse)
	c.nav.Reconfigure(c.cfg)
	c.changed()
	return nil
}

// Close stops every timer and the resize subscription
func (c *Controller[T]) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.nav.Close()
}

// PaddedSlides is the rendered track, clones included
func (c *Controller[T]) PaddedSlides() []T {
	track, _ := Pad(c.slides, c.cfg)
	return track
}

// Snapshot is the render-ready projection of a controller
type Snapshot struct {
	CurrentSlide int    `json:"currentSlide"`
	UserIndex    int    `json:"userIndex"`
	Locked       bool   `json:"locked"`
	Phase        string `json:"phase"`

	Transition         time.Duration `json:"-"`
	TransitionDuration string        `json:"transitionDuration"`

	SlideCount  int     `json:"slideCount"`
	TrackLength int     `json:"trackLength"`
	PadOffset   int     `json:"padOffset"`
	RenderIndex int     `json:"renderIndex"`
	Offset      float64 `json:"offset"`
	Dragging    bool    `json:"dragging"`
	Transform   string  `json:"transform"`

	Navigable    bool   `json:"navigable"`
	PrevDisabled bool   `json:"prevDisabled"`
	NextDisabled bool   `json:"nextDisabled"`
	Dots         []Dot  `json:"dots"`
	PageLabel    string `json:"pageLabel,omitempty"`

	// Height is the adaptive viewport height in pixels, 0 when unset
	Height float64 `json:"height,omitempty"`
}

// Snapshot projects the current state
func (c *Controller[T]) Snapshot() Snapshot {
	st := c.nav.State()
	count := len(c.slides)
	scroll := c.cfg.SlidesToScroll
	last := count - scroll
	navigable := c.nav.Navigable()

	padOffset, trackLength := 0, count
	if c.cfg.padded(count) {
		padOffset = c.cfg.padLength()
		trackLength = count + 2*padOffset
	}
	renderIndex := st.CurrentSlide + padOffset

	s := Snapshot{
		CurrentSlide:       st.CurrentSlide,
		UserIndex:          UserIndex(st.CurrentSlide, count, scroll),
		Locked:             st.Locked,
		Phase:              c.nav.Phase().String(),
		Transition:         st.Transition,
		TransitionDuration: TransitionCSS(st.Transition),
		SlideCount:         count,
		TrackLength:        trackLength,
		PadOffset:          padOffset,
		RenderIndex:        renderIndex,
		Offset:             c.gesture.Offset(),
		Dragging:           c.gesture.Dragging(),
		Transform:          Translate(renderIndex, c.gesture.Offset(), c.viewport.SlideWidth(), c.cfg.SlidesToShow),
		Navigable:          navigable,
		PageLabel:          PageLabel(c.cfg.Pagination, st.CurrentSlide, count, scroll),
	}
	if navigable {
		s.PrevDisabled = c.cfg.Finite && st.CurrentSlide == 0
		s.NextDisabled = c.cfg.Finite && st.CurrentSlide == last
		s.Dots = Dots(st.CurrentSlide, count, scroll)
	}
	if c.cfg.AdaptiveHeight {
		s.Height = c.viewport.SlideHeight()
	}
	return s
}
