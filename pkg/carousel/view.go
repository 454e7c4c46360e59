package carousel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/recera/slider/pkg/vango/vdom"
	"github.com/recera/slider/pkg/vex/builder"
)

// Markers set on well-known nodes under the data-carousel attribute.
// Hosts that cannot call handlers directly, such as the live client,
// locate nodes through them.
const (
	MarkRoot     = "root"
	MarkViewport = "viewport"
	MarkTrack    = "track"
	MarkPrev     = "prev"
	MarkNext     = "next"
	MarkDot      = "dot"
	MarkPages    = "pages"
)

// ArrowKind tells the two arrows apart
type ArrowKind int

const (
	ArrowPrev ArrowKind = iota
	ArrowNext
)

func (k ArrowKind) String() string {
	if k == ArrowNext {
		return "Next"
	}
	return "Previous"
}

// ArrowProps is handed to an ArrowRenderer
type ArrowProps struct {
	Kind ArrowKind
	// Class is "arrow", plus "disabled" at a finite end
	Class    string
	Disabled bool
	OnClick  func()
}

// Apply sets the class, marker and click handler on b. Custom renderers
// should call it on their interactive element.
func (p ArrowProps) Apply(b *builder.ElementBuilder) *builder.ElementBuilder {
	mark := MarkPrev
	if p.Kind == ArrowNext {
		mark = MarkNext
	}
	return b.Class(p.Class).Data("carousel", mark).OnClick(p.OnClick)
}

// ArrowRenderer renders one arrow
type ArrowRenderer func(props ArrowProps) *vdom.VNode

// ControllerRenderer renders extra chrome next to the track. It receives
// the user-facing index of the current slide.
type ControllerRenderer func(userIndex int) *vdom.VNode

// RenderOptions customizes Render
type RenderOptions[T any] struct {
	// Slide renders a slide at its position in the padded track. The
	// default renders the slide with fmt.Sprint.
	Slide func(slide T, key int) *vdom.VNode

	Arrow      ArrowRenderer
	Controller ControllerRenderer
}

// DefaultArrow renders a button labelled Previous or Next
func DefaultArrow(props ArrowProps) *vdom.VNode {
	return props.Apply(builder.Button().Type("button")).
		Text(props.Kind.String()).
		Build()
}

func defaultSlide[T any](slide T, _ int) *vdom.VNode {
	return vdom.NewText(fmt.Sprint(slide))
}

// Render builds the carousel markup for the controller's current state
func Render[T any](c *Controller[T], opts RenderOptions[T]) *vdom.VNode {
	if opts.Slide == nil {
		opts.Slide = defaultSlide[T]
	}
	if opts.Arrow == nil {
		opts.Arrow = DefaultArrow
	}

	cfg := c.Config()
	snap := c.Snapshot()

	main := builder.Div().Class(classes("main")...)
	if snap.Navigable {
		main.Children(opts.Arrow(ArrowProps{
			Kind:     ArrowPrev,
			Class:    arrowClass(snap.PrevDisabled),
			Disabled: snap.PrevDisabled,
			OnClick:  func() { c.Retreat() },
		}))
	}
	main.Children(renderViewport(c, cfg, snap, opts.Slide))
	if opts.Controller != nil {
		main.Children(opts.Controller(snap.UserIndex))
	}
	if snap.Navigable {
		main.Children(opts.Arrow(ArrowProps{
			Kind:     ArrowNext,
			Class:    arrowClass(snap.NextDisabled),
			Disabled: snap.NextDisabled,
			OnClick:  func() { c.Next() },
		}))
	}

	root := builder.Div().
		Class(classes("slider")...).
		Class(cfg.Class).
		Data("carousel", MarkRoot).
		Children(main.Build())

	if snap.Navigable {
		root.Children(renderDots(c, snap.Dots))
	}
	if snap.PageLabel != "" {
		root.Children(builder.Span().
			Class(classes("pages")...).
			Data("carousel", MarkPages).
			Text(snap.PageLabel).
			Build())
	}
	return root.Build()
}

func arrowClass(disabled bool) string {
	names := []string{"arrow"}
	if disabled {
		names = append(names, "disabled")
	}
	return strings.Join(classes(names...), " ")
}

func renderViewport[T any](c *Controller[T], cfg Config, snap Snapshot, slide func(T, int) *vdom.VNode) *vdom.VNode {
	wrapper := builder.Div().
		Class("react-slider-track").
		Class(classes("track")...).
		Data("carousel", MarkViewport).
		OnTouchStart(func(ev PointerEvent) bool { return c.PointerDown(ev) }).
		OnTouchMove(func(ev PointerEvent) bool { return c.PointerMove(ev) }).
		OnTouchEnd(func() GestureOutcome { return c.PointerUp(PointerTouch) })
	if cfg.SlidableWithMouse {
		wrapper.
			OnMouseDown(func(ev PointerEvent) bool { return c.PointerDown(ev) }).
			OnMouseMove(func(ev PointerEvent) bool { return c.PointerMove(ev) }).
			OnMouseUp(func() GestureOutcome { return c.PointerUp(PointerMouse) })
	}
	if snap.Height > 0 {
		wrapper.Style("height", formatNumber(snap.Height)+"px")
	}

	track := builder.Ul().
		Data("carousel", MarkTrack).
		Style("--slides-per-page", strconv.Itoa(cfg.SlidesToShow))
	if !snap.Navigable {
		track.Style("justify-content", "center")
	}
	if cfg.AdaptiveHeight {
		track.Style("align-items", "flex-start")
	}
	track.Style("transform", snap.Transform)
	if snap.TransitionDuration != "" {
		track.Style("transition-duration", snap.TransitionDuration)
	}

	for key, s := range c.PaddedSlides() {
		active := key == snap.RenderIndex
		li := builder.Li().Key(strconv.Itoa(key)).AriaCurrent(active)
		if active {
			li.Class(classes("active")...)
		}
		track.Children(li.Children(slide(s, key)).Build())
	}

	return wrapper.Children(track.Build()).Build()
}

func renderDots[T any](c *Controller[T], dots []Dot) *vdom.VNode {
	list := builder.Ul().
		Class("react-slider-dots").
		Class(classes("dots")...)
	for _, d := range dots {
		li := builder.Li().Key(strconv.Itoa(d.Index))
		if d.Active {
			li.Class(classes("active")...)
		}
		k := d.Index
		li.Children(builder.Button().
			Type("button").
			Data("carousel", MarkDot).
			Data("index", strconv.Itoa(k)).
			OnClick(func() { c.DotClick(k) }).
			Text(strconv.Itoa(k)).
			Build())
		list.Children(li.Build())
	}
	return list.Build()
}
