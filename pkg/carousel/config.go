// Package carousel implements a slide rotator: a navigation state machine
// with seamless looping, a drag gesture classifier and the projections a
// renderer needs (transform, padded slides, dots and page label).
//
// Every method of the types in this package must be called from a single
// timeline, the same one the configured scheduler.Timers deliver callbacks
// on.
package carousel

import (
	"errors"
	"fmt"
	"time"
)

const (
	// SettleDelay is how long a navigation holds the lock. It equals
	// DefaultTransition.
	SettleDelay = 500 * time.Millisecond

	// FollowUpDelay is how long a snapped track stays without transition
	FollowUpDelay = 50 * time.Millisecond

	// DefaultTransition is the animated track transition
	DefaultTransition = 500 * time.Millisecond

	// SwipeThreshold is the fraction of the viewport width a drag must
	// cover to change slides.
	SwipeThreshold = 0.33
)

// ErrInvalidConfig is wrapped by every configuration validation failure
var ErrInvalidConfig = errors.New("invalid carousel config")

// PaginationStyle selects the page label format
type PaginationStyle int

const (
	// PaginationNone renders no label
	PaginationNone PaginationStyle = iota
	// PaginationCompact renders "2/4"
	PaginationCompact
	// PaginationSpaced renders "2 / 4"
	PaginationSpaced
)

// Config configures a carousel. The zero value shows and scrolls one
// slide at a time, looping.
type Config struct {
	// SlidesToShow is the number of slides visible at once (0 means 1)
	SlidesToShow int

	// SlidesToScroll is the step of every navigation (0 means SlidesToShow)
	SlidesToScroll int

	// SlidesToAppend adds clones on both ends beyond SlidesToShow
	SlidesToAppend int

	// Finite clamps at both ends instead of looping
	Finite bool

	InitialSlide int

	// SlidableWithMouse enables mouse dragging in addition to touch
	SlidableWithMouse bool

	// AutoplayTimeout advances the carousel periodically when positive
	AutoplayTimeout time.Duration

	// AdaptiveHeight sizes the viewport to the active slide
	AdaptiveHeight bool

	Pagination PaginationStyle

	// Class is added to the root element
	Class string
}

// withDefaults returns a copy of c with zero values filled in
func (c Config) withDefaults() Config {
	if c.SlidesToShow == 0 {
		c.SlidesToShow = 1
	}
	if c.SlidesToScroll == 0 {
		c.SlidesToScroll = c.SlidesToShow
	}
	return c
}

// Validate reports whether c can drive a carousel
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.SlidesToShow < 1:
		return fmt.Errorf("%w: slidesToShow must be at least 1, got %d", ErrInvalidConfig, c.SlidesToShow)
	case c.SlidesToScroll < 1:
		return fmt.Errorf("%w: slidesToScroll must be at least 1, got %d", ErrInvalidConfig, c.SlidesToScroll)
	case c.SlidesToAppend < 0:
		return fmt.Errorf("%w: slidesToAppend must not be negative, got %d", ErrInvalidConfig, c.SlidesToAppend)
	case c.AutoplayTimeout < 0:
		return fmt.Errorf("%w: autoplayTimeout must not be negative, got %s", ErrInvalidConfig, c.AutoplayTimeout)
	case c.Pagination < PaginationNone || c.Pagination > PaginationSpaced:
		return fmt.Errorf("%w: pagination must be 0, 1 or 2, got %d", ErrInvalidConfig, c.Pagination)
	}
	return nil
}

// padded reports whether slideCount slides render with clones on both ends
func (c Config) padded(slideCount int) bool {
	return slideCount > c.SlidesToShow && (!c.Finite || c.SlidesToAppend > 0)
}

// padLength is the number of clones on each end of a padded track
func (c Config) padLength() int {
	return c.SlidesToShow + c.SlidesToAppend
}
