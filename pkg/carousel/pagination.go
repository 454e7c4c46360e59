package carousel

import "strconv"

// Dot is one pagination indicator
type Dot struct {
	Index  int  `json:"index"`
	Target int  `json:"target"`
	Active bool `json:"active"`
}

// DotCount is the number of scroll steps needed to cover every slide
func DotCount(slideCount, slidesToScroll int) int {
	if slideCount <= 0 || slidesToScroll <= 0 {
		return 0
	}
	return (slideCount + slidesToScroll - 1) / slidesToScroll
}

// DotActive reports whether dot k represents current. The first dot also
// covers the post-wrap index and the last dot covers lastSlide and the
// pre-wrap index.
func DotActive(k, current, slideCount, slidesToScroll int) bool {
	dots := DotCount(slideCount, slidesToScroll)
	last := slideCount - slidesToScroll
	switch {
	case k*slidesToScroll == current:
		return true
	case k == 0 && current >= slideCount:
		return true
	case k == dots-1 && (current == last || current < 0):
		return true
	}
	return false
}

// DotTarget is the slide a click on dot k navigates to
func DotTarget(k, slideCount, slidesToScroll int) int {
	if k == DotCount(slideCount, slidesToScroll)-1 {
		return slideCount - slidesToScroll
	}
	return k * slidesToScroll
}

// Dots projects every dot for the current slide
func Dots(current, slideCount, slidesToScroll int) []Dot {
	n := DotCount(slideCount, slidesToScroll)
	dots := make([]Dot, n)
	for k := range dots {
		dots[k] = Dot{
			Index:  k,
			Target: DotTarget(k, slideCount, slidesToScroll),
			Active: DotActive(k, current, slideCount, slidesToScroll),
		}
	}
	return dots
}

// CurrentPage is the zero-based page shown for current
func CurrentPage(current, slideCount, slidesToScroll int) int {
	switch {
	case current < 0:
		return DotCount(slideCount, slidesToScroll) - 1
	case current >= slideCount:
		return 0
	case slidesToScroll <= 0:
		return 0
	}
	return (current + slidesToScroll - 1) / slidesToScroll
}

// PageLabel renders the page indicator for style, or "" for PaginationNone
func PageLabel(style PaginationStyle, current, slideCount, slidesToScroll int) string {
	if style == PaginationNone {
		return ""
	}
	sep := "/"
	if style > PaginationCompact {
		sep = " / "
	}
	page := CurrentPage(current, slideCount, slidesToScroll) + 1
	return strconv.Itoa(page) + sep + strconv.Itoa(DotCount(slideCount, slidesToScroll))
}

// UserIndex maps a transient wrap index back to the slide it mirrors
func UserIndex(current, slideCount, slidesToScroll int) int {
	switch {
	case current >= slideCount:
		return 0
	case current < 0:
		return slideCount - slidesToScroll
	}
	return current
}
