package carousel

import (
	"strconv"
	"time"
)

// Translate returns the CSS transform placing the track so that track
// index i is the first visible slide. With a measured slide width the
// result is in pixels and includes the live drag offset; before
// measurement it falls back to a percentage of the track, which lands on
// the same position.
func Translate(i int, offsetPx, slideWidth float64, slidesToShow int) string {
	if slideWidth > 0 {
		return "translateX(" + formatNumber(-float64(i)*slideWidth+offsetPx) + "px)"
	}
	if slidesToShow < 1 {
		slidesToShow = 1
	}
	return "translateX(" + formatNumber(float64(i)*-100/float64(slidesToShow)) + "%)"
}

// TransitionCSS formats a transition for transition-duration, or returns
// "" when there is none.
func TransitionCSS(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return formatNumber(d.Seconds()) + "s"
}

func formatNumber(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
