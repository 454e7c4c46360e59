package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name         string
		index        int
		offset       float64
		slideWidth   float64
		slidesToShow int
		want         string
	}{
		{"measured", 3, 0, 100, 2, "translateX(-300px)"},
		{"measured with drag", 3, 25, 100, 2, "translateX(-275px)"},
		{"measured fractional", 1, -0.5, 120.25, 1, "translateX(-120.75px)"},
		{"unmeasured", 3, 0, 0, 2, "translateX(-150%)"},
		{"unmeasured ignores drag", 1, 40, 0, 1, "translateX(-100%)"},
		{"origin has no sign", 0, 0, 0, 1, "translateX(0%)"},
		{"origin measured", 0, 0, 80, 4, "translateX(0px)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.index, tt.offset, tt.slideWidth, tt.slidesToShow))
		})
	}
}

func TestTranslate_FormsAgreeOnceMeasured(t *testing.T) {
	// A viewport of 400px showing 4 slides has 100px slides, so track
	// index 6 sits at -600px which is -150% of the 400px viewport.
	assert.Equal(t, "translateX(-600px)", Translate(6, 0, 100, 4))
	assert.Equal(t, "translateX(-150%)", Translate(6, 0, 0, 4))
}

func TestTransitionCSS(t *testing.T) {
	assert.Equal(t, "0.5s", TransitionCSS(DefaultTransition))
	assert.Equal(t, "1.5s", TransitionCSS(1500*time.Millisecond))
	assert.Equal(t, "", TransitionCSS(0))
	assert.Equal(t, "", TransitionCSS(-time.Second))
}
