package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResizeNotifier(t *testing.T) {
	r := NewResizeNotifier()

	var calls []string
	unsubA := r.Subscribe(func() { calls = append(calls, "a") })
	r.Subscribe(func() { calls = append(calls, "b") })
	assert.Equal(t, 2, r.Len())

	r.Notify()
	assert.Equal(t, []string{"a", "b"}, calls)

	unsubA()
	unsubA()
	assert.Equal(t, 1, r.Len())

	r.Notify()
	assert.Equal(t, []string{"a", "b", "b"}, calls)
}

func TestResizeNotifier_UnsubscribeDuringNotify(t *testing.T) {
	r := NewResizeNotifier()

	var unsub func()
	count := 0
	unsub = r.Subscribe(func() {
		count++
		unsub()
	})

	r.Notify()
	r.Notify()
	assert.Equal(t, 1, count)
	assert.Zero(t, r.Len())
}

func TestMeasured(t *testing.T) {
	var v Viewport = &Measured{Viewport: 320, Slide: 160, Height: 90}
	assert.Equal(t, 320.0, v.Width())
	assert.Equal(t, 160.0, v.SlideWidth())
	assert.Equal(t, 90.0, v.SlideHeight())
}
