package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/slider/pkg/scheduler"
)

type navHarness struct {
	nav     *Navigator
	clock   *scheduler.Virtual
	changes []int
	updates int
}

func newNavHarness(cfg Config, count int) *navHarness {
	h := &navHarness{clock: scheduler.NewVirtual()}
	h.nav = NewNavigator(cfg, count, h.clock, NavigatorHooks{
		Update:      func() { h.updates++ },
		SlideChange: func(i int) { h.changes = append(h.changes, i) },
	})
	return h
}

func TestNavigator_WrapForward(t *testing.T) {
	h := newNavHarness(Config{SlidesToShow: 2, SlidesToScroll: 1}, 7)

	require.True(t, h.nav.GoTo(7))
	st := h.nav.State()
	assert.Equal(t, 7, st.CurrentSlide, "mirror index is shown first")
	assert.True(t, st.Locked)
	assert.Equal(t, DefaultTransition, st.Transition)
	assert.Equal(t, PhaseWrapping, h.nav.Phase())
	assert.Equal(t, []int{0}, h.changes)

	h.clock.Advance(SettleDelay - time.Millisecond)
	assert.Equal(t, 7, h.nav.State().CurrentSlide)

	h.clock.Advance(time.Millisecond)
	st = h.nav.State()
	assert.Equal(t, 0, st.CurrentSlide)
	assert.Zero(t, st.Transition)
	assert.True(t, st.Locked)
	assert.Equal(t, PhaseSnapping, h.nav.Phase())

	h.clock.Advance(FollowUpDelay)
	st = h.nav.State()
	assert.Equal(t, 0, st.CurrentSlide)
	assert.False(t, st.Locked)
	assert.Equal(t, DefaultTransition, st.Transition)
	assert.Equal(t, PhaseIdle, h.nav.Phase())
	assert.Equal(t, []int{0}, h.changes, "the snap back does not notify")
	assert.Zero(t, h.clock.Pending())
}

func TestNavigator_WrapBackward(t *testing.T) {
	h := newNavHarness(Config{SlidesToShow: 2}, 7)

	require.True(t, h.nav.Prev())
	assert.Equal(t, -2, h.nav.State().CurrentSlide)
	assert.Equal(t, []int{5}, h.changes)

	h.clock.Advance(SettleDelay + FollowUpDelay)
	assert.Equal(t, 5, h.nav.State().CurrentSlide)
	assert.False(t, h.nav.State().Locked)
}

func TestNavigator_FiniteClamps(t *testing.T) {
	h := newNavHarness(Config{SlidesToShow: 2, SlidesToScroll: 1, Finite: true}, 7)

	require.Equal(t, 6, h.nav.LastSlide())

	require.True(t, h.nav.GoTo(7))
	assert.Equal(t, 6, h.nav.State().CurrentSlide)
	assert.Equal(t, []int{6}, h.changes)
	assert.Equal(t, PhaseSettling, h.nav.Phase())

	h.clock.Advance(SettleDelay)
	assert.False(t, h.nav.State().Locked, "finite clamps unlock after the settle delay only")
	assert.Equal(t, DefaultTransition, h.nav.State().Transition)

	require.True(t, h.nav.GoTo(-3))
	assert.Equal(t, 0, h.nav.State().CurrentSlide)
	assert.Equal(t, []int{6, 0}, h.changes)
}

func TestNavigator_LockDropsRequests(t *testing.T) {
	h := newNavHarness(Config{}, 7)

	assert.True(t, h.nav.Next())
	assert.False(t, h.nav.Next())
	assert.False(t, h.nav.GoTo(4))
	assert.Equal(t, 1, h.nav.State().CurrentSlide)
	assert.Equal(t, []int{1}, h.changes)

	h.clock.Advance(SettleDelay)
	assert.True(t, h.nav.Next())
	assert.Equal(t, []int{1, 2}, h.changes)
}

func TestNavigator_GoToCurrentBoundary(t *testing.T) {
	h := newNavHarness(Config{SlidesToShow: 2, SlidesToScroll: 1, InitialSlide: 6}, 7)
	require.Equal(t, 6, h.nav.LastSlide())

	require.True(t, h.nav.GoTo(6))
	assert.True(t, h.nav.State().Locked)
	h.clock.Advance(SettleDelay)
	assert.False(t, h.nav.State().Locked)

	require.True(t, h.nav.GoTo(6))
	assert.True(t, h.nav.State().Locked)
	assert.Equal(t, 6, h.nav.State().CurrentSlide)
	assert.Equal(t, []int{6, 6}, h.changes)
}

func TestNavigator_RoundsUpToScrollStep(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		count       int
		target      int
		wantCurrent int
	}{
		{"aligned", Config{SlidesToShow: 2}, 7, 2, 2},
		{"rounded up", Config{SlidesToShow: 2}, 7, 3, 4},
		{"past last clamps", Config{SlidesToShow: 2}, 7, 6, 5},
		{"rounding may pass last", Config{SlidesToShow: 3}, 8, 4, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newNavHarness(tt.cfg, tt.count)
			require.True(t, h.nav.GoTo(tt.target))
			assert.Equal(t, tt.wantCurrent, h.nav.State().CurrentSlide)
			assert.Equal(t, []int{tt.wantCurrent}, h.changes)
		})
	}
}

func TestNavigator_NotNavigable(t *testing.T) {
	h := newNavHarness(Config{SlidesToShow: 3}, 3)

	assert.False(t, h.nav.Navigable())
	assert.False(t, h.nav.GoTo(1))
	assert.False(t, h.nav.Next())
	assert.Empty(t, h.changes)
	assert.Zero(t, h.updates)
}

func TestNavigator_Retreat(t *testing.T) {
	t.Run("from last page never overshoots", func(t *testing.T) {
		h := newNavHarness(Config{SlidesToShow: 5, InitialSlide: 2}, 7)
		require.True(t, h.nav.Retreat())
		assert.Equal(t, 0, h.nav.State().CurrentSlide)
	})

	t.Run("prev from last page wraps", func(t *testing.T) {
		h := newNavHarness(Config{SlidesToShow: 5, InitialSlide: 2}, 7)
		require.True(t, h.nav.Prev())
		assert.Equal(t, -5, h.nav.State().CurrentSlide)
		assert.Equal(t, []int{2}, h.changes)
	})

	t.Run("from the middle", func(t *testing.T) {
		h := newNavHarness(Config{SlidesToShow: 2, InitialSlide: 4}, 7)
		require.True(t, h.nav.Retreat())
		assert.Equal(t, 2, h.nav.State().CurrentSlide)
	})

	t.Run("from first slide wraps", func(t *testing.T) {
		h := newNavHarness(Config{}, 7)
		require.True(t, h.nav.Retreat())
		assert.Equal(t, -1, h.nav.State().CurrentSlide)
		assert.Equal(t, []int{6}, h.changes)
	})
}

func TestNavigator_Autoplay(t *testing.T) {
	h := newNavHarness(Config{AutoplayTimeout: time.Second}, 4)

	h.clock.Advance(time.Second)
	assert.Equal(t, 1, h.nav.State().CurrentSlide)

	h.clock.Advance(time.Second)
	assert.Equal(t, 2, h.nav.State().CurrentSlide)

	// A manual navigation restarts the countdown
	h.clock.Advance(600 * time.Millisecond)
	require.True(t, h.nav.GoTo(0))
	h.clock.Advance(900 * time.Millisecond)
	assert.Equal(t, 0, h.nav.State().CurrentSlide)
	h.clock.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, h.nav.State().CurrentSlide)

	assert.Equal(t, []int{1, 2, 0, 1}, h.changes)
}

func TestNavigator_AutoplayRetriesWhileLocked(t *testing.T) {
	h := newNavHarness(Config{AutoplayTimeout: 300 * time.Millisecond}, 4)

	h.clock.Advance(300 * time.Millisecond)
	require.Equal(t, 1, h.nav.State().CurrentSlide)

	// Ticks at 600ms while still locked; the retry at 900ms is accepted
	h.clock.Advance(300 * time.Millisecond)
	assert.Equal(t, 1, h.nav.State().CurrentSlide)
	h.clock.Advance(300 * time.Millisecond)
	assert.Equal(t, 2, h.nav.State().CurrentSlide)
}

func TestNavigator_ReconfigureAutoplay(t *testing.T) {
	h := newNavHarness(Config{}, 4)
	h.clock.Advance(10 * time.Second)
	require.Empty(t, h.changes)

	h.nav.Reconfigure(Config{AutoplayTimeout: time.Second})
	h.clock.Advance(time.Second)
	assert.Equal(t, []int{1}, h.changes)

	h.nav.Reconfigure(Config{})
	h.clock.Advance(10 * time.Second)
	assert.Equal(t, []int{1}, h.changes)
	assert.Zero(t, h.clock.Pending())
}

func TestNavigator_Realign(t *testing.T) {
	h := newNavHarness(Config{InitialSlide: 3}, 7)

	h.nav.Realign(3)
	assert.Zero(t, h.nav.State().Transition)
	assert.Equal(t, 3, h.nav.State().CurrentSlide)
	assert.False(t, h.nav.State().Locked)

	// A newer realignment replaces the pending restore
	h.clock.Advance(300 * time.Millisecond)
	h.nav.Realign(3)
	h.clock.Advance(300 * time.Millisecond)
	assert.Zero(t, h.nav.State().Transition)
	h.clock.Advance(200 * time.Millisecond)
	assert.Equal(t, DefaultTransition, h.nav.State().Transition)

	assert.Empty(t, h.changes, "realignment never notifies")
}

func TestNavigator_RealignSkippedWhileLocked(t *testing.T) {
	h := newNavHarness(Config{}, 7)
	require.True(t, h.nav.Next())

	h.nav.Realign(0)
	assert.Equal(t, 1, h.nav.State().CurrentSlide)
	assert.Equal(t, DefaultTransition, h.nav.State().Transition)
}

func TestNavigator_NavigationCancelsRealign(t *testing.T) {
	h := newNavHarness(Config{}, 7)
	h.nav.Realign(0)
	require.Zero(t, h.nav.State().Transition)

	require.True(t, h.nav.Next())
	assert.Equal(t, DefaultTransition, h.nav.State().Transition)
	assert.Equal(t, 1, h.clock.Pending(), "only the settle timer remains")
}

func TestNavigator_Drag(t *testing.T) {
	h := newNavHarness(Config{}, 7)

	h.nav.BeginDrag()
	assert.Zero(t, h.nav.State().Transition)
	h.nav.EndDrag()
	assert.Equal(t, DefaultTransition, h.nav.State().Transition)

	// A drag released mid snap-back leaves the restore to the snap
	require.True(t, h.nav.GoTo(7))
	h.clock.Advance(SettleDelay)
	require.Equal(t, PhaseSnapping, h.nav.Phase())
	h.nav.BeginDrag()
	h.nav.EndDrag()
	assert.Zero(t, h.nav.State().Transition)

	h.clock.Advance(FollowUpDelay)
	assert.Equal(t, DefaultTransition, h.nav.State().Transition)
	assert.False(t, h.nav.State().Locked)
}

func TestNavigator_SetSlideCount(t *testing.T) {
	h := newNavHarness(Config{InitialSlide: 5}, 7)

	h.nav.SetSlideCount(4)
	assert.Equal(t, 3, h.nav.State().CurrentSlide)
	assert.Zero(t, h.nav.State().Transition)
	assert.Equal(t, 3, h.nav.LastSlide())

	h.nav.SetSlideCount(10)
	assert.Equal(t, 3, h.nav.State().CurrentSlide)
}

func TestNavigator_SlideCountShrinksDuringWrap(t *testing.T) {
	h := newNavHarness(Config{SlidesToShow: 2, SlidesToScroll: 1}, 7)

	require.True(t, h.nav.Prev())
	assert.Equal(t, []int{6}, h.changes)
	h.nav.SetSlideCount(3)
	assert.Equal(t, -1, h.nav.State().CurrentSlide, "no realign while locked")

	h.clock.Advance(SettleDelay + FollowUpDelay)
	st := h.nav.State()
	assert.Equal(t, 2, st.CurrentSlide)
	assert.Equal(t, h.nav.LastSlide(), st.CurrentSlide)
	assert.False(t, st.Locked)
}

func TestNavigator_SlideCountShrinksDuringSettle(t *testing.T) {
	h := newNavHarness(Config{SlidesToScroll: 1}, 7)

	require.True(t, h.nav.GoTo(5))
	h.nav.SetSlideCount(3)
	assert.Equal(t, 5, h.nav.State().CurrentSlide)

	h.clock.Advance(SettleDelay)
	st := h.nav.State()
	assert.Equal(t, 2, st.CurrentSlide)
	assert.False(t, st.Locked)
	assert.Zero(t, st.Transition)

	h.clock.Advance(SettleDelay)
	assert.Equal(t, DefaultTransition, h.nav.State().Transition)
}

func TestNavigator_Close(t *testing.T) {
	h := newNavHarness(Config{AutoplayTimeout: time.Second}, 7)
	require.True(t, h.nav.GoTo(7))

	h.nav.Close()
	assert.Zero(t, h.clock.Pending())
	h.clock.Advance(time.Minute)

	assert.Equal(t, 7, h.nav.State().CurrentSlide)
	assert.False(t, h.nav.GoTo(2))
	assert.Equal(t, []int{0}, h.changes)
}
