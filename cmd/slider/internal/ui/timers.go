package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/slider/pkg/scheduler"
)

// timerMsg delivers an expired carousel timer back to Update
type timerMsg struct{ id int }

// teaTimers runs carousel timers on the bubbletea Update loop. AfterFunc
// queues a tick command that Update flushes; when the tick comes back as
// a timerMsg the callback runs unless the timer was stopped.
type teaTimers struct {
	next   int
	fns    map[int]func()
	queued []tea.Cmd
}

func newTeaTimers() *teaTimers {
	return &teaTimers{fns: make(map[int]func())}
}

func (t *teaTimers) AfterFunc(d time.Duration, fn func()) scheduler.Timer {
	id := t.next
	t.next++
	t.fns[id] = fn
	t.queued = append(t.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return &teaTimer{timers: t, id: id}
}

// fire runs the callback of timer id if it is still pending
func (t *teaTimers) fire(id int) {
	fn, ok := t.fns[id]
	if !ok {
		return
	}
	delete(t.fns, id)
	fn()
}

// flush hands the queued ticks to the runtime
func (t *teaTimers) flush() []tea.Cmd {
	cmds := t.queued
	t.queued = nil
	return cmds
}

type teaTimer struct {
	timers *teaTimers
	id     int
}

func (t *teaTimer) Stop() bool {
	_, ok := t.timers.fns[t.id]
	delete(t.timers.fns, t.id)
	return ok
}
