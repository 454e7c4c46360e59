package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/recera/slider/pkg/carousel"
)

const (
	fps          = 60
	defaultWidth = 80
)

// frameMsg advances the track animation by one frame
type frameMsg struct{}

// ReloadMsg replaces the slides and configuration of a running preview
type ReloadMsg struct {
	Title  string
	Config carousel.Config
	Slides []string
}

// Model is a terminal carousel. The bubbletea Update loop is the
// carousel's timeline: timers, key presses and mouse drags all arrive as
// messages.
type Model struct {
	ctrl   *carousel.Controller[string]
	timers *teaTimers
	view   *carousel.Measured
	resize *carousel.ResizeNotifier

	keys KeyMap
	help help.Model
	dots paginator.Model

	// Track position in columns, animated toward the carousel transform
	spring    harmonica.Spring
	pos, vel  float64
	animating bool

	// Layout
	width int
	vw    int
	cw    int

	title    string
	status   string
	err      error
	quitting bool
}

// NewModel creates a preview of slides
func NewModel(title string, cfg carousel.Config, slides []string) (*Model, error) {
	m := &Model{
		timers: newTeaTimers(),
		view:   &carousel.Measured{},
		resize: carousel.NewResizeNotifier(),
		keys:   DefaultKeyMap,
		help:   help.New(),
		dots:   paginator.New(),
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
		width:  defaultWidth,
		title:  title,
	}
	m.dots.Type = paginator.Dots
	m.dots.PerPage = 1
	m.dots.ActiveDot = activeSlideStyle.Render("●")
	m.dots.InactiveDot = mutedStyle.Render("○")

	ctrl, err := carousel.New(cfg, slides,
		carousel.WithTimers(m.timers),
		carousel.WithViewport(m.view),
		carousel.WithResizeSource(m.resize),
		carousel.WithSlideChange(func(i int) {
			m.status = fmt.Sprintf("Slide %d of %d", i+1, len(m.ctrl.Slides()))
		}),
	)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.layout()
	m.pos = m.target(ctrl.Snapshot())
	m.syncDots(ctrl.Snapshot())
	return m, nil
}

// Controller exposes the carousel driven by the preview
func (m *Model) Controller() *carousel.Controller[string] {
	return m.ctrl
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.timers.flush()...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.layout()
		m.resize.Notify()

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case timerMsg:
		m.timers.fire(msg.id)

	case frameMsg:
		m.animating = false
		if cmd := m.step(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ReloadMsg:
		m.reload(msg)
	}

	if m.quitting {
		return m, tea.Batch(cmds...)
	}
	cmds = append(cmds, m.timers.flush()...)
	if cmd := m.sync(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.ctrl.Close()
		return tea.Quit

	case key.Matches(msg, m.keys.Prev):
		m.ctrl.Retreat()

	case key.Matches(msg, m.keys.Next):
		m.ctrl.Next()

	case key.Matches(msg, m.keys.First):
		m.ctrl.GoTo(0)

	case key.Matches(msg, m.keys.Last):
		m.ctrl.GoTo(len(m.ctrl.Slides()) - 1)

	case key.Matches(msg, m.keys.Page):
		m.ctrl.DotClick(int(msg.String()[0] - '1'))

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// handleMouse maps left-button drags on the track to gestures and clicks
// on the arrows to navigation
func (m *Model) handleMouse(msg tea.MouseMsg) {
	ev := carousel.PointerEvent{
		Kind: carousel.PointerMouse,
		X:    float64(msg.X),
		Y:    float64(msg.Y),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y < trackTop || msg.Y >= trackTop+cellHeight {
			return
		}
		switch {
		case msg.X < arrowWidth:
			m.ctrl.Retreat()
		case msg.X >= arrowWidth+m.vw:
			m.ctrl.Next()
		default:
			m.ctrl.PointerDown(ev)
		}

	case tea.MouseActionMotion:
		m.ctrl.PointerMove(ev)

	case tea.MouseActionRelease:
		m.ctrl.PointerUp(carousel.PointerMouse)
	}
}

func (m *Model) reload(msg ReloadMsg) {
	if msg.Title != "" {
		m.title = msg.Title
	}
	m.ctrl.SetSlides(msg.Slides)
	if err := m.ctrl.Reconfigure(msg.Config); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("Reloaded %d slides", len(msg.Slides))
	m.layout()
	m.resize.Notify()
}

// layout splits the terminal width into slide cells
func (m *Model) layout() {
	show := m.ctrl.Config().SlidesToShow
	avail := max(m.width-2*arrowWidth, show)
	m.cw = max(avail/show, 1)
	m.vw = m.cw * show
	*m.view = carousel.Measured{
		Viewport: float64(m.vw),
		Slide:    float64(m.cw),
		Height:   cellHeight,
	}
}

// target is the track position the carousel asks for, in columns. A
// track narrower than the viewport is centered.
func (m *Model) target(snap carousel.Snapshot) float64 {
	if !snap.Navigable {
		return float64(max(m.vw-snap.TrackLength*m.cw, 0) / 2)
	}
	return -float64(snap.RenderIndex*m.cw) + snap.Offset
}

// sync follows the carousel after a message: without a transition the
// track jumps, otherwise the spring animation is started
func (m *Model) sync() tea.Cmd {
	snap := m.ctrl.Snapshot()
	m.syncDots(snap)

	target := m.target(snap)
	if snap.Transition == 0 {
		m.pos, m.vel = target, 0
		return nil
	}
	if m.animating || m.settled(target) {
		return nil
	}
	m.animating = true
	return frame()
}

// step advances the spring by one frame
func (m *Model) step() tea.Cmd {
	target := m.target(m.ctrl.Snapshot())
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, target)
	if m.settled(target) {
		m.pos, m.vel = target, 0
		return nil
	}
	m.animating = true
	return frame()
}

func (m *Model) settled(target float64) bool {
	return math.Abs(m.pos-target) < 0.5 && math.Abs(m.vel) < 0.5
}

func (m *Model) syncDots(snap carousel.Snapshot) {
	m.dots.SetTotalPages(len(snap.Dots))
	for _, d := range snap.Dots {
		if d.Active {
			m.dots.Page = d.Index
			break
		}
	}
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// Run starts the preview on the terminal and applies every message
// received on reloads until the user quits.
func Run(title string, cfg carousel.Config, slides []string, reloads <-chan ReloadMsg) error {
	m, err := NewModel(title, cfg, slides)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if reloads != nil {
		go func() {
			for msg := range reloads {
				p.Send(msg)
			}
		}()
	}
	_, err = p.Run()
	return err
}

var _ tea.Model = (*Model)(nil)
