package live

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/recera/slider/pkg/carousel"
	"github.com/recera/slider/pkg/scheduler"
	"github.com/recera/slider/pkg/vango/vdom"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Session is one websocket connection driving its own carousel. The
// carousel, its render fiber and its measurements live on the session's
// scheduler loop; the read and write goroutines only exchange frames.
type Session struct {
	ID string

	conn   *websocket.Conn
	server *Server
	sched  *scheduler.Scheduler

	// loop owned
	ctrl   *carousel.Controller[string]
	fiber  *scheduler.Fiber
	view   *carousel.Measured
	resize *carousel.ResizeNotifier
	seq    uint64

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(id string, conn *websocket.Conn, srv *Server, cfg carousel.Config, slides []string) (*Session, error) {
	s := &Session{
		ID:     id,
		conn:   conn,
		server: srv,
		sched:  scheduler.NewScheduler(scheduler.WithClock(srv.clock)),
		view:   &carousel.Measured{},
		resize: carousel.NewResizeNotifier(),
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}

	// hello is queued before anything the loop produces
	s.sendFrame(ServerMessage{Type: MsgHello, Session: id})

	s.sched.SetDefaultErrorHandler(func(_ *scheduler.Fiber, err interface{}) bool {
		log.Printf("[Live Session %s] Loop error: %v", id, err)
		return true
	})
	s.sched.SetPatchApplier(func(*scheduler.Fiber, []vdom.Patch) {
		s.pushState()
	})
	s.sched.Start()

	var err error
	s.sched.Call(func() { err = s.mount(cfg, slides) })
	if err != nil {
		s.sched.Stop()
		return nil, err
	}
	return s, nil
}

// mount creates the carousel and its render fiber. Runs on the loop.
func (s *Session) mount(cfg carousel.Config, slides []string) error {
	ctrl, err := carousel.New(cfg, slides,
		carousel.WithTimers(s.sched),
		carousel.WithViewport(s.view),
		carousel.WithResizeSource(s.resize),
		carousel.WithRenderScheduler(s.sched),
		carousel.WithSlideChange(func(i int) {
			log.Printf("[Live Session %s] Slide changed to %d", s.ID, i)
		}),
	)
	if err != nil {
		return err
	}
	s.ctrl = ctrl

	// Markup stands in for state: a frame goes out only when the
	// rendered carousel changes.
	s.fiber = s.sched.CreateFiber(func() *vdom.VNode {
		return carousel.Render(ctrl, renderOptions)
	})
	ctrl.Signal().Subscribe(s.fiber)
	s.sched.MarkDirty(s.fiber)
	return nil
}

// post queues msg onto the loop
func (s *Session) post(msg ClientMessage) bool {
	return s.sched.Post(func() { s.apply(msg) })
}

// apply runs a client message against the carousel. Runs on the loop.
func (s *Session) apply(msg ClientMessage) {
	switch msg.Type {
	case MsgNext:
		s.ctrl.Next()
	case MsgPrev:
		s.ctrl.Retreat()
	case MsgGoTo:
		s.ctrl.GoTo(msg.Index)
	case MsgDot:
		s.ctrl.DotClick(msg.Index)
	case MsgPointerDown:
		s.ctrl.PointerDown(msg.PointerEvent())
	case MsgPointerMove:
		s.ctrl.PointerMove(msg.PointerEvent())
	case MsgPointerUp:
		s.ctrl.PointerUp(msg.PointerEvent().Kind)
	case MsgResize:
		*s.view = carousel.Measured{
			Viewport: msg.Width,
			Slide:    msg.SlideWidth,
			Height:   msg.SlideHeight,
		}
		s.resize.Notify()
		// Realignment is skipped while locked; the new widths still render
		s.sched.MarkDirty(s.fiber)
	}
}

// update swaps config and slides in place
func (s *Session) update(cfg carousel.Config, slides []string) {
	s.sched.Post(func() {
		s.ctrl.SetSlides(slides)
		if err := s.ctrl.Reconfigure(cfg); err != nil {
			log.Printf("[Live Session %s] Reconfigure failed: %v", s.ID, err)
		}
	})
}

// Snapshot returns the carousel state. It reports false once the session
// is closed.
func (s *Session) Snapshot() (carousel.Snapshot, bool) {
	var snap carousel.Snapshot
	ok := s.sched.Call(func() { snap = s.ctrl.Snapshot() })
	return snap, ok
}

// pushState sends the current state. Runs on the loop.
func (s *Session) pushState() {
	snap := s.ctrl.Snapshot()
	s.seq++
	s.sendFrame(ServerMessage{Type: MsgState, Seq: s.seq, State: &snap})
}

func (s *Session) sendFrame(msg ServerMessage) {
	data, err := EncodeServerMessage(msg)
	if err != nil {
		log.Printf("[Live Session %s] %v", s.ID, err)
		return
	}
	select {
	case <-s.done:
	case s.send <- data:
	default:
		log.Printf("[Live Session %s] Send buffer full, dropping %s frame", s.ID, msg.Type)
	}
}

// handleConnection reads frames until the connection fails
func (s *Session) handleConnection() {
	defer s.Close()

	go s.writer()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[Live Session %s] Unexpected close: %v", s.ID, err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(pongWait))

		if messageType != websocket.TextMessage {
			log.Printf("[Live Session %s] Ignoring binary frame of %d bytes", s.ID, len(data))
			continue
		}

		msg, err := DecodeClientMessage(data)
		if err != nil {
			log.Printf("[Live Session %s] Bad frame: %v", s.ID, err)
			s.sendFrame(ServerMessage{Type: MsgError, Error: err.Error()})
			continue
		}
		if !s.post(msg) {
			return
		}
	}
}

// writer owns all writes to the connection
func (s *Session) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[Live Session %s] Failed to write message: %v", s.ID, err)
				s.conn.Close()
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.conn.Close()
				return
			}

		case <-s.done:
			s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			s.conn.Close()
			return
		}
	}
}

// Close stops the carousel and its loop and closes the connection
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.sched.Call(func() {
			s.ctrl.Close()
			s.ctrl.Signal().Unsubscribe(s.fiber)
			s.sched.RemoveFiber(s.fiber)
		})
		s.sched.Stop()
		close(s.done)
		s.server.removeSession(s)
		log.Printf("[Live Session %s] Closed", s.ID)
	})
}
