package live

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/recera/slider/pkg/carousel"
)

// LivePath is the websocket endpoint prefix; the session id follows it
const LivePath = "/slider/live/"

// ErrSessionNotFound is returned when addressing a session that is not
// connected
var ErrSessionNotFound = errors.New("session not found")

// Server serves the demo page and one live carousel per websocket session
type Server struct {
	upgrader websocket.Upgrader
	clock    clockwork.Clock
	title    string

	mu       sync.RWMutex
	cfg      carousel.Config
	slides   []string
	sessions map[string]*Session
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock behind every session's timers
func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithCheckOrigin overrides the websocket origin check
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(s *Server) { s.upgrader.CheckOrigin = check }
}

// WithTitle sets the page title
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// NewServer creates a server for slides rendered with cfg
func NewServer(cfg carousel.Config, slides []string, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("live server: %w", err)
	}
	s := &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clock:    clockwork.NewRealClock(),
		title:    "slider",
		cfg:      cfg,
		slides:   slices.Clone(slides),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler routes the page and the websocket endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.HandlePage)
	mux.HandleFunc("GET "+LivePath+"{session}", s.HandleWebSocket)
	return mux
}

// HandlePage renders the page with a fresh session id
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	cfg, slides := s.content()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderPage(w, s.title, generateSessionID(), cfg, slides); err != nil {
		log.Printf("[Live Server] Failed to render page: %v", err)
	}
}

// HandleWebSocket upgrades the connection and runs its session
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session")
	if sessionID == "" {
		http.Error(w, "Session ID required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Live Server] Failed to upgrade connection: %v", err)
		return
	}

	session, err := s.openSession(sessionID, conn)
	if err != nil {
		log.Printf("[Live Server] Failed to open session %s: %v", sessionID, err)
		conn.Close()
		return
	}

	go session.handleConnection()
}

// openSession starts a session, replacing one already using the id
func (s *Server) openSession(id string, conn *websocket.Conn) (*Session, error) {
	cfg, slides := s.content()
	session, err := newSession(id, conn, s, cfg, slides)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	old := s.sessions[id]
	s.sessions[id] = session
	s.mu.Unlock()

	if old != nil {
		log.Printf("[Live Session %s] Replaced by a new connection", id)
		old.Close()
	}
	return session, nil
}

// removeSession forgets session unless it was already replaced
func (s *Server) removeSession(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[session.ID] == session {
		delete(s.sessions, session.ID)
	}
}

// GetSession retrieves a session by ID
func (s *Server) GetSession(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Dispatch applies msg to a session as if its browser had sent it
func (s *Server) Dispatch(sessionID string, msg ClientMessage) error {
	session, ok := s.GetSession(sessionID)
	if !ok {
		return fmt.Errorf("dispatch %s: %w", sessionID, ErrSessionNotFound)
	}
	if !session.post(msg) {
		return fmt.Errorf("dispatch %s: %w", sessionID, ErrSessionNotFound)
	}
	return nil
}

// Update swaps the config and slides of the page and of every session
func (s *Server) Update(cfg carousel.Config, slides []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("live server: %w", err)
	}
	slides = slices.Clone(slides)

	s.mu.Lock()
	s.cfg, s.slides = cfg, slides
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.update(cfg, slides)
	}
	log.Printf("[Live Server] Updated %d session(s)", len(sessions))
	return nil
}

// Close ends every session
func (s *Server) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}

func (s *Server) content() (carousel.Config, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.slides
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session id: %v", err))
	}
	return hex.EncodeToString(b)
}
