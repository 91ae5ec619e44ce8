// Package feed streams frame snapshots to renderers over WebSocket.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zeebo/xxh3"

	"github.com/zeusync/vrscene/internal/core/observability/log"
	"github.com/zeusync/vrscene/pkg/generic"
)

var (
	ErrServerRunning = errors.New("feed server is already running")
	ErrListenFailed  = errors.New("failed to create feed listener")
)

const (
	sendBuffer   = 16
	writeTimeout = 2 * time.Second
)

var hashBuffers = generic.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server pushes the latest snapshot to every connected client. Identical
// consecutive snapshots are sent once.
type Server struct {
	addr string
	log  log.Log

	mu       sync.Mutex
	clients  map[*client]struct{}
	latest   []byte
	lastHash uint64
	http     *http.Server
}

func NewServer(addr string, logger log.Log) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Server{
		addr:    addr,
		log:     logger.Named("feed"),
		clients: make(map[*client]struct{}),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", s.handleFeed)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.http != nil {
		s.mu.Unlock()
		return ErrServerRunning
	}
	s.http = &http.Server{Addr: s.addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	srv := s.http
	s.mu.Unlock()

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListenFailed, err)
	}
	s.log.Info("feed listening", log.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeClients()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Publish encodes snap and fans it out. It reports false when the payload is
// identical to the previous one.
func (s *Server) Publish(snap Snapshot) (bool, error) {
	// The frame number changes every frame; dedup on the scene content.
	buf := hashBuffers.Get()
	defer hashBuffers.Put(buf)
	if err := json.NewEncoder(buf).Encode(sceneContent{snap.PhysicsSpeed, snap.Laser, snap.Objects, snap.Events}); err != nil {
		return false, fmt.Errorf("encode snapshot %d: %w", snap.Frame, err)
	}
	hash := xxh3.Hash(buf.Bytes())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != nil && hash == s.lastHash {
		return false, nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return false, fmt.Errorf("encode snapshot %d: %w", snap.Frame, err)
	}
	s.latest, s.lastHash = payload, hash
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			s.log.Warn("dropping slow feed client", log.String("remote", c.conn.RemoteAddr().String()))
			s.dropLocked(c)
		}
	}
	return true, nil
}

type sceneContent struct {
	PhysicsSpeed float64
	Laser        [2]float64
	Objects      []Object
	Events       []Event
}

func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("feed upgrade failed", log.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.latest != nil {
		c.send <- s.latest
	}
	s.mu.Unlock()
	s.log.Debug("feed client connected", log.String("remote", conn.RemoteAddr().String()))

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop discards client messages and notices disconnects.
func (s *Server) readLoop(c *client) {
	defer func() {
		s.mu.Lock()
		s.dropLocked(c)
		s.mu.Unlock()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(c *client) {
	defer c.conn.Close()
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.log.Debug("feed write failed", log.Error(err))
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
}

func (s *Server) dropLocked(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		s.dropLocked(c)
	}
}
