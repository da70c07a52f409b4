// Package spectator streams a live match to websocket clients.
package spectator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/matchsim/internal/display"
	"github.com/lox/matchsim/internal/metrics"
	"github.com/lox/matchsim/tennis"
)

// Server is the websocket hub. It implements tennis.Observer so a Feed can
// publish match events to every connected spectator.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	metrics     *metrics.Manager
	clock       quartz.Clock
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc

	stateMu  sync.RWMutex
	matchID  string
	snapshot *tennis.Snapshot
}

// NewServer creates a hub and starts its connection loop
func NewServer(addr string, logger *log.Logger, m *metrics.Manager, clock quartz.Clock) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	if m == nil {
		m = metrics.NewManager()
	}

	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			// Spectating is read-only, any origin may watch
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("spectator"),
		metrics:     m,
		clock:       clock,
		ctx:         ctx,
		cancel:      cancel,
	}
	go s.run()
	return s
}

// Handler returns the HTTP routes served by the hub
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting spectator server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		_ = s.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// Stop disconnects every spectator and stops the hub
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
		delete(s.connections, conn)
		s.metrics.SpectatorDisconnected()
	}
	s.mu.Unlock()

	return nil
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			// Catch up before any broadcast can reach the new spectator
			if msg := s.snapshotMessage(); msg != nil {
				_ = conn.Send(msg)
			}
			s.metrics.SpectatorConnected()
			s.mu.Unlock()
			s.logger.Info("Spectator connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
				s.metrics.SpectatorDisconnected()
			}
			total := len(s.connections)
			s.mu.Unlock()
			if ok {
				_ = conn.Close()
				s.logger.Info("Spectator disconnected", "total", total)
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := newConnection(conn, s)
	select {
	case s.register <- client:
	case <-s.ctx.Done():
		_ = conn.Close()
		return
	}
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// handleSnapshot returns the latest match state as JSON
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.stateMu.RLock()
	snap := s.snapshot
	s.stateMu.RUnlock()

	if snap == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

// Spectators returns the number of connected clients
func (s *Server) Spectators() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// Broadcast sends a message to every spectator
func (s *Server) Broadcast(msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for conn := range s.connections {
		if err := conn.Send(msg); err != nil {
			s.logger.Debug("Failed to send message to spectator", "error", err)
		} else {
			count++
		}
	}

	s.logger.Debug("Broadcasted message", "type", msg.Type, "recipients", count)
}

// StartMatch announces a new match
func (s *Server) StartMatch(matchID string, seed int64, snap tennis.Snapshot) {
	s.setState(matchID, snap)
	s.publish(MessageTypeMatchStart, MatchStartData{MatchID: matchID, Seed: seed, Snapshot: snap})
}

// OnEvent implements tennis.Observer.
func (s *Server) OnEvent(e tennis.Event) {
	switch ev := e.(type) {
	case tennis.PointEvent:
		s.setState("", ev.Snapshot)
		s.publish(MessageTypePoint, PointData{Set: ev.Set, Game: ev.Game, Point: ev.Point, Snapshot: ev.Snapshot})
	case tennis.GameEvent:
		s.publish(MessageTypeGame, GameData{Set: ev.Set, Game: ev.Game, Record: ev.Record, Snapshot: ev.Snapshot})
	case tennis.SetEvent:
		s.setState("", ev.Snapshot)
		s.publish(MessageTypeSet, SetData{
			Set:      ev.Set,
			Score:    ev.Score,
			Summary:  display.FormatSet(ev),
			Snapshot: ev.Snapshot,
		})
	case tennis.MatchEvent:
		s.setState("", ev.Snapshot)
		s.publish(MessageTypeMatchEnd, MatchEndData{
			Winner:   ev.Snapshot.Players[ev.Winner].Name,
			Score:    ev.Snapshot.SetLine(),
			Summary:  display.FormatMatch(ev),
			Snapshot: ev.Snapshot,
		})
	}
}

func (s *Server) publish(t MessageType, data any) {
	msg, err := NewMessage(t, data, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to create message", "type", t, "error", err)
		return
	}
	s.Broadcast(msg)
}

func (s *Server) setState(matchID string, snap tennis.Snapshot) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if matchID != "" {
		s.matchID = matchID
	}
	s.snapshot = &snap
}

// snapshotMessage builds the catch-up message for a newly connected spectator
func (s *Server) snapshotMessage() *Message {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.snapshot == nil {
		return nil
	}

	msg, err := NewMessage(MessageTypeSnapshot, MatchStartData{MatchID: s.matchID, Snapshot: *s.snapshot}, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to create snapshot message", "error", err)
		return nil
	}
	return msg
}
