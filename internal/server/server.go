// Package server answers hand evaluation and equity requests over
// websockets.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/pokereval/internal/config"
	"github.com/lox/pokereval/poker"
)

// Config controls the server.
type Config struct {
	Addr         string
	ReadLimit    int64
	WriteTimeout time.Duration
	PongWait     time.Duration

	// Equity requests
	Workers    int
	Samples    int // default and upper bound per request
	SimTimeout time.Duration

	Clock quartz.Clock
}

// ConfigFrom converts loaded settings.
func ConfigFrom(c *config.Config) (Config, error) {
	writeTimeout, err := c.Server.WriteTimeoutDuration()
	if err != nil {
		return Config{}, err
	}
	simTimeout, err := c.Simulation.TimeoutDuration()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Addr:         c.Server.Address,
		ReadLimit:    c.Server.ReadLimit,
		WriteTimeout: writeTimeout,
		Workers:      c.Workers,
		Samples:      c.Simulation.Samples,
		SimTimeout:   simTimeout,
	}, nil
}

// Server is the websocket evaluation server.
type Server struct {
	config   Config
	tables   *poker.Tables
	games    map[poker.Variant]poker.Game
	upgrader websocket.Upgrader
	logger   *log.Logger
	mux      *http.ServeMux

	mu          sync.Mutex
	connections map[*Connection]struct{}
}

// New creates a server. Variants whose tables are missing from tables are
// rejected per request rather than at startup.
func New(config Config, tables *poker.Tables, logger *log.Logger) *Server {
	if config.ReadLimit <= 0 {
		config.ReadLimit = 64 << 10
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 10 * time.Second
	}
	if config.PongWait <= 0 {
		config.PongWait = defaultPongWait
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Samples <= 0 {
		config.Samples = 10000
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}

	s := &Server{
		config: config,
		tables: tables,
		games:  make(map[poker.Variant]poker.Game, len(poker.Variants)),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("server"),
		mux:         http.NewServeMux(),
		connections: make(map[*Connection]struct{}),
	}
	for _, v := range poker.Variants {
		g, err := poker.NewGame(v, tables)
		if err != nil {
			s.logger.Warn("Variant unavailable", "variant", v, "error", err)
			continue
		}
		s.games[v] = g
	}

	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is cancelled, then closes every
// connection and shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("Starting evaluation server", "addr", s.config.Addr, "variants", len(s.games))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close closes all open connections.
func (s *Server) Close() {
	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close() // Ignore close errors during shutdown
	}
}

// ConnectionCount returns the number of open websocket connections.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Debug("Client connected", "total", total)
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	delete(s.connections, conn)
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Debug("Client disconnected", "total", total)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s)
	s.register(conn)
	conn.Start()

	go func() {
		<-conn.Done()
		s.unregister(conn)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
