package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

// Config holds configuration for the WebSocket server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// GameID names the mode in the score table.
	GameID string

	// Rocket is the simulation configuration every session starts from.
	Rocket config.RocketConfig

	// Width and Height size the arena until the client sends a resize.
	Width  float64
	Height float64

	// TickRate is the number of simulation steps (and snapshots) per second.
	TickRate int

	// Seed is the seed of the first run; each restart adds one.
	Seed uint64

	// MaxSessions caps concurrent connections. Zero means no cap.
	MaxSessions int

	// Store receives finished runs. May be nil.
	Store *storage.Store

	// Logger receives session events. Nil creates a stderr logger.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:     ":8080",
		GameID:      "rocket",
		Rocket:      config.DefaultRocketConfig(),
		Width:       800,
		Height:      600,
		TickRate:    60,
		Seed:        42,
		MaxSessions: 64,
	}
}

// Server upgrades /ws requests and runs one session per connection.
type Server struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	active   atomic.Int64
	nextID   atomic.Uint64
	quit     chan struct{}
	stopOnce sync.Once
}

// NewServer validates cfg and creates a server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("web: tick rate must be positive, got %d", cfg.TickRate)
	}
	if err := cfg.Rocket.Validate(); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	if cfg.GameID == "" {
		cfg.GameID = "rocket"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rocket-web",
		})
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		quit:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     sameOrigin,
		},
	}, nil
}

// sameOrigin accepts non-browser clients and pages served from this host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// Handler returns the HTTP routes: /ws for sessions, / for a status line.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "rocket: %d active sessions, connect to /ws\n", s.active.Load())
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if limit := s.cfg.MaxSessions; limit > 0 && s.active.Load() >= int64(limit) {
			http.Error(w, "too many sessions", http.StatusServiceUnavailable)
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		sess, err := newSession(s.nextID.Add(1), conn, s.cfg, s.logger)
		if err != nil {
			s.logger.Error("cannot start session", "remote", r.RemoteAddr, "error", err)
			conn.Close()
			return
		}

		s.active.Add(1)
		go func() {
			defer s.active.Add(-1)
			sess.run(s.quit)
		}()
	})

	return mux
}

// Close ends every running session. The HTTP listener is not touched.
func (s *Server) Close() {
	s.stopOnce.Do(func() { close(s.quit) })
}

// Active returns the number of running sessions.
func (s *Server) Active() int {
	return int(s.active.Load())
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
