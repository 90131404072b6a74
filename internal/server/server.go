// Package server exposes the run engine over websockets. Each connection
// owns exactly one run: the engine stays single-threaded per game, with
// the connection goroutine driving every operation to completion before
// reading the next command.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/game"
)

// DefaultIdleTimeout disconnects clients that send nothing for this long.
const DefaultIdleTimeout = 5 * time.Minute

// Server hosts websocket runs.
type Server struct {
	addr        string
	cfg         game.Config
	catalog     *catalog.Catalog
	logger      *log.Logger
	clock       quartz.Clock
	idleTimeout time.Duration
	upgrader    websocket.Upgrader
}

// Option customises a Server.
type Option func(*Server)

// WithClock injects a clock, used by tests to control idle timeouts.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithIdleTimeout overrides the idle disconnect window.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) { s.idleTimeout = d }
}

// New creates a server that starts a fresh run per connection.
func New(addr string, cfg game.Config, cat *catalog.Catalog, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr:        addr,
		cfg:         cfg,
		catalog:     cat,
		logger:      logger.WithPrefix("server"),
		clock:       quartz.NewReal(),
		idleTimeout: DefaultIdleTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe runs the HTTP listener until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.logger.Info("listening", "addr", listener.Addr().String())

	httpServer := &http.Server{Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handlePlay upgrades the connection and hands it to a session.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(conn, s.cfg, s.catalog, s.logger, s.clock, s.idleTimeout)
	go sess.run()
}
