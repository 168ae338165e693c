// Package server hosts the arena HTTP/WebSocket process.
//
// It owns the transport boundary only: connection lifecycle, frame guards,
// and wire encoding. Gameplay state lives in the duel state store, which the
// server runs as a single background goroutine.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/cardspar/internal/duel/service"
	"github.com/louisbranch/cardspar/internal/platform/timeouts"
	"github.com/louisbranch/cardspar/internal/services/arena/wire"
)

const (
	maxFramePayloadBytes   = 16 * 1024
	maxFramesPerSecond     = 40
	maxDecodeErrorsPerConn = 3

	// sessionOutboxSize bounds per-connection outbound buffering so a slow
	// reader can never block the state store.
	sessionOutboxSize = 64

	// sessionReadyTimeout bounds how long a connection waits for the store
	// to assign it a player id before giving up.
	sessionReadyTimeout = 10 * time.Second
)

// Config defines the inputs for the arena transport boundary.
type Config struct {
	HTTPAddr          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the arena HTTP/WebSocket process.
//
// It runs the duel state store in a dedicated goroutine and bridges each
// WebSocket connection to it through a session actor.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	storeDone       chan struct{}
	storeStop       context.CancelFunc
}

// NewServer builds an arena server from config without binding sockets.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("HTTP address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	store := service.NewStore(wire.DecodeInbound)
	storeCtx, storeStop := context.WithCancel(context.Background())
	storeDone := make(chan struct{})
	go func() {
		defer close(storeDone)
		store.Run(storeCtx)
	}()

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           NewHandler(store),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	return &Server{
		httpAddr:        httpAddr,
		shutdownTimeout: config.ShutdownTimeout,
		httpServer:      httpServer,
		storeDone:       storeDone,
		storeStop:       storeStop,
	}, nil
}

// Run creates and serves an arena server until the context ends.
//
// Operators can treat this as the lifecycle boundary for the real-time
// surface.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init arena server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve arena: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("arena server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("arena server listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources and stops the state store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.storeStop != nil {
		s.storeStop()
	}
	if s.storeDone != nil {
		<-s.storeDone
	}
}
