package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"crypto-registry-service/internal/infrastructure/logging"
)

// Options configura el servidor HTTP; los timeouts en cero usan los defaults
type Options struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server encapsulates HTTP server configuration
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer creates a new server instance
func NewServer(handler http.Handler, opts Options) *Server {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 60 * time.Second
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           handler,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
		},
		port: opts.Port,
	}
}

// Start bloquea hasta que el servidor se detiene. Un Stop ordenado no es error.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(listener)
}

// Serve atiende sobre un listener ya abierto
func (s *Server) Serve(listener net.Listener) error {
	ctx := context.Background()

	logging.Info(ctx, "HTTP server starting", logging.Fields{
		"addr": listener.Addr().String(),
	})

	logging.Info(ctx, "Available endpoints", logging.Fields{
		"endpoints": []string{
			"GET    /health",
			"GET    /ready",
			"GET    /metrics",
			"GET    /swagger/index.html",
			"GET    /api/cryptocurrencies?offset=0&limit=10",
			"POST   /api/cryptocurrencies",
			"GET    /api/cryptocurrencies/{id}",
			"PUT    /api/cryptocurrencies/{id}",
			"DELETE /api/cryptocurrencies/{id}",
			"GET    /api/cryptocurrencies/{id}/price?currency=usd",
			"GET    /api/coins/{symbol}/platforms",
		},
	})

	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping HTTP server gracefully", logging.Fields{
		"port": s.port,
	})

	return s.httpServer.Shutdown(ctx)
}

// GetPort returns the configured port
func (s *Server) GetPort() int {
	return s.port
}
