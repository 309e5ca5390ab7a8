// Package http serves the prediction form and the JSON API around the
// inference pipeline.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Server HTTP server
type Server struct {
	server *http.Server
	config ServerConfig
	hub    *Hub
}

// ServerConfig server configuration
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
}

// DefaultServerConfig returns the default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           8080,
		Timeout:        30 * time.Second,
		MaxBodyBytes:   1 << 20,
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates the HTTP server with all routes and middleware wired.
func NewServer(config ServerConfig) *Server {
	mux := http.NewServeMux()

	RegisterHandlers(mux)

	h := NewHub()
	SetHub(h)
	mux.HandleFunc("GET /api/ws/predictions", h.HandleWebSocket)

	chain := Chain(
		RecoveryMiddleware,
		LoggerMiddleware,
		SecurityHeadersMiddleware,
		CORSMiddleware(config.AllowedOrigins),
		RequestSizeMiddleware(config.MaxBodyBytes),
	)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      chain(mux),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		hub:    h,
	}
}

// Start runs the server until Stop is called.
func (s *Server) Start() error {
	go s.hub.Run()
	logger.Sugar().Infof("Starting HTTP server on %s", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.hub.Stop()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the server address.
func (s *Server) Addr() string {
	return s.server.Addr
}
