// Package http serves the applicant form and the prediction endpoints.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server is the HTTP front end of the assessor.
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig holds listener settings.
type ServerConfig struct {
	Port         int
	Timeout      time.Duration
	MaxBodyBytes int64
}

// DefaultServerConfig mirrors the defaults in config.Default.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         8080,
		Timeout:      15 * time.Second,
		MaxBodyBytes: 64 << 10,
	}
}

// NewServer wires the handler routes behind the middleware chain.
func NewServer(config ServerConfig, handler *Handler, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	handler.Register(mux)

	chain := serverChain(config, logger)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      chain(mux),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		logger: logger,
	}
}

// Start blocks serving until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests for up to five seconds.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down http server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Handler returns the wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// serverChain orders the middlewares. The logger is outermost so that
// recovered panics are logged with their request id and status.
func serverChain(config ServerConfig, logger *zap.Logger) Middleware {
	return Chain(
		LoggerMiddleware(logger),
		RecoveryMiddleware(logger),
		SecurityHeadersMiddleware,
		RequestSizeMiddleware(config.MaxBodyBytes),
	)
}
