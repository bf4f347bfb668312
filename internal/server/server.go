package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmcnair/carehub/internal/app"
	"github.com/jmcnair/carehub/internal/common"
)

// Server wraps the HTTP server and application context.
type Server struct {
	app        *app.App
	httpServer *http.Server
	logger     *common.Logger
}

// NewServer creates a new HTTP server for the application.
func NewServer(a *app.App) *Server {
	s := &Server{
		app:    a,
		logger: a.Logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := applyMiddleware(mux,
		s.recoveryMiddleware,
		s.corsMiddleware,
		s.correlationIDMiddleware,
		s.bearerTokenMiddleware,
		s.loggingMiddleware,
	)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler returns the fully-wrapped HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for HTTP requests. It blocks until the server
// stops, returning nil on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.httpServer.Addr).
		Msg("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, draining in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
