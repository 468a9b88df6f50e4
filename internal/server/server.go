package server

import (
	"context"
	"net/http"
	"time"

	"github.com/mverhaeg/permcalc/internal/logging"
)

// Server serves the metrics and health endpoints.
type Server struct {
	metrics    *Metrics
	logger     logging.Logger
	security   SecurityConfig
	httpServer *http.Server
}

// New creates a Server listening on addr with the default security policy.
func New(addr string, logger logging.Logger) *Server {
	s := &Server{
		metrics:  NewMetrics(),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.handleHealth))
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start runs the HTTP server until it is shut down. It returns nil when the
// server was closed by Shutdown.
func (s *Server) Start() error {
	s.logger.Info("metrics server listening", logging.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// metricsMiddleware tracks active and total request counts around next.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition endpoint. Only GET is
// allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		if s.logger != nil {
			s.logger.Debug("rejected metrics request",
				logging.String("method", r.Method),
				logging.String("remote", r.RemoteAddr))
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports process liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
