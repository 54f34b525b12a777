// Package ops serves the operational HTTP surface: liveness, readiness and
// Prometheus metrics. Domain operations are not exposed over HTTP.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/clubhouse/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const (
	readyTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Pinger checks a dependency by round-tripping to it. *bun.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker reports the state of a long-lived connection.
type HealthChecker interface {
	Healthy() error
}

// Config configures the ops server.
type Config struct {
	Address        string
	RateLimit      float64
	RateLimitBurst int
}

// Server is the ops HTTP server.
type Server struct {
	server *http.Server
	db     Pinger
	bus    HealthChecker
	logger *slog.Logger
}

// NewServer builds the ops server. bus may be nil when the process runs on
// the in-memory bus.
func NewServer(cfg Config, db Pinger, bus HealthChecker, registry *prometheus.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{db: db, bus: bus, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.RateLimit > 0 {
		r.Use(ratelimit.Middleware(ratelimit.NewKeyedLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)))
	}

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	}

	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Ops server listening", slog.String("address", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("ops server failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ops server shutdown failed: %w", err)
	}
	return <-errCh
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := map[string]string{}
	ready := true

	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}
	if s.bus != nil {
		if err := s.bus.Healthy(); err != nil {
			checks["event_bus"] = err.Error()
			ready = false
		} else {
			checks["event_bus"] = "ok"
		}
	}

	if !ready {
		s.logger.WarnContext(ctx, "Readiness check failed", slog.Any("checks", checks))
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable", Checks: checks})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Checks: checks})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
