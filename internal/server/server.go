// Package server exposes the derived-view API consumed by the dashboard
// variants. Every list endpoint accepts the shared filter, sort, and
// pagination query parameters and answers with one page plus totals.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/solomonneas/bro-hunter-sub000/internal/metrics"
	"github.com/solomonneas/bro-hunter-sub000/internal/query"
)

// Config configures the gateway HTTP server.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the gateway over the resource hub.
type Server struct {
	router *chi.Mux
	hub    *query.Hub
	logger *zap.Logger
	met    *metrics.Metrics
	srv    *http.Server
}

// New builds the gateway with its routes mounted.
func New(cfg Config, hub *query.Hub, gatherer prometheus.Gatherer, met *metrics.Metrics, logger *zap.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		hub:    hub,
		logger: logger.Named("gateway"),
		met:    met,
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/threats", s.handleThreats)
		r.Get("/threats/{entity}", s.handleThreatDetail)
		r.Get("/analysis/beacons", s.handleBeacons)
		r.Get("/analysis/dns-threats", s.handleDnsThreats)
		r.Get("/analysis/timeline", s.handleTimeline)
		r.Get("/analysis/severity-distribution", s.handleSeverityDistribution)
		r.Get("/analysis/dashboard", s.handleDashboard)
		r.Get("/indicators", s.handleIndicators)
		r.Get("/mitre", s.handleMitre)
		r.Get("/data/stats", s.handleLogStats)
	})

	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the mounted router, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.met.ObserveRequest(route, strconv.Itoa(ww.Status()), elapsed)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", elapsed),
		)
	})
}
