// Package api provides the HTTP REST API server for bureaulens.
//
// It exposes endpoints for per-customer bureau reports, findings, and
// feature vectors, plus a bounded batch endpoint. All responses are
// deterministic functions of the underlying datasets, so successful
// responses are cached for a short TTL.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gocache "github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/seenimoa/bureaulens/internal/bureau"
	"github.com/seenimoa/bureaulens/internal/config"
	"github.com/seenimoa/bureaulens/internal/store"
)

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	builder *bureau.Builder
	data    *bureau.Data
	store   store.Store
	cache   *gocache.Cache
	cron    *cron.Cron
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) (*Server, error) {
	data := bureau.Open(cfg.Data.TradelineFile, cfg.Data.FeaturesFile)

	var st store.Store = store.Noop{}
	if cfg.Store.Enabled {
		sq, err := store.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("report store setup failed: %w", err)
		}
		st = sq
	}

	ttl := time.Duration(cfg.API.CacheTTLSecs) * time.Second
	s := &Server{
		cfg:     cfg,
		builder: bureau.NewBuilder(data),
		data:    data,
		store:   st,
		cache:   gocache.New(ttl, 2*ttl),
	}
	s.router = s.buildRouter()

	if cfg.Data.RefreshSchedule != "" {
		s.cron = cron.New()
		_, err := s.cron.AddFunc(cfg.Data.RefreshSchedule, s.refreshData)
		if err != nil {
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", cfg.Data.RefreshSchedule, err)
		}
	}

	return s, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// refreshData re-reads the datasets and drops the response cache.
func (s *Server) refreshData() {
	if err := s.data.Refresh(); err != nil {
		log.WithError(err).Error("scheduled dataset refresh failed")
		return
	}
	s.cache.Flush()
	log.Info("datasets refreshed")
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.cron != nil {
		s.cron.Start()
		defer s.cron.Stop()
	}
	defer s.store.Close()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("addr", addr).Info("API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/customers/{id}", func(r chi.Router) {
			r.Get("/report", s.handleReport)
			r.Get("/findings", s.handleFindings)
			r.Get("/features", s.handleFeatures)
		})

		r.Post("/reports/batch", s.handleBatchReports)
	})

	return r
}
