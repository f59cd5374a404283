// SPDX-License-Identifier: MIT

// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/internal/store"
	"github.com/katalvlaran/netxplore/pipeline"
)

// SourceStore manages stored message sources.
type SourceStore interface {
	ImportJSON(ctx context.Context, name string, r io.Reader) (store.Source, error)
	ListSources(ctx context.Context) ([]store.Source, error)
	DeleteSource(ctx context.Context, id string) error
}

// Observer receives HTTP and graph-size observations.
type Observer interface {
	HTTPRecorder
	ObserveGraph(nodes int)
	Handler() http.Handler
}

// Options configures a Server.
type Options struct {
	RequestTimeout time.Duration
	CORSOrigins    []string
	MaxBodyBytes   int64
}

// Server routes HTTP requests to the pipeline engine and the source store.
type Server struct {
	eng   *pipeline.Engine
	store SourceStore
	obs   Observer
	log   *zap.Logger
	opts  Options
}

// New returns a Server. log may be nil.
func New(eng *pipeline.Engine, st SourceStore, obs Observer, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 32 << 20
	}

	return &Server{eng: eng, store: st, obs: obs, log: log, opts: opts}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(accessLog(s.log))
	r.Use(instrument(s.obs))

	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", s.obs.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.opts.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(s.opts.RequestTimeout))
		}
		r.Get("/analyze/{sourceID}", s.analyze)
		r.Get("/communities/{sourceID}", s.communities)
		r.Get("/compare", s.compare)
		r.Post("/customize", s.customize)

		r.Route("/sources", func(r chi.Router) {
			r.Get("/", s.listSources)
			r.Post("/", s.importSource)
			r.Delete("/{sourceID}", s.deleteSource)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")

	return nil
}
