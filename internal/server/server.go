package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"alplotlib/internal/config"
	"alplotlib/internal/handlers/blog"
	"alplotlib/internal/handlers/health"
	"alplotlib/internal/handlers/landing"
	"alplotlib/internal/metrics"
	"alplotlib/internal/middleware"
	"alplotlib/internal/posts"
	"alplotlib/internal/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	config   config.Config
	log      *slog.Logger
	metrics  *metrics.Metrics
	services *services.Services
	landing  *landing.Handler
}

func New(cfg config.Config, svc *services.Services, log *slog.Logger) (*Server, error) {
	m := metrics.New()

	postList := m.InstrumentPostList(posts.List(svc.Summaries))
	landingHandler, err := landing.New(cfg.Variant, postList, m, log)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:   cfg,
		log:      log,
		metrics:  m,
		services: svc,
		landing:  landingHandler,
	}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir(s.config.StaticDir))))

	mux.HandleFunc("GET /health", health.Handler)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.Handle("GET /{$}", s.landing)
	mux.Handle("GET /blog/{slug}", blog.Handler(s.services.Store, s.log))

	return middleware.Chain(s.log, s.metrics)(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Serving", slog.String("addr", server.Addr), slog.String("variant", s.config.Variant))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
