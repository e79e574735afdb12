package services

import (
	"context"
	"fmt"
	"log/slog"

	"alplotlib/internal/config"
	"alplotlib/internal/db"
	"alplotlib/internal/logger"
	"alplotlib/internal/posts"
)

// Services holds the long-lived dependencies shared by handlers.
type Services struct {
	// Store loads single posts for the post pages.
	Store posts.Store
	// Summaries feeds the post list; it may be a cache in front of Store.
	Summaries posts.Source

	closers []func()
}

// FromStore serves both post pages and the post list straight from store.
// closers run on Close in reverse order.
func FromStore(store posts.Store, closers ...func()) *Services {
	return &Services{Store: store, Summaries: store, closers: closers}
}

// New selects the post backend from cfg: PostgreSQL when DATABASE_URL is
// set, the posts directory otherwise. A directory source is cached and
// watched for changes when WATCH_POSTS is on. Watching is best effort.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*Services, error) {
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store := db.NewPostStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("serving posts from database")
		return FromStore(store, pool.Close), nil
	}

	files := posts.NewFileSource(cfg.PostsDir)
	s := FromStore(files)
	if cfg.WatchPosts {
		cache := posts.NewCachedSource(files)
		watchCtx, cancel := context.WithCancel(ctx)
		if err := posts.Watch(watchCtx, cfg.PostsDir, cache, log); err != nil {
			cancel()
			log.Warn("posts directory not watched, serving uncached", logger.Dir(cfg.PostsDir), logger.Error(err))
		} else {
			s.closers = append(s.closers, cancel)
			s.Summaries = cache
		}
	}
	log.Info("serving posts from directory", logger.Dir(cfg.PostsDir))
	return s, nil
}

// Close releases the database pool and stops the directory watcher.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
