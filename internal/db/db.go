package db

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"alplotlib/internal/posts"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 5 * time.Second

// Querier is the subset of *pgxpool.Pool the store uses.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connect opens a pool and verifies the server is reachable.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error reaching database: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS posts (
    slug         TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    summary      TEXT NOT NULL DEFAULT '',
    image        TEXT,
    published_at TIMESTAMPTZ NOT NULL,
    body         TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// PostStore serves posts from the posts table.
type PostStore struct {
	q Querier
}

func NewPostStore(q Querier) *PostStore {
	return &PostStore{q: q}
}

// EnsureSchema creates the posts table when it does not exist yet.
func (s *PostStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if _, err := s.q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("database schema error: %w", err)
	}
	return nil
}

// Summaries streams rows newest first. Each iteration issues a new query.
func (s *PostStore) Summaries(ctx context.Context) iter.Seq2[posts.Summary, error] {
	return func(yield func(posts.Summary, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()

		rows, err := s.q.Query(ctx, `
            SELECT slug, title, summary, COALESCE(image, ''), published_at
            FROM posts
            ORDER BY published_at DESC, slug`)
		if err != nil {
			yield(posts.Summary{}, fmt.Errorf("database query error: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var sum posts.Summary
			if err := rows.Scan(&sum.Slug, &sum.Title, &sum.Summary, &sum.Image, &sum.PublishedAt); err != nil {
				yield(posts.Summary{}, fmt.Errorf("database scan error: %w", err))
				return
			}
			if !yield(sum, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(posts.Summary{}, fmt.Errorf("database rows error: %w", err))
		}
	}
}

// Post loads one post and renders its Markdown body.
func (s *PostStore) Post(ctx context.Context, slug string) (posts.Post, error) {
	if !posts.ValidSlug(slug) {
		return posts.Post{}, posts.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sum posts.Summary
	var body string
	err := s.q.QueryRow(ctx, `
        SELECT slug, title, summary, COALESCE(image, ''), published_at, body
        FROM posts
        WHERE slug = $1`,
		slug,
	).Scan(&sum.Slug, &sum.Title, &sum.Summary, &sum.Image, &sum.PublishedAt, &body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return posts.Post{}, posts.ErrNotFound
		}
		return posts.Post{}, fmt.Errorf("error getting post %s: %w", slug, err)
	}

	html, err := posts.RenderMarkdown([]byte(body))
	if err != nil {
		return posts.Post{}, fmt.Errorf("post %s: %w", slug, err)
	}
	return posts.Post{Summary: sum, HTML: html}, nil
}

// UpsertPost inserts a post or updates it when the slug already exists.
func (s *PostStore) UpsertPost(ctx context.Context, sum posts.Summary, body string) error {
	if !posts.ValidSlug(sum.Slug) {
		return fmt.Errorf("invalid slug %q", sum.Slug)
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.q.Exec(ctx, `
        INSERT INTO posts (slug, title, summary, image, published_at, body)
        VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
        ON CONFLICT (slug) DO UPDATE SET
            title = EXCLUDED.title,
            summary = EXCLUDED.summary,
            image = EXCLUDED.image,
            published_at = EXCLUDED.published_at,
            body = EXCLUDED.body,
            updated_at = CURRENT_TIMESTAMP`,
		sum.Slug, sum.Title, sum.Summary, sum.Image, sum.PublishedAt, body,
	)
	if err != nil {
		return fmt.Errorf("database upsert error: %w", err)
	}
	return nil
}
