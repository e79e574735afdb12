// Package posts provides the post list component shown on the landing page
// together with the sources it reads post summaries from.
//
// A Source hands out summaries as a lazy sequence. Ranging over the
// sequence performs a fresh retrieval each time, so one sequence value can
// be iterated repeatedly and always reflects the current content.
package posts

import (
	"context"
	"errors"
	"iter"
	"slices"
	"time"
)

// ErrNotFound is returned when a post with the requested slug does not exist.
var ErrNotFound = errors.New("post not found")

// Summary is what the post list needs to show one entry.
type Summary struct {
	Slug        string
	Title       string
	PublishedAt time.Time
	Summary     string
	Image       string
}

// Post is a summary together with its rendered HTML body.
type Post struct {
	Summary
	HTML string
}

// Source yields post summaries. Iteration stops at the first error.
type Source interface {
	Summaries(ctx context.Context) iter.Seq2[Summary, error]
}

// Store is a Source that can also load a single post by slug.
type Store interface {
	Source
	Post(ctx context.Context, slug string) (Post, error)
}

// Collect drains src and returns the summaries newest first. Posts
// published on the same instant keep the order the source produced them in.
func Collect(ctx context.Context, src Source) ([]Summary, error) {
	var out []Summary
	for s, err := range src.Summaries(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b Summary) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return out, nil
}

// ValidSlug reports whether slug can name a post. Slugs are single path
// elements.
func ValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	for _, r := range slug {
		if r == '/' || r == '\\' || r == 0 {
			return false
		}
	}
	return true
}
