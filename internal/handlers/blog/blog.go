package blog

import (
	"errors"
	"log/slog"
	"net/http"

	"alplotlib/internal/logger"
	"alplotlib/internal/posts"
	"alplotlib/internal/web"
	"alplotlib/internal/web/pages/post"

	"github.com/a-h/templ"
)

// Handler returns the page for GET /blog/{slug}.
func Handler(store posts.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")

		p, err := store.Post(r.Context(), slug)
		if errors.Is(err, posts.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Error("Failed to load post", logger.Slug(slug), logger.Error(err))
			http.Error(w, "Failed to load post", http.StatusInternalServerError)
			return
		}

		templ.Handler(web.Layout(p.Title, post.Article(p))).ServeHTTP(w, r)
	}
}
