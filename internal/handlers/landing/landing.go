package landing

import (
	"log/slog"
	"net/http"

	"alplotlib/internal/logger"
	"alplotlib/internal/web"
	page "alplotlib/internal/web/pages/landing"

	"github.com/a-h/templ"
)

// PageCounter records landing page renders.
type PageCounter interface {
	PageRendered(variant string)
}

// Handler serves the landing page in one configured variant.
type Handler struct {
	variant string
	doc     templ.Component
	counter PageCounter
	log     *slog.Logger
}

// New builds the handler for variant. postList is handed to the page
// untouched; whether it is rendered is up to the variant.
func New(variant string, postList templ.Component, counter PageCounter, log *slog.Logger) (*Handler, error) {
	cfg, err := page.Variant(variant)
	if err != nil {
		return nil, err
	}
	return &Handler{
		variant: variant,
		doc:     web.Layout(web.SiteName, page.Page(cfg, postList)),
		counter: counter,
		log:     log,
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.counter != nil {
		h.counter.PageRendered(h.variant)
	}
	templ.Handler(h.doc, templ.WithErrorHandler(h.renderError)).ServeHTTP(w, r)
}

func (h *Handler) renderError(r *http.Request, err error) http.Handler {
	h.log.Error("landing page render failed", logger.Variant(h.variant), logger.Path(r.URL.Path), logger.Error(err))
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	})
}
