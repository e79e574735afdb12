// Package landing renders the blog's landing page: a greeting, a short
// introduction, an optional call to action and the list of posts.
package landing

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const (
	Title       = "Alplotlib'e hoşgeldin 👋"
	ActionLabel = "Yazılarım"

	FullBody = `Merhaba!

Ben Alp, burası öğrendiklerimi sizlerle paylaşmaktan keyif aldığım, ilham dolu bir blog alanı. Yazılarımda, bazen bir kod satırının ardındaki mantığı, bazen bir problemi nasıl çözdüğümü, bazen de yeni keşfettiğim bir teknolojiyi anlatıyorum. Amacım hem öğretici hem de keyifli bir deneyim sunabilmek.

Eğer siz de teknoloji, yazılım veya geliştirme üzerine bir şeyler öğrenmek istiyorsanız doğru yerdesiniz! Hadi, beraber keşfetmeye başlayalım. 🥳`

	MinimalBody = `Merhaba!

Ben Alp. Burada yakında öğrendiklerimi paylaşacağım. 🚧`
)

// Config selects the copy and which optional parts of the page render.
type Config struct {
	Title            string
	Body             string
	ShowActionButton bool
	ActionLabel      string
	ShowPostList     bool
}

// Full is the published page: long introduction, button and post list.
func Full() Config {
	return Config{
		Title:            Title,
		Body:             FullBody,
		ShowActionButton: true,
		ActionLabel:      ActionLabel,
		ShowPostList:     true,
	}
}

// Minimal is the page with the short greeting and no posts.
func Minimal() Config {
	return Config{
		Title:       Title,
		Body:        MinimalBody,
		ActionLabel: ActionLabel,
	}
}

// Variant returns the preset registered under name.
func Variant(name string) (Config, error) {
	switch name {
	case "full":
		return Full(), nil
	case "minimal":
		return Minimal(), nil
	default:
		return Config{}, fmt.Errorf("unknown landing variant %q", name)
	}
}

// Page renders the landing section. postList is rendered exactly once per
// render when cfg.ShowPostList is set and is never touched otherwise; its
// error, if any, is returned as is and nothing is written to w.
func Page(cfg Config, postList templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer

		buf.WriteString(`<section>`)
		buf.WriteString(`<h1 class="mb-8 text-2xl font-semibold tracking-tighter">`)
		buf.WriteString(templ.EscapeString(cfg.Title))
		buf.WriteString(`</h1>`)
		buf.WriteString(`<p class="mb-4 whitespace-pre-line">`)
		buf.WriteString(templ.EscapeString(cfg.Body))
		buf.WriteString(`</p>`)

		if cfg.ShowActionButton {
			buf.WriteString(`<button class="bg-violet-600 py-1 rounded-full px-5 cursor-pointer font-bold mt-4">`)
			buf.WriteString(templ.EscapeString(cfg.ActionLabel))
			buf.WriteString(`</button>`)
		}

		buf.WriteString(`<div class="my-4">`)
		if cfg.ShowPostList && postList != nil {
			if err := postList.Render(ctx, &buf); err != nil {
				return err
			}
		}
		buf.WriteString(`</div>`)
		buf.WriteString(`</section>`)

		_, err := buf.WriteTo(w)
		return err
	})
}
