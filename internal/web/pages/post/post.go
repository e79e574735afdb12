package post

import (
	"bytes"
	"context"
	"io"

	"alplotlib/internal/posts"

	"github.com/a-h/templ"
)

// Article renders a single post. p.HTML is trusted output of the Markdown
// renderer and is embedded without escaping. Nothing is written to w unless
// the whole article renders.
func Article(p posts.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<section><h1 class="title font-semibold text-2xl tracking-tighter">`)
		buf.WriteString(templ.EscapeString(p.Title))
		buf.WriteString(`</h1><div class="flex justify-between items-center mt-2 mb-8 text-sm">`)
		buf.WriteString(`<p class="text-sm text-neutral-600 dark:text-neutral-400">`)
		buf.WriteString(templ.EscapeString(posts.FormatDate(p.PublishedAt)))
		buf.WriteString(`</p></div><article class="prose">`)
		if err := templ.Raw(p.HTML).Render(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(`</article></section>`)

		_, err := buf.WriteTo(w)
		return err
	})
}
