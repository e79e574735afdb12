package posts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/a-h/templ"
)

// DateLayout is how publication dates appear in the list.
const DateLayout = "January 2, 2006"

// List renders every post from src as a link to its page, newest first.
// Each render reads src again. Errors from src are returned and nothing is
// written.
func List(src Source) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		items, err := Collect(ctx, src)
		if err != nil {
			return fmt.Errorf("list posts: %w", err)
		}

		var buf bytes.Buffer
		buf.WriteString(`<div class="posts">`)
		for _, p := range items {
			buf.WriteString(`<a class="flex flex-col space-y-1 mb-4" href="`)
			buf.WriteString(templ.EscapeString(Href(p.Slug)))
			buf.WriteString(`"><div class="w-full flex flex-col md:flex-row space-x-0 md:space-x-2">`)
			buf.WriteString(`<p class="text-neutral-600 dark:text-neutral-400 w-[100px] tabular-nums">`)
			buf.WriteString(templ.EscapeString(FormatDate(p.PublishedAt)))
			buf.WriteString(`</p><p class="text-neutral-900 dark:text-neutral-100 tracking-tight">`)
			buf.WriteString(templ.EscapeString(p.Title))
			buf.WriteString(`</p></div></a>`)
		}
		buf.WriteString(`</div>`)

		_, err = buf.WriteTo(w)
		return err
	})
}

// Href is the URL path of a post page.
func Href(slug string) string {
	return "/blog/" + url.PathEscape(slug)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
