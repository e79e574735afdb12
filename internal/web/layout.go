package web

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

const SiteName = "Alplotlib"

// Layout wraps body in the site's HTML document. body's error aborts the
// render before anything reaches w.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer

		buf.WriteString(`<!DOCTYPE html><html lang="tr"><head><meta charset="UTF-8">`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		buf.WriteString(`<title>`)
		buf.WriteString(templ.EscapeString(pageTitle(title)))
		buf.WriteString(`</title><link rel="stylesheet" href="/static/site.css"></head>`)
		buf.WriteString(`<body class="antialiased max-w-xl mx-4 mt-8 lg:mx-auto">`)
		buf.WriteString(`<nav class="mb-16"><a href="/">`)
		buf.WriteString(SiteName)
		buf.WriteString(`</a></nav><main class="flex-auto min-w-0 mt-6 flex flex-col px-2 md:px-0">`)
		if body != nil {
			if err := body.Render(ctx, &buf); err != nil {
				return err
			}
		}
		buf.WriteString(`</main><footer class="mb-16 text-neutral-600">`)
		buf.WriteString(SiteName)
		buf.WriteString(`</footer></body></html>`)

		_, err := buf.WriteTo(w)
		return err
	})
}

func pageTitle(title string) string {
	if title == "" || title == SiteName {
		return SiteName
	}
	return title + " | " + SiteName
}
