package landing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

type counter struct{ variants []string }

func (c *counter) PageRendered(v string) { c.variants = append(c.variants, v) }

func list(calls *int, out string, err error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		*calls++
		if err != nil {
			return err
		}
		_, werr := io.WriteString(w, out)
		return werr
	})
}

func serve(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestHandler_Full(t *testing.T) {
	var calls int
	c := &counter{}
	h, err := New("full", list(&calls, `<div class="posts">vim</div>`, nil), c, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rec := serve(t, h)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	require.Contains(t, body, "<!DOCTYPE html>")
	require.Contains(t, body, "Alplotlib&#39;e hoşgeldin")
	require.Contains(t, body, "<button")
	require.Contains(t, body, `<div class="posts">vim</div>`)
	require.Equal(t, 1, calls)
	require.Equal(t, []string{"full"}, c.variants)
}

func TestHandler_Minimal(t *testing.T) {
	var calls int
	h, err := New("minimal", list(&calls, "never", nil), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rec := serve(t, h)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "<button")
	require.Contains(t, rec.Body.String(), `<div class="my-4"></div>`)
	require.Zero(t, calls)
}

func TestHandler_PostListFailureIs500(t *testing.T) {
	var calls int
	var logs bytes.Buffer
	h, err := New("full", list(&calls, "", errors.New("db down")), nil, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)

	rec := serve(t, h)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "<section>")
	require.Contains(t, logs.String(), "db down")
}

func TestNew_UnknownVariant(t *testing.T) {
	_, err := New("beta", nil, nil, slog.Default())
	require.Error(t, err)
}
