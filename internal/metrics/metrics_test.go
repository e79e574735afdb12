package metrics

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestInstrumentPostList_CountsRendersAndErrors(t *testing.T) {
	m := New()

	ok := m.InstrumentPostList(templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<ul></ul>")
		return err
	}))
	var buf bytes.Buffer
	require.NoError(t, ok.Render(context.Background(), &buf))
	require.Equal(t, "<ul></ul>", buf.String())

	failing := m.InstrumentPostList(templ.ComponentFunc(func(context.Context, io.Writer) error {
		return errors.New("source down")
	}))
	require.EqualError(t, failing.Render(context.Background(), io.Discard), "source down")

	require.Equal(t, 2.0, testutil.ToFloat64(m.postListRenders))
	require.Equal(t, 1.0, testutil.ToFloat64(m.sourceErrors))
}

func TestPageRenderedAndRequests(t *testing.T) {
	m := New()
	m.PageRendered("full")
	m.PageRendered("full")
	m.PageRendered("minimal")
	m.ObserveRequest("GET /{$}", http.StatusOK, 3*time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.pageRenders.WithLabelValues("full")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.pageRenders.WithLabelValues("minimal")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET /{$}", "200")))
}

func TestHandler_ServesExposition(t *testing.T) {
	m := New()
	m.PageRendered("full")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "alplotlib_page_renders_total")
}
