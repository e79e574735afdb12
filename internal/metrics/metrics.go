// Package metrics exposes Prometheus instrumentation for the blog server.
package metrics

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "alplotlib"

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on registration.
type Metrics struct {
	Registry *prom.Registry

	requests        *prom.CounterVec
	requestDuration *prom.HistogramVec
	pageRenders     *prom.CounterVec
	postListRenders prom.Counter
	sourceErrors    prom.Counter
}

func New() *Metrics {
	reg := prom.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code",
		}, []string{"route", "status"}),
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prom.DefBuckets,
		}, []string{"route"}),
		pageRenders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Landing page renders by site variant",
		}, []string{"variant"}),
		postListRenders: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "post_list_renders_total",
			Help:      "Invocations of the post list component",
		}),
		sourceErrors: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "post_source_errors_total",
			Help:      "Post list renders that failed",
		}),
	}
	reg.MustRegister(m.requests, m.requestDuration, m.pageRenders, m.postListRenders, m.sourceErrors)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) PageRendered(variant string) {
	m.pageRenders.WithLabelValues(variant).Inc()
}

// InstrumentPostList wraps the post list component so every invocation
// and every failure is counted. The wrapped component's output and error
// pass through untouched.
func (m *Metrics) InstrumentPostList(c templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m.postListRenders.Inc()
		err := c.Render(ctx, w)
		if err != nil {
			m.sourceErrors.Inc()
		}
		return err
	})
}
