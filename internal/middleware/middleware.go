// Package middleware wraps the blog's HTTP handlers with request IDs,
// access logging, metrics and panic recovery.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"alplotlib/internal/logger"
	"alplotlib/internal/metrics"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestIDFromContext returns the ID assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Chain applies, from the outside in: request ID, access log and
// metrics, panic recovery.
func Chain(log *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequestID(Logging(log, m, Recover(log, next)))
	}
}

// RequestID reuses a client supplied X-Request-ID or generates one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// Logging logs one line per request and records it in m. Requests are
// labelled by the mux pattern that served them to keep cardinality low.
func Logging(log *slog.Logger, m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if m != nil {
			m.ObserveRequest(route, wrapped.statusCode, duration)
		}
		log.Info("HTTP request",
			logger.RequestID(RequestIDFromContext(r.Context())),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Status(wrapped.statusCode),
			logger.Duration(duration))
	})
}

// Recover turns a handler panic into a 500 response.
func Recover(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("HTTP handler panic",
					slog.Any("panic", err),
					logger.RequestID(RequestIDFromContext(r.Context())),
					logger.Path(r.URL.Path),
					logger.Method(r.Method))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter captures the status code for logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
