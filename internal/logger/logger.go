package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Canonical field names shared by every package that logs.
const (
	KeyInstance   = "instance"
	KeyRequestID  = "request_id"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyVariant    = "variant"
	KeySlug       = "slug"
	KeyDir        = "dir"
	KeyFile       = "file"
	KeyOp         = "op"
	KeyError      = "error"
)

// New returns a JSON logger writing to w. Every record carries the
// instance name so logs from several replicas can be told apart.
func New(w io.Writer, instance string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With(slog.String(KeyInstance, instance))
}

// Install makes l the process default. Output from the std log package
// is routed through the same handler.
func Install(l *slog.Logger) {
	slog.SetDefault(l)
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }
func Method(m string) slog.Attr { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func Variant(v string) slog.Attr { return slog.String(KeyVariant, v) }
func Slug(s string) slog.Attr { return slog.String(KeySlug, s) }
func Dir(d string) slog.Attr { return slog.String(KeyDir, d) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func Op(op string) slog.Attr { return slog.String(KeyOp, op) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
