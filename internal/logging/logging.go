// Package logging builds the slog logger used by the CLI and adapts it to
// the calculation engine's Logger interface.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// ParseLevel maps debug|info|warn|error to a slog level. Unknown values fall back to info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a logger writing to w. format is "json" or "text"; anything else is text.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl, ok := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	if !ok {
		l.Warn("invalid log level, defaulting to info", "configured", level)
	}
	return l
}

// Adapter exposes a slog.Logger through the printf-style engine Logger interface
type Adapter struct {
	L *slog.Logger
}

// NewAdapter wraps l; attrs are attached to every record (e.g. "run_id", id)
func NewAdapter(l *slog.Logger, attrs ...any) *Adapter {
	return &Adapter{L: l.With(attrs...)}
}

func (a *Adapter) Debugf(format string, args ...any) { a.L.Debug(fmt.Sprintf(format, args...)) }
func (a *Adapter) Infof(format string, args ...any)  { a.L.Info(fmt.Sprintf(format, args...)) }
func (a *Adapter) Warnf(format string, args ...any)  { a.L.Warn(fmt.Sprintf(format, args...)) }
func (a *Adapter) Errorf(format string, args ...any) { a.L.Error(fmt.Sprintf(format, args...)) }
