//go:build dev

package mcplogdlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"time"
)

const defaultSocket = "/tmp/mcplogd.sock"
const appName = "gramtools"

type entry struct {
	App       string         `json:"app"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Wrap returns a handler that forwards every record to the local mcplogd
// socket before passing it on to next.
func Wrap(next slog.Handler) slog.Handler {
	return &handler{next: next}
}

type handler struct {
	next  slog.Handler
	attrs []slog.Attr
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	metadata := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		metadata[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		metadata[a.Key] = a.Value.String()
		return true
	})
	send(r.Level, r.Message, r.Time, metadata)
	return h.next.Handle(ctx, r)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{next: h.next.WithAttrs(attrs), attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{next: h.next.WithGroup(name), attrs: h.attrs}
}

func send(level slog.Level, message string, at time.Time, metadata map[string]any) {
	conn, err := net.Dial("unix", defaultSocket)
	if err != nil {
		return
	}
	defer conn.Close()

	if at.IsZero() {
		at = time.Now()
	}
	e := entry{
		App:       appName,
		Level:     levelName(level),
		Message:   message,
		Timestamp: at.UTC().Format(time.RFC3339Nano),
		Metadata:  metadata,
	}
	data, _ := json.Marshal(e)
	fmt.Fprintf(conn, "%s\n", data)
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
