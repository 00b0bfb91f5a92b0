// Package logging builds the process logger and bridges runtime events to it.
package logging

import (
	"context"
	"io"
	"log/slog"
	"slices"
)

// New creates a slog.Logger writing to w. It does not set the global
// logger, so callers and tests can hold isolated instances.
func New(levelStr, formatStr string, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(levelStr)}

	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Publisher matches the EventPublisher interfaces of the task and params
// packages.
type Publisher interface {
	PublishEvent(eventType string, data map[string]any)
}

// EventLogger logs every event it receives and forwards it to Next.
type EventLogger struct {
	Logger *slog.Logger
	Next   Publisher
}

func (l *EventLogger) PublishEvent(eventType string, data map[string]any) {
	if l.Logger != nil {
		l.Logger.Log(context.Background(), eventLevel(eventType), eventType, attrs(data)...)
	}
	if l.Next != nil {
		l.Next.PublishEvent(eventType, data)
	}
}

func eventLevel(eventType string) slog.Level {
	switch eventType {
	case "params.missing", "task.error":
		return slog.LevelWarn
	case "params.prompted":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// attrs renders data as key/value pairs in a stable order.
func attrs(data map[string]any) []any {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, data[k]))
	}
	return out
}
