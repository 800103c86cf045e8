// Package logging configures the process-wide slog logger for the CLIs. It
// provides a compact single-line handler with colored levels for terminal use
// and the Err attribute helper used across log call sites.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Err returns a slog attribute for an error value under the conventional
// "error" key.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
// Unknown names default to warn, which keeps the CLIs quiet unless asked.
func ParseLevel(s string) slog.Level {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Handler is a compact slog.Handler: one line per record with the timestamp,
// colored level, message, and remaining attributes rendered as JSON.
type Handler struct {
	level  slog.Level
	output io.Writer
	mu     sync.Mutex
	attrs  []slog.Attr
}

// NewHandler creates a Handler writing records at or above level to output.
func NewHandler(output io.Writer, level slog.Level) *Handler {
	return &Handler{
		level:  level,
		output: output,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes a single record.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	fields := make(map[string]any, record.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		fields[attr.Key] = attr.Value.Any()
	}
	record.Attrs(func(attr slog.Attr) bool {
		fields[attr.Key] = attr.Value.Any()
		return true
	})

	var b strings.Builder
	b.WriteString(record.Time.Format(time.DateTime))
	b.WriteByte(' ')
	b.WriteString(levelLabel(record.Level))
	b.WriteByte(' ')
	b.WriteString(record.Message)

	if len(fields) > 0 {
		if encoded, err := json.Marshal(fields); err == nil {
			b.WriteString(" → ")
			b.Write(encoded)
		}
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.output, b.String())
	return err
}

// WithAttrs returns a new Handler carrying the additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &Handler{
		level:  h.level,
		output: h.output,
		attrs:  make([]slog.Attr, 0, len(h.attrs)+len(attrs)),
	}
	clone.attrs = append(clone.attrs, h.attrs...)
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

// WithGroup is accepted but groups are flattened; the compact format has no
// nesting.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString("ERROR")
	case level >= slog.LevelWarn:
		return color.YellowString("WARN")
	case level >= slog.LevelInfo:
		return color.GreenString("INFO")
	default:
		return color.CyanString("DEBUG")
	}
}
