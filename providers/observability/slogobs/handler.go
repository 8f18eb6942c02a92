package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Handler is a slog.Handler writing FormatCompact or FormatJSON records.
type Handler struct {
	format Format
	level  slog.Level
	output io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string
}

// NewHandler returns a Handler for the given format, level and writer.
func NewHandler(format Format, level slog.Level, output io.Writer) *Handler {
	if format == "" {
		format = FormatCompact
	}
	return &Handler{
		format: format,
		level:  level,
		output: output,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether level reaches the configured minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes r as one line in the configured format.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.prefix+a.Key] = a.Value.Any()
		return true
	})

	var line []byte
	var err error
	if h.format == FormatJSON {
		line, err = jsonLine(r, attrs)
	} else {
		line, err = compactLine(r, attrs)
	}
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.output.Write(line)
	return err
}

// WithAttrs returns a Handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &next
}

// WithGroup returns a Handler that prefixes later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// compactLine renders "2006-01-02 15:04:05 LEVEL msg → {attrs}".
func compactLine(r slog.Record, attrs map[string]any) ([]byte, error) {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, fmt.Sprintf(" %5s ", levelString(r.Level))...)
	buf = append(buf, r.Message...)
	if len(attrs) > 0 {
		encoded, err := json.Marshal(attrs)
		if err != nil {
			return nil, err
		}
		buf = append(buf, " → "...)
		buf = append(buf, encoded...)
	}
	return append(buf, '\n'), nil
}

func jsonLine(r slog.Record, attrs map[string]any) ([]byte, error) {
	attrs["time"] = r.Time.Format("2006-01-02T15:04:05")
	attrs["level"] = levelString(r.Level)
	attrs["msg"] = r.Message
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}
