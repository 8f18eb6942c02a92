package slogobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leofalp/spanseek/providers/observability"
)

// Observer implements observability.Provider on top of a slog.Logger.
// Metrics are kept in memory and echoed at DEBUG level.
type Observer struct {
	logger  *slog.Logger
	metrics *metricsStore
}

// New creates an Observer. Without options, format and level come from the
// environment and records go to os.Stderr.
//
//	observer := slogobs.New(
//	    slogobs.WithFormat(slogobs.FormatJSON),
//	    slogobs.WithLevel(slog.LevelDebug),
//	)
func New(opts ...Option) *Observer {
	cfg := applyOptions(opts...)

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(NewHandler(cfg.format, cfg.level, cfg.output))
	}
	return &Observer{
		logger:  logger,
		metrics: &metricsStore{counters: make(map[string]*counter)},
	}
}

var _ observability.Provider = (*Observer)(nil)

// CounterValue returns the current total of the named counter, or 0 if it was
// never incremented.
func (o *Observer) CounterValue(name string) int64 {
	o.metrics.mu.Lock()
	c, ok := o.metrics.counters[name]
	o.metrics.mu.Unlock()
	if !ok {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// --- TRACING ---

// StartSpan logs the start of name at DEBUG level. The span's End logs the
// elapsed time together with every attribute collected in between.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	o.logger.LogAttrs(ctx, slog.LevelDebug, "span started", append(toSlog(attrs), slog.String("span", name))...)
	return ctx, &span{
		ctx:    ctx,
		name:   name,
		start:  time.Now(),
		logger: o.logger,
		attrs:  append([]observability.Attribute(nil), attrs...),
	}
}

type span struct {
	ctx    context.Context
	name   string
	start  time.Time
	logger *slog.Logger

	mu    sync.Mutex
	attrs []observability.Attribute
}

func (s *span) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	attrs := append(toSlog(s.attrs), slog.String("span", s.name), slog.Duration(observability.AttrDuration, time.Since(s.start)))
	s.logger.LogAttrs(s.ctx, slog.LevelDebug, "span ended", attrs...)
}

func (s *span) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *span) SetStatus(code observability.StatusCode, description string) {
	status := "unset"
	switch code {
	case observability.StatusOK:
		status = "ok"
	case observability.StatusError:
		status = "error"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, observability.String(observability.AttrStatus, status))
	if description != "" {
		s.attrs = append(s.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

func (s *span) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, observability.Error(err))
	s.logger.LogAttrs(s.ctx, slog.LevelError, "span error", slog.String("span", s.name), slog.String(observability.AttrError, err.Error()))
}

// --- METRICS ---

// Counter returns the named counter, creating it on first use.
func (o *Observer) Counter(name string) observability.Counter {
	return o.metrics.counter(name, o.logger)
}

// Histogram returns a histogram that logs each observation at DEBUG level.
func (o *Observer) Histogram(name string) observability.Histogram {
	return histogram{name: name, logger: o.logger}
}

type metricsStore struct {
	mu       sync.Mutex
	counters map[string]*counter
}

func (m *metricsStore) counter(name string, logger *slog.Logger) *counter {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.counters[name]
	if !ok {
		c = &counter{name: name, logger: logger}
		m.counters[name] = c
	}
	return c
}

type counter struct {
	name   string
	logger *slog.Logger

	mu    sync.Mutex
	value int64
}

func (c *counter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.mu.Lock()
	c.value += value
	total := c.value
	c.mu.Unlock()

	c.logger.LogAttrs(ctx, slog.LevelDebug, "counter",
		append(toSlog(attrs), slog.String("metric", c.name), slog.Int64("value", total), slog.Int64("delta", value))...)
}

type histogram struct {
	name   string
	logger *slog.Logger
}

func (h histogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	h.logger.LogAttrs(ctx, slog.LevelDebug, "histogram",
		append(toSlog(attrs), slog.String("metric", h.name), slog.Float64("value", value))...)
}

// --- LOGGING ---

// Debug logs msg at DEBUG level with attrs.
func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelDebug, msg, toSlog(attrs)...)
}

// Info logs msg at INFO level with attrs.
func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelInfo, msg, toSlog(attrs)...)
}

// Warn logs msg at WARN level with attrs.
func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelWarn, msg, toSlog(attrs)...)
}

// Error logs msg at ERROR level with attrs.
func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelError, msg, toSlog(attrs)...)
}

func toSlog(attrs []observability.Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs)+3)
	for _, a := range attrs {
		out = append(out, slog.Any(a.Key, a.Value))
	}
	return out
}
