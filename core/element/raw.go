package element

import (
	"strings"

	"github.com/leofalp/spanseek/providers/observability"
)

// TagPriority names one tag to report from [ExtractRaw]. Priority is carried
// through to the [Match] so sinks can rank or filter what they receive.
type TagPriority struct {
	Tag      string
	Priority int
}

// Sink receives raw matches in document order. A non-nil error from Emit
// stops the scan and is returned by [ExtractRaw].
type Sink interface {
	// Emit receives one match. Match.Text aliases the scanned buffer.
	Emit(m Match) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(m Match) error

// Emit calls f(m).
func (f SinkFunc) Emit(m Match) error {
	return f(m)
}

// Collector is a Sink that keeps every match.
type Collector struct {
	Matches []Match
}

// Emit appends m to c.Matches.
func (c *Collector) Emit(m Match) error {
	c.Matches = append(c.Matches, m)
	return nil
}

// ExtractRaw reports every element whose local name is listed in tags,
// self-closing ones included, to sink without decoding it. A tag listed more
// than once keeps its highest priority.
//
// Like the typed path, an element nested inside another reported element is
// consumed with it.
func ExtractRaw(buf string, tags []TagPriority, sink Sink, opts ...Option) error {
	priorities := make(map[string]int, len(tags))
	for _, tp := range tags {
		name := strings.TrimSpace(tp.Tag)
		if name == "" {
			return ErrEmptyTag
		}
		if p, seen := priorities[name]; !seen || tp.Priority > p {
			priorities[name] = tp.Priority
		}
	}
	if len(priorities) == 0 {
		return ErrEmptyTag
	}

	cfg := applyOptions(opts)
	obs := cfg.observer
	ctx := cfg.ctx

	var span observability.Span
	if obs != nil {
		ctx, span = obs.StartSpan(ctx, observability.SpanElementRaw,
			observability.Int(observability.AttrBufferBytes, len(buf)))
		defer span.End()
	}

	var matches int
	err := scan(buf, cfg.lenient, func(local string) (int, bool) {
		p, ok := priorities[local]
		return p, ok
	}, func(m Match) error {
		matches++
		if obs != nil {
			obs.Debug(ctx, "element matched",
				observability.String(observability.AttrElementTag, m.Tag),
				observability.Int(observability.AttrElementPriority, m.Priority),
				observability.Int(observability.AttrSpanStart, m.Start),
				observability.Int(observability.AttrSpanEnd, m.End),
				observability.Bool(observability.AttrElementSelfClosing, m.SelfClosing))
			obs.Counter(observability.MetricElementsMatched).Add(ctx, 1)
		}
		return sink.Emit(m)
	})

	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrElementMatches, matches))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, err.Error())
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
	}
	return err
}
