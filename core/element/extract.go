package element

import (
	"errors"
	"strings"

	"github.com/leofalp/spanseek/providers/observability"
)

// errAbort stops the scan from inside the emit callback.
var errAbort = errors.New("element: aborted")

// Result is the outcome of decoding one matched element. Err is nil on
// success and a [KindSchemaMismatch] [*Error] otherwise.
type Result[T any] struct {
	Match Match
	Value T
	Err   error
}

// OK reports whether the element decoded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Extract returns every element named tag in buf decoded with [XML], in
// document order.
//
//	type Card struct {
//	    ID    string `xml:"id,attr"`
//	    Title string `xml:"title"`
//	}
//
//	cards, err := element.Extract[Card](doc, "card")
//
// A tag that does not occur yields an empty slice and a nil error.
func Extract[T any](buf, tag string, opts ...Option) ([]T, error) {
	return ExtractWith(buf, tag, XML[T](), opts...)
}

// ExtractWith is [Extract] with a caller-supplied schema. Under [WithLenient],
// schemas built from [XML] (directly or through [Validated]) decode with the
// relaxed rules too; other schemas receive the fragment unchanged.
//
// Under [PolicyAbort] the first element that fails to decode ends the call;
// its error is returned with the values decoded before it. Under [PolicySkip]
// failing elements are left out and the error is nil; use [ExtractResults] to
// see them.
func ExtractWith[T any](buf, tag string, schema Schema[T], opts ...Option) ([]T, error) {
	results, err := ExtractResults(buf, tag, schema, opts...)

	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.OK() {
			values = append(values, r.Value)
		}
	}
	return values, err
}

// ExtractResults decodes every non-self-closing element named tag in buf and
// returns one [Result] per element. Each decode runs on its own, so one bad
// element does not affect its neighbours.
//
// The returned error is a [KindTokenizer] [*Error] when the markup is
// malformed, or under [PolicyAbort] the error of the first failing element,
// which is also the last Result. Results gathered before the error are
// always returned.
func ExtractResults[T any](buf, tag string, schema Schema[T], opts ...Option) ([]Result[T], error) {
	if strings.TrimSpace(tag) == "" {
		return nil, ErrEmptyTag
	}
	cfg := applyOptions(opts)
	obs := cfg.observer
	ctx := cfg.ctx
	if cfg.lenient {
		schema = relax(schema)
	}

	var span observability.Span
	if obs != nil {
		ctx, span = obs.StartSpan(ctx, observability.SpanElementExtract,
			observability.String(observability.AttrElementTag, tag),
			observability.String(observability.AttrElementPolicy, cfg.policy.String()),
			observability.Int(observability.AttrBufferBytes, len(buf)),
		)
		defer span.End()
	}

	results := make([]Result[T], 0, cfg.sizeHint)
	var failures int
	var firstFailure error

	want := func(local string) (int, bool) {
		return 0, local == tag
	}
	err := scan(buf, cfg.lenient, want, func(m Match) error {
		if m.SelfClosing {
			if obs != nil {
				obs.Debug(ctx, "self-closing element skipped",
					observability.String(observability.AttrElementTag, m.Tag),
					observability.Int(observability.AttrSpanStart, m.Start))
			}
			return nil
		}

		r := Result[T]{Match: m}
		r.Value, r.Err = schema.Decode(m.Text)
		if r.Err != nil {
			r.Err = &Error{Kind: KindSchemaMismatch, Tag: m.Tag, Offset: m.Start, End: m.End, Err: r.Err}
		}
		results = append(results, r)

		if obs != nil {
			attrs := []observability.Attribute{
				observability.String(observability.AttrElementTag, m.Tag),
				observability.Int(observability.AttrSpanStart, m.Start),
				observability.Int(observability.AttrSpanEnd, m.End),
			}
			obs.Histogram(observability.MetricMatchBytes).Record(ctx, float64(m.End-m.Start))
			if r.Err != nil {
				obs.Counter(observability.MetricElementsFailed).Add(ctx, 1)
				obs.Warn(ctx, "element does not match schema", append(attrs, observability.Error(r.Err))...)
			} else {
				obs.Counter(observability.MetricElementsMatched).Add(ctx, 1)
				obs.Debug(ctx, "element decoded", attrs...)
			}
		}

		if r.Err != nil {
			failures++
			if cfg.policy == PolicyAbort {
				firstFailure = r.Err
				return errAbort
			}
		}
		return nil
	})
	if errors.Is(err, errAbort) {
		err = firstFailure
	}

	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrElementMatches, len(results)),
			observability.Int(observability.AttrElementFailures, failures),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, err.Error())
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
	}
	return results, err
}
