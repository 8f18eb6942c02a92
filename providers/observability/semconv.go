package observability

// Attribute keys.
const (
	// AttrError carries an error message.
	AttrError = "error"

	// AttrStatus is the final status of a span ("ok", "error", "unset").
	AttrStatus = "status"

	// AttrStatusDescription optionally explains AttrStatus.
	AttrStatusDescription = "status.description"

	// AttrElementTag is the local name being extracted.
	AttrElementTag = "element.tag"

	// AttrElementPriority is the priority attached to a raw match.
	AttrElementPriority = "element.priority"

	// AttrElementSelfClosing marks a match without a body.
	AttrElementSelfClosing = "element.self_closing"

	// AttrElementMatches is the number of elements matched by one call.
	AttrElementMatches = "element.matches"

	// AttrElementFailures is the number of elements that failed to decode.
	AttrElementFailures = "element.failures"

	// AttrElementPolicy is the failure policy in effect ("abort", "skip").
	AttrElementPolicy = "element.policy"

	// AttrSpanStart and AttrSpanEnd are byte offsets of a match.
	AttrSpanStart = "span.start"
	AttrSpanEnd   = "span.end"

	// AttrBufferBytes is the size of the scanned buffer.
	AttrBufferBytes = "buffer.bytes"

	// AttrBlockStart and AttrBlockEnd are the delimiter pair of a block scan.
	AttrBlockStart = "block.start"
	AttrBlockEnd   = "block.end"

	// AttrBlockSpans is the number of top-level blocks found.
	AttrBlockSpans = "block.spans"

	// AttrDuration is the elapsed time of an operation.
	AttrDuration = "duration"
)

// Span names.
const (
	SpanElementExtract = "element.extract"
	SpanElementRaw     = "element.raw"
)

// Metric names.
const (
	MetricElementsMatched = "spanseek.elements.matched"
	MetricElementsFailed  = "spanseek.elements.failed"
	MetricMatchBytes      = "spanseek.match.bytes"
)
