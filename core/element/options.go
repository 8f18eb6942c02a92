package element

import (
	"context"

	"github.com/leofalp/spanseek/providers/observability"
)

// Policy decides what typed extraction does after an element fails to decode.
type Policy int

const (
	// PolicyAbort stops at the first failing element and returns its error
	// together with the values decoded before it.
	PolicyAbort Policy = iota

	// PolicySkip logs the failing element, leaves it out, and continues.
	PolicySkip
)

func (p Policy) String() string {
	if p == PolicySkip {
		return "skip"
	}
	return "abort"
}

// ParsePolicy maps "skip" to PolicySkip and anything else to PolicyAbort.
func ParsePolicy(s string) Policy {
	if s == "skip" {
		return PolicySkip
	}
	return PolicyAbort
}

// Option configures one extraction call.
type Option func(*config)

type config struct {
	sizeHint int
	policy   Policy
	lenient  bool
	observer observability.Provider
	ctx      context.Context
}

// WithSizeHint pre-sizes the result slice for n matches. More matches than n
// are still returned.
func WithSizeHint(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.sizeHint = n
		}
	}
}

// WithPolicy sets the failure policy. Default PolicyAbort.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithLenient accepts HTML-flavoured input: unquoted attributes, HTML entities,
// and end tags that close more than one open element. Void elements such as
// <br> are not closed implicitly; they extend to the end tag that closes their
// parent.
func WithLenient() Option {
	return func(c *config) {
		c.lenient = true
	}
}

// WithObserver reports spans, counters and per-element logs to p.
func WithObserver(p observability.Provider) Option {
	return func(c *config) {
		c.observer = p
	}
}

// WithContext sets the context passed to the observer. Extraction itself does
// not watch ctx for cancellation.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		sizeHint: 10,
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
