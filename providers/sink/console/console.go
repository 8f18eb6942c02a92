// Package console writes raw element matches to an io.Writer, either as
// tab-separated text or as JSON lines.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/leofalp/spanseek/core/element"
	"github.com/leofalp/spanseek/internal/utils"
)

// Format selects the line layout.
type Format string

const (
	// FormatText writes "tag<TAB>priority<TAB>[start,end)<TAB>preview".
	FormatText Format = "text"

	// FormatJSON writes one JSON object per match with the full fragment.
	FormatJSON Format = "json"
)

// Sink implements element.Sink.
type Sink struct {
	w       io.Writer
	format  Format
	preview int
	count   int

	tag  *color.Color
	span *color.Color
}

// Option configures a Sink.
type Option func(*Sink)

// WithFormat selects the line layout. Default FormatText.
func WithFormat(f Format) Option {
	return func(s *Sink) {
		s.format = f
	}
}

// WithPreviewLength bounds the fragment excerpt in FormatText lines.
func WithPreviewLength(n int) Option {
	return func(s *Sink) {
		s.preview = n
	}
}

// WithColor highlights tag names and spans in FormatText lines. Colors are
// written even when w is not a terminal; callers decide whether to enable it.
func WithColor() Option {
	return func(s *Sink) {
		s.tag = color.New(color.FgCyan, color.Bold)
		s.span = color.New(color.FgYellow)
		s.tag.EnableColor()
		s.span.EnableColor()
	}
}

// New returns a Sink writing to w.
func New(w io.Writer, opts ...Option) *Sink {
	s := &Sink{w: w, format: FormatText, preview: utils.DefaultPreviewLength}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

var _ element.Sink = (*Sink)(nil)

type jsonMatch struct {
	Tag         string `json:"tag"`
	Priority    int    `json:"priority"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	SelfClosing bool   `json:"self_closing"`
	Text        string `json:"text"`
}

// Emit writes one line for m in the configured format.
func (s *Sink) Emit(m element.Match) error {
	s.count++
	var err error
	switch s.format {
	case FormatJSON:
		_, err = fmt.Fprintln(s.w, utils.JSONToString(jsonMatch{
			Tag:         m.Tag,
			Priority:    m.Priority,
			Start:       m.Start,
			End:         m.End,
			SelfClosing: m.SelfClosing,
			Text:        m.Text,
		}))
	default:
		marker := ""
		if m.SelfClosing {
			marker = " (self-closing)"
		}
		span := fmt.Sprintf("[%d,%d)", m.Start, m.End)
		_, err = fmt.Fprintf(s.w, "%s\t%d\t%s%s\t%s\n",
			paint(s.tag, m.Tag), m.Priority, paint(s.span, span), marker, utils.Preview(m.Text, s.preview))
	}
	if err != nil {
		return fmt.Errorf("console sink: %w", err)
	}
	return nil
}

// Count returns the number of matches emitted so far.
func (s *Sink) Count() int {
	return s.count
}
