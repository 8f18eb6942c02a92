// Package markdown renders matched (X)HTML elements as Markdown, one section
// per match, using github.com/JohannesKaufmann/html-to-markdown.
package markdown

import (
	"fmt"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/spanseek/core/element"
)

// Sink implements element.Sink. Each match is written as an HTML comment
// naming the tag and byte range, followed by the converted Markdown and a
// blank line.
type Sink struct {
	w             io.Writer
	skipEmpty     bool
	headerComment bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithSkipEmpty drops matches whose Markdown rendering is blank, such as
// self-closing <br/> or empty containers.
func WithSkipEmpty() Option {
	return func(s *Sink) {
		s.skipEmpty = true
	}
}

// WithoutHeader omits the "<!-- tag [start,end) -->" line before each section.
func WithoutHeader() Option {
	return func(s *Sink) {
		s.headerComment = false
	}
}

// New returns a Sink writing to w.
func New(w io.Writer, opts ...Option) *Sink {
	s := &Sink{w: w, headerComment: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ element.Sink = (*Sink)(nil)

// Emit converts m.Text to Markdown and writes it as one section.
func (s *Sink) Emit(m element.Match) error {
	md, err := htmltomarkdown.ConvertString(m.Text)
	if err != nil {
		return fmt.Errorf("markdown sink: <%s> at [%d,%d): %w", m.Tag, m.Start, m.End, err)
	}
	md = strings.TrimSpace(md)
	if md == "" && s.skipEmpty {
		return nil
	}

	var b strings.Builder
	if s.headerComment {
		fmt.Fprintf(&b, "<!-- %s [%d,%d) -->\n", m.Tag, m.Start, m.End)
	}
	b.WriteString(md)
	b.WriteString("\n\n")

	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("markdown sink: %w", err)
	}
	return nil
}
