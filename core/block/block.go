package block

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrStrayCloseDelimiter is returned when an end delimiter appears while no
	// region is open.
	ErrStrayCloseDelimiter = errors.New("block: end delimiter without matching start")

	// ErrUnterminatedBlock is returned when the input ends while a region is
	// still open.
	ErrUnterminatedBlock = errors.New("block: input ended inside an open block")

	// ErrSameDelimiters is returned when the start and end delimiters are the
	// same character, which makes opening and closing indistinguishable.
	ErrSameDelimiters = errors.New("block: start and end delimiters must differ")
)

// Kind classifies an [Error].
type Kind int

const (
	KindStrayClose Kind = iota + 1
	KindUnterminated
	KindSameDelimiters
)

func (k Kind) String() string {
	switch k {
	case KindStrayClose:
		return "stray_close_delimiter"
	case KindUnterminated:
		return "unterminated_block"
	case KindSameDelimiters:
		return "same_delimiters"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error reports why a scan stopped. Offset is the byte offset of the stray end
// delimiter, or the buffer length for an unterminated block. Depth is the
// nesting depth at that point.
type Error struct {
	Kind   Kind
	Start  rune
	End    rune
	Offset int
	Depth  int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStrayClose:
		return fmt.Sprintf("%v: %q at offset %d has no matching %q", e.Unwrap(), e.End, e.Offset, e.Start)
	case KindUnterminated:
		return fmt.Sprintf("%v: %d %q still open at offset %d", e.Unwrap(), e.Depth, e.Start, e.Offset)
	default:
		return fmt.Sprintf("%v: %q", e.Unwrap(), e.Start)
	}
}

// Unwrap returns the sentinel matching e.Kind so callers can use [errors.Is].
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindStrayClose:
		return ErrStrayCloseDelimiter
	case KindUnterminated:
		return ErrUnterminatedBlock
	case KindSameDelimiters:
		return ErrSameDelimiters
	default:
		return nil
	}
}

// Span is one balanced region. Start is the byte offset of the start
// delimiter and End the byte offset of its matching end delimiter, so
// Start < End always holds.
type Span struct {
	Start int
	End   int
}

// Slice returns the region of buf covered by s, both delimiters included.
// buf must be the buffer s was produced from.
func (s Span) Slice(buf string) string {
	_, width := utf8.DecodeRuneInString(buf[s.End:])
	return buf[s.Start : s.End+width]
}

// Inner returns the text between the two delimiters.
func (s Span) Inner(buf string) string {
	_, width := utf8.DecodeRuneInString(buf[s.Start:])
	return buf[s.Start+width : s.End]
}

// Len returns the distance between the two delimiters in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("(%d,%d)", s.Start, s.End)
}

// Seek scans buf once and returns a Span for every top-level region opened by
// start and closed by end, in the order they close.
//
// A start delimiter seen while a region is open only increases the depth, so
// "{a{b}c}" yields the single span (0,6). A buffer without delimiters yields
// no spans and no error.
//
// On malformed input Seek returns the spans completed so far together with an
// [*Error]:
//
//	spans, err := block.Seek(doc, '{', '}')
//	if errors.Is(err, block.ErrUnterminatedBlock) {
//	    // spans still holds every block closed before the input ran out
//	}
func Seek(buf string, start, end rune) ([]Span, error) {
	if start == end {
		return nil, &Error{Kind: KindSameDelimiters, Start: start, End: end}
	}

	var (
		spans []Span
		open  int
		depth int
	)
	for offset, r := range buf {
		switch r {
		case start:
			if depth == 0 {
				open = offset
			}
			depth++
		case end:
			if depth == 0 {
				return spans, &Error{Kind: KindStrayClose, Start: start, End: end, Offset: offset}
			}
			depth--
			if depth == 0 {
				spans = append(spans, Span{Start: open, End: offset})
			}
		}
	}

	if depth != 0 {
		return spans, &Error{Kind: KindUnterminated, Start: start, End: end, Offset: len(buf), Depth: depth}
	}
	return spans, nil
}
