package block

import (
	"errors"
	"fmt"

	"github.com/leofalp/spanseek/core/parse"
)

// DecodeJSON finds every top-level {...} block in buf and decodes it into a T
// with [parse.As], which repairs slightly malformed JSON before giving up.
// Inside a block, braces within double-quoted strings do not count, so
// {"msg": "use } carefully"} is one block.
//
// Blocks that still fail to decode are skipped; their errors are joined and
// returned together with the values that did decode. A scan failure is
// returned as an [*Error] along with the values decoded from the
// blocks completed before it.
func DecodeJSON[T any](buf string) ([]T, error) {
	spans, seekErr := seekJSON(buf)

	out := make([]T, 0, len(spans))
	var errs []error
	for _, s := range spans {
		v, err := parse.As[T](s.Slice(buf))
		if err != nil {
			errs = append(errs, fmt.Errorf("block %v: %w", s, err))
			continue
		}
		out = append(out, v)
	}

	if seekErr != nil {
		return out, seekErr
	}
	return out, errors.Join(errs...)
}

// seekJSON is [Seek] for '{' and '}' that skips double-quoted strings, with
// their backslash escapes, while a block is open. Quotes outside a block are
// ordinary text.
func seekJSON(buf string) ([]Span, error) {
	var (
		spans    []Span
		open     int
		depth    int
		inString bool
		escaped  bool
	)
	for offset, r := range buf {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				open = offset
			}
			depth++
		case '}':
			if depth == 0 {
				return spans, &Error{Kind: KindStrayClose, Start: '{', End: '}', Offset: offset}
			}
			depth--
			if depth == 0 {
				spans = append(spans, Span{Start: open, End: offset})
			}
		}
	}

	if depth != 0 {
		return spans, &Error{Kind: KindUnterminated, Start: '{', End: '}', Offset: len(buf), Depth: depth}
	}
	return spans, nil
}
