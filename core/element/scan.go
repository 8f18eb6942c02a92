package element

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Match is one element located in the buffer. Text is buf[Start:End], the
// element's complete serialized form, sharing memory with the buffer.
type Match struct {
	Tag         string
	Priority    int
	Start       int
	End         int
	SelfClosing bool
	Text        string
}

// scan walks buf once and calls emit for every start tag whose local name is
// accepted by want, in document order. The element's content is skipped in
// one step, so accepted names nested inside a match are never seen.
func scan(buf string, lenient bool, want func(local string) (int, bool), emit func(Match) error) error {
	dec := xml.NewDecoder(strings.NewReader(buf))
	if lenient {
		// No AutoClose: it makes the decoder read ahead one token, which
		// would break the offset bookkeeping below.
		dec.Strict = false
		dec.Entity = xml.HTMLEntity
	}

	for {
		// Nothing is buffered between tokens, so the offset before Token is
		// exactly where the next token starts.
		start := int(dec.InputOffset())
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &Error{Kind: KindTokenizer, Offset: int(dec.InputOffset()), Err: err}
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		priority, ok := want(se.Name.Local)
		if !ok {
			continue
		}

		afterTag := int(dec.InputOffset())
		if err := dec.Skip(); err != nil {
			return &Error{Kind: KindTokenizer, Offset: int(dec.InputOffset()), Err: err}
		}
		end := int(dec.InputOffset())

		m := Match{
			Tag:         se.Name.Local,
			Priority:    priority,
			Start:       start,
			End:         end,
			SelfClosing: end == afterTag,
			Text:        buf[start:end],
		}
		if err := emit(m); err != nil {
			return err
		}
	}
}
