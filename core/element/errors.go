package element

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenizer is wrapped by errors raised by the token reader on
	// malformed markup.
	ErrTokenizer = errors.New("element: malformed markup")

	// ErrSchemaMismatch is wrapped by errors raised when a matched fragment
	// does not decode into the requested type.
	ErrSchemaMismatch = errors.New("element: fragment does not match schema")

	// ErrEmptyTag is returned when no target tag name is given.
	ErrEmptyTag = errors.New("element: empty tag name")
)

// Kind classifies an [Error].
type Kind int

const (
	KindTokenizer Kind = iota + 1
	KindSchemaMismatch
)

func (k Kind) String() string {
	switch k {
	case KindTokenizer:
		return "tokenizer"
	case KindSchemaMismatch:
		return "schema_mismatch"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error describes a tokenizer failure at Offset, or a decode failure of the
// element named Tag spanning [Offset, End).
type Error struct {
	Kind   Kind
	Tag    string
	Offset int
	End    int
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindSchemaMismatch {
		return fmt.Sprintf("%v: <%s> at [%d,%d): %v", ErrSchemaMismatch, e.Tag, e.Offset, e.End, e.Err)
	}
	return fmt.Sprintf("%v at offset %d: %v", ErrTokenizer, e.Offset, e.Err)
}

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindTokenizer:
		return target == ErrTokenizer
	case KindSchemaMismatch:
		return target == ErrSchemaMismatch
	}
	return false
}

// Unwrap returns the underlying reader or decoder error.
func (e *Error) Unwrap() error {
	return e.Err
}
