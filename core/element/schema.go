package element

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Schema decodes one matched element, given as its complete serialized form
// from "<tag" to the end of "</tag>", into a T.
type Schema[T any] interface {
	Decode(fragment string) (T, error)
}

// SchemaFunc adapts a plain function to [Schema].
type SchemaFunc[T any] func(fragment string) (T, error)

// Decode calls f(fragment).
func (f SchemaFunc[T]) Decode(fragment string) (T, error) {
	return f(fragment)
}

// XML returns a Schema that decodes fragments with encoding/xml, mapping
// child elements and attributes to fields through `xml` struct tags.
//
// Under [WithLenient] the extractor decodes with the same relaxed rules it
// scans with: unquoted attributes, HTML entities and loosely closed tags.
func XML[T any]() Schema[T] {
	return xmlSchema[T]{}
}

// LenientXML is [XML] with the relaxed rules always on.
func LenientXML[T any]() Schema[T] {
	return xmlSchema[T]{lenient: true}
}

// relaxer is implemented by schemas that have a lenient counterpart.
type relaxer[T any] interface {
	relaxed() Schema[T]
}

// relax returns the lenient counterpart of schema, or schema itself when it
// has none.
func relax[T any](schema Schema[T]) Schema[T] {
	if r, ok := schema.(relaxer[T]); ok {
		return r.relaxed()
	}
	return schema
}

type xmlSchema[T any] struct {
	lenient bool
}

func (s xmlSchema[T]) Decode(fragment string) (T, error) {
	var v T
	dec := xml.NewDecoder(strings.NewReader(fragment))
	if s.lenient {
		dec.Strict = false
		dec.Entity = xml.HTMLEntity
	}
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

func (s xmlSchema[T]) relaxed() Schema[T] {
	return xmlSchema[T]{lenient: true}
}

// Validated wraps schema with a check run on every decoded value. A non-nil
// result from validate turns the element into a schema mismatch.
//
//	cards := element.Validated(element.XML[Card](), func(c Card) error {
//	    if c.ID == "" {
//	        return errors.New("card without id")
//	    }
//	    return nil
//	})
func Validated[T any](schema Schema[T], validate func(T) error) Schema[T] {
	return validated[T]{schema: schema, validate: validate}
}

type validated[T any] struct {
	schema   Schema[T]
	validate func(T) error
}

func (s validated[T]) Decode(fragment string) (T, error) {
	v, err := s.schema.Decode(fragment)
	if err != nil {
		return v, err
	}
	if err := s.validate(v); err != nil {
		return v, fmt.Errorf("validation: %w", err)
	}
	return v, nil
}

func (s validated[T]) relaxed() Schema[T] {
	return validated[T]{schema: relax(s.schema), validate: s.validate}
}
