// Package element extracts XML elements with a given local name from a text
// buffer and decodes each one into a caller-defined type.
//
// The extractor drives an encoding/xml token reader across the buffer. When a
// start tag matches the target name it records the exact offset of its "<",
// skips over the element's content to the matching end tag, and hands the
// captured fragment to a [Schema]. Elements of the target name nested inside a
// match are consumed with it and never reported on their own:
//
//	<card><card>inner</card></card>   // one match, the outer card
//
// Matches come back in document order. Fragments alias the input buffer.
//
// Typed extraction ([Extract], [ExtractWith], [ExtractResults]) ignores
// self-closing elements, which have no body to decode. [ExtractRaw] reports
// every match, self-closing ones included, to a [Sink] for inspection tooling.
//
// Malformed markup stops the scan with an [*Error] of kind [KindTokenizer].
// A fragment that does not fit the schema yields a [KindSchemaMismatch] error
// for that element only; [PolicySkip] logs it and moves on, [PolicyAbort]
// stops there.
package element
