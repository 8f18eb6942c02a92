// Package block locates balanced, delimiter-bounded regions in a text buffer
// without parsing it.
//
// [Seek] walks the buffer once and reports one [Span] per top-level region
// opened by a start delimiter and closed by the matching end delimiter. Regions
// nested inside an open region are absorbed into the outer span. Malformed input
// is reported as an [*Error] that unwraps to [ErrStrayCloseDelimiter] or
// [ErrUnterminatedBlock]; the spans completed before the failure are returned
// alongside it.
//
// [DecodeJSON] builds on [Seek] to pull JSON objects out of surrounding prose
// and decode them into a caller-defined type.
//
// The scanner does not know about quoting or escaping: a delimiter inside a
// string literal counts like any other.
package block
