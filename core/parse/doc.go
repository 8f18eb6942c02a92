// Package parse converts a text fragment cut out of a larger document into a
// Go value.
//
// Fragments located by a delimiter scan are often not quite valid JSON:
// trailing commas, single quotes, unquoted keys. [As] decodes primitives
// directly and falls back to automatic JSON repair for composite types before
// reporting an error that unwraps to [ErrDecode].
package parse
