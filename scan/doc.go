// Package scan implements the stateless JSON tokenizer: a set of pure
// functions that, given a character buffer and an index, recognize or skip
// one JSON token and return the index one past it. Nothing in this package
// allocates a tree node — callers combine these primitives with their own
// bookkeeping (see package node) to build a lazily-materialized document.
//
// Every Skip* function either returns the index just past the recognized
// token, or a [*FormatError] pinned to the offending offset. The package
// never panics on malformed input; format errors are always returned, never
// thrown as anything else.
package scan
