// Package path implements the location grammar used to address a value
// inside a JSON document without touching the document itself.
//
// A [Path] is an ordered, value-typed sequence of [Segment]s. Segments come
// in two kinds: a named object member (rendered as ".name" or, when the name
// collides with a grammar character, "{name}") and a zero-based array index
// (rendered as "[n]"). The empty path addresses the document root.
//
// Segment recognition is evaluated left to right: a leading "." opens a
// member segment that runs to the next ".", "{", or "["; a "{" opens a
// member segment only if a matching "}" closes it before another segment
// opener appears; a "[" opens an index segment only if it encloses one or
// more decimal digits followed by "]". Anything else is read as a bare
// member name that runs to the next segment opener. A leading "$" denotes
// the root and is stripped before parsing; "$" alone is the root path.
//
// There is no escape character. A member name containing ".", "[", "{", or
// "}" can only be addressed through the bracketed "{name}" form.
package path
