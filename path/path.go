package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotPrefix is returned by [Path.ShortenBy] when the candidate parent is
// not a prefix of the receiver.
var ErrNotPrefix = errors.New("path: not a prefix")

// Kind identifies what a [Segment] addresses.
type Kind int

const (
	// Member addresses an object property by name.
	Member Kind = iota
	// Index addresses an array element by position.
	Index
)

func (k Kind) String() string {
	if k == Index {
		return "index"
	}

	return "member"
}

// Segment is one step of a [Path]: either a named object member or a
// zero-based array index.
type Segment struct {
	Name  string
	Kind  Kind
	Index int
}

// Path is an ordered, immutable sequence of [Segment]s locating a value
// within one document. The zero value is the root path.
type Path struct {
	segments []Segment
}

// Root returns the empty path, addressing the document root.
func Root() Path {
	return Path{}
}

// Of parses a canonical path string per the package grammar. A leading "$"
// is stripped; "$" alone yields the root path.
func Of(s string) (Path, error) {
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return Path{}, nil
	}

	var segs []Segment

	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			i++

			name, end := scanMemberName(s, i)
			segs = append(segs, Segment{Kind: Member, Name: name})
			i = end

		case '{':
			if idx, end, ok := braceSegment(s, i); ok {
				segs = append(segs, Segment{Kind: Member, Name: idx})
				i = end

				continue
			}

			name, end := scanMemberName(s, i)
			segs = append(segs, Segment{Kind: Member, Name: name})
			i = end

		case '[':
			if idx, end, ok := bracketSegment(s, i); ok {
				segs = append(segs, Segment{Kind: Index, Index: idx})
				i = end

				continue
			}

			name, end := scanMemberName(s, i)
			segs = append(segs, Segment{Kind: Member, Name: name})
			i = end

		default:
			name, end := scanMemberName(s, i)
			segs = append(segs, Segment{Kind: Member, Name: name})
			i = end
		}
	}

	return Path{segments: segs}, nil
}

// braceSegment reports whether s[i] (a '{') opens a valid bracketed member
// segment: a matching '}' reached before another, nested '{' — the whole
// point of the "{name}" form is to let a name carry a literal '.' or '['
// without those being mistaken for segment terminators, so only a second
// unescaped '{' disqualifies the match. When it does not match, the '{' is
// literal — part of the enclosing member name — per the package grammar.
func braceSegment(s string, i int) (name string, end int, ok bool) {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '}':
			return s[i+1 : j], j + 1, true
		case '{':
			return "", 0, false
		}
	}

	return "", 0, false
}

// bracketSegment reports whether s[i] (a '[') opens a valid index segment:
// one or more decimal digits followed by ']'. When it does not, the '[' is
// literal — part of the enclosing member name — per the package grammar.
func bracketSegment(s string, i int) (index int, end int, ok bool) {
	j := i + 1
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}

	if j == i+1 || j >= len(s) || s[j] != ']' {
		return 0, 0, false
	}

	idx, err := strconv.Atoi(s[i+1 : j])
	if err != nil {
		return 0, 0, false
	}

	return idx, j + 1, true
}

// scanMemberName absorbs a literal member name starting at i, stopping only
// at a true segment terminator: an unconditional '.', a '{' that opens a
// valid bracketed segment, or a '[' that opens a valid index segment.
// Anything else — including a '{' or '[' that fails to open a segment — is
// absorbed into the name itself.
func scanMemberName(s string, i int) (name string, end int) {
	start := i

	for i < len(s) {
		switch s[i] {
		case '.':
			return s[start:i], i
		case '{':
			if _, _, ok := braceSegment(s, i); ok {
				return s[start:i], i
			}
		case '[':
			if _, _, ok := bracketSegment(s, i); ok {
				return s[start:i], i
			}
		}

		i++
	}

	return s[start:i], i
}

// OfIndex returns a single-segment path addressing array element i of the
// document root.
func OfIndex(i int) Path {
	return Path{segments: []Segment{{Kind: Index, Index: i}}}
}

// FromSegments builds a Path directly from a segment slice. The slice is
// copied; callers may reuse or mutate it afterward.
func FromSegments(segs []Segment) Path {
	if len(segs) == 0 {
		return Path{}
	}

	cp := make([]Segment, len(segs))
	copy(cp, segs)

	return Path{segments: cp}
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []Segment {
	cp := make([]Segment, len(p.segments))
	copy(cp, p.segments)

	return cp
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// IsBareName reports whether name can appear as a plain ".name" member
// segment without requiring the bracketed "{name}" form.
func IsBareName(name string) bool {
	return !strings.ContainsAny(name, ".[{}")
}

// KeyForName returns the path segment text needed to reach a member named
// name: the bare name itself when it needs no escaping, otherwise the
// bracketed "{name}" form.
func KeyForName(name string) string {
	if IsBareName(name) {
		return name
	}

	return "{" + name + "}"
}

// ExtendMember returns a new path with a member segment for name appended.
func (p Path) ExtendMember(name string) Path {
	segs := append(p.Segments(), Segment{Kind: Member, Name: name})

	return Path{segments: segs}
}

// ExtendIndex returns a new path with an index segment appended.
func (p Path) ExtendIndex(i int) Path {
	segs := append(p.Segments(), Segment{Kind: Index, Index: i})

	return Path{segments: segs}
}

// Extend returns a new path with all of other's segments appended.
func (p Path) Extend(other Path) Path {
	segs := append(p.Segments(), other.segments...)

	return Path{segments: segs}
}

// DropFirstSegment returns the path with its first segment removed. The
// root path is returned unchanged.
func (p Path) DropFirstSegment() Path {
	if len(p.segments) == 0 {
		return p
	}

	return Path{segments: append([]Segment(nil), p.segments[1:]...)}
}

// DropLastSegment returns the path with its last segment removed. The root
// path is returned unchanged.
func (p Path) DropLastSegment() Path {
	if len(p.segments) == 0 {
		return p
	}

	return Path{segments: append([]Segment(nil), p.segments[:len(p.segments)-1]...)}
}

// ShortenBy returns the portion of p that extends beyond parent. It fails
// with [ErrNotPrefix] if parent is not a prefix of p.
func (p Path) ShortenBy(parent Path) (Path, error) {
	if len(parent.segments) > len(p.segments) {
		return Path{}, fmt.Errorf("%w: %s is longer than %s", ErrNotPrefix, parent, p)
	}

	for i, seg := range parent.segments {
		if seg != p.segments[i] {
			return Path{}, fmt.Errorf("%w: %s is not a prefix of %s", ErrNotPrefix, parent, p)
		}
	}

	return Path{segments: append([]Segment(nil), p.segments[len(parent.segments):]...)}, nil
}

// StartsWithObject reports whether the first segment addresses an object
// member.
func (p Path) StartsWithObject() bool {
	return len(p.segments) > 0 && p.segments[0].Kind == Member
}

// StartsWithArray reports whether the first segment addresses an array
// element.
func (p Path) StartsWithArray() bool {
	return len(p.segments) > 0 && p.segments[0].Kind == Index
}

// MemberAtStart returns the first segment's member name, if any.
func (p Path) MemberAtStart() (string, bool) {
	if !p.StartsWithObject() {
		return "", false
	}

	return p.segments[0].Name, true
}

// ArrayIndexAtStart returns the first segment's array index, if any.
func (p Path) ArrayIndexAtStart() (int, bool) {
	if !p.StartsWithArray() {
		return 0, false
	}

	return p.segments[0].Index, true
}

// Equal reports whether p and o address the same location.
func (p Path) Equal(o Path) bool {
	if len(p.segments) != len(o.segments) {
		return false
	}

	for i := range p.segments {
		if p.segments[i] != o.segments[i] {
			return false
		}
	}

	return true
}

// String renders the canonical form used as the node store key: member
// segments as ".name" (or "{name}" when name requires escaping), index
// segments as "[n]".
func (p Path) String() string {
	var sb strings.Builder

	for _, seg := range p.segments {
		switch seg.Kind {
		case Member:
			if IsBareName(seg.Name) {
				sb.WriteByte('.')
				sb.WriteString(seg.Name)
			} else {
				sb.WriteByte('{')
				sb.WriteString(seg.Name)
				sb.WriteByte('}')
			}
		case Index:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
		}
	}

	return sb.String()
}

// WithDollar renders the path prefixed with "$", the form used in
// diagnostics (e.g. "$.a.c"). The root path renders as "$".
func (p Path) WithDollar() string {
	if p.IsRoot() {
		return "$"
	}

	return "$" + p.String()
}
