package node

import (
	"fmt"
	"sync"

	"go.jacobcolvin.com/lazytree/path"
	"go.jacobcolvin.com/lazytree/scan"
)

// Node is a lazily-completed reference into a [Document]'s buffer. A freshly
// discovered Node knows only its path, kind, and start offset; every other
// fact about it — its end offset, its parsed value, its members or
// elements — is computed the first time a caller asks for it and memoized
// afterward.
type Node struct {
	doc  *Document
	path path.Path
	kind scan.Kind

	start int

	mu        sync.Mutex
	end       int // -1 until computed
	hasParsed bool
	parsed    any

	// Container scan cursor. scanPos is -1 until the first child has been
	// requested; scanDone is set once the closing bracket has been seen.
	scanPos   int
	scanDone  bool
	nextIndex int // Array: count of elements discovered so far.
	keys      []string
	seen      map[string]bool // Object: set of member names already listed in keys.
}

// Type reports the node's JSON value kind, known from the moment the node
// is discovered.
func (n *Node) Type() scan.Kind {
	return n.kind
}

// Path returns the canonical path this node was discovered at.
func (n *Node) Path() path.Path {
	return n.path
}

// Document returns the [Document] that owns this node.
func (n *Node) Document() *Document {
	return n.doc
}

// Start returns the byte offset of the node's first character.
func (n *Node) Start() int {
	return n.start
}

// End returns the byte offset just past the node's last character,
// computing it on first use.
func (n *Node) End() (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.end >= 0 {
		return n.end, nil
	}

	end, err := scan.SkipValue(n.doc.buf, n.start)
	if err != nil {
		return 0, err
	}

	n.end = end

	return end, nil
}

// Declaration returns the exact source text of this node, start to end
// inclusive of brackets/quotes.
func (n *Node) Declaration() (string, error) {
	end, err := n.End()
	if err != nil {
		return "", err
	}

	return string(n.doc.buf[n.start:end]), nil
}

// Value fully parses this node and every descendant, returning the
// familiar map[string]any / []any / string / float64 / bool / nil shape.
// The result is memoized. For the document root, a trailing non-whitespace
// byte after the value is reported as a format error.
func (n *Node) Value() (any, error) {
	n.mu.Lock()
	if n.hasParsed {
		v := n.parsed
		n.mu.Unlock()

		return v, nil
	}
	n.mu.Unlock()

	v, err := n.computeValue()
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	n.parsed = v
	n.hasParsed = true
	n.mu.Unlock()

	return v, nil
}

func (n *Node) computeValue() (any, error) {
	v, err := n.rawValue()
	if err != nil {
		return nil, err
	}

	if n.path.IsRoot() {
		end, err := n.End()
		if err != nil {
			return nil, err
		}

		trailing := scan.SkipWhitespace(n.doc.buf, end)
		if trailing != len(n.doc.buf) {
			stop := trailing + 20
			if stop > len(n.doc.buf) {
				stop = len(n.doc.buf)
			}

			return nil, &scan.FormatError{
				Offset:   trailing,
				Expected: "end of input",
				Snippet:  string(n.doc.buf[trailing:stop]),
			}
		}
	}

	return v, nil
}

func (n *Node) rawValue() (any, error) {
	switch n.kind {
	case scan.Object:
		members, err := n.Members(false)
		if err != nil {
			return nil, err
		}

		m := make(map[string]any, len(members))

		for _, child := range members {
			v, err := child.Value()
			if err != nil {
				return nil, err
			}

			m[child.lastMemberName()] = v
		}

		return m, nil

	case scan.Array:
		elems, err := n.Elements(false)
		if err != nil {
			return nil, err
		}

		arr := make([]any, len(elems))

		for i, child := range elems {
			v, err := child.Value()
			if err != nil {
				return nil, err
			}

			arr[i] = v
		}

		return arr, nil

	case scan.String:
		s, _, err := scan.ParseString(n.doc.buf, n.start)

		return s, err

	case scan.Number:
		v, _, _, _, err := scan.ParseNumber(n.doc.buf, n.start)

		return v, err

	case scan.Boolean:
		b, _, err := scan.ParseBool(n.doc.buf, n.start)

		return b, err

	case scan.Null:
		return nil, nil

	default:
		return nil, &TreeError{Op: "read value", Actual: n.kind}
	}
}

func (n *Node) lastMemberName() string {
	segs := n.path.Segments()

	return segs[len(segs)-1].Name
}

// IsInteger reports whether a number node's value has a zero fractional
// part, e.g. 12.0 is an integer even though its literal text contains a
// decimal point.
func (n *Node) IsInteger() (bool, error) {
	if n.kind != scan.Number {
		return false, &TreeError{Op: "check integer-ness", Actual: n.kind}
	}

	_, isInt, _, _, err := scan.ParseNumber(n.doc.buf, n.start)

	return isInt, err
}

// IsEmpty reports whether a container has zero members/elements, without
// scanning past the opening bracket.
func (n *Node) IsEmpty() (bool, error) {
	switch n.kind {
	case scan.Object:
		pos := scan.SkipWhitespace(n.doc.buf, n.start+1)

		return pos < len(n.doc.buf) && n.doc.buf[pos] == '}', nil
	case scan.Array:
		pos := scan.SkipWhitespace(n.doc.buf, n.start+1)

		return pos < len(n.doc.buf) && n.doc.buf[pos] == ']', nil
	default:
		return false, &TreeError{Op: "check emptiness", Actual: n.kind}
	}
}

// Size returns the number of unique members (object) or elements (array) in
// the container, scanning it to completion if it has not been already.
func (n *Node) Size() (int, error) {
	n.mu.Lock()
	if n.scanDone {
		size := n.nextIndex
		if n.kind == scan.Object {
			size = len(n.keys)
		}

		n.mu.Unlock()

		return size, nil
	}
	n.mu.Unlock()

	switch n.kind {
	case scan.Object:
		if _, err := n.Members(false); err != nil {
			return 0, err
		}

		return len(n.keys), nil
	case scan.Array:
		if _, err := n.Elements(false); err != nil {
			return 0, err
		}

		return n.nextIndex, nil
	default:
		return 0, &TreeError{Op: "measure size", Actual: n.kind}
	}
}

// Keys returns an object's member names in first-occurrence order,
// scanning it to completion if it has not been already.
func (n *Node) Keys() ([]string, error) {
	if n.kind != scan.Object {
		return nil, &TreeError{Op: "list keys", Actual: n.kind}
	}

	if _, err := n.Members(false); err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]string, len(n.keys))
	copy(out, n.keys)

	return out, nil
}

// Member resolves a single object property by name, scanning forward from
// wherever this object's cursor last stopped. Repeated lookups of an
// already-discovered member are O(1).
func (n *Node) Member(name string) (*Node, error) {
	if n.kind != scan.Object {
		return nil, &TreeError{Op: "access member", Actual: n.kind}
	}

	target := n.path.ExtendMember(name)
	if child, ok := n.doc.lookup(target); ok {
		return child, nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if child, ok := n.doc.lookup(target); ok {
		return child, nil
	}

	for !n.scanDone {
		key, kind, start, done, err := n.nextMemberLocked()
		if err != nil {
			return nil, err
		}

		if done {
			break
		}

		childPath := n.path.ExtendMember(key)
		child := n.doc.intern(childPath, kind, start)

		if key == name {
			return child, nil
		}
	}

	return nil, &PathError{Path: target, Reason: fmt.Sprintf("object has no member named %q", name)}
}

// Members drains the remainder of an object's scan and returns every
// member in first-occurrence order. Every member is interned in the
// document's store whatever cacheNodes says; when cacheNodes is true each
// returned member's value is also parsed and memoized before Members
// returns.
func (n *Node) Members(cacheNodes bool) ([]*Node, error) {
	if n.kind != scan.Object {
		return nil, &TreeError{Op: "list members", Actual: n.kind}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for !n.scanDone {
		key, kind, start, done, err := n.nextMemberLocked()
		if err != nil {
			return nil, err
		}

		if done {
			break
		}

		childPath := n.path.ExtendMember(key)
		n.doc.intern(childPath, kind, start)
	}

	out := make([]*Node, 0, len(n.keys))

	for _, key := range n.keys {
		child, ok := n.doc.lookup(n.path.ExtendMember(key))
		if !ok {
			return nil, &PathError{Path: n.path.ExtendMember(key), Reason: "member vanished from store"}
		}

		out = append(out, child)
	}

	if cacheNodes {
		for _, child := range out {
			if _, err := child.Value(); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// nextMemberLocked advances the object scan cursor by exactly one key/value
// pair, or detects the closing brace. Callers must hold n.mu.
func (n *Node) nextMemberLocked() (key string, kind scan.Kind, start int, done bool, err error) {
	buf := n.doc.buf

	pos := n.scanPos
	if pos < 0 {
		pos = scan.SkipWhitespace(buf, n.start+1)
	}

	if pos >= len(buf) {
		return "", 0, 0, false, &scan.FormatError{Offset: pos, Expected: "'}'", Snippet: ""}
	}

	if buf[pos] == '}' {
		n.scanPos = pos + 1
		n.scanDone = true
		n.end = pos + 1

		return "", 0, 0, true, nil
	}

	if buf[pos] == ',' {
		pos++
		pos = scan.SkipWhitespace(buf, pos)
	}

	keyStr, next, err := scan.ParseString(buf, pos)
	if err != nil {
		return "", 0, 0, false, err
	}

	next = scan.SkipWhitespace(buf, next)

	if next >= len(buf) || buf[next] != ':' {
		return "", 0, 0, false, &scan.FormatError{Offset: next, Expected: "':'", Snippet: snippetAt(buf, next)}
	}

	next = scan.SkipWhitespace(buf, next+1)

	kind, err = scan.KindAt(buf, next)
	if err != nil {
		return "", 0, 0, false, err
	}

	valStart := next

	valEnd, err := scan.SkipValue(buf, next)
	if err != nil {
		return "", 0, 0, false, err
	}

	after := scan.SkipWhitespace(buf, valEnd)
	if after >= len(buf) {
		return "", 0, 0, false, &scan.FormatError{Offset: after, Expected: "',' or '}'", Snippet: ""}
	}

	switch buf[after] {
	case ',', '}':
		n.scanPos = after
	default:
		return "", 0, 0, false, &scan.FormatError{Offset: after, Expected: "',' or '}'", Snippet: snippetAt(buf, after)}
	}

	if !n.seen[keyStr] {
		if n.seen == nil {
			n.seen = make(map[string]bool)
		}

		n.seen[keyStr] = true
		n.keys = append(n.keys, keyStr)
	}

	return keyStr, kind, valStart, false, nil
}

// Element resolves a single array entry by zero-based index, scanning
// forward from wherever this array's cursor last stopped.
func (n *Node) Element(i int) (*Node, error) {
	if n.kind != scan.Array {
		return nil, &TreeError{Op: "access element", Actual: n.kind}
	}

	if i < 0 {
		return nil, &PathError{Path: n.path.ExtendIndex(i), Reason: "negative index"}
	}

	target := n.path.ExtendIndex(i)
	if child, ok := n.doc.lookup(target); ok {
		return child, nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if child, ok := n.doc.lookup(target); ok {
		return child, nil
	}

	for !n.scanDone {
		kind, start, idx, done, err := n.nextElementLocked()
		if err != nil {
			return nil, err
		}

		if done {
			break
		}

		childPath := n.path.ExtendIndex(idx)
		child := n.doc.intern(childPath, kind, start)

		if idx == i {
			return child, nil
		}
	}

	return nil, &PathError{Path: target, Reason: fmt.Sprintf("index %d out of range", i)}
}

// Elements drains the remainder of an array's scan and returns every
// element in order.
func (n *Node) Elements(cacheNodes bool) ([]*Node, error) {
	if n.kind != scan.Array {
		return nil, &TreeError{Op: "list elements", Actual: n.kind}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for !n.scanDone {
		kind, start, idx, done, err := n.nextElementLocked()
		if err != nil {
			return nil, err
		}

		if done {
			break
		}

		n.doc.intern(n.path.ExtendIndex(idx), kind, start)
	}

	out := make([]*Node, n.nextIndex)

	for i := range out {
		child, ok := n.doc.lookup(n.path.ExtendIndex(i))
		if !ok {
			return nil, &PathError{Path: n.path.ExtendIndex(i), Reason: "element vanished from store"}
		}

		out[i] = child
	}

	if cacheNodes {
		for _, child := range out {
			if _, err := child.Value(); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func (n *Node) nextElementLocked() (kind scan.Kind, start int, idx int, done bool, err error) {
	buf := n.doc.buf

	pos := n.scanPos
	if pos < 0 {
		pos = scan.SkipWhitespace(buf, n.start+1)
	}

	if pos >= len(buf) {
		return 0, 0, 0, false, &scan.FormatError{Offset: pos, Expected: "']'", Snippet: ""}
	}

	if buf[pos] == ']' {
		n.scanPos = pos + 1
		n.scanDone = true
		n.end = pos + 1

		return 0, 0, 0, true, nil
	}

	if buf[pos] == ',' {
		pos++
		pos = scan.SkipWhitespace(buf, pos)
	}

	kind, err = scan.KindAt(buf, pos)
	if err != nil {
		return 0, 0, 0, false, err
	}

	start = pos

	valEnd, err := scan.SkipValue(buf, pos)
	if err != nil {
		return 0, 0, 0, false, err
	}

	after := scan.SkipWhitespace(buf, valEnd)
	if after >= len(buf) {
		return 0, 0, 0, false, &scan.FormatError{Offset: after, Expected: "',' or ']'", Snippet: ""}
	}

	switch buf[after] {
	case ',', ']':
		n.scanPos = after
	default:
		return 0, 0, 0, false, &scan.FormatError{Offset: after, Expected: "',' or ']'", Snippet: snippetAt(buf, after)}
	}

	idx = n.nextIndex
	n.nextIndex++

	return kind, start, idx, false, nil
}

// child resolves one path segment against this node, dispatching on
// whether the segment is a member or index. It is the single step used by
// [Document.Get]'s ancestor walk.
func (n *Node) child(seg path.Segment) (*Node, error) {
	switch seg.Kind {
	case path.Member:
		if n.kind != scan.Object {
			return nil, &PathError{Path: n.path.ExtendMember(seg.Name), Reason: fmt.Sprintf("cannot access a member of a %s value", n.kind)}
		}

		return n.Member(seg.Name)
	case path.Index:
		if n.kind != scan.Array {
			return nil, &PathError{Path: n.path.ExtendIndex(seg.Index), Reason: fmt.Sprintf("cannot access an element of a %s value", n.kind)}
		}

		return n.Element(seg.Index)
	default:
		return nil, &PathError{Path: n.path, Reason: "unrecognized path segment kind"}
	}
}

func snippetAt(buf []byte, i int) string {
	stop := i + 20
	if stop > len(buf) {
		stop = len(buf)
	}

	if i > len(buf) {
		return ""
	}

	return string(buf[i:stop])
}
