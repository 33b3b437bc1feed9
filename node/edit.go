package node

import (
	"strings"

	"go.jacobcolvin.com/lazytree/scan"
)

// Member is one name/JSON-text pair to splice into an object via
// [Node.AddMembers]. JSON is raw, already-valid JSON text, not a Go value —
// callers building it from host values are expected to marshal it first.
type Member struct {
	Name string
	JSON string
}

// ReplaceWith returns the root of a brand-new [Document] whose buffer is
// identical to n's document except that n's own declaration is replaced by
// json. This is the general case every other edit operation in this file
// reduces to: all "mutating" operations are really "splice a
// new buffer, parse it fresh, hand back the new root", never a mutation of
// the node or document the caller started with.
func (n *Node) ReplaceWith(json string) (*Node, error) {
	end, err := n.End()
	if err != nil {
		return nil, err
	}

	return n.spliceDocument(n.start, end, json)
}

// AddMembers returns a new document root with members appended to an
// object node, in the order given.
func (n *Node) AddMembers(members ...Member) (*Node, error) {
	if n.kind != scan.Object {
		return nil, &TreeError{Op: "addMembers", Actual: n.kind}
	}

	end, err := n.End()
	if err != nil {
		return nil, err
	}

	empty, err := n.IsEmpty()
	if err != nil {
		return nil, err
	}

	insertAt := end - 1 // just before the closing '}'

	var sb strings.Builder
	if !empty && len(members) > 0 {
		sb.WriteByte(',')
	}

	for i, m := range members {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteByte('"')
		sb.WriteString(escapeJSONString(m.Name))
		sb.WriteString(`":`)
		sb.WriteString(m.JSON)
	}

	return n.spliceDocument(insertAt, insertAt, sb.String())
}

// RemoveMembers returns a new document root with the named members of an
// object node deleted. Names not present are silently ignored, matching
// the copy-on-write operations' "always succeeds, produces an independent
// tree" contract — the host application decides beforehand, via Exists,
// whether absence should be an error.
func (n *Node) RemoveMembers(names ...string) (*Node, error) {
	if n.kind != scan.Object {
		return nil, &TreeError{Op: "removeMembers", Actual: n.kind}
	}

	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	members, err := n.Members(false)
	if err != nil {
		return nil, err
	}

	keep := make([]string, 0, len(members))

	for _, child := range members {
		name := child.lastMemberName()
		if drop[name] {
			continue
		}

		decl, err := child.Declaration()
		if err != nil {
			return nil, err
		}

		keep = append(keep, `"`+escapeJSONString(name)+`":`+decl)
	}

	end, err := n.End()
	if err != nil {
		return nil, err
	}

	return n.spliceDocument(n.start, end, "{"+strings.Join(keep, ",")+"}")
}

// AddElements returns a new document root with values appended, in order,
// to the end of an array node.
func (n *Node) AddElements(values ...string) (*Node, error) {
	if n.kind != scan.Array {
		return nil, &TreeError{Op: "addElements", Actual: n.kind}
	}

	size, err := n.Size()
	if err != nil {
		return nil, err
	}

	return n.PutElements(size, values...)
}

// PutElements returns a new document root with values inserted into an
// array node starting at index at, shifting existing elements at or after
// at to higher indices. at may equal the array's current size to append.
func (n *Node) PutElements(at int, values ...string) (*Node, error) {
	if n.kind != scan.Array {
		return nil, &TreeError{Op: "putElements", Actual: n.kind}
	}

	elems, err := n.Elements(false)
	if err != nil {
		return nil, err
	}

	if at < 0 || at > len(elems) {
		return nil, &PathError{Path: n.path.ExtendIndex(at), Reason: "insertion index out of range"}
	}

	if len(values) == 0 {
		return n.spliceDocument(n.start, n.start, "")
	}

	joined := strings.Join(values, ",")

	switch {
	case len(elems) == 0:
		end, endErr := n.End()
		if endErr != nil {
			return nil, endErr
		}

		return n.spliceDocument(end-1, end-1, joined)

	case at == len(elems):
		lastEnd, endErr := elems[len(elems)-1].End()
		if endErr != nil {
			return nil, endErr
		}

		return n.spliceDocument(lastEnd, lastEnd, ","+joined)

	default:
		insertAt := elems[at].start

		return n.spliceDocument(insertAt, insertAt, joined+",")
	}
}

// RemoveElements returns a new document root with elements [from, to)
// deleted from an array node.
func (n *Node) RemoveElements(from, to int) (*Node, error) {
	if n.kind != scan.Array {
		return nil, &TreeError{Op: "removeElements", Actual: n.kind}
	}

	elems, err := n.Elements(false)
	if err != nil {
		return nil, err
	}

	if from < 0 || to < from || to > len(elems) {
		return nil, &PathError{Path: n.path, Reason: "removeElements range out of bounds"}
	}

	if from == to {
		return n.spliceDocument(n.start, n.start, "")
	}

	var start, end int

	if from == 0 {
		start = n.start + 1

		if to == len(elems) {
			arrEnd, endErr := n.End()
			if endErr != nil {
				return nil, endErr
			}

			end = arrEnd - 1
		} else {
			end = elems[to].start
		}
	} else {
		prevEnd, prevErr := elems[from-1].End()
		if prevErr != nil {
			return nil, prevErr
		}

		start = prevEnd

		lastRemovedEnd, lastErr := elems[to-1].End()
		if lastErr != nil {
			return nil, lastErr
		}

		end = lastRemovedEnd
	}

	return n.spliceDocument(start, end, "")
}

// spliceDocument builds a brand-new buffer equal to n's document buffer
// with [from, to) replaced by replacement, then parses it as an entirely
// independent [Document]. The source document is never touched.
func (n *Node) spliceDocument(from, to int, replacement string) (*Node, error) {
	buf := n.doc.buf

	newBuf := make([]byte, 0, len(buf)-(to-from)+len(replacement))
	newBuf = append(newBuf, buf[:from]...)
	newBuf = append(newBuf, replacement...)
	newBuf = append(newBuf, buf[to:]...)

	newDoc, err := Parse(newBuf)
	if err != nil {
		return nil, err
	}

	return newDoc.Root(), nil
}

func escapeJSONString(s string) string {
	var sb strings.Builder

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
