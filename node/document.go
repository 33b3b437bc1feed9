package node

import (
	"sync"

	"go.jacobcolvin.com/lazytree/path"
	"go.jacobcolvin.com/lazytree/scan"
)

// Document owns one immutable JSON character buffer and the per-document
// node store. It is the unit of lifetime for every [Node] derived from it.
type Document struct {
	buf      []byte
	listener func(path.Path)

	mu    sync.Mutex
	store map[string]*Node
}

// Option configures a [Document] at parse time.
type Option func(*Document)

// WithPathListener registers a callback invoked, synchronously, with every
// non-root path looked up through this document, useful for coverage or
// dependency tracking. The listener need not be safe for concurrent invocation; the
// document's own single-writer contract is what makes that sufficient.
func WithPathListener(fn func(path.Path)) Option {
	return func(d *Document) {
		d.listener = fn
	}
}

// Parse tokenizes the root value of data enough to classify it and records
// its start offset. No further parsing happens until a terminal operation
// is invoked on some node derived from the returned [Document].
func Parse(data []byte, opts ...Option) (*Document, error) {
	d := &Document{buf: data, store: make(map[string]*Node)}

	for _, opt := range opts {
		opt(d)
	}

	start := scan.SkipWhitespace(d.buf, 0)

	kind, err := scan.KindAt(d.buf, start)
	if err != nil {
		return nil, err
	}

	d.store[path.Root().String()] = &Node{doc: d, path: path.Root(), kind: kind, start: start, end: -1, scanPos: -1}

	return d, nil
}

// Buffer returns the document's immutable backing buffer. Callers must not
// mutate the returned slice.
func (d *Document) Buffer() []byte {
	return d.buf
}

// Root returns the document's root node. It always exists: [Parse] fails
// outright if the buffer does not start with a recognizable JSON value.
func (d *Document) Root() *Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.store[path.Root().String()]
}

// Get resolves p against the node store, walking forward one segment at a
// time from the closest already-interned ancestor. Any segment of that
// walk can fail: a missing member, an out-of-range index, or a parent whose
// type does not match the segment kind yields a [*PathError], and malformed
// JSON met while scanning yields a format error.
func (d *Document) Get(p path.Path) (*Node, error) {
	if n, ok := d.lookup(p); ok {
		d.notify(p)

		return n, nil
	}

	segs := p.Segments()

	for depth := len(segs); depth >= 0; depth-- {
		ancestor := path.FromSegments(segs[:depth])

		anc, ok := d.lookup(ancestor)
		if !ok {
			continue
		}

		cur := anc

		for i := depth; i < len(segs); i++ {
			next, err := cur.child(segs[i])
			if err != nil {
				return nil, err
			}

			cur = next
		}

		d.notify(p)

		return cur, nil
	}

	// The root is always interned by Parse, so depth 0 always hits above.
	return nil, &PathError{Path: p, Reason: "unreachable: no interned ancestor"}
}

func (d *Document) notify(p path.Path) {
	if d.listener != nil && !p.IsRoot() {
		d.listener(p)
	}
}

func (d *Document) lookup(p path.Path) (*Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, ok := d.store[p.String()]

	return n, ok
}

// intern records a freshly discovered child at p, kind, start unless
// another goroutine already won the race to do so — in which case the
// caller's node is discarded and the winner's is returned.
func (d *Document) intern(p path.Path, kind scan.Kind, start int) *Node {
	key := p.String()

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.store[key]; ok {
		return existing
	}

	n := &Node{doc: d, path: p, kind: kind, start: start, end: -1, scanPos: -1}
	d.store[key] = n

	return n
}

func (d *Document) hasInterned(p path.Path) bool {
	_, ok := d.lookup(p)

	return ok
}
