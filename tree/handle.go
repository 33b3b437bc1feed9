package tree

import (
	"go.jacobcolvin.com/lazytree/node"
	"go.jacobcolvin.com/lazytree/path"
	"go.jacobcolvin.com/lazytree/scan"
)

// Handle is an immutable (document, path) pair. Creating or extending a
// Handle never touches the document; resolution against the node store
// happens lazily, only when a terminal method is called.
type Handle struct {
	doc       *node.Document
	path      path.Path
	accessors *AccessStore
	cache     *resultCache
}

// NewHandle returns a Handle at the document root. accessors may be nil, in
// which case [Handle.Access] falls back to plain [Handle.Value] conversion.
func NewHandle(doc *node.Document, accessors *AccessStore) Handle {
	return Handle{doc: doc, path: path.Root(), accessors: accessors}
}

// Path returns the canonical path this handle addresses.
func (h Handle) Path() path.Path {
	return h.path
}

// WithAccessCached returns a Handle that memoizes object-typed [Descriptor]
// results keyed by (path, name) — every Handle derived from it by
// navigation shares the same cache. Nested schema-object results are the
// only ones worth memoizing, since everything else is already O(1) after
// the node store has interned it.
func (h Handle) WithAccessCached() Handle {
	h.cache = newResultCache()

	return h
}

func (h Handle) resolve() (*node.Node, error) {
	return h.doc.Get(h.path)
}

// Member returns a Handle for a named child, valid whether or not that
// member currently exists.
func (h Handle) Member(name string) Handle {
	h.path = h.path.ExtendMember(name)

	return h
}

// Element returns a Handle for an indexed child, valid whether or not that
// element currently exists.
func (h Handle) Element(i int) Handle {
	h.path = h.path.ExtendIndex(i)

	return h
}

// Exists reports whether this handle's path currently resolves to a value.
func (h Handle) Exists() bool {
	_, err := h.resolve()

	return err == nil
}

// IsUndefined is the complement of [Handle.Exists].
func (h Handle) IsUndefined() bool {
	return !h.Exists()
}

// Type returns the resolved node's JSON kind.
func (h Handle) Type() (scan.Kind, error) {
	n, err := h.resolve()
	if err != nil {
		return 0, err
	}

	return n.Type(), nil
}

func (h Handle) isKind(k scan.Kind) bool {
	got, err := h.Type()

	return err == nil && got == k
}

// IsObject reports whether the handle resolves to an object, swallowing
// any navigation error as false.
func (h Handle) IsObject() bool { return h.isKind(scan.Object) }

// IsArray reports whether the handle resolves to an array.
func (h Handle) IsArray() bool { return h.isKind(scan.Array) }

// IsString reports whether the handle resolves to a string.
func (h Handle) IsString() bool { return h.isKind(scan.String) }

// IsNumber reports whether the handle resolves to a number.
func (h Handle) IsNumber() bool { return h.isKind(scan.Number) }

// IsBoolean reports whether the handle resolves to a boolean.
func (h Handle) IsBoolean() bool { return h.isKind(scan.Boolean) }

// IsNull reports whether the handle resolves to null.
func (h Handle) IsNull() bool { return h.isKind(scan.Null) }

// IsInteger reports whether a number handle's value has a zero fractional
// part.
func (h Handle) IsInteger() (bool, error) {
	n, err := h.resolve()
	if err != nil {
		return false, err
	}

	return n.IsInteger()
}

// Value fully materializes the resolved node.
func (h Handle) Value() (any, error) {
	n, err := h.resolve()
	if err != nil {
		return nil, err
	}

	return n.Value()
}

// Declaration returns the exact source text backing this handle.
func (h Handle) Declaration() (string, error) {
	n, err := h.resolve()
	if err != nil {
		return "", err
	}

	return n.Declaration()
}

// Size returns the number of members or elements in the resolved
// container.
func (h Handle) Size() (int, error) {
	n, err := h.resolve()
	if err != nil {
		return 0, err
	}

	return n.Size()
}

// IsEmpty reports whether the resolved container has zero members or
// elements.
func (h Handle) IsEmpty() (bool, error) {
	n, err := h.resolve()
	if err != nil {
		return false, err
	}

	return n.IsEmpty()
}

// Keys returns an object handle's member names in first-occurrence order.
func (h Handle) Keys() ([]string, error) {
	n, err := h.resolve()
	if err != nil {
		return nil, err
	}

	return n.Keys()
}

// List views an array handle as an ordered slice of element handles.
func (h Handle) List() ([]Handle, error) {
	n, err := h.resolve()
	if err != nil {
		return nil, err
	}

	if n.Type() != scan.Array {
		return nil, &node.TreeError{Op: "view as list", Actual: n.Type()}
	}

	size, err := n.Size()
	if err != nil {
		return nil, err
	}

	out := make([]Handle, size)
	for i := range out {
		out[i] = h.Element(i)
	}

	return out, nil
}

// Map views an object handle as a map from member name to member handle.
func (h Handle) Map() (map[string]Handle, error) {
	n, err := h.resolve()
	if err != nil {
		return nil, err
	}

	if n.Type() != scan.Object {
		return nil, &node.TreeError{Op: "view as map", Actual: n.Type()}
	}

	keys, err := n.Keys()
	if err != nil {
		return nil, err
	}

	out := make(map[string]Handle, len(keys))
	for _, k := range keys {
		out[k] = h.Member(k)
	}

	return out, nil
}

// MultiMap views an object handle whose member values are themselves
// arrays as a map from member name to the handles of that array's
// elements — the shape a repeated-key field takes once represented as
// valid JSON (a single key holding an array of values).
func (h Handle) MultiMap() (map[string][]Handle, error) {
	m, err := h.Map()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]Handle, len(m))

	for k, child := range m {
		list, err := child.List()
		if err != nil {
			return nil, err
		}

		out[k] = list
	}

	return out, nil
}

// ListProjection views an array of object handles as the slice of one
// named member from each, without materializing the rest of any element.
func (h Handle) ListProjection(member string) ([]Handle, error) {
	items, err := h.List()
	if err != nil {
		return nil, err
	}

	out := make([]Handle, len(items))
	for i, item := range items {
		out[i] = item.Member(member)
	}

	return out, nil
}
