package tree

import (
	"go.jacobcolvin.com/lazytree/node"
	"go.jacobcolvin.com/lazytree/scan"
)

// rewrap resolves h, hands the underlying [*node.Node] to edit, and wraps
// whatever new root edit produces in a fresh root [Handle] sharing h's
// accessors. Every "mutating" operation on [Handle] is copy-on-write: it
// never touches h's own document, and the Handle it returns
// addresses an entirely independent tree rooted elsewhere.
func (h Handle) rewrap(edit func(*node.Node) (*node.Node, error)) (Handle, error) {
	n, err := h.resolve()
	if err != nil {
		return Handle{}, err
	}

	newRoot, err := edit(n)
	if err != nil {
		return Handle{}, err
	}

	return NewHandle(newRoot.Document(), h.accessors), nil
}

// ReplaceWith returns a Handle at the root of a new, independent document
// in which h's own node has been replaced by the given JSON text.
func (h Handle) ReplaceWith(json string) (Handle, error) {
	return h.rewrap(func(n *node.Node) (*node.Node, error) { return n.ReplaceWith(json) })
}

// AddMembers returns a Handle at the root of a new document with members
// appended to the object h addresses.
func (h Handle) AddMembers(members ...node.Member) (Handle, error) {
	return h.rewrap(func(n *node.Node) (*node.Node, error) { return n.AddMembers(members...) })
}

// RemoveMembers returns a Handle at the root of a new document with the
// named members removed from the object h addresses.
func (h Handle) RemoveMembers(names ...string) (Handle, error) {
	return h.rewrap(func(n *node.Node) (*node.Node, error) { return n.RemoveMembers(names...) })
}

// AddElements returns a Handle at the root of a new document with values
// appended to the array h addresses.
func (h Handle) AddElements(values ...string) (Handle, error) {
	return h.rewrap(func(n *node.Node) (*node.Node, error) { return n.AddElements(values...) })
}

// PutElements returns a Handle at the root of a new document with values
// inserted into the array h addresses, starting at index at.
func (h Handle) PutElements(at int, values ...string) (Handle, error) {
	return h.rewrap(func(n *node.Node) (*node.Node, error) { return n.PutElements(at, values...) })
}

// RemoveElements returns a Handle at the root of a new document with
// elements [from, to) removed from the array h addresses.
func (h Handle) RemoveElements(from, to int) (Handle, error) {
	return h.rewrap(func(n *node.Node) (*node.Node, error) { return n.RemoveElements(from, to) })
}

// Visit walks h's subtree in depth-first pre-order, invoking fn once per
// resolved node (restricted to kind when non-nil).
func (h Handle) Visit(kind *scan.Kind, fn func(Handle) error) error {
	n, err := h.resolve()
	if err != nil {
		return err
	}

	return n.Visit(kind, func(child *node.Node) error {
		return fn(Handle{doc: h.doc, path: child.Path(), accessors: h.accessors})
	})
}

// Find returns the first descendant of h, in depth-first pre-order,
// matching pred (restricted to kind when non-nil).
func (h Handle) Find(kind *scan.Kind, pred func(Handle) bool) (Handle, bool, error) {
	n, err := h.resolve()
	if err != nil {
		return Handle{}, false, err
	}

	found, ok, err := n.Find(kind, func(candidate *node.Node) bool {
		return pred(Handle{doc: h.doc, path: candidate.Path(), accessors: h.accessors})
	})
	if err != nil || !ok {
		return Handle{}, false, err
	}

	return Handle{doc: h.doc, path: found.Path(), accessors: h.accessors}, true, nil
}
