package node

import "go.jacobcolvin.com/lazytree/scan"

// VisitFunc is invoked once per node during a [Node.Visit] traversal.
// Returning an error stops the walk and propagates the error to the
// caller of Visit.
type VisitFunc func(n *Node) error

// Visit walks the subtree rooted at n in depth-first pre-order: n itself
// first, then — for object and array nodes only — each child in source
// order. When kind is non-nil, fn is only called for nodes whose Type()
// matches it, but traversal still descends through every container
// regardless of its own kind match.
func (n *Node) Visit(kind *scan.Kind, fn VisitFunc) error {
	if kind == nil || *kind == n.kind {
		if err := fn(n); err != nil {
			return err
		}
	}

	switch n.kind {
	case scan.Object:
		members, err := n.Members(false)
		if err != nil {
			return err
		}

		for _, child := range members {
			if err := child.Visit(kind, fn); err != nil {
				return err
			}
		}

	case scan.Array:
		elems, err := n.Elements(false)
		if err != nil {
			return err
		}

		for _, child := range elems {
			if err := child.Visit(kind, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// Predicate reports whether a node matches some caller-defined criterion,
// for use with [Node.Find].
type Predicate func(n *Node) bool

// stopFind is returned internally to unwind Visit once Find has its match;
// it never escapes Find itself.
type stopFind struct{ found *Node }

func (stopFind) Error() string { return "node: find match" }

// Find returns the first node, in depth-first pre-order, for which pred
// returns true — restricting the search to nodes matching kind first, when
// kind is non-nil. It reports false if no node matches.
func (n *Node) Find(kind *scan.Kind, pred Predicate) (*Node, bool, error) {
	err := n.Visit(kind, func(candidate *Node) error {
		if pred(candidate) {
			return stopFind{found: candidate}
		}

		return nil
	})
	if err == nil {
		return nil, false, nil
	}

	if stop, ok := err.(stopFind); ok { //nolint:errorlint // sentinel is never wrapped
		return stop.found, true, nil
	}

	return nil, false, err
}
