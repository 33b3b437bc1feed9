// Package node implements the lazy node and the per-document node store:
// the layer between the stateless [go.jacobcolvin.com/lazytree/scan]
// tokenizer and the read-only navigation API in
// [go.jacobcolvin.com/lazytree/tree].
//
// A [Document] owns one immutable character buffer and the mapping from
// canonical path string to already-discovered [Node]s. A [Node] starts as
// almost nothing — a buffer reference, a path, and a start offset — and is
// completed on demand: its end offset is computed the first time it is
// asked for, and its parsed value the first time that is asked for. Once a
// container node's members or elements have been fully walked, every
// direct child is interned at its canonical path and further lookups of
// that container's size are O(1).
//
// Two lookups of the same canonical path always return the same *Node
// (reference equality), which is what lets callers compare nodes instead
// of paths. The store tolerates benign concurrent interning races: the
// losing goroutine's freshly-built node is discarded in favor of whichever
// one the map already held.
package node
