// Package tree is the read-only navigation layer over a parsed
// [go.jacobcolvin.com/lazytree/node.Document]: a [Handle]
// is a cheap, immutable (doc, path) pair that resolves lazily against the
// node store on every call, plus the collection views and the dynamic
// property-dispatch machinery ([Descriptor], [AccessStore]) that a schema
// layer drives to bind named, typed properties onto arbitrary object
// nodes without reflection or code generation.
package tree
