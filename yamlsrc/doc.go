// Package yamlsrc is a thin external collaborator that turns a YAML
// document into canonical JSON text. It exists because real consumers of a
// path-addressable tree are frequently handed YAML configuration rather
// than JSON; it rewrites the buffer ahead of time, the same way a
// non-standard-JSON preprocessor would, producing a JSON character buffer
// and handing it off without ever touching the node store or tree layer
// itself.
//
// [ToJSON] walks the parsed YAML AST in key-declaration order so the JSON
// text it writes feeds a document whose member order matches the source,
// rather than round-tripping through a Go map and losing that order to
// alphabetization.
package yamlsrc
