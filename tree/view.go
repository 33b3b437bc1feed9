package tree

import (
	"fmt"

	"go.jacobcolvin.com/lazytree/node"
)

// Schema is a named set of [Descriptor]s describing the properties of one
// object shape.
type Schema struct {
	Name        string
	Descriptors []Descriptor
}

// View binds a [Schema] to an object [Handle], giving named, typed access
// to its declared properties without generating any code or using
// reflection to discover them.
type View struct {
	Handle

	schema      Schema
	descriptors map[string]Descriptor
}

// NewView binds schema to h.
func NewView(h Handle, schema Schema) View {
	m := make(map[string]Descriptor, len(schema.Descriptors))
	for _, d := range schema.Descriptors {
		m[d.Name] = d
	}

	return View{Handle: h, schema: schema, descriptors: m}
}

// Get dispatches to [Handle.Access] using the descriptor registered under
// name in this view's schema.
func (v View) Get(name string) (any, error) {
	desc, ok := v.descriptors[name]
	if !ok {
		return nil, &node.PathError{Path: v.Path().ExtendMember(name), Reason: fmt.Sprintf("%q has no descriptor named %q", v.schema.Name, name)}
	}

	return v.Access(desc)
}
