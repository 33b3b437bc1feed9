package schema

import (
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// RequiredMode states whether a [Descriptor]'s presence is mandatory,
// optional, or left to whatever an enclosing [Object]'s own Required list
// says. Merge priority is Yes > No > Auto: once any layer says Yes or No,
// weaker layers cannot soften or harden it.
type RequiredMode int

const (
	Auto RequiredMode = iota
	No
	Yes
)

func (m RequiredMode) merge(other RequiredMode) RequiredMode {
	if m > other {
		return m
	}

	return other
}

// Descriptor names one object property and the layered constraints its
// value must satisfy. The final
// constraint set actually checked is the merge, in priority order, of:
//
//  1. TypeConstraints — the result type's own class-wide rules (e.g.
//     every string in the document must match a house-wide pattern).
//  2. MetaConstraints — constraints attached to the accessor itself via a
//     named, out-of-line annotation rather than written inline.
//  3. Constraints — direct, inline constraints on the property.
//  4. DeclaredConstraints — constraints carried by the declared result
//     type's own reusable schema (a $ref resolution).
//
// Use [Descriptor.Resolved] to obtain the merged schema; [ValidateDescriptor]
// calls it automatically.
type Descriptor struct {
	Name                string
	Types               []string
	TypeConstraints     *jsonschema.Schema
	MetaConstraints     *jsonschema.Schema
	Constraints         *jsonschema.Schema
	DeclaredConstraints *jsonschema.Schema
	Required            RequiredMode
	DependentRequired   []string

	// DiffOrder, when non-nil, overrides the ambient diff mode's
	// order/additional-item policy for this property's value. It is
	// consumed by diff-engine callers building a property-info resolver
	// from a schema's annotations (see cmd/lazytree's diff command);
	// validation itself never reads it.
	DiffOrder *OrderOverride
}

// OrderOverride overrides the order/additional-item comparison policy a
// diff applies to one property's collection value, regardless of whether
// that value turns out to be an array or an object.
type OrderOverride struct {
	AnyOrder      bool
	AnyAdditional bool
}

// Resolved merges the descriptor's four constraint layers, highest
// priority first, via [MergeConstraints]. A descriptor with no constraint
// layers at all resolves to nil.
func (d Descriptor) Resolved() (*jsonschema.Schema, error) {
	return MergeConstraints(d.TypeConstraints, d.MetaConstraints, d.Constraints, d.DeclaredConstraints)
}

// ResolvedRequired folds the requiredness signal of the descriptor's own
// Required field and each of its four constraint layers into one mode,
// strongest wins: Yes > No > Auto. A layer asks for the property by naming
// it in its own "required" keyword, or states either direction explicitly
// through an "x-required" boolean; a layer saying neither contributes
// Auto. [ValidateDescriptor] consults this, not the Required field alone.
func (d Descriptor) ResolvedRequired() RequiredMode {
	mode := d.Required

	for _, layer := range []*jsonschema.Schema{d.TypeConstraints, d.MetaConstraints, d.Constraints, d.DeclaredConstraints} {
		mode = mode.merge(layerRequiredMode(layer, d.Name))
	}

	return mode
}

func layerRequiredMode(layer *jsonschema.Schema, name string) RequiredMode {
	if layer == nil {
		return Auto
	}

	if v, ok := layer.Extra["x-required"].(bool); ok {
		if v {
			return Yes
		}

		return No
	}

	if slices.Contains(layer.Required, name) {
		return Yes
	}

	return Auto
}

// Object groups descriptors into one shape, plus the constraints on the
// object's own member count.
type Object struct {
	Descriptors   []Descriptor
	MinProperties *int
	MaxProperties *int
}

// Descriptor looks up a descriptor by name.
func (o Object) Descriptor(name string) (Descriptor, bool) {
	for _, d := range o.Descriptors {
		if d.Name == name {
			return d, true
		}
	}

	return Descriptor{}, false
}
