package main

import (
	"go.jacobcolvin.com/lazytree/diff"
	"go.jacobcolvin.com/lazytree/path"
	"go.jacobcolvin.com/lazytree/schema"
)

// propertyInfoFromSchema builds a [diff.PropertyInfo] that overrides the
// ambient comparison policy for any property whose descriptor carries a
// DiffOrder annotation. The lookup is keyed by the last segment's member
// name, so an override on "tags" applies to every "tags" property anywhere
// in the document, not just at one fixed path.
func propertyInfoFromSchema(obj schema.Object) *diff.PropertyInfo {
	overrides := make(map[string]schema.OrderOverride)

	for _, desc := range obj.Descriptors {
		if desc.DiffOrder != nil {
			overrides[desc.Name] = *desc.DiffOrder
		}
	}

	if len(overrides) == 0 {
		return nil
	}

	lookup := func(p path.Path) (diff.OrderPolicy, bool) {
		segs := p.Segments()
		if len(segs) == 0 {
			return diff.OrderPolicy{}, false
		}

		last := segs[len(segs)-1]
		if last.Kind != path.Member {
			return diff.OrderPolicy{}, false
		}

		override, ok := overrides[last.Name]
		if !ok {
			return diff.OrderPolicy{}, false
		}

		return diff.OrderPolicy{AnyOrder: override.AnyOrder, AnyAdditional: override.AnyAdditional}, true
	}

	return &diff.PropertyInfo{ArrayPolicy: lookup, ObjectPolicy: lookup}
}
