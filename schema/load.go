package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// FromJSONSchema converts one JSON Schema object's "properties",
// "required", "minProperties", and "maxProperties" keywords into an
// [Object] that [ValidateObject] can check directly.
//
// Each property's four constraint layers are sourced from the
// schema's own vocabulary rather than an invented convention:
//
//   - Constraints (direct) is the property's own inline keywords.
//   - DeclaredConstraints (declared result type use) is the schema the
//     property's "$ref" points at, resolved against "$defs"/"definitions".
//   - MetaConstraints (accessor annotation) is a "$defs"/"definitions"
//     entry named after the property itself, letting a schema author
//     attach constraints to an accessor out of line from its inline use.
//   - TypeConstraints (result-type class) is a "$defs"/"definitions"
//     entry named after the property's resolved JSON type (e.g.
//     "string", "integer"), applying a house-wide rule to every property
//     of that type.
//
// A schema with none of these extra layers behaves exactly as a single
// flat constraint set, since the other three resolve to nil and
// [Descriptor.Resolved] merges them away.
func FromJSONSchema(s *jsonschema.Schema) Object {
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	names := s.PropertyOrder
	if len(names) == 0 {
		for name := range s.Properties {
			names = append(names, name)
		}
	}

	defs := mergedDefs(s)

	descriptors := make([]Descriptor, 0, len(names))

	for _, name := range names {
		prop := s.Properties[name]
		if prop == nil {
			continue
		}

		mode := Auto
		if required[name] {
			mode = Yes
		}

		types := prop.Types
		if len(types) == 0 && prop.Type != "" {
			types = []string{prop.Type}
		}

		var typeConstraints *jsonschema.Schema
		if len(types) > 0 {
			typeConstraints = defs[types[0]]
		}

		descriptors = append(descriptors, Descriptor{
			Name:                name,
			Types:               types,
			TypeConstraints:     typeConstraints,
			MetaConstraints:     defs[name],
			Constraints:         prop,
			DeclaredConstraints: resolveRef(prop.Ref, defs),
			Required:            mode,
			DiffOrder:           diffOrderOverride(prop),
		})
	}

	return Object{
		Descriptors:   descriptors,
		MinProperties: s.MinProperties,
		MaxProperties: s.MaxProperties,
	}
}

// mergedDefs combines a schema's "$defs" and "definitions" maps, preferring
// "$defs" on a name collision.
func mergedDefs(s *jsonschema.Schema) map[string]*jsonschema.Schema {
	defs := make(map[string]*jsonschema.Schema, len(s.Defs)+len(s.Definitions))

	for name, def := range s.Definitions {
		defs[name] = def
	}

	for name, def := range s.Defs {
		defs[name] = def
	}

	return defs
}

// diffOrderOverride reads "x-diffAnyOrder" and "x-diffAnyAdditional" out of
// prop's catch-all keyword map, letting a schema author loosen the diff
// engine's order/additional-item policy for one property's collection value
// without touching the ambient comparison mode. Neither key present yields a
// nil override.
func diffOrderOverride(prop *jsonschema.Schema) *OrderOverride {
	if prop.Extra == nil {
		return nil
	}

	anyOrder, hasOrder := prop.Extra["x-diffAnyOrder"].(bool)
	anyAdditional, hasAdditional := prop.Extra["x-diffAnyAdditional"].(bool)

	if !hasOrder && !hasAdditional {
		return nil
	}

	return &OrderOverride{AnyOrder: anyOrder, AnyAdditional: anyAdditional}
}

// refPrefixes are the "$ref" forms [resolveRef] knows how to resolve
// against a schema's own "$defs"/"definitions" map.
var refPrefixes = []string{"#/$defs/", "#/definitions/"}

// resolveRef looks up a local "$ref" (e.g. "#/$defs/Age") in defs. Refs it
// does not recognize (external, non-local) resolve to nil rather than
// erroring, since an external reference names a layer this loader has no
// way to fetch.
func resolveRef(ref string, defs map[string]*jsonschema.Schema) *jsonschema.Schema {
	if ref == "" {
		return nil
	}

	for _, prefix := range refPrefixes {
		if name, ok := strings.CutPrefix(ref, prefix); ok {
			return defs[name]
		}
	}

	return nil
}

// ParseJSONSchema parses raw JSON Schema text and converts it to an
// [Object] via [FromJSONSchema].
func ParseJSONSchema(data []byte) (Object, error) {
	var s jsonschema.Schema

	if err := json.Unmarshal(data, &s); err != nil {
		return Object{}, fmt.Errorf("schema: parse json schema: %w", err)
	}

	return FromJSONSchema(&s), nil
}
