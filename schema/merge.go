package schema

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// MergeConstraints combines constraint layers, highest priority first,
// into a single schema. Unlike a schema-generation pipeline's "first
// non-empty value wins" merge, numeric bounds here always keep whichever
// layer is tighter — a larger Minimum, a smaller Maximum — since every
// layer is a constraint the value must satisfy, not a default waiting to
// be overridden. Enum values that disagree across layers cannot be
// reconciled and produce a [*ProgrammingError].
func MergeConstraints(layers ...*jsonschema.Schema) (*jsonschema.Schema, error) {
	var result *jsonschema.Schema

	for _, layer := range layers {
		if layer == nil {
			continue
		}

		if result == nil {
			result = cloneScalarFields(layer)

			continue
		}

		if err := mergeInto(result, layer); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func cloneScalarFields(src *jsonschema.Schema) *jsonschema.Schema {
	cp := *src

	return &cp
}

func mergeInto(dst, src *jsonschema.Schema) error {
	if dst.Type == "" && len(dst.Types) == 0 {
		dst.Type = src.Type
		dst.Types = src.Types
	}

	if err := mergeEnum(dst, src); err != nil {
		return err
	}

	mergePattern(dst, src)

	dst.Minimum = tighterLowerBound(dst.Minimum, src.Minimum)
	dst.Maximum = tighterUpperBound(dst.Maximum, src.Maximum)
	dst.ExclusiveMinimum = tighterLowerBound(dst.ExclusiveMinimum, src.ExclusiveMinimum)
	dst.ExclusiveMaximum = tighterUpperBound(dst.ExclusiveMaximum, src.ExclusiveMaximum)
	dst.MinLength = tighterLowerBoundInt(dst.MinLength, src.MinLength)
	dst.MaxLength = tighterUpperBoundInt(dst.MaxLength, src.MaxLength)
	dst.MinItems = tighterLowerBoundInt(dst.MinItems, src.MinItems)
	dst.MaxItems = tighterUpperBoundInt(dst.MaxItems, src.MaxItems)
	dst.MinProperties = tighterLowerBoundInt(dst.MinProperties, src.MinProperties)
	dst.MaxProperties = tighterUpperBoundInt(dst.MaxProperties, src.MaxProperties)
	dst.UniqueItems = dst.UniqueItems || src.UniqueItems
	dst.Required = unionStrings(dst.Required, src.Required)

	if err := mergeMultipleOf(dst, src); err != nil {
		return err
	}

	return nil
}

func mergeEnum(dst, src *jsonschema.Schema) error {
	if src.Enum == nil {
		return nil
	}

	if dst.Enum == nil {
		dst.Enum = src.Enum

		return nil
	}

	if !sameEnum(dst.Enum, src.Enum) {
		return &ProgrammingError{Reason: fmt.Sprintf("conflicting enum constraints: %v vs %v", dst.Enum, src.Enum)}
	}

	return nil
}

func sameEnum(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if fmt.Sprint(a[i]) != fmt.Sprint(b[i]) {
			return false
		}
	}

	return true
}

func mergePattern(dst, src *jsonschema.Schema) {
	if src.Pattern == "" || src.Pattern == dst.Pattern {
		return
	}

	if dst.Pattern == "" {
		dst.Pattern = src.Pattern

		return
	}

	// Two distinct patterns both apply: require both rather than letting
	// either silently override the other.
	dst.AllOf = append(dst.AllOf,
		&jsonschema.Schema{Pattern: dst.Pattern},
		&jsonschema.Schema{Pattern: src.Pattern},
	)
	dst.Pattern = ""
}

func mergeMultipleOf(dst, src *jsonschema.Schema) error {
	if src.MultipleOf == nil {
		return nil
	}

	if dst.MultipleOf == nil {
		dst.MultipleOf = src.MultipleOf

		return nil
	}

	if *dst.MultipleOf == *src.MultipleOf {
		return nil
	}

	dst.AllOf = append(dst.AllOf,
		&jsonschema.Schema{MultipleOf: dst.MultipleOf},
		&jsonschema.Schema{MultipleOf: src.MultipleOf},
	)
	dst.MultipleOf = nil

	return nil
}

func tighterLowerBound(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b > *a:
		return b
	default:
		return a
	}
}

func tighterUpperBound(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b < *a:
		return b
	default:
		return a
	}
}

func tighterLowerBoundInt(a, b *int) *int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b > *a:
		return b
	default:
		return a
	}
}

func tighterUpperBoundInt(a, b *int) *int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b < *a:
		return b
	default:
		return a
	}
}

func unionStrings(a, b []string) []string {
	if len(a) == 0 {
		return b
	}

	if len(b) == 0 {
		return a
	}

	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		if !seen[s] {
			seen[s] = true

			out = append(out, s)
		}
	}

	for _, s := range b {
		if !seen[s] {
			seen[s] = true

			out = append(out, s)
		}
	}

	return out
}
