package schema

import (
	"fmt"
	"math"
	"regexp"
	"unicode/utf8"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/lazytree/path"
	"go.jacobcolvin.com/lazytree/scan"
	"go.jacobcolvin.com/lazytree/tree"
)

func kindName(k scan.Kind, isInt bool) string {
	switch k {
	case scan.Object:
		return "object"
	case scan.Array:
		return "array"
	case scan.String:
		return "string"
	case scan.Number:
		if isInt {
			return "integer"
		}

		return "number"
	case scan.Boolean:
		return "boolean"
	case scan.Null:
		return "null"
	default:
		return "unknown"
	}
}

func typeAllowed(types []string, actual string) bool {
	if len(types) == 0 {
		return true
	}

	for _, t := range types {
		if t == actual {
			return true
		}

		if t == "number" && actual == "integer" {
			return true
		}
	}

	return false
}

// ValidateDescriptor checks one property of h against desc, returning every
// constraint it fails. A nil, nil result means the property is either
// absent-and-optional or present-and-valid.
func ValidateDescriptor(h tree.Handle, desc Descriptor) ([]Error, error) {
	target := h.Member(desc.Name)

	if target.IsUndefined() {
		if desc.ResolvedRequired() == Yes {
			return []Error{{
				Rule: RuleRequired, Path: target.Path(),
				MessageTemplate: "property %q is required", Args: []any{desc.Name},
			}}, nil
		}

		return nil, nil
	}

	kind, err := target.Type()
	if err != nil {
		return nil, err
	}

	isInt := false
	if kind == scan.Number {
		isInt, err = target.IsInteger()
		if err != nil {
			return nil, err
		}
	}

	var errs []Error

	actual := kindName(kind, isInt)
	if !typeAllowed(desc.Types, actual) {
		errs = append(errs, Error{
			Rule: RuleType, Path: target.Path(),
			MessageTemplate: "expected type %v, got %s", Args: []any{desc.Types, actual},
		})
	}

	resolved, err := desc.Resolved()
	if err != nil {
		return nil, err
	}

	if resolved != nil {
		v, err := target.Value()
		if err != nil {
			return nil, err
		}

		cErrs, err := checkConstraints(target, v, kind, isInt, resolved)
		if err != nil {
			return nil, err
		}

		errs = append(errs, cErrs...)
	}

	return errs, nil
}

// ValidateObject validates every descriptor in obj against h, plus
// dependent-required relationships and the object's own property-count
// bounds. It returns nil when h satisfies obj entirely.
func ValidateObject(h tree.Handle, obj Object) (*Violation, error) {
	var all []Error

	for _, desc := range obj.Descriptors {
		errs, err := ValidateDescriptor(h, desc)
		if err != nil {
			return nil, err
		}

		all = append(all, errs...)
	}

	for _, desc := range obj.Descriptors {
		if len(desc.DependentRequired) == 0 {
			continue
		}

		if h.Member(desc.Name).IsUndefined() {
			continue
		}

		for _, dep := range desc.DependentRequired {
			depHandle := h.Member(dep)
			if depHandle.IsUndefined() {
				all = append(all, Error{
					Rule: RuleDependentRequired, Path: depHandle.Path(),
					MessageTemplate: "property %q requires %q to also be present",
					Args:            []any{desc.Name, dep},
				})
			}
		}
	}

	if obj.MinProperties != nil || obj.MaxProperties != nil {
		size, err := h.Size()
		if err != nil {
			return nil, err
		}

		if obj.MinProperties != nil && size < *obj.MinProperties {
			all = append(all, Error{
				Rule: RuleMinProperties, Path: h.Path(),
				MessageTemplate: "object has %d properties, fewer than minimum %d",
				Args:            []any{size, *obj.MinProperties},
			})
		}

		if obj.MaxProperties != nil && size > *obj.MaxProperties {
			all = append(all, Error{
				Rule: RuleMaxProperties, Path: h.Path(),
				MessageTemplate: "object has %d properties, more than maximum %d",
				Args:            []any{size, *obj.MaxProperties},
			})
		}
	}

	if len(all) == 0 {
		return nil, nil
	}

	return &Violation{Errors: all}, nil
}

// checkConstraints applies every constraint category present on c to the
// already-resolved value v at target, dispatching on JSON kind. ENUM
// applies regardless of kind; the rest are checked only for the kind they
// describe.
func checkConstraints(target tree.Handle, v any, kind scan.Kind, isInt bool, c *jsonschema.Schema) ([]Error, error) {
	p := target.Path()

	var errs []Error

	if len(c.Enum) > 0 && !enumContains(c.Enum, v) {
		errs = append(errs, Error{
			Rule: RuleEnum, Path: p, Value: v,
			MessageTemplate: "value %v is not one of the enumerated values %v", Args: []any{v, c.Enum},
		})
	}

	switch kind {
	case scan.String:
		errs = append(errs, checkStringConstraints(p, v.(string), c)...)
	case scan.Number:
		errs = append(errs, checkNumberConstraints(p, v, isInt, c)...)
	case scan.Array:
		arrErrs, err := checkArrayConstraints(target, p, c)
		if err != nil {
			return nil, err
		}

		errs = append(errs, arrErrs...)
	}

	return errs, nil
}

func enumContains(enum []any, v any) bool {
	for _, e := range enum {
		if fmt.Sprint(e) == fmt.Sprint(v) {
			return true
		}
	}

	return false
}

func checkStringConstraints(p path.Path, s string, c *jsonschema.Schema) []Error {
	var errs []Error

	length := utf8.RuneCountInString(s)

	if c.MinLength != nil && length < *c.MinLength {
		errs = append(errs, Error{
			Rule: RuleMinLength, Path: p, Value: s,
			MessageTemplate: "string length %d is less than minimum %d", Args: []any{length, *c.MinLength},
		})
	}

	if c.MaxLength != nil && length > *c.MaxLength {
		errs = append(errs, Error{
			Rule: RuleMaxLength, Path: p, Value: s,
			MessageTemplate: "string length %d is greater than maximum %d", Args: []any{length, *c.MaxLength},
		})
	}

	if c.Pattern != "" {
		re, err := regexp.Compile(c.Pattern)
		if err == nil && !re.MatchString(s) {
			errs = append(errs, Error{
				Rule: RulePattern, Path: p, Value: s,
				MessageTemplate: "string %q does not match pattern %q", Args: []any{s, c.Pattern},
			})
		}
	}

	for _, sub := range c.AllOf {
		if sub.Pattern == "" {
			continue
		}

		re, err := regexp.Compile(sub.Pattern)
		if err == nil && !re.MatchString(s) {
			errs = append(errs, Error{
				Rule: RulePattern, Path: p, Value: s,
				MessageTemplate: "string %q does not match pattern %q", Args: []any{s, sub.Pattern},
			})
		}
	}

	return errs
}

func checkNumberConstraints(p path.Path, v any, isInt bool, c *jsonschema.Schema) []Error {
	f, ok := v.(float64)
	if !ok {
		return nil
	}

	var errs []Error

	if c.Minimum != nil && f < *c.Minimum {
		errs = append(errs, Error{
			Rule: RuleMinimum, Path: p, Value: f,
			MessageTemplate: "%v is less than minimum %v", Args: []any{f, *c.Minimum},
		})
	}

	if c.Maximum != nil && f > *c.Maximum {
		errs = append(errs, Error{
			Rule: RuleMaximum, Path: p, Value: f,
			MessageTemplate: "%v is greater than maximum %v", Args: []any{f, *c.Maximum},
		})
	}

	if c.ExclusiveMinimum != nil && f <= *c.ExclusiveMinimum {
		errs = append(errs, Error{
			Rule: RuleExclusiveMinimum, Path: p, Value: f,
			MessageTemplate: "%v is not greater than exclusive minimum %v", Args: []any{f, *c.ExclusiveMinimum},
		})
	}

	if c.ExclusiveMaximum != nil && f >= *c.ExclusiveMaximum {
		errs = append(errs, Error{
			Rule: RuleExclusiveMaximum, Path: p, Value: f,
			MessageTemplate: "%v is not less than exclusive maximum %v", Args: []any{f, *c.ExclusiveMaximum},
		})
	}

	if c.MultipleOf != nil && *c.MultipleOf != 0 {
		ratio := f / *c.MultipleOf
		if math.Abs(ratio-math.Round(ratio)) > 1e-9 {
			errs = append(errs, Error{
				Rule: RuleMultipleOf, Path: p, Value: f,
				MessageTemplate: "%v is not a multiple of %v", Args: []any{f, *c.MultipleOf},
			})
		}
	}

	for _, sub := range c.AllOf {
		if sub.MultipleOf == nil || *sub.MultipleOf == 0 {
			continue
		}

		ratio := f / *sub.MultipleOf
		if math.Abs(ratio-math.Round(ratio)) > 1e-9 {
			errs = append(errs, Error{
				Rule: RuleMultipleOf, Path: p, Value: f,
				MessageTemplate: "%v is not a multiple of %v", Args: []any{f, *sub.MultipleOf},
			})
		}
	}

	return errs
}

// checkArrayConstraints applies MIN_ITEMS, MAX_ITEMS, and UNIQUE_ITEMS.
// UNIQUE_ITEMS compares elements by textual declaration equality, not by
// parsed-value equality, so it reads each element's source text rather
// than its materialized form.
func checkArrayConstraints(target tree.Handle, p path.Path, c *jsonschema.Schema) ([]Error, error) {
	var errs []Error

	size, err := target.Size()
	if err != nil {
		return nil, err
	}

	if c.MinItems != nil && size < *c.MinItems {
		errs = append(errs, Error{
			Rule: RuleMinItems, Path: p,
			MessageTemplate: "array has %d items, fewer than minimum %d", Args: []any{size, *c.MinItems},
		})
	}

	if c.MaxItems != nil && size > *c.MaxItems {
		errs = append(errs, Error{
			Rule: RuleMaxItems, Path: p,
			MessageTemplate: "array has %d items, more than maximum %d", Args: []any{size, *c.MaxItems},
		})
	}

	if c.UniqueItems {
		items, err := target.List()
		if err != nil {
			return nil, err
		}

		seen := make(map[string]bool, len(items))

		for _, item := range items {
			decl, err := item.Declaration()
			if err != nil {
				return nil, err
			}

			if seen[decl] {
				errs = append(errs, Error{
					Rule: RuleUniqueItems, Path: p,
					MessageTemplate: "array items are not unique: duplicate declaration %q", Args: []any{decl},
				})

				break
			}

			seen[decl] = true
		}
	}

	return errs, nil
}
