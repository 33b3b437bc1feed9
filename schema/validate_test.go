package schema_test

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lazytree/node"
	"go.jacobcolvin.com/lazytree/schema"
	"go.jacobcolvin.com/lazytree/tree"
)

func parse(t *testing.T, data string) tree.Handle {
	t.Helper()

	doc, err := node.Parse([]byte(data))
	require.NoError(t, err)

	return tree.NewHandle(doc, tree.DefaultAccessors())
}

func ptr[T any](v T) *T { return &v }

func TestValidateObjectReportsEveryFailure(t *testing.T) {
	t.Parallel()

	h := parse(t, `{"name": "", "age": -1}`)

	obj := schema.Object{
		Descriptors: []schema.Descriptor{
			{
				Name: "name", Types: []string{"string"},
				Constraints: &jsonschema.Schema{MinLength: ptr(1)},
				Required:    schema.Yes,
			},
			{
				Name: "age", Types: []string{"integer"},
				Constraints: &jsonschema.Schema{Minimum: ptr(0.0)},
				Required:    schema.Yes,
			},
		},
	}

	violation, err := schema.ValidateObject(h, obj)
	require.NoError(t, err)
	require.NotNil(t, violation)
	require.Len(t, violation.Errors, 2)

	rules := []schema.Rule{violation.Errors[0].Rule, violation.Errors[1].Rule}
	assert.Contains(t, rules, schema.RuleMinLength)
	assert.Contains(t, rules, schema.RuleMinimum)
	assert.NotContains(t, rules, schema.RuleRequired)
}

func TestValidateObjectNoErrorsWhenSatisfied(t *testing.T) {
	t.Parallel()

	h := parse(t, `{"name": "ok", "age": 5}`)

	obj := schema.Object{
		Descriptors: []schema.Descriptor{
			{Name: "name", Types: []string{"string"}, Constraints: &jsonschema.Schema{MinLength: ptr(1)}, Required: schema.Yes},
			{Name: "age", Types: []string{"integer"}, Constraints: &jsonschema.Schema{Minimum: ptr(0.0)}, Required: schema.Yes},
		},
	}

	violation, err := schema.ValidateObject(h, obj)
	require.NoError(t, err)
	assert.Nil(t, violation)
}

func TestValidateDescriptorRequired(t *testing.T) {
	t.Parallel()

	h := parse(t, `{}`)

	errs, err := schema.ValidateDescriptor(h, schema.Descriptor{Name: "age", Required: schema.Yes})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, schema.RuleRequired, errs[0].Rule)
}

func TestValidateDescriptorRequiredByConstraintLayer(t *testing.T) {
	t.Parallel()

	h := parse(t, `{}`)

	// The accessor's out-of-line layer demands the property even though the
	// descriptor's own Required field is Auto.
	errs, err := schema.ValidateDescriptor(h, schema.Descriptor{
		Name:            "age",
		MetaConstraints: &jsonschema.Schema{Required: []string{"age"}},
	})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, schema.RuleRequired, errs[0].Rule)
}

func TestValidateDescriptorEnum(t *testing.T) {
	t.Parallel()

	h := parse(t, `{"color": "purple"}`)

	errs, err := schema.ValidateDescriptor(h, schema.Descriptor{
		Name: "color", Types: []string{"string"},
		Constraints: &jsonschema.Schema{Enum: []any{"red", "green", "blue"}},
	})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, schema.RuleEnum, errs[0].Rule)
}

func TestValidateDescriptorPattern(t *testing.T) {
	t.Parallel()

	h := parse(t, `{"sku": "abc123"}`)

	errs, err := schema.ValidateDescriptor(h, schema.Descriptor{
		Name: "sku", Types: []string{"string"},
		Constraints: &jsonschema.Schema{Pattern: `^[0-9]+$`},
	})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, schema.RulePattern, errs[0].Rule)
}

func TestValidateDescriptorUniqueItems(t *testing.T) {
	t.Parallel()

	h := parse(t, `{"tags": ["a", "b", "a"]}`)

	errs, err := schema.ValidateDescriptor(h, schema.Descriptor{
		Name: "tags", Types: []string{"array"},
		Constraints: &jsonschema.Schema{UniqueItems: true},
	})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, schema.RuleUniqueItems, errs[0].Rule)
}

func TestValidateDescriptorMultipleOf(t *testing.T) {
	t.Parallel()

	h := parse(t, `{"count": 7}`)

	errs, err := schema.ValidateDescriptor(h, schema.Descriptor{
		Name: "count", Types: []string{"integer"},
		Constraints: &jsonschema.Schema{MultipleOf: ptr(2.0)},
	})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, schema.RuleMultipleOf, errs[0].Rule)
}

func TestValidateObjectDependentRequired(t *testing.T) {
	t.Parallel()

	h := parse(t, `{"creditCard": "4111"}`)

	obj := schema.Object{
		Descriptors: []schema.Descriptor{
			{Name: "creditCard", Types: []string{"string"}, DependentRequired: []string{"billingAddress"}},
		},
	}

	violation, err := schema.ValidateObject(h, obj)
	require.NoError(t, err)
	require.NotNil(t, violation)
	require.Len(t, violation.Errors, 1)
	assert.Equal(t, schema.RuleDependentRequired, violation.Errors[0].Rule)
}

func TestValidateObjectPropertyCounts(t *testing.T) {
	t.Parallel()

	h := parse(t, `{"a": 1, "b": 2, "c": 3}`)

	obj := schema.Object{MaxProperties: ptr(2)}

	violation, err := schema.ValidateObject(h, obj)
	require.NoError(t, err)
	require.NotNil(t, violation)
	assert.Equal(t, schema.RuleMaxProperties, violation.Errors[0].Rule)
}
