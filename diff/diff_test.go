package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lazytree/diff"
	"go.jacobcolvin.com/lazytree/node"
	"go.jacobcolvin.com/lazytree/tree"
)

func parse(t *testing.T, data string) tree.Handle {
	t.Helper()

	doc, err := node.Parse([]byte(data))
	require.NoError(t, err)

	return tree.NewHandle(doc, tree.DefaultAccessors())
}

func kinds(diffs []diff.Difference) []diff.Kind {
	out := make([]diff.Kind, len(diffs))
	for i, d := range diffs {
		out[i] = d.Kind
	}

	return out
}

func TestCompareIdenticalProducesNoDifferences(t *testing.T) {
	t.Parallel()

	e := parse(t, `{"a": 1, "b": [1, 2, 3]}`)
	a := parse(t, `{"a": 1, "b": [1, 2, 3]}`)

	diffs, err := diff.Compare(e, a, diff.DefaultMode(), nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompareStrictObjectOrderEmitsSort(t *testing.T) {
	t.Parallel()

	e := parse(t, `{"a": 1, "b": 2}`)
	a := parse(t, `{"b": 2, "a": 1}`)

	diffs, err := diff.Compare(e, a, diff.DefaultMode(), nil)
	require.NoError(t, err)
	assert.Equal(t, []diff.Kind{diff.Sort, diff.Sort}, kinds(diffs))
}

func TestCompareAnyOrderObjectsNoDifferences(t *testing.T) {
	t.Parallel()

	e := parse(t, `{"a": 1, "b": 2}`)
	a := parse(t, `{"b": 2, "a": 1}`)

	mode := diff.DefaultMode()
	mode.Objects.AnyOrder = true

	diffs, err := diff.Compare(e, a, mode, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompareMissingMemberIsLess(t *testing.T) {
	t.Parallel()

	e := parse(t, `{"a": 1, "b": 2}`)
	a := parse(t, `{"a": 1}`)

	diffs, err := diff.Compare(e, a, diff.DefaultMode(), nil)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, diff.Less, diffs[0].Kind)
	assert.Equal(t, "$.b", diffs[0].Path.WithDollar())
}

func TestCompareExtraMemberIsMoreUnlessAllowed(t *testing.T) {
	t.Parallel()

	e := parse(t, `{"a": 1}`)
	a := parse(t, `{"a": 1, "b": 2}`)

	diffs, err := diff.Compare(e, a, diff.DefaultMode(), nil)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, diff.More, diffs[0].Kind)

	mode := diff.DefaultMode()
	mode.Objects.AnyAdditional = true

	diffs, err = diff.Compare(e, a, mode, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompareNumbersTextualVsNumeric(t *testing.T) {
	t.Parallel()

	e := parse(t, `{"a": 1.0}`)
	a := parse(t, `{"a": 1.00}`)

	diffs, err := diff.Compare(e, a, diff.DefaultMode(), nil)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, diff.NotEqual, diffs[0].Kind)

	mode := diff.DefaultMode()
	mode.Numbers = diff.Numeric

	diffs, err = diff.Compare(e, a, mode, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompareArraysAnyOrderMatchesOutOfPositionElements(t *testing.T) {
	t.Parallel()

	e := parse(t, `[1, 2, 3]`)
	a := parse(t, `[3, 1, 2]`)

	strict, err := diff.Compare(e, a, diff.DefaultMode(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, strict)

	mode := diff.DefaultMode()
	mode.Arrays.AnyOrder = true

	anyOrder, err := diff.Compare(e, a, mode, nil)
	require.NoError(t, err)
	assert.Empty(t, anyOrder)
}

func TestCompareArraysAnyOrderUnmatchedElementIsNotEqualAndMore(t *testing.T) {
	t.Parallel()

	e := parse(t, `[1, 2, 3]`)
	a := parse(t, `[1, 2, 4]`)

	mode := diff.DefaultMode()
	mode.Arrays.AnyOrder = true

	diffs, err := diff.Compare(e, a, mode, nil)
	require.NoError(t, err)
	require.Len(t, diffs, 2)
	assert.Contains(t, kinds(diffs), diff.NotEqual)
	assert.Contains(t, kinds(diffs), diff.More)
}

func TestCompareNestedObjectDifference(t *testing.T) {
	t.Parallel()

	e := parse(t, `{"user": {"name": "a", "tags": ["x", "y"]}}`)
	a := parse(t, `{"user": {"name": "b", "tags": ["x", "y"]}}`)

	diffs, err := diff.Compare(e, a, diff.DefaultMode(), nil)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, diff.NotEqual, diffs[0].Kind)
	assert.Equal(t, "$.user.name", diffs[0].Path.WithDollar())
}

func TestCompareTypeMismatchIsNotEqual(t *testing.T) {
	t.Parallel()

	e := parse(t, `{"a": 1}`)
	a := parse(t, `{"a": "1"}`)

	diffs, err := diff.Compare(e, a, diff.DefaultMode(), nil)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, diff.NotEqual, diffs[0].Kind)
}

func TestCompareIsSymmetricUnderSwap(t *testing.T) {
	t.Parallel()

	smaller := parse(t, `{"a": 1}`)
	larger := parse(t, `{"a": 1, "b": 2}`)

	forward, err := diff.Compare(smaller, larger, diff.DefaultMode(), nil)
	require.NoError(t, err)
	require.Len(t, forward, 1)
	assert.Equal(t, diff.More, forward[0].Kind)
	assert.Equal(t, ".b", forward[0].Path.String())

	backward, err := diff.Compare(larger, smaller, diff.DefaultMode(), nil)
	require.NoError(t, err)
	require.Len(t, backward, 1)
	assert.Equal(t, diff.Less, backward[0].Kind)
	assert.Equal(t, ".b", backward[0].Path.String())
}

func TestCompareIsSymmetricUnderLenientMode(t *testing.T) {
	t.Parallel()

	smaller := parse(t, `{"a": 1, "tags": ["x"]}`)
	larger := parse(t, `{"a": 1, "b": 2, "tags": ["x", "y"]}`)

	// Lenient tolerates additional entries, and a missing entry on one side
	// is an additional entry on the other, so both directions are clean.
	forward, err := diff.Compare(smaller, larger, diff.LenientMode(), nil)
	require.NoError(t, err)
	assert.Empty(t, forward)

	backward, err := diff.Compare(larger, smaller, diff.LenientMode(), nil)
	require.NoError(t, err)
	assert.Empty(t, backward)
}

func TestCompareAnyOrderSwapExchangesLessAndMore(t *testing.T) {
	t.Parallel()

	smaller := parse(t, `{"a": 1, "tags": ["x"]}`)
	larger := parse(t, `{"a": 1, "b": 2, "tags": ["x", "y"]}`)

	mode := diff.Mode{
		Arrays:  diff.OrderPolicy{AnyOrder: true},
		Objects: diff.OrderPolicy{AnyOrder: true},
		Numbers: diff.Numeric,
	}

	forward, err := diff.Compare(smaller, larger, mode, nil)
	require.NoError(t, err)
	assert.Equal(t, []diff.Kind{diff.More, diff.More}, kinds(forward))

	backward, err := diff.Compare(larger, smaller, mode, nil)
	require.NoError(t, err)
	assert.Equal(t, []diff.Kind{diff.Less, diff.Less}, kinds(backward))

	assert.Len(t, backward, len(forward))
}

func TestConfigNewModeParsesNumbers(t *testing.T) {
	t.Parallel()

	cfg := diff.NewConfig()
	cfg.AnyOrderArrays = true
	cfg.Numbers = "numeric"

	mode, err := cfg.NewMode()
	require.NoError(t, err)
	assert.True(t, mode.Arrays.AnyOrder)
	assert.Equal(t, diff.Numeric, mode.Numbers)

	cfg.Numbers = "bogus"
	_, err = cfg.NewMode()
	assert.Error(t, err)
}
