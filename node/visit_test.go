package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lazytree/node"
	"go.jacobcolvin.com/lazytree/scan"
)

func TestVisitPreOrder(t *testing.T) {
	t.Parallel()

	doc, err := node.Parse([]byte(`{"a": [1, 2], "b": {"c": 3}}`))
	require.NoError(t, err)

	var paths []string

	err = doc.Root().Visit(nil, func(n *node.Node) error {
		paths = append(paths, n.Path().WithDollar())

		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"$", "$.a", "$.a[0]", "$.a[1]", "$.b", "$.b.c",
	}, paths)
}

func TestVisitFilteredByKind(t *testing.T) {
	t.Parallel()

	doc, err := node.Parse([]byte(`{"a": 1, "b": "x", "c": 2}`))
	require.NoError(t, err)

	numberKind := scan.Number

	var paths []string

	err = doc.Root().Visit(&numberKind, func(n *node.Node) error {
		paths = append(paths, n.Path().WithDollar())

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"$.a", "$.c"}, paths)
}

func TestFindFirstMatch(t *testing.T) {
	t.Parallel()

	doc, err := node.Parse([]byte(`{"items": [{"id": 1}, {"id": 2}, {"id": 3}]}`))
	require.NoError(t, err)

	objKind := scan.Object

	found, ok, err := doc.Root().Find(&objKind, func(n *node.Node) bool {
		idNode, err := n.Member("id")
		if err != nil {
			return false
		}

		v, err := idNode.Value()

		return err == nil && v == float64(2)
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "$.items[1]", found.Path().WithDollar())
}

func TestFindNoMatch(t *testing.T) {
	t.Parallel()

	doc, err := node.Parse([]byte(`{"a": 1}`))
	require.NoError(t, err)

	_, ok, err := doc.Root().Find(nil, func(n *node.Node) bool { return false })
	require.NoError(t, err)
	assert.False(t, ok)
}
