package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lazytree/node"
	"go.jacobcolvin.com/lazytree/path"
	"go.jacobcolvin.com/lazytree/tree"
)

func TestIsYAMLPath(t *testing.T) {
	t.Parallel()

	assert.True(t, isYAMLPath("values.yaml"))
	assert.True(t, isYAMLPath("Values.YML"))
	assert.False(t, isYAMLPath("values.json"))
	assert.False(t, isYAMLPath("-"))
}

func TestNavigate(t *testing.T) {
	t.Parallel()

	doc, err := node.Parse([]byte(`{"a": {"b": [1, 2, {"c": true}]}}`))
	require.NoError(t, err)

	root := tree.NewHandle(doc, tree.DefaultAccessors())

	p, err := path.Of("$.a.b[2].c")
	require.NoError(t, err)

	target := navigate(root, p)

	v, err := target.Value()
	require.NoError(t, err)
	assert.Equal(t, true, v)
}
