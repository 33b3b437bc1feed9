package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lazytree/path"
)

func TestGetOnlyInternsTraversedPaths(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"a": 1, "b": [2, 3], "c": "x"}`))
	require.NoError(t, err)

	target, err := doc.Get(path.Root().ExtendMember("b").ExtendIndex(1))
	require.NoError(t, err)

	decl, err := target.Declaration()
	require.NoError(t, err)
	assert.Equal(t, "3", decl)

	// Resolving .b[1] walks the object stream past "a" (interning it as a
	// side effect of the member scan) but must never touch "c", which sits
	// after "b" in the source.
	assert.True(t, doc.hasInterned(path.Root().ExtendMember("a")))
	assert.True(t, doc.hasInterned(path.Root().ExtendMember("b")))
	assert.True(t, doc.hasInterned(path.Root().ExtendMember("b").ExtendIndex(1)))
	assert.False(t, doc.hasInterned(path.Root().ExtendMember("c")))
}

func TestEndIndexIsComputedOnceAndStable(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"a": [1, 2, 3]}`))
	require.NoError(t, err)

	a, err := doc.Get(path.Root().ExtendMember("a"))
	require.NoError(t, err)

	end1, err := a.End()
	require.NoError(t, err)

	// Draining the array's scan afterwards must not move the memoized end.
	_, err = a.Elements(false)
	require.NoError(t, err)

	end2, err := a.End()
	require.NoError(t, err)
	assert.Equal(t, end1, end2)
}
