package path_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lazytree/path"
)

func TestOf(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"root dollar":                {input: "$", want: ""},
		"empty":                      {input: "", want: ""},
		"member":                     {input: ".a", want: ".a"},
		"member no dot":              {input: "a", want: ".a"},
		"nested member":              {input: "$.a.b", want: ".a.b"},
		"array index":                {input: "$.b[1]", want: ".b[1]"},
		"bracketed member":           {input: "$.a{b.c}", want: ".a{b.c}"},
		"mixed":                      {input: "$.a[0].b", want: ".a[0].b"},
		"bracket then index":         {input: "{k.1}[2]", want: "{k.1}[2]"},
		"unterminated brace literal": {input: "$.a{bc", want: "{a{bc}"},
		"non-digit bracket literal":  {input: "$.a[bc]", want: "{a[bc]}"},
		"digit bracket then literal": {input: "$.a[0]x", want: ".a[0].x"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := path.Of(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.String())
		})
	}
}

func TestExtend(t *testing.T) {
	t.Parallel()

	root := path.Root()
	p := root.ExtendMember("b").ExtendIndex(1)
	assert.Equal(t, ".b[1]", p.String())
	assert.Equal(t, "$.b[1]", p.WithDollar())

	// Extending never mutates the receiver.
	assert.Equal(t, "", root.String())
}

func TestExtendMemberEscaping(t *testing.T) {
	t.Parallel()

	p := path.Root().ExtendMember("a.b")
	assert.Equal(t, "{a.b}", p.String())
}

func TestShortenBy(t *testing.T) {
	t.Parallel()

	parent, err := path.Of("$.a")
	require.NoError(t, err)

	full, err := path.Of("$.a.b[2]")
	require.NoError(t, err)

	rel, err := full.ShortenBy(parent)
	require.NoError(t, err)
	assert.Equal(t, ".b[2]", rel.String())

	other, err := path.Of("$.x")
	require.NoError(t, err)

	_, err = full.ShortenBy(other)
	assert.ErrorIs(t, err, path.ErrNotPrefix)
}

func TestDropSegments(t *testing.T) {
	t.Parallel()

	p, err := path.Of("$.a.b[2]")
	require.NoError(t, err)

	assert.Equal(t, ".b[2]", p.DropFirstSegment().String())
	assert.Equal(t, ".a.b", p.DropLastSegment().String())
	assert.Equal(t, "", path.Root().DropFirstSegment().String())
}

func TestIntrospection(t *testing.T) {
	t.Parallel()

	obj, err := path.Of("$.a.b")
	require.NoError(t, err)
	assert.True(t, obj.StartsWithObject())
	name, ok := obj.MemberAtStart()
	assert.True(t, ok)
	assert.Equal(t, "a", name)

	arr, err := path.Of("$[0].a")
	require.NoError(t, err)
	assert.True(t, arr.StartsWithArray())
	idx, ok := arr.ArrayIndexAtStart()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestOfIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[3]", path.OfIndex(3).String())
}

func TestKeyForName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a", path.KeyForName("a"))
	assert.Equal(t, "{a.b}", path.KeyForName("a.b"))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a, err := path.Of("$.a[1]")
	require.NoError(t, err)
	b, err := path.Of("$.a[1]")
	require.NoError(t, err)
	c, err := path.Of("$.a[2]")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
