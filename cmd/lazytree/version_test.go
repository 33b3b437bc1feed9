package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lazytree/stringtest"
	"go.jacobcolvin.com/lazytree/version"
)

func TestVersionCommandPrintsDevByDefault(t *testing.T) {
	t.Parallel()

	version.Version = ""

	cmd := newVersionCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())

	want := stringtest.JoinLF(
		"lazytree dev (" + version.GoVersion + ", " + version.GoOS + "/" + version.GoArch + ", rev " + version.Revision + ")",
		"",
	)
	assert.Equal(t, want, out.String())
}
