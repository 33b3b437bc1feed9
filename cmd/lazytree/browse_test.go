package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lazytree/node"
	"go.jacobcolvin.com/lazytree/tree"
)

func TestNewBrowseModelLogsEntry(t *testing.T) {
	t.Parallel()

	doc, err := node.Parse([]byte(`{"a": 1}`))
	require.NoError(t, err)

	root := tree.NewHandle(doc, tree.DefaultAccessors())
	m := newBrowseModel(root)
	t.Cleanup(func() { m.publisher.Close() })

	select {
	case entry := <-m.logSub.C():
		assert.Contains(t, string(entry), "entered")
		assert.Contains(t, string(entry), `path=$`)
	case <-time.After(time.Second):
		t.Fatal("expected a log entry from the initial refresh")
	}
}

func TestBrowseModelLogPaneTogglesViaUpdate(t *testing.T) {
	t.Parallel()

	doc, err := node.Parse([]byte(`{"a": 1}`))
	require.NoError(t, err)

	root := tree.NewHandle(doc, tree.DefaultAccessors())
	m := newBrowseModel(root)
	t.Cleanup(func() { m.publisher.Close() })

	assert.False(t, m.showLog)

	m.logLines = []string{"a log line"}

	assert.NotContains(t, m.render(), "a log line")

	m.showLog = true

	assert.Contains(t, m.render(), "a log line")
}
