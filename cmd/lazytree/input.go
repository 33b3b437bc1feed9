package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.jacobcolvin.com/lazytree/node"
	"go.jacobcolvin.com/lazytree/path"
	"go.jacobcolvin.com/lazytree/tree"
	"go.jacobcolvin.com/lazytree/yamlsrc"
)

func readInput(arg string) ([]byte, error) {
	if arg == "" || arg == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(arg)
}

func isYAMLPath(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// openDocument reads arg (a file path, or "-"/"" for stdin), converting
// YAML sources to JSON text through [yamlsrc.ToJSON] first, and returns a
// root [tree.Handle] over the parsed document. When tracePaths is
// non-empty, every non-root path resolved against the returned handle is
// appended to that file; the returned closer must be called once tracing
// is no longer needed.
func openDocument(arg, tracePaths string) (tree.Handle, func() error, error) {
	data, err := readInput(arg)
	if err != nil {
		return tree.Handle{}, nil, fmt.Errorf("read input: %w", err)
	}

	if isYAMLPath(arg) {
		data, err = yamlsrc.ToJSON(data)
		if err != nil {
			return tree.Handle{}, nil, err
		}
	}

	var opts []node.Option

	closeFn := func() error { return nil }

	if tracePaths != "" {
		traceFile, err := os.OpenFile(tracePaths, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return tree.Handle{}, nil, fmt.Errorf("open trace-paths file: %w", err)
		}

		opts = append(opts, node.WithPathListener(func(p path.Path) {
			fmt.Fprintln(traceFile, p.WithDollar())
		}))

		closeFn = traceFile.Close
	}

	doc, err := node.Parse(data, opts...)
	if err != nil {
		_ = closeFn()

		return tree.Handle{}, nil, err
	}

	return tree.NewHandle(doc, tree.DefaultAccessors()), closeFn, nil
}

// navigate walks h from its current path down through every segment of p,
// using Member for name segments and Element for index segments.
func navigate(h tree.Handle, p path.Path) tree.Handle {
	for _, seg := range p.Segments() {
		switch seg.Kind {
		case path.Member:
			h = h.Member(seg.Name)
		case path.Index:
			h = h.Element(seg.Index)
		}
	}

	return h
}
