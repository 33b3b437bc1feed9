package node

import (
	"errors"
	"fmt"

	"go.jacobcolvin.com/lazytree/path"
	"go.jacobcolvin.com/lazytree/scan"
)

// ErrPath is the sentinel every [*PathError] wraps.
var ErrPath = errors.New("json path error")

// PathError reports that a requested navigation cannot be satisfied: a
// missing member, an out-of-range index, a parent whose actual type does
// not match the segment kind being applied to it, or a malformed path
// expression.
type PathError struct {
	Path   path.Path
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path error at %s: %s", e.Path.WithDollar(), e.Reason)
}

func (e *PathError) Unwrap() error {
	return ErrPath
}

// ErrTree is the sentinel every [*TreeError] wraps.
var ErrTree = errors.New("json tree error")

// TreeError reports that an operation was requested that is incompatible
// with a node's actual JSON type, e.g. Size() on a string.
type TreeError struct {
	Op     string
	Actual scan.Kind
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("tree error: cannot %s on a %s value", e.Op, e.Actual)
}

func (e *TreeError) Unwrap() error {
	return ErrTree
}
