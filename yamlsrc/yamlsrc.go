package yamlsrc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// ErrInvalidYAML wraps syntax errors from the underlying YAML parser.
var ErrInvalidYAML = errors.New("invalid yaml")

// ErrUnsupportedNode wraps YAML constructs that have no JSON
// representation, such as a merge key with no mapping on its right-hand
// side. An alias whose anchor is not found outside a merge key renders as
// null rather than failing.
var ErrUnsupportedNode = errors.New("unsupported yaml node")

// ToJSON parses a single YAML document and renders it as canonical JSON
// text: object members appear in the order their keys were declared, and
// anchors/aliases/merge keys are resolved inline. An empty or
// whitespace-only input renders as "null".
func ToJSON(input []byte) ([]byte, error) {
	if isBlank(input) {
		return []byte("null"), nil
	}

	file, err := parser.ParseBytes(input, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return []byte("null"), nil
	}

	body := file.Docs[0].Body

	anchors := buildAnchorMap(body)

	var buf strings.Builder

	if err := writeNode(&buf, body, anchors); err != nil {
		return nil, err
	}

	return []byte(buf.String()), nil
}

func isBlank(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return false
		}
	}

	return true
}

// buildAnchorMap walks the AST and collects every anchor definition so
// aliases can be resolved inline.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)

	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}

	return v
}

func resolveAliases(node ast.Node, anchors map[string]ast.Node) ast.Node {
	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	if resolved, found := anchors[alias.Value.String()]; found {
		return resolved
	}

	return nil
}

// unwrapNode resolves TagNode and AnchorNode wrappers to the underlying
// value node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

func writeNode(buf *strings.Builder, node ast.Node, anchors map[string]ast.Node) error {
	node = resolveAliases(node, anchors)
	node = unwrapNode(node)

	if node == nil {
		buf.WriteString("null")

		return nil
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		return writeMapping(buf, n.Values, anchors)
	case *ast.MappingValueNode:
		return writeMapping(buf, []*ast.MappingValueNode{n}, anchors)
	case *ast.SequenceNode:
		return writeSequence(buf, n, anchors)
	case *ast.NullNode:
		buf.WriteString("null")

		return nil
	case *ast.BoolNode:
		buf.WriteString(strconv.FormatBool(n.Value))

		return nil
	case *ast.IntegerNode:
		buf.WriteString(fmt.Sprintf("%v", n.Value))

		return nil
	case *ast.FloatNode:
		buf.WriteString(n.String())

		return nil
	case *ast.InfinityNode, *ast.NanNode:
		writeJSONString(buf, n.String())

		return nil
	case *ast.StringNode:
		writeJSONString(buf, n.Value)

		return nil
	case *ast.LiteralNode:
		writeJSONString(buf, n.Value.Value)

		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedNode, node)
	}
}

func writeMapping(buf *strings.Builder, values []*ast.MappingValueNode, anchors map[string]ast.Node) error {
	buf.WriteByte('{')

	first := true

	for _, mvn := range values {
		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			if err := writeMergedMembers(buf, mvn, anchors, &first); err != nil {
				return err
			}

			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		writeJSONString(buf, mvn.Key.String())
		buf.WriteByte(':')

		if err := writeNode(buf, mvn.Value, anchors); err != nil {
			return err
		}
	}

	buf.WriteByte('}')

	return nil
}

// writeMergedMembers inlines a YAML merge key ("<<: *anchor") as if its
// target mapping's members had been declared at this position.
func writeMergedMembers(buf *strings.Builder, mvn *ast.MappingValueNode, anchors map[string]ast.Node, first *bool) error {
	target := resolveAliases(mvn.Value, anchors)
	target = unwrapNode(target)

	var mappings []*ast.MappingNode

	switch t := target.(type) {
	case *ast.MappingNode:
		mappings = append(mappings, t)
	case *ast.SequenceNode:
		for _, v := range t.Values {
			resolved := resolveAliases(v, anchors)
			resolved = unwrapNode(resolved)

			if mn, ok := resolved.(*ast.MappingNode); ok {
				mappings = append(mappings, mn)
			}
		}
	default:
		return fmt.Errorf("%w: merge key value must be a mapping or sequence of mappings", ErrUnsupportedNode)
	}

	for _, mn := range mappings {
		for _, member := range mn.Values {
			if !*first {
				buf.WriteByte(',')
			}

			*first = false

			writeJSONString(buf, member.Key.String())
			buf.WriteByte(':')

			if err := writeNode(buf, member.Value, anchors); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeSequence(buf *strings.Builder, seq *ast.SequenceNode, anchors map[string]ast.Node) error {
	buf.WriteByte('[')

	for i, v := range seq.Values {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := writeNode(buf, v, anchors); err != nil {
			return err
		}
	}

	buf.WriteByte(']')

	return nil
}

func writeJSONString(buf *strings.Builder, s string) {
	buf.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(fmt.Sprintf(`\u%04x`, r))
			} else {
				buf.WriteRune(r)
			}
		}
	}

	buf.WriteByte('"')
}
