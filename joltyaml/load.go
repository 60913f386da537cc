package joltyaml

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"go.jacobcolvin.com/jolt"
)

// Sentinel errors returned by the loader.
var (
	ErrInvalidYAML = errors.New("invalid yaml")
	ErrUnsupported = errors.New("unsupported yaml node")
)

// Load parses a YAML document into a [jolt.Value]. Empty input loads as
// [jolt.Null]. Only the first document of a multi-document stream is
// used.
func Load(data []byte) (jolt.Value, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return jolt.Null{}, nil
	}

	body := file.Docs[0].Body

	l := &loader{anchors: buildAnchorMap(body)}

	return l.fromNode(body)
}

// loader carries the anchor table for alias resolution during a walk.
type loader struct {
	anchors map[string]ast.Node
}

// fromNode converts a YAML AST node into a Value.
func (l *loader) fromNode(node ast.Node) (jolt.Value, error) {
	node = l.resolveAlias(node)
	node = unwrapNode(node)

	if node == nil {
		return jolt.Null{}, nil
	}

	switch n := node.(type) {
	case *ast.NullNode:
		return jolt.Null{}, nil

	case *ast.BoolNode:
		return jolt.Bool(n.Value), nil

	case *ast.IntegerNode:
		return integerValue(n)

	case *ast.FloatNode:
		return jolt.Float(n.Value), nil

	case *ast.InfinityNode:
		return jolt.Float(n.Value), nil

	case *ast.NanNode:
		return jolt.Float(math.NaN()), nil

	case *ast.StringNode:
		return jolt.String(n.Value), nil

	case *ast.LiteralNode:
		return jolt.String(n.Value.Value), nil

	case *ast.SequenceNode:
		return l.fromSequence(n)

	case *ast.MappingNode:
		return l.fromMapping(n.Values)

	case *ast.MappingValueNode:
		return l.fromMapping([]*ast.MappingValueNode{n})
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupported, node)
}

func (l *loader) fromSequence(seq *ast.SequenceNode) (jolt.Value, error) {
	list := make(jolt.List, 0, len(seq.Values))

	for _, elem := range seq.Values {
		v, err := l.fromNode(elem)
		if err != nil {
			return nil, err
		}

		list = append(list, v)
	}

	return list, nil
}

func (l *loader) fromMapping(values []*ast.MappingValueNode) (jolt.Value, error) {
	m := jolt.NewMap()

	for _, mvn := range values {
		v, err := l.fromNode(mvn.Value)
		if err != nil {
			return nil, err
		}

		m.Set(keyString(mvn.Key), v)
	}

	return m, nil
}

// integerValue converts an integer node, whose parsed value is either an
// int64 or a uint64 depending on magnitude.
func integerValue(n *ast.IntegerNode) (jolt.Value, error) {
	switch v := n.Value.(type) {
	case int64:
		return jolt.Int(v), nil

	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: integer %d overflows 64 bits", ErrUnsupported, v)
		}

		return jolt.Int(int64(v)), nil

	case int:
		return jolt.Int(int64(v)), nil
	}

	return nil, fmt.Errorf("%w: integer node value %T", ErrUnsupported, n.Value)
}

// keyString extracts a mapping key as text.
func keyString(key ast.MapKeyNode) string {
	if s, ok := key.(*ast.StringNode); ok {
		return s.Value
	}

	return key.String()
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

// buildAnchorMap walks the AST and collects all anchor definitions.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)

	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements the [ast.Visitor] interface.
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}

	return v
}

// resolveAlias resolves an alias node using the anchor map. Unresolvable
// aliases are treated as null.
func (l *loader) resolveAlias(node ast.Node) ast.Node {
	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	if resolved, found := l.anchors[alias.Value.String()]; found {
		return resolved
	}

	return nil
}
