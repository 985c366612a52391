// Package traverser walks a source tree depth-first and dispatches visitor
// callbacks by node type.
//
// The traverser performs no transformation of its own; any pass over the
// source tree (the transformer, a linter, a node counter) is expressed as a
// Visitor.
//
// # Example
//
//	calls := 0
//	err := traverser.Traverse(unit.AST(), traverser.Visitor{
//	    types.NodeCallExpression: {
//	        Enter: func(node, parent *types.ASTNode) error {
//	            calls++
//	            return nil
//	        },
//	    },
//	})
package traverser

import (
	"fmt"

	"github.com/sandrolain/golispc/pkg/types"
)

// VisitFunc is invoked with the visited node and its parent.
// parent is nil for the root. A non-nil error stops the walk.
type VisitFunc func(node, parent *types.ASTNode) error

// Methods holds the optional callbacks for one node type.
type Methods struct {
	Enter VisitFunc // called before the node's children
	Exit  VisitFunc // called after the node's children
}

// Visitor maps node types to callbacks. Types without an entry are walked
// without callbacks.
type Visitor map[types.NodeType]Methods

// Traverse walks the tree rooted at root in depth-first order: Enter in
// pre-order, Exit in post-order, children in source order.
func Traverse(root *types.ASTNode, visitor Visitor) error {
	if root == nil {
		return nil
	}
	return traverseNode(root, nil, visitor)
}

func traverseNode(node, parent *types.ASTNode, visitor Visitor) error {
	var children []*types.ASTNode
	switch node.Type {
	case types.NodeProgram:
		children = node.Body
	case types.NodeCallExpression:
		children = node.Params
	case types.NodeNumberLiteral, types.NodeStringLiteral:
		// leaves
	default:
		return types.NewError(types.ErrUnknownSourceNode,
			fmt.Sprintf("cannot traverse node of type %q", node.Type), node.Position).
			WithToken(string(node.Type))
	}

	methods := visitor[node.Type]

	if methods.Enter != nil {
		if err := methods.Enter(node, parent); err != nil {
			return err
		}
	}

	if err := traverseArray(children, node, visitor); err != nil {
		return err
	}

	if methods.Exit != nil {
		if err := methods.Exit(node, parent); err != nil {
			return err
		}
	}
	return nil
}

func traverseArray(nodes []*types.ASTNode, parent *types.ASTNode, visitor Visitor) error {
	for _, child := range nodes {
		if err := traverseNode(child, parent, visitor); err != nil {
			return err
		}
	}
	return nil
}
