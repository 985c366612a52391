// Package transformer turns the Lisp-shaped source tree into the C-shaped
// target tree.
//
// ----------------------------------------------------------------------------
//
//	Source tree                       |   Target tree
//	Program                           |   Program
//	  CallExpression add              |     ExpressionStatement
//	    NumberLiteral 2               |       CallExpression
//	    CallExpression subtract       |         Identifier add
//	      NumberLiteral 4             |         NumberLiteral 2
//	      NumberLiteral 2             |         CallExpression
//	                                  |           Identifier subtract
//	                                  |           NumberLiteral 4
//	                                  |           NumberLiteral 2
//
// ----------------------------------------------------------------------------
//
// The transform is a single traverser pass. Each source node that receives
// children owns a build pointer: the target slice its transformed children
// are appended to. Build pointers live in a side table local to one
// Transform call and are never attached to the source tree, so a Unit can be
// transformed concurrently.
package transformer

import (
	"fmt"

	"github.com/sandrolain/golispc/pkg/functions"
	"github.com/sandrolain/golispc/pkg/traverser"
	"github.com/sandrolain/golispc/pkg/types"
)

// Option configures transformer behavior.
type Option func(*Options)

// Options holds transformer configuration.
type Options struct {
	// Callees renames known callees and checks their arity. Nil keeps every
	// callee name unchanged.
	Callees *functions.Registry
}

// WithCallees sets the callee registry.
func WithCallees(reg *functions.Registry) Option {
	return func(opts *Options) {
		opts.Callees = reg
	}
}

// Transform builds the target Program for the source tree rooted at root.
func Transform(root *types.ASTNode, opts ...Option) (*types.TargetNode, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	t := &transform{
		arena:   types.NewArena[types.TargetNode](),
		build:   make(map[*types.ASTNode]*[]*types.TargetNode),
		callees: options.Callees,
	}

	out := types.NewTargetNode(t.arena, types.NodeProgram)
	if root == nil {
		return out, nil
	}
	t.build[root] = &out.Body

	if err := traverser.Traverse(root, t.visitor()); err != nil {
		return nil, err
	}
	return out, nil
}

// TransformUnit is a convenience wrapper around Transform for parser output.
func TransformUnit(unit *types.Unit, opts ...Option) (*types.TargetNode, error) {
	return Transform(unit.AST(), opts...)
}

// transform is the scratch state of one Transform call.
type transform struct {
	arena   *types.Arena[types.TargetNode]
	build   map[*types.ASTNode]*[]*types.TargetNode // build pointers by source node
	callees *functions.Registry
}

func (t *transform) visitor() traverser.Visitor {
	return traverser.Visitor{
		types.NodeNumberLiteral:  {Enter: t.enterLiteral},
		types.NodeStringLiteral:  {Enter: t.enterLiteral},
		types.NodeCallExpression: {Enter: t.enterCall},
	}
}

func (t *transform) enterLiteral(node, parent *types.ASTNode) error {
	lit := types.NewTargetNode(t.arena, node.Type)
	lit.Value = node.Value
	return t.appendTo(parent, node, lit)
}

func (t *transform) enterCall(node, parent *types.ASTNode) error {
	name, err := t.calleeName(node)
	if err != nil {
		return err
	}

	callee := types.NewTargetNode(t.arena, types.NodeIdentifier)
	callee.Name = name

	expr := types.NewTargetNode(t.arena, types.NodeCallExpression)
	expr.Callee = callee
	expr.Arguments = make([]*types.TargetNode, 0, len(node.Params))
	t.build[node] = &expr.Arguments

	if parent != nil && parent.Type == types.NodeCallExpression {
		return t.appendTo(parent, node, expr)
	}

	stmt := types.NewTargetNode(t.arena, types.NodeExpressionStatement)
	stmt.Expression = expr
	return t.appendTo(parent, node, stmt)
}

// appendTo writes target through the build pointer of parent.
func (t *transform) appendTo(parent, node *types.ASTNode, target *types.TargetNode) error {
	dst, ok := t.build[parent]
	if !ok {
		return types.NewError(types.ErrMissingBuildPointer,
			fmt.Sprintf("%s has no enclosing node to append to", node.Type), node.Position)
	}
	*dst = append(*dst, target)
	return nil
}

func (t *transform) calleeName(node *types.ASTNode) (string, error) {
	if t.callees == nil {
		return node.Name, nil
	}

	def, ok := t.callees.Lookup(node.Name)
	if !ok {
		if t.callees.Strict() {
			return "", types.NewError(types.ErrUnknownCallee,
				fmt.Sprintf("unknown function %q", node.Name), node.Position).WithToken(node.Name)
		}
		return node.Name, nil
	}

	if err := def.CheckArity(len(node.Params)); err != nil {
		return "", types.NewError(types.ErrArgumentCount, err.Error(), node.Position).
			WithToken(node.Name).WithCause(err)
	}
	return def.Identifier(), nil
}
