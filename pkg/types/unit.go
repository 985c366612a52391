// Package types defines the data model shared by the golispc pipeline.
//
// This package contains type definitions for:
//   - Unit: A parsed compilation unit (source tree plus source text)
//   - ASTNode: Nodes of the source (Lisp) tree
//   - TargetNode: Nodes of the target (C) tree
//   - Arena: Bump allocator owning the nodes of one tree
//   - Error types: Structured errors with codes
package types

// Unit represents a parsed source program.
//
// A Unit is immutable once returned by the parser and may be transformed any
// number of times, including from several goroutines at once.
type Unit struct {
	ast    *ASTNode
	source string
	arena  *Arena[ASTNode]
}

// NewUnit creates a new Unit from a Program node.
// arena may be nil when the tree was built by hand.
func NewUnit(ast *ASTNode, source string, arena *Arena[ASTNode]) *Unit {
	return &Unit{
		ast:    ast,
		source: source,
		arena:  arena,
	}
}

// AST returns the Program node of the unit.
func (u *Unit) AST() *ASTNode {
	return u.ast
}

// Source returns the original source text of the unit.
func (u *Unit) Source() string {
	return u.source
}

// NodeCount returns the number of nodes allocated for the tree.
func (u *Unit) NodeCount() int {
	if u.arena == nil {
		return 0
	}
	return u.arena.Len()
}

// String returns a string representation of the unit.
func (u *Unit) String() string {
	return u.source
}
