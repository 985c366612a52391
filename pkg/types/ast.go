package types

// NodeType identifies the type of an AST node.
type NodeType string

// AST node types shared by the source (Lisp) and target (C) trees.
const (
	// Both trees
	NodeProgram        NodeType = "Program"
	NodeNumberLiteral  NodeType = "NumberLiteral"
	NodeStringLiteral  NodeType = "StringLiteral"
	NodeCallExpression NodeType = "CallExpression"

	// Target tree only
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeIdentifier          NodeType = "Identifier"
)

// ASTNode is a node of the source tree produced by the parser.
//
//	(add 2 "x")
//	 ^^^ ^ ^^^
//	 |   | StringLiteral{Value: "x"}
//	 |   NumberLiteral{Value: "2"}
//	 CallExpression{Name: "add", Params: [...]}
type ASTNode struct {
	Type     NodeType
	Value    string     // Raw literal text (NumberLiteral, StringLiteral)
	Name     string     // Callee name (CallExpression)
	Body     []*ASTNode // Top-level expressions (Program)
	Params   []*ASTNode // Call arguments (CallExpression)
	Position int        // Byte offset of the node's first token
}

// Children returns the ordered child sequence of the node, or nil for leaves.
func (n *ASTNode) Children() []*ASTNode {
	switch n.Type {
	case NodeProgram:
		return n.Body
	case NodeCallExpression:
		return n.Params
	default:
		return nil
	}
}

// String returns a string representation of the node type.
func (n *ASTNode) String() string {
	return string(n.Type)
}

// TargetNode is a node of the C-shaped tree produced by the transformer.
//
//	add(2, subtract(4, 2));
//	^^^^^^^^^^^^^^^^^^^^^^^  ExpressionStatement{Expression: ...}
//	^^^                      Identifier{Name: "add"} as Callee
//	       ^^^^^^^^^^^^^^    CallExpression nested in Arguments
type TargetNode struct {
	Type       NodeType
	Value      string        // Raw literal text (NumberLiteral, StringLiteral)
	Name       string        // Identifier name
	Body       []*TargetNode // Statements (Program)
	Expression *TargetNode   // Wrapped call (ExpressionStatement)
	Callee     *TargetNode   // Identifier (CallExpression)
	Arguments  []*TargetNode // Call arguments (CallExpression)
}

// String returns a string representation of the node type.
func (n *TargetNode) String() string {
	return string(n.Type)
}

// arenaChunkSize is the number of values pre-allocated per arena chunk.
const arenaChunkSize = 64

// Arena is a bump-pointer allocator for tree nodes.
//
// Both trees are acyclic single-owner structures built once and discarded
// after the next stage consumes them, so nodes are never freed individually.
// The arena MUST stay alive as long as any pointer returned by Alloc is
// reachable; the GC collects every chunk together once the tree is released.
//
// Arena is NOT thread-safe. Each parse and each transform owns its own arena.
type Arena[T any] struct {
	chunks [][]T
	pos    int // next free index in the last chunk
}

// NewArena allocates an arena pre-warmed with one initial chunk.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{
		chunks: [][]T{make([]T, arenaChunkSize)},
	}
}

// Alloc returns a pointer to a zero value inside the arena.
func (a *Arena[T]) Alloc() *T {
	if a.pos >= arenaChunkSize {
		a.chunks = append(a.chunks, make([]T, arenaChunkSize))
		a.pos = 0
	}
	n := &a.chunks[len(a.chunks)-1][a.pos]
	a.pos++
	return n
}

// Len returns the number of values allocated so far.
func (a *Arena[T]) Len() int {
	return (len(a.chunks)-1)*arenaChunkSize + a.pos
}

// NewNode allocates a source node with Type and Position set.
func NewNode(a *Arena[ASTNode], nodeType NodeType, position int) *ASTNode {
	n := a.Alloc()
	n.Type = nodeType
	n.Position = position
	return n
}

// NewTargetNode allocates a target node with Type set.
func NewTargetNode(a *Arena[TargetNode], nodeType NodeType) *TargetNode {
	n := a.Alloc()
	n.Type = nodeType
	return n
}
