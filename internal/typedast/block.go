package typedast

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/ids"
)

// BlockNode is one of the three kinds of statement a BasicBlock coalesces
// (spec §3): a bare expression, an assignment, or a local variable
// declaration. Each owns its own flattened Expression.
type BlockNode interface {
	blockNode()
}

// ExprNode is a bare expression evaluated for effect.
type ExprNode struct {
	Expr *Expression
}

func (*ExprNode) blockNode() {}

// PathSegment is one step of an assignment's lvalue chain after its base
// variable: either a named field, or an index expression (already
// flattened, so its sub-expression type-checks like any other).
type PathSegment struct {
	Field   string
	IsIndex bool
	Index   *Expression
}

// AssignmentNode assigns Value into the lvalue path rooted at a variable.
// TargetName is the base identifier as parsed; scope resolution resolves it
// to TargetBase (spec §4.4's rewrite-bindings-into-the-typed-AST step).
type AssignmentNode struct {
	TargetName string
	TargetBase ids.VarID
	Segments   []PathSegment
	Value      *Expression
}

func (*AssignmentNode) blockNode() {}

// LocalVarDeclNode declares a new local. Type is nil when the declaration
// carried no annotation (the variable then takes Init's resolved type
// verbatim — spec's no-inference Non-goal).
type LocalVarDeclNode struct {
	Var  ids.VarID
	Name string
	Type *ast.TypeAnnotation
	Init *Expression
}

func (*LocalVarDeclNode) blockNode() {}
