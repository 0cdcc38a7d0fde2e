package ast

import "github.com/smpl-lang/smplc/internal/errs"

// Block is an ordered sequence of statements sharing one lexical scope.
type Block struct {
	Stmts []Stmt
	SpanV errs.Span
}

func (b Block) Span() errs.Span { return b.SpanV }

// Stmt is a statement inside a Block.
type Stmt interface {
	Node
	stmtNode()
}

// ExprStmt is a bare expression evaluated for effect.
type ExprStmt struct {
	Expr  Expr
	SpanV errs.Span
}

func (s *ExprStmt) Span() errs.Span { return s.SpanV }
func (*ExprStmt) stmtNode()         {}

// LocalVarDeclStmt declares a local variable, optionally annotated; when
// unannotated the variable takes the initializer's type verbatim (spec's
// no-inference Non-goal).
type LocalVarDeclStmt struct {
	Name  string
	Type  *TypeAnnotation
	Init  Expr
	SpanV errs.Span
}

func (s *LocalVarDeclStmt) Span() errs.Span { return s.SpanV }
func (*LocalVarDeclStmt) stmtNode()         {}

// AssignmentStmt assigns to an lvalue path: a variable, optionally followed
// by field accesses and/or array indexing.
type AssignmentStmt struct {
	Target Expr
	Value  Expr
	SpanV  errs.Span
}

func (s *AssignmentStmt) Span() errs.Span { return s.SpanV }
func (*AssignmentStmt) stmtNode()         {}

// ReturnStmt returns from the enclosing function, with an optional value.
type ReturnStmt struct {
	Value Expr // nil for a bare `return;`
	SpanV errs.Span
}

func (s *ReturnStmt) Span() errs.Span { return s.SpanV }
func (*ReturnStmt) stmtNode()         {}

// BreakStmt exits the nearest enclosing loop.
type BreakStmt struct{ SpanV errs.Span }

func (s *BreakStmt) Span() errs.Span { return s.SpanV }
func (*BreakStmt) stmtNode()         {}

// ContinueStmt jumps to the nearest enclosing loop's condition re-check.
type ContinueStmt struct{ SpanV errs.Span }

func (s *ContinueStmt) Span() errs.Span { return s.SpanV }
func (*ContinueStmt) stmtNode()         {}

// WhileStmt is a pre-condition loop.
type WhileStmt struct {
	Cond  Expr
	Body  Block
	SpanV errs.Span
}

func (s *WhileStmt) Span() errs.Span { return s.SpanV }
func (*WhileStmt) stmtNode()         {}

// IfBranch is one `if`/`elif` arm: a condition and its body.
type IfBranch struct {
	Cond  Expr
	Body  Block
	SpanV errs.Span
}

// IfStmt is a full if/elif*/else? chain.
type IfStmt struct {
	Branches []IfBranch // at least one; Branches[0] is the `if`, rest are `elif`
	Else     *Block     // nil if there is no `else`
	SpanV    errs.Span
}

func (s *IfStmt) Span() errs.Span { return s.SpanV }
func (*IfStmt) stmtNode()         {}

// Expr is a parsed expression, prior to flattening (internal/typedast).
type Expr interface {
	Node
	exprNode()
}

// BinOp and UniOp name the operators spec §4.7's table enumerates.
type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpMod BinOp = "%"
	OpAnd BinOp = "&&"
	OpOr  BinOp = "||"
	OpLt  BinOp = "<"
	OpLe  BinOp = "<="
	OpGt  BinOp = ">"
	OpGe  BinOp = ">="
	OpEq  BinOp = "=="
	OpNe  BinOp = "!="
)

type UniOp string

const (
	OpNeg UniOp = "-"
	OpNot UniOp = "!"
)

// LiteralKind discriminates LiteralExpr's value.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
)

// LiteralExpr is an Int, Float, String, or Bool literal.
type LiteralExpr struct {
	Kind    LiteralKind
	IntVal  int64
	FltVal  float64
	StrVal  string
	BoolVal bool
	SpanV   errs.Span
}

func (e *LiteralExpr) Span() errs.Span { return e.SpanV }
func (*LiteralExpr) exprNode()         {}

// IdentExpr is a bare name: resolves to either a VarID or FnID binding
// (spec §4.4: "Lookups prefer variables over functions when an Ident is
// ambiguous").
type IdentExpr struct {
	Name  string
	SpanV errs.Span
}

func (e *IdentExpr) Span() errs.Span { return e.SpanV }
func (*IdentExpr) exprNode()         {}

// ModAccessExpr is an explicit module-qualified reference, e.g. `math.max`.
type ModAccessExpr struct {
	ModulePath Path
	Name       string
	SpanV      errs.Span
}

func (e *ModAccessExpr) Span() errs.Span { return e.SpanV }
func (*ModAccessExpr) exprNode()         {}

// FieldAccessExpr walks a dotted field path off a base expression.
type FieldAccessExpr struct {
	Base  Expr
	Path  []string
	SpanV errs.Span
}

func (e *FieldAccessExpr) Span() errs.Span { return e.SpanV }
func (*FieldAccessExpr) exprNode()         {}

// CallExpr calls a function value with positional arguments.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	SpanV  errs.Span
}

func (e *CallExpr) Span() errs.Span { return e.SpanV }
func (*CallExpr) exprNode()         {}

// FnCallChainExpr is a pipe chain `seed |> stage1 |> stage2(extra)`. Each
// stage is desugared by the flattener (internal/typedast) into a CallExpr
// whose first argument is the previous stage's result (spec §4.2).
type FnCallChainExpr struct {
	Seed   Expr
	Stages []PipeStage
	SpanV  errs.Span
}

func (e *FnCallChainExpr) Span() errs.Span { return e.SpanV }
func (*FnCallChainExpr) exprNode()         {}

// PipeStage is one `|> f(extra...)` stage of a pipe chain.
type PipeStage struct {
	Callee     Expr
	ExtraArgs  []Expr
	SpanV      errs.Span
}

// BinExpr is a binary operator application.
type BinExpr struct {
	Op    BinOp
	Lhs   Expr
	Rhs   Expr
	SpanV errs.Span
}

func (e *BinExpr) Span() errs.Span { return e.SpanV }
func (*BinExpr) exprNode()         {}

// UniExpr is a unary operator application.
type UniExpr struct {
	Op      UniOp
	Operand Expr
	SpanV   errs.Span
}

func (e *UniExpr) Span() errs.Span { return e.SpanV }
func (*UniExpr) exprNode()         {}

// StructInitExpr constructs a named (possibly generic) record, with
// explicit type arguments when needed to disambiguate (spec scenario S5).
type StructInitExpr struct {
	TypePath Path
	TypeArgs []TypeAnnotation
	Fields   map[string]Expr
	SpanV    errs.Span
}

func (e *StructInitExpr) Span() errs.Span { return e.SpanV }
func (*StructInitExpr) exprNode()         {}

// AnonStructInitExpr constructs a value checked only against a width
// constraint, never a named record (spec §4.7).
type AnonStructInitExpr struct {
	Fields map[string]Expr
	SpanV  errs.Span
}

func (e *AnonStructInitExpr) Span() errs.Span { return e.SpanV }
func (*AnonStructInitExpr) exprNode()         {}

// ArrayInitKind discriminates ArrayInitExpr's two forms.
type ArrayInitKind int

const (
	ArrayInitList  ArrayInitKind = iota // [e1, e2, e3]
	ArrayInitValue                      // [v; n] - value repeated n times
)

// ArrayInitExpr constructs an array literal either as an explicit element
// list or as one value repeated N times.
type ArrayInitExpr struct {
	Kind     ArrayInitKind
	Elements []Expr // ArrayInitList
	Value    Expr   // ArrayInitValue
	Size     Expr   // ArrayInitValue
	SpanV    errs.Span
}

func (e *ArrayInitExpr) Span() errs.Span { return e.SpanV }
func (*ArrayInitExpr) exprNode()         {}

// IndexingExpr indexes into an array value.
type IndexingExpr struct {
	Base  Expr
	Index Expr
	SpanV errs.Span
}

func (e *IndexingExpr) Span() errs.Span { return e.SpanV }
func (*IndexingExpr) exprNode()         {}

// TypeInstExpr explicitly instantiates a generic function/type value with
// type arguments, e.g. `identity::<int>`.
type TypeInstExpr struct {
	Base     Expr
	TypeArgs []TypeAnnotation
	SpanV    errs.Span
}

func (e *TypeInstExpr) Span() errs.Span { return e.SpanV }
func (*TypeInstExpr) exprNode()         {}

// AnonymousFnExpr is a function literal. No type parameters are permitted
// on anonymous functions (spec §4.9 step 2).
type AnonymousFnExpr struct {
	Params     []ParamDecl
	ReturnType *TypeAnnotation
	Body       Block
	SpanV      errs.Span
}

func (e *AnonymousFnExpr) Span() errs.Span { return e.SpanV }
func (*AnonymousFnExpr) exprNode()         {}
