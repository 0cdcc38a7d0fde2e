package fixture

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
)

// BlockY mirrors ast.Block: an ordered statement list sharing one scope.
type BlockY struct {
	Stmts []Stmt `yaml:"stmts"`
}

func (b *BlockY) ToAST() ast.Block {
	return ast.Block{Stmts: stmtsToAST(b.Stmts), SpanV: errs.Dummy()}
}

// IfBranchY mirrors ast.IfBranch.
type IfBranchY struct {
	Cond Expr   `yaml:"cond"`
	Body BlockY `yaml:"body"`
}

func (b *IfBranchY) ToAST() ast.IfBranch {
	return ast.IfBranch{Cond: b.Cond.ToAST(), Body: b.Body.ToAST(), SpanV: errs.Dummy()}
}

// Stmt mirrors ast.Stmt's eight variants behind one discriminated struct.
type Stmt struct {
	Kind string `yaml:"kind"`

	// expr
	Expr *Expr `yaml:"expr,omitempty"`

	// local_var_decl
	Name string   `yaml:"name,omitempty"`
	Type *TypeAnn `yaml:"type,omitempty"`
	Init *Expr    `yaml:"init,omitempty"`

	// assignment
	Target *Expr `yaml:"target,omitempty"`
	Value  *Expr `yaml:"value,omitempty"`

	// return
	ReturnValue *Expr `yaml:"return_value,omitempty"`

	// while
	Cond *Expr   `yaml:"cond,omitempty"`
	Body *BlockY `yaml:"body,omitempty"`

	// if
	Branches []IfBranchY `yaml:"branches,omitempty"`
	Else     *BlockY     `yaml:"else,omitempty"`
}

func stmtsToAST(ss []Stmt) []ast.Stmt {
	out := make([]ast.Stmt, len(ss))
	for i, s := range ss {
		out[i] = s.ToAST()
	}
	return out
}

// ToAST converts a Stmt fixture node into its real ast.Stmt, panicking on
// an unrecognized Kind (a fixture authoring mistake).
func (s *Stmt) ToAST() ast.Stmt {
	span := errs.Dummy()
	switch s.Kind {
	case "expr":
		return &ast.ExprStmt{Expr: s.Expr.ToAST(), SpanV: span}
	case "local_var_decl":
		var typ *ast.TypeAnnotation
		if s.Type != nil {
			t := s.Type.ToAST()
			typ = &t
		}
		return &ast.LocalVarDeclStmt{Name: s.Name, Type: typ, Init: s.Init.ToAST(), SpanV: span}
	case "assignment":
		return &ast.AssignmentStmt{Target: s.Target.ToAST(), Value: s.Value.ToAST(), SpanV: span}
	case "return":
		var v ast.Expr
		if s.ReturnValue != nil {
			v = s.ReturnValue.ToAST()
		}
		return &ast.ReturnStmt{Value: v, SpanV: span}
	case "break":
		return &ast.BreakStmt{SpanV: span}
	case "continue":
		return &ast.ContinueStmt{SpanV: span}
	case "while":
		return &ast.WhileStmt{Cond: s.Cond.ToAST(), Body: s.Body.ToAST(), SpanV: span}
	case "if":
		branches := make([]ast.IfBranch, len(s.Branches))
		for i, b := range s.Branches {
			b := b
			branches[i] = b.ToAST()
		}
		var elseBlock *ast.Block
		if s.Else != nil {
			eb := s.Else.ToAST()
			elseBlock = &eb
		}
		return &ast.IfStmt{Branches: branches, Else: elseBlock, SpanV: span}
	default:
		panic(decodeErr("unknown stmt kind %q", s.Kind))
	}
}
