// Package typedast implements the expression flattener (spec §4.2): it
// lowers a parsed ast.Expr into an ordered sequence of named temporaries
// (Tmp) with explicit, topologically-sorted dependencies on earlier
// temporaries. FnCallChain pipe stages are desugared into plain FnCall
// temporaries whose first argument is the previous stage's result.
package typedast

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
)

// ValueKind discriminates Tmp.Value's variant (spec §3 "Expression form").
type ValueKind int

const (
	ValLiteral ValueKind = iota
	ValBinding
	ValModAccess
	ValFieldAccess
	ValFnCall
	ValBinExpr
	ValUniExpr
	ValStructInit
	ValAnonStructInit
	ValArrayInit
	ValIndexing
	ValTypeInst
	ValAnonymousFn
)

// BindingKind discriminates whether a Binding value names a variable or a
// function at this point in flattening (name resolution, internal/scope,
// fills in which).
type BindingKind int

const (
	BindingUnresolved BindingKind = iota
	BindingVar
	BindingFn
)

// Value is the payload of one Tmp: exactly the fields relevant to Kind are
// populated.
type Value struct {
	Kind ValueKind

	// ValLiteral
	Literal ast.LiteralExpr

	// ValBinding
	Name        string
	BindingKind BindingKind
	Var         ids.VarID
	Fn          ids.FnID

	// ValModAccess
	ModulePath []string
	FieldName  string

	// ValFieldAccess
	Base     ids.TmpID
	FieldPath []string

	// ValFnCall
	Callee ids.TmpID
	Args   []ids.TmpID

	// ValBinExpr
	BinOp ast.BinOp
	Lhs   ids.TmpID
	Rhs   ids.TmpID

	// ValUniExpr
	UniOp   ast.UniOp
	Operand ids.TmpID

	// ValStructInit
	TypePath     []string
	TypeArgs     []ast.TypeAnnotation
	StructFields map[string]ids.TmpID

	// ValAnonStructInit reuses StructFields.

	// ValArrayInit
	ArrayKind     ast.ArrayInitKind
	ArrayElements []ids.TmpID
	ArrayValue    ids.TmpID
	ArraySize     ids.TmpID

	// ValIndexing reuses Base for the indexed value.
	Index ids.TmpID

	// ValTypeInst reuses Base and TypeArgs.

	// ValAnonymousFn
	AnonFn ids.FnID

	Span errs.Span
}

// Tmp is one named intermediate result in the flattened expression form.
type Tmp struct {
	ID    ids.TmpID
	Value Value
}

// Expression is a flat container owned by a block-node or condition: a map
// of every Tmp it contains, plus the total execution order that is
// guaranteed to be a topological sort — every Tmp referencing other TmpIDs
// appears strictly after its dependencies (spec §4.2).
type Expression struct {
	Tmps  map[ids.TmpID]*Tmp
	Order []ids.TmpID
	Root  ids.TmpID // the Tmp holding the expression's overall result
}

// Get looks up a Tmp by ID.
func (e *Expression) Get(id ids.TmpID) (*Tmp, bool) {
	t, ok := e.Tmps[id]
	return t, ok
}
