package typedast

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/ids"
)

// AnonReserver mints a fresh FnID for an anonymous-function literal
// encountered mid-flattening and stashes its AST for later elaboration
// (spec §4.2, §4.9). internal/universe implements this; the interface lives
// here so internal/typedast never imports internal/universe.
type AnonReserver interface {
	ReserveAnon(fn ast.AnonymousFnExpr) ids.FnID
}

// Flattener lowers ast.Expr trees into Expression values, minting TmpIDs
// from the supplied counter.
type Flattener struct {
	counters *ids.Counters
	reserver AnonReserver
}

func NewFlattener(counters *ids.Counters, reserver AnonReserver) *Flattener {
	return &Flattener{counters: counters, reserver: reserver}
}

// Flatten lowers a single expression into an Expression whose Order is a
// topological sort of its temporaries.
func (f *Flattener) Flatten(e ast.Expr) *Expression {
	out := &Expression{Tmps: make(map[ids.TmpID]*Tmp)}
	out.Root = f.lower(e, out)
	return out
}

func (f *Flattener) emit(out *Expression, v Value) ids.TmpID {
	id := f.counters.NewTmpID()
	out.Tmps[id] = &Tmp{ID: id, Value: v}
	out.Order = append(out.Order, id)
	return id
}

func (f *Flattener) lower(e ast.Expr, out *Expression) ids.TmpID {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		return f.emit(out, Value{Kind: ValLiteral, Literal: *n, Span: n.SpanV})

	case *ast.IdentExpr:
		return f.emit(out, Value{Kind: ValBinding, Name: n.Name, BindingKind: BindingUnresolved, Span: n.SpanV})

	case *ast.ModAccessExpr:
		path := pathStrings(n.ModulePath)
		return f.emit(out, Value{Kind: ValModAccess, ModulePath: path, FieldName: n.Name, Span: n.SpanV})

	case *ast.FieldAccessExpr:
		base := f.lower(n.Base, out)
		return f.emit(out, Value{Kind: ValFieldAccess, Base: base, FieldPath: n.Path, Span: n.SpanV})

	case *ast.CallExpr:
		callee := f.lower(n.Callee, out)
		args := make([]ids.TmpID, len(n.Args))
		for i, a := range n.Args {
			args[i] = f.lower(a, out)
		}
		return f.emit(out, Value{Kind: ValFnCall, Callee: callee, Args: args, Span: n.SpanV})

	case *ast.FnCallChainExpr:
		return f.lowerChain(n, out)

	case *ast.BinExpr:
		lhs := f.lower(n.Lhs, out)
		rhs := f.lower(n.Rhs, out)
		return f.emit(out, Value{Kind: ValBinExpr, BinOp: n.Op, Lhs: lhs, Rhs: rhs, Span: n.SpanV})

	case *ast.UniExpr:
		operand := f.lower(n.Operand, out)
		return f.emit(out, Value{Kind: ValUniExpr, UniOp: n.Op, Operand: operand, Span: n.SpanV})

	case *ast.StructInitExpr:
		fields := make(map[string]ids.TmpID, len(n.Fields))
		for name, fe := range n.Fields {
			fields[name] = f.lower(fe, out)
		}
		return f.emit(out, Value{
			Kind: ValStructInit, TypePath: pathStrings(n.TypePath), TypeArgs: n.TypeArgs,
			StructFields: fields, Span: n.SpanV,
		})

	case *ast.AnonStructInitExpr:
		fields := make(map[string]ids.TmpID, len(n.Fields))
		for name, fe := range n.Fields {
			fields[name] = f.lower(fe, out)
		}
		return f.emit(out, Value{Kind: ValAnonStructInit, StructFields: fields, Span: n.SpanV})

	case *ast.ArrayInitExpr:
		switch n.Kind {
		case ast.ArrayInitList:
			elems := make([]ids.TmpID, len(n.Elements))
			for i, el := range n.Elements {
				elems[i] = f.lower(el, out)
			}
			return f.emit(out, Value{Kind: ValArrayInit, ArrayKind: n.Kind, ArrayElements: elems, Span: n.SpanV})
		default: // ast.ArrayInitValue
			val := f.lower(n.Value, out)
			size := f.lower(n.Size, out)
			return f.emit(out, Value{Kind: ValArrayInit, ArrayKind: n.Kind, ArrayValue: val, ArraySize: size, Span: n.SpanV})
		}

	case *ast.IndexingExpr:
		base := f.lower(n.Base, out)
		index := f.lower(n.Index, out)
		return f.emit(out, Value{Kind: ValIndexing, Base: base, Index: index, Span: n.SpanV})

	case *ast.TypeInstExpr:
		base := f.lower(n.Base, out)
		return f.emit(out, Value{Kind: ValTypeInst, Base: base, TypeArgs: n.TypeArgs, Span: n.SpanV})

	case *ast.AnonymousFnExpr:
		fn := f.reserver.ReserveAnon(*n)
		return f.emit(out, Value{Kind: ValAnonymousFn, AnonFn: fn, Span: n.SpanV})

	default:
		panic("typedast: unhandled ast.Expr variant")
	}
}

// lowerChain desugars `seed |> stage1(extra) |> stage2` into nested FnCall
// temporaries, each taking the previous stage's result temp as its first
// argument (spec §4.2).
func (f *Flattener) lowerChain(n *ast.FnCallChainExpr, out *Expression) ids.TmpID {
	cur := f.lower(n.Seed, out)
	for _, stage := range n.Stages {
		callee := f.lower(stage.Callee, out)
		args := make([]ids.TmpID, 0, len(stage.ExtraArgs)+1)
		args = append(args, cur)
		for _, a := range stage.ExtraArgs {
			args = append(args, f.lower(a, out))
		}
		cur = f.emit(out, Value{Kind: ValFnCall, Callee: callee, Args: args, Span: stage.SpanV})
	}
	return cur
}

func pathStrings(p ast.Path) []string {
	out := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		out[i] = seg.Name
	}
	return out
}
