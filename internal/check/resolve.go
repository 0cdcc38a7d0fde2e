// Package check implements the type checker and typing context (spec
// §4.7), the return-trace verifier (§4.8), and the anonymous-function
// elaborator (§4.9), plus the scope/name-resolution walk (§4.4) that must
// run over a function's CFG before either can proceed.
package check

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/cfg"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/scope"
	"github.com/smpl-lang/smplc/internal/typedast"
)

// resolveScopes walks graph once (spec §4.4), forking scope at every
// EnterScope and dropping it at every ExitScope, declaring locals as they
// are encountered and rewriting every Binding temporary's Name into a
// concrete VarID or FnID.
func resolveScopes(counters *ids.Counters, graph *cfg.CFG, root *scope.ScopedData) error {
	stack := []*scope.ScopedData{root}
	top := func() *scope.ScopedData { return stack[len(stack)-1] }

	return graph.WalkForward(graph.Start, func(id cfg.NodeID) error {
		n := graph.Node(id)
		switch n.Kind {
		case cfg.NodeEnterScope:
			stack = append(stack, top().Fork())
		case cfg.NodeExitScope:
			stack = stack[:len(stack)-1]
		case cfg.NodeCondition:
			return resolveExpr(top(), n.Cond)
		case cfg.NodeLoopHead:
			return resolveExpr(top(), n.Cond)
		case cfg.NodeReturn:
			if n.ReturnValue != nil {
				return resolveExpr(top(), n.ReturnValue)
			}
		case cfg.NodeBasicBlock:
			for _, block := range n.Blocks {
				if err := resolveBlockNode(counters, top(), block); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func resolveBlockNode(counters *ids.Counters, s *scope.ScopedData, block typedast.BlockNode) error {
	switch b := block.(type) {
	case *typedast.ExprNode:
		return resolveExpr(s, b.Expr)

	case *typedast.LocalVarDeclNode:
		if err := resolveExpr(s, b.Init); err != nil {
			return err
		}
		v := counters.NewVarID()
		b.Var = v
		s.DeclareVar(b.Name, v)
		return nil

	case *typedast.AssignmentNode:
		if err := resolveExpr(s, b.Value); err != nil {
			return err
		}
		v, ok := s.LookupVar(b.TargetName)
		if !ok {
			return errs.New(errs.UnknownBinding, errs.PhaseScopeResolve, errs.Dummy(),
				fmt.Sprintf("unknown variable %q", b.TargetName), map[string]any{"name": b.TargetName})
		}
		b.TargetBase = v
		for _, seg := range b.Segments {
			if seg.IsIndex {
				if err := resolveExpr(s, seg.Index); err != nil {
					return err
				}
			}
		}
		return nil

	default:
		panic("check: unhandled typedast.BlockNode variant")
	}
}

// resolveExpr resolves every Binding and ModAccess temporary in e to a
// concrete VarID or FnID, preferring a variable binding over a function
// binding of the same name (spec §4.4). FieldAccess/Indexing temporaries
// resolve structurally during type checking instead, since they name a path
// off another temporary's value rather than a scope identifier.
func resolveExpr(s *scope.ScopedData, e *typedast.Expression) error {
	for _, id := range e.Order {
		tmp := e.Tmps[id]

		var name string
		switch tmp.Value.Kind {
		case typedast.ValBinding:
			name = tmp.Value.Name
		case typedast.ValModAccess:
			// `use`-imports copy a module's bindings into the importer's
			// scope under the imported prefix (spec §4.3 step 4), so a
			// qualified reference like `math.max` is bound under the same
			// dotted string it was written with.
			name = modAccessName(tmp.Value.ModulePath, tmp.Value.FieldName)
		default:
			continue
		}

		b, ok := s.LookupIdent(name)
		if !ok {
			return errs.New(errs.UnknownBinding, errs.PhaseScopeResolve, tmp.Value.Span,
				fmt.Sprintf("unknown identifier %q", name), map[string]any{"name": name})
		}
		if b.IsVar {
			tmp.Value.BindingKind = typedast.BindingVar
			tmp.Value.Var = b.Var
		} else {
			tmp.Value.BindingKind = typedast.BindingFn
			tmp.Value.Fn = b.Fn
		}
	}
	return nil
}

func modAccessName(modPath []string, field string) string {
	out := ""
	for _, seg := range modPath {
		out += seg + "."
	}
	return out + field
}

// bindParams declares a function's parameters in its root scope and mints
// their VarIDs, returning them in declaration order (spec §4.1
// "Function").
func bindParams(counters *ids.Counters, root *scope.ScopedData, params []ast.ParamDecl) []ids.VarID {
	out := make([]ids.VarID, len(params))
	for i, p := range params {
		v := counters.NewVarID()
		root.DeclareVar(p.Name, v)
		out[i] = v
	}
	return out
}
