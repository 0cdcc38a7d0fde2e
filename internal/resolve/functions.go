package resolve

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/cfg"
	"github.com/smpl-lang/smplc/internal/check"
	"github.com/smpl-lang/smplc/internal/checkctx"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/scope"
	"github.com/smpl-lang/smplc/internal/typedast"
	"github.com/smpl-lang/smplc/internal/types"
)

// bindParams declares a function's parameters in its root scope and mints
// their VarIDs, returning them in declaration order. A local twin of
// internal/check's own unexported bindParams (spec §4.1 "Function"):
// that helper can't be called across the package boundary, and the logic
// is three lines.
func bindParams(counters *ids.Counters, root *scope.ScopedData, params []ast.ParamDecl) []ids.VarID {
	out := make([]ids.VarID, len(params))
	for i, p := range params {
		v := counters.NewVarID()
		root.DeclareVar(p.Name, v)
		out[i] = v
	}
	return out
}

// buildFunction builds a user function's Function TypeConstructor (a fresh
// TypeID, exactly as elaborateAnon mints one for an anonymous function's
// constructor, spec §4.9) and its CFG, then fills in the FunctionEntry pass
// 1 already created (spec §4.3 steps 6, and the CFG-building half of step
// 5's sibling in the original's two-loop structure).
func buildFunction(st *state, mc *moduleCtx, decl *ast.FunctionDecl) error {
	fnID := mc.ownFnIDs[decl.Name]

	generic, params, err := buildTypeParams(st.u.Counters, mc.scope, decl.TypeParams)
	if err != nil {
		return err
	}
	typeParamNames := make(map[string]bool, len(decl.TypeParams))
	for _, tp := range decl.TypeParams {
		typeParamNames[tp.Name] = true
	}

	paramTypes := make([]types.AbstractType, len(decl.Params))
	for i, p := range decl.Params {
		if err := checkTypeParamNameConflicts(typeParamNames, p.Name, p.SpanV, "parameter"); err != nil {
			return err
		}
		t, err := check.ResolveAnnotation(generic, p.Type)
		if err != nil {
			return err
		}
		paramTypes[i] = t
	}
	retType := types.Unit
	if decl.ReturnType != nil {
		t, err := check.ResolveAnnotation(generic, *decl.ReturnType)
		if err != nil {
			return err
		}
		retType = t
	}

	tc := &types.TypeConstructor{Kind: types.ConsFunction, FnParams: params, Parameters: paramTypes, ReturnType: retType}
	typeID := st.u.Register(tc)

	root := generic.Fork()
	paramVars := bindParams(st.u.Counters, root, decl.Params)

	tctx := checkctx.New()
	for i, pv := range paramVars {
		tctx.SetVar(pv, paramTypes[i])
	}
	existentials := make([]ids.TypeVarID, len(params))
	for i, tp := range params {
		existentials[i] = tp.Var
	}
	tctx.Existentials = existentials

	flattener := typedast.NewFlattener(st.u.Counters, st.u)
	builder := cfg.NewBuilder(st.u.Counters, flattener)
	graph, err := builder.Build(decl.Body, retType.Kind == types.AbsUnit)
	if err != nil {
		return err
	}

	entry, _ := st.u.Function(fnID)
	entry.TypeID = typeID
	entry.Body = &decl.Body
	entry.RootScope = root
	entry.TypingCtx = tctx
	entry.CFG = graph
	entry.Existentials = existentials
	entry.ReturnType = &retType
	entry.ParamVars = paramVars

	st.setParamVars(fnID, paramVars)
	return nil
}

// buildBuiltin builds a builtin's Function or UncheckedFunction (variadic)
// TypeConstructor. Builtins carry no body to build a CFG for — only
// entry.TypeID is populated, which check.checkBinding reads unconditionally
// for both user and builtin functions (internal/check/typecheck.go).
func buildBuiltin(st *state, mc *moduleCtx, decl *ast.BuiltinFunctionDecl) error {
	fnID := mc.ownFnIDs[decl.Name]

	generic, params, err := buildTypeParams(st.u.Counters, mc.scope, decl.TypeParams)
	if err != nil {
		return err
	}

	paramTypes := make([]types.AbstractType, len(decl.ParamTypes))
	for i, a := range decl.ParamTypes {
		t, err := check.ResolveAnnotation(generic, a)
		if err != nil {
			return err
		}
		paramTypes[i] = t
	}
	retType := types.Unit
	if decl.ReturnType != nil {
		t, err := check.ResolveAnnotation(generic, *decl.ReturnType)
		if err != nil {
			return err
		}
		retType = t
	}

	var tc *types.TypeConstructor
	if decl.Variadic {
		tc = &types.TypeConstructor{Kind: types.ConsUncheckedFunction, FnParams: params, ReturnType: retType}
	} else {
		tc = &types.TypeConstructor{Kind: types.ConsFunction, FnParams: params, Parameters: paramTypes, ReturnType: retType}
	}
	typeID := st.u.Register(tc)

	entry, _ := st.u.Function(fnID)
	entry.TypeID = typeID

	st.setBuiltin(fnID)
	if decl.Variadic {
		st.setVariadic(fnID)
	}
	st.setFeature("builtin_fn")
	if decl.Variadic {
		st.setFeature("unchecked_builtin_fn_params")
	}
	return nil
}
