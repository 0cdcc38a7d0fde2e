package check

import (
	"github.com/smpl-lang/smplc/internal/cfg"
	"github.com/smpl-lang/smplc/internal/checkctx"
	"github.com/smpl-lang/smplc/internal/typedast"
	"github.com/smpl-lang/smplc/internal/types"
	"github.com/smpl-lang/smplc/internal/universe"
)

// elaborateAnon implements the anonymous-function elaborator (spec §4.9).
// It runs the first time a temporary references a Reserved AnonymousFn
// entry, building the nested function's type, scope, typing context, and
// CFG under the checker's own live scope (so it captures the surrounding
// bindings), then recursively runs scope resolution, type checking, and
// return-trace verification on it before the outer checker continues. A
// second visit to an already-Resolved entry (which spec §5 point 3 says
// cannot happen mid-elaboration, but could in principle arise if the same
// fn_id were ever revisited after the fact) short-circuits straight to its
// recorded type.
func (c *Checker) elaborateAnon(v *typedast.Value) (types.AbstractType, error) {
	entry, ok := c.u.Function(v.AnonFn)
	if !ok {
		panic("check: AnonymousFn temporary references an unreserved FnID")
	}
	if entry.State == universe.FnAnonResolved {
		return types.FullyResolve(c.u, types.App(entry.TypeID, nil), v.Span)
	}
	if entry.State != universe.FnAnonReserved {
		panic("check: AnonymousFn temporary references a non-anonymous FunctionEntry")
	}

	fn := entry.ReservedAST

	paramTypes := make([]types.AbstractType, len(fn.Params))
	for i, p := range fn.Params {
		t, err := ResolveAnnotation(c.scope, p.Type)
		if err != nil {
			return types.AbstractType{}, err
		}
		paramTypes[i] = t
	}
	retType := types.Unit
	if fn.ReturnType != nil {
		t, err := ResolveAnnotation(c.scope, *fn.ReturnType)
		if err != nil {
			return types.AbstractType{}, err
		}
		retType = t
	}

	tc := &types.TypeConstructor{Kind: types.ConsFunction, Parameters: paramTypes, ReturnType: retType}
	freshTypeID := c.u.Register(tc)

	root := c.scope.Fork()
	paramVars := bindParams(c.u.Counters, root, fn.Params)

	tctx := checkctx.New()
	// Captured outer variables keep the types the enclosing checker gave them.
	for v, t := range c.tctx.Vars {
		tctx.SetVar(v, t)
	}
	for i, pv := range paramVars {
		tctx.SetVar(pv, paramTypes[i])
	}

	flattener := typedast.NewFlattener(c.u.Counters, c.u)
	builder := cfg.NewBuilder(c.u.Counters, flattener)
	graph, err := builder.Build(fn.Body, retType.Kind == types.AbsUnit)
	if err != nil {
		return types.AbstractType{}, err
	}

	c.u.ResolveAnon(v.AnonFn, freshTypeID, &fn.Body, root, tctx, graph, retType, paramVars)

	if err := resolveScopes(c.u.Counters, graph, root); err != nil {
		return types.AbstractType{}, err
	}
	nested := NewChecker(c.u, c.meta, tctx, c.module, retType)
	if err := nested.CheckFunction(root, graph); err != nil {
		return types.AbstractType{}, err
	}
	if err := verifyReturns(graph, v.Span); err != nil {
		return types.AbstractType{}, err
	}

	return types.FullyResolve(c.u, types.App(freshTypeID, nil), v.Span)
}
