package check

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/cfg"
	"github.com/smpl-lang/smplc/internal/checkctx"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/scope"
	"github.com/smpl-lang/smplc/internal/typedast"
	"github.com/smpl-lang/smplc/internal/types"
	"github.com/smpl-lang/smplc/internal/universe"
)

// Checker type-checks one function body against its CFG (spec §4.7), after
// resolveScopes has already rewritten every Binding/ModAccess temporary into
// a concrete VarID or FnID. It holds the live scope at the node currently
// being visited (for type-path and type-var lookups, e.g. a struct-init's
// TypePath or a type annotation's bound type-vars) and the running typing
// context that accumulates every Tmp/Var's resolved type.
type Checker struct {
	u      *universe.Universe
	meta   *universe.Metadata
	tctx   *checkctx.TypingContext
	module ids.ModuleID

	retType types.AbstractType
	scope   *scope.ScopedData
}

// NewChecker returns a Checker for one function, owned by module, declaring
// retType as its return type.
func NewChecker(u *universe.Universe, meta *universe.Metadata, tctx *checkctx.TypingContext, module ids.ModuleID, retType types.AbstractType) *Checker {
	return &Checker{u: u, meta: meta, tctx: tctx, module: module, retType: retType}
}

// CheckFunction walks graph forward, type-checking every BasicBlock,
// Condition, LoopHead, and Return node. It mirrors resolveScopes' fork/pop
// discipline over the same scope tree, since both walks must agree on which
// bindings are visible at each node (spec §4.4 runs before §4.7 but shares
// the CFG and scope shape).
func (c *Checker) CheckFunction(root *scope.ScopedData, graph *cfg.CFG) error {
	stack := []*scope.ScopedData{root}
	top := func() *scope.ScopedData { return stack[len(stack)-1] }

	return graph.WalkForward(graph.Start, func(id cfg.NodeID) error {
		n := graph.Node(id)
		c.scope = top()

		switch n.Kind {
		case cfg.NodeEnterScope:
			stack = append(stack, top().Fork())
		case cfg.NodeExitScope:
			stack = stack[:len(stack)-1]
		case cfg.NodeCondition, cfg.NodeLoopHead:
			if err := c.checkExpr(n.Cond); err != nil {
				return err
			}
			t, _ := c.tctx.Tmp(n.Cond.Root)
			return types.ResolveTypes(c.u, t, types.Bool, rootSpan(n.Cond))
		case cfg.NodeReturn:
			return c.checkReturn(n)
		case cfg.NodeBasicBlock:
			for _, block := range n.Blocks {
				if err := c.checkBlockNode(block); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func rootSpan(e *typedast.Expression) errs.Span {
	return e.Tmps[e.Root].Value.Span
}

func (c *Checker) checkReturn(n *cfg.Node) error {
	if n.ReturnValue == nil {
		return types.ResolveTypes(c.u, types.Unit, c.retType, errs.Dummy())
	}
	if err := c.checkExpr(n.ReturnValue); err != nil {
		return err
	}
	t, _ := c.tctx.Tmp(n.ReturnValue.Root)
	return types.ResolveTypes(c.u, t, c.retType, rootSpan(n.ReturnValue))
}

func (c *Checker) checkBlockNode(block typedast.BlockNode) error {
	switch b := block.(type) {
	case *typedast.ExprNode:
		return c.checkExpr(b.Expr)

	case *typedast.LocalVarDeclNode:
		if err := c.checkExpr(b.Init); err != nil {
			return err
		}
		initT, _ := c.tctx.Tmp(b.Init.Root)
		varT := initT
		if b.Type != nil {
			constraint, err := ResolveAnnotation(c.scope, *b.Type)
			if err != nil {
				return err
			}
			if err := types.ResolveTypes(c.u, initT, constraint, rootSpan(b.Init)); err != nil {
				return err
			}
			// The variable's static type is the annotation's, not the
			// initializer's own synthesized type: a width-constrained
			// annotation is narrower than the record literal that satisfies
			// it (spec §4.5, §4.7). An App annotation is recorded in its
			// applied form.
			varT = constraint
			if constraint.Kind == types.AbsApp {
				if varT, err = types.FullyResolve(c.u, constraint, rootSpan(b.Init)); err != nil {
					return err
				}
			}
		}
		c.tctx.SetVar(b.Var, varT)
		// Mirror resolveScopes' declaration, so an anonymous function
		// elaborated later under this scope can see the binding.
		c.scope.DeclareVar(b.Name, b.Var)
		return nil

	case *typedast.AssignmentNode:
		if err := c.checkExpr(b.Value); err != nil {
			return err
		}
		return c.checkAssignment(b)

	default:
		panic("check: unhandled typedast.BlockNode variant")
	}
}

// checkAssignment walks an lvalue path from its already-declared base
// variable, descending through records, width constraints, and array
// elements, then checks the assigned value's type against whatever the path
// resolves to.
func (c *Checker) checkAssignment(b *typedast.AssignmentNode) error {
	cur, ok := c.tctx.Var(b.TargetBase)
	if !ok {
		return errs.New(errs.UnknownBinding, errs.PhaseTypeCheck, errs.Dummy(),
			fmt.Sprintf("assignment target %q used before its type is known", b.TargetName), nil)
	}
	valueT, _ := c.tctx.Tmp(b.Value.Root)
	span := rootSpan(b.Value)

	checkFinal := true
	for i, seg := range b.Segments {
		last := i == len(b.Segments)-1

		ground, err := types.FullyResolve(c.u, cur, span)
		if err != nil {
			return err
		}

		if seg.IsIndex {
			if ground.Kind != types.AbsArray {
				return errs.New(errs.TypeNotAnArray, errs.PhaseTypeCheck, span,
					fmt.Sprintf("cannot index into %s", describeType(ground)), nil)
			}
			if err := c.checkExpr(seg.Index); err != nil {
				return err
			}
			idxT, _ := c.tctx.Tmp(seg.Index.Root)
			if err := types.ResolveTypes(c.u, idxT, types.Int, span); err != nil {
				return errs.New(errs.TypeInvalidIndex, errs.PhaseTypeCheck, span,
					"array index must be an int", nil)
			}
			cur = *ground.Element
			continue
		}

		switch ground.Kind {
		case types.AbsRecord:
			tc, ok := c.u.Lookup(ground.RecordTypeID)
			if !ok {
				panic("check: registered record type vanished from the universe")
			}
			fid, ok := tc.FieldMap[seg.Field]
			if !ok {
				return errs.New(errs.TypeUnknownField, errs.PhaseTypeCheck, span,
					fmt.Sprintf("unknown field %q", seg.Field), map[string]any{"field": seg.Field})
			}
			cur = ground.Fields[fid]

		case types.AbsWidthConstraint:
			ft, ok := ground.WidthFields[seg.Field]
			if !ok {
				if !last {
					return errs.New(errs.TypeUnknownField, errs.PhaseTypeCheck, span,
						fmt.Sprintf("unknown field %q", seg.Field), map[string]any{"field": seg.Field})
				}
				// A field the width constraint doesn't name is accepted
				// silently, matching the original's behavior: the
				// underlying value is a concrete record the constraint only
				// partially describes, so there is nothing narrower to
				// check the assigned value against.
				checkFinal = false
				continue
			}
			cur = ft

		default:
			return errs.New(errs.TypeNotAStruct, errs.PhaseTypeCheck, span,
				fmt.Sprintf("%s has no fields", describeType(ground)), nil)
		}
	}

	if !checkFinal {
		return nil
	}
	return types.ResolveTypes(c.u, valueT, cur, span)
}

// checkExpr computes and records the type of every temporary in e, in
// dependency order, so later temporaries can read earlier ones straight out
// of the typing context. An App result is recorded in its applied form. A
// TypeInst's Base temporary is not checked on its own (checkTypeInst reads
// its Value instead) and is recorded with the instantiated type.
func (c *Checker) checkExpr(e *typedast.Expression) error {
	instBases := make(map[ids.TmpID]bool)
	for _, id := range e.Order {
		if v := e.Tmps[id].Value; v.Kind == typedast.ValTypeInst {
			instBases[v.Base] = true
		}
	}
	for _, id := range e.Order {
		if instBases[id] {
			continue
		}
		t, err := c.checkTmp(e, e.Tmps[id])
		if err != nil {
			return err
		}
		if t.Kind == types.AbsApp {
			if t, err = types.FullyResolve(c.u, t, e.Tmps[id].Value.Span); err != nil {
				return err
			}
		}
		c.tctx.SetTmp(id, t)
		if v := e.Tmps[id].Value; v.Kind == typedast.ValTypeInst {
			c.tctx.SetTmp(v.Base, t)
		}
	}
	return nil
}

func (c *Checker) checkTmp(e *typedast.Expression, t *typedast.Tmp) (types.AbstractType, error) {
	v := &t.Value
	switch v.Kind {
	case typedast.ValLiteral:
		switch v.Literal.Kind {
		case ast.LitInt:
			return types.Int, nil
		case ast.LitFloat:
			return types.Float, nil
		case ast.LitString:
			return types.String, nil
		case ast.LitBool:
			return types.Bool, nil
		default:
			return types.AbstractType{}, errs.New(errs.UnknownType, errs.PhaseTypeCheck, v.Span, "malformed literal", nil)
		}

	case typedast.ValBinding, typedast.ValModAccess:
		return c.checkBinding(v)

	case typedast.ValFieldAccess:
		return c.checkFieldAccess(v)

	case typedast.ValFnCall:
		return c.checkFnCall(v)

	case typedast.ValBinExpr:
		lhsT, _ := c.tctx.Tmp(v.Lhs)
		rhsT, _ := c.tctx.Tmp(v.Rhs)
		return c.checkBinOp(v.BinOp, lhsT, rhsT, v.Span)

	case typedast.ValUniExpr:
		operandT, _ := c.tctx.Tmp(v.Operand)
		return c.checkUniOp(v.UniOp, operandT, v.Span)

	case typedast.ValStructInit:
		return c.checkStructInit(v)

	case typedast.ValAnonStructInit:
		fields := make(map[string]types.AbstractType, len(v.StructFields))
		for name, id := range v.StructFields {
			fields[name], _ = c.tctx.Tmp(id)
		}
		return types.WidthConstraint(fields), nil

	case typedast.ValArrayInit:
		return c.checkArrayInit(e, v)

	case typedast.ValIndexing:
		return c.checkIndexing(v)

	case typedast.ValTypeInst:
		return c.checkTypeInst(e, v)

	case typedast.ValAnonymousFn:
		return c.elaborateAnon(v)

	default:
		panic("check: unhandled typedast.ValueKind")
	}
}

func (c *Checker) checkBinding(v *typedast.Value) (types.AbstractType, error) {
	switch v.BindingKind {
	case typedast.BindingVar:
		t, ok := c.tctx.Var(v.Var)
		if !ok {
			return types.AbstractType{}, errs.New(errs.UnknownBinding, errs.PhaseTypeCheck, v.Span,
				"variable referenced before its type is known", nil)
		}
		return t, nil
	case typedast.BindingFn:
		entry, ok := c.u.Function(v.Fn)
		if !ok {
			return types.AbstractType{}, errs.New(errs.UnknownFn, errs.PhaseTypeCheck, v.Span, "unknown function", nil)
		}
		// A bare reference to a generic function (Arity() > 0) correctly
		// fails here with Type.Application.Arity: it must be instantiated
		// via TypeInst first.
		return types.Resolve(c.u, types.App(entry.TypeID, nil), v.Span)
	default:
		panic("check: binding temporary was never resolved by resolveExpr")
	}
}

func (c *Checker) checkFieldAccess(v *typedast.Value) (types.AbstractType, error) {
	cur, _ := c.tctx.Tmp(v.Base)
	for _, field := range v.FieldPath {
		ground, err := types.FullyResolve(c.u, cur, v.Span)
		if err != nil {
			return types.AbstractType{}, err
		}
		switch ground.Kind {
		case types.AbsRecord:
			tc, ok := c.u.Lookup(ground.RecordTypeID)
			if !ok {
				panic("check: registered record type vanished from the universe")
			}
			fid, ok := tc.FieldMap[field]
			if !ok {
				return types.AbstractType{}, errs.New(errs.TypeUnknownField, errs.PhaseTypeCheck, v.Span,
					fmt.Sprintf("unknown field %q", field), map[string]any{"field": field})
			}
			cur = ground.Fields[fid]
		case types.AbsWidthConstraint:
			ft, ok := ground.WidthFields[field]
			if !ok {
				return types.AbstractType{}, errs.New(errs.TypeUnknownField, errs.PhaseTypeCheck, v.Span,
					fmt.Sprintf("unknown field %q", field), map[string]any{"field": field})
			}
			cur = ft
		default:
			return types.AbstractType{}, errs.New(errs.TypeFieldAccessOnNonStruct, errs.PhaseTypeCheck, v.Span,
				fmt.Sprintf("%s has no fields", describeType(ground)), nil)
		}
	}
	return cur, nil
}

func (c *Checker) checkFnCall(v *typedast.Value) (types.AbstractType, error) {
	calleeT, _ := c.tctx.Tmp(v.Callee)
	ground, err := types.FullyResolve(c.u, calleeT, v.Span)
	if err != nil {
		return types.AbstractType{}, err
	}

	switch ground.Kind {
	case types.AbsFunction:
		if len(v.Args) != len(ground.Parameters) {
			return types.AbstractType{}, errs.New(errs.TypeArity, errs.PhaseTypeCheck, v.Span,
				fmt.Sprintf("expected %d argument(s), found %d", len(ground.Parameters), len(v.Args)),
				map[string]any{"expected": len(ground.Parameters), "found": len(v.Args)})
		}
		for i, argID := range v.Args {
			argT, _ := c.tctx.Tmp(argID)
			if err := types.ResolveTypes(c.u, argT, ground.Parameters[i], v.Span); err != nil {
				return types.AbstractType{}, errs.New(errs.TypeArgMismatch, errs.PhaseTypeCheck, v.Span,
					fmt.Sprintf("argument %d type mismatch", i), map[string]any{"index": i})
			}
		}
		return *ground.ReturnType, nil

	case types.AbsUncheckedFunction:
		// Variadic builtins skip argument-shape checking entirely (spec
		// §3): only the declared return type matters at the call site.
		return *ground.ReturnType, nil

	default:
		return types.AbstractType{}, errs.New(errs.TypeUnexpectedType, errs.PhaseTypeCheck, v.Span,
			fmt.Sprintf("%s is not callable", describeType(ground)), nil)
	}
}

func (c *Checker) checkStructInit(v *typedast.Value) (types.AbstractType, error) {
	name := joinDots(v.TypePath)
	tc, ok := c.scope.LookupTypeCons(name)
	if !ok {
		return types.AbstractType{}, errs.New(errs.UnknownType, errs.PhaseTypeCheck, v.Span,
			fmt.Sprintf("unknown type %q", name), map[string]any{"name": name})
	}

	// The opacity check must run against tc, the constructor's ORIGINAL
	// TypeID from scope, not whatever fresh TypeID Substitute mints below:
	// Substitute allocates a new ID for every application of a generic
	// constructor, and Metadata.Opaque is keyed by the declaration's own ID.
	if c.meta.Opaque[tc] {
		return types.AbstractType{}, errs.New(errs.TypeInitOpaqueType, errs.PhaseTypeCheck, v.Span,
			fmt.Sprintf("%q is opaque and cannot be constructed here", name),
			map[string]any{"type": tc, "module": c.module})
	}

	args := make([]types.AbstractType, len(v.TypeArgs))
	for i, a := range v.TypeArgs {
		resolved, err := ResolveAnnotation(c.scope, a)
		if err != nil {
			return types.AbstractType{}, err
		}
		args[i] = resolved
	}

	ground, err := types.FullyResolve(c.u, types.App(tc, args), v.Span)
	if err != nil {
		return types.AbstractType{}, err
	}
	if ground.Kind != types.AbsRecord {
		return types.AbstractType{}, errs.New(errs.TypeNotAStruct, errs.PhaseTypeCheck, v.Span,
			fmt.Sprintf("%q is not a struct type", name), nil)
	}

	cons, ok := c.u.Lookup(ground.RecordTypeID)
	if !ok {
		panic("check: registered record type vanished from the universe")
	}

	for fname := range cons.FieldMap {
		if _, ok := v.StructFields[fname]; !ok {
			return types.AbstractType{}, errs.New(errs.TypeStructNotFullyInitialized, errs.PhaseTypeCheck, v.Span,
				fmt.Sprintf("missing field %q", fname), map[string]any{"field": fname})
		}
	}
	for fname, tmpID := range v.StructFields {
		fid, ok := cons.FieldMap[fname]
		if !ok {
			return types.AbstractType{}, errs.New(errs.TypeUnknownField, errs.PhaseTypeCheck, v.Span,
				fmt.Sprintf("unknown field %q", fname), map[string]any{"field": fname})
		}
		fieldT, _ := c.tctx.Tmp(tmpID)
		if err := types.ResolveTypes(c.u, fieldT, ground.Fields[fid], v.Span); err != nil {
			return types.AbstractType{}, err
		}
	}
	return ground, nil
}

// checkArrayInit implements both array-literal forms (spec §4.7, scenario
// S4). The value-repeat form has no constant-folding mechanism to draw a
// dynamic size from, so its size expression must be a literal int; this is
// a pragmatic, spec-silent rule, not a relaxation anyone should depend on
// for a computed size.
func (c *Checker) checkArrayInit(e *typedast.Expression, v *typedast.Value) (types.AbstractType, error) {
	switch v.ArrayKind {
	case ast.ArrayInitList:
		if len(v.ArrayElements) == 0 {
			return types.AbstractType{}, errs.New(errs.TypeInvalidInitialization, errs.PhaseTypeCheck, v.Span,
				"cannot determine the element type of an empty array literal", nil)
		}
		first, _ := c.tctx.Tmp(v.ArrayElements[0])
		for i, id := range v.ArrayElements[1:] {
			elT, _ := c.tctx.Tmp(id)
			if err := types.ResolveTypes(c.u, elT, first, v.Span); err != nil {
				return types.AbstractType{}, errs.New(errs.TypeHeterogenousArray, errs.PhaseTypeCheck, v.Span,
					fmt.Sprintf("element %d: expected %s, found %s", i+1, describeType(first), describeType(elT)),
					map[string]any{"expected": describeType(first), "found": describeType(elT), "index": i + 1})
			}
		}
		return types.Array(first, uint64(len(v.ArrayElements))), nil

	case ast.ArrayInitValue:
		elemT, _ := c.tctx.Tmp(v.ArrayValue)
		sizeT, _ := c.tctx.Tmp(v.ArraySize)
		if err := types.ResolveTypes(c.u, sizeT, types.Int, v.Span); err != nil {
			return types.AbstractType{}, errs.New(errs.TypeInvalidInitialization, errs.PhaseTypeCheck, v.Span,
				"array size must be an int", nil)
		}
		sizeTmp, ok := e.Get(v.ArraySize)
		if !ok || sizeTmp.Value.Kind != typedast.ValLiteral || sizeTmp.Value.Literal.Kind != ast.LitInt {
			return types.AbstractType{}, errs.New(errs.TypeInvalidInitialization, errs.PhaseTypeCheck, v.Span,
				"array size must be a literal integer", nil)
		}
		size := sizeTmp.Value.Literal.IntVal
		if size < 0 {
			return types.AbstractType{}, errs.New(errs.TypeInvalidInitialization, errs.PhaseTypeCheck, v.Span,
				"array size must not be negative", nil)
		}
		return types.Array(elemT, uint64(size)), nil

	default:
		panic("check: unhandled ast.ArrayInitKind")
	}
}

func (c *Checker) checkIndexing(v *typedast.Value) (types.AbstractType, error) {
	baseT, _ := c.tctx.Tmp(v.Base)
	ground, err := types.FullyResolve(c.u, baseT, v.Span)
	if err != nil {
		return types.AbstractType{}, err
	}
	if ground.Kind != types.AbsArray {
		return types.AbstractType{}, errs.New(errs.TypeNotAnArray, errs.PhaseTypeCheck, v.Span,
			fmt.Sprintf("cannot index into %s", describeType(ground)), nil)
	}
	idxT, _ := c.tctx.Tmp(v.Index)
	if err := types.ResolveTypes(c.u, idxT, types.Int, v.Span); err != nil {
		return types.AbstractType{}, errs.New(errs.TypeInvalidIndex, errs.PhaseTypeCheck, v.Span,
			"array index must be an int", nil)
	}
	return *ground.Element, nil
}

// checkTypeInst resolves an explicit `base::<args>` instantiation (spec
// §4.5). It reads Base's raw flattened Value directly: checkExpr skips
// Base's own temporary, since the ordinary Binding codepath would apply a
// generic function to zero arguments and fail before TypeInst got the
// chance to supply its arguments.
func (c *Checker) checkTypeInst(e *typedast.Expression, v *typedast.Value) (types.AbstractType, error) {
	baseTmp, ok := e.Get(v.Base)
	if !ok {
		panic("check: TypeInst's Base temporary is missing from its own expression")
	}
	if (baseTmp.Value.Kind != typedast.ValBinding && baseTmp.Value.Kind != typedast.ValModAccess) ||
		baseTmp.Value.BindingKind != typedast.BindingFn {
		return types.AbstractType{}, errs.New(errs.TypeApplicationExpectedType, errs.PhaseTypeCheck, v.Span,
			"type instantiation requires a function reference", nil)
	}

	entry, ok := c.u.Function(baseTmp.Value.Fn)
	if !ok {
		return types.AbstractType{}, errs.New(errs.UnknownFn, errs.PhaseTypeCheck, v.Span, "unknown function", nil)
	}

	args := make([]types.AbstractType, len(v.TypeArgs))
	for i, a := range v.TypeArgs {
		resolved, err := ResolveAnnotation(c.scope, a)
		if err != nil {
			return types.AbstractType{}, err
		}
		args[i] = resolved
	}

	return types.FullyResolve(c.u, types.App(entry.TypeID, args), v.Span)
}

func (c *Checker) checkBinOp(op ast.BinOp, lhs, rhs types.AbstractType, span errs.Span) (types.AbstractType, error) {
	lg, err := types.FullyResolve(c.u, lhs, span)
	if err != nil {
		return types.AbstractType{}, err
	}
	rg, err := types.FullyResolve(c.u, rhs, span)
	if err != nil {
		return types.AbstractType{}, err
	}

	mismatch := func() error {
		return errs.New(errs.TypeBinOp, errs.PhaseTypeCheck, span,
			fmt.Sprintf("operator %q not defined for %s and %s", op, describeType(lg), describeType(rg)),
			map[string]any{"op": string(op), "lhs": describeType(lg), "rhs": describeType(rg)})
	}

	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		if lg.Kind == types.AbsInt && rg.Kind == types.AbsInt {
			return types.Int, nil
		}
		if lg.Kind == types.AbsFloat && rg.Kind == types.AbsFloat {
			return types.Float, nil
		}
		return types.AbstractType{}, mismatch()

	case ast.OpAnd, ast.OpOr:
		if lg.Kind == types.AbsBool && rg.Kind == types.AbsBool {
			return types.Bool, nil
		}
		return types.AbstractType{}, mismatch()

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if (lg.Kind == types.AbsInt && rg.Kind == types.AbsInt) || (lg.Kind == types.AbsFloat && rg.Kind == types.AbsFloat) {
			return types.Bool, nil
		}
		return types.AbstractType{}, mismatch()

	case ast.OpEq, ast.OpNe:
		// Equality is symmetric even though ResolveTypes(synth, constraint)
		// is not (width subsumption only checks one direction), so both
		// orderings are tried before giving up.
		if types.ResolveTypes(c.u, lg, rg, span) == nil || types.ResolveTypes(c.u, rg, lg, span) == nil {
			return types.Bool, nil
		}
		return types.AbstractType{}, mismatch()

	default:
		return types.AbstractType{}, mismatch()
	}
}

func (c *Checker) checkUniOp(op ast.UniOp, operand types.AbstractType, span errs.Span) (types.AbstractType, error) {
	g, err := types.FullyResolve(c.u, operand, span)
	if err != nil {
		return types.AbstractType{}, err
	}
	switch op {
	case ast.OpNeg:
		if g.Kind == types.AbsInt || g.Kind == types.AbsFloat {
			return g, nil
		}
	case ast.OpNot:
		if g.Kind == types.AbsBool {
			return types.Bool, nil
		}
	}
	return types.AbstractType{}, errs.New(errs.TypeUniOp, errs.PhaseTypeCheck, span,
		fmt.Sprintf("operator %q not defined for %s", op, describeType(g)),
		map[string]any{"op": string(op), "operand": describeType(g)})
}

func joinDots(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

// describeType renders a ground AbstractType for diagnostics. Unlike
// internal/types' own unexported describe, this never needs to print an App
// or a bare TypeVar: every type reaching here has already passed through
// FullyResolve or ResolveTypes.
func describeType(t types.AbstractType) string {
	switch t.Kind {
	case types.AbsInt:
		return "int"
	case types.AbsFloat:
		return "float"
	case types.AbsString:
		return "string"
	case types.AbsBool:
		return "bool"
	case types.AbsUnit:
		return "unit"
	case types.AbsArray:
		return fmt.Sprintf("[%s; %d]", describeType(*t.Element), t.Size)
	case types.AbsFunction:
		return "function"
	case types.AbsUncheckedFunction:
		return "unchecked-function"
	case types.AbsRecord:
		return fmt.Sprintf("record(%s)", t.RecordTypeID)
	case types.AbsWidthConstraint:
		return "width-constraint"
	default:
		return "?"
	}
}
