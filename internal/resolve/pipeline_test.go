package resolve_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/cfg"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/fixture"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/resolve"
	"github.com/smpl-lang/smplc/internal/typedast"
	"github.com/smpl-lang/smplc/internal/types"
	"github.com/smpl-lang/smplc/internal/universe"
)

func intLit(v int64) *fixture.Expr    { return &fixture.Expr{Kind: "int", Int: &v} }
func boolLit(v bool) *fixture.Expr    { return &fixture.Expr{Kind: "bool", Bool: &v} }
func ident(name string) *fixture.Expr { return &fixture.Expr{Kind: "ident", Name: name} }

func typ(path string) fixture.TypeAnn { return fixture.TypeAnn{Path: path} }

func typPtr(path string) *fixture.TypeAnn {
	ta := typ(path)
	return &ta
}

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

// nodeKinds walks graph from its Start and returns the Kind of every
// visited node in traversal order, the shape S1-S3 assert against.
func nodeKinds(t *testing.T, graph *cfg.CFG) []cfg.NodeKind {
	t.Helper()
	var kinds []cfg.NodeKind
	if err := graph.WalkForward(graph.Start, func(id cfg.NodeID) error {
		kinds = append(kinds, graph.Node(id).Kind)
		return nil
	}); err != nil {
		t.Fatalf("WalkForward returned error: %v", err)
	}
	return kinds
}

func functionEntry(t *testing.T, prog *universe.Program, mod ids.ModuleID, name string) *universe.FunctionEntry {
	t.Helper()
	fnID, ok := prog.Universe.LookupFn(mod, name)
	if !ok {
		t.Fatalf("function %q not registered in module %v", name, mod)
	}
	entry, ok := prog.Universe.Function(fnID)
	if !ok {
		t.Fatalf("function entry for %q missing", name)
	}
	return entry
}

// findLocalDecl walks graph looking for the first LocalVarDeclNode with the
// given name across every basic block.
func findLocalDecl(t *testing.T, graph *cfg.CFG, name string) *typedast.LocalVarDeclNode {
	t.Helper()
	var found *typedast.LocalVarDeclNode
	if err := graph.WalkForward(graph.Start, func(id cfg.NodeID) error {
		n := graph.Node(id)
		if n.Kind != cfg.NodeBasicBlock {
			return nil
		}
		for _, b := range n.Blocks {
			if decl, ok := b.(*typedast.LocalVarDeclNode); ok && decl.Name == name {
				found = decl
			}
		}
		return nil
	}); err != nil {
		t.Fatalf("WalkForward returned error: %v", err)
	}
	return found
}

// TestScenario_S1_LinearFunction mirrors the "Linear function" scenario: a
// body with no control flow produces a single BasicBlock sandwiched between
// the wrapping Start/EnterScope and the implicit unit Return/ExitScope/End.
func TestScenario_S1_LinearFunction(t *testing.T) {
	mod := &fixture.Module{
		Name: "m",
		Decls: []fixture.Decl{
			{
				Kind:   "function",
				Name:   "test",
				Params: []fixture.Param{{Name: "arg", Type: typ("Int")}},
				Body: &fixture.BlockY{Stmts: []fixture.Stmt{
					{Kind: "local_var_decl", Name: "a", Type: typPtr("Int"), Init: intLit(2)},
					{Kind: "local_var_decl", Name: "b", Type: typPtr("Int"), Init: intLit(3)},
				}},
			},
		},
	}

	prog, err := resolve.Run([]*ast.Module{mod.ToAST()}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	entry := functionEntry(t, prog, 0, "test")
	got := nodeKinds(t, entry.CFG)
	want := []cfg.NodeKind{
		cfg.NodeStart, cfg.NodeEnterScope, cfg.NodeBasicBlock,
		cfg.NodeReturn, cfg.NodeExitScope, cfg.NodeEnd,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("node sequence mismatch (-want +got):\n%s", diff)
	}

	first := findLocalDecl(t, entry.CFG, "a")
	if first == nil {
		t.Fatal("decl of a not found")
	}
	second := findLocalDecl(t, entry.CFG, "b")
	if second == nil {
		t.Fatal("decl of b not found")
	}
}

// TestScenario_S2_Branching mirrors the "Branching" scenario: an if with no
// else produces a BranchSplit/Condition/arm/BranchMerge diamond, and the
// function type-checks cleanly.
func TestScenario_S2_Branching(t *testing.T) {
	mod := &fixture.Module{
		Name: "m",
		Decls: []fixture.Decl{
			{
				Kind:   "function",
				Name:   "t",
				Params: []fixture.Param{{Name: "test", Type: typ("Bool")}},
				Body: &fixture.BlockY{Stmts: []fixture.Stmt{
					{
						Kind: "if",
						Branches: []fixture.IfBranchY{
							{
								Cond: *ident("test"),
								Body: fixture.BlockY{Stmts: []fixture.Stmt{
									{Kind: "local_var_decl", Name: "c", Type: typPtr("Int"), Init: intLit(4)},
								}},
							},
						},
					},
				}},
			},
		},
	}

	prog, err := resolve.Run([]*ast.Module{mod.ToAST()}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	entry := functionEntry(t, prog, 0, "t")
	got := nodeKinds(t, entry.CFG)
	want := []cfg.NodeKind{
		cfg.NodeStart, cfg.NodeEnterScope, cfg.NodeBranchSplit, cfg.NodeCondition,
		cfg.NodeEnterScope, cfg.NodeBasicBlock, cfg.NodeExitScope, cfg.NodeBranchMerge,
		cfg.NodeReturn, cfg.NodeExitScope, cfg.NodeEnd,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("node sequence mismatch (-want +got):\n%s", diff)
	}

	var mergeID cfg.NodeID
	var found bool
	for i := range entry.CFG.Nodes {
		if entry.CFG.Node(cfg.NodeID(i)).Kind == cfg.NodeBranchMerge {
			mergeID, found = cfg.NodeID(i), true
		}
	}
	if !found {
		t.Fatal("no BranchMerge node in CFG")
	}
	if preds := entry.CFG.BeforeBranchMerge(mergeID); len(preds) != 2 {
		t.Fatalf("BranchMerge has %d predecessors, want 2 (the arm's exit and the condition's false edge)", len(preds))
	}
}

// TestRegression_IfElseReferencesOuterScopeVariable is the exact failure a
// branch-oblivious forward walk produces: the else arm's init expression
// references a binding declared before the if, in the function's own scope
// frame. If the walk lets the true arm's recursion pop that frame before
// the else arm is visited, this either raises a bogus UnknownBinding or
// silently resolves to the wrong variable.
func TestRegression_IfElseReferencesOuterScopeVariable(t *testing.T) {
	mod := &fixture.Module{
		Name: "m",
		Decls: []fixture.Decl{
			{
				Kind:   "function",
				Name:   "t",
				Params: []fixture.Param{{Name: "c", Type: typ("Bool")}},
				Body: &fixture.BlockY{Stmts: []fixture.Stmt{
					{Kind: "local_var_decl", Name: "a", Type: typPtr("Int"), Init: intLit(1)},
					{
						Kind: "if",
						Branches: []fixture.IfBranchY{
							{Cond: *ident("c"), Body: fixture.BlockY{}},
						},
						Else: &fixture.BlockY{Stmts: []fixture.Stmt{
							{Kind: "local_var_decl", Name: "b", Type: typPtr("Int"), Init: ident("a")},
						}},
					},
				}},
			},
		},
	}

	prog, err := resolve.Run([]*ast.Module{mod.ToAST()}, nil)
	if err != nil {
		if rerr, ok := err.(*resolve.ResolveError); ok {
			for _, r := range rerr.Reports() {
				t.Logf("report: %s", r.Error())
			}
		}
		t.Fatalf("Run returned error on valid input: %v", err)
	}

	entry := functionEntry(t, prog, 0, "t")
	elseDecl := findLocalDecl(t, entry.CFG, "b")
	if elseDecl == nil {
		t.Fatal("decl of b not found in CFG")
	}

	tmp, ok := elseDecl.Init.Get(elseDecl.Init.Root)
	if !ok || tmp.Value.BindingKind != typedast.BindingVar {
		t.Fatalf("b's initializer = %+v, want a resolved var binding", elseDecl.Init)
	}

	gotT, ok := entry.TypingCtx.Var(tmp.Value.Var)
	if !ok || gotT.Kind != types.AbsInt {
		t.Fatalf("resolved variable's type = %+v, ok=%v, want int", gotT, ok)
	}
}

// TestScenario_S3_MissingReturn mirrors the "Missing return" scenario: an
// int-returning function whose only return sits behind an if with no else
// fails return-trace verification.
func TestScenario_S3_MissingReturn(t *testing.T) {
	retInt := typ("Int")
	mod := &fixture.Module{
		Name: "m",
		Decls: []fixture.Decl{
			{
				Kind:       "function",
				Name:       "t",
				ReturnType: &retInt,
				Body: &fixture.BlockY{Stmts: []fixture.Stmt{
					{
						Kind: "if",
						Branches: []fixture.IfBranchY{
							{
								Cond: *boolLit(true),
								Body: fixture.BlockY{Stmts: []fixture.Stmt{
									{Kind: "return", ReturnValue: intLit(0)},
								}},
							},
						},
					},
				}},
			},
		},
	}

	_, err := resolve.Run([]*ast.Module{mod.ToAST()}, nil)
	if err == nil {
		t.Fatal("Run succeeded, want ControlFlow.MissingReturn")
	}
	rerr, ok := err.(*resolve.ResolveError)
	if !ok {
		t.Fatalf("err = %T, want *resolve.ResolveError", err)
	}
	reports := rerr.Reports()
	if len(reports) != 1 || reports[0].Code != errs.ControlFlowMissingReturn {
		t.Fatalf("reports = %+v, want exactly one ControlFlow.MissingReturn", reports)
	}
}

// TestScenario_S4_HeterogeneousArray mirrors the "Heterogeneous array"
// scenario: an int-sized array literal mixing a bool element fails with
// Type.HeterogenousArray naming the expected/found types and the offending
// index.
func TestScenario_S4_HeterogeneousArray(t *testing.T) {
	mod := &fixture.Module{
		Name: "m",
		Decls: []fixture.Decl{
			{
				Kind: "function",
				Name: "t",
				Body: &fixture.BlockY{Stmts: []fixture.Stmt{
					{
						Kind: "local_var_decl",
						Name: "a",
						Type: &fixture.TypeAnn{Element: typPtr("Int"), Size: 2},
						Init: &fixture.Expr{Kind: "array_init_list", Elements: []fixture.Expr{
							{Kind: "int", Int: int64Ptr(100)},
							{Kind: "bool", Bool: boolPtr(false)},
						}},
					},
				}},
			},
		},
	}

	_, err := resolve.Run([]*ast.Module{mod.ToAST()}, nil)
	if err == nil {
		t.Fatal("Run succeeded, want Type.HeterogenousArray")
	}
	rerr, ok := err.(*resolve.ResolveError)
	if !ok {
		t.Fatalf("err = %T, want *resolve.ResolveError", err)
	}
	reports := rerr.Reports()
	if len(reports) != 1 || reports[0].Code != errs.TypeHeterogenousArray {
		t.Fatalf("reports = %+v, want exactly one Type.HeterogenousArray", reports)
	}
	data := reports[0].Data
	if data["expected"] != "int" || data["found"] != "bool" || data["index"] != 1 {
		t.Fatalf("report data = %+v, want expected=int found=bool index=1", data)
	}
}

// TestScenario_S5_GenericResolution mirrors the "Generic resolution"
// scenario: instantiating Pair<int,bool> resolves the struct literal to an
// applied Record whose field map carries the substituted types.
func TestScenario_S5_GenericResolution(t *testing.T) {
	mod := &fixture.Module{
		Name: "m",
		Decls: []fixture.Decl{
			{
				Kind:       "struct",
				Name:       "Pair",
				TypeParams: []fixture.TypeParam{{Name: "A"}, {Name: "B"}},
				Fields: []fixture.Field{
					{Name: "x", Type: typ("A")},
					{Name: "y", Type: typ("B")},
				},
			},
			{
				Kind: "function",
				Name: "t",
				Body: &fixture.BlockY{Stmts: []fixture.Stmt{
					{
						Kind: "local_var_decl",
						Name: "p",
						Type: &fixture.TypeAnn{Path: "Pair", TypeArgs: []fixture.TypeAnn{typ("Int"), typ("Bool")}},
						Init: &fixture.Expr{
							Kind:     "struct_init",
							Type:     "Pair",
							TypeArgs: []fixture.TypeAnn{typ("Int"), typ("Bool")},
							Fields: map[string]fixture.Expr{
								"x": *intLit(1),
								"y": *boolLit(true),
							},
						},
					},
				}},
			},
		},
	}

	prog, err := resolve.Run([]*ast.Module{mod.ToAST()}, nil)
	if err != nil {
		if rerr, ok := err.(*resolve.ResolveError); ok {
			for _, r := range rerr.Reports() {
				t.Logf("report: %s", r.Error())
			}
		}
		t.Fatalf("Run returned error: %v", err)
	}

	pairTypeID, ok := prog.Universe.LookupType(0, "Pair")
	if !ok {
		t.Fatal("Pair type not registered")
	}
	pairCons, ok := prog.Universe.Lookup(pairTypeID)
	if !ok {
		t.Fatal("Pair constructor not registered")
	}

	entry := functionEntry(t, prog, 0, "t")
	pDecl := findLocalDecl(t, entry.CFG, "p")
	if pDecl == nil {
		t.Fatal("decl of p not found")
	}

	ground, ok := entry.TypingCtx.Tmp(pDecl.Init.Root)
	if !ok || ground.Kind != types.AbsRecord {
		t.Fatalf("p's initializer type = %+v, ok=%v, want AbsRecord", ground, ok)
	}

	xField, ok := pairCons.FieldMap["x"]
	if !ok {
		t.Fatal("Pair has no field x")
	}
	yField, ok := pairCons.FieldMap["y"]
	if !ok {
		t.Fatal("Pair has no field y")
	}

	if diff := cmp.Diff(types.Int, ground.Fields[xField]); diff != "" {
		t.Fatalf("field x type mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(types.Bool, ground.Fields[yField]); diff != "" {
		t.Fatalf("field y type mismatch (-want +got):\n%s", diff)
	}
}

// TestScenario_S6_AnonymousFunctionCapture mirrors the "Anonymous function
// capture" scenario: binding a lambda to a local and calling it elaborates
// a fresh function and resolves the outer function's return value to the
// lambda's declared return type.
func TestScenario_S6_AnonymousFunctionCapture(t *testing.T) {
	retInt := typ("Int")
	lambdaRet := typ("Int")
	mod := &fixture.Module{
		Name: "m",
		Decls: []fixture.Decl{
			{
				Kind:       "function",
				Name:       "outer",
				ReturnType: &retInt,
				Body: &fixture.BlockY{Stmts: []fixture.Stmt{
					{
						Kind: "local_var_decl",
						Name: "f",
						Init: &fixture.Expr{
							Kind:       "anonymous_fn",
							Params:     []fixture.Param{{Name: "x", Type: typ("Int")}},
							ReturnType: &lambdaRet,
							Body: &fixture.BlockY{Stmts: []fixture.Stmt{
								{Kind: "return", ReturnValue: &fixture.Expr{
									Kind: "bin", Op: string(ast.OpAdd), Lhs: ident("x"), Rhs: intLit(1),
								}},
							}},
						},
					},
					{
						Kind: "return",
						ReturnValue: &fixture.Expr{
							Kind:   "call",
							Callee: *ident("f"),
							Args:   []fixture.Expr{*intLit(4)},
						},
					},
				}},
			},
		},
	}

	prog, err := resolve.Run([]*ast.Module{mod.ToAST()}, nil)
	if err != nil {
		if rerr, ok := err.(*resolve.ResolveError); ok {
			for _, r := range rerr.Reports() {
				t.Logf("report: %s", r.Error())
			}
		}
		t.Fatalf("Run returned error: %v", err)
	}

	entry := functionEntry(t, prog, 0, "outer")
	var retValue *typedast.Expression
	if err := entry.CFG.WalkForward(entry.CFG.Start, func(id cfg.NodeID) error {
		n := entry.CFG.Node(id)
		if n.Kind == cfg.NodeReturn && n.ReturnValue != nil {
			retValue = n.ReturnValue
		}
		return nil
	}); err != nil {
		t.Fatalf("WalkForward returned error: %v", err)
	}
	if retValue == nil {
		t.Fatal("outer's explicit return not found")
	}

	got, ok := entry.TypingCtx.Tmp(retValue.Root)
	if !ok || got.Kind != types.AbsInt {
		t.Fatalf("outer's return expression type = %+v, ok=%v, want int", got, ok)
	}
}

// TestProperty_U8_StructurallyIdenticalAcrossRuns checks that analyzing the
// same module set twice produces CFGs with identical node-kind shapes
// (modulo the ID numbering each fresh Universe mints independently).
func TestProperty_U8_StructurallyIdenticalAcrossRuns(t *testing.T) {
	build := func() *fixture.Module {
		return &fixture.Module{
			Name: "m",
			Decls: []fixture.Decl{
				{
					Kind:   "function",
					Name:   "t",
					Params: []fixture.Param{{Name: "c", Type: typ("Bool")}},
					Body: &fixture.BlockY{Stmts: []fixture.Stmt{
						{
							Kind: "if",
							Branches: []fixture.IfBranchY{
								{Cond: *ident("c"), Body: fixture.BlockY{Stmts: []fixture.Stmt{
									{Kind: "local_var_decl", Name: "x", Type: typPtr("Int"), Init: intLit(1)},
								}}},
							},
							Else: &fixture.BlockY{Stmts: []fixture.Stmt{
								{Kind: "local_var_decl", Name: "y", Type: typPtr("Int"), Init: intLit(2)},
							}},
						},
					}},
				},
			},
		}
	}

	prog1, err := resolve.Run([]*ast.Module{build().ToAST()}, nil)
	if err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	prog2, err := resolve.Run([]*ast.Module{build().ToAST()}, nil)
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}

	e1 := functionEntry(t, prog1, 0, "t")
	e2 := functionEntry(t, prog2, 0, "t")

	k1 := nodeKinds(t, e1.CFG)
	k2 := nodeKinds(t, e2.CFG)
	if diff := cmp.Diff(k1, k2); diff != "" {
		t.Fatalf("two analyses of the same input produced different CFG shapes (-run1 +run2):\n%s", diff)
	}
}
