package fixture

import (
	"testing"

	"github.com/smpl-lang/smplc/internal/ast"
)

func TestModuleToAST_StructAndFunction(t *testing.T) {
	src := Module{
		Name: "geo",
		Decls: []Decl{
			{
				Kind: "struct",
				Name: "Point",
				Fields: []Field{
					{Name: "x", Type: TypeAnn{Path: "Float"}},
					{Name: "y", Type: TypeAnn{Path: "Float"}},
				},
			},
			{
				Kind:       "function",
				Name:       "sum",
				Params:     []Param{{Name: "a", Type: TypeAnn{Path: "Int"}}, {Name: "b", Type: TypeAnn{Path: "Int"}}},
				ReturnType: &TypeAnn{Path: "Int"},
				Body: &BlockY{Stmts: []Stmt{
					{
						Kind: "return",
						ReturnValue: &Expr{
							Kind: "bin",
							Op:   "+",
							Lhs:  &Expr{Kind: "ident", Name: "a"},
							Rhs:  &Expr{Kind: "ident", Name: "b"},
						},
					},
				}},
			},
		},
	}

	mod := src.ToAST()
	if mod.Name != "geo" {
		t.Fatalf("Name = %q, want geo", mod.Name)
	}
	if len(mod.Decls) != 2 {
		t.Fatalf("len(Decls) = %d, want 2", len(mod.Decls))
	}

	st, ok := mod.Decls[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("Decls[0] = %T, want *ast.StructDecl", mod.Decls[0])
	}
	if st.Name != "Point" || len(st.Fields) != 2 {
		t.Fatalf("struct decl = %+v", st)
	}
	if st.Fields[0].Type.Kind != ast.TypeAnnPath {
		t.Fatalf("field type kind = %v, want TypeAnnPath", st.Fields[0].Type.Kind)
	}

	fn, ok := mod.Decls[1].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("Decls[1] = %T, want *ast.FunctionDecl", mod.Decls[1])
	}
	if len(fn.Params) != 2 || fn.ReturnType == nil {
		t.Fatalf("function decl = %+v", fn)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("len(Body.Stmts) = %d, want 1", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("Body.Stmts[0] = %T, want *ast.ReturnStmt", fn.Body.Stmts[0])
	}
	bin, ok := ret.Value.(*ast.BinExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("return value = %+v, want a + b", ret.Value)
	}
}

func TestTypeAnnToAST_ArrayAndFn(t *testing.T) {
	arr := TypeAnn{Element: &TypeAnn{Path: "Int"}, Size: 3}
	got := arr.ToAST()
	if got.Kind != ast.TypeAnnArray || got.ArraySize != 3 {
		t.Fatalf("array annotation = %+v", got)
	}

	fn := TypeAnn{Args: []TypeAnn{{Path: "Int"}}, ArgsSet: true, Return: &TypeAnn{Path: "Bool"}}
	gotFn := fn.ToAST()
	if gotFn.Kind != ast.TypeAnnFn || !gotFn.FnArgsSet || len(gotFn.FnArgs) != 1 || gotFn.FnReturn == nil {
		t.Fatalf("fn annotation = %+v", gotFn)
	}
}

func TestTypeAnnToAST_Width(t *testing.T) {
	w := TypeAnn{Width: map[string]TypeAnn{"name": {Path: "String"}}}
	got := w.ToAST()
	if got.Kind != ast.TypeAnnWidth {
		t.Fatalf("kind = %v, want TypeAnnWidth", got.Kind)
	}
	if _, ok := got.WidthField["name"]; !ok {
		t.Fatalf("width fields = %+v, missing name", got.WidthField)
	}
}

func TestDeclToAST_UnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown decl kind")
		}
	}()
	(&Decl{Kind: "bogus"}).ToAST()
}

func TestStructInitAndIndexing(t *testing.T) {
	e := Expr{
		Kind: "indexing",
		Base: &Expr{
			Kind: "struct_init",
			Type: "Pair",
			Fields: map[string]Expr{
				"items": {Kind: "array_init_list", Elements: []Expr{
					{Kind: "int", Int: ptrInt(1)},
					{Kind: "int", Int: ptrInt(2)},
				}},
			},
		},
		Index: &Expr{Kind: "int", Int: ptrInt(0)},
	}
	got := e.ToAST()
	idx, ok := got.(*ast.IndexingExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.IndexingExpr", got)
	}
	si, ok := idx.Base.(*ast.StructInitExpr)
	if !ok {
		t.Fatalf("base = %T, want *ast.StructInitExpr", idx.Base)
	}
	name, single := si.TypePath.Single()
	if !single || name != "Pair" {
		t.Fatalf("type path = %+v", si.TypePath)
	}
	arr, ok := si.Fields["items"].(*ast.ArrayInitExpr)
	if !ok || arr.Kind != ast.ArrayInitList || len(arr.Elements) != 2 {
		t.Fatalf("items field = %+v", si.Fields["items"])
	}
}

func ptrInt(v int64) *int64 { return &v }
