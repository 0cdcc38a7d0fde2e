package resolve

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/scope"
)

// buildModule runs every pass-2 step for one module: import stitching
// (explicit `use`s, then the implicit stdlib prelude), struct/opaque
// constructor construction, then builtin/function constructor and CFG
// construction (spec §4.3 steps 3-6, kept as two loops over the module's
// declarations in source order to mirror the original's struct-then-function
// split, SPEC_FULL.md §3 item 6).
func buildModule(st *state, mc *moduleCtx) error {
	root := scope.Root()
	for name, id := range st.primitives {
		root.DeclareTypeCons(name, id)
	}
	for name, id := range mc.ownTypeIDs {
		root.DeclareTypeCons(name, id)
	}
	for name, id := range mc.ownFnIDs {
		root.DeclareFn(name, id)
	}

	if err := stitchImports(st, mc, root); err != nil {
		return err
	}
	mc.scope = root

	for _, d := range mc.ast.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			if err := buildStruct(st, mc, decl); err != nil {
				return err
			}
		case *ast.OpaqueDecl:
			if err := buildOpaque(st, mc, decl); err != nil {
				return err
			}
		}
	}

	for _, d := range mc.ast.Decls {
		switch decl := d.(type) {
		case *ast.BuiltinFunctionDecl:
			if err := buildBuiltin(st, mc, decl); err != nil {
				return err
			}
		case *ast.FunctionDecl:
			if err := buildFunction(st, mc, decl); err != nil {
				return err
			}
		}
	}

	return nil
}
