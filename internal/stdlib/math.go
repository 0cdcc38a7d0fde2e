package stdlib

import "github.com/smpl-lang/smplc/internal/ast"

// Math declares the "math" module.
//
// Grounded on the teacher's `internal/modules/virtual_packages_core.go`'s
// `initMathPackage` ("lib/math" virtual package): the Int/Float-split
// naming convention is kept, spelled here `abs`/`abs_int`, `min`/`min_int`,
// `max`/`max_int`, since this core's generics have no arithmetic trait to let one
// `abs` cover both numeric primitives (spec's Non-goals exclude
// type-class-style overload resolution) — the teacher's own symbol table
// hits the identical wall and resolves it the same way, by declaring both
// monomorphic names side by side.
func Math() *ast.Module {
	return module("math",
		builtin("abs", []ast.TypeAnnotation{floatT}, floatT),
		builtin("abs_int", []ast.TypeAnnotation{intT}, intT),
		builtin("sign", []ast.TypeAnnotation{floatT}, intT),
		builtin("min", []ast.TypeAnnotation{floatT, floatT}, floatT),
		builtin("max", []ast.TypeAnnotation{floatT, floatT}, floatT),
		builtin("min_int", []ast.TypeAnnotation{intT, intT}, intT),
		builtin("max_int", []ast.TypeAnnotation{intT, intT}, intT),
		builtin("floor", []ast.TypeAnnotation{floatT}, intT),
		builtin("ceil", []ast.TypeAnnotation{floatT}, intT),
		builtin("round", []ast.TypeAnnotation{floatT}, intT),
		builtin("sqrt", []ast.TypeAnnotation{floatT}, floatT),
		builtin("pow", []ast.TypeAnnotation{floatT, floatT}, floatT),
		builtin("log", []ast.TypeAnnotation{floatT}, floatT),
	)
}
