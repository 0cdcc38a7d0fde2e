// Package stdlib holds the built-in module *declarations* the driver
// prepends to a compilation's module set (spec §6): `math`, `string`, and
// `conversion`. Each is plain `ast.Module` data, exactly the shape an
// external parser would have produced from source text — nothing here runs
// a lexer. Builtin function bodies are left as opaque hooks for a back-end
// this core never implements (spec §1's Non-goals: no interpreter).
//
// Grounded on the teacher's `internal/modules/virtual_packages_core.go`: a
// builtin module is Go-constructed data describing names and types, not
// parsed source text — adapted here from the teacher's own
// typesystem.Type literals to this project's ast.TypeAnnotation literals.
package stdlib

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
)

// Modules returns the builtin module set, in the fixed order the driver
// prepends them ahead of user source modules.
func Modules() []*ast.Module {
	return []*ast.Module{Math(), String(), Conversion()}
}

func span() errs.Span { return errs.Dummy() }

func namePath(name string) ast.Path {
	return ast.Path{Segments: []ast.PathSegment{{Name: name}}, SpanV: span()}
}

func named(name string) ast.TypeAnnotation {
	return ast.PathAnnotation(namePath(name))
}

var (
	intT    = named("Int")
	floatT  = named("Float")
	stringT = named("String")
	boolT   = named("Bool")
)

func builtin(name string, params []ast.TypeAnnotation, ret ast.TypeAnnotation) *ast.BuiltinFunctionDecl {
	r := ret
	return &ast.BuiltinFunctionDecl{Name: name, ParamTypes: params, ReturnType: &r, SpanV: span()}
}

// variadicBuiltin declares a builtin whose argument count and types are
// unchecked at the call site (spec §3: UncheckedFunction). ParamTypes still
// names the declared shape for documentation, even though the checker never
// enforces it against a call.
func variadicBuiltin(name string, params []ast.TypeAnnotation, ret ast.TypeAnnotation) *ast.BuiltinFunctionDecl {
	r := ret
	return &ast.BuiltinFunctionDecl{Name: name, ParamTypes: params, ReturnType: &r, Variadic: true, SpanV: span()}
}

func module(name string, decls ...ast.Decl) *ast.Module {
	return &ast.Module{Name: name, Decls: decls, SpanV: span()}
}
