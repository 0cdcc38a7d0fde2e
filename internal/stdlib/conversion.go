package stdlib

import "github.com/smpl-lang/smplc/internal/ast"

// Conversion declares the "conversion" module: numeric/string coercions
// between Int, Float, and String (spec §6's example built-in domain).
//
// Grounded on original_source/smpl/src/code_gen/interpreter/builtins/
// convert.rs's CONVERT_DECLARATION: `int_to_float`, `float_to_int`,
// `is_float`, `is_int`, `string_to_float`, `string_to_int` — renamed from
// the original's `convert` to `conversion`, function names and signatures
// kept verbatim.
func Conversion() *ast.Module {
	return module("conversion",
		builtin("int_to_float", []ast.TypeAnnotation{intT}, floatT),
		builtin("float_to_int", []ast.TypeAnnotation{floatT}, intT),
		builtin("is_float", []ast.TypeAnnotation{stringT}, boolT),
		builtin("is_int", []ast.TypeAnnotation{stringT}, boolT),
		builtin("string_to_float", []ast.TypeAnnotation{stringT}, floatT),
		builtin("string_to_int", []ast.TypeAnnotation{stringT}, intT),
	)
}
