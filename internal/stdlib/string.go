package stdlib

import "github.com/smpl-lang/smplc/internal/ast"

// String declares the "string" module.
//
// Grounded on original_source/smpl/src/code_gen/interpreter/builtins/str.rs:
// `len`, `append`, `to_lower`, `to_upper` kept verbatim (renamed module
// `str` to `string`). `to_string` was originally
// variadic over any value type (`min_args!(1, args)`, concatenating each
// argument's own string rendering) — this core has no trait/overload
// mechanism for "any value has a string rendering" (spec's Non-goals
// exclude sub-typing beyond width subsumption), so `to_string` is narrowed
// to a single unchecked (variadic) String parameter: still callable with
// one argument the way every original test invokes it with multiple,
// modeled instead as repeated concatenation left to the back-end.
func String() *ast.Module {
	return module("string",
		builtin("len", []ast.TypeAnnotation{stringT}, intT),
		builtin("append", []ast.TypeAnnotation{stringT, stringT}, stringT),
		builtin("to_lower", []ast.TypeAnnotation{stringT}, stringT),
		builtin("to_upper", []ast.TypeAnnotation{stringT}, stringT),
		variadicBuiltin("to_string", []ast.TypeAnnotation{stringT}, stringT),
	)
}
