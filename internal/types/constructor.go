// Package types implements the type-constructor / abstract-type model
// (spec §4.5): templates that produce applied types under capture-free
// substitution, plus structural resolution (equality and width-constraint
// subsumption) between a synthesized type and a constraint.
package types

import "github.com/smpl-lang/smplc/internal/ids"

// TypeParams is the ordered parameter list of a type constructor. Each
// entry's TypeVarID is the placeholder bound inside the constructor's body;
// substitution replaces occurrences of that placeholder with the supplied
// argument.
type TypeParams []TypeParam

// TypeParam is one entry of a TypeParams list.
type TypeParam struct {
	ID         ids.TypeParamID
	Constraint *AbstractType // nil if unconstrained
	Var        ids.TypeVarID
}

// ConstructorKind discriminates TypeConstructor's variant.
type ConstructorKind int

const (
	ConsInt ConstructorKind = iota
	ConsFloat
	ConsString
	ConsBool
	ConsUnit
	ConsArray
	ConsRecord
	ConsFunction
	ConsUncheckedFunction
)

// TypeConstructor is a registered template producing an AbstractType once
// applied to type arguments (spec §3).
type TypeConstructor struct {
	Kind ConstructorKind

	// ConsArray
	Element AbstractType
	Size    uint64

	// ConsRecord
	RecordID  ids.TypeID
	Params    TypeParams
	Fields    map[ids.FieldID]AbstractType
	FieldMap  map[string]ids.FieldID
	FieldOrd  []ids.FieldID // declaration order, for deterministic field iteration

	// ConsFunction / ConsUncheckedFunction
	FnParams     TypeParams // ConsFunction / ConsUncheckedFunction's own type params
	Parameters   []AbstractType
	ReturnType   AbstractType
}

// Arity is the number of type parameters this constructor expects.
func (tc *TypeConstructor) Arity() int {
	switch tc.Kind {
	case ConsRecord:
		return len(tc.Params)
	case ConsFunction, ConsUncheckedFunction:
		return len(tc.FnParams)
	default:
		return 0
	}
}

// TypeParamList returns the constructor's own TypeParams, regardless of
// variant, or nil if it takes none.
func (tc *TypeConstructor) TypeParamList() TypeParams {
	switch tc.Kind {
	case ConsRecord:
		return tc.Params
	case ConsFunction, ConsUncheckedFunction:
		return tc.FnParams
	default:
		return nil
	}
}
