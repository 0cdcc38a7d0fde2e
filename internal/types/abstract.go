package types

import "github.com/smpl-lang/smplc/internal/ids"

// AbstractKind discriminates AbstractType's variant.
type AbstractKind int

const (
	AbsInt AbstractKind = iota
	AbsFloat
	AbsString
	AbsBool
	AbsUnit
	AbsArray
	AbsRecord
	AbsFunction
	AbsUncheckedFunction
	AbsApp
	AbsTypeVar
	AbsConstrainedTypeVar
	AbsWidthConstraint
)

// AbstractType is a type expression in the checker's internal language
// (spec §3). Exactly the fields relevant to Kind are populated.
type AbstractType struct {
	Kind AbstractKind

	// AbsArray
	Element *AbstractType
	Size    uint64

	// AbsRecord (already applied: field map keyed by FieldID, resolved types)
	RecordTypeID ids.TypeID
	Fields       map[ids.FieldID]AbstractType

	// AbsFunction / AbsUncheckedFunction
	Parameters []AbstractType // AbsFunction only
	ReturnType *AbstractType

	// AbsApp
	TypeCons ids.TypeID
	Args     []AbstractType

	// AbsTypeVar / AbsConstrainedTypeVar
	Var   ids.TypeVarID
	Bound *AbstractType // AbsConstrainedTypeVar only

	// AbsWidthConstraint
	WidthFields map[string]AbstractType
}

var (
	Int    = AbstractType{Kind: AbsInt}
	Float  = AbstractType{Kind: AbsFloat}
	String = AbstractType{Kind: AbsString}
	Bool   = AbstractType{Kind: AbsBool}
	Unit   = AbstractType{Kind: AbsUnit}
)

// Array builds an Array abstract type.
func Array(elem AbstractType, size uint64) AbstractType {
	return AbstractType{Kind: AbsArray, Element: &elem, Size: size}
}

// App builds an unapplied App{type_cons, args} form.
func App(tc ids.TypeID, args []AbstractType) AbstractType {
	return AbstractType{Kind: AbsApp, TypeCons: tc, Args: args}
}

// TypeVar builds a reference to a type hole in the current typing context.
func TypeVar(v ids.TypeVarID) AbstractType {
	return AbstractType{Kind: AbsTypeVar, Var: v}
}

// ConstrainedTypeVar builds a type-var reference carrying a bound.
func ConstrainedTypeVar(v ids.TypeVarID, bound AbstractType) AbstractType {
	return AbstractType{Kind: AbsConstrainedTypeVar, Var: v, Bound: &bound}
}

// WidthConstraint builds a structural lower-bound constraint.
func WidthConstraint(fields map[string]AbstractType) AbstractType {
	return AbstractType{Kind: AbsWidthConstraint, WidthFields: fields}
}

// UncheckedFunction builds the type of a variadic builtin: argument shape is
// not enforced at the call site, only the declared return type matters.
func UncheckedFunction(ret AbstractType) AbstractType {
	return AbstractType{Kind: AbsUncheckedFunction, ReturnType: &ret}
}

// Function builds a Function abstract type.
func Function(params []AbstractType, ret AbstractType) AbstractType {
	return AbstractType{Kind: AbsFunction, Parameters: params, ReturnType: &ret}
}

// Record builds an already-applied Record abstract type.
func Record(typeID ids.TypeID, fields map[ids.FieldID]AbstractType) AbstractType {
	return AbstractType{Kind: AbsRecord, RecordTypeID: typeID, Fields: fields}
}

// IsGround reports whether t contains no App and no free (unbound) TypeVar —
// i.e. it is fully resolved. ConstrainedTypeVar still counts as non-ground,
// since it names a context-local hole.
func (t AbstractType) IsGround() bool {
	switch t.Kind {
	case AbsApp, AbsTypeVar, AbsConstrainedTypeVar:
		return false
	case AbsArray:
		return t.Element.IsGround()
	case AbsFunction:
		for _, p := range t.Parameters {
			if !p.IsGround() {
				return false
			}
		}
		return t.ReturnType.IsGround()
	case AbsUncheckedFunction:
		return t.ReturnType.IsGround()
	case AbsRecord:
		for _, f := range t.Fields {
			if !f.IsGround() {
				return false
			}
		}
		return true
	case AbsWidthConstraint:
		for _, f := range t.WidthFields {
			if !f.IsGround() {
				return false
			}
		}
		return true
	default:
		return true
	}
}
