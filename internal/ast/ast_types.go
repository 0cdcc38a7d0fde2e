package ast

import "github.com/smpl-lang/smplc/internal/errs"

// PathSegment is one dotted component of a Path, with optional per-segment
// type arguments (spec §6: "paths are sequences of identifiers with
// optional per-segment type arguments").
type PathSegment struct {
	Name     string
	TypeArgs []TypeAnnotation
}

// Path is a dotted sequence of identifiers, e.g. `math.max` or a bare `T`.
type Path struct {
	Segments []PathSegment
	SpanV    errs.Span
}

func (p Path) Span() errs.Span { return p.SpanV }

// Single reports whether the path is a single, unqualified segment with no
// type arguments — the shape a bound type-variable reference takes
// (spec §4.5).
func (p Path) Single() (string, bool) {
	if len(p.Segments) == 1 && len(p.Segments[0].TypeArgs) == 0 {
		return p.Segments[0].Name, true
	}
	return "", false
}

// TypeAnnotation is a type as written in source, prior to resolution into
// an AbstractType (internal/types). Exactly one of the fields is non-zero.
type TypeAnnotation struct {
	Kind TypeAnnotationKind

	PathValue  Path             // Kind == TypeAnnPath
	ElementOf  *TypeAnnotation  // Kind == TypeAnnArray
	ArraySize  uint64           // Kind == TypeAnnArray
	FnArgs     []TypeAnnotation // Kind == TypeAnnFn (nil means unspecified arg list)
	FnArgsSet  bool             // distinguishes "no args" from "unspecified args"
	FnReturn   *TypeAnnotation  // Kind == TypeAnnFn, nil means Unit
	WidthField map[string]TypeAnnotation // Kind == TypeAnnWidth

	SpanV errs.Span
}

func (t TypeAnnotation) Span() errs.Span { return t.SpanV }

// TypeAnnotationKind discriminates TypeAnnotation's variant.
type TypeAnnotationKind int

const (
	TypeAnnPath TypeAnnotationKind = iota
	TypeAnnArray
	TypeAnnFn
	TypeAnnWidth
)

// PathAnnotation builds a TypeAnnotation referencing a named type (or bound
// type variable), with optional type arguments on the final segment.
func PathAnnotation(p Path) TypeAnnotation {
	return TypeAnnotation{Kind: TypeAnnPath, PathValue: p, SpanV: p.SpanV}
}

// ArrayAnnotation builds a `[T; N]` annotation.
func ArrayAnnotation(elem TypeAnnotation, size uint64, span errs.Span) TypeAnnotation {
	return TypeAnnotation{Kind: TypeAnnArray, ElementOf: &elem, ArraySize: size, SpanV: span}
}

// FnAnnotation builds a `(A, B) -> C` annotation. args == nil means the
// argument list itself was unspecified in source (only the arity-free
// shape is known); pass an empty non-nil slice for a zero-argument function.
func FnAnnotation(args []TypeAnnotation, ret *TypeAnnotation, span errs.Span) TypeAnnotation {
	return TypeAnnotation{Kind: TypeAnnFn, FnArgs: args, FnArgsSet: args != nil, FnReturn: ret, SpanV: span}
}

// WidthAnnotation builds a `{ field: T, ... }` structural width constraint.
func WidthAnnotation(fields map[string]TypeAnnotation, span errs.Span) TypeAnnotation {
	return TypeAnnotation{Kind: TypeAnnWidth, WidthField: fields, SpanV: span}
}
