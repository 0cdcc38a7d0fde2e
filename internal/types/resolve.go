package types

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/errs"
)

// ResolveTypes implements resolve_types(synth, constraint) (spec §4.5):
// synth and constraint, after substitution and walking through
// ConstrainedTypeVar bounds, must satisfy structural equality on
// primitive/array/function/record, or width-constraint subsumption when
// constraint is a WidthConstraint. Equality on numeric/boolean types is
// strict; there is no implicit promotion.
func ResolveTypes(reg Registry, synth, constraint AbstractType, span errs.Span) error {
	s, err := fullyResolve(reg, synth, span)
	if err != nil {
		return err
	}
	c, err := fullyResolve(reg, constraint, span)
	if err != nil {
		return err
	}

	if c.Kind == AbsWidthConstraint {
		return checkWidthSubsumption(reg, s, c, span)
	}

	if ok, err := structurallyEqual(reg, s, c, span); err != nil {
		return err
	} else if !ok {
		return errs.New(errs.TypeUnexpectedType, errs.PhaseTypeCheck, span,
			fmt.Sprintf("expected %s, found %s", describe(c), describe(s)),
			map[string]any{"expected": describe(c), "found": describe(s)})
	}
	return nil
}

// FullyResolve exposes fullyResolve to callers (internal/check) that need to
// inspect a concrete Record/Function/Array's shape directly, rather than
// merely compare two types for equality or width subsumption.
func FullyResolve(reg Registry, t AbstractType, span errs.Span) (AbstractType, error) {
	return fullyResolve(reg, t, span)
}

// fullyResolve repeatedly substitutes App forms and unwraps
// ConstrainedTypeVar to its bound, until neither applies.
func fullyResolve(reg Registry, t AbstractType, span errs.Span) (AbstractType, error) {
	for {
		switch t.Kind {
		case AbsApp:
			next, err := Substitute(reg, t, span)
			if err != nil {
				return AbstractType{}, err
			}
			if next.Kind == AbsApp && next.TypeCons == t.TypeCons && len(next.Args) == len(t.Args) {
				// No further progress possible (e.g. a free nested App);
				// stop to avoid spinning.
				return next, nil
			}
			t = next
		case AbsConstrainedTypeVar:
			t = *t.Bound
		default:
			return t, nil
		}
	}
}

func structurallyEqual(reg Registry, a, b AbstractType, span errs.Span) (bool, error) {
	a, err := fullyResolve(reg, a, span)
	if err != nil {
		return false, err
	}
	b, err = fullyResolve(reg, b, span)
	if err != nil {
		return false, err
	}

	if a.Kind == AbsWidthConstraint {
		return equalViaWidth(reg, b, a, span)
	}
	if b.Kind == AbsWidthConstraint {
		return equalViaWidth(reg, a, b, span)
	}

	if a.Kind == AbsTypeVar && b.Kind == AbsTypeVar {
		return a.Var == b.Var, nil
	}
	if a.Kind != b.Kind {
		return false, nil
	}

	switch a.Kind {
	case AbsInt, AbsFloat, AbsString, AbsBool, AbsUnit:
		return true, nil
	case AbsArray:
		if a.Size != b.Size {
			return false, nil
		}
		return structurallyEqual(reg, *a.Element, *b.Element, span)
	case AbsFunction:
		if len(a.Parameters) != len(b.Parameters) {
			return false, nil
		}
		for i := range a.Parameters {
			ok, err := structurallyEqual(reg, a.Parameters[i], b.Parameters[i], span)
			if err != nil || !ok {
				return ok, err
			}
		}
		return structurallyEqual(reg, *a.ReturnType, *b.ReturnType, span)
	case AbsUncheckedFunction:
		return structurallyEqual(reg, *a.ReturnType, *b.ReturnType, span)
	case AbsRecord:
		if a.RecordTypeID != b.RecordTypeID {
			return false, nil
		}
		return true, nil
	default:
		return false, nil
	}
}

// checkWidthSubsumption requires every field named in constraint to exist in
// synth with a resolvable type (spec §4.5, §9 "width constraints vs
// records"). Records are projected into a field-name-keyed view on the fly;
// a WidthConstraint may subsume another WidthConstraint the same way.
func checkWidthSubsumption(reg Registry, synth, constraint AbstractType, span errs.Span) error {
	ok, err := equalViaWidth(reg, synth, constraint, span)
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(errs.TypeUnexpectedType, errs.PhaseTypeCheck, span,
			fmt.Sprintf("value does not satisfy width constraint %s", describe(constraint)),
			map[string]any{"constraint": describe(constraint)})
	}
	return nil
}

func equalViaWidth(reg Registry, synth, width AbstractType, span errs.Span) (bool, error) {
	named, ok := fieldsByName(reg, synth)
	if !ok {
		return false, nil
	}
	for name, want := range width.WidthFields {
		have, ok := named[name]
		if !ok {
			return false, nil
		}
		eq, err := structurallyEqual(reg, have, want, span)
		if err != nil || !eq {
			return eq, err
		}
	}
	return true, nil
}

// fieldsByName projects a Record or WidthConstraint into a name->type map.
func fieldsByName(reg Registry, t AbstractType) (map[string]AbstractType, bool) {
	switch t.Kind {
	case AbsWidthConstraint:
		return t.WidthFields, true
	case AbsRecord:
		tc, ok := reg.Lookup(t.RecordTypeID)
		if !ok {
			return nil, false
		}
		out := make(map[string]AbstractType, len(tc.FieldMap))
		for name, fid := range tc.FieldMap {
			out[name] = t.Fields[fid]
		}
		return out, true
	default:
		return nil, false
	}
}

func describe(t AbstractType) string {
	switch t.Kind {
	case AbsInt:
		return "int"
	case AbsFloat:
		return "float"
	case AbsString:
		return "string"
	case AbsBool:
		return "bool"
	case AbsUnit:
		return "unit"
	case AbsArray:
		return fmt.Sprintf("[%s; %d]", describe(*t.Element), t.Size)
	case AbsFunction:
		return "function"
	case AbsUncheckedFunction:
		return "unchecked-function"
	case AbsRecord:
		return fmt.Sprintf("record(%s)", t.RecordTypeID)
	case AbsApp:
		return fmt.Sprintf("app(%s)", t.TypeCons)
	case AbsTypeVar, AbsConstrainedTypeVar:
		return fmt.Sprintf("typevar(%s)", t.Var)
	case AbsWidthConstraint:
		return "width-constraint"
	default:
		return "?"
	}
}
