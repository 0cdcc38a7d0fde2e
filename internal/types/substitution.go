package types

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
)

// Registry is the subset of the universe's type-constructor store that
// substitution needs: looking up a constructor by ID, and minting a fresh
// TypeID for a newly-applied Function/Record/Array/UncheckedFunction (spec
// §4.5 step 4). internal/universe.Universe implements this; the interface
// lives here, not there, so internal/types never imports internal/universe.
type Registry interface {
	Lookup(ids.TypeID) (*TypeConstructor, bool)
	Register(*TypeConstructor) ids.TypeID
}

// Substitute resolves a single App{tc, args} one level, per spec §4.5:
// fetch the constructor, check arity, build a placeholder->argument map,
// recursively rewrite every inner TypeVar (descending through Function,
// Record, Array, UncheckedFunction, and nested Apps, leaving free type-vars
// untouched), then register the applied result under a fresh TypeID and
// return App{fresh_tc, args: nil} so callers need at most one more
// substitution step to reach a ground type. Arguments that are themselves
// Apps are resolved before they are substituted, and a constructor with no
// type parameters (a primitive, a non-generic declaration, or an applied
// constructor registered by an earlier call) is returned in its applied form
// directly, which is what makes that one further step reach the ground type.
func Substitute(reg Registry, app AbstractType, span errs.Span) (AbstractType, error) {
	if app.Kind != AbsApp {
		return app, nil
	}
	tc, ok := reg.Lookup(app.TypeCons)
	if !ok {
		return AbstractType{}, errs.New(errs.UnknownType, errs.PhaseTypeCheck, span,
			fmt.Sprintf("unregistered type constructor %s", app.TypeCons), nil)
	}
	params := tc.TypeParamList()
	if len(params) != len(app.Args) {
		return AbstractType{}, errs.New(errs.TypeApplicationArity, errs.PhaseTypeCheck, span,
			fmt.Sprintf("type constructor %s expects %d argument(s), got %d", app.TypeCons, len(params), len(app.Args)),
			map[string]any{"expected": len(params), "found": len(app.Args)})
	}

	subst := make(map[ids.TypeVarID]AbstractType, len(params))
	for i, p := range params {
		arg := app.Args[i]
		if arg.Kind == AbsApp {
			resolved, err := FullyResolve(reg, arg, span)
			if err != nil {
				return AbstractType{}, err
			}
			arg = resolved
		}
		subst[p.Var] = arg
	}

	applied, newTC, err := applyConstructor(reg, tc, subst, make(map[ids.TypeID]bool), span)
	if err != nil {
		return AbstractType{}, err
	}
	if newTC == nil || len(params) == 0 {
		// Primitive constructor (Int/Float/.../Unit), or one with no type
		// parameters: the rewritten body is already the applied form, so
		// nothing new is registered.
		return applied, nil
	}
	fresh := reg.Register(newTC)
	return App(fresh, nil), nil
}

// applyConstructor rewrites tc's body under subst, returning both the fully
// rewritten AbstractType and (for compound kinds) the new TypeConstructor
// that should be registered under a fresh TypeID.
func applyConstructor(reg Registry, tc *TypeConstructor, subst map[ids.TypeVarID]AbstractType, visitingTC map[ids.TypeID]bool, span errs.Span) (AbstractType, *TypeConstructor, error) {
	switch tc.Kind {
	case ConsInt:
		return Int, nil, nil
	case ConsFloat:
		return Float, nil, nil
	case ConsString:
		return String, nil, nil
	case ConsBool:
		return Bool, nil, nil
	case ConsUnit:
		return Unit, nil, nil
	case ConsArray:
		elem, err := rewrite(reg, tc.Element, subst, visitingTC, span)
		if err != nil {
			return AbstractType{}, nil, err
		}
		applied := Array(elem, tc.Size)
		return applied, &TypeConstructor{Kind: ConsArray, Element: elem, Size: tc.Size}, nil
	case ConsRecord:
		fields := make(map[ids.FieldID]AbstractType, len(tc.Fields))
		for fid, ft := range tc.Fields {
			rewritten, err := rewrite(reg, ft, subst, visitingTC, span)
			if err != nil {
				return AbstractType{}, nil, err
			}
			fields[fid] = rewritten
		}
		newTC := &TypeConstructor{
			Kind: ConsRecord, RecordID: tc.RecordID, Fields: fields,
			FieldMap: tc.FieldMap, FieldOrd: tc.FieldOrd,
		}
		return AbstractType{Kind: AbsRecord, RecordTypeID: tc.RecordID, Fields: fields}, newTC, nil
	case ConsFunction:
		params := make([]AbstractType, len(tc.Parameters))
		for i, p := range tc.Parameters {
			rewritten, err := rewrite(reg, p, subst, visitingTC, span)
			if err != nil {
				return AbstractType{}, nil, err
			}
			params[i] = rewritten
		}
		ret, err := rewrite(reg, tc.ReturnType, subst, visitingTC, span)
		if err != nil {
			return AbstractType{}, nil, err
		}
		applied := Function(params, ret)
		return applied, &TypeConstructor{Kind: ConsFunction, Parameters: params, ReturnType: ret}, nil
	case ConsUncheckedFunction:
		ret, err := rewrite(reg, tc.ReturnType, subst, visitingTC, span)
		if err != nil {
			return AbstractType{}, nil, err
		}
		applied := UncheckedFunction(ret)
		return applied, &TypeConstructor{Kind: ConsUncheckedFunction, ReturnType: ret}, nil
	default:
		return AbstractType{}, nil, errs.New(errs.UnknownType, errs.PhaseTypeCheck, span, "unknown type constructor kind", nil)
	}
}

// rewrite recursively replaces bound TypeVars with their substitution,
// descending through Function, Record, Array, UncheckedFunction, and nested
// Apps. Free type-vars (absent from subst) pass through unchanged.
func rewrite(reg Registry, t AbstractType, subst map[ids.TypeVarID]AbstractType, visitingTC map[ids.TypeID]bool, span errs.Span) (AbstractType, error) {
	switch t.Kind {
	case AbsTypeVar:
		if replacement, ok := subst[t.Var]; ok {
			return replacement, nil
		}
		return t, nil
	case AbsConstrainedTypeVar:
		if replacement, ok := subst[t.Var]; ok {
			return replacement, nil
		}
		bound, err := rewrite(reg, *t.Bound, subst, visitingTC, span)
		if err != nil {
			return AbstractType{}, err
		}
		return ConstrainedTypeVar(t.Var, bound), nil
	case AbsArray:
		elem, err := rewrite(reg, *t.Element, subst, visitingTC, span)
		if err != nil {
			return AbstractType{}, err
		}
		return Array(elem, t.Size), nil
	case AbsFunction:
		params := make([]AbstractType, len(t.Parameters))
		for i, p := range t.Parameters {
			rewritten, err := rewrite(reg, p, subst, visitingTC, span)
			if err != nil {
				return AbstractType{}, err
			}
			params[i] = rewritten
		}
		ret, err := rewrite(reg, *t.ReturnType, subst, visitingTC, span)
		if err != nil {
			return AbstractType{}, err
		}
		return Function(params, ret), nil
	case AbsUncheckedFunction:
		ret, err := rewrite(reg, *t.ReturnType, subst, visitingTC, span)
		if err != nil {
			return AbstractType{}, err
		}
		return UncheckedFunction(ret), nil
	case AbsRecord:
		fields := make(map[ids.FieldID]AbstractType, len(t.Fields))
		for fid, ft := range t.Fields {
			rewritten, err := rewrite(reg, ft, subst, visitingTC, span)
			if err != nil {
				return AbstractType{}, err
			}
			fields[fid] = rewritten
		}
		return Record(t.RecordTypeID, fields), nil
	case AbsWidthConstraint:
		fields := make(map[string]AbstractType, len(t.WidthFields))
		for name, ft := range t.WidthFields {
			rewritten, err := rewrite(reg, ft, subst, visitingTC, span)
			if err != nil {
				return AbstractType{}, err
			}
			fields[name] = rewritten
		}
		return WidthConstraint(fields), nil
	case AbsApp:
		if visitingTC[t.TypeCons] {
			// Cycle guard over constructor IDs. Substitute passes visitingTC
			// empty and nothing adds to it, so this branch does not fire;
			// rewrite terminates regardless, since it recurses only over t's
			// own finite structure and never into a constructor's body
			// (field cycles are rejected at registration, spec §9).
			return t, nil
		}
		args := make([]AbstractType, len(t.Args))
		for i, a := range t.Args {
			rewritten, err := rewrite(reg, a, subst, visitingTC, span)
			if err != nil {
				return AbstractType{}, err
			}
			args[i] = rewritten
		}
		return App(t.TypeCons, args), nil
	default:
		return t, nil
	}
}

// Resolve follows an AbstractType to its applied form, performing at most
// one Substitute step (the form Substitute already guarantees: an App whose
// args are already substituted). Call sites that may still hold an
// unresolved App should call this before inspecting Kind.
func Resolve(reg Registry, t AbstractType, span errs.Span) (AbstractType, error) {
	if t.Kind != AbsApp {
		return t, nil
	}
	return Substitute(reg, t, span)
}
