package resolve

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/check"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/scope"
	"github.com/smpl-lang/smplc/internal/types"
)

// buildTypeParams forks parent into a generic scope and declares each
// TypeParamDecl's placeholder type-var, so a later type param's own
// constraint may reference an earlier one (spec §4.5's TypeParams). A name
// repeated across the same list unions its constraint into the one already
// declared (SPEC_FULL.md §4(a)) instead of raising a naming conflict.
func buildTypeParams(counters *ids.Counters, parent *scope.ScopedData, decls []ast.TypeParamDecl) (*scope.ScopedData, types.TypeParams, error) {
	generic := parent.Fork()
	var params types.TypeParams
	byName := make(map[string]int, len(decls))

	for _, d := range decls {
		var bound *types.AbstractType
		if d.Constraint != nil {
			resolved, err := check.ResolveAnnotation(generic, *d.Constraint)
			if err != nil {
				return nil, nil, err
			}
			bound = &resolved
		}

		if idx, exists := byName[d.Name]; exists {
			merged, err := unionConstraints(params[idx].Constraint, bound, d.SpanV)
			if err != nil {
				return nil, nil, err
			}
			params[idx].Constraint = merged
			declareTypeParam(generic, d.Name, params[idx].Var, merged)
			continue
		}

		tv := counters.NewTypeVarID()
		tp := types.TypeParam{ID: counters.NewTypeParamID(), Constraint: bound, Var: tv}
		byName[d.Name] = len(params)
		params = append(params, tp)
		declareTypeParam(generic, d.Name, tv, bound)
	}

	return generic, params, nil
}

func declareTypeParam(s *scope.ScopedData, name string, tv ids.TypeVarID, bound *types.AbstractType) {
	if bound != nil {
		s.DeclareConstrainedTypeVar(name, tv, *bound)
	} else {
		s.DeclareTypeVar(name, tv)
	}
}

// checkTypeParamNameConflicts reports a field/parameter name colliding with
// one of its own declaration's type parameters.
func checkTypeParamNameConflicts(typeParamNames map[string]bool, name string, span errs.Span, what string) error {
	if typeParamNames[name] {
		return errs.New(errs.TypeParameterNamingConflict, errs.PhaseModuleResolve, span,
			fmt.Sprintf("%s %q collides with a type parameter of the same name", what, name),
			map[string]any{"name": name})
	}
	return nil
}

// unionConstraints implements SPEC_FULL.md §4(a): multiple where-clause
// constraints on one type parameter union into a single WidthConstraint,
// erroring only when both name the same field with conflicting types.
func unionConstraints(a, b *types.AbstractType, span errs.Span) (*types.AbstractType, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if a.Kind != types.AbsWidthConstraint || b.Kind != types.AbsWidthConstraint {
		return nil, errs.New(errs.TypeConflictingConstraints, errs.PhaseModuleResolve, span,
			"a type parameter's constraints must all be width constraints to be combined", nil)
	}

	merged := make(map[string]types.AbstractType, len(a.WidthFields)+len(b.WidthFields))
	for k, v := range a.WidthFields {
		merged[k] = v
	}
	for k, v := range b.WidthFields {
		if existing, ok := merged[k]; ok {
			if !sameShape(existing, v) {
				return nil, errs.New(errs.TypeConflictingConstraints, errs.PhaseModuleResolve, span,
					fmt.Sprintf("conflicting constraints on field %q", k), map[string]any{"field": k})
			}
			continue
		}
		merged[k] = v
	}
	result := types.WidthConstraint(merged)
	return &result, nil
}

// sameShape compares two not-yet-substituted AbstractTypes structurally,
// enough to detect a genuine conflict between two width-constraint fields
// before any Substitute/FullyResolve step has run.
func sameShape(a, b types.AbstractType) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case types.AbsArray:
		return a.Size == b.Size && sameShape(*a.Element, *b.Element)
	case types.AbsApp:
		if a.TypeCons != b.TypeCons || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !sameShape(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case types.AbsTypeVar, types.AbsConstrainedTypeVar:
		return a.Var == b.Var
	case types.AbsFunction, types.AbsUncheckedFunction:
		if len(a.Parameters) != len(b.Parameters) {
			return false
		}
		for i := range a.Parameters {
			if !sameShape(a.Parameters[i], b.Parameters[i]) {
				return false
			}
		}
		return sameShape(*a.ReturnType, *b.ReturnType)
	case types.AbsWidthConstraint:
		if len(a.WidthFields) != len(b.WidthFields) {
			return false
		}
		for k, v := range a.WidthFields {
			other, ok := b.WidthFields[k]
			if !ok || !sameShape(v, other) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
