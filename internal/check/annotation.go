package check

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/scope"
	"github.com/smpl-lang/smplc/internal/types"
)

// ResolveAnnotation converts a parsed TypeAnnotation into an AbstractType
// (spec §4.5): a path whose single segment names a bound type-var resolves
// to TypeVar(id); otherwise it resolves to App{tc, args}. Width-constraint
// annotations desugar to WidthConstraint{fields} directly. Function and
// array annotations recurse structurally but do not themselves register a
// type constructor — only a named struct/opaque declaration does that.
// Exported so internal/resolve can resolve struct-field, function-param,
// and type-parameter-constraint annotations with the same logic instead of
// duplicating it.
func ResolveAnnotation(s *scope.ScopedData, ann ast.TypeAnnotation) (types.AbstractType, error) {
	switch ann.Kind {
	case ast.TypeAnnPath:
		if name, ok := ann.PathValue.Single(); ok {
			if b, ok := s.LookupTypeVar(name); ok {
				if b.Bound != nil {
					return types.ConstrainedTypeVar(b.ID, *b.Bound), nil
				}
				return types.TypeVar(b.ID), nil
			}
		} else if len(ann.PathValue.Segments) == 1 {
			// Single segment, but carrying type arguments — only a type
			// constructor may be parameterized this way, never a bound
			// type-var.
			if _, ok := s.LookupTypeVar(ann.PathValue.Segments[0].Name); ok {
				return types.AbstractType{}, errs.New(errs.TypeParameterizedParameter, errs.PhaseTypeCheck, ann.SpanV,
					fmt.Sprintf("type parameter %q cannot itself be parameterized", ann.PathValue.Segments[0].Name), nil)
			}
		}
		tc, ok := s.LookupTypeCons(pathString(ann.PathValue))
		if !ok {
			return types.AbstractType{}, errs.New(errs.UnknownType, errs.PhaseTypeCheck, ann.SpanV,
				fmt.Sprintf("unknown type %q", pathString(ann.PathValue)), map[string]any{"name": pathString(ann.PathValue)})
		}
		args, err := resolveAnnotationArgs(s, ann.PathValue)
		if err != nil {
			return types.AbstractType{}, err
		}
		// App handles zero-arity constructors (the primitives, and any
		// zero-parameter record) the same way as parameterized ones: one
		// Substitute step resolves it to the ground AbstractType.
		return types.App(tc, args), nil

	case ast.TypeAnnArray:
		elem, err := ResolveAnnotation(s, *ann.ElementOf)
		if err != nil {
			return types.AbstractType{}, err
		}
		return types.Array(elem, ann.ArraySize), nil

	case ast.TypeAnnFn:
		args := make([]types.AbstractType, len(ann.FnArgs))
		for i, a := range ann.FnArgs {
			resolved, err := ResolveAnnotation(s, a)
			if err != nil {
				return types.AbstractType{}, err
			}
			args[i] = resolved
		}
		ret := types.Unit
		if ann.FnReturn != nil {
			r, err := ResolveAnnotation(s, *ann.FnReturn)
			if err != nil {
				return types.AbstractType{}, err
			}
			ret = r
		}
		return types.Function(args, ret), nil

	case ast.TypeAnnWidth:
		fields := make(map[string]types.AbstractType, len(ann.WidthField))
		for name, f := range ann.WidthField {
			resolved, err := ResolveAnnotation(s, f)
			if err != nil {
				return types.AbstractType{}, err
			}
			fields[name] = resolved
		}
		return types.WidthConstraint(fields), nil

	default:
		return types.AbstractType{}, errs.New(errs.UnknownType, errs.PhaseTypeCheck, ann.SpanV, "malformed type annotation", nil)
	}
}

func resolveAnnotationArgs(s *scope.ScopedData, p ast.Path) ([]types.AbstractType, error) {
	last := p.Segments[len(p.Segments)-1]
	args := make([]types.AbstractType, len(last.TypeArgs))
	for i, a := range last.TypeArgs {
		resolved, err := ResolveAnnotation(s, a)
		if err != nil {
			return nil, err
		}
		args[i] = resolved
	}
	return args, nil
}

func pathString(p ast.Path) string {
	out := ""
	for i, seg := range p.Segments {
		if i > 0 {
			out += "."
		}
		out += seg.Name
	}
	return out
}
