// Package fixture implements a YAML mirror of internal/ast's parsed-AST
// contract (spec §6), for golden test fixtures and the cmd/smplc driver's
// input format. Nothing here parses source text; it decodes a YAML
// document directly into the same ast.Module shape a real external parser
// would have produced, synthesizing a dummy errs.Span for every node
// (fixtures carry no source positions worth preserving).
//
// Grounded on the teacher's internal/evaluator/builtins_yaml.go (yaml.v3
// Unmarshal-into-Go-values usage) and internal/ext/config.go's pattern of
// a small hand-written schema struct mirroring a richer internal type.
package fixture

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
)

// TypeAnn mirrors ast.TypeAnnotation. Exactly one of Path/Element/Args/
// Width is populated, matching TypeAnnotationKind's four variants.
type TypeAnn struct {
	Path     string             `yaml:"path,omitempty"`
	TypeArgs []TypeAnn          `yaml:"type_args,omitempty"`
	Element  *TypeAnn           `yaml:"element,omitempty"`
	Size     uint64             `yaml:"size,omitempty"`
	Args     []TypeAnn          `yaml:"args,omitempty"`
	ArgsSet  bool               `yaml:"args_set,omitempty"`
	Return   *TypeAnn           `yaml:"return,omitempty"`
	Width    map[string]TypeAnn `yaml:"width,omitempty"`
}

func splitDotted(s string) []string {
	out := []string{""}
	for _, r := range s {
		if r == '.' {
			out = append(out, "")
			continue
		}
		out[len(out)-1] += string(r)
	}
	return out
}

// ToAST converts a TypeAnn fixture into a parsed ast.TypeAnnotation.
func (t *TypeAnn) ToAST() ast.TypeAnnotation {
	switch {
	case t.Element != nil:
		elem := t.Element.ToAST()
		return ast.ArrayAnnotation(elem, t.Size, errs.Dummy())
	case t.Width != nil:
		fields := make(map[string]ast.TypeAnnotation, len(t.Width))
		for name, f := range t.Width {
			f := f
			fields[name] = f.ToAST()
		}
		return ast.WidthAnnotation(fields, errs.Dummy())
	case t.ArgsSet || t.Args != nil || t.Return != nil:
		var args []ast.TypeAnnotation
		if t.ArgsSet || t.Args != nil {
			args = make([]ast.TypeAnnotation, len(t.Args))
			for i, a := range t.Args {
				args[i] = a.ToAST()
			}
		}
		var ret *ast.TypeAnnotation
		if t.Return != nil {
			r := t.Return.ToAST()
			ret = &r
		}
		return ast.FnAnnotation(args, ret, errs.Dummy())
	default:
		segs := splitDotted(t.Path)
		pathSegs := make([]ast.PathSegment, len(segs))
		for i, name := range segs {
			pathSegs[i] = ast.PathSegment{Name: name}
		}
		if len(t.TypeArgs) > 0 {
			targs := make([]ast.TypeAnnotation, len(t.TypeArgs))
			for i, a := range t.TypeArgs {
				targs[i] = a.ToAST()
			}
			pathSegs[len(pathSegs)-1].TypeArgs = targs
		}
		return ast.PathAnnotation(ast.Path{Segments: pathSegs, SpanV: errs.Dummy()})
	}
}

// TypeParam mirrors ast.TypeParamDecl.
type TypeParam struct {
	Name       string   `yaml:"name"`
	Constraint *TypeAnn `yaml:"constraint,omitempty"`
}

func (p *TypeParam) ToAST() ast.TypeParamDecl {
	d := ast.TypeParamDecl{Name: p.Name, SpanV: errs.Dummy()}
	if p.Constraint != nil {
		c := p.Constraint.ToAST()
		d.Constraint = &c
	}
	return d
}

func typeParamsToAST(ps []TypeParam) []ast.TypeParamDecl {
	out := make([]ast.TypeParamDecl, len(ps))
	for i, p := range ps {
		out[i] = p.ToAST()
	}
	return out
}

// Field mirrors ast.FieldDecl.
type Field struct {
	Name string  `yaml:"name"`
	Type TypeAnn `yaml:"type"`
}

// Param mirrors ast.ParamDecl.
type Param struct {
	Name string  `yaml:"name"`
	Type TypeAnn `yaml:"type"`
}

func paramsToAST(ps []Param) []ast.ParamDecl {
	out := make([]ast.ParamDecl, len(ps))
	for i, p := range ps {
		out[i] = ast.ParamDecl{Name: p.Name, Type: p.Type.ToAST(), SpanV: errs.Dummy()}
	}
	return out
}

// decodeErr wraps a fixture-side shape mistake (not an errs.Report, since
// it never reached module resolution): a bare error is enough, the driver
// only ever needs %v out of it.
func decodeErr(format string, args ...any) error {
	return fmt.Errorf("fixture: "+format, args...)
}
