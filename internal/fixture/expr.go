package fixture

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
)

// Expr mirrors ast.Expr's fourteen variants behind one discriminated
// struct, tagged by Kind. Only the fields a given Kind uses are populated;
// the rest are left zero. Mirrors the teacher's builtins_yaml.go approach
// of decoding straight into a flat Go struct rather than a custom
// UnmarshalYAML per variant, since yaml.v3 already gives every field a
// sensible zero value to leave unused.
type Expr struct {
	Kind string `yaml:"kind"`

	// literal
	Int    *int64   `yaml:"int,omitempty"`
	Float  *float64 `yaml:"float,omitempty"`
	String *string  `yaml:"string,omitempty"`
	Bool   *bool    `yaml:"bool,omitempty"`

	// ident / mod_access / field_access
	Name string   `yaml:"name,omitempty"`
	Mod  string   `yaml:"mod,omitempty"`
	Base *Expr    `yaml:"base,omitempty"`
	Path []string `yaml:"path,omitempty"`

	// call / fn_call_chain
	Callee Expr        `yaml:"callee,omitempty"`
	Args   []Expr      `yaml:"args,omitempty"`
	Seed   *Expr       `yaml:"seed,omitempty"`
	Stages []PipeStage `yaml:"stages,omitempty"`

	// bin / uni
	Op      string `yaml:"op,omitempty"`
	Lhs     *Expr  `yaml:"lhs,omitempty"`
	Rhs     *Expr  `yaml:"rhs,omitempty"`
	Operand *Expr  `yaml:"operand,omitempty"`

	// struct_init / anon_struct_init
	Type     string         `yaml:"type,omitempty"`
	TypeArgs []TypeAnn      `yaml:"type_args,omitempty"`
	Fields   map[string]Expr `yaml:"fields,omitempty"`

	// array_init
	Elements []Expr `yaml:"elements,omitempty"`
	Value    *Expr  `yaml:"value,omitempty"`
	Size     *Expr  `yaml:"size,omitempty"`

	// indexing
	Index *Expr `yaml:"index,omitempty"`

	// anonymous_fn
	Params     []Param  `yaml:"params,omitempty"`
	ReturnType *TypeAnn `yaml:"return_type,omitempty"`
	Body       *BlockY  `yaml:"body,omitempty"`
}

// PipeStage mirrors ast.PipeStage.
type PipeStage struct {
	Callee    Expr   `yaml:"callee"`
	ExtraArgs []Expr `yaml:"extra_args,omitempty"`
}

func (p *PipeStage) ToAST() ast.PipeStage {
	return ast.PipeStage{
		Callee:    p.Callee.ToAST(),
		ExtraArgs: exprsToAST(p.ExtraArgs),
		SpanV:     errs.Dummy(),
	}
}

func exprsToAST(es []Expr) []ast.Expr {
	if es == nil {
		return nil
	}
	out := make([]ast.Expr, len(es))
	for i, e := range es {
		out[i] = e.ToAST()
	}
	return out
}

func pipeStagesToAST(ps []PipeStage) []ast.PipeStage {
	out := make([]ast.PipeStage, len(ps))
	for i, p := range ps {
		out[i] = p.ToAST()
	}
	return out
}

func fieldsToAST(m map[string]Expr) map[string]ast.Expr {
	out := make(map[string]ast.Expr, len(m))
	for name, e := range m {
		e := e
		out[name] = e.ToAST()
	}
	return out
}

// ToAST converts an Expr fixture node into its real ast.Expr, panicking on
// an unrecognized Kind (a fixture authoring mistake, not a runtime
// possibility worth a recoverable error).
func (e *Expr) ToAST() ast.Expr {
	span := errs.Dummy()
	switch e.Kind {
	case "int":
		return &ast.LiteralExpr{Kind: ast.LitInt, IntVal: derefInt(e.Int), SpanV: span}
	case "float":
		return &ast.LiteralExpr{Kind: ast.LitFloat, FltVal: derefFloat(e.Float), SpanV: span}
	case "string":
		return &ast.LiteralExpr{Kind: ast.LitString, StrVal: derefString(e.String), SpanV: span}
	case "bool":
		return &ast.LiteralExpr{Kind: ast.LitBool, BoolVal: derefBool(e.Bool), SpanV: span}
	case "ident":
		return &ast.IdentExpr{Name: e.Name, SpanV: span}
	case "mod_access":
		return &ast.ModAccessExpr{ModulePath: pathOf(e.Mod), Name: e.Name, SpanV: span}
	case "field_access":
		return &ast.FieldAccessExpr{Base: e.Base.ToAST(), Path: e.Path, SpanV: span}
	case "call":
		return &ast.CallExpr{Callee: e.Callee.ToAST(), Args: exprsToAST(e.Args), SpanV: span}
	case "fn_call_chain":
		return &ast.FnCallChainExpr{Seed: e.Seed.ToAST(), Stages: pipeStagesToAST(e.Stages), SpanV: span}
	case "bin":
		return &ast.BinExpr{Op: ast.BinOp(e.Op), Lhs: e.Lhs.ToAST(), Rhs: e.Rhs.ToAST(), SpanV: span}
	case "uni":
		return &ast.UniExpr{Op: ast.UniOp(e.Op), Operand: e.Operand.ToAST(), SpanV: span}
	case "struct_init":
		var targs []ast.TypeAnnotation
		if e.TypeArgs != nil {
			targs = make([]ast.TypeAnnotation, len(e.TypeArgs))
			for i, a := range e.TypeArgs {
				targs[i] = a.ToAST()
			}
		}
		return &ast.StructInitExpr{TypePath: pathOf(e.Type), TypeArgs: targs, Fields: fieldsToAST(e.Fields), SpanV: span}
	case "anon_struct_init":
		return &ast.AnonStructInitExpr{Fields: fieldsToAST(e.Fields), SpanV: span}
	case "array_init_list":
		return &ast.ArrayInitExpr{Kind: ast.ArrayInitList, Elements: exprsToAST(e.Elements), SpanV: span}
	case "array_init_value":
		return &ast.ArrayInitExpr{Kind: ast.ArrayInitValue, Value: e.Value.ToAST(), Size: e.Size.ToAST(), SpanV: span}
	case "indexing":
		return &ast.IndexingExpr{Base: e.Base.ToAST(), Index: e.Index.ToAST(), SpanV: span}
	case "type_inst":
		targs := make([]ast.TypeAnnotation, len(e.TypeArgs))
		for i, a := range e.TypeArgs {
			targs[i] = a.ToAST()
		}
		return &ast.TypeInstExpr{Base: e.Base.ToAST(), TypeArgs: targs, SpanV: span}
	case "anonymous_fn":
		var ret *ast.TypeAnnotation
		if e.ReturnType != nil {
			r := e.ReturnType.ToAST()
			ret = &r
		}
		var body ast.Block
		if e.Body != nil {
			body = e.Body.ToAST()
		}
		return &ast.AnonymousFnExpr{Params: paramsToAST(e.Params), ReturnType: ret, Body: body, SpanV: span}
	default:
		panic(decodeErr("unknown expr kind %q", e.Kind))
	}
}

func pathOf(dotted string) ast.Path {
	segs := splitDotted(dotted)
	out := make([]ast.PathSegment, len(segs))
	for i, name := range segs {
		out[i] = ast.PathSegment{Name: name}
	}
	return ast.Path{Segments: out, SpanV: errs.Dummy()}
}

func derefInt(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
