package fixture

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
)

// Annotation mirrors ast.Annotation.
type Annotation struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value,omitempty"`
}

func annotationsToAST(as []Annotation) []ast.Annotation {
	if as == nil {
		return nil
	}
	out := make([]ast.Annotation, len(as))
	for i, a := range as {
		out[i] = ast.Annotation{Key: a.Key, Value: a.Value}
	}
	return out
}

// Decl mirrors one of ast.Decl's five variants, discriminated by Kind.
type Decl struct {
	Kind string `yaml:"kind"`

	Name        string       `yaml:"name"`
	TypeParams  []TypeParam  `yaml:"type_params,omitempty"`
	Annotations []Annotation `yaml:"annotations,omitempty"`

	// struct
	Fields []Field `yaml:"fields,omitempty"`

	// function / builtin_function
	Params     []Param  `yaml:"params,omitempty"`
	ParamTypes []TypeAnn `yaml:"param_types,omitempty"`
	ReturnType *TypeAnn `yaml:"return_type,omitempty"`
	Variadic   bool     `yaml:"variadic,omitempty"`
	Body       *BlockY  `yaml:"body,omitempty"`

	// use
	Path  string `yaml:"path,omitempty"`
	Alias string `yaml:"alias,omitempty"`
}

// ToAST converts a Decl fixture node into its real ast.Decl, panicking on
// an unrecognized Kind (a fixture authoring mistake).
func (d *Decl) ToAST() ast.Decl {
	span := errs.Dummy()
	switch d.Kind {
	case "struct":
		fields := make([]ast.FieldDecl, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = ast.FieldDecl{Name: f.Name, Type: f.Type.ToAST(), SpanV: span}
		}
		return &ast.StructDecl{
			Name:        d.Name,
			TypeParams:  typeParamsToAST(d.TypeParams),
			Fields:      fields,
			Annotations: annotationsToAST(d.Annotations),
			SpanV:       span,
		}
	case "opaque":
		return &ast.OpaqueDecl{Name: d.Name, TypeParams: typeParamsToAST(d.TypeParams), SpanV: span}
	case "function":
		var ret *ast.TypeAnnotation
		if d.ReturnType != nil {
			r := d.ReturnType.ToAST()
			ret = &r
		}
		var body ast.Block
		if d.Body != nil {
			body = d.Body.ToAST()
		}
		return &ast.FunctionDecl{
			Name:        d.Name,
			TypeParams:  typeParamsToAST(d.TypeParams),
			Params:      paramsToAST(d.Params),
			ReturnType:  ret,
			Body:        body,
			Annotations: annotationsToAST(d.Annotations),
			SpanV:       span,
		}
	case "builtin_function":
		var ret *ast.TypeAnnotation
		if d.ReturnType != nil {
			r := d.ReturnType.ToAST()
			ret = &r
		}
		paramTypes := make([]ast.TypeAnnotation, len(d.ParamTypes))
		for i, p := range d.ParamTypes {
			paramTypes[i] = p.ToAST()
		}
		return &ast.BuiltinFunctionDecl{
			Name:        d.Name,
			TypeParams:  typeParamsToAST(d.TypeParams),
			ParamTypes:  paramTypes,
			ReturnType:  ret,
			Variadic:    d.Variadic,
			Annotations: annotationsToAST(d.Annotations),
			SpanV:       span,
		}
	case "use":
		return &ast.UseDecl{Path: pathOf(d.Path), Alias: d.Alias, SpanV: span}
	default:
		panic(decodeErr("unknown decl kind %q", d.Kind))
	}
}

// Module mirrors ast.Module: the root of one fixture source file.
type Module struct {
	Name  string `yaml:"name"`
	Decls []Decl `yaml:"decls"`
}

// ToAST converts a Module fixture into its real ast.Module.
func (m *Module) ToAST() *ast.Module {
	decls := make([]ast.Decl, len(m.Decls))
	for i, d := range m.Decls {
		d := d
		decls[i] = d.ToAST()
	}
	return &ast.Module{Name: m.Name, Decls: decls, SpanV: errs.Dummy()}
}

// Load reads a single YAML fixture file and decodes it into a Module
// fixture, without converting it to ast yet (ToAST is separate so callers
// can inspect/mutate the fixture shape first, mirroring the teacher's
// builtins_yaml.go split between decode and use).
func Load(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, decodeErr("reading %s: %w", path, err)
	}
	var m Module
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, decodeErr("decoding %s: %w", path, err)
	}
	return &m, nil
}

// LoadModule reads a fixture file and converts it directly to an
// ast.Module, the shape internal/resolve.Run consumes.
func LoadModule(path string) (*ast.Module, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return m.ToAST(), nil
}
