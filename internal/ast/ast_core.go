// Package ast defines the parsed-AST contract (spec §6): the shape a parser
// external to this core hands in, and the only form of text-derived input
// the analysis pipeline ever sees. Nothing in this package runs a lexer or
// parser; it only describes data.
package ast

import "github.com/smpl-lang/smplc/internal/errs"

// Node is the base interface satisfied by every parsed AST node; every node
// carries the span the (external) parser attached to it, for diagnostics.
type Node interface {
	Span() errs.Span
}

// Module is the root of a single parsed source file (or a builtin module
// source prepended by the driver, spec §6).
type Module struct {
	Name  string // empty if the module declared no name (MissingModName error)
	Decls []Decl
	SpanV errs.Span
}

func (m *Module) Span() errs.Span { return m.SpanV }

// Decl is one top-level declaration statement.
type Decl interface {
	Node
	declNode()
}

// StructDecl declares a (possibly generic) record type.
type StructDecl struct {
	Name        string
	TypeParams  []TypeParamDecl
	Fields      []FieldDecl
	Annotations []Annotation
	SpanV       errs.Span
}

func (d *StructDecl) Span() errs.Span { return d.SpanV }
func (*StructDecl) declNode()         {}

// IsOpaque reports whether the "opaque" annotation key marks this struct as
// non-initializable by user code (spec §6, §9).
func (d *StructDecl) IsOpaque() bool {
	for _, a := range d.Annotations {
		if a.Key == "opaque" {
			return true
		}
	}
	return false
}

// OpaqueDecl declares a bare opaque type: no fields are ever visible to
// user code, only its name and arity. Distinct from a StructDecl carrying
// the "opaque" annotation, which does have (checker-invisible-to-user-init)
// fields.
type OpaqueDecl struct {
	Name       string
	TypeParams []TypeParamDecl
	SpanV      errs.Span
}

func (d *OpaqueDecl) Span() errs.Span { return d.SpanV }
func (*OpaqueDecl) declNode()         {}

// FunctionDecl declares a user (SMPL) function.
type FunctionDecl struct {
	Name        string
	TypeParams  []TypeParamDecl
	Params      []ParamDecl
	ReturnType  *TypeAnnotation // nil means Unit
	Body        Block
	Annotations []Annotation
	SpanV       errs.Span
}

func (d *FunctionDecl) Span() errs.Span { return d.SpanV }
func (*FunctionDecl) declNode()         {}

// BuiltinFunctionDecl declares a builtin hooked by the (external) back-end.
// Variadic builtins type-check as UncheckedFunction (spec §3): argument
// count and type are not enforced at the call site.
type BuiltinFunctionDecl struct {
	Name        string
	TypeParams  []TypeParamDecl
	ParamTypes  []TypeAnnotation
	ReturnType  *TypeAnnotation
	Variadic    bool
	Annotations []Annotation
	SpanV       errs.Span
}

func (d *BuiltinFunctionDecl) Span() errs.Span { return d.SpanV }
func (*BuiltinFunctionDecl) declNode()         {}

// UseDecl imports another module's type-constructor and function bindings
// under the imported prefix (spec §4.3 step 4).
type UseDecl struct {
	Path  Path
	Alias string // empty if not aliased
	SpanV errs.Span
}

func (d *UseDecl) Span() errs.Span { return d.SpanV }
func (*UseDecl) declNode()         {}

// TypeParamDecl is a single entry in a declaration's <...> parameter list,
// optionally bounded by a width constraint or other abstract type.
type TypeParamDecl struct {
	Name       string
	Constraint *TypeAnnotation
	SpanV      errs.Span
}

func (d TypeParamDecl) Span() errs.Span { return d.SpanV }

// FieldDecl is one field of a struct body.
type FieldDecl struct {
	Name  string
	Type  TypeAnnotation
	SpanV errs.Span
}

func (d FieldDecl) Span() errs.Span { return d.SpanV }

// ParamDecl is one function parameter.
type ParamDecl struct {
	Name  string
	Type  TypeAnnotation
	SpanV errs.Span
}

func (d ParamDecl) Span() errs.Span { return d.SpanV }

// Annotation is a single key[=value] pair attached to a declaration.
type Annotation struct {
	Key   string
	Value string
}
