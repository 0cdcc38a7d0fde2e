// Package scope implements ScopedData (spec §4.4): a clone-on-fork lexical
// scope holding variable, function, type-var, and type-constructor
// bindings. A scope is forked at every CFG EnterScope node and discarded at
// the matching ExitScope; lookups walk outward through the fork chain.
package scope

import (
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/types"
)

// TypeVarBinding is what a bound type-variable name resolves to: its
// placeholder ID, and — for a function's own type parameters, per spec's
// "TypeParams: optional-constraint AbstractType" — the width (or other)
// bound it was declared with, if any.
type TypeVarBinding struct {
	ID    ids.TypeVarID
	Bound *types.AbstractType
}

// ScopedData is one lexical scope frame. Fork returns a new frame with no
// maps of its own, whose lookups fall through to the parent; the first
// binding added to a frame gives it its own, initially empty, map of that
// kind, so a parent's maps are never copied or modified — cheap for the
// common case of a scope that declares few names relative to how deep it's
// nested (spec §9 "persistent scopes").
type ScopedData struct {
	parent *ScopedData

	vars     map[string]ids.VarID
	fns      map[string]ids.FnID
	typeVars map[string]TypeVarBinding
	typeCons map[string]ids.TypeID
}

// Root returns an empty top-level scope (seeded by the standard library's
// bindings before a module's own reserved items are injected, spec §4.3
// step 3).
func Root() *ScopedData {
	return &ScopedData{
		vars:     make(map[string]ids.VarID),
		fns:      make(map[string]ids.FnID),
		typeVars: make(map[string]TypeVarBinding),
		typeCons: make(map[string]ids.TypeID),
	}
}

// Fork creates a child scope at an EnterScope node. The child starts with
// no bindings of its own; lookups fall through to the parent until the
// child declares something with the same name.
func (s *ScopedData) Fork() *ScopedData {
	return &ScopedData{parent: s}
}

// ensure copy-on-write semantics: the first mutation on a forked frame
// materializes its own maps rather than touching the parent's.
func (s *ScopedData) ownVars() map[string]ids.VarID {
	if s.vars == nil {
		s.vars = make(map[string]ids.VarID)
	}
	return s.vars
}

func (s *ScopedData) ownFns() map[string]ids.FnID {
	if s.fns == nil {
		s.fns = make(map[string]ids.FnID)
	}
	return s.fns
}

func (s *ScopedData) ownTypeVars() map[string]TypeVarBinding {
	if s.typeVars == nil {
		s.typeVars = make(map[string]TypeVarBinding)
	}
	return s.typeVars
}

func (s *ScopedData) ownTypeCons() map[string]ids.TypeID {
	if s.typeCons == nil {
		s.typeCons = make(map[string]ids.TypeID)
	}
	return s.typeCons
}

// DeclareVar binds name to v in this frame.
func (s *ScopedData) DeclareVar(name string, v ids.VarID) { s.ownVars()[name] = v }

// DeclareFn binds name to fn in this frame.
func (s *ScopedData) DeclareFn(name string, fn ids.FnID) { s.ownFns()[name] = fn }

// DeclareTypeVar binds name to tv in this frame, with no constraint.
func (s *ScopedData) DeclareTypeVar(name string, tv ids.TypeVarID) {
	s.ownTypeVars()[name] = TypeVarBinding{ID: tv}
}

// DeclareConstrainedTypeVar binds name to tv in this frame, carrying the
// width (or other) bound the declaring type parameter was constrained by.
func (s *ScopedData) DeclareConstrainedTypeVar(name string, tv ids.TypeVarID, bound types.AbstractType) {
	s.ownTypeVars()[name] = TypeVarBinding{ID: tv, Bound: &bound}
}

// DeclareTypeCons binds name to tc in this frame.
func (s *ScopedData) DeclareTypeCons(name string, tc ids.TypeID) { s.ownTypeCons()[name] = tc }

// LookupVar walks outward from s looking for name among variable bindings.
func (s *ScopedData) LookupVar(name string) (ids.VarID, bool) {
	for f := s; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return 0, false
}

// LookupFn walks outward from s looking for name among function bindings.
func (s *ScopedData) LookupFn(name string) (ids.FnID, bool) {
	for f := s; f != nil; f = f.parent {
		if fn, ok := f.fns[name]; ok {
			return fn, true
		}
	}
	return 0, false
}

// LookupTypeVar walks outward from s looking for name among type-var
// bindings.
func (s *ScopedData) LookupTypeVar(name string) (TypeVarBinding, bool) {
	for f := s; f != nil; f = f.parent {
		if tv, ok := f.typeVars[name]; ok {
			return tv, true
		}
	}
	return TypeVarBinding{}, false
}

// LookupTypeCons walks outward from s looking for name among
// type-constructor bindings.
func (s *ScopedData) LookupTypeCons(name string) (ids.TypeID, bool) {
	for f := s; f != nil; f = f.parent {
		if tc, ok := f.typeCons[name]; ok {
			return tc, true
		}
	}
	return 0, false
}

// Binding is the outcome of resolving a bare identifier where both a
// variable and function of the same name might be visible.
type Binding struct {
	IsVar bool
	Var   ids.VarID
	IsFn  bool
	Fn    ids.FnID
}

// LookupIdent resolves an ambiguous bare identifier, preferring a variable
// binding over a function binding of the same name (spec §4.4).
func (s *ScopedData) LookupIdent(name string) (Binding, bool) {
	if v, ok := s.LookupVar(name); ok {
		return Binding{IsVar: true, Var: v}, true
	}
	if fn, ok := s.LookupFn(name); ok {
		return Binding{IsFn: true, Fn: fn}, true
	}
	return Binding{}, false
}
