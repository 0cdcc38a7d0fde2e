package resolve

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/universe"
)

// reserveHeaders implements pass 1 for one module (spec §4.3 steps 1-2):
// mint a ModuleID, reserve a TypeID for every struct/opaque and a FnID for
// every function/builtin, record `use` declarations, and bind each name
// into the universe's per-module namespace. Functions do not get a
// pre-reserved TypeID — that is minted fresh in pass 2 (buildFunction),
// mirroring how elaborateAnon mints a fresh TypeID for an anonymous
// function's constructor rather than reusing the FnID's own numbering.
func reserveHeaders(u *universe.Universe, m *ast.Module) (*moduleCtx, error) {
	if m.Name == "" {
		return nil, errs.New(errs.MissingModName, errs.PhaseModuleResolve, m.SpanV,
			"module declares no name", nil)
	}

	mc := &moduleCtx{
		ast:        m,
		id:         u.Counters.NewModuleID(),
		name:       m.Name,
		ownTypeIDs: make(map[string]ids.TypeID),
		ownFnIDs:   make(map[string]ids.FnID),
	}
	u.DefineModule(&universe.ModuleEntry{ID: mc.id, Name: m.Name, Source: m})

	for _, d := range m.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			if err := declareType(u, mc, decl.Name, decl.SpanV); err != nil {
				return nil, err
			}
		case *ast.OpaqueDecl:
			if err := declareType(u, mc, decl.Name, decl.SpanV); err != nil {
				return nil, err
			}
		case *ast.FunctionDecl:
			if err := declareFn(u, mc, decl.Name, decl.SpanV); err != nil {
				return nil, err
			}
			fn := mc.ownFnIDs[decl.Name]
			u.DefineFunction(fn, &universe.FunctionEntry{ID: fn, Name: decl.Name, State: universe.FnSMPLUser})
			if decl.Name == "main" {
				mc.mainFn, mc.hasMain = fn, true
			}
		case *ast.BuiltinFunctionDecl:
			if err := declareFn(u, mc, decl.Name, decl.SpanV); err != nil {
				return nil, err
			}
			fn := mc.ownFnIDs[decl.Name]
			u.DefineFunction(fn, &universe.FunctionEntry{ID: fn, Name: decl.Name, State: universe.FnBuiltin, Decl: decl})
		case *ast.UseDecl:
			mc.uses = append(mc.uses, decl)
		}
	}
	return mc, nil
}

func declareType(u *universe.Universe, mc *moduleCtx, name string, span errs.Span) error {
	if _, exists := mc.ownTypeIDs[name]; exists {
		return errs.New(errs.DuplicateTypes, errs.PhaseModuleResolve, span,
			fmt.Sprintf("type %q declared more than once in module %q", name, mc.name),
			map[string]any{"name": name, "module": mc.name})
	}
	id := u.Counters.NewTypeID()
	mc.ownTypeIDs[name] = id
	u.BindType(mc.id, name, id)
	return nil
}

func declareFn(u *universe.Universe, mc *moduleCtx, name string, span errs.Span) error {
	if _, exists := mc.ownFnIDs[name]; exists {
		return errs.New(errs.DuplicateFns, errs.PhaseModuleResolve, span,
			fmt.Sprintf("function %q declared more than once in module %q", name, mc.name),
			map[string]any{"name": name, "module": mc.name})
	}
	id := u.Counters.NewFnID()
	mc.ownFnIDs[name] = id
	u.BindFn(mc.id, name, id)
	return nil
}

// checkSingleMain is a program-wide check, not a per-module one: more than
// one module declaring `main` can't be attributed to a single module, so it
// runs once after every module's pass 1 has finished.
func checkSingleMain(st *state, mods []*moduleCtx) error {
	var first *moduleCtx
	for _, mc := range mods {
		if mc == nil || !mc.hasMain {
			continue
		}
		if first != nil {
			return errs.New(errs.MultipleMainFns, errs.PhaseModuleResolve, mc.ast.SpanV,
				fmt.Sprintf("multiple main functions declared (modules %q and %q)", first.name, mc.name),
				map[string]any{"first_module": first.name, "second_module": mc.name})
		}
		first = mc
	}
	if first != nil {
		st.setMain(first.mainFn)
	}
	return nil
}
