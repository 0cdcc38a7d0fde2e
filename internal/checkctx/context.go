// Package checkctx defines TypingContext (spec's GLOSSARY): the set of maps
// scoped to a single function analysis that the type checker (internal/check)
// populates as it walks a CFG.
package checkctx

import (
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/types"
)

// TypingContext holds the resolved type of every type-var, var, tmp, and
// fn observed while checking one function (spec §3 "Function").
type TypingContext struct {
	TypeVars map[ids.TypeVarID]types.AbstractType
	Vars     map[ids.VarID]types.AbstractType
	Tmps     map[ids.TmpID]types.AbstractType
	Fns      map[ids.FnID]types.AbstractType

	// Existentials are the fresh type-vars introduced to skolemize the
	// function's universally quantified type parameters at entry.
	Existentials []ids.TypeVarID
}

func New() *TypingContext {
	return &TypingContext{
		TypeVars: make(map[ids.TypeVarID]types.AbstractType),
		Vars:     make(map[ids.VarID]types.AbstractType),
		Tmps:     make(map[ids.TmpID]types.AbstractType),
		Fns:      make(map[ids.FnID]types.AbstractType),
	}
}

func (tc *TypingContext) SetVar(v ids.VarID, t types.AbstractType)   { tc.Vars[v] = t }
func (tc *TypingContext) SetTmp(v ids.TmpID, t types.AbstractType)   { tc.Tmps[v] = t }
func (tc *TypingContext) SetFn(v ids.FnID, t types.AbstractType)     { tc.Fns[v] = t }
func (tc *TypingContext) SetTypeVar(v ids.TypeVarID, t types.AbstractType) { tc.TypeVars[v] = t }

func (tc *TypingContext) Var(v ids.VarID) (types.AbstractType, bool) { t, ok := tc.Vars[v]; return t, ok }
func (tc *TypingContext) Tmp(v ids.TmpID) (types.AbstractType, bool) { t, ok := tc.Tmps[v]; return t, ok }
func (tc *TypingContext) Fn(v ids.FnID) (types.AbstractType, bool)   { t, ok := tc.Fns[v]; return t, ok }
func (tc *TypingContext) TypeVar(v ids.TypeVarID) (types.AbstractType, bool) {
	t, ok := tc.TypeVars[v]
	return t, ok
}
