package universe

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/cfg"
	"github.com/smpl-lang/smplc/internal/checkctx"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/scope"
	"github.com/smpl-lang/smplc/internal/types"
)

// FunctionState discriminates FunctionEntry's variant (spec §3 "Universe").
type FunctionState int

const (
	FnSMPLUser FunctionState = iota
	FnBuiltin
	FnAnonReserved
	FnAnonResolved
)

// FunctionEntry is the universe's owned record for one FnID. Only the
// fields relevant to State are populated; AnonReserved carries just the
// unresolved AST, AnonResolved and SMPLUser carry the full analysis
// context, and Builtin carries its TypeID and declaration.
type FunctionEntry struct {
	ID    ids.FnID
	Name  string
	State FunctionState

	// Shared by FnSMPLUser and FnAnonResolved.
	TypeID       ids.TypeID // the Function constructor's TypeID
	Body         *ast.Block
	RootScope    *scope.ScopedData
	TypingCtx    *checkctx.TypingContext
	CFG          *cfg.CFG
	Existentials []ids.TypeVarID
	ReturnType   *types.AbstractType
	ParamVars    []ids.VarID

	// FnBuiltin
	Decl *ast.BuiltinFunctionDecl

	// FnAnonReserved
	ReservedAST *ast.AnonymousFnExpr
}

// ReserveAnon implements typedast.AnonReserver: it mints a fresh FnID and
// records fn's AST in the Reserved state. Elaboration (internal/check)
// later builds the nested function "under the current scope and typing
// context" — i.e. whatever scope/context the checker holds at the moment it
// first visits the AnonymousFn(fn_id) temporary (spec §4.9 step 1), not
// anything captured here at reservation time. internal/check's elaborator
// transitions the slot to Resolved before recursing, so it is never
// observed Reserved by a second type-checking visit (spec §5 point 3, §9).
func (u *Universe) ReserveAnon(fn ast.AnonymousFnExpr) ids.FnID {
	id := u.Counters.NewFnID()
	entry := &FunctionEntry{ID: id, State: FnAnonReserved, ReservedAST: &fn}
	u.DefineFunction(id, entry)
	return id
}

// ResolveAnon transitions a Reserved anonymous function to Resolved,
// atomically with respect to the universe's mutex, and returns the entry so
// the caller can continue by recursively analyzing it (spec §4.9 step 4-5).
func (u *Universe) ResolveAnon(id ids.FnID, typeID ids.TypeID, body *ast.Block, root *scope.ScopedData, tctx *checkctx.TypingContext, graph *cfg.CFG, ret types.AbstractType, params []ids.VarID) *FunctionEntry {
	u.mu.Lock()
	defer u.mu.Unlock()
	entry := u.functions[id]
	entry.State = FnAnonResolved
	entry.TypeID = typeID
	entry.Body = body
	entry.RootScope = root
	entry.TypingCtx = tctx
	entry.CFG = graph
	entry.ReturnType = &ret
	entry.ParamVars = params
	return entry
}
