// Package universe owns the process-wide state created once per compilation
// (spec §3): the ID counters, the TypeID->TypeConstructor and
// FnID->FunctionEntry and ModuleID->Module maps, and a name-to-ID index per
// module. It is populated by module resolution and read-mostly during type
// checking, except that anonymous-function elaboration mutates the
// FnID->FunctionEntry map and mints fresh TypeIDs (spec §4.9).
package universe

import (
	"sync"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/types"
)

// Universe is the per-process registrar. It is safe for concurrent use: the
// mutex serializes every mutation so independent modules can be analyzed
// concurrently (spec §5's "write-serialised by the driver").
type Universe struct {
	*ids.Counters

	mu sync.Mutex

	typeConstructors map[ids.TypeID]*types.TypeConstructor
	functions        map[ids.FnID]*FunctionEntry
	modules          map[ids.ModuleID]*ModuleEntry

	// typeNames[moduleID] and fnNames[moduleID] hold that module's
	// Path->TypeID and Path->FnID
	// bindings, keyed as plain strings (dotted paths) for simplicity.
	typeNames map[ids.ModuleID]map[string]ids.TypeID
	fnNames   map[ids.ModuleID]map[string]ids.FnID
}

// ModuleEntry pairs a resolved ModuleID with its originating AST and name.
type ModuleEntry struct {
	ID     ids.ModuleID
	Name   string
	Source *ast.Module
}

// New returns an empty Universe, ready for module resolution to populate.
func New() *Universe {
	return &Universe{
		Counters:         ids.NewCounters(),
		typeConstructors: make(map[ids.TypeID]*types.TypeConstructor),
		functions:        make(map[ids.FnID]*FunctionEntry),
		modules:          make(map[ids.ModuleID]*ModuleEntry),
		typeNames:        make(map[ids.ModuleID]map[string]ids.TypeID),
		fnNames:          make(map[ids.ModuleID]map[string]ids.FnID),
	}
}

// Lookup implements types.Registry.
func (u *Universe) Lookup(id ids.TypeID) (*types.TypeConstructor, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	tc, ok := u.typeConstructors[id]
	return tc, ok
}

// Register implements types.Registry: it mints a fresh TypeID for an
// applied type constructor (spec §4.5 step 4) and stores it.
func (u *Universe) Register(tc *types.TypeConstructor) ids.TypeID {
	u.mu.Lock()
	defer u.mu.Unlock()
	id := u.Counters.NewTypeID()
	u.typeConstructors[id] = tc
	return id
}

// DefineType registers a type constructor under a caller-chosen TypeID
// (used by module resolution, which reserves the ID before the
// constructor body is fully built — spec §4.3 steps 2 and 5).
func (u *Universe) DefineType(id ids.TypeID, tc *types.TypeConstructor) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.typeConstructors[id] = tc
}

// Function returns the FunctionEntry for fn, if registered.
func (u *Universe) Function(fn ids.FnID) (*FunctionEntry, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	f, ok := u.functions[fn]
	return f, ok
}

// DefineFunction stores (or replaces) a FunctionEntry under fn.
func (u *Universe) DefineFunction(fn ids.FnID, entry *FunctionEntry) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.functions[fn] = entry
}

// Module returns the ModuleEntry for mod, if registered.
func (u *Universe) Module(mod ids.ModuleID) (*ModuleEntry, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	m, ok := u.modules[mod]
	return m, ok
}

// DefineModule registers mod.
func (u *Universe) DefineModule(entry *ModuleEntry) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.modules[entry.ID] = entry
}

// BindType records that name resolves to id within mod's own declaration
// namespace (pre-import; import stitching copies entries across modules in
// internal/resolve).
func (u *Universe) BindType(mod ids.ModuleID, name string, id ids.TypeID) {
	u.mu.Lock()
	defer u.mu.Unlock()
	m := u.typeNames[mod]
	if m == nil {
		m = make(map[string]ids.TypeID)
		u.typeNames[mod] = m
	}
	m[name] = id
}

// LookupType looks up name within mod's namespace.
func (u *Universe) LookupType(mod ids.ModuleID, name string) (ids.TypeID, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	id, ok := u.typeNames[mod][name]
	return id, ok
}

// BindFn records that name resolves to fn within mod's own declaration
// namespace.
func (u *Universe) BindFn(mod ids.ModuleID, name string, fn ids.FnID) {
	u.mu.Lock()
	defer u.mu.Unlock()
	m := u.fnNames[mod]
	if m == nil {
		m = make(map[string]ids.FnID)
		u.fnNames[mod] = m
	}
	m[name] = fn
}

// LookupFn looks up name within mod's namespace.
func (u *Universe) LookupFn(mod ids.ModuleID, name string) (ids.FnID, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fn, ok := u.fnNames[mod][name]
	return fn, ok
}

// TypeNames returns a snapshot of mod's type namespace, for import stitching.
func (u *Universe) TypeNames(mod ids.ModuleID) map[string]ids.TypeID {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make(map[string]ids.TypeID, len(u.typeNames[mod]))
	for k, v := range u.typeNames[mod] {
		out[k] = v
	}
	return out
}

// FnNames returns a snapshot of mod's function namespace, for import
// stitching.
func (u *Universe) FnNames(mod ids.ModuleID) map[string]ids.FnID {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make(map[string]ids.FnID, len(u.fnNames[mod]))
	for k, v := range u.fnNames[mod] {
		out[k] = v
	}
	return out
}
