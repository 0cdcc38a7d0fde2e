// Package ids defines the ten disjoint identifier families used throughout
// the analysis core. Each family is a distinct defined type so that, for
// example, a FnID can never be passed where a TypeID is expected without a
// compile error, even though both are backed by int64.
package ids

import "fmt"

// TypeID names a type constructor registered in the universe.
type TypeID int64

func (id TypeID) String() string { return fmt.Sprintf("Type#%d", int64(id)) }

// TypeParamID names a formal type parameter slot in a constructor's
// signature (the name the user wrote, e.g. "A" in Pair<A, B>).
type TypeParamID int64

func (id TypeParamID) String() string { return fmt.Sprintf("TypeParam#%d", int64(id)) }

// TypeVarID names a type hole: either the placeholder bound inside a type
// constructor's body, or a live entry in a function's typing context.
type TypeVarID int64

func (id TypeVarID) String() string { return fmt.Sprintf("TypeVar#%d", int64(id)) }

// VarID names a local variable or parameter binding.
type VarID int64

func (id VarID) String() string { return fmt.Sprintf("Var#%d", int64(id)) }

// TmpID names a temporary produced by the expression flattener.
type TmpID int64

func (id TmpID) String() string { return fmt.Sprintf("Tmp#%d", int64(id)) }

// FieldID names a single field slot of a record type constructor.
type FieldID int64

func (id FieldID) String() string { return fmt.Sprintf("Field#%d", int64(id)) }

// FnID names a function: user-defined, builtin, or anonymous.
type FnID int64

func (id FnID) String() string { return fmt.Sprintf("Fn#%d", int64(id)) }

// ModuleID names a parsed/resolved module.
type ModuleID int64

func (id ModuleID) String() string { return fmt.Sprintf("Module#%d", int64(id)) }

// LoopID names a single while-loop's head/foot pair within a CFG.
type LoopID int64

func (id LoopID) String() string { return fmt.Sprintf("Loop#%d", int64(id)) }

// BranchingID names a single if/elif/else split/merge pair within a CFG.
type BranchingID int64

func (id BranchingID) String() string { return fmt.Sprintf("Branch#%d", int64(id)) }
