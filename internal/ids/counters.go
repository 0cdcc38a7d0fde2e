package ids

import "sync/atomic"

// Counters issues fresh, monotonically increasing IDs for all ten families.
// Every New*ID method is a total function: it always returns a value
// distinct from everything it has returned before, for the lifetime of the
// process. There is no reuse, because there is no deletion.
//
// Counters is safe for concurrent use: internal/resolve may analyze several
// independent modules concurrently (spec §5), and every one of them mints
// IDs from the same Counters instance.
type Counters struct {
	typeID      atomic.Int64
	typeParamID atomic.Int64
	typeVarID   atomic.Int64
	varID       atomic.Int64
	tmpID       atomic.Int64
	fieldID     atomic.Int64
	fnID        atomic.Int64
	moduleID    atomic.Int64
	loopID      atomic.Int64
	branchID    atomic.Int64
}

// NewCounters returns a Counters with every family starting at zero.
func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) NewTypeID() TypeID { return TypeID(c.typeID.Add(1) - 1) }

func (c *Counters) NewTypeParamID() TypeParamID { return TypeParamID(c.typeParamID.Add(1) - 1) }

func (c *Counters) NewTypeVarID() TypeVarID { return TypeVarID(c.typeVarID.Add(1) - 1) }

func (c *Counters) NewVarID() VarID { return VarID(c.varID.Add(1) - 1) }

func (c *Counters) NewTmpID() TmpID { return TmpID(c.tmpID.Add(1) - 1) }

func (c *Counters) NewFieldID() FieldID { return FieldID(c.fieldID.Add(1) - 1) }

func (c *Counters) NewFnID() FnID { return FnID(c.fnID.Add(1) - 1) }

func (c *Counters) NewModuleID() ModuleID { return ModuleID(c.moduleID.Add(1) - 1) }

func (c *Counters) NewLoopID() LoopID { return LoopID(c.loopID.Add(1) - 1) }

func (c *Counters) NewBranchingID() BranchingID { return BranchingID(c.branchID.Add(1) - 1) }
