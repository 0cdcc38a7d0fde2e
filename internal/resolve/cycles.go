package resolve

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/types"
)

// checkCycles runs once, globally, after pass 2's barrier: a DFS over every
// record's field types, descending through a nested App naming another
// record but not through Array or Function indirection (SPEC_FULL.md §4
// "enabled" decision). Runs before pass 3 since a cyclic record would make
// FullyResolve loop forever during type checking otherwise
// (internal/types/substitution.go's rewrite takes a visited-constructor set,
// but Substitute always passes it empty, so this check is the one that keeps
// cyclic records out).
func checkCycles(st *state, mods []*moduleCtx) error {
	visiting := make(map[ids.TypeID]bool)
	done := make(map[ids.TypeID]bool)

	var visit func(id ids.TypeID) error
	visit = func(id ids.TypeID) error {
		if done[id] {
			return nil
		}
		if visiting[id] {
			return errs.New(errs.TypeCyclicType, errs.PhaseModuleResolve, errs.Dummy(),
				fmt.Sprintf("type %s is cyclic through its own fields", id), map[string]any{"type": id})
		}
		tc, ok := st.u.Lookup(id)
		if !ok || tc.Kind != types.ConsRecord {
			done[id] = true
			return nil
		}
		visiting[id] = true
		for _, ft := range tc.Fields {
			if ft.Kind == types.AbsApp {
				if err := visit(ft.TypeCons); err != nil {
					return err
				}
			}
		}
		visiting[id] = false
		done[id] = true
		return nil
	}

	for _, mc := range mods {
		if mc == nil {
			continue
		}
		for _, id := range mc.ownTypeIDs {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}
