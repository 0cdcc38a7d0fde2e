package check

import (
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/universe"
)

// AnalyzeFunction runs the three sequential analysis phases spec §5 point 4
// demands for one already-built function (scope resolution, type checking,
// return-trace verification), aborting on the first failure. entry must
// already carry its CFG, root scope, typing context, and declared return
// type — internal/resolve builds those before calling in, seeding
// parameters into both the scope and the typing context exactly as
// bindParams does for a top-level function (spec §4.1 "Function").
func AnalyzeFunction(u *universe.Universe, meta *universe.Metadata, module ids.ModuleID, entry *universe.FunctionEntry) error {
	if err := resolveScopes(u.Counters, entry.CFG, entry.RootScope); err != nil {
		return err
	}

	c := NewChecker(u, meta, entry.TypingCtx, module, *entry.ReturnType)
	if err := c.CheckFunction(entry.RootScope, entry.CFG); err != nil {
		return err
	}

	return verifyReturns(entry.CFG, entry.Body.SpanV)
}
