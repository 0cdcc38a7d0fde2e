package resolve

import (
	"github.com/smpl-lang/smplc/internal/cfg"
	"github.com/smpl-lang/smplc/internal/check"
	"github.com/smpl-lang/smplc/internal/typedast"
	"github.com/smpl-lang/smplc/internal/universe"
)

// analyzeModule runs pass 3 for one module: the sequential
// resolve-check-verify pipeline (internal/check.AnalyzeFunction) over every
// user function it declares, then a post-hoc scan observing whether any of
// them bound a builtin function's bare value to a variable
// (Program.Features["function_value"], SPEC_FULL.md §4(d)).
//
// "Parallel analysis of multiple functions" is excluded by spec's
// Non-goals only within one function's own sequential pipeline
// (resolve scopes -> check -> verify); independent top-level functions
// across the whole program may still run concurrently here, which is what
// Run's flat errgroup sweep over modules already achieves at the
// module level. A function's own three phases never run concurrently with
// each other.
func analyzeModule(st *state, mc *moduleCtx) error {
	for _, fnID := range mc.ownFnIDs {
		entry, ok := st.u.Function(fnID)
		if !ok || entry.State != universe.FnSMPLUser {
			continue
		}
		if err := check.AnalyzeFunction(st.u, st.meta, mc.id, entry); err != nil {
			return err
		}
		observeFunctionValue(st, entry.CFG)
	}
	return nil
}

// observeFunctionValue scans graph for a local-var or assignment whose
// whole initializer is a bare reference to a builtin function (not a call
// to it), setting Program.Features["function_value"] the first time one is
// found.
func observeFunctionValue(st *state, graph *cfg.CFG) {
	_ = graph.WalkForward(graph.Start, func(id cfg.NodeID) error {
		n := graph.Node(id)
		if n.Kind != cfg.NodeBasicBlock {
			return nil
		}
		for _, b := range n.Blocks {
			var expr *typedast.Expression
			switch blk := b.(type) {
			case *typedast.LocalVarDeclNode:
				expr = blk.Init
			case *typedast.AssignmentNode:
				expr = blk.Value
			}
			if expr == nil {
				continue
			}
			root, ok := expr.Get(expr.Root)
			if !ok {
				continue
			}
			if root.Value.BindingKind == typedast.BindingFn && st.meta.Builtin[root.Value.Fn] {
				st.setFeature("function_value")
			}
		}
		return nil
	})
}
