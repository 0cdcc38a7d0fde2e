package check

import (
	"github.com/smpl-lang/smplc/internal/cfg"
	"github.com/smpl-lang/smplc/internal/errs"
)

// verifyReturns implements the return-trace verifier (spec §4.8), grounded
// directly on the original's fn_analyzer.rs return_trace/return_check_id: a
// backward walk starting at End's predecessor, the function's own
// ExitScope. Return satisfies a path outright; BranchMerge requires every
// one of its predecessors (via BeforeBranchMerge) to satisfy; ExitScope (the
// function's own, or a nested lexical block closing) defers to its sole
// predecessor. Any other node kind reached backward means some path never
// reaches a Return, so the walk fails there immediately — which is exactly
// the outcome "every backward path must reach Return" demands, since a
// first failing predecessor already dooms the BranchMerge (or the whole
// walk) that depends on it. For a unit-returning function the builder has
// already inserted an implicit Return directly before the outer ExitScope,
// so the walk reaches it on the second step and the check is trivially
// satisfied.
func verifyReturns(graph *cfg.CFG, span errs.Span) error {
	start := graph.Previous(graph.End)
	stack := []cfg.NodeID{start}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch graph.Node(id).Kind {
		case cfg.NodeReturn:
			// This path is satisfied; nothing further to push.
		case cfg.NodeBranchMerge:
			stack = append(stack, graph.BeforeBranchMerge(id)...)
		case cfg.NodeExitScope:
			stack = append(stack, graph.Previous(id))
		default:
			return errs.New(errs.ControlFlowMissingReturn, errs.PhaseReturnTrace, span,
				"not all paths return a value", nil)
		}
	}
	return nil
}
