package cfg

// WalkForward performs a single forward pass over the graph starting at id,
// invoking visit exactly once per reachable node. Crucially, a join node —
// a BranchMerge with one predecessor per arm, or a LoopFoot fed by the
// loop's body exit, its head's false edge, and any break/continue inside
// the body — is only visited once every one of its forward predecessors
// has arrived. A plain recursive DFS would instead follow one arm all the
// way past the join and off into the shared continuation before the
// sibling arm is ever visited, which is wrong for any visitor that threads
// state (e.g. a scope stack) across the walk: the continuation must see
// the state produced by ALL arms finishing, not whichever arm's recursion
// happened to get there first.
//
// Grounded on original_source's linear_cfg_traversal.rs Traverser, which
// walks the true path only as far as its own BranchMerge/LoopFoot, walks
// the false path the same way, and only resumes past the join once both
// have reached it. This generalizes that two-arm special case — the
// original hand-matches Node::BranchMerge/Node::LoopFoot inside the
// Condition handler — to an if/elif chain's arbitrarily many arms and to
// a LoopFoot's break/continue-fed predecessors uniformly, via a forward
// in-degree counter rather than per-call-site node-kind matching.
func (g *CFG) WalkForward(id NodeID, visit func(NodeID) error) error {
	pending := make([]int, len(g.Nodes))
	for i := range g.Nodes {
		n := 0
		for _, e := range g.in[i] {
			if e.Label != EdgeBackEdge {
				n++
			}
		}
		if n == 0 {
			// Start has no in-edge at all; it is reached by this call's id
			// argument directly rather than by an incoming edge.
			n = 1
		}
		pending[i] = n
	}
	visited := make([]bool, len(g.Nodes))
	return g.walk(id, pending, visited, visit)
}

func (g *CFG) walk(id NodeID, pending []int, visited []bool, visit func(NodeID) error) error {
	if visited[id] {
		return nil
	}
	pending[id]--
	if pending[id] > 0 {
		// Not every forward predecessor has arrived yet; the arm that
		// arrives last re-triggers the continuation below.
		return nil
	}
	visited[id] = true
	if err := visit(id); err != nil {
		return err
	}
	for _, e := range g.out[id] {
		if e.Label == EdgeBackEdge {
			continue
		}
		if err := g.walk(e.To, pending, visited, visit); err != nil {
			return err
		}
	}
	return nil
}
