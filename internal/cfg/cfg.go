package cfg

// CFG is a function's control-flow graph: a slice of Nodes plus adjacency
// lists in both directions. Node 0 is always Start; the End node's ID is
// recorded separately since it is not necessarily the last one built (the
// return-trace verifier walks outward from it, spec §4.8).
type CFG struct {
	Nodes []Node
	out   [][]Edge
	in    [][]Edge
	Start NodeID
	End   NodeID
}

func newCFG() *CFG {
	return &CFG{}
}

func (g *CFG) addNode(n Node) NodeID {
	id := NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, n)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return id
}

func (g *CFG) addEdge(from, to NodeID, label EdgeLabel) {
	g.out[from] = append(g.out[from], Edge{To: to, Label: label})
	g.in[to] = append(g.in[to], Edge{To: from, Label: label})
}

// Node returns the Node at id.
func (g *CFG) Node(id NodeID) *Node { return &g.Nodes[id] }

// Out returns id's outgoing edges, in insertion order.
func (g *CFG) Out(id NodeID) []Edge { return g.out[id] }

// In returns id's incoming edges, in insertion order.
func (g *CFG) In(id NodeID) []Edge { return g.in[id] }

// Next returns the single outgoing edge's target. It panics if id does not
// have exactly one outgoing edge — mirroring the reference CFG::next(),
// which is only ever called on nodes known to be single-successor
// (everything except Condition/Return/Break/Continue/End).
func (g *CFG) Next(id NodeID) NodeID {
	if len(g.out[id]) != 1 {
		panic("cfg: Next() called on a node without exactly one successor")
	}
	return g.out[id][0].To
}

// Previous returns the single incoming edge's source, panicking otherwise.
func (g *CFG) Previous(id NodeID) NodeID {
	if len(g.in[id]) != 1 {
		panic("cfg: Previous() called on a node without exactly one predecessor")
	}
	return g.in[id][0].To
}

// BeforeBranchMerge returns every predecessor of a BranchMerge node.
func (g *CFG) BeforeBranchMerge(id NodeID) []NodeID {
	if g.Nodes[id].Kind != NodeBranchMerge {
		panic("cfg: BeforeBranchMerge() called on a non-BranchMerge node")
	}
	out := make([]NodeID, len(g.in[id]))
	for i, e := range g.in[id] {
		out[i] = e.To
	}
	return out
}

// TrueEdge/FalseEdge return the successor reached by the given label from a
// Condition or LoopHead node.
func (g *CFG) TrueEdge(id NodeID) NodeID  { return g.labeledEdge(id, EdgeTrue) }
func (g *CFG) FalseEdge(id NodeID) NodeID { return g.labeledEdge(id, EdgeFalse) }

func (g *CFG) labeledEdge(id NodeID, label EdgeLabel) NodeID {
	for _, e := range g.out[id] {
		if e.Label == label {
			return e.To
		}
	}
	panic("cfg: no edge with the requested label")
}

// AfterLoopFoot returns the successor of a LoopFoot along its Normal
// (loop-exit) edge, as opposed to its BackEdge back to the LoopHead.
func (g *CFG) AfterLoopFoot(id NodeID) NodeID {
	if g.Nodes[id].Kind != NodeLoopFoot {
		panic("cfg: AfterLoopFoot() called on a non-LoopFoot node")
	}
	return g.labeledEdge(id, EdgeNormal)
}
