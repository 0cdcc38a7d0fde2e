// Package cfg builds and queries the per-function control-flow graph (spec
// §4.6): basic blocks, branch splits/merges, loop heads/feet, and explicit
// scope entry/exit nodes, linked by labeled edges.
package cfg

import (
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/typedast"
)

// NodeID indexes a Node within a CFG's node slice.
type NodeID int

// NodeKind discriminates Node's variant (spec §3 "CFG").
type NodeKind int

const (
	NodeStart NodeKind = iota
	NodeEnd
	NodeEnterScope
	NodeExitScope
	NodeBasicBlock
	NodeBranchSplit
	NodeBranchMerge
	NodeCondition
	NodeLoopHead
	NodeLoopFoot
	NodeBreak
	NodeContinue
	NodeReturn
)

func (k NodeKind) String() string {
	switch k {
	case NodeStart:
		return "Start"
	case NodeEnd:
		return "End"
	case NodeEnterScope:
		return "EnterScope"
	case NodeExitScope:
		return "ExitScope"
	case NodeBasicBlock:
		return "BasicBlock"
	case NodeBranchSplit:
		return "BranchSplit"
	case NodeBranchMerge:
		return "BranchMerge"
	case NodeCondition:
		return "Condition"
	case NodeLoopHead:
		return "LoopHead"
	case NodeLoopFoot:
		return "LoopFoot"
	case NodeBreak:
		return "Break"
	case NodeContinue:
		return "Continue"
	case NodeReturn:
		return "Return"
	default:
		return "?"
	}
}

// Node is one vertex of a function's CFG. Only the fields relevant to Kind
// are populated.
type Node struct {
	Kind NodeKind

	// NodeBasicBlock
	Blocks []typedast.BlockNode

	// NodeBranchSplit / NodeBranchMerge
	BranchID ids.BranchingID

	// NodeCondition / NodeLoopHead
	Cond *typedast.Expression

	// NodeLoopHead / NodeLoopFoot / NodeBreak / NodeContinue
	LoopID ids.LoopID

	// NodeReturn; nil means a bare `return;`
	ReturnValue *typedast.Expression
}

// EdgeLabel discriminates an Edge's kind (spec §3).
type EdgeLabel int

const (
	EdgeNormal EdgeLabel = iota
	EdgeTrue
	EdgeFalse
	EdgeBackEdge
)

func (l EdgeLabel) String() string {
	switch l {
	case EdgeNormal:
		return "Normal"
	case EdgeTrue:
		return "True"
	case EdgeFalse:
		return "False"
	case EdgeBackEdge:
		return "BackEdge"
	default:
		return "?"
	}
}

// Edge is a directed, labeled arc between two nodes.
type Edge struct {
	To    NodeID
	Label EdgeLabel
}
