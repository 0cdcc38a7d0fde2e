package cfg

import (
	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/typedast"
)

// Builder produces a single CFG per function (spec §4.6). Declarations,
// assignments, and bare expressions coalesce into a single BasicBlock until
// interrupted by control flow, at which point the block is flushed.
type Builder struct {
	counters  *ids.Counters
	flattener *typedast.Flattener
	graph     *CFG

	loopStack []loopFrame
}

type loopFrame struct {
	id   ids.LoopID
	head NodeID
	foot NodeID
}

// NewBuilder constructs a Builder that mints fresh BranchingID/LoopID values
// from counters and flattens expressions with flattener.
func NewBuilder(counters *ids.Counters, flattener *typedast.Flattener) *Builder {
	return &Builder{counters: counters, flattener: flattener}
}

// Build produces the CFG for a function body (spec §4.6's wrapping policy:
// Start -> EnterScope -> body -> [implicit Return if unit] -> ExitScope ->
// End).
func (b *Builder) Build(body ast.Block, unitReturn bool) (*CFG, error) {
	b.graph = newCFG()
	start := b.graph.addNode(Node{Kind: NodeStart})
	b.graph.Start = start

	enter := b.graph.addNode(Node{Kind: NodeEnterScope})
	b.graph.addEdge(start, enter, EdgeNormal)

	last, pendingBlock, err := b.buildStmts(body.Stmts, enter, nil)
	if err != nil {
		return nil, err
	}

	if unitReturn {
		last, pendingBlock = b.flushBlock(last, pendingBlock)
		ret := b.graph.addNode(Node{Kind: NodeReturn})
		b.graph.addEdge(last, ret, EdgeNormal)
		last = ret
	} else {
		last, pendingBlock = b.flushBlock(last, pendingBlock)
	}

	exit := b.graph.addNode(Node{Kind: NodeExitScope})
	b.graph.addEdge(last, exit, EdgeNormal)

	end := b.graph.addNode(Node{Kind: NodeEnd})
	b.graph.addEdge(exit, end, EdgeNormal)
	b.graph.End = end

	return b.graph, nil
}

// flushBlock appends the pending BasicBlock (if non-empty) as a node linked
// after prev, returning the new current tail.
func (b *Builder) flushBlock(prev NodeID, pending []typedast.BlockNode) (NodeID, []typedast.BlockNode) {
	if len(pending) == 0 {
		return prev, pending
	}
	node := b.graph.addNode(Node{Kind: NodeBasicBlock, Blocks: pending})
	b.graph.addEdge(prev, node, EdgeNormal)
	return node, nil
}

// buildStmts threads a sequence of statements onto the graph starting after
// prev, returning the new tail and any still-pending (unflushed) basic-block
// contents.
func (b *Builder) buildStmts(stmts []ast.Stmt, prev NodeID, pending []typedast.BlockNode) (NodeID, []typedast.BlockNode, error) {
	for _, stmt := range stmts {
		var err error
		prev, pending, err = b.buildStmt(stmt, prev, pending)
		if err != nil {
			return 0, nil, err
		}
	}
	return prev, pending, nil
}

func (b *Builder) buildStmt(stmt ast.Stmt, prev NodeID, pending []typedast.BlockNode) (NodeID, []typedast.BlockNode, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		expr := b.flattener.Flatten(s.Expr)
		return prev, append(pending, &typedast.ExprNode{Expr: expr}), nil

	case *ast.LocalVarDeclStmt:
		init := b.flattener.Flatten(s.Init)
		node := &typedast.LocalVarDeclNode{Name: s.Name, Type: s.Type, Init: init}
		return prev, append(pending, node), nil

	case *ast.AssignmentStmt:
		value := b.flattener.Flatten(s.Value)
		name, segs := b.buildLValue(s.Target)
		node := &typedast.AssignmentNode{TargetName: name, Segments: segs, Value: value}
		return prev, append(pending, node), nil

	case *ast.ReturnStmt:
		prev, pending = b.flushBlock(prev, pending)
		var retExpr *typedast.Expression
		if s.Value != nil {
			retExpr = b.flattener.Flatten(s.Value)
		}
		ret := b.graph.addNode(Node{Kind: NodeReturn, ReturnValue: retExpr})
		b.graph.addEdge(prev, ret, EdgeNormal)
		return ret, nil, nil

	case *ast.BreakStmt:
		if len(b.loopStack) == 0 {
			return 0, nil, errs.New(errs.ControlFlowBadBreak, errs.PhaseScopeResolve, s.SpanV,
				"break outside of a loop", nil)
		}
		prev, pending = b.flushBlock(prev, pending)
		loop := b.loopStack[len(b.loopStack)-1]
		brk := b.graph.addNode(Node{Kind: NodeBreak, LoopID: loop.id})
		b.graph.addEdge(prev, brk, EdgeNormal)
		b.graph.addEdge(brk, loop.foot, EdgeNormal)
		return brk, nil, nil

	case *ast.ContinueStmt:
		if len(b.loopStack) == 0 {
			return 0, nil, errs.New(errs.ControlFlowBadContinue, errs.PhaseScopeResolve, s.SpanV,
				"continue outside of a loop", nil)
		}
		prev, pending = b.flushBlock(prev, pending)
		loop := b.loopStack[len(b.loopStack)-1]
		cont := b.graph.addNode(Node{Kind: NodeContinue, LoopID: loop.id})
		b.graph.addEdge(prev, cont, EdgeNormal)
		b.graph.addEdge(cont, loop.foot, EdgeNormal)
		return cont, nil, nil

	case *ast.WhileStmt:
		return b.buildWhile(s, prev, pending)

	case *ast.IfStmt:
		return b.buildIf(s, prev, pending)

	default:
		panic("cfg: unhandled ast.Stmt variant")
	}
}

// buildWhile lowers `while cond { body }` into LoopHead/LoopFoot with a
// BackEdge, per spec §4.6.
func (b *Builder) buildWhile(s *ast.WhileStmt, prev NodeID, pending []typedast.BlockNode) (NodeID, []typedast.BlockNode, error) {
	prev, pending = b.flushBlock(prev, pending)

	loopID := b.counters.NewLoopID()
	cond := b.flattener.Flatten(s.Cond)
	head := b.graph.addNode(Node{Kind: NodeLoopHead, LoopID: loopID, Cond: cond})
	b.graph.addEdge(prev, head, EdgeNormal)

	foot := b.graph.addNode(Node{Kind: NodeLoopFoot, LoopID: loopID})
	b.graph.addEdge(foot, head, EdgeBackEdge)

	b.loopStack = append(b.loopStack, loopFrame{id: loopID, head: head, foot: foot})

	bodyEnter := b.graph.addNode(Node{Kind: NodeEnterScope})
	b.graph.addEdge(head, bodyEnter, EdgeTrue)

	bodyLast, bodyPending, err := b.buildStmts(s.Body.Stmts, bodyEnter, nil)
	if err != nil {
		return 0, nil, err
	}
	bodyLast, bodyPending = b.flushBlock(bodyLast, bodyPending)
	_ = bodyPending

	bodyExit := b.graph.addNode(Node{Kind: NodeExitScope})
	b.graph.addEdge(bodyLast, bodyExit, EdgeNormal)
	b.graph.addEdge(bodyExit, foot, EdgeNormal)

	b.graph.addEdge(head, foot, EdgeFalse)

	b.loopStack = b.loopStack[:len(b.loopStack)-1]

	return foot, nil, nil
}

// buildIf lowers an if/elif*/else? chain into a BranchSplit/Condition chain
// converging on a single BranchMerge (spec §4.6).
func (b *Builder) buildIf(s *ast.IfStmt, prev NodeID, pending []typedast.BlockNode) (NodeID, []typedast.BlockNode, error) {
	prev, pending = b.flushBlock(prev, pending)

	branchID := b.counters.NewBranchingID()
	merge := b.graph.addNode(Node{Kind: NodeBranchMerge, BranchID: branchID})

	cur := prev
	firstArm := true
	for _, arm := range s.Branches {
		split := b.graph.addNode(Node{Kind: NodeBranchSplit, BranchID: branchID})
		if firstArm {
			b.graph.addEdge(cur, split, EdgeNormal)
			firstArm = false
		} else {
			b.graph.addEdge(cur, split, EdgeFalse)
		}

		cond := b.flattener.Flatten(arm.Cond)
		condNode := b.graph.addNode(Node{Kind: NodeCondition, Cond: cond})
		b.graph.addEdge(split, condNode, EdgeNormal)

		armEnter := b.graph.addNode(Node{Kind: NodeEnterScope})
		b.graph.addEdge(condNode, armEnter, EdgeTrue)

		armLast, armPending, err := b.buildStmts(arm.Body.Stmts, armEnter, nil)
		if err != nil {
			return 0, nil, err
		}
		armLast, armPending = b.flushBlock(armLast, armPending)
		_ = armPending

		armExit := b.graph.addNode(Node{Kind: NodeExitScope})
		b.graph.addEdge(armLast, armExit, EdgeNormal)
		b.graph.addEdge(armExit, merge, EdgeNormal)

		// The False edge of this condition leads either into the next arm's
		// split (wired by the next loop iteration, via `cur`) or, after the
		// last arm, into the else branch / directly to merge below.
		cur = condNode
	}

	if s.Else != nil {
		elseEnter := b.graph.addNode(Node{Kind: NodeEnterScope})
		b.graph.addEdge(cur, elseEnter, EdgeFalse)

		elseLast, elsePending, err := b.buildStmts(s.Else.Stmts, elseEnter, nil)
		if err != nil {
			return 0, nil, err
		}
		elseLast, elsePending = b.flushBlock(elseLast, elsePending)
		_ = elsePending

		elseExit := b.graph.addNode(Node{Kind: NodeExitScope})
		b.graph.addEdge(elseLast, elseExit, EdgeNormal)
		b.graph.addEdge(elseExit, merge, EdgeNormal)
	} else {
		b.graph.addEdge(cur, merge, EdgeFalse)
	}

	return merge, nil, nil
}

// buildLValue walks a parsed assignment target down to its base identifier,
// flattening any index sub-expressions along the way so they type-check
// like any other expression (spec §4.7's assignment rule).
func (b *Builder) buildLValue(target ast.Expr) (string, []typedast.PathSegment) {
	switch n := target.(type) {
	case *ast.IdentExpr:
		return n.Name, nil
	case *ast.FieldAccessExpr:
		name, segs := b.buildLValue(n.Base)
		for _, field := range n.Path {
			segs = append(segs, typedast.PathSegment{Field: field})
		}
		return name, segs
	case *ast.IndexingExpr:
		name, segs := b.buildLValue(n.Base)
		idx := b.flattener.Flatten(n.Index)
		segs = append(segs, typedast.PathSegment{IsIndex: true, Index: idx})
		return name, segs
	default:
		panic("cfg: invalid assignment target")
	}
}
