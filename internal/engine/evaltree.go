package engine

import (
	"github.com/hailam/gomoku-engine/internal/board"
	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/tree"
)

// evalTree pairs a Search Tree of int16 scores with a Checked Board, kept
// in lockstep: every cursor move that changes which node is current is
// mirrored onto the board via Add/Undo, so the board under the cursor
// always reflects the position named by the cursor's path from the root.
type evalTree struct {
	inner       *tree.Tree[int16]
	rec         *board.Checked
	candTmpList []board.Candidate
	nodesWritten int
}

// newEvalTree builds an EvalTree rooted at rec's current position. rec is
// cloned, so the search can freely Add/Undo without disturbing the caller's
// board.
func newEvalTree(rec *board.Checked) *evalTree {
	t := tree.New[int16]()
	rec = rec.Clone()
	*t.CurInfoPtr() = rec.ScoreUnified()
	return &evalTree{
		inner:       t,
		rec:         rec,
		candTmpList: make([]board.Candidate, rec.Size()*rec.Size()),
	}
}

func (e *evalTree) curDepth() uint16       { return e.inner.CurDepth() }
func (e *evalTree) curIsLeaf() bool        { return e.inner.CurIsLeaf() }
func (e *evalTree) curHasDown() bool       { return e.inner.CurHasDown() }
func (e *evalTree) curHasRight() bool      { return e.inner.CurHasRight() }
func (e *evalTree) curCoord() coord.Coord  { return e.inner.CurCoord() }
func (e *evalTree) curVal() int16          { return e.inner.CurInfo() }
func (e *evalTree) curSetVal(v int16)      { *e.inner.CurInfoPtr() = v }

func (e *evalTree) downIsLeaf() (bool, bool) { return e.inner.DownIsLeaf() }
func (e *evalTree) downVal() (int16, bool)   { return e.inner.DownInfo() }

// curGotoRoot moves the cursor to the root, undoing every move added along
// the way back on the board.
func (e *evalTree) curGotoRoot() {
	prevDepth := e.curDepth()
	e.inner.CurGotoRoot()
	for i := uint16(0); i < prevDepth; i++ {
		if _, err := e.rec.Undo(); err != nil {
			panic(err)
		}
	}
}

// curGoUp moves the cursor to the parent and undoes the board move that the
// cursored node represented.
func (e *evalTree) curGoUp() error {
	if err := e.inner.CurGoUp(); err != nil {
		return err
	}
	if _, err := e.rec.Undo(); err != nil {
		panic(err)
	}
	return nil
}

// curBackTo walks up to the ancestor at coord c, undoing one board move per
// level climbed.
func (e *evalTree) curBackTo(c coord.Coord) (uint16, error) {
	dDepth, err := e.inner.CurBackTo(c)
	if err != nil {
		return 0, err
	}
	for i := uint16(0); i < dDepth; i++ {
		if _, err := e.rec.Undo(); err != nil {
			panic(err)
		}
	}
	return dDepth, nil
}

// curGoDown moves the cursor to the first child and plays its coordinate on
// the board.
func (e *evalTree) curGoDown() error {
	if err := e.inner.CurGoDown(); err != nil {
		return err
	}
	if err := e.rec.Add(e.curCoord()); err != nil {
		panic(err)
	}
	return nil
}

// curGoRight moves the cursor to the right sibling: undoes the current
// node's move, then plays the sibling's.
func (e *evalTree) curGoRight() error {
	if err := e.inner.CurGoRight(); err != nil {
		return err
	}
	if _, err := e.rec.Undo(); err != nil {
		panic(err)
	}
	if err := e.rec.Add(e.curCoord()); err != nil {
		panic(err)
	}
	return nil
}

// curSetNext plays c on the board, then positions the cursor on a matching
// child, scoring it fresh only if the child is newly created — an existing
// child keeps whatever score a prior search cycle already computed for it.
func (e *evalTree) curSetNext(c coord.Coord) error {
	if err := e.rec.Add(c); err != nil {
		return err
	}
	_, existed := e.inner.CurFindNext(c)
	e.inner.CurSetNext(c)
	if !existed {
		e.curSetVal(e.rec.ScoreUnified())
	}
	return nil
}

// curDelete deletes the cursored subtree and moves up, undoing the board
// move for every level the cursor had descended below its parent.
func (e *evalTree) curDelete() {
	prevDepth := e.curDepth()
	e.inner.CurDelete()
	if prevDepth > 0 {
		if _, err := e.rec.Undo(); err != nil {
			panic(err)
		}
	}
}

func (e *evalTree) compress() { e.inner.Compress() }

func (e *evalTree) ramUsed() uintptr { return e.inner.RAMUsed() }

// curExpand writes up to cntMax candidates at the cursored node's board
// position and installs them as its children.
func (e *evalTree) curExpand(cntMax int) int {
	if cntMax > len(e.candTmpList) {
		cntMax = len(e.candTmpList)
	}
	out := e.candTmpList[:cntMax]
	n := e.rec.WriteCandidates(out)
	group := make([]tree.Child[int16], n)
	for i := 0; i < n; i++ {
		group[i] = tree.Child[int16]{Coord: out[i].Coord, Info: out[i].Score}
	}
	e.inner.CurSetChildren(group)
	e.nodesWritten += n
	return n
}

// nodes returns the running count of tree nodes this EvalTree has written
// via curExpand, used only for search-progress logging.
func (e *evalTree) nodes() int { return e.nodesWritten }

// curExpandDepth expands the cursored node, then recursively does the same
// to every child, down to a relative depth, cntMax children wide at each
// level.
func (e *evalTree) curExpandDepth(cntMax, depth int) {
	if depth == 0 {
		return
	}
	e.curExpand(cntMax)
	if depth == 1 {
		return
	}
	if err := e.curGoDown(); err != nil {
		return
	}
	for {
		e.curExpandDepth(cntMax, depth-1)
		if err := e.curGoRight(); err != nil {
			break
		}
	}
	if err := e.curGoUp(); err != nil {
		panic(err)
	}
}

// curOrderMinimax does a postorder traversal under the cursored node,
// determining every internal node's value from its best child and
// reordering that child to the front, then returns the cursor to its
// starting position.
//
// WriteCandidates already sorts each node's children best-first, so a
// "pre-leaf" node — one whose first child is itself a leaf — can just take
// that first child's value verbatim with no comparison; true minimax
// reordering happens one level above the leaves, where tree.CurFindMaxChild /
// tree.CurFindMinChild pick the real best child among several fully-scored
// subtrees.
//
// Must be called right after curExpandDepth.
func (e *evalTree) curOrderMinimax() {
	if e.curIsLeaf() {
		return
	}
	var stack tree.Stack[coord.Coord]
	for {
		for {
			isLeaf, ok := e.downIsLeaf()
			if !ok {
				panic("order_minimax: cursored node has no children")
			}
			if isLeaf {
				break
			}
			stack.Push(e.curCoord())
			if err := e.curGoDown(); err != nil {
				panic(err)
			}
		}

		v, ok := e.downVal()
		if !ok {
			panic("order_minimax: pre-leaf node has no children")
		}
		e.curSetVal(v)

		for {
			if err := e.curGoRight(); err == nil {
				break
			}
			upper, ok := stack.Pop()
			if !ok {
				return
			}
			if _, err := e.curBackTo(upper); err != nil {
				panic(err)
			}

			blackToMove := e.rec.ColorNext() == coord.Black
			var newLeft coord.Coord
			var leftVal int16
			var found bool
			if blackToMove {
				newLeft, leftVal, found = tree.CurFindMaxChild(e.inner)
			} else {
				newLeft, leftVal, found = tree.CurFindMinChild(e.inner)
			}
			if found {
				e.inner.CurAdjLeftChild(newLeft)
				e.curSetVal(leftVal)
			}
		}
	}
}

// curCutBranches descends cutDepth relative levels, deleting the siblings
// of every node reached along the way, then returns to the starting node.
//
// May be called after curOrderMinimax.
func (e *evalTree) curCutBranches(cutDepth int) {
	prevDepth := e.curDepth()
	for i := 0; i < cutDepth; i++ {
		if err := e.curGoDown(); err != nil {
			break
		}
		e.inner.CurDeleteSiblings()
	}
	for e.curDepth() > prevDepth {
		if err := e.curGoUp(); err != nil {
			panic(err)
		}
	}
}

// curReduceBranches repeatedly deletes the cursored node's worst child —
// by the color to move there, white's worst is its max-scoring child,
// black's worst its min-scoring one — until at most targetDeg remain.
func (e *evalTree) curReduceBranches(targetDeg int) {
	curDeg := e.inner.CurGetDegree()
	for curDeg > targetDeg {
		blackToMove := e.rec.ColorNext() == coord.Black
		var worst coord.Coord
		var found bool
		if blackToMove {
			worst, _, found = tree.CurFindMinChild(e.inner)
		} else {
			worst, _, found = tree.CurFindMaxChild(e.inner)
		}
		if !found {
			return
		}
		if err := e.curSetNext(worst); err != nil {
			panic(err)
		}
		e.curDelete()
		curDeg--
	}
}
