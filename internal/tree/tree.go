package tree

import (
	"cmp"
	"unsafe"

	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/gerr"
)

// curSeqMaxCnt bounds the cursor's root-to-node path, regardless of board
// size: the largest supported board is 26x26 plus up to 16 passes.
const curSeqMaxCnt = 26*26 + 16

// node is a tree node: a coordinate, a carried payload, an optional
// first child and an optional right sibling.
type node[T any] struct {
	Coord coord.Coord
	Info  T
	down  NodePtrOpt
	right NodePtrOpt
}

func newNode[T any]() node[T] {
	var n node[T]
	n.Coord = coord.Null()
	n.down = noneOpt()
	n.right = noneOpt()
	return n
}

// Child names one entry of a replacement child list for Tree.CurSetChildren.
type Child[T any] struct {
	Coord coord.Coord
	Info  T
}

// Tree is a general tree of (Coord, T) nodes navigated through a cursor.
// It is single-threaded: at any time the cursor sits at exactly one node,
// and every method acts relative to it.
//
// The tree doesn't check for repeated coordinates along any route.
// Compress clears nodes orphaned by deletion out of the bump arena.
type Tree[T any] struct {
	storage *nodeStore[node[T]]
	root    NodePtr
	cur     NodePtr
	curSeq  []NodePtr // valid up to index curDep
	curDep  uint16
}

// New creates an empty tree with the cursor at the root node.
func New[T any]() *Tree[T] {
	storage := newNodeStore[node[T]]()
	root := storage.store(newNode[T]())
	seq := make([]NodePtr, curSeqMaxCnt)
	for i := range seq {
		seq[i] = root
	}
	return &Tree[T]{storage: storage, root: root, cur: root, curSeq: seq, curDep: 0}
}

// RAMUsed returns the tree's approximate RAM usage, including the bump
// arena. It does not count any heap usage owned by T.
func (t *Tree[T]) RAMUsed() uintptr {
	return unsafe.Sizeof(*t) + t.storage.ramUsed()
}

func (t *Tree[T]) access(ptr NodePtr) *node[T] { return t.storage.get(ptr) }

func (t *Tree[T]) newNode() NodePtr { return t.storage.store(newNode[T]()) }

func (t *Tree[T]) curNode() *node[T] { return t.access(t.cur) }

// CurDepth returns the cursor's depth; the root is depth 0.
func (t *Tree[T]) CurDepth() uint16 { return t.curDep }

// CurCoord returns the cursored node's coordinate.
func (t *Tree[T]) CurCoord() coord.Coord { return t.curNode().Coord }

// CurInfo returns a copy of the cursored node's payload.
func (t *Tree[T]) CurInfo() T { return t.curNode().Info }

// CurInfoPtr returns a mutable pointer to the cursored node's payload.
func (t *Tree[T]) CurInfoPtr() *T { return &t.curNode().Info }

// CurIsLeaf reports whether the cursored node has no children.
func (t *Tree[T]) CurIsLeaf() bool { return t.curNode().down.IsNone() }

// CurHasDown reports whether the cursored node has at least one child.
func (t *Tree[T]) CurHasDown() bool { return t.curNode().down.IsSome() }

// CurHasRight reports whether the cursored node has a right sibling.
func (t *Tree[T]) CurHasRight() bool { return t.curNode().right.IsSome() }

// DownIsLeaf reports whether the cursored node's first child is itself a
// leaf. The second return is false if there is no first child.
func (t *Tree[T]) DownIsLeaf() (bool, bool) {
	down, ok := t.curNode().down.Get()
	if !ok {
		return false, false
	}
	return t.access(down).down.IsNone(), true
}

// DownInfo returns the payload of the cursored node's first child.
func (t *Tree[T]) DownInfo() (T, bool) {
	down, ok := t.curNode().down.Get()
	if !ok {
		var zero T
		return zero, false
	}
	return t.access(down).Info, true
}

// CurGetDegree returns the number of children of the cursored node.
func (t *Tree[T]) CurGetDegree() int {
	down, ok := t.curNode().down.Get()
	if !ok {
		return 0
	}
	degree := 1
	cur := t.access(down)
	for {
		right, ok := cur.right.Get()
		if !ok {
			return degree
		}
		cur = t.access(right)
		degree++
	}
}

// CurGotoRoot moves the cursor to the root node.
func (t *Tree[T]) CurGotoRoot() {
	t.cur = t.root
	t.curDep = 0
}

// CurGoUp moves the cursor to the parent node, or fails with
// ErrCursorAtEnd if already at the root.
func (t *Tree[T]) CurGoUp() error {
	if t.curDep == 0 {
		return gerr.ErrCursorAtEnd
	}
	t.curDep--
	t.cur = t.curSeq[t.curDep]
	return nil
}

// CurBackTo walks up the current route until a node of c is found,
// leaving the cursor there and returning how many levels it moved. It
// fails with ErrItemNotExist, without moving the cursor, if c does not
// appear on the current route.
func (t *Tree[T]) CurBackTo(c coord.Coord) (uint16, error) {
	for i := int(t.curDep); i >= 0; i-- {
		if t.access(t.curSeq[i]).Coord == c {
			dDepth := t.curDep - uint16(i)
			for t.curDep > uint16(i) {
				if err := t.CurGoUp(); err != nil {
					panic(err)
				}
			}
			return dDepth, nil
		}
	}
	return 0, gerr.ErrItemNotExist
}

// CurGoDown moves the cursor to the first child, or fails with
// ErrCursorAtEnd if the cursored node is a leaf.
func (t *Tree[T]) CurGoDown() error {
	down, ok := t.curNode().down.Get()
	if !ok {
		return gerr.ErrCursorAtEnd
	}
	t.cur = down
	t.curDep++
	t.curSeq[t.curDep] = t.cur
	return nil
}

// CurGoRight moves the cursor to the right sibling, or fails with
// ErrCursorAtEnd if the cursored node is the rightmost one.
func (t *Tree[T]) CurGoRight() error {
	right, ok := t.curNode().right.Get()
	if !ok {
		return gerr.ErrCursorAtEnd
	}
	t.cur = right
	t.curSeq[t.curDep] = t.cur
	return nil
}

// CurFindNext returns the payload of the child with coordinate c, if any.
func (t *Tree[T]) CurFindNext(c coord.Coord) (T, bool) {
	down, ok := t.curNode().down.Get()
	if !ok {
		var zero T
		return zero, false
	}
	tmp := t.access(down)
	for tmp.Coord != c {
		right, ok := tmp.right.Get()
		if !ok {
			var zero T
			return zero, false
		}
		tmp = t.access(right)
	}
	return tmp.Info, true
}

// CurFindMaxChildBy returns the coordinate and payload of the child that
// maximizes under less: the child is replaced whenever less(current
// best, candidate) holds.
func (t *Tree[T]) CurFindMaxChildBy(less func(a, b T) bool) (coord.Coord, T, bool) {
	down, ok := t.curNode().down.Get()
	if !ok {
		var zero T
		return coord.Null(), zero, false
	}
	best := t.access(down)
	cur := best
	for {
		right, ok := cur.right.Get()
		if !ok {
			break
		}
		cur = t.access(right)
		if less(best.Info, cur.Info) {
			best = cur
		}
	}
	return best.Coord, best.Info, true
}

// CurFindMinChild returns the coordinate and payload of the smallest
// child under T's natural order.
func CurFindMinChild[T cmp.Ordered](t *Tree[T]) (coord.Coord, T, bool) {
	return t.CurFindMaxChildBy(func(a, b T) bool { return b < a })
}

// CurFindMaxChild returns the coordinate and payload of the largest
// child under T's natural order.
func CurFindMaxChild[T cmp.Ordered](t *Tree[T]) (coord.Coord, T, bool) {
	return t.CurFindMaxChildBy(func(a, b T) bool { return a < b })
}

// CurSetNext positions the cursor on a child with coordinate c, creating
// one (as the rightmost child) if none existed yet.
func (t *Tree[T]) CurSetNext(c coord.Coord) {
	if err := t.CurGoDown(); err != nil {
		n := t.newNode()
		t.curNode().down.Replace(n)
		if err := t.CurGoDown(); err != nil {
			panic(err)
		}
	} else {
		for t.CurCoord() != c {
			if err := t.CurGoRight(); err != nil {
				break
			}
		}
		if t.CurCoord() == c {
			return
		}
		n := t.newNode()
		t.curNode().right.Replace(n)
		if err := t.CurGoRight(); err != nil {
			panic(err)
		}
	}
	t.curNode().Coord = c
}

// CurAdjLeftChild promotes the child named coord to the first-child
// position, if it exists among the cursored node's children.
func (t *Tree[T]) CurAdjLeftChild(c coord.Coord) {
	if t.CurGoDown() != nil {
		return
	}
	if t.CurCoord() == c {
		if err := t.CurGoUp(); err != nil {
			panic(err)
		}
		return
	}
	pLeft := t.cur
	for t.CurGoRight() == nil {
		if t.CurCoord() == c {
			pCur := t.cur
			pRight := t.curNode().right
			t.access(pLeft).right = pRight
			if err := t.CurGoUp(); err != nil {
				panic(err)
			}
			prevLeftmost := t.curNode().down
			t.access(pCur).right = prevLeftmost
			t.curNode().down.Replace(pCur)
			return
		}
		pLeft = t.cur
	}
}

// CurSetChildren replaces all children of the cursored node with group,
// in order. It does not check group for repeated coordinates.
func (t *Tree[T]) CurSetChildren(group []Child[T]) {
	if t.CurGoDown() == nil {
		if err := t.CurGoUp(); err != nil {
			panic(err)
		}
		t.curNode().down.Take()
	}

	if len(group) == 0 {
		return
	}
	first := group[0]
	t.CurSetNext(first.Coord)
	t.curNode().Info = first.Info

	for _, ch := range group[1:] {
		n := t.newNode()
		t.curNode().right.Replace(n)
		if err := t.CurGoRight(); err != nil {
			panic(err)
		}
		cur := t.curNode()
		cur.Coord = ch.Coord
		cur.Info = ch.Info
	}

	if err := t.CurGoUp(); err != nil {
		panic(err)
	}
}

// CurDelete deletes the cursored node and its descendants, then moves to
// the parent. On the root node, it resets the root's payload to its zero
// value instead (the root itself can never be deleted) and leaves the
// root's children untouched.
func (t *Tree[T]) CurDelete() {
	cur := t.cur
	right, hasRight := t.curNode().right.Take()

	if err := t.CurGoUp(); err != nil {
		var zero T
		t.curNode().Info = zero
		return
	}
	if t.curNode().down.EqPtr(cur) {
		t.curNode().down.Set(right, hasRight)
		return
	}
	if err := t.CurGoDown(); err != nil {
		panic(err)
	}
	for !t.curNode().right.EqPtr(cur) {
		if err := t.CurGoRight(); err != nil {
			panic(err)
		}
	}
	t.curNode().right.Set(right, hasRight)
	if err := t.CurGoUp(); err != nil {
		panic(err)
	}
}

// CurDeleteSiblings deletes the left and right siblings of the cursored
// node, which becomes its parent's only child.
func (t *Tree[T]) CurDeleteSiblings() {
	if t.CurDepth() == 0 {
		return
	}
	t.curNode().right = noneOpt()
	cur := t.cur
	if err := t.CurGoUp(); err != nil {
		panic(err)
	}
	t.curNode().down.Replace(cur)
	if err := t.CurGoDown(); err != nil {
		panic(err)
	}
}

// EnterSeq walks from the root, creating nodes as needed, along the
// route named by coords.
func (t *Tree[T]) EnterSeq(coords []coord.Coord) {
	t.CurGotoRoot()
	for _, c := range coords {
		t.CurSetNext(c)
	}
}

// Compress rebuilds the bump arena by cloning the tree preorder into a
// fresh one, reclaiming slots orphaned by CurDelete. Peak RAM may
// momentarily double during compression.
func (t *Tree[T]) Compress() {
	*t = *t.clone()
}

// Clear returns the cursor to the root, resets the root's payload to its
// zero value and compresses the arena.
//
// Note: CurDelete at the root only resets the root's payload; it does
// not detach the root's children (see CurDelete). Compress then clones
// from the root forward, so those children survive the clear.
func (t *Tree[T]) Clear() {
	t.CurGotoRoot()
	t.CurDelete()
	t.Compress()
}

func (t *Tree[T]) clone() *Tree[T] {
	seqCoords := make([]coord.Coord, 0, t.curDep)
	for i := 1; i <= int(t.curDep); i++ {
		seqCoords = append(seqCoords, t.access(t.curSeq[i]).Coord)
	}

	newTree := New[T]()
	newTree.curNode().Info = t.curNode().Info

	type frame struct {
		depth uint16
		node  *node[T]
	}
	var stack Stack[frame]
	cur := t.access(t.root)
	curDepth := uint16(0)

	for {
		if down, ok := cur.down.Get(); ok {
			if right, ok := cur.right.Get(); ok {
				stack.Push(frame{curDepth, t.access(right)})
			}
			cur = t.access(down)
			curDepth++
		} else if right, ok := cur.right.Get(); ok {
			cur = t.access(right)
			if err := newTree.CurGoUp(); err != nil {
				panic(err)
			}
		} else if top, ok := stack.Pop(); ok {
			cur = top.node
			curDepth = top.depth
			for newTree.CurDepth() > curDepth-1 {
				if err := newTree.CurGoUp(); err != nil {
					panic(err)
				}
			}
		} else {
			break
		}

		newTree.CurSetNext(cur.Coord)
		newTree.curNode().Info = cur.Info
	}

	newTree.CurGotoRoot()
	for _, c := range seqCoords {
		newTree.CurSetNext(c)
	}
	return newTree
}
