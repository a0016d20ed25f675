package engine

import (
	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/tree"
)

// traversalInDepth visits every node at relative depth travDep beneath e's
// cursored node, running op at each, then returns the cursor to where it
// started. op must leave the cursor's depth unchanged and must not delete
// nodes at or above travDep.
//
// It walks a first-child-then-right-sibling order, remembering a stack of
// "right sibling to resume from" coordinates at each level where one
// exists, so it can come back to unvisited branches once a deeper one is
// exhausted.
func traversalInDepth(e *evalTree, travDep int, op func()) {
	var stack tree.Stack[coord.Coord]
	relDepth := 0
	for {
		if e.curHasDown() && relDepth < travDep {
			if e.curHasRight() {
				stack.Push(e.curCoord())
			}
			if err := e.curGoDown(); err != nil {
				panic(err)
			}
			relDepth++
		} else if e.curHasRight() {
			if err := e.curGoRight(); err != nil {
				panic(err)
			}
		} else if upper, ok := stack.Pop(); ok {
			dDepth, err := e.curBackTo(upper)
			if err != nil {
				panic(err)
			}
			relDepth -= int(dDepth)
			if err := e.curGoRight(); err != nil {
				panic(err)
			}
		} else {
			for i := 0; i < relDepth; i++ {
				if err := e.curGoUp(); err != nil {
					panic(err)
				}
			}
			break
		}
		if relDepth == travDep {
			op()
		}
	}
}
