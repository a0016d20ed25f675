// Package engine implements the best-first minimax search (Search Tree +
// Evaluator) that picks a next move on top of a rule-scored Checked Board.
package engine

import (
	"time"

	"github.com/hailam/gomoku-engine/internal/board"
	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/row"
	"github.com/hailam/gomoku-engine/internal/rule"
)

const (
	defaultTurnTimeout = 30 * time.Second
	defaultRAMMax      = 100 * 1024 * 1024

	rootSafetyMargin = 200 * time.Millisecond
	nearTimeoutFrac  = 25 // percent of t_max subtracted from t_hard for t_soft
)

// Evaluator wraps a Checked Board with the per-turn deadline and RAM
// ceiling that bound CalcNext's search, and logs its iterative-deepening
// progress through an optional Stats sink.
type Evaluator struct {
	rec    *board.Checked
	tMax   time.Duration
	ramMax int

	stats Stats
}

// New returns an Evaluator over an empty N x N board scored by checker,
// with the default 30s turn timeout and 100 MiB RAM ceiling.
func New(n int, checker rule.Rule) *Evaluator {
	return &Evaluator{
		rec:    board.NewChecked(n, checker),
		tMax:   defaultTurnTimeout,
		ramMax: defaultRAMMax,
	}
}

// SetTurnTimeout sets the wall-clock budget CalcNext allows itself.
func (e *Evaluator) SetTurnTimeout(timeout time.Duration) { e.tMax = timeout }

// SetMaxRAM sets the RAM ceiling (in bytes) the search tree compresses
// itself to stay under.
func (e *Evaluator) SetMaxRAM(ramMax int) { e.ramMax = ramMax }

// SetStats installs s as the sink for search-progress logging. A nil Stats
// (the default) disables logging entirely.
func (e *Evaluator) SetStats(s Stats) { e.stats = s }

func (e *Evaluator) Size() int                                    { return e.rec.Size() }
func (e *Evaluator) AsSlice() []coord.Coord                        { return e.rec.AsSlice() }
func (e *Evaluator) CoordState(c coord.Coord) coord.State          { return e.rec.CoordState(c) }
func (e *Evaluator) GetQuadRows(c coord.Coord) ([4]row.Row, bool)  { return e.rec.GetQuadRows(c) }
func (e *Evaluator) Len() int                                      { return e.rec.Len() }
func (e *Evaluator) LenMax() int                                   { return e.rec.LenMax() }
func (e *Evaluator) StonesCount() int                              { return e.rec.StonesCount() }
func (e *Evaluator) IsFull() bool                                  { return e.rec.IsFull() }
func (e *Evaluator) IsFinished() bool                              { return e.rec.IsFinished() }
func (e *Evaluator) Add(c coord.Coord) error                       { return e.rec.Add(c) }
func (e *Evaluator) Undo() (coord.Coord, error)                    { return e.rec.Undo() }
func (e *Evaluator) Clear()                                        { e.rec.Clear() }
func (e *Evaluator) IsEmpty() bool                                 { return e.rec.IsEmpty() }
func (e *Evaluator) LastCoord() (coord.Coord, bool)                { return e.rec.LastCoord() }
func (e *Evaluator) ColorNext() coord.State                        { return e.rec.ColorNext() }
func (e *Evaluator) Append(coords []coord.Coord) (int, error)      { return e.rec.Append(coords) }
func (e *Evaluator) AppendString(s string) (int, error)            { return e.rec.AppendString(s) }
func (e *Evaluator) BackTo(c coord.Coord) (int, error)              { return e.rec.BackTo(c) }
func (e *Evaluator) PrintBoard(dots []coord.Coord, full bool) string {
	return e.rec.PrintBoard(dots, full)
}

// CalcNext searches for and returns the best move from the current
// position, or a null coordinate if the board is already full. It does
// not play the move; call Add (or PlaceNext) to do that.
func (e *Evaluator) CalcNext() coord.Coord {
	if e.rec.IsFull() {
		return coord.Null()
	}

	tHard := time.Now().Add(e.tMax).Add(-rootSafetyMargin)
	tSoft := tHard.Add(-e.tMax * nearTimeoutFrac / 100)

	et := newEvalTree(e.rec)

	cntRootCands := et.curExpand(20)
	if cntRootCands == 0 {
		return coord.Null()
	} else if cntRootCands == 1 {
		if err := et.curGoDown(); err != nil {
			panic(err)
		}
		return et.curCoord()
	}

	traversalInDepth(et, 1, func() { et.curExpandDepth(7, 4) })
	et.curOrderMinimax()

	if !time.Now().Before(tHard) {
		if err := et.curGoDown(); err != nil {
			panic(err)
		}
		return et.curCoord()
	}

	et.curReduceBranches(10)
	traversalInDepth(et, 1, func() { et.curCutBranches(3) })
	traversalInDepth(et, 3, func() { et.curReduceBranches(4) })
	traversalInDepth(et, 4, func() { et.curReduceBranches(4) })

	depthExpand := 5
	cntLoops := 0
	var cycleDuration time.Duration
	haveCycleDuration := false

	for {
		if int(et.ramUsed()) > e.ramMax/2 {
			et.compress()
		}

		tCycleBegin := time.Now()
		if haveCycleDuration {
			if !tCycleBegin.Add(cycleDuration).Before(tHard) {
				break
			}
		} else if !tCycleBegin.Before(tSoft) {
			break
		}

		et.curGotoRoot()
		dExpand := depthExpand
		traversalInDepth(et, dExpand, func() { et.curExpandDepth(7, 4) })
		traversalInDepth(et, dExpand-2, func() {
			et.curOrderMinimax()
			et.curCutBranches(2)
		})
		traversalInDepth(et, dExpand, func() { et.curCutBranches(2) })
		depthExpand += 4

		cntLoops++
		if cntLoops == 3 {
			et.curGotoRoot()
			et.curReduceBranches(5)
		}

		cycleDuration = time.Since(tCycleBegin)
		haveCycleDuration = true

		if e.stats != nil {
			e.stats.Log(dExpand, et.nodes(), cycleDuration)
		}
	}

	et.curGotoRoot()
	et.curOrderMinimax()
	if err := et.curGoDown(); err != nil {
		panic(err)
	}
	return et.curCoord()
}

// PlaceNext computes and plays the next move via CalcNext, returning the
// played coordinate (null if none was available).
func (e *Evaluator) PlaceNext() (coord.Coord, error) {
	c := e.CalcNext()
	if !c.IsReal() {
		return coord.Null(), nil
	}
	if err := e.rec.Add(c); err != nil {
		return coord.Null(), err
	}
	return c, nil
}
