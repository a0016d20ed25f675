package board

import (
	"sort"

	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/gerr"
	"github.com/hailam/gomoku-engine/internal/row"
	"github.com/hailam/gomoku-engine/internal/rule"
)

// RowsScore is the sum of RowScores across every row of one axis set,
// for one color: how many open connections of each strength 1..4 it
// holds board-wide, how many of its open threes are live (open on both
// ends), and whether it has completed a five anywhere.
type RowsScore struct {
	Cnts     [4]uint16
	CntLive3 uint16
	Flag5    bool
}

// Update adjusts the sum for a single row's score changing from before
// to after (e.g. because a stone was added to or removed from it).
func (s *RowsScore) Update(before, after rule.RowScore) {
	for i := 0; i < 4; i++ {
		s.Cnts[i] += uint16(after.Cnts[i])
		if s.Cnts[i] < uint16(before.Cnts[i]) {
			s.Cnts[i] = 0
		} else {
			s.Cnts[i] -= uint16(before.Cnts[i])
		}
	}

	if after.FlagLive3 && !before.FlagLive3 {
		s.CntLive3++
	} else if before.FlagLive3 && !after.FlagLive3 {
		s.CntLive3--
	}

	if after.Flag5 && !before.Flag5 {
		s.Flag5 = true
	} else if before.Flag5 && !after.Flag5 {
		s.Flag5 = false
	}
}

// Clear resets the sum to empty.
func (s *RowsScore) Clear() { *s = RowsScore{} }

// Unify computes a static evaluation from both sides' sums and the
// color to move next: a greater value favors black. The scale climbs
// through decisive terminal cases (five, four-to-complete, double
// four, live three with no reply) before falling back to a weighted
// sum of open-connection counts.
func Unify(sumB, sumW RowsScore, colorNext coord.State) int16 {
	if sumB.Flag5 {
		return maxInt16
	}
	if sumW.Flag5 {
		return minInt16
	}
	// Excludes a connected five from here on.
	if sumB.Cnts[4-1] > 0 && colorNext == coord.Black {
		return maxInt16 - 1
	}
	if sumW.Cnts[4-1] > 0 && colorNext == coord.White {
		return minInt16 + 1
	}
	// Excludes a connected four on self's own turn from here on.
	if sumB.Cnts[4-1] > 1 {
		return maxInt16 - 1 // colorNext is white, sumW.Cnts[4-1] == 0 here
	}
	if sumW.Cnts[4-1] > 1 {
		return minInt16 + 1 // colorNext is black, sumB.Cnts[4-1] == 0 here
	}
	// Excludes a double four on the opponent's turn from here on.
	if sumB.CntLive3 > 0 && sumW.Cnts[4-1] == 0 && colorNext == coord.Black {
		return maxInt16 - 2
	}
	if sumW.CntLive3 > 0 && sumB.Cnts[4-1] == 0 && colorNext == coord.White {
		return minInt16 + 2
	}
	// Excludes a prior live three on self's own turn from here on.

	var sum int32

	// A four with a live three elsewhere: strong but not certain.
	if sumB.Cnts[4-1] > 0 && sumB.CntLive3 > 0 {
		sum += 128
	}
	if sumW.Cnts[4-1] > 0 && sumW.CntLive3 > 0 {
		sum -= 128
	}

	// A double live three on the opponent's turn: strong but not certain.
	if sumB.CntLive3 > 1 {
		sum += 64
		if sumW.Cnts[3-1] == 0 {
			sum += 64
		}
	}
	if sumW.CntLive3 > 1 {
		sum -= 64
		if sumB.Cnts[3-1] == 0 {
			sum -= 64
		}
	}

	sum += int32(sumB.Cnts[0]) + int32(sumB.Cnts[1]<<2) + int32(sumB.Cnts[2]<<4) +
		int32(sumB.CntLive3<<5) + int32(sumB.Cnts[3]<<6)
	sum -= int32(sumW.Cnts[0]) + int32(sumW.Cnts[1]<<2) + int32(sumW.Cnts[2]<<4) +
		int32(sumW.CntLive3<<5) + int32(sumW.Cnts[3]<<6)

	return int16(sum)
}

const (
	maxInt16 = int16(32767)
	minInt16 = int16(-32768)
)

// rowScorePair is the last-computed (black, white) score of one row.
type rowScorePair struct {
	black, white rule.RowScore
}

// Candidate is a move and its static evaluation under Unify.
type Candidate struct {
	Coord coord.Coord
	Score int16
}

// Checked wraps Base with a rule checker, maintaining a per-axis row
// score cache (so Add/Undo only re-score the four rows touched by one
// coordinate), the aggregate RowsScore per color, and an
// over-inclusive candidate grid stamped around every placed stone.
type Checked struct {
	base    *Base
	checker rule.Rule

	horizontal, vertical             []rowScorePair
	diagonalL1, diagonalL2           []rowScorePair
	diagonalR1, diagonalR2           []rowScorePair

	undoStack [][4]rowScorePair

	sumB, sumW RowsScore

	gridCand    [][]bool
	candTmpList []Candidate
}

// NewChecked returns an empty record for an N x N board scored by checker.
func NewChecked(n int, checker rule.Rule) *Checked {
	base := NewBase(n)
	grid := make([][]bool, n)
	for i := range grid {
		grid[i] = make([]bool, n)
	}
	grid[n/2][n/2] = true

	c := &Checked{
		base:        base,
		checker:     checker,
		horizontal:  make([]rowScorePair, n),
		vertical:    make([]rowScorePair, n),
		diagonalL1:  make([]rowScorePair, n),
		diagonalL2:  make([]rowScorePair, n),
		diagonalR1:  make([]rowScorePair, n),
		diagonalR2:  make([]rowScorePair, n),
		undoStack:   make([][4]rowScorePair, base.LenMax()),
		gridCand:    grid,
		candTmpList: make([]Candidate, n*n),
	}
	return c
}

func (c *Checked) Size() int                                   { return c.base.Size() }
func (c *Checked) AsSlice() []coord.Coord                       { return c.base.AsSlice() }
func (c *Checked) CoordState(co coord.Coord) coord.State        { return c.base.CoordState(co) }
func (c *Checked) GetQuadRows(co coord.Coord) ([4]row.Row, bool) { return c.base.GetQuadRows(co) }
func (c *Checked) Len() int                                     { return c.base.Len() }
func (c *Checked) LenMax() int                                  { return c.base.LenMax() }
func (c *Checked) StonesCount() int                             { return c.base.StonesCount() }
func (c *Checked) IsFull() bool                                 { return c.base.IsFull() }

// ScoreSum returns the aggregate RowsScore for black and white.
func (c *Checked) ScoreSum() (RowsScore, RowsScore) { return c.sumB, c.sumW }

// ScoreUnified returns the static evaluation of the current position.
func (c *Checked) ScoreUnified() int16 { return Unify(c.sumB, c.sumW, ColorNext(c)) }

// IsFinished reports whether either side has completed a five, or the
// board is full.
func (c *Checked) IsFinished() bool {
	return c.sumB.Flag5 || c.sumW.Flag5 || c.IsFull()
}

// quadScorePairs returns pointers to the cached score pairs of the
// four rows passing through co, or false if co is null.
func (c *Checked) quadScorePairs(co coord.Coord) ([4]*rowScorePair, bool) {
	x, y, ok := co.Get()
	if !ok {
		return [4]*rowScorePair{}, false
	}
	n := c.Size()

	var diagL *rowScorePair
	if int(x) <= int(y) {
		diagL = &c.diagonalL1[n-1-int(y-x)]
	} else {
		diagL = &c.diagonalL2[int(x)-int(y)-1]
	}

	var diagR *rowScorePair
	if int(x)+int(y) <= n-1 {
		diagR = &c.diagonalR1[int(x)+int(y)]
	} else {
		diagR = &c.diagonalR2[int(x)+int(y)-n]
	}

	return [4]*rowScorePair{&c.horizontal[y], &c.vertical[x], diagL, diagR}, true
}

var candSigns = [8][2]int8{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Add appends co, re-scores the four rows it touches, and stamps
// candidate cells in an 8-direction, distance-4 neighborhood around it.
func (c *Checked) Add(co coord.Coord) error {
	if c.IsFinished() {
		return gerr.ErrRecIsFinished
	}
	if err := c.base.Add(co); err != nil {
		return err
	}

	x, y, ok := co.Get()
	if !ok {
		return nil
	}
	n := c.Size()

	c.gridCand[x][y] = false
	for _, sgn := range candSigns {
		for i := int8(1); i <= 4; i++ {
			off, ok := co.Offset(i*sgn[0], i*sgn[1], n)
			if !ok {
				continue
			}
			ox, oy, _ := off.Get()
			if c.CoordState(off) == coord.Empty {
				c.gridCand[ox][oy] = true
			}
		}
	}

	quadRowsAft, _ := c.base.GetQuadRows(co)
	pairs, _ := c.quadScorePairs(co)
	var before [4]rowScorePair
	for i := 0; i < 4; i++ {
		before[i] = *pairs[i]
		black, white := c.checker.CheckRow(quadRowsAft[i])
		after := rowScorePair{black: black, white: white}
		c.sumB.Update(before[i].black, after.black)
		c.sumW.Update(before[i].white, after.white)
		*pairs[i] = after
	}
	c.undoStack[c.Len()-1] = before

	return nil
}

// Undo removes the last added coordinate and restores the four rows'
// cached scores.
func (c *Checked) Undo() (coord.Coord, error) {
	co, ok := LastCoord(c)
	if !ok {
		return coord.Null(), gerr.ErrRecIsEmpty
	}
	if _, err := c.base.Undo(); err != nil {
		return coord.Null(), err
	}
	if _, _, ok := co.Get(); !ok {
		return co, nil
	}
	x, y, _ := co.Get()
	c.gridCand[x][y] = true

	before := c.undoStack[c.Len()]
	pairs, _ := c.quadScorePairs(co)
	for i := 0; i < 4; i++ {
		cur := *pairs[i]
		c.sumB.Update(cur.black, before[i].black)
		c.sumW.Update(cur.white, before[i].white)
		*pairs[i] = before[i]
	}

	return co, nil
}

// Clone returns a deep copy, independent of the receiver.
func (c *Checked) Clone() *Checked {
	cp := *c
	cp.base = c.base.Clone()
	cp.horizontal = append([]rowScorePair(nil), c.horizontal...)
	cp.vertical = append([]rowScorePair(nil), c.vertical...)
	cp.diagonalL1 = append([]rowScorePair(nil), c.diagonalL1...)
	cp.diagonalL2 = append([]rowScorePair(nil), c.diagonalL2...)
	cp.diagonalR1 = append([]rowScorePair(nil), c.diagonalR1...)
	cp.diagonalR2 = append([]rowScorePair(nil), c.diagonalR2...)
	cp.undoStack = append([][4]rowScorePair(nil), c.undoStack...)
	cp.gridCand = make([][]bool, len(c.gridCand))
	for i := range c.gridCand {
		cp.gridCand[i] = append([]bool(nil), c.gridCand[i]...)
	}
	cp.candTmpList = append([]Candidate(nil), c.candTmpList...)
	return &cp
}

// Clear empties the record and every cached score.
func (c *Checked) Clear() {
	c.base.Clear()
	n := c.Size()

	newPair := rowScorePair{}
	for i := 0; i < n; i++ {
		c.horizontal[i] = newPair
		c.vertical[i] = newPair
		c.diagonalL1[i] = newPair
		c.diagonalL2[i] = newPair
		c.diagonalR1[i] = newPair
		c.diagonalR2[i] = newPair
	}

	c.sumB.Clear()
	c.sumW.Clear()

	for i := range c.gridCand {
		for j := range c.gridCand[i] {
			c.gridCand[i][j] = false
		}
	}
	c.gridCand[n/2][n/2] = true
}

func (c *Checked) IsEmpty() bool                  { return IsEmpty(c) }
func (c *Checked) LastCoord() (coord.Coord, bool) { return LastCoord(c) }
func (c *Checked) ColorNext() coord.State         { return ColorNext(c) }

func (c *Checked) Append(coords []coord.Coord) (int, error) { return Append(c, coords) }
func (c *Checked) AppendString(s string) (int, error)       { return AppendString(c, s) }
func (c *Checked) BackTo(co coord.Coord) (int, error)       { return BackTo(c, co) }

func (c *Checked) Transform(f func(coord.Coord) coord.Coord) { Transform(c, f) }
func (c *Checked) TransformChecked(f func(coord.Coord) (coord.Coord, bool)) error {
	return TransformChecked(c, f)
}
func (c *Checked) Rotate(r coord.Rotation)     { Rotate(c, r) }
func (c *Checked) Translate(dx, dy int8) error { return Translate(c, dx, dy) }

func (c *Checked) PrintString(divider string, printNo bool) string {
	return PrintString(c, divider, printNo)
}
func (c *Checked) PrintBoard(dots []coord.Coord, fullChar bool) string {
	return PrintBoard(c, dots, fullChar)
}

// WriteCandidates evaluates every currently-flagged candidate cell by
// trying it and reading ScoreUnified, then writes the best len(out)
// into out (best-for-mover first) and returns the count written. If
// the single best candidate is already a decided win or loss, only
// that one is written, since no other move needs considering.
func (c *Checked) WriteCandidates(out []Candidate) int {
	if len(out) == 0 || c.IsFinished() {
		return 0
	}

	n := c.Size()
	cntRaw := 0
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if c.gridCand[x][y] {
				c.candTmpList[cntRaw] = Candidate{Coord: coord.New(uint8(x), uint8(y), n)}
				cntRaw++
			}
		}
	}

	for i := 0; i < cntRaw; i++ {
		co := c.candTmpList[i].Coord
		_ = c.Add(co)
		scr := c.ScoreUnified()
		_, _ = c.Undo()
		c.candTmpList[i].Score = scr
	}

	cands := c.candTmpList[:cntRaw]
	nextIsBlack := c.ColorNext() == coord.Black
	sortCandidates(cands, nextIsBlack)

	selected := len(out)
	if selected > len(cands) {
		selected = len(cands)
	}
	if cntRaw > 0 && (cands[0].Score >= maxInt16-2 || cands[0].Score <= minInt16+2) {
		selected = 1
	}

	copy(out, cands[:selected])
	return selected
}

// sortCandidates orders cands best-for-mover first: descending score
// if black is to move, ascending if white is.
func sortCandidates(cands []Candidate, blackToMove bool) {
	sort.Slice(cands, func(i, j int) bool {
		if blackToMove {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Score < cands[j].Score
	})
}
