// Package board implements the move record: an append-only sequence of
// coordinates backed by a RowsView, plus Checked, which layers a
// per-axis row-score cache and a candidate-move grid on top of it so a
// search can query a position's static evaluation in O(1).
package board

import (
	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/gerr"
	"github.com/hailam/gomoku-engine/internal/row"
	"github.com/hailam/gomoku-engine/internal/rows"
)

// Base is an append-only record of moves (including passes) for a board
// of size N x N. Even indices are black's moves, odd indices white's.
type Base struct {
	n       int
	lenMax  int
	cntPass uint8
	seq     []coord.Coord
	rows    *rows.View
}

// NewBase returns an empty record for an N x N board, 5 <= n <= 26.
func NewBase(n int) *Base {
	if n < 5 || n > 26 {
		panic("board: size out of range")
	}
	return &Base{
		n:      n,
		lenMax: n*n + 16, // up to 16 pass moves
		rows:   rows.New(n),
	}
}

func (b *Base) Size() int { return b.n }

func (b *Base) AsSlice() []coord.Coord { return b.seq }

func (b *Base) CoordState(c coord.Coord) coord.State { return b.rows.Get(c) }

func (b *Base) GetQuadRows(c coord.Coord) ([4]row.Row, bool) { return b.rows.GetQuadRows(c) }

func (b *Base) Len() int { return len(b.seq) }

func (b *Base) LenMax() int { return b.lenMax }

func (b *Base) StonesCount() int { return len(b.seq) - int(b.cntPass) }

func (b *Base) IsFull() bool {
	return len(b.seq) >= b.lenMax || b.StonesCount() >= b.n*b.n
}

// Add appends c (a stone placement, or a pass if c is null). It fails
// with ErrRecIsFull if LenMax is reached, or ErrCoordNotEmpty if c
// already holds a stone.
func (b *Base) Add(c coord.Coord) error {
	if len(b.seq) >= b.lenMax {
		return gerr.ErrRecIsFull
	}
	if b.CoordState(c) != coord.Empty {
		return gerr.ErrCoordNotEmpty
	}
	if c.IsReal() {
		b.rows.Set(c, ColorNext(b))
	} else {
		b.cntPass++
	}
	b.seq = append(b.seq, c)
	return nil
}

// Undo removes and returns the last added coordinate.
func (b *Base) Undo() (coord.Coord, error) {
	c, ok := LastCoord(b)
	if !ok {
		return coord.Null(), gerr.ErrRecIsEmpty
	}
	b.seq = b.seq[:len(b.seq)-1]
	if c.IsReal() {
		b.rows.Set(c, coord.Empty)
	} else {
		b.cntPass--
	}
	return c, nil
}

// Clone returns a deep copy, independent of the receiver.
func (b *Base) Clone() *Base {
	cp := *b
	cp.seq = append([]coord.Coord(nil), b.seq...)
	cp.rows = b.rows.Clone()
	return &cp
}

// Clear empties the record.
func (b *Base) Clear() {
	b.seq = b.seq[:0]
	b.cntPass = 0
	b.rows.Clear()
}

func (b *Base) IsEmpty() bool              { return IsEmpty(b) }
func (b *Base) LastCoord() (coord.Coord, bool) { return LastCoord(b) }
func (b *Base) ColorNext() coord.State     { return ColorNext(b) }

func (b *Base) Append(coords []coord.Coord) (int, error) { return Append(b, coords) }
func (b *Base) AppendString(s string) (int, error)       { return AppendString(b, s) }
func (b *Base) BackTo(c coord.Coord) (int, error)        { return BackTo(b, c) }

func (b *Base) Transform(f func(coord.Coord) coord.Coord)          { Transform(b, f) }
func (b *Base) TransformChecked(f func(coord.Coord) (coord.Coord, bool)) error {
	return TransformChecked(b, f)
}
func (b *Base) Rotate(r coord.Rotation)       { Rotate(b, r) }
func (b *Base) Translate(dx, dy int8) error   { return Translate(b, dx, dy) }

func (b *Base) PrintString(divider string, printNo bool) string {
	return PrintString(b, divider, printNo)
}
func (b *Base) PrintBoard(dots []coord.Coord, fullChar bool) string {
	return PrintBoard(b, dots, fullChar)
}
