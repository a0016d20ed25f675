package board

import (
	"strings"

	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/gerr"
	"github.com/hailam/gomoku-engine/internal/row"
)

// Record is the common move-sequence contract shared by Base and
// Checked. The functions below implement every operation that can be
// expressed purely in terms of it, so Checked gets them for free while
// still going through its own overridden Add/Undo/Clear.
type Record interface {
	AsSlice() []coord.Coord
	CoordState(c coord.Coord) coord.State
	GetQuadRows(c coord.Coord) ([4]row.Row, bool)
	Len() int
	LenMax() int
	StonesCount() int
	IsFull() bool
	Size() int

	Add(c coord.Coord) error
	Undo() (coord.Coord, error)
	Clear()
}

// IsEmpty reports whether no move has been added.
func IsEmpty(r Record) bool { return r.Len() == 0 }

// LastCoord returns the most recently added coordinate, if any.
func LastCoord(r Record) (coord.Coord, bool) {
	s := r.AsSlice()
	if len(s) == 0 {
		return coord.Null(), false
	}
	return s[len(s)-1], true
}

// ColorNext returns the color of the next move to be added.
func ColorNext(r Record) coord.State {
	if r.Len()%2 == 0 {
		return coord.Black
	}
	return coord.White
}

// Append adds each coordinate in order, stopping at the first failure.
func Append(r Record, coords []coord.Coord) (int, error) {
	for i, c := range coords {
		if err := r.Add(c); err != nil {
			return i, err
		}
	}
	return len(coords), nil
}

// AppendString parses and appends coordinates from a run of move
// tokens, stopping at the first failure.
func AppendString(r Record, s string) (int, error) {
	checked := 0
	added := 0
	for checked < len(s) {
		c, consumed, err := coord.Parse(s[checked:], r.Size())
		if err != nil {
			break
		}
		if err := r.Add(c); err != nil {
			if added == 0 {
				return 0, gerr.ErrParse
			}
			return added, err
		}
		added++
		checked += consumed
	}
	if added == 0 {
		return 0, gerr.ErrParse
	}
	return added, nil
}

// BackTo undoes moves until coord becomes the last one added.
func BackTo(r Record, c coord.Coord) (int, error) {
	s := r.AsSlice()
	idx := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, gerr.ErrItemNotExist
	}
	steps := (len(s) - 1) - idx
	for i := 0; i < steps; i++ {
		_, _ = r.Undo()
	}
	return steps, nil
}

// Transform replaces every real coordinate c with f(c) and rebuilds the
// record. f must be a one-to-one mapping into valid coordinates.
func Transform(r Record, f func(coord.Coord) coord.Coord) {
	orig := r.AsSlice()
	mapped := make([]coord.Coord, len(orig))
	for i, c := range orig {
		if c.IsReal() {
			mapped[i] = f(c)
		} else {
			mapped[i] = c
		}
	}
	r.Clear()
	for _, c := range mapped {
		_ = r.Add(c)
	}
}

// TransformChecked is like Transform, but f may reject a coordinate; on
// rejection it fails with ErrTransformFailed and leaves the record
// cleared.
func TransformChecked(r Record, f func(coord.Coord) (coord.Coord, bool)) error {
	orig := r.AsSlice()
	mapped := make([]coord.Coord, len(orig))
	for i, c := range orig {
		if !c.IsReal() {
			mapped[i] = c
			continue
		}
		nc, ok := f(c)
		if !ok {
			r.Clear()
			return gerr.ErrTransformFailed
		}
		mapped[i] = nc
	}
	r.Clear()
	for _, c := range mapped {
		if err := r.Add(c); err != nil {
			return gerr.ErrTransformFailed
		}
	}
	return nil
}

// Rotate rotates every stone on the board by rtn.
func Rotate(r Record, rtn coord.Rotation) {
	n := r.Size()
	Transform(r, func(c coord.Coord) coord.Coord { return c.Rotate(rtn, n) })
}

// Translate offsets every stone by (dx, dy), failing with
// ErrTransformFailed if any stone would land off the board.
func Translate(r Record, dx, dy int8) error {
	n := r.Size()
	return TransformChecked(r, func(c coord.Coord) (coord.Coord, bool) { return c.Offset(dx, dy, n) })
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// PrintString renders the move sequence as a readable string.
func PrintString(r Record, divider string, printNo bool) string {
	s := r.AsSlice()
	if len(s) == 0 {
		return ""
	}
	var sb strings.Builder
	if printNo {
		for i, c := range s {
			if i%2 == 0 {
				div := divider
				if i == len(s)-1 {
					div = ""
				}
				sb.WriteString(itoa(i/2 + 1))
				sb.WriteString(". ")
				sb.WriteString(c.String())
				sb.WriteString(div)
			} else {
				sb.WriteString(c.String())
				sb.WriteByte(' ')
			}
		}
	} else {
		for _, c := range s[:len(s)-1] {
			sb.WriteString(c.String())
			sb.WriteString(divider)
		}
		sb.WriteString(s[len(s)-1].String())
	}
	return sb.String()
}

// PrintBoard renders the board as a character grid, row 1 at the
// bottom, column letters beneath it. dots marks extra cells (e.g. move
// candidates) with a distinct glyph.
func PrintBoard(r Record, dots []coord.Coord, fullChar bool) string {
	var (
		chBlack, chBlackLast, chWhite, chWhiteLast, chEmp, chDot string
		chB, chU, chL, chR, chBL, chBR, chUL, chUR               string
	)
	if fullChar {
		chBlack, chBlackLast, chWhite, chWhiteLast, chEmp, chDot = "●", "◆", "○", "⊙", "┼", "·"
		chB, chU, chL, chR, chBL, chBR, chUL, chUR = "┴", "┬", "├", "┤", "└", "┘", "┌", "┐"
	} else {
		chBlack, chBlackLast, chWhite, chWhiteLast, chEmp, chDot = " X", " #", " O", " Q", " .", " *"
		chB, chU, chL, chR, chBL, chBR, chUL, chUR = " .", " .", " .", " .", " .", " .", " .", " ."
	}

	last, hasLast := LastCoord(r)
	n := r.Size()

	var sb strings.Builder
	for y := n - 1; y >= 0; y-- {
		sb.WriteByte(' ')
		rowNo := itoa(y + 1)
		if len(rowNo) < 2 {
			sb.WriteByte(' ')
		}
		sb.WriteString(rowNo)
		for x := 0; x < n; x++ {
			c := coord.New(uint8(x), uint8(y), n)
			switch r.CoordState(c) {
			case coord.Empty:
				switch {
				case containsCoord(dots, c):
					sb.WriteString(chDot)
				case x == 0 && y == 0:
					sb.WriteString(chBL)
				case x == n-1 && y == 0:
					sb.WriteString(chBR)
				case x == 0 && y == n-1:
					sb.WriteString(chUL)
				case x == n-1 && y == n-1:
					sb.WriteString(chUR)
				case x == 0:
					sb.WriteString(chL)
				case x == n-1:
					sb.WriteString(chR)
				case y == 0:
					sb.WriteString(chB)
				case y == n-1:
					sb.WriteString(chU)
				default:
					sb.WriteString(chEmp)
				}
			case coord.Black:
				if hasLast && c == last {
					sb.WriteString(chBlackLast)
				} else {
					sb.WriteString(chBlack)
				}
			case coord.White:
				if hasLast && c == last {
					sb.WriteString(chWhiteLast)
				} else {
					sb.WriteString(chWhite)
				}
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("    ")
	for h := 0; h < n; h++ {
		sb.WriteString(coord.XLetter(uint8(h)))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}

func containsCoord(cs []coord.Coord, c coord.Coord) bool {
	for _, d := range cs {
		if d == c {
			return true
		}
	}
	return false
}
