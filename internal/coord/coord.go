// Package coord implements board coordinates and the D4 rotation group
// used to express the eight rigid symmetries of a square board.
package coord

import (
	"fmt"
	"strings"

	"github.com/hailam/gomoku-engine/internal/gerr"
)

// nullVal is the sentinel x/y value of a null (pass) coordinate.
const nullVal = 0xff

// State is the occupant of a board cell.
type State uint8

const (
	Empty State = iota
	Black
	White
)

func (s State) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Coord is a point on an N x N board, or the distinguished null value used
// for pass moves. N must be in [5, 26]; it is carried alongside the
// coordinate by callers (board packages store it once at construction)
// rather than baked into the type, since Go has no const generics.
type Coord struct {
	x, y uint8
}

// Null returns the null coordinate.
func Null() Coord { return Coord{x: nullVal, y: nullVal} }

// New validates x and y against board size n and returns the coordinate,
// or the null coordinate if out of range.
func New(x, y uint8, n int) Coord {
	if int(x) < n && int(y) < n {
		return Coord{x: x, y: y}
	}
	return Null()
}

// buildUnchecked constructs a coordinate without range validation. Callers
// (rotate/offset) must have already proven x, y are in range.
func buildUnchecked(x, y uint8) Coord {
	return Coord{x: x, y: y}
}

// IsNull reports whether c is the null coordinate.
func (c Coord) IsNull() bool {
	return c.x == nullVal && c.y == nullVal
}

// IsReal reports whether c is an on-board coordinate.
func (c Coord) IsReal() bool {
	return !c.IsNull()
}

// Get returns (x, y, true) for a real coordinate, or (0, 0, false) for null.
func (c Coord) Get() (uint8, uint8, bool) {
	if c.IsNull() {
		return 0, 0, false
	}
	return c.x, c.y, true
}

// X returns the raw x value (nullVal if null).
func (c Coord) X() uint8 { return c.x }

// Y returns the raw y value (nullVal if null).
func (c Coord) Y() uint8 { return c.y }

// String renders the coordinate as lowercase-letter-plus-one-based-row,
// e.g. "d10"; null renders as "-".
func (c Coord) String() string {
	if c.IsNull() {
		return "-"
	}
	return fmt.Sprintf("%c%d", xLetter(c.x), int(c.y)+1)
}

func xLetter(x uint8) rune {
	if x < 26 {
		return rune('a' + x)
	}
	return '?'
}

// XLetter returns the column letter for x (0-based), e.g. 0 -> "a".
func XLetter(x uint8) string {
	return string(xLetter(x))
}

// Rotate maps c by optionally flipping across the vertical midline, then
// applying one of four quarter turns, per rotation's (flip, rotation)
// encoding. Null coordinates pass through unchanged.
func (c Coord) Rotate(r Rotation, n int) Coord {
	x, y, ok := c.Get()
	if !ok {
		return c
	}
	bnd := uint8(n - 1)
	fl, ro := r.flRo()
	if fl == 1 {
		x = bnd - x
	}
	switch ro {
	case 0b01:
		x, y = y, bnd-x
	case 0b10:
		x, y = bnd-x, bnd-y
	case 0b11:
		x, y = bnd-y, x
	}
	return buildUnchecked(x, y)
}

// Offset returns c translated by (dx, dy), or false if the result would
// fall outside the board. A null c passes through unchanged (true, c).
func (c Coord) Offset(dx, dy int8, n int) (Coord, bool) {
	x, y, ok := c.Get()
	if !ok {
		return c, true
	}
	nx := int(int8(x)) + int(dx)
	ny := int(int8(y)) + int(dy)
	if nx < 0 || ny < 0 {
		return Coord{}, false
	}
	if nx >= n || ny >= n {
		return Coord{}, false
	}
	return buildUnchecked(uint8(nx), uint8(ny)), true
}

// Parse reads a coordinate of the form "<letter><1-based number>" out of
// the front of s, scanning forward past any text that doesn't parse as
// one, exactly as the move-list parser needs to skip separators. It
// returns the coordinate and the number of bytes consumed.
func Parse(s string, n int) (Coord, int, error) {
	const alphabetFull = "abcdefghijklmnopqrstuvwxyz"
	alphabet := alphabetFull[:n]

	lenChecked := 0
	for {
		if lenChecked >= len(s) {
			return Coord{}, 0, fmt.Errorf("%q: %w", s, gerr.ErrParse)
		}
		rem := s[lenChecked:]
		idx := strings.IndexFunc(rem, func(r rune) bool {
			return strings.ContainsRune(alphabet, r)
		})
		if idx < 0 {
			return Coord{}, 0, fmt.Errorf("%q: %w", s, gerr.ErrParse)
		}
		x := strings.IndexRune(alphabet, rune(rem[idx]))
		lenChecked += idx + 1

		numStart := lenChecked
		for lenChecked < len(s) && s[lenChecked] >= '0' && s[lenChecked] <= '9' {
			lenChecked++
		}
		if lenChecked == numStart {
			continue
		}
		var num int
		for _, d := range s[numStart:lenChecked] {
			num = num*10 + int(d-'0')
		}
		if num == 0 || num > n {
			continue
		}
		return Coord{x: uint8(x), y: uint8(num - 1)}, lenChecked, nil
	}
}

// ParseFull parses s as exactly one coordinate with nothing left over.
func ParseFull(s string, n int) (Coord, error) {
	c, consumed, err := Parse(s, n)
	if err != nil {
		return Coord{}, err
	}
	if consumed != len(s) {
		return Coord{}, fmt.Errorf("%q: %w", s, gerr.ErrParse)
	}
	return c, nil
}
