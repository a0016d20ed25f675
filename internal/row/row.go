// Package row implements the bitpacked Row: a fixed-length sequence of
// cell states (2 bits per cell) packed into a 64-bit word. The six-axis
// view that keeps one Row per board line in sync with the board lives in
// package rows.
package row

import (
	"strings"

	"github.com/hailam/gomoku-engine/internal/coord"
)

const (
	stEmpty uint64 = 0b00
	stBlack uint64 = 0b10
	stWhite uint64 = 0b11

	lenOffset = 64 - 5
	lenMask   = uint64(0b11111) << lenOffset
)

// Row is an immutable-length sequence of len(r) cells, each one of
// {Empty, Black, White}, packed two bits per cell into a uint64 with the
// length stored in the top 5 bits.
type Row struct {
	data uint64
}

// New returns an all-empty row of the given length, 1..=26.
func New(length uint8) Row {
	if length < 1 || length > 26 {
		panic("row: length out of range")
	}
	return Row{data: uint64(length) << lenOffset}
}

// Len returns the row's fixed length.
func (r Row) Len() uint8 {
	return uint8(r.data >> lenOffset)
}

// Clear resets every cell to Empty, preserving length.
func (r *Row) Clear() {
	r.data = uint64(r.Len()) << lenOffset
}

// RawBits returns the packed cell bits with the length field masked out.
func (r Row) RawBits() uint64 {
	return r.data &^ lenMask
}

func bitPos(pos uint8) uint8 {
	return 2 * pos
}

// Get returns the state at pos. pos must be < Len(); unchecked by contract.
func (r Row) Get(pos uint8) coord.State {
	switch (r.data >> bitPos(pos)) & 0b11 {
	case stBlack:
		return coord.Black
	case stWhite:
		return coord.White
	default:
		return coord.Empty
	}
}

// Set writes state at pos. pos must be < Len(); unchecked by contract.
func (r *Row) Set(pos uint8, state coord.State) {
	mask := ^(uint64(0b11) << bitPos(pos))
	r.data &= mask
	var bits uint64
	switch state {
	case coord.Black:
		bits = stBlack
	case coord.White:
		bits = stWhite
	default:
		bits = stEmpty
	}
	r.data |= bits << bitPos(pos)
}

// Iter calls fn for each cell in index order.
func (r Row) Iter(fn func(i uint8, st coord.State)) {
	for i := uint8(0); i < r.Len(); i++ {
		fn(i, r.Get(i))
	}
}

// FromStates builds a Row from a slice of cell states, truncated to 26
// cells. An empty slice yields a length-1 empty row.
func FromStates(sts []coord.State) Row {
	if len(sts) == 0 {
		return New(1)
	}
	n := len(sts)
	if n > 26 {
		n = 26
	}
	r := New(uint8(n))
	for i := 0; i < n; i++ {
		r.Set(uint8(i), sts[i])
	}
	return r
}

// String renders the row with 'X' for Black, 'O' for White, '.' for Empty.
func (r Row) String() string {
	var b strings.Builder
	b.Grow(int(r.Len()))
	for i := uint8(0); i < r.Len(); i++ {
		switch r.Get(i) {
		case coord.Black:
			b.WriteByte('X')
		case coord.White:
			b.WriteByte('O')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}
