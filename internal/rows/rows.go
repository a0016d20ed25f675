// Package rows implements RowsView: the six axis-indexed arrays of Rows
// (horizontal, vertical, and a pair per diagonal direction) that keep
// every board cell reachable through exactly four rows.
package rows

import (
	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/row"
)

// View holds the six per-axis row arrays for a board of size N.
//
// Layout (N = size):
//   horizontal[y]:   row along y, indexed by x            len N
//   vertical[x]:     row along x, indexed by y             len N
//   diagonalL1[k]:   x <= y diagonals, k = N-1-(y-x)        len 1..N
//   diagonalL2[k]:   x >  y diagonals, k = x-y-1            len N-1..1
//   diagonalR1[k]:   x+y <= N-1 diagonals, k = x+y           len 1..N
//   diagonalR2[k]:   x+y >  N-1 diagonals, k = x+y-N         len N-1..1
type View struct {
	n int

	horizontal []row.Row
	vertical   []row.Row
	diagonalL1 []row.Row
	diagonalL2 []row.Row
	diagonalR1 []row.Row
	diagonalR2 []row.Row
}

// New allocates a cleared RowsView for an N x N board, 5 <= N <= 26.
func New(n int) *View {
	if n < 5 || n > 26 {
		panic("rows: size out of range")
	}
	v := &View{
		n:          n,
		horizontal: make([]row.Row, n),
		vertical:   make([]row.Row, n),
		diagonalL1: make([]row.Row, n),
		diagonalL2: make([]row.Row, n),
		diagonalR1: make([]row.Row, n),
		diagonalR2: make([]row.Row, n),
	}
	v.Clear()
	return v
}

// Clear resets every row in every axis to all-empty, preserving lengths.
func (v *View) Clear() {
	n := v.n
	for i := 0; i < n; i++ {
		v.horizontal[i] = row.New(uint8(n))
		v.vertical[i] = row.New(uint8(n))
	}
	for length := 1; length <= n; length++ {
		v.diagonalL1[length-1] = row.New(uint8(length))
		v.diagonalR1[length-1] = row.New(uint8(length))
		if n > length {
			v.diagonalL2[length-1] = row.New(uint8(n - length))
			v.diagonalR2[length-1] = row.New(uint8(n - length))
		}
	}
}

// Get returns the cell state at coord via the horizontal row. Null
// coordinates read as Empty.
func (v *View) Get(c coord.Coord) coord.State {
	x, y, ok := c.Get()
	if !ok {
		return coord.Empty
	}
	return v.horizontal[y].Get(x)
}

// GetQuadRows returns the four rows passing through coord, in order
// (horizontal, vertical, diagonal-left, diagonal-right), or false if
// coord is null.
func (v *View) GetQuadRows(c coord.Coord) ([4]row.Row, bool) {
	x, y, ok := c.Get()
	if !ok {
		return [4]row.Row{}, false
	}
	n := v.n

	var diagL row.Row
	if int(x) <= int(y) {
		diagL = v.diagonalL1[n-1-int(y-x)]
	} else {
		diagL = v.diagonalL2[int(x)-int(y)-1]
	}

	var diagR row.Row
	if int(x)+int(y) <= n-1 {
		diagR = v.diagonalR1[int(x)+int(y)]
	} else {
		diagR = v.diagonalR2[int(x)+int(y)-n]
	}

	return [4]row.Row{v.horizontal[y], v.vertical[x], diagL, diagR}, true
}

// Set writes st to coord in all four of its rows. A null coordinate is a
// no-op.
func (v *View) Set(c coord.Coord, st coord.State) {
	x, y, ok := c.Get()
	if !ok {
		return
	}
	n := v.n

	v.horizontal[y].Set(x, st)
	v.vertical[x].Set(y, st)

	if int(x) <= int(y) {
		v.diagonalL1[n-1-int(y-x)].Set(x, st)
	} else {
		v.diagonalL2[int(x)-int(y)-1].Set(y, st)
	}

	if int(x)+int(y) <= n-1 {
		v.diagonalR1[int(x)+int(y)].Set(x, st)
	} else {
		v.diagonalR2[int(x)+int(y)-n].Set(uint8(n-1)-y, st)
	}
}

// Clone returns a deep copy, independent of the receiver.
func (v *View) Clone() *View {
	cp := *v
	cp.horizontal = append([]row.Row(nil), v.horizontal...)
	cp.vertical = append([]row.Row(nil), v.vertical...)
	cp.diagonalL1 = append([]row.Row(nil), v.diagonalL1...)
	cp.diagonalL2 = append([]row.Row(nil), v.diagonalL2...)
	cp.diagonalR1 = append([]row.Row(nil), v.diagonalR1...)
	cp.diagonalR2 = append([]row.Row(nil), v.diagonalR2...)
	return &cp
}
