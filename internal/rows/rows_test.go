package rows

import (
	"fmt"
	"testing"

	"github.com/hailam/gomoku-engine/internal/coord"
)

func mustParse(t *testing.T, s string, n int) coord.Coord {
	t.Helper()
	c, err := coord.ParseFull(s, n)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return c
}

func quadString(t *testing.T, v *View, c coord.Coord) string {
	t.Helper()
	q, ok := v.GetQuadRows(c)
	if !ok {
		t.Fatalf("GetQuadRows(%v): expected ok", c)
	}
	return fmt.Sprintf("%s %s %s %s", q[0], q[1], q[2], q[3])
}

func TestGetQuadRowsAgainstKnownPosition(t *testing.T) {
	const n = 15
	v := New(n)
	recMoves := []string{"h7", "i7", "j8", "k9", "i9", "h10", "k8", "i8"}
	st := coord.Black
	for _, s := range recMoves {
		v.Set(mustParse(t, s, n), st)
		if st == coord.Black {
			st = coord.White
		} else {
			st = coord.Black
		}
	}

	cases := []struct {
		coord string
		want  string
	}{
		{"h8", "........OXX.... ......X..O..... ........X...... ........O......"},
		{"h6", "............... ......X..O..... ......OXO.... ............."},
		{"j9", "........X.O.... .......X....... ......XO...... .......X...."},
		{"g9", "........X.O.... ............... .......O..... ........O......"},
	}
	for _, tc := range cases {
		t.Run(tc.coord, func(t *testing.T) {
			c := mustParse(t, tc.coord, n)
			if got := quadString(t, v, c); got != tc.want {
				t.Fatalf("GetQuadRows(%s) = %q, want %q", tc.coord, got, tc.want)
			}
		})
	}
}

func TestGetQuadRowsAtCorners(t *testing.T) {
	const n = 15
	v := New(n)
	v.Set(coord.New(0, 0, n), coord.Black)
	v.Set(coord.New(0, 14, n), coord.White)
	v.Set(coord.New(14, 0, n), coord.Black)
	v.Set(coord.New(14, 14, n), coord.White)

	got := quadString(t, v, coord.New(0, 0, n))
	want := "X.............X X.............O X.............O X"
	if got != want {
		t.Fatalf("corner (0,0) quad rows = %q, want %q", got, want)
	}

	got = quadString(t, v, coord.New(14, 0, n))
	want = "X.............X X.............O X O.............X"
	if got != want {
		t.Fatalf("corner (14,0) quad rows = %q, want %q", got, want)
	}
}

func TestGetQuadRowsBoundaryLengths(t *testing.T) {
	const n = 15
	v := New(n)
	q, ok := v.GetQuadRows(coord.New(0, 0, n))
	if !ok {
		t.Fatal("expected ok")
	}
	// Corner (0,0) lies on the full-length x == y diagonal and on the
	// length-1 anti-diagonal x + y == 0.
	if q[2].Len() != uint8(n) || q[3].Len() != 1 {
		t.Fatalf("corner diagonals should have lengths %d and 1, got %d and %d", n, q[2].Len(), q[3].Len())
	}
	q, ok = v.GetQuadRows(coord.New(7, 7, n))
	if !ok {
		t.Fatal("expected ok")
	}
	for i, r := range q {
		if r.Len() != uint8(n) {
			t.Fatalf("midboard row %d has length %d, want %d", i, r.Len(), n)
		}
	}
}

func TestSetAndGetRoundTrip(t *testing.T) {
	const n = 15
	v := New(n)
	c := coord.New(5, 5, n)
	v.Set(c, coord.Black)
	if got := v.Get(c); got != coord.Black {
		t.Fatalf("Get = %v, want Black", got)
	}
	q, _ := v.GetQuadRows(c)
	for i, r := range q {
		if r.Get(indexWithin(n, c, i)) != coord.Black {
			t.Fatalf("row %d does not see the stone", i)
		}
	}
}

// indexWithin mirrors the position-within-row formulas used by View.Set,
// so the round-trip test can check each of the four rows independently.
func indexWithin(n int, c coord.Coord, axis int) uint8 {
	x, y, _ := c.Get()
	switch axis {
	case 0:
		return x
	case 1:
		return y
	case 2:
		if int(x) <= int(y) {
			return x
		}
		return y
	default:
		if int(x)+int(y) <= n-1 {
			return x
		}
		return uint8(n-1) - y
	}
}

func TestClearResetsToEmpty(t *testing.T) {
	const n = 15
	v := New(n)
	v.Set(coord.New(3, 3, n), coord.White)
	v.Clear()
	if got := v.Get(coord.New(3, 3, n)); got != coord.Empty {
		t.Fatalf("Get after clear = %v, want Empty", got)
	}
}

func TestGetQuadRowsNullCoord(t *testing.T) {
	v := New(15)
	if _, ok := v.GetQuadRows(coord.Null()); ok {
		t.Fatalf("expected GetQuadRows(null) to report not-ok")
	}
}
