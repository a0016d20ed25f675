package row

import (
	"testing"

	"github.com/hailam/gomoku-engine/internal/coord"
)

func TestRowBitLayout(t *testing.T) {
	r := New(15)
	if r.Len() != 15 {
		t.Fatalf("len = %d, want 15", r.Len())
	}
	if r.RawBits() != 0 {
		t.Fatalf("raw bits = %b, want 0", r.RawBits())
	}

	r.Set(0, coord.Black)
	if r.Get(0) != coord.Black {
		t.Fatalf("get(0) = %v, want Black", r.Get(0))
	}
	if want := uint64(0b10); r.RawBits() != want {
		t.Fatalf("raw bits = %b, want %b", r.RawBits(), want)
	}

	r.Set(2, coord.White)
	if r.Get(2) != coord.White {
		t.Fatalf("get(2) = %v, want White", r.Get(2))
	}
	if want := uint64(0b11_00_10); r.RawBits() != want {
		t.Fatalf("raw bits = %b, want %b", r.RawBits(), want)
	}

	r.Set(2, coord.Black)
	if r.Get(2) != coord.Black {
		t.Fatalf("get(2) = %v, want Black", r.Get(2))
	}

	r.Set(0, coord.Empty)
	if r.Get(0) != coord.Empty {
		t.Fatalf("get(0) = %v, want Empty", r.Get(0))
	}
	if r.Len() != 15 {
		t.Fatalf("len changed after set: %d", r.Len())
	}

	r.Clear()
	if r.RawBits() != 0 {
		t.Fatalf("raw bits after clear = %b, want 0", r.RawBits())
	}
}

func TestRowString(t *testing.T) {
	r := New(5)
	r.Set(0, coord.Black)
	r.Set(1, coord.White)
	if got, want := r.String(), "XO..."; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFromStatesTruncates(t *testing.T) {
	sts := make([]coord.State, 30)
	for i := range sts {
		sts[i] = coord.Black
	}
	r := FromStates(sts)
	if r.Len() != 26 {
		t.Fatalf("len = %d, want 26", r.Len())
	}
}

func TestFromStatesEmpty(t *testing.T) {
	r := FromStates(nil)
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
	if r.Get(0) != coord.Empty {
		t.Fatalf("get(0) = %v, want Empty", r.Get(0))
	}
}
