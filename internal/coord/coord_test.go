package coord

import "testing"

func TestNewOutOfRange(t *testing.T) {
	c := New(9, 15, 15)
	if !c.IsNull() {
		t.Fatalf("expected null coordinate, got %v", c)
	}
	if c.String() != "-" {
		t.Fatalf("expected %q, got %q", "-", c.String())
	}
}

func TestNewAndString(t *testing.T) {
	c := New(3, 9, 15)
	if !c.IsReal() {
		t.Fatalf("expected real coordinate")
	}
	if got := c.String(); got != "d10" {
		t.Fatalf("expected d10, got %s", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{"a1", "h8", "o15", "d10"}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			c, err := ParseFull(s, 15)
			if err != nil {
				t.Fatalf("parse %q: %v", s, err)
			}
			if got := c.String(); got != s {
				t.Fatalf("round trip: parsed %q formatted as %q", s, got)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	c := New(1, 2, 15)
	got, ok := c.Offset(-1, 3, 15)
	if !ok {
		t.Fatalf("expected in-range offset")
	}
	want, _ := ParseFull("a6", 15)
	if got != want {
		t.Fatalf("offset(-1,3) = %v, want %v", got, want)
	}

	_, ok = c.Offset(-2, 3, 15)
	if ok {
		t.Fatalf("expected out-of-range offset to fail")
	}
}

func TestRotateMatchesReferenceVectors(t *testing.T) {
	const n = 15
	c := New(0, 1, n) // a2

	check := func(r Rotation, wantX, wantY uint8) {
		t.Helper()
		got := c.Rotate(r, n)
		x, y, ok := got.Get()
		if !ok || x != wantX || y != wantY {
			t.Fatalf("rotate(%v) = %v, want (%d,%d)", r, got, wantX, wantY)
		}
	}

	if got := c.Rotate(Original, n); got != c {
		t.Fatalf("rotate(Original) changed coordinate: %v", got)
	}
	check(Clockwise, 1, 14)
	check(CentralSymmetric, 14, 13)
	check(Counterclockwise, 13, 0)
	check(FlipHorizontal, 14, 1)
	check(FlipLeftDiagonal, 1, 0)
	check(FlipVertical, 0, 13)
	check(FlipRightDiagonal, 13, 14)
}

func TestRotateReverseRoundTrip(t *testing.T) {
	const n = 15
	c := New(0, 1, n)
	all := []Rotation{Original, Clockwise, CentralSymmetric, Counterclockwise,
		FlipHorizontal, FlipLeftDiagonal, FlipVertical, FlipRightDiagonal}
	for _, r := range all {
		got := c.Rotate(r, n).Rotate(r.Reverse(), n)
		if got != c {
			t.Errorf("rotate(%v) then rotate(reverse) != original: got %v want %v", r, got, c)
		}
	}
}

func TestRotationAddMatchesComposition(t *testing.T) {
	const n = 15
	c := New(0, 1, n)
	all := []Rotation{Original, Clockwise, CentralSymmetric, Counterclockwise,
		FlipHorizontal, FlipLeftDiagonal, FlipVertical, FlipRightDiagonal}
	for _, r1 := range all {
		for _, r2 := range all {
			composed := r1.Add(r2)
			got := c.Rotate(composed, n)
			want := c.Rotate(r1, n).Rotate(r2, n)
			if got != want {
				t.Errorf("rotate(%v.add(%v)) = %v, want rotate(%v) then rotate(%v) = %v",
					r1, r2, got, r1, r2, want)
			}
		}
	}
}

func TestRotationSpecificIdentity(t *testing.T) {
	const n = 15
	c := New(0, 1, n)
	got := c.Rotate(FlipVertical.Add(CentralSymmetric), n)
	want := c.Rotate(FlipHorizontal, n)
	if got != want {
		t.Fatalf("FlipVertical.add(CentralSymmetric) should equal FlipHorizontal: got %v want %v", got, want)
	}
}
