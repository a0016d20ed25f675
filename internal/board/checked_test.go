package board

import (
	"testing"

	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/rule"
)

func TestCheckedDetectsFiveAndFinishes(t *testing.T) {
	c := NewChecked(15, rule.StandardRule{})
	moves := []string{"a1", "m1", "a2", "m2", "a3", "m3", "a4", "m4", "a5"}
	for _, mv := range moves {
		if err := c.Add(mustCoord(t, mv, 15)); err != nil {
			t.Fatalf("Add(%s): %v", mv, err)
		}
	}
	sumB, _ := c.ScoreSum()
	if !sumB.Flag5 {
		t.Fatalf("expected black's vertical five to be flagged, sumB = %+v", sumB)
	}
	if !c.IsFinished() {
		t.Fatal("expected the game to be finished after completing a five")
	}
	if got := c.ScoreUnified(); got != maxInt16 {
		t.Fatalf("ScoreUnified = %d, want %d", got, maxInt16)
	}
}

func TestCheckedAddAfterFiveFails(t *testing.T) {
	c := NewChecked(15, rule.StandardRule{})
	moves := []string{"a1", "m1", "a2", "m2", "a3", "m3", "a4", "m4", "a5"}
	for _, mv := range moves {
		_ = c.Add(mustCoord(t, mv, 15))
	}
	if err := c.Add(mustCoord(t, "b1", 15)); err == nil {
		t.Fatal("expected Add to fail once the game is finished")
	}
}

func TestCheckedUndoRestoresScoreSum(t *testing.T) {
	c := NewChecked(15, rule.StandardRule{})
	_ = c.Add(mustCoord(t, "h8", 15))
	sumBBefore, sumWBefore := c.ScoreSum()

	_ = c.Add(mustCoord(t, "i9", 15))
	if _, err := c.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	sumBAfter, sumWAfter := c.ScoreSum()
	if sumBAfter != sumBBefore || sumWAfter != sumWBefore {
		t.Fatalf("score sums not restored: got (%+v, %+v), want (%+v, %+v)",
			sumBAfter, sumWAfter, sumBBefore, sumWBefore)
	}
}

func TestCheckedCandidateGridStampsAroundFirstMove(t *testing.T) {
	c := NewChecked(15, rule.StandardRule{})
	_ = c.Add(mustCoord(t, "h8", 15))

	out := make([]Candidate, 64)
	n := c.WriteCandidates(out)
	if n == 0 {
		t.Fatal("expected at least one candidate after the first move")
	}
	found := false
	for _, cand := range out[:n] {
		if cand.Coord == mustCoord(t, "i9", 15) {
			found = true
		}
	}
	if !found {
		t.Fatal("expected i9 (diagonally adjacent to h8) to be a candidate")
	}
}

func TestCheckedWriteCandidatesStopsAtDecidedWin(t *testing.T) {
	c := NewChecked(15, rule.StandardRule{})
	// Black builds two separate fours on non-overlapping rows, each closed
	// by the board edge on its left, far enough apart that no single white
	// reply can block both; white's stones are spaced one cell apart so
	// they never form a five. Whatever white plays, black still has an
	// unstoppable four next turn, so every candidate scores the same
	// decisive value and WriteCandidates should collapse to just one of
	// them.
	moves := []string{
		"a1", "m1", "b1", "m3", "c1", "m5", "d1", "m7",
		"a3", "m9", "b3", "m11", "c3", "m13", "d3",
	}
	for _, mv := range moves {
		if err := c.Add(mustCoord(t, mv, 15)); err != nil {
			t.Fatalf("Add(%s): %v", mv, err)
		}
	}
	out := make([]Candidate, 64)
	n := c.WriteCandidates(out)
	if n != 1 {
		t.Fatalf("WriteCandidates returned %d candidates, want 1 for a decided position", n)
	}
}

func TestUnifyFiveWins(t *testing.T) {
	sumB := RowsScore{Flag5: true}
	if got := Unify(sumB, RowsScore{}, coord.White); got != maxInt16 {
		t.Fatalf("Unify = %d, want %d", got, maxInt16)
	}
}

func TestUnifyFourToCompleteFavorsMover(t *testing.T) {
	sumB := RowsScore{Cnts: [4]uint16{0, 0, 0, 1}}
	got := Unify(sumB, RowsScore{}, coord.Black)
	if got != maxInt16-1 {
		t.Fatalf("Unify = %d, want %d", got, maxInt16-1)
	}
}

func TestUnifySymmetricForBothColors(t *testing.T) {
	sumB := RowsScore{Cnts: [4]uint16{2, 1, 0, 0}}
	sumW := RowsScore{Cnts: [4]uint16{2, 1, 0, 0}}
	if got := Unify(sumB, sumW, coord.Black); got != 0 {
		t.Fatalf("Unify with identical sums = %d, want 0", got)
	}
}

func TestRowsScoreUpdateTracksLive3AndFive(t *testing.T) {
	var s RowsScore
	s.Update(rule.RowScore{}, rule.RowScore{FlagLive3: true, Cnts: [4]uint8{0, 0, 1, 0}})
	if s.CntLive3 != 1 || s.Cnts[2] != 1 {
		t.Fatalf("Update did not record live three: %+v", s)
	}
	s.Update(rule.RowScore{FlagLive3: true, Cnts: [4]uint8{0, 0, 1, 0}}, rule.RowScore{Flag5: true, Cnts: [4]uint8{0, 0, 0, 0}})
	if !s.Flag5 {
		t.Fatalf("Update did not record five: %+v", s)
	}
	if s.CntLive3 != 0 {
		t.Fatalf("expected live-three count to drop back to 0, got %d", s.CntLive3)
	}
}
