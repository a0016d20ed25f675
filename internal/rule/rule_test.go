package rule

import (
	"testing"

	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/row"
)

// parseRow builds a Row from a string of 'B' (Black), 'W' (White) and
// '.' (Empty) characters, one per cell.
func parseRow(s string) row.Row {
	sts := make([]coord.State, len(s))
	for i, c := range s {
		switch c {
		case 'B':
			sts[i] = coord.Black
		case 'W':
			sts[i] = coord.White
		default:
			sts[i] = coord.Empty
		}
	}
	return row.FromStates(sts)
}

func wantScore(cnts [4]uint8, live3, five bool) RowScore {
	return RowScore{Cnts: cnts, FlagLive3: live3, Flag5: five}
}

func TestStandardRuleWhiteSegments(t *testing.T) {
	cases := []struct {
		name string
		row  string
		want RowScore
	}{
		{"three-lone-stones", "W.W.W....", wantScore([4]uint8{1, 1, 1, 0}, false, false)},
		{"grouped-pair-plus-one", "..WW..W.W", wantScore([4]uint8{0, 1, 1, 0}, false, false)},
		{"grouped-pair-blocked-right", "..WW..WW.", wantScore([4]uint8{0, 1, 0, 0}, false, false)},
		{"live-three-between-singles", "..W...WWW...W..", wantScore([4]uint8{2, 0, 2, 0}, true, false)},
		{"ladder-into-triple", "W.W.W.W.WWW....", wantScore([4]uint8{0, 0, 3, 1}, false, false)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := parseRow(tc.row)
			_, white := StandardRule{}.CheckRow(r)
			if white != tc.want {
				t.Fatalf("CheckRow(%q) white = %+v, want %+v", tc.row, white, tc.want)
			}
		})
	}
}

func TestStandardRuleBorderExtensionAllowsEdgeFour(t *testing.T) {
	r := parseRow("WWWW.")
	_, white := StandardRule{}.CheckRow(r)
	if white.Cnts[3] != 1 {
		t.Fatalf("expected one open four via border-extension, got %+v", white)
	}
}

func TestCaroRuleEdgeIsWall(t *testing.T) {
	r := parseRow("WWWW.")
	_, white := CaroRule{}.CheckRow(r)
	want := wantScore([4]uint8{0, 0, 0, 0}, false, false)
	if white != want {
		t.Fatalf("Caro should treat the board edge as a wall: got %+v, want %+v", white, want)
	}
}

func TestStandardRuleFive(t *testing.T) {
	r := parseRow("..WWWWW..")
	_, white := StandardRule{}.CheckRow(r)
	if !white.Flag5 {
		t.Fatalf("expected Flag5 for a row of five, got %+v", white)
	}
}

func TestFreestyleRuleOverlineIsFive(t *testing.T) {
	r := parseRow("WWWWWW...")
	_, white := FreestyleRule{}.CheckRow(r)
	if !white.Flag5 {
		t.Fatalf("expected Flag5 for a six-in-a-row overline, got %+v", white)
	}
	if white.Cnts != ([4]uint8{0, 0, 0, 0}) {
		t.Fatalf("overline should not also add connection counts: got %+v", white)
	}
}

func TestFreestyleRuleCapsGroupedOverlineAtFive(t *testing.T) {
	r := parseRow("WWW.WWW")
	_, white := FreestyleRule{}.CheckRow(r)
	want := wantScore([4]uint8{0, 0, 0, 1}, false, false)
	if white != want {
		t.Fatalf("grouped 3+3 across a one-cell gap should cap to an open four: got %+v, want %+v", white, want)
	}
}

func TestRuleScoresBothColorsIndependently(t *testing.T) {
	r := parseRow("B.BB.W.W")
	black, white := StandardRule{}.CheckRow(r)
	// B.BB groups into one three, open only toward the right (one empty
	// cell plus the segment-border extension).
	if want := wantScore([4]uint8{0, 0, 1, 0}, false, false); black != want {
		t.Fatalf("expected B.BB scored as one grouped three: got %+v, want %+v", black, want)
	}
	// W.W has only four cells between the black stone and the edge, so it
	// can never become a five and scores nothing.
	if want := wantScore([4]uint8{0, 0, 0, 0}, false, false); white != want {
		t.Fatalf("expected the boxed-in white pair to score nothing: got %+v, want %+v", white, want)
	}
}

func TestRowScoreEnterStopsAtFive(t *testing.T) {
	var total RowScore
	total.Enter(RowScore{Cnts: [4]uint8{1, 0, 0, 0}})
	total.Enter(RowScore{Flag5: true, FlagLive3: true, Cnts: [4]uint8{0, 1, 0, 0}})
	total.Enter(RowScore{Cnts: [4]uint8{0, 0, 1, 0}})

	if !total.Flag5 {
		t.Fatalf("expected Flag5 to stick once set")
	}
	if total.FlagLive3 {
		t.Fatalf("live-three from the five-bearing segment should not leak in once Flag5 is set")
	}
	if total.Cnts != ([4]uint8{1, 0, 0, 0}) {
		t.Fatalf("counts entered after Flag5 should be dropped: got %+v", total.Cnts)
	}
}
