// Package rule scores a single Row for a color: how many open twos,
// threes, fours, or fives it contains under a given rule variant. This
// is the per-axis building block that CheckedBoard sums across all four
// axes through a coordinate to get a position's aggregate score.
package rule

import (
	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/row"
)

// RowScore tallies, for one color in one row, how many connections of
// each length 1..4 are "open" (can still reach five), whether any of
// the length-3 ones are a live three (open on both ends), and whether
// a five (or longer, under Freestyle) is already present.
type RowScore struct {
	Cnts      [4]uint8
	FlagLive3 bool
	Flag5     bool
}

// Add records cnt more open connections of the given length (1..4).
func (s *RowScore) Add(length uint8, cnt uint8) {
	s.Cnts[length-1] += cnt
}

// Enter merges other into s. A five is terminal: once flagged, further
// counts and the live-three flag from later segments are dropped,
// since a completed five already decides the row.
func (s *RowScore) Enter(other RowScore) {
	if other.Flag5 {
		s.Flag5 = true
	}
	if s.Flag5 {
		return
	}
	if other.FlagLive3 {
		s.FlagLive3 = true
	}
	for i := range s.Cnts {
		s.Cnts[i] += other.Cnts[i]
	}
}

// ScoreOfLen returns the open-connection count for the given length (1..4).
func (s RowScore) ScoreOfLen(length uint8) uint8 {
	return s.Cnts[length-1]
}

// Rule scores both colors' connections in a single pass over a row.
type Rule interface {
	CheckRow(r row.Row) (black, white RowScore)
}

// conn is one maximal run of same-color stones within a segment.
type conn struct {
	len       int
	lGrp, rGrp bool
}

// segment is one maximal run of a single color plus the empty gaps
// between (and bordering) its connections, assembled by runCounter.check.
type segment struct {
	spaces [27]int
	conns  [27]conn
	count  int
}

func (sg *segment) clear() {
	sg.spaces = [27]int{}
	sg.conns = [27]conn{}
	sg.count = 0
}

// run is one maximal same-state run within a row, as produced by
// run-length encoding.
type run struct {
	state coord.State
	cnt   uint8
}

// runCounter run-length encodes a row, then walks the encoding to
// assemble per-color segments and fold each one's score into the
// row's aggregate black/white RowScore via a rule-specific callback.
type runCounter struct {
	runs [26]run
	len  int
}

func countRuns(r row.Row) runCounter {
	var rc runCounter
	var last coord.State = coord.Empty
	var cnt uint8
	first := true
	r.Iter(func(i uint8, st coord.State) {
		if first {
			last = st
			cnt = 1
			first = false
			return
		}
		if st == last {
			cnt++
			return
		}
		rc.runs[rc.len] = run{state: last, cnt: cnt}
		rc.len++
		last = st
		cnt = 1
	})
	if !first {
		rc.runs[rc.len] = run{state: last, cnt: cnt}
		rc.len++
	}
	return rc
}

// check walks the run-length encoding, grouping consecutive same-color
// connections (and their bordering empty runs) into segments, and
// folds each segment's score (computed by f) into that color's sum.
// f is supplied by the rule-specific scorer (segmentCheckFree or
// segmentCheckStd).
func (rc runCounter) check(f func(sg *segment) RowScore) (black, white RowScore) {
	if rc.len == 1 && rc.runs[0].state == coord.Empty {
		return black, white
	}

	color := coord.Empty
	sumIsWhite := false
	var sg segment

	for i := 0; i < rc.len; i++ {
		st := rc.runs[i].state
		cnt := rc.runs[i].cnt

		if st != color && st != coord.Empty {
			if sg.count > 0 {
				score := f(&sg)
				if sumIsWhite {
					white.Enter(score)
				} else {
					black.Enter(score)
				}
				sg.clear()
			}
			if i > 0 && rc.runs[i-1].state == coord.Empty {
				sg.spaces[0] = int(rc.runs[i-1].cnt)
			}
			color = st
			sumIsWhite = st == coord.White
		}

		if st != coord.Empty {
			sg.conns[sg.count].len = int(cnt)
			sg.count++
		} else {
			sg.spaces[sg.count] = int(cnt)
		}
	}

	if sg.count > 0 {
		score := f(&sg)
		if sumIsWhite {
			white.Enter(score)
		} else {
			black.Enter(score)
		}
	}
	return black, white
}
