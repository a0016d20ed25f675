package rule

import "github.com/hailam/gomoku-engine/internal/row"

// FreestyleRule scores rows under Freestyle Gomoku: five or more in a
// row wins (overlines count), and there is no border-extension, since
// a connection flush against the edge is no different from one
// bordered by empty cells on a rule where longer-than-five is fine.
type FreestyleRule struct{}

func (FreestyleRule) CheckRow(r row.Row) (black, white RowScore) {
	rc := countRuns(r)
	return rc.check(segmentCheckFree)
}

// segmentCheckFree scores one color segment under Freestyle. Unlike
// Standard/Caro it has no border-extension, uses a per-side grouping
// test instead of a combined-sum one, and caps a grouped pair whose
// span (stones plus gap) passes five at an effective length of five
// minus the gap, rather than an oversized connection length.
func segmentCheckFree(sg *segment) RowScore {
	var score RowScore

	for i := 0; i < sg.count-1; i++ {
		if sg.spaces[i+1] < 5-sg.conns[i].len && sg.spaces[i+1] < 5-sg.conns[i+1].len {
			sg.conns[i].rGrp = true
			sg.conns[i+1].lGrp = true
		}
	}

	for i := 0; i < sg.count; i++ {
		c := sg.conns[i]
		if c.len >= 5 {
			score.Flag5 = true
			continue
		}

		lValid := !c.lGrp && c.len+sg.spaces[i] >= 5
		rValid := !c.rGrp && c.len+sg.spaces[i+1] >= 5

		if lValid {
			score.Add(uint8(c.len), 1)
		}
		if rValid {
			score.Add(uint8(c.len), 1)
		}
		if lValid && rValid && c.len == 3 {
			score.FlagLive3 = true
		} else if !lValid && !rValid {
			if sg.spaces[i]+c.len+sg.spaces[i+1] >= 5 {
				score.Add(uint8(c.len), 1)
			}
		}
	}

	for i := 0; i < sg.count-1; i++ {
		if !sg.conns[i].rGrp {
			continue
		}
		lenNoSp := sg.conns[i].len + sg.conns[i+1].len
		lenWithR := lenNoSp + sg.spaces[i+1]

		var lenScore int
		if lenWithR <= 5 {
			lenScore = lenNoSp
		} else {
			capped := lenWithR
			if capped > 5 {
				capped = 5
			}
			lenScore = capped - sg.spaces[i+1]
			if lenScore < 0 {
				lenScore = 0
			}
		}
		if lenScore == 0 {
			continue
		}

		if lenWithR >= 5 {
			score.Add(uint8(lenScore), 1)
			continue
		}

		lValid := lenWithR+sg.spaces[i] >= 5
		rValid := lenWithR+sg.spaces[i+2] >= 5
		rDblGrp := i+2 < sg.count && lenWithR+sg.spaces[i+2]+sg.conns[i+2].len == 5

		if lValid {
			score.Add(uint8(lenScore), 1)
		}
		if rValid {
			score.Add(uint8(lenScore), 1)
		}
		if rDblGrp {
			score.Add(3, 1)
		}

		if lValid && rValid && lenScore == 3 {
			score.FlagLive3 = true
		} else if !lValid && !rValid && !rDblGrp {
			if sg.spaces[i]+lenWithR+sg.spaces[i+2] >= 5 {
				score.Add(uint8(lenScore), 1)
			}
		}
	}

	return score
}
