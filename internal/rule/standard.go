package rule

import "github.com/hailam/gomoku-engine/internal/row"

// StandardRule scores rows under Standard Gomoku: exactly five in a row
// wins, with board edges treated as one extra virtual empty cell on
// either side of a segment (border-extension), so a four flush against
// the edge is as valid as one bordered by a real empty cell.
type StandardRule struct{}

func (StandardRule) CheckRow(r row.Row) (black, white RowScore) {
	rc := countRuns(r)
	return rc.check(func(sg *segment) RowScore {
		return segmentCheckStd(sg, false)
	})
}

// CaroRule scores rows under Caro: like Standard, but board edges are
// walls rather than virtual empty cells, so a connection flush against
// the edge can never complete a five there.
type CaroRule struct{}

func (CaroRule) CheckRow(r row.Row) (black, white RowScore) {
	rc := countRuns(r)
	return rc.check(func(sg *segment) RowScore {
		return segmentCheckStd(sg, true)
	})
}

// segmentCheckStd scores one color segment under Standard/Caro rules.
// caro disables the border-extension at the segment's outer edges.
func segmentCheckStd(sg *segment, caro bool) RowScore {
	var score RowScore

	if !caro {
		sg.spaces[0]++
		sg.spaces[sg.count]++
	}

	// Grouping pass: mark adjacent connection pairs close enough that a
	// five could only be completed by using both of them together, so
	// neither should be scored as independently open.
	for i := 0; i < sg.count-1; i++ {
		if sg.conns[i].len+sg.spaces[i+1]+sg.conns[i+1].len <= 5 {
			sg.conns[i].rGrp = true
			sg.conns[i+1].lGrp = true
		}
	}

	// Per-connection pass.
	for i := 0; i < sg.count; i++ {
		c := sg.conns[i]
		if c.len > 5 {
			continue
		}
		if c.len == 5 {
			score.Flag5 = true
			continue
		}

		lValid := !c.lGrp && c.len+(sg.spaces[i]-1) >= 5
		rValid := !c.rGrp && c.len+(sg.spaces[i+1]-1) >= 5

		if lValid {
			score.Add(uint8(c.len), 1)
		}
		if rValid {
			score.Add(uint8(c.len), 1)
		}
		if lValid && rValid && c.len == 3 {
			score.FlagLive3 = true
		} else if !lValid && !rValid {
			if (sg.spaces[i]-1)+c.len+(sg.spaces[i+1]-1) >= 5 {
				score.Add(uint8(c.len), 1)
			}
		}
	}

	// Per-group pass: scores pairs joined by the grouping pass above,
	// including the "-X.X.X-" triple-grouping case where a third
	// connection beyond the pair also reaches exactly five combined.
	for i := 0; i < sg.count-1; i++ {
		if !sg.conns[i].rGrp {
			continue
		}
		lenScore := sg.conns[i].len + sg.conns[i+1].len
		lenWithR := lenScore + sg.spaces[i+1]

		if lenWithR == 5 {
			score.Add(uint8(lenScore), 1)
			continue
		}

		lValid := lenWithR+(sg.spaces[i]-1) >= 5
		rValid := lenWithR+(sg.spaces[i+2]-1) >= 5
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
			if (sg.spaces[i]-1)+lenWithR+(sg.spaces[i+2]-1) >= 5 {
				score.Add(uint8(lenScore), 1)
			}
		}
	}

	return score
}
