// Package protocol implements the Gomocup line-oriented stdio protocol
// (START/TURN/BEGIN/BOARD/INFO/END/ABOUT): it reads commands from a
// tournament manager, drives an engine.Evaluator, and writes move
// replies, one per line.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/gomoku-engine/internal/coord"
	"github.com/hailam/gomoku-engine/internal/engine"
	"github.com/hailam/gomoku-engine/internal/rule"
)

const (
	defaultTimeoutTurn  = 30000
	defaultTimeoutMatch = 1000000000
	defaultTimeLeft     = 1000000000
	defaultRAMMax       = 512 * 1024 * 1024
)

// sessionInfo mirrors the Gomocup INFO fields a manager may set over the
// life of a session.
type sessionInfo struct {
	timeoutTurn  int32
	timeoutMatch int32
	timeLeft     int32
	maxMemory    *uint

	ruleExact5     bool
	ruleContinuous bool
	ruleRenju      bool
	ruleCaro       bool
}

func newSessionInfo() sessionInfo {
	return sessionInfo{
		timeoutTurn:  defaultTimeoutTurn,
		timeoutMatch: defaultTimeoutMatch,
		timeLeft:     defaultTimeLeft,
	}
}

// ruleSupported reports whether the current rule bits name a variant this
// engine implements: continuous and renju play are not, and Caro rules
// are only meaningful alongside an exact-five win condition.
func (s sessionInfo) ruleSupported() bool {
	return !(s.ruleContinuous || s.ruleRenju || (s.ruleCaro && !s.ruleExact5))
}

func (s sessionInfo) ramMax() int {
	if s.maxMemory != nil {
		return int(*s.maxMemory)
	}
	return defaultRAMMax
}

// checker returns the Rule variant named by the current rule bits.
func (s sessionInfo) checker() rule.Rule {
	switch {
	case !s.ruleExact5:
		return rule.FreestyleRule{}
	case !s.ruleCaro:
		return rule.StandardRule{}
	default:
		return rule.CaroRule{}
	}
}

// turnTimeout computes the per-turn budget: the first five moves always
// get the declared timeout_turn outright; afterward it is capped by a
// fair share of the match clock and of whatever time remains.
func (s sessionInfo) turnTimeout(n, movesLen int) time.Duration {
	ms := s.timeoutTurn
	if movesLen > 5 {
		ms = minInt32(ms, s.timeoutMatch/int32(n*n/2))
		ms = minInt32(ms, maxInt32(s.timeLeft, 0)/maxInt32(int32((n*n-movesLen)/2), 1))
	}
	return time.Duration(ms) * time.Millisecond
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// update applies one INFO key/value pair. Unrecognized keys are ignored,
// matching a tolerant protocol implementation that prefers to keep running
// over a manager sending a field this engine doesn't track.
func (s *sessionInfo) update(key, val string) {
	val = strings.TrimSpace(val)
	switch key {
	case "timeout_turn":
		if v, err := strconv.ParseInt(val, 10, 32); err == nil {
			s.timeoutTurn = int32(v)
		}
	case "timeout_match":
		if v, err := strconv.ParseInt(val, 10, 32); err == nil {
			s.timeoutMatch = int32(v)
		}
	case "time_left":
		if v, err := strconv.ParseInt(val, 10, 32); err == nil {
			s.timeLeft = int32(v)
		}
	case "max_memory":
		if v, err := strconv.ParseUint(val, 10, 64); err == nil {
			vv := uint(v)
			if v == 0 {
				// Zero lifts the ceiling: the tree is never compressed.
				vv = uint(math.MaxInt)
			}
			s.maxMemory = &vv
		}
	case "rule":
		if v, err := strconv.ParseUint(val, 10, 8); err == nil {
			b := uint8(v)
			s.ruleExact5 = b&1 != 0
			s.ruleContinuous = b&2 != 0
			s.ruleRenju = b&4 != 0
			s.ruleCaro = b&8 != 0
		}
	}
}

// Adapter holds the process-local state of one Gomocup session: the
// selected board size, the negotiated session parameters, and at most one
// live Evaluator per size (mirroring a reference implementation's
// eval_15/eval_20 pair, so a size change mid-session via a new START just
// swaps which slot is live).
type Adapter struct {
	sizeIs20 bool
	info     sessionInfo

	eval15 *engine.Evaluator
	eval20 *engine.Evaluator

	// Stats, if non-nil, is installed on every Evaluator this Adapter
	// constructs, for verbose search-progress logging.
	Stats engine.Stats
}

// New returns an Adapter with no evaluator constructed yet; the first
// START selects the board size and rule.
func New() *Adapter {
	return &Adapter{info: newSessionInfo()}
}

func (a *Adapter) active() *engine.Evaluator {
	if a.sizeIs20 {
		return a.eval20
	}
	return a.eval15
}

func (a *Adapter) setActive(e *engine.Evaluator) {
	if a.sizeIs20 {
		a.eval20 = e
	} else {
		a.eval15 = e
	}
}

func (a *Adapter) activeSize() int {
	if a.sizeIs20 {
		return 20
	}
	return 15
}

func (a *Adapter) newEvaluator() *engine.Evaluator {
	e := engine.New(a.activeSize(), a.info.checker())
	e.SetMaxRAM(a.info.ramMax())
	if a.Stats != nil {
		e.SetStats(a.Stats)
	}
	return e
}

func (a *Adapter) applyRAMCeiling() {
	ramMax := a.info.ramMax()
	if a.eval15 != nil {
		a.eval15.SetMaxRAM(ramMax)
	}
	if a.eval20 != nil {
		a.eval20.SetMaxRAM(ramMax)
	}
}

// Run reads newline-delimited Gomocup commands from r and writes replies
// to w until EOF, an END command, or a read error.
func (a *Adapter) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := strings.ToUpper(fields[0])
		switch cmd {
		case "START":
			a.handleStart(w, fields)
		case "TURN":
			a.handleTurnOrBegin(w, fields, true)
		case "BEGIN":
			a.handleTurnOrBegin(w, fields, false)
		case "BOARD":
			a.handleBoard(sc, w)
		case "INFO":
			a.handleInfo(w, fields)
		case "END":
			return nil
		case "ABOUT":
			fmt.Fprintln(w, `name="gomoku-engine", version="0.1.0"`)
		default:
			fmt.Fprintln(w, "UNKNOWN")
		}
	}
	return sc.Err()
}

func (a *Adapter) handleStart(w io.Writer, fields []string) {
	if len(fields) < 2 {
		fmt.Fprintln(w, "ERROR - cannot parse board size")
		return
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Fprintln(w, "ERROR - cannot parse board size")
		return
	}
	switch n {
	case 15:
		a.sizeIs20 = false
	case 20:
		a.sizeIs20 = true
	default:
		fmt.Fprintln(w, "ERROR - unsupported board size")
		return
	}
	if !a.info.ruleSupported() {
		fmt.Fprintln(w, "ERROR - unsupported rule")
		return
	}
	a.setActive(a.newEvaluator())
	fmt.Fprintln(w, "OK")
}

func (a *Adapter) handleTurnOrBegin(w io.Writer, fields []string, isTurn bool) {
	e := a.active()
	if e == nil {
		fmt.Fprintln(w, "ERROR - not started")
		return
	}
	if isTurn {
		if len(fields) < 2 {
			fmt.Fprintln(w, "ERROR - expected input: 'x,y'")
			return
		}
		c, ok := parseCoord(fields[1], a.activeSize())
		if !ok {
			fmt.Fprintln(w, "ERROR - cannot parse coordinate")
			return
		}
		if err := e.Add(c); err != nil {
			fmt.Fprintf(w, "ERROR - %v\n", err)
			return
		}
	}
	a.placeAndReply(w, e)
}

func (a *Adapter) placeAndReply(w io.Writer, e *engine.Evaluator) {
	e.SetTurnTimeout(a.info.turnTimeout(e.Size(), e.Len()))
	c, err := e.PlaceNext()
	if err != nil {
		fmt.Fprintf(w, "ERROR - %v\n", err)
		return
	}
	if c.IsReal() {
		x, y, _ := c.Get()
		fmt.Fprintf(w, "%d,%d\n", x, y)
	}
}

// handleBoard reads lines (via the same Scanner Run is using) until DONE,
// reconstructs the move sequence from the reported own/opponent stones,
// and replies with a move the same way TURN/BEGIN do.
//
// Gomocup's BOARD gives two unordered sets of stones, not a move order,
// so the sequence is rebuilt by deciding from the stone counts which side
// is black, interleaving black and white moves starting with black,
// padding the shorter side with passes, and
// inserting one more pass if that still leaves the wrong color to move.
func (a *Adapter) handleBoard(sc *bufio.Scanner, w io.Writer) {
	e := a.active()
	if e == nil {
		fmt.Fprintln(w, "ERROR - not started")
		return
	}

	var own, opp []coord.Coord
	for sc.Scan() {
		line := sc.Text()
		if strings.Contains(strings.ToUpper(line), "DONE") {
			break
		}
		parts := strings.Split(line, ",")
		nums := make([]int, 0, 3)
		for _, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err == nil {
				nums = append(nums, v)
			}
		}
		if len(nums) < 3 {
			fmt.Fprintln(w, "ERROR - expected input: 'x,x,x'")
			continue
		}
		c := coord.New(uint8(nums[0]), uint8(nums[1]), a.activeSize())
		switch nums[2] {
		case 1:
			own = append(own, c)
		case 2:
			opp = append(opp, c)
		}
	}

	ownIsWhite := (len(own)+1-len(opp))%2 == 0
	coordsB, coordsW := own, opp
	if ownIsWhite {
		coordsB, coordsW = opp, own
	}

	e.Clear()
	shared := len(coordsB)
	if len(coordsW) < shared {
		shared = len(coordsW)
	}
	for i := 0; i < shared; i++ {
		_ = e.Add(coordsB[i])
		_ = e.Add(coordsW[i])
	}
	switch {
	case len(coordsB) > len(coordsW):
		for _, b := range coordsB[shared:] {
			_ = e.Add(b)
			_ = e.Add(coord.Null())
		}
		_, _ = e.Undo()
	case len(coordsW) > len(coordsB):
		for _, wht := range coordsW[shared:] {
			_ = e.Add(coord.Null())
			_ = e.Add(wht)
		}
	}
	wantBlack := !ownIsWhite
	if (e.ColorNext() == coord.Black) != wantBlack {
		_ = e.Add(coord.Null())
	}

	a.placeAndReply(w, e)
}

func (a *Adapter) handleInfo(w io.Writer, fields []string) {
	if len(fields) >= 3 {
		key, val := fields[1], fields[2]
		a.info.update(key, val)
		if key == "rule" {
			if !a.info.ruleSupported() {
				fmt.Fprintln(w, "ERROR - unsupported rule")
				return
			}
			a.setActive(a.newEvaluator())
		}
	}
	a.applyRAMCeiling()
}

// parseCoord parses a Gomocup "x,y" token into a real coordinate.
func parseCoord(tok string, n int) (coord.Coord, bool) {
	parts := strings.SplitN(tok, ",", 2)
	if len(parts) != 2 {
		return coord.Null(), false
	}
	x, errX := strconv.Atoi(parts[0])
	y, errY := strconv.Atoi(parts[1])
	if errX != nil || errY != nil {
		return coord.Null(), false
	}
	c := coord.New(uint8(x), uint8(y), n)
	if !c.IsReal() {
		return coord.Null(), false
	}
	return c, true
}
