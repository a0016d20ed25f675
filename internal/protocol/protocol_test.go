package protocol

import (
	"bufio"
	"strings"
	"testing"
)

func runLines(t *testing.T, a *Adapter, in string) []string {
	t.Helper()
	var out strings.Builder
	if err := a.Run(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(out.String()))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

func TestStartOK(t *testing.T) {
	a := New()
	out := runLines(t, a, "START 15\nEND\n")
	if len(out) != 1 || out[0] != "OK" {
		t.Fatalf("got %v, want [OK]", out)
	}
}

func TestStartUnsupportedSize(t *testing.T) {
	a := New()
	out := runLines(t, a, "START 19\nEND\n")
	if len(out) != 1 || out[0] != "ERROR - unsupported board size" {
		t.Fatalf("got %v", out)
	}
}

func TestStartBadSizeToken(t *testing.T) {
	a := New()
	out := runLines(t, a, "START abc\nEND\n")
	if len(out) != 1 || out[0] != "ERROR - cannot parse board size" {
		t.Fatalf("got %v", out)
	}
}

func TestTurnBeforeStart(t *testing.T) {
	a := New()
	out := runLines(t, a, "TURN 7,7\nEND\n")
	if len(out) != 1 || out[0] != "ERROR - not started" {
		t.Fatalf("got %v", out)
	}
}

// BEGIN asks the engine to move first on an empty board; the unique
// candidate on an empty 15x15 board is its center cell.
func TestBeginReturnsCenterMove(t *testing.T) {
	a := New()
	out := runLines(t, a, "START 15\nBEGIN\nEND\n")
	if len(out) != 2 || out[0] != "OK" {
		t.Fatalf("got %v", out)
	}
	if out[1] != "7,7" {
		t.Fatalf("BEGIN reply = %q, want %q (0-based center of a 15x15 board)", out[1], "7,7")
	}
}

// TURN plays the opponent's move onto the board before replying, so the
// center cell — this engine's invariable opening move — is unavailable to
// it on its very next TURN once the opponent has already taken it.
func TestTurnPlaysOpponentMoveThenReplies(t *testing.T) {
	a := New()
	out := runLines(t, a, "START 15\nTURN 7,7\nEND\n")
	if len(out) != 2 || out[0] != "OK" {
		t.Fatalf("got %v", out)
	}
	if out[1] == "7,7" {
		t.Fatalf("reply reoccupies the opponent's just-played cell")
	}
}

func TestAboutPrintsBanner(t *testing.T) {
	a := New()
	out := runLines(t, a, "ABOUT\nEND\n")
	if len(out) != 1 || !strings.Contains(out[0], "name=") {
		t.Fatalf("got %v, want a name= banner", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	a := New()
	out := runLines(t, a, "FROBNICATE\nEND\n")
	if len(out) != 1 || out[0] != "UNKNOWN" {
		t.Fatalf("got %v, want [UNKNOWN]", out)
	}
}

func TestEndStopsProcessingImmediately(t *testing.T) {
	a := New()
	out := runLines(t, a, "START 15\nEND\nABOUT\n")
	if len(out) != 1 || out[0] != "OK" {
		t.Fatalf("got %v, want just [OK] (ABOUT after END must not run)", out)
	}
}

// BOARD with one stone each, own ahead by the required odd-move parity,
// must accept the position and reply rather than erroring.
func TestBoardAcceptsAlternatingPosition(t *testing.T) {
	a := New()
	out := runLines(t, a, "START 15\nBOARD\n7,7,1\n8,8,2\nDONE\nEND\n")
	if len(out) != 2 || out[0] != "OK" {
		t.Fatalf("got %v", out)
	}
	if out[1] == "" {
		t.Fatalf("BOARD produced no move reply")
	}
}

// Setting the continuous-rule bit via INFO is itself rejected, and the
// rejection persists: a later START for the (still continuous-flagged)
// session is rejected too.
func TestInfoRuleUnsupportedRejectsStart(t *testing.T) {
	a := New()
	out := runLines(t, a, "INFO rule 2\nSTART 15\nEND\n")
	if len(out) != 2 || out[0] != "ERROR - unsupported rule" || out[1] != "ERROR - unsupported rule" {
		t.Fatalf("got %v, want both the INFO and the START rejected", out)
	}
}

func TestTurnTimeoutFirstFiveMovesIgnoresCaps(t *testing.T) {
	s := sessionInfo{timeoutTurn: 5000, timeoutMatch: 1, timeLeft: 1}
	got := s.turnTimeout(15, 3)
	if got.Milliseconds() != 5000 {
		t.Fatalf("turnTimeout() = %s, want 5000ms (move 3 is within the first five)", got)
	}
}

func TestTurnTimeoutCapsAfterFiveMoves(t *testing.T) {
	s := sessionInfo{timeoutTurn: 30000, timeoutMatch: 450, timeLeft: 1000000000}
	got := s.turnTimeout(15, 10)
	if got.Milliseconds() >= 30000 {
		t.Fatalf("turnTimeout() = %s, want it capped below the raw timeout_turn", got)
	}
}
