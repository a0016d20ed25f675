// Command gomoku-gomocup runs the engine as a Gomocup protocol adapter,
// reading commands from stdin and writing move replies to stdout.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/debug"
	"runtime/pprof"

	"github.com/hailam/gomoku-engine/internal/engine"
	"github.com/hailam/gomoku-engine/internal/protocol"
)

// minStackBytes is the stack reservation a reference implementation makes
// for its protocol loop, since deep tree recursion in
// curOrderMinimax/curExpandDepth consumes real stack frames per ply. Go
// goroutines start at a few KiB and grow on demand rather than reserving a
// fixed stack up front, so this is applied as a floor on debug.SetMaxStack
// instead of a literal allocation (see DESIGN.md).
const minStackBytes = 2 * 1024 * 1024

func main() {
	if prev := debug.SetMaxStack(minStackBytes); prev > minStackBytes {
		debug.SetMaxStack(prev)
	}

	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	verbose := flag.Bool("verbose", false, "log search progress (depth, nodes, nps) to stderr")
	flag.Parse()

	if *cpuprofile == "" {
		*cpuprofile = os.Getenv("CPUPROFILE")
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalf("cpuprofile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("cpuprofile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	adapter := protocol.New()
	if *verbose {
		adapter.Stats = engine.NewLoggerStats(logger.Printf)
	}

	if err := adapter.Run(os.Stdin, os.Stdout); err != nil {
		logger.Fatalf("protocol: %v", err)
	}
}
