package engine

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats receives one progress line per completed iterative-deepening
// cycle inside CalcNext. It is pure observability: no search decision
// depends on whether one is installed.
type Stats interface {
	Log(depth, nodes int, elapsed time.Duration)
}

// LoggerStats formats each cycle through Printf, with node counts
// thousands-separated via golang.org/x/text/message the way
// daystram/gambit's search engine formats its own depth/nodes/nps debug
// line.
type LoggerStats struct {
	Printf func(format string, args ...any)
}

// NewLoggerStats returns a Stats that writes through printf (e.g.
// log.Printf).
func NewLoggerStats(printf func(format string, args ...any)) *LoggerStats {
	return &LoggerStats{Printf: printf}
}

func (s *LoggerStats) Log(depth, nodes int, elapsed time.Duration) {
	if s == nil || s.Printf == nil {
		return
	}
	nps := int64(0)
	if ns := elapsed.Nanoseconds(); ns > 0 {
		nps = int64(nodes) * 1e9 / ns
	}
	s.Printf("%s", message.NewPrinter(language.English).
		Sprintf("[search] depth=%d nodes=%d (%d/s) t=%s", depth, nodes, nps, elapsed))
}
