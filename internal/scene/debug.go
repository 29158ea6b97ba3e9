package scene

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame draw metrics. Only populated when Scene.debug
// is true.
type debugStats struct {
	drawTime      time.Duration
	drawCallCount int
}

// debugLog prints draw stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[anima] draw: %v | draw calls: %d\n",
		stats.drawTime, stats.drawCallCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Only called in debug mode; in release mode
// callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("anima debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[anima] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
