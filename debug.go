package rowan

import (
	"fmt"
	"os"
	"time"
)

// debugLogf prints a diagnostic line to stderr when debug mode is on.
func debugLogf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[rowan] "+format+"\n", args...)
}

// debugStats holds per-update timing and handle metrics.
// Only populated when Viewer.debug is true.
type debugStats struct {
	syncTime     time.Duration
	overlayTime  time.Duration
	shapeHandles int
	jointHandles int
	scratchLines int
	scratchRects int
	scratchDots  int
}

// debugLog prints timing and handle stats to stderr.
func (v *Viewer) debugLog(stats debugStats) {
	if !v.debug {
		return
	}
	total := stats.syncTime + stats.overlayTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[rowan] sync: %v | overlays: %v | total: %v\n",
		stats.syncTime, stats.overlayTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[rowan] handles: %d shapes, %d joints | scratch: %d lines, %d rects, %d dots\n",
		stats.shapeHandles, stats.jointHandles,
		stats.scratchLines, stats.scratchRects, stats.scratchDots)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; release-mode callers
// skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("rowan debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
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
		_, _ = fmt.Fprintf(os.Stderr, "[rowan] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[rowan] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
