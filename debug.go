package motion

import "time"

// debugStats holds per-frame timing metrics.
// Only populated when Stage.debug is true.
type debugStats struct {
	inputTime time.Duration
	tickTime  time.Duration
	active    int
	nodes     int
}

// debugLog reports frame stats at debug level.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		"frame", s.frame,
		"now", s.sched.Now(),
		"input", stats.inputTime,
		"tick", stats.tickTime,
		"active", stats.active,
		"nodes", stats.nodes,
	)
	if stats.nodes > debugMaxNodeCount {
		s.logger.Warn("node count exceeds threshold", "nodes", stats.nodes, "threshold", debugMaxNodeCount)
	}
}

// debugMaxNodeCount is the tree size above which debug mode warns.
const debugMaxNodeCount = 10000

func countNodes(n *Node) int {
	c := 1
	for _, child := range n.children {
		c += countNodes(child)
	}
	return c
}
