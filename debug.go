package launchpad

import (
	"fmt"
	"log/slog"
)

// debugLogger receives tree warnings while debug mode is on. Set by
// Scene.SetDebugMode.
var debugLogger = slog.Default()

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; in release mode callers
// skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("launchpad debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth is the depth past which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			"node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count past which debugCheckChildCount warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("node child count exceeds threshold",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// DumpTree logs the subtree under n at debug level, one line per node, with
// layout boxes and classes. Handy when a drag lands somewhere unexpected.
func (s *Scene) DumpTree(n *Node) {
	if n == nil {
		n = s.root
	}
	s.refresh()
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		s.logger.Debug("node",
			"depth", depth, "name", n.Name, "key", n.Key,
			"x", n.X, "y", n.Y, "w", n.Width, "h", n.Height,
			"z", n.ZIndex, "positioned", n.positioned, "classes", n.classes)
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
}
