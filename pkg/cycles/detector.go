// Package cycles determines whether a directed graph is acyclic using
// depth-first traversal with three-state node coloring.
package cycles

import (
	"github.com/ritzau/graphrank/pkg/model"
)

// color is the DFS state of a node.
type color uint8

const (
	white color = iota // unvisited
	gray               // on the active traversal path
	black              // fully explored, no cycle through it
)

// Detector finds cycles in a directed graph. The traversal uses an
// explicit frame stack instead of native recursion so that path-shaped
// graphs deeper than the goroutine stack limit are handled safely.
type Detector struct {
	g      *model.Graph
	colors []color
	stack  []frame
}

// frame is one simulated recursion frame: the node being explored and
// the position of the next out-neighbor to visit.
type frame struct {
	node int
	next int
}

// NewDetector creates a cycle detector for the given graph.
func NewDetector(g *model.Graph) *Detector {
	return &Detector{
		g:      g,
		colors: make([]color, g.NodeCount()),
	}
}

// IsDAG reports whether the graph contains no directed cycle. A
// self-loop is a cycle. The empty graph is acyclic. Runs in O(V+E) and
// has no side effects on the graph.
func (d *Detector) IsDAG() bool {
	for idx := 0; idx < d.g.NodeCount(); idx++ {
		if d.colors[idx] != white {
			continue
		}
		if d.hasCycleFrom(idx) {
			return false
		}
	}
	return true
}

// hasCycleFrom runs an iterative DFS rooted at the given node and
// reports whether it reaches a gray node (a back edge).
func (d *Detector) hasCycleFrom(root int) bool {
	d.colors[root] = gray
	d.stack = append(d.stack[:0], frame{node: root})

	for len(d.stack) > 0 {
		top := &d.stack[len(d.stack)-1]
		neighbors := d.g.OutAt(top.node)

		if top.next < len(neighbors) {
			succ := neighbors[top.next]
			top.next++

			switch d.colors[succ] {
			case gray:
				// Back edge: succ is on the active path.
				return true
			case white:
				d.colors[succ] = gray
				d.stack = append(d.stack, frame{node: succ})
			}
			// black: already fully explored, nothing to do.
			continue
		}

		// All out-neighbors explored; retire the node.
		d.colors[top.node] = black
		d.stack = d.stack[:len(d.stack)-1]
	}

	return false
}
