// Package model provides the immutable in-memory representation of a
// directed graph built from an edge list. It is the common data model
// shared by the cycle detector and the PageRank engine.
package model

import (
	"errors"
	"fmt"
)

// ErrInvalidEdge is returned when an edge endpoint is negative.
var ErrInvalidEdge = errors.New("invalid edge")

// Edge represents a directed edge from Source to Target.
// Node IDs are non-negative but need not be contiguous.
type Edge struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

// Graph is an immutable directed graph. Parallel edges and self-loops
// are kept: adjacency is a multiset, and every occurrence of an edge
// counts toward both degree totals and PageRank transition weight.
//
// Externally nodes are identified by their int64 IDs; internally they
// are mapped to a dense index space in first-appearance order so that
// adjacency and degree lookups are array-backed.
type Graph struct {
	index  map[int64]int // external ID -> dense index
	labels []int64       // dense index -> external ID

	out [][]int // forward adjacency, dense indices, repeats kept
	in  [][]int // reverse adjacency, dense indices, repeats kept

	inDegree  []int
	outDegree []int

	edgeCount    int
	maxInDegree  int
	maxOutDegree int
}

// NewGraph builds a Graph from the full edge list. It returns
// ErrInvalidEdge if any endpoint is negative. A zero-length edge list
// is valid and yields an empty graph.
func NewGraph(edges []Edge) (*Graph, error) {
	g := &Graph{
		index: make(map[int64]int),
	}

	intern := func(id int64) int {
		if idx, ok := g.index[id]; ok {
			return idx
		}
		idx := len(g.labels)
		g.index[id] = idx
		g.labels = append(g.labels, id)
		g.out = append(g.out, nil)
		g.in = append(g.in, nil)
		g.inDegree = append(g.inDegree, 0)
		g.outDegree = append(g.outDegree, 0)
		return idx
	}

	for _, e := range edges {
		if e.Source < 0 || e.Target < 0 {
			return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidEdge, e.Source, e.Target)
		}
		src := intern(e.Source)
		dst := intern(e.Target)

		g.out[src] = append(g.out[src], dst)
		g.in[dst] = append(g.in[dst], src)
		g.outDegree[src]++
		g.inDegree[dst]++
		g.edgeCount++
	}

	for i := range g.labels {
		if g.inDegree[i] > g.maxInDegree {
			g.maxInDegree = g.inDegree[i]
		}
		if g.outDegree[i] > g.maxOutDegree {
			g.maxOutDegree = g.outDegree[i]
		}
	}

	return g, nil
}

// NodeCount returns the number of distinct nodes seen across all edges.
func (g *Graph) NodeCount() int {
	return len(g.labels)
}

// EdgeCount returns the number of edges, counting duplicates.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Nodes returns all node IDs in first-appearance order.
func (g *Graph) Nodes() []int64 {
	nodes := make([]int64, len(g.labels))
	copy(nodes, g.labels)
	return nodes
}

// HasNode reports whether the given ID appeared in the edge list.
func (g *Graph) HasNode(id int64) bool {
	_, ok := g.index[id]
	return ok
}

// InDegree returns the number of edges into the node, counting
// duplicates. Unknown nodes have degree zero.
func (g *Graph) InDegree(id int64) int {
	if idx, ok := g.index[id]; ok {
		return g.inDegree[idx]
	}
	return 0
}

// OutDegree returns the number of edges out of the node, counting
// duplicates. Unknown nodes have degree zero.
func (g *Graph) OutDegree(id int64) int {
	if idx, ok := g.index[id]; ok {
		return g.outDegree[idx]
	}
	return 0
}

// MaxInDegree returns the maximum in-degree across all nodes, or zero
// for an empty graph.
func (g *Graph) MaxInDegree() int {
	return g.maxInDegree
}

// MaxOutDegree returns the maximum out-degree across all nodes, or zero
// for an empty graph.
func (g *Graph) MaxOutDegree() int {
	return g.maxOutDegree
}

// OutNeighbors returns the targets of all edges leaving the node, with
// one entry per edge occurrence. Returns nil for unknown nodes.
func (g *Graph) OutNeighbors(id int64) []int64 {
	idx, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.resolve(g.out[idx])
}

// InNeighbors returns the sources of all edges into the node, with one
// entry per edge occurrence. This is the reverse view used by PageRank.
// Returns nil for unknown nodes.
func (g *Graph) InNeighbors(id int64) []int64 {
	idx, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.resolve(g.in[idx])
}

func (g *Graph) resolve(indices []int) []int64 {
	if len(indices) == 0 {
		return nil
	}
	ids := make([]int64, len(indices))
	for i, idx := range indices {
		ids[i] = g.labels[idx]
	}
	return ids
}

// Dense view accessors used by the algorithm packages. Indices are in
// [0, NodeCount); Label maps an index back to its external ID. Callers
// must not mutate the returned slices.

// Index returns the dense index for an external node ID.
func (g *Graph) Index(id int64) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Label returns the external ID for a dense index.
func (g *Graph) Label(idx int) int64 {
	return g.labels[idx]
}

// OutAt returns the forward adjacency of the node at the given dense
// index, as dense indices with repeats kept.
func (g *Graph) OutAt(idx int) []int {
	return g.out[idx]
}

// InAt returns the reverse adjacency of the node at the given dense
// index, as dense indices with repeats kept.
func (g *Graph) InAt(idx int) []int {
	return g.in[idx]
}

// OutDegreeAt returns the out-degree of the node at the given dense index.
func (g *Graph) OutDegreeAt(idx int) int {
	return g.outDegree[idx]
}
