// Package pagerank computes PageRank scores for a directed graph with a
// fixed-iteration power method.
package pagerank

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ritzau/graphrank/pkg/model"
)

const (
	// Damping is the probability mass retained in link-following versus
	// uniform random restart.
	Damping = 0.85

	// Iterations is the fixed number of power-iteration rounds. There is
	// no convergence check; the count is part of the output contract.
	Iterations = 20
)

// Engine runs the power iteration over a graph's reverse adjacency.
//
// The transition model is row-stochastic: every node spreads its score
// equally over its outgoing edges, with parallel edges each carrying
// their own share. Sink nodes (out-degree zero) spread their score
// uniformly over all nodes, so no rank mass leaks out of the system.
type Engine struct {
	g      *model.Graph
	scores []float64 // final dense score vector, nil until Compute
	sinks  []int     // dense indices of out-degree-zero nodes
}

// New creates a PageRank engine for the given graph.
func New(g *model.Graph) *Engine {
	e := &Engine{g: g}
	for idx := 0; idx < g.NodeCount(); idx++ {
		if g.OutDegreeAt(idx) == 0 {
			e.sinks = append(e.sinks, idx)
		}
	}
	return e
}

// SinkCount returns the number of sink nodes in the graph.
func (e *Engine) SinkCount() int {
	return len(e.sinks)
}

// Compute runs the fixed number of iterations and returns the final
// score per node ID. Repeated calls recompute from the same uniform
// initial distribution and are bit-identical. An empty graph yields an
// empty map.
func (e *Engine) Compute() map[int64]float64 {
	n := e.g.NodeCount()
	result := make(map[int64]float64, n)
	if n == 0 {
		e.scores = nil
		return result
	}

	nf := float64(n)
	base := (1.0 - Damping) / nf

	// Double-buffered score vectors: each iteration reads the previous
	// snapshot and writes the next, so updates are synchronous.
	ranks := make([]float64, n)
	next := make([]float64, n)
	for i := range ranks {
		ranks[i] = 1.0 / nf
	}

	for iter := 0; iter < Iterations; iter++ {
		// Total sink mass is redistributed uniformly; computing it once
		// per iteration keeps the round at O(V+E).
		var sinkMass float64
		for _, s := range e.sinks {
			sinkMass += ranks[s]
		}
		sinkShare := Damping * sinkMass / nf

		for v := 0; v < n; v++ {
			var sum float64
			for _, u := range e.g.InAt(v) {
				// Parallel edges appear once per occurrence, so each
				// contributes its own 1/out-degree share.
				sum += ranks[u] / float64(e.g.OutDegreeAt(u))
			}
			next[v] = base + Damping*sum + sinkShare
		}

		ranks, next = next, ranks
	}

	e.scores = ranks
	for idx, score := range ranks {
		result[e.g.Label(idx)] = score
	}
	return result
}

// Max returns the maximum final score, or zero if Compute has not been
// run or the graph is empty.
func (e *Engine) Max() float64 {
	if len(e.scores) == 0 {
		return 0
	}
	return floats.Max(e.scores)
}

// Min returns the minimum final score, or zero if Compute has not been
// run or the graph is empty.
func (e *Engine) Min() float64 {
	if len(e.scores) == 0 {
		return 0
	}
	return floats.Min(e.scores)
}

// Sum returns the total score mass, or zero before Compute. With full
// sink redistribution it stays at 1.0 up to floating-point error.
func (e *Engine) Sum() float64 {
	return floats.Sum(e.scores)
}
