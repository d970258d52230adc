// Package analysis reduces a directed graph to its structural report:
// acyclicity, degree maxima, and PageRank score extremes.
package analysis

import (
	"github.com/ritzau/graphrank/pkg/cycles"
	"github.com/ritzau/graphrank/pkg/model"
	"github.com/ritzau/graphrank/pkg/pagerank"
)

// Report is the fixed five-field result of a graph analysis, plus the
// graph statistics surfaced alongside it.
type Report struct {
	IsDAG        bool    `json:"is_dag"`
	MaxInDegree  int     `json:"max_in_degree"`
	MaxOutDegree int     `json:"max_out_degree"`
	PageRankMax  float64 `json:"pr_max"`
	PageRankMin  float64 `json:"pr_min"`

	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
	SinkCount int `json:"sink_count"`
}

// Analyze computes the full report for a graph. The cycle detector and
// the PageRank engine have no data dependency on each other and the
// graph is immutable, so they run on separate goroutines and join at
// the report. An empty graph yields the documented defaults: is_dag
// true, degrees zero, PageRank extremes 0.0.
func Analyze(g *model.Graph) Report {
	report := Report{
		MaxInDegree:  g.MaxInDegree(),
		MaxOutDegree: g.MaxOutDegree(),
		NodeCount:    g.NodeCount(),
		EdgeCount:    g.EdgeCount(),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		report.IsDAG = cycles.NewDetector(g).IsDAG()
	}()

	engine := pagerank.New(g)
	engine.Compute()
	report.PageRankMax = engine.Max()
	report.PageRankMin = engine.Min()
	report.SinkCount = engine.SinkCount()

	<-done
	return report
}
