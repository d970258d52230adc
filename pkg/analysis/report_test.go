package analysis

import (
	"math"
	"testing"

	"github.com/ritzau/graphrank/pkg/model"
)

func mustGraph(t *testing.T, edges []model.Edge) *model.Graph {
	t.Helper()
	g, err := model.NewGraph(edges)
	if err != nil {
		t.Fatalf("NewGraph failed: %v", err)
	}
	return g
}

func TestAnalyze_EmptyGraph(t *testing.T) {
	report := Analyze(mustGraph(t, nil))

	if !report.IsDAG {
		t.Error("Expected empty graph to report is_dag true")
	}
	if report.MaxInDegree != 0 || report.MaxOutDegree != 0 {
		t.Errorf("Expected zero degrees, got in=%d out=%d", report.MaxInDegree, report.MaxOutDegree)
	}
	if report.PageRankMax != 0 || report.PageRankMin != 0 {
		t.Errorf("Expected zero PageRank extremes, got %v/%v", report.PageRankMax, report.PageRankMin)
	}
}

func TestAnalyze_FanOut(t *testing.T) {
	// 1 -> 2, 1 -> 3: the worked example from the reader docs.
	report := Analyze(mustGraph(t, []model.Edge{{Source: 1, Target: 2}, {Source: 1, Target: 3}}))

	if !report.IsDAG {
		t.Error("Expected fan-out graph to be a DAG")
	}
	if report.MaxInDegree != 1 {
		t.Errorf("Expected max in-degree 1, got %d", report.MaxInDegree)
	}
	if report.MaxOutDegree != 2 {
		t.Errorf("Expected max out-degree 2, got %d", report.MaxOutDegree)
	}
	if report.NodeCount != 3 || report.EdgeCount != 2 || report.SinkCount != 2 {
		t.Errorf("Unexpected stats: %+v", report)
	}
	if report.PageRankMax < report.PageRankMin {
		t.Errorf("Max %v below min %v", report.PageRankMax, report.PageRankMin)
	}
}

func TestAnalyze_ThreeCycle(t *testing.T) {
	report := Analyze(mustGraph(t, []model.Edge{{Source: 1, Target: 2}, {Source: 2, Target: 3}, {Source: 3, Target: 1}}))

	if report.IsDAG {
		t.Error("Expected 3-cycle to report is_dag false")
	}
	if math.Abs(report.PageRankMax-1.0/3.0) > 1e-9 {
		t.Errorf("Expected PageRank max 1/3, got %.15f", report.PageRankMax)
	}
	if math.Abs(report.PageRankMin-1.0/3.0) > 1e-9 {
		t.Errorf("Expected PageRank min 1/3, got %.15f", report.PageRankMin)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	g := mustGraph(t, []model.Edge{{Source: 1, Target: 2}, {Source: 2, Target: 3}, {Source: 3, Target: 1}, {Source: 3, Target: 4}, {Source: 1, Target: 2}})

	first := Analyze(g)
	second := Analyze(g)

	if first != second {
		t.Errorf("Expected identical reports, got %+v and %+v", first, second)
	}
}
