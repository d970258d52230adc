package pagerank

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

func checkMassConserved(t *testing.T, scores map[int64]float64) {
	t.Helper()
	var sum float64
	for _, s := range scores {
		sum += s
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Expected scores to sum to 1.0, got %.15f", sum)
	}
}

func TestCompute_EmptyGraph(t *testing.T) {
	e := New(mustGraph(t, nil))

	scores := e.Compute()
	if len(scores) != 0 {
		t.Errorf("Expected no scores for empty graph, got %d", len(scores))
	}
	if e.Max() != 0 || e.Min() != 0 {
		t.Errorf("Expected zero max/min for empty graph, got %v/%v", e.Max(), e.Min())
	}
}

func TestCompute_ThreeCycleUniform(t *testing.T) {
	// 1 -> 2 -> 3 -> 1 is fully symmetric, so every node ends at 1/3.
	e := New(mustGraph(t, []model.Edge{{Source: 1, Target: 2}, {Source: 2, Target: 3}, {Source: 3, Target: 1}}))

	scores := e.Compute()
	checkMassConserved(t, scores)

	for id, score := range scores {
		if math.Abs(score-1.0/3.0) > 1e-9 {
			t.Errorf("Expected node %d score 1/3, got %.15f", id, score)
		}
	}
	if math.Abs(e.Max()-e.Min()) > 1e-12 {
		t.Errorf("Expected max == min on symmetric cycle, got %v and %v", e.Max(), e.Min())
	}
}

func TestCompute_SinkRedistribution(t *testing.T) {
	// Node 2 is a sink; without redistribution, mass would leak.
	e := New(mustGraph(t, []model.Edge{{Source: 1, Target: 2}}))

	if e.SinkCount() != 1 {
		t.Fatalf("Expected 1 sink, got %d", e.SinkCount())
	}

	scores := e.Compute()
	checkMassConserved(t, scores)

	if scores[2] <= scores[1] {
		t.Errorf("Expected sink fed by node 1 to score higher: %v vs %v", scores[2], scores[1])
	}
}

func TestCompute_StarGraph(t *testing.T) {
	// Hub 0 points at four leaves, all sinks.
	e := New(mustGraph(t, []model.Edge{{Source: 0, Target: 1}, {Source: 0, Target: 2}, {Source: 0, Target: 3}, {Source: 0, Target: 4}}))

	scores := e.Compute()
	checkMassConserved(t, scores)

	// Leaves are interchangeable and must score identically.
	for _, leaf := range []int64{2, 3, 4} {
		if scores[leaf] != scores[1] {
			t.Errorf("Expected identical leaf scores, got %v and %v", scores[1], scores[leaf])
		}
	}
}

func TestCompute_SelfLoopSingleNode(t *testing.T) {
	e := New(mustGraph(t, []model.Edge{{Source: 7, Target: 7}}))

	scores := e.Compute()
	if len(scores) != 1 {
		t.Fatalf("Expected 1 score, got %d", len(scores))
	}
	if math.Abs(scores[7]-1.0) > 1e-12 {
		t.Errorf("Expected the only node to hold all mass, got %.15f", scores[7])
	}
}

func TestCompute_Deterministic(t *testing.T) {
	g := mustGraph(t, []model.Edge{{Source: 1, Target: 2}, {Source: 2, Target: 3}, {Source: 3, Target: 1}, {Source: 3, Target: 4}, {Source: 4, Target: 2}})

	first := New(g).Compute()
	second := New(g).Compute()

	for id, score := range first {
		if second[id] != score {
			t.Errorf("Expected bit-identical rerun for node %d: %v vs %v", id, score, second[id])
		}
	}

	// Recompute on the same engine is also bit-identical.
	e := New(g)
	a := e.Compute()
	b := e.Compute()
	for id := range a {
		if a[id] != b[id] {
			t.Errorf("Expected bit-identical recompute for node %d", id)
		}
	}
}

func TestCompute_DuplicateEdgeWeight(t *testing.T) {
	// Without duplicates, 1 -> 2 and 1 -> 3 are symmetric and the two
	// sinks score identically.
	plain := New(mustGraph(t, []model.Edge{{Source: 1, Target: 2}, {Source: 1, Target: 3}})).Compute()
	if plain[2] != plain[3] {
		t.Fatalf("Expected symmetric sinks to score identically, got %v and %v", plain[2], plain[3])
	}

	// Doubling the 1 -> 2 edge shifts two thirds of node 1's mass to
	// node 2: each occurrence carries its own transition weight.
	doubled := New(mustGraph(t, []model.Edge{{Source: 1, Target: 2}, {Source: 1, Target: 2}, {Source: 1, Target: 3}})).Compute()
	checkMassConserved(t, doubled)
	if doubled[2] <= doubled[3] {
		t.Errorf("Expected duplicated edge target to score higher: %v vs %v", doubled[2], doubled[3])
	}
}

func TestCompute_MassConservedOnMixedGraph(t *testing.T) {
	// Cycle, sink, self-loop, and duplicate edges in one graph.
	e := New(mustGraph(t, []model.Edge{
		{Source: 1, Target: 2}, {Source: 2, Target: 3}, {Source: 3, Target: 1},
		{Source: 3, Target: 4},
		{Source: 5, Target: 5},
		{Source: 1, Target: 2},
	}))

	scores := e.Compute()
	checkMassConserved(t, scores)

	if e.Max() < e.Min() {
		t.Errorf("Max %v below min %v", e.Max(), e.Min())
	}
	if math.Abs(e.Sum()-1.0) > 1e-9 {
		t.Errorf("Expected Sum of 1.0, got %.15f", e.Sum())
	}
}
