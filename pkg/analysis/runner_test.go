package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ritzau/graphrank/pkg/model"
)

type capturingPublisher struct {
	states  []string
	reports []Report
}

func (p *capturingPublisher) PublishStatus(state, message string) error {
	p.states = append(p.states, state)
	return nil
}

func (p *capturingPublisher) PublishResult(g *model.Graph, report Report) error {
	p.reports = append(p.reports, report)
	return nil
}

func writeEdgeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestRunner_Run(t *testing.T) {
	path := writeEdgeList(t, "1,2\n2,3\n3,1\n")
	pub := &capturingPublisher{}
	runner := NewRunner(path, pub)

	report, err := runner.Run(context.Background(), "initial analysis")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.IsDAG {
		t.Error("Expected 3-cycle input to report is_dag false")
	}
	if len(pub.reports) != 1 {
		t.Fatalf("Expected 1 published report, got %d", len(pub.reports))
	}
	if pub.reports[0] != report {
		t.Error("Published report differs from returned report")
	}

	last := pub.states[len(pub.states)-1]
	if last != "ready" {
		t.Errorf("Expected final status 'ready', got %q", last)
	}
}

func TestRunner_Run_MissingFile(t *testing.T) {
	pub := &capturingPublisher{}
	runner := NewRunner(filepath.Join(t.TempDir(), "nope.csv"), pub)

	if _, err := runner.Run(context.Background(), "initial analysis"); err == nil {
		t.Fatal("Expected error for missing edge list")
	}

	last := pub.states[len(pub.states)-1]
	if last != "error" {
		t.Errorf("Expected final status 'error', got %q", last)
	}
}

func TestRunner_Run_NilPublisher(t *testing.T) {
	path := writeEdgeList(t, "1,2\n")
	runner := NewRunner(path, nil)

	report, err := runner.Run(context.Background(), "initial analysis")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !report.IsDAG {
		t.Error("Expected single-edge graph to be a DAG")
	}
}
