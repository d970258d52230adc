package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/ritzau/graphrank/pkg/edgelist"
	"github.com/ritzau/graphrank/pkg/logging"
	"github.com/ritzau/graphrank/pkg/model"
)

// Publisher receives analysis progress and results. The web server
// implements it; a nil publisher disables publishing.
type Publisher interface {
	PublishStatus(state, message string) error
	PublishResult(g *model.Graph, report Report) error
}

// Runner re-reads an edge list and recomputes its report on demand.
// It serializes runs so a watcher-triggered re-analysis cannot overlap
// with one already in flight.
type Runner struct {
	path string
	pub  Publisher
	mu   sync.Mutex
}

// NewRunner creates a runner for the given edge-list file.
func NewRunner(path string, pub Publisher) *Runner {
	return &Runner{path: path, pub: pub}
}

// Run reads the edge list, analyzes it, and publishes the result.
// The reason is included in logs and status events, e.g. "initial
// analysis" or "edge list changed".
func (r *Runner) Run(ctx context.Context, reason string) (Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logging.InfoContext(ctx, "starting analysis", "path", r.path, "reason", reason)
	r.publishStatus("reading", fmt.Sprintf("Reading edge list (%s)...", reason))

	edges, err := edgelist.ReadFile(r.path)
	if err != nil {
		r.publishStatus("error", fmt.Sprintf("Error reading edge list: %v", err))
		return Report{}, fmt.Errorf("reading edge list: %w", err)
	}

	g, err := model.NewGraph(edges)
	if err != nil {
		r.publishStatus("error", fmt.Sprintf("Error building graph: %v", err))
		return Report{}, fmt.Errorf("building graph: %w", err)
	}

	r.publishStatus("analyzing", fmt.Sprintf("Analyzing %d nodes, %d edges...", g.NodeCount(), g.EdgeCount()))
	report := Analyze(g)

	logging.InfoContext(ctx, "analysis complete",
		"nodes", report.NodeCount,
		"edges", report.EdgeCount,
		"isDag", report.IsDAG,
	)

	if r.pub != nil {
		if err := r.pub.PublishResult(g, report); err != nil {
			logging.Warn("failed to publish result", "error", err)
		}
	}
	r.publishStatus("ready", "Analysis complete")

	return report, nil
}

func (r *Runner) publishStatus(state, message string) {
	if r.pub == nil {
		return
	}
	if err := r.pub.PublishStatus(state, message); err != nil {
		logging.Warn("failed to publish status", "error", err)
	}
}
