// Package output renders analysis reports on the console.
package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ritzau/graphrank/pkg/analysis"
)

// PrintReport prints a formatted analysis report with colors. PageRank
// values are shown with six decimal places.
func PrintReport(input string, report analysis.Report) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	bold.Println("Graph Analysis Report")
	bold.Println("=====================")
	fmt.Printf("Input: %s\n", input)
	cyan.Printf("Nodes: %d  Edges: %d  Sinks: %d\n", report.NodeCount, report.EdgeCount, report.SinkCount)
	fmt.Println()

	if report.IsDAG {
		green.Println("is_dag:         true")
	} else {
		red.Println("is_dag:         false")
	}
	fmt.Printf("max_in_degree:  %d\n", report.MaxInDegree)
	fmt.Printf("max_out_degree: %d\n", report.MaxOutDegree)
	fmt.Printf("pr_max:         %.6f\n", report.PageRankMax)
	fmt.Printf("pr_min:         %.6f\n", report.PageRankMin)
}
