// Package edgelist reads directed-graph edge lists from CSV input.
// Each row is "source,target". Rows with fewer than two fields or
// non-integer fields are skipped rather than treated as fatal.
package edgelist

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ritzau/graphrank/pkg/logging"
	"github.com/ritzau/graphrank/pkg/model"
)

// ReadFile reads an edge list from a CSV file.
func ReadFile(path string) ([]model.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening edge list: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read reads an edge list from CSV input. Malformed rows are skipped;
// value validation (non-negative IDs) happens at graph construction.
func Read(r io.Reader) ([]model.Edge, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var edges []model.Edge
	skipped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading edge list: %w", err)
		}

		if len(record) < 2 {
			skipped++
			continue
		}

		source, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			skipped++
			continue
		}
		target, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			skipped++
			continue
		}

		edges = append(edges, model.Edge{Source: source, Target: target})
	}

	if skipped > 0 {
		logging.Debug("skipped malformed edge rows", "count", skipped)
	}

	return edges, nil
}
