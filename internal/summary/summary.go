// Package summary reports latency statistics for the per-task trace files
// produced by the splitter.
package summary

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/mwiater/tracesplit/internal/trace"
)

// TaskSummary aggregates one numeric column of one task file.
type TaskSummary struct {
	Path    string  `json:"path"`
	Label   string  `json:"label"`
	Rows    int     `json:"rows"`
	Invalid int     `json:"invalid"` // cells that did not parse as numbers
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	P50     float64 `json:"p50"`
	P95     float64 `json:"p95"`
	Err     string  `json:"error,omitempty"`
}

// Result is the top-level artifact returned by Summarize.
type Result struct {
	Root        string        `json:"root"`
	Column      string        `json:"column"`
	Tasks       []TaskSummary `json:"tasks"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// Summarize walks root and summarizes column in every file whose name,
// without extension, is one of labels. Files without the column are reported
// with an error and no statistics.
func Summarize(root, column string, labels []string) (*Result, error) {
	if column == "" {
		return nil, fmt.Errorf("column is required")
	}
	want := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		want[l] = struct{}{}
	}

	res := &Result{Root: root, Column: column, GeneratedAt: time.Now()}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("could not open root directory: %w", err)
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		label := strings.TrimSuffix(name, filepath.Ext(name))
		if _, ok := want[label]; !ok {
			return nil
		}
		res.Tasks = append(res.Tasks, summarizeFile(path, label, column))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", root, err)
	}
	return res, nil
}

func summarizeFile(path, label, column string) TaskSummary {
	ts := TaskSummary{Path: path, Label: label}
	tbl, err := trace.Load(path)
	if err != nil {
		ts.Err = err.Error()
		return ts
	}
	ts.Rows = len(tbl.Rows)

	idx := tbl.Column(column)
	if idx < 0 {
		ts.Err = fmt.Sprintf("missing %q column", column)
		return ts
	}

	values := make([]float64, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			ts.Invalid++
			continue
		}
		values = append(values, v)
	}
	ts.Mean, ts.Std, ts.P50, ts.P95 = describe(values)
	return ts
}

// describe returns mean, sample standard deviation, median and 95th
// percentile. All are zero for an empty slice.
func describe(values []float64) (mean, std, p50, p95 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mean, std = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return mean, std, p50, p95
}
