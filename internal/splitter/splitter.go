// internal/splitter/splitter.go
package splitter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/tracesplit/internal/mapping"
	"github.com/mwiater/tracesplit/internal/trace"
)

// Splitter classifies trace files by task and writes per-task copies.
type Splitter struct {
	// Tasks is the active mapping. The first entry with matching rows decides
	// the output label of a file.
	Tasks mapping.Mapping

	// SubTasks splits a file matched to Composite into one file per entry.
	SubTasks mapping.Mapping

	// Composite is the task label that triggers the sub-task split. Empty
	// disables splitting.
	Composite string

	// SkipExisting skips input files whose name is already an output label.
	SkipExisting bool

	// WriteEmptySubTasks writes header-only files for sub-tasks with no rows.
	WriteEmptySubTasks bool

	// DryRun classifies files without writing anything.
	DryRun bool

	// Out receives one progress line per file. Nil discards progress.
	Out io.Writer
}

// Status is the outcome kind of one processed file.
type Status string

const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusNoMatch Status = "no-match"
	StatusFailed  Status = "failed"
)

// Outcome describes what happened to one input file.
type Outcome struct {
	Path    string
	Status  Status
	Label   string   // matched task label, if any
	Outputs []string // files written, or that would be written on a dry run
	Err     error
}

// Run walks root and processes every regular file in lexical order. The file
// list is collected up front so outputs written during the run are never
// visited as inputs. Per-file failures are recorded in the report; only a
// failure to walk root itself is returned as an error.
func (s *Splitter) Run(root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("could not open root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", root, err)
	}

	report := &Report{Root: root, DryRun: s.DryRun}
	for _, path := range files {
		o := s.ProcessFile(path)
		s.progress(o)
		report.Outcomes = append(report.Outcomes, o)
	}
	return report, nil
}

// ProcessFile classifies a single file and writes its outputs next to it.
func (s *Splitter) ProcessFile(path string) Outcome {
	o := Outcome{Path: path}

	if s.SkipExisting && s.isOutputName(filepath.Base(path)) {
		o.Status = StatusSkipped
		return o
	}

	tbl, err := trace.Load(path)
	if err != nil {
		log.Printf("skip %s: %v", path, err)
		o.Status = StatusFailed
		o.Err = err
		return o
	}

	entry, err := s.Tasks.Match(tbl)
	if errors.Is(err, mapping.ErrNoMatch) {
		o.Status = StatusNoMatch
		return o
	}
	o.Label = entry.Label

	dir := filepath.Dir(path)
	// The full table is saved under the matched label, not only the matching
	// rows.
	if err := s.save(tbl, dir, entry.Label, &o); err != nil {
		o.Status = StatusFailed
		o.Err = err
		return o
	}

	if s.Composite != "" && entry.Label == s.Composite {
		for _, sub := range s.SubTasks.Entries {
			if sub.Label == s.Composite {
				// Never replace the full aggregate table with a subset.
				log.Printf("skip sub-task %s of %s: label is the composite output", sub.Label, path)
				continue
			}
			part := tbl.Subset(sub.Component)
			if len(part.Rows) == 0 && !s.WriteEmptySubTasks {
				continue
			}
			if err := s.save(part, dir, sub.Label, &o); err != nil {
				o.Status = StatusFailed
				o.Err = err
				return o
			}
		}
	}

	o.Status = StatusWritten
	return o
}

func (s *Splitter) save(tbl *trace.Table, dir, label string, o *Outcome) error {
	out := filepath.Join(dir, OutputName(label))
	if !s.DryRun {
		if err := tbl.Save(out); err != nil {
			log.Printf("write %s: %v", out, err)
			return err
		}
	}
	o.Outputs = append(o.Outputs, out)
	return nil
}

// isOutputName reports whether a file name, without extension, is a label the
// splitter could have produced.
func (s *Splitter) isOutputName(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return s.Tasks.HasLabel(stem) || (s.Composite != "" && s.SubTasks.HasLabel(stem))
}

func (s *Splitter) progress(o Outcome) {
	if s.Out == nil {
		return
	}
	fmt.Fprintln(s.Out, formatOutcome(o))
}

// OutputName is the file name a task label is saved under.
func OutputName(label string) string {
	if strings.Contains(label, ".csv") {
		return label
	}
	return label + ".csv"
}
