// internal/splitter/report.go
package splitter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	writtenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	skippedStyle = lipgloss.NewStyle().Faint(true)
	noMatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
)

// Report collects the outcome of every file visited by Run.
type Report struct {
	Root     string
	DryRun   bool
	Outcomes []Outcome
}

// Count returns how many outcomes have the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Outputs returns every output path in the order it was written.
func (r *Report) Outputs() []string {
	var out []string
	for _, o := range r.Outcomes {
		out = append(out, o.Outputs...)
	}
	return out
}

// Failed returns the outcomes that ended in an error.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

// Print writes a summary of the report followed by the failures, if any.
func (r *Report) Print(w io.Writer) {
	verb := "Wrote"
	if r.DryRun {
		verb = "Would write"
	}
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s:", r.Root)))
	fmt.Fprintf(w, "  >>> %d files visited\n", len(r.Outcomes))
	fmt.Fprintf(w, "  >>> %s %d outputs from %d files\n", verb, len(r.Outputs()), r.Count(StatusWritten))
	fmt.Fprintf(w, "  >>> %d skipped, %d without a matching task, %d failed\n",
		r.Count(StatusSkipped), r.Count(StatusNoMatch), r.Count(StatusFailed))
	for _, o := range r.Failed() {
		fmt.Fprintln(w, failedStyle.Render(fmt.Sprintf("  - %s: %v", o.Path, o.Err)))
	}
}

func formatOutcome(o Outcome) string {
	switch o.Status {
	case StatusWritten:
		names := make([]string, len(o.Outputs))
		for i, p := range o.Outputs {
			names[i] = filepath.Base(p)
		}
		return writtenStyle.Render(fmt.Sprintf("  -> %s: %s => %s", o.Path, o.Label, strings.Join(names, ", ")))
	case StatusSkipped:
		return skippedStyle.Render(fmt.Sprintf("  -> %s: already an output, skipped", o.Path))
	case StatusNoMatch:
		return noMatchStyle.Render(fmt.Sprintf("  -> %s: no matching task", o.Path))
	default:
		return failedStyle.Render(fmt.Sprintf("  -> %s: %v", o.Path, o.Err))
	}
}
