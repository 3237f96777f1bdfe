package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, res *Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Render formats the result as a bordered table. Files that could not be
// summarized are listed below it.
func Render(res *Result) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Padding(0, 1)
	numberStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (column %q)", res.Root, res.Column)))
	b.WriteString("\n")
	if len(res.Tasks) == 0 {
		b.WriteString("  no task files found\n")
		return b.String()
	}

	var rows [][]string
	var failed []TaskSummary
	for _, t := range res.Tasks {
		if t.Err != "" {
			failed = append(failed, t)
			continue
		}
		rows = append(rows, []string{
			t.Label,
			strconv.Itoa(t.Rows),
			strconv.Itoa(t.Invalid),
			fmt.Sprintf("%.3f", t.Mean),
			fmt.Sprintf("%.3f", t.Std),
			fmt.Sprintf("%.3f", t.P50),
			fmt.Sprintf("%.3f", t.P95),
		})
	}

	if len(rows) > 0 {
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
			Headers("TASK", "ROWS", "INVALID", "MEAN", "STD", "P50", "P95").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == 0:
					return labelStyle
				default:
					return numberStyle
				}
			})
		b.WriteString(tbl.String())
		b.WriteString("\n")
	}
	for _, t := range failed {
		b.WriteString(errStyle.Render(fmt.Sprintf("  %s %s: %s", t.Label, t.Path, t.Err)))
		b.WriteString("\n")
	}
	return b.String()
}
