// cmd/tracesplit/list_mappings.go
package tracesplit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwiater/tracesplit/internal/mapping"
)

// mappingsCmd implements 'list mappings', which prints every built-in and
// configured task mapping in match order.
var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "List the task mappings in match order",
	Long:  `The 'mappings' subcommand prints each known task mapping as a table of component names and the task labels their files are saved under, in the order they are tried.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := cfg.Registry()
		if err != nil {
			return err
		}
		out, err := renderMappings(reg, cfg.Mapping)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	listCmd.AddCommand(mappingsCmd)
}

// renderMappings renders each mapping of reg as a static table. The active
// mapping is marked in its title.
func renderMappings(reg *mapping.Registry, active string) (string, error) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	styles := table.DefaultStyles()
	styles.Selected = lipgloss.NewStyle()

	var b strings.Builder
	for _, name := range reg.Names() {
		m, err := reg.Lookup(name)
		if err != nil {
			return "", err
		}

		compWidth, labelWidth := len("COMPONENT"), len("LABEL")
		rows := make([]table.Row, len(m.Entries))
		for i, e := range m.Entries {
			rows[i] = table.Row{strconv.Itoa(i + 1), e.Component, e.Label}
			compWidth = max(compWidth, len(e.Component))
			labelWidth = max(labelWidth, len(e.Label))
		}

		t := table.New(
			table.WithColumns([]table.Column{
				{Title: "#", Width: 2},
				{Title: "COMPONENT", Width: compWidth},
				{Title: "LABEL", Width: labelWidth},
			}),
			table.WithRows(rows),
			table.WithStyles(styles),
			// Header plus its bottom border.
			table.WithHeight(len(rows)+2),
		)

		title := titleStyle.Render(name)
		if name == active {
			title += activeStyle.Render(" (active)")
		}
		b.WriteString(title + "\n" + t.View() + "\n\n")
	}
	return b.String(), nil
}
